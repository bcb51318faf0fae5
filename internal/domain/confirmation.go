package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ConfirmationCodePrefix фиксированный префикс кода подтверждения
const ConfirmationCodePrefix = "APT"

const confirmationSuffixLen = 4

// NewConfirmationCode генерирует человекочитаемый код подтверждения:
// фиксированный префикс + base36-метка времени + короткий случайный суффикс
// Формат: APT-<time36>-<rand>, например APT-SRL4K2-9F3A
//
// Код выдается при создании бронирования и используется для поиска
// без знания внутреннего ID
func NewConfirmationCode(now time.Time) string {
	timeToken := strings.ToUpper(strconv.FormatInt(now.Unix(), 36))

	// Случайный суффикс защищает от коллизий при одновременной выдаче кодов
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:confirmationSuffixLen]

	return fmt.Sprintf("%s-%s-%s", ConfirmationCodePrefix, timeToken, random)
}

// LooksLikeConfirmationCode возвращает true, если идентификатор похож на код подтверждения
// Используется для различения внутреннего ID и кода в запросах
func LooksLikeConfirmationCode(identifier string) bool {
	return strings.HasPrefix(identifier, ConfirmationCodePrefix+"-")
}
