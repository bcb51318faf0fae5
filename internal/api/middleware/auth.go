package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// Auth тонкая идентификация вызывающего по заголовку X-User-ID
// Это не система авторизации: доверенныйшлюз уже аутентифицировал
// пользователя, здесь мы только пробрасываем его ID в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
