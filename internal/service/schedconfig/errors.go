package schedconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда у ресурса нет собственной конфигурации
	ErrConfigNotFound = errors.New("schedconfig: config not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedconfig: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedconfig: internal error")
)
