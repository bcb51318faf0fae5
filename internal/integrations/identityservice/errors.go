package identityservice

import "errors"

var (
	// ErrSubjectNotFound возвращается, когда пациент не найден и создание запрещено
	ErrSubjectNotFound = errors.New("identityservice: subject not found")

	// ErrNoIdentifier возвращается, когда в запросе нет ни одного идентификатора
	ErrNoIdentifier = errors.New("identityservice: at least one of phone, email or name is required")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("identityservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности сервиса
	ErrServiceDegraded = errors.New("identityservice: service degraded")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice: internal error")
)
