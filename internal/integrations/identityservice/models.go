package identityservice

// Subject пациент/клиент, чьё время бронируется
type Subject struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	// Created true, если запись была создана этим запросом
	Created bool `json:"created"`
}

// FindOrCreateRequest запрос на поиск или создание пациента
// Достаточно одного из идентификаторов: телефон, email или имя
type FindOrCreateRequest struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}
