package domain

// AppointmentTypeCatalog справочник типов приёмов: имя типа -> длительность
type AppointmentTypeCatalog map[string]int

// DurationFor возвращает длительность приёма указанного типа в минутах
// Второе значение false, если тип неизвестен
func (c AppointmentTypeCatalog) DurationFor(appointmentType string) (int, bool) {
	duration, ok := c[appointmentType]
	return duration, ok
}
