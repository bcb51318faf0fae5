package models

import (
	"errors"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
// (отметка завершения приёма или неявки)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetSubjectBookingsRequest запрос на получение бронирований пациента
type GetSubjectBookingsRequest struct {
	SubjectID int64   `json:"subjectId"`
	Status    *string `json:"status,omitempty"`
}

// GetResourceBookingsRequest запрос на получение бронирований ресурса
type GetResourceBookingsRequest struct {
	ResourceID      int64      `json:"resourceId"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *GetResourceBookingsRequest) ToDomainFilter() (domain.ResourceBookingsFilter, error) {
	filter := domain.ResourceBookingsFilter{
		ResourceID:      r.ResourceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.ResourceBookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	ID                 int64      `json:"id"`
	ConfirmationCode   string     `json:"confirmationCode"`
	ResourceID         int64      `json:"resourceId"`
	SubjectID          int64      `json:"subjectId"`
	StartAt            time.Time  `json:"startAt"`
	EndAt              time.Time  `json:"endAt"`
	DurationMinutes    int        `json:"durationMinutes"`
	AppointmentType    string     `json:"appointmentType"`
	Status             string     `json:"status"`
	SubjectName        *string    `json:"subjectName,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	RescheduleCount    int        `json:"rescheduleCount"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		ConfirmationCode:   b.ConfirmationCode,
		ResourceID:         b.ResourceID,
		SubjectID:          b.SubjectID,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt(),
		DurationMinutes:    b.DurationMinutes,
		AppointmentType:    b.AppointmentType,
		Status:             string(b.Status),
		SubjectName:        b.SubjectName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		RescheduleCount:    b.RescheduleCount,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusScheduled, domain.StatusRescheduled, domain.StatusCancelled,
		domain.StatusCompleted, domain.StatusNoShow:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
