package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByIdentifier получает бронирование по внутреннему ID или коду подтверждения
// Код подтверждения позволяет пациенту найти запись, не зная внутренних ID
func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*models.BookingResponse, error) {
	booking, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByIdentifier: fetched booking id=%d code=%s", booking.ID, booking.ConfirmationCode)
	return models.FromDomainBooking(booking), nil
}

// GetSubjectBookings получает историю бронирований пациента
// Опционально фильтрует по статусу
func (s *Service) GetSubjectBookings(ctx context.Context, req *models.GetSubjectBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSubjectBookings: fetching bookings for subject=%d, status=%v", req.SubjectID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetSubjectBookings: invalid status=%s for subject=%d", *req.Status, req.SubjectID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetBySubjectID(ctx, req.SubjectID, domainStatus)
	if err != nil {
		s.logger.Error("GetSubjectBookings: repository error for subject=%d: %v", req.SubjectID, err)
		return nil, fmt.Errorf("%w: GetSubjectBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSubjectBookings: fetched %d bookings for subject=%d", len(bookings), req.SubjectID)
	return models.FromDomainBookingList(bookings), nil
}

// GetResourceBookings получает бронирования ресурса с гибкой фильтрацией
// по периоду, статусу и включению неактивных записей
func (s *Service) GetResourceBookings(ctx context.Context, req *models.GetResourceBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetResourceBookings: fetching bookings for resource=%d", req.ResourceID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetResourceBookings: invalid filter for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceBookings: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceBookings: fetched %d bookings for resource=%d", len(bookings), req.ResourceID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по ID или коду подтверждения
//
// Повторная отмена возвращает ErrAlreadyCancelled, не меняя полей отмены.
// Запись никогда не удаляется физически - история сохраняется
func (s *Service) Cancel(ctx context.Context, identifier string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking identifier=%s", identifier)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", booking.ID)
		return ErrAlreadyCancelled
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", booking.ID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", booking.ID)
	return nil
}

// UpdateStatus отмечает завершение приёма или неявку
func (s *Service) UpdateStatus(ctx context.Context, identifier string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking identifier=%s to status=%s", identifier, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Отмена идет через Cancel с причиной, а не через смену статуса
	if newStatus == domain.StatusCancelled {
		return fmt.Errorf("%w: use cancel endpoint to cancel a booking", ErrInvalidStatus)
	}

	booking, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	if !booking.IsActive() {
		s.logger.Warn("UpdateStatus: booking id=%d is not active, status=%s", booking.ID, booking.Status)
		return ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", booking.ID, newStatus)
	return nil
}

// findByIdentifier ищет бронирование по коду подтверждения или внутреннему ID
func (s *Service) findByIdentifier(ctx context.Context, identifier string) (*domain.Booking, error) {
	var booking *domain.Booking
	var err error

	if domain.LooksLikeConfirmationCode(identifier) {
		booking, err = s.bookingRepo.GetByConfirmationCode(ctx, identifier)
	} else {
		id, parseErr := strconv.ParseInt(identifier, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: identifier must be a numeric id or a confirmation code", ErrInvalidInput)
		}
		booking, err = s.bookingRepo.GetByID(ctx, id)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("findByIdentifier: booking %s not found", identifier)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("findByIdentifier: repository error for %s: %v", identifier, err)
		return nil, fmt.Errorf("%w: findByIdentifier - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}
