package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

// UseCase use case для переноса бронирования
//
// Перенос сохраняет идентичность записи: меняется только момент начала,
// статус становится rescheduled, счётчик переносов растёт. При
// недоступности нового интервала бронирование остаётся нетронутым,
// а вызывающему возвращаются альтернативы
type UseCase struct {
	bookingRepo  BookingRepository
	checker      AvailabilityChecker
	alternatives AlternativesFinder
	resolver     DateTimeResolver
	calendar     *domain.BusinessCalendar
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checker AvailabilityChecker,
	alternatives AlternativesFinder,
	resolver DateTimeResolver,
	calendar *domain.BusinessCalendar,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checker:      checker,
		alternatives: alternatives,
		resolver:     resolver,
		calendar:     calendar,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: identifier=%s, newStart=%v, date=%q, time=%q",
		req.Identifier, req.NewStartAt, req.DateText, req.TimeText)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.resolver.Location())

	// 3. Определяем новый момент начала
	newStart, err := uc.resolveStart(req, now)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: failed to resolve new start: %v", err)
		return nil, err
	}

	// 4. Ищем бронирование по ID или коду подтверждения
	booking, err := uc.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d is not active, status=%s", booking.ID, booking.Status)
		return nil, ErrNotActive
	}

	// 5. Проверка нового интервала и перенос в одной сериализуемой транзакции
	// Собственный интервал бронирования исключается из проверки
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		availability, err := uc.checker.CheckExcluding(txCtx, booking.ResourceID, newStart, booking.DurationMinutes, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !availability.Available {
			uc.logger.Warn("RescheduleBooking: new interval unavailable, booking id=%d, reason=%s",
				booking.ID, availability.Reason)
			return reasonToError(availability.Reason)
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, newStart); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		return nil
	})

	// 6. При недоступности предлагаем альтернативы, бронирование не тронуто
	if isUnavailableError(err) {
		return uc.buildUnavailableResponse(ctx, booking, newStart), err
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s",
		booking.ID, newStart.Format(domain.DateFormat+" "+domain.TimeFormat))

	return &Response{
		ID:               booking.ID,
		ConfirmationCode: booking.ConfirmationCode,
		ResourceID:       booking.ResourceID,
		SubjectID:        booking.SubjectID,
		StartAt:          newStart,
		DurationMinutes:  booking.DurationMinutes,
		AppointmentType:  booking.AppointmentType,
		Status:           string(domain.StatusRescheduled),
		RescheduleCount:  booking.RescheduleCount + 1,
	}, nil
}

// resolveStart определяет новый момент начала из явного инстанта или текста
func (uc *UseCase) resolveStart(req *Request, now time.Time) (time.Time, error) {
	if req.NewStartAt != nil {
		return req.NewStartAt.In(uc.resolver.Location()), nil
	}
	return uc.resolver.Resolve(req.DateText, req.TimeText, now, uc.calendar)
}

// findByIdentifier ищет бронирование по коду подтверждения или внутреннему ID
func (uc *UseCase) findByIdentifier(ctx context.Context, identifier string) (*domain.Booking, error) {
	var booking *domain.Booking
	var err error

	if domain.LooksLikeConfirmationCode(identifier) {
		booking, err = uc.bookingRepo.GetByConfirmationCode(ctx, identifier)
	} else {
		id, parseErr := strconv.ParseInt(identifier, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: identifier must be a numeric id or a confirmation code", ErrInvalidInput)
		}
		booking, err = uc.bookingRepo.GetByID(ctx, id)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking %s not found", identifier)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: repository error for %s: %v", identifier, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return booking, nil
}

// buildUnavailableResponse собирает предложения альтернатив при недоступности
func (uc *UseCase) buildUnavailableResponse(ctx context.Context, booking *domain.Booking, newStart time.Time) *Response {
	resp := &Response{
		ID:               booking.ID,
		ConfirmationCode: booking.ConfirmationCode,
		ResourceID:       booking.ResourceID,
		SubjectID:        booking.SubjectID,
		StartAt:          booking.StartAt,
		DurationMinutes:  booking.DurationMinutes,
		AppointmentType:  booking.AppointmentType,
		Status:           string(booking.Status),
		RescheduleCount:  booking.RescheduleCount,
	}

	found, err := uc.alternatives.Execute(ctx, &find_alternatives.Request{
		ResourceID:      booking.ResourceID,
		Preferred:       newStart,
		DurationMinutes: booking.DurationMinutes,
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to find alternatives: %v", err)
		return resp
	}

	for _, candidate := range found.Candidates {
		resp.Alternatives = append(resp.Alternatives, Alternative{
			StartAt: candidate.StartAt,
			EndAt:   candidate.EndAt,
			Score:   candidate.Score,
		})
	}
	return resp
}

// isUnavailableError возвращает true для ошибок недоступности нового интервала
func isUnavailableError(err error) bool {
	return errors.Is(err, ErrSlotConflict) ||
		errors.Is(err, ErrOutsideHours) ||
		errors.Is(err, ErrTooSoon) ||
		errors.Is(err, ErrRestRequired)
}

// reasonToError конвертирует причину недоступности в ошибку usecase
func reasonToError(reason domain.UnavailabilityReason) error {
	switch reason {
	case domain.ReasonOutsideHours:
		return ErrOutsideHours
	case domain.ReasonTooSoon:
		return ErrTooSoon
	case domain.ReasonConflict:
		return ErrSlotConflict
	case domain.ReasonRestRequired:
		return ErrRestRequired
	default:
		return fmt.Errorf("%w: unexpected unavailability reason %q", ErrInternal, reason)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Identifier == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidInput)
	}

	if req.NewStartAt == nil && req.DateText == "" && req.TimeText == "" {
		return fmt.Errorf("%w: either an explicit start or date/time text is required", ErrInvalidInput)
	}

	return nil
}
