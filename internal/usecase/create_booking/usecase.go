package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	identityClient "github.com/m04kA/PMS-SchedulingService/internal/integrations/identityservice"
	"github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

// UseCase use case для создания бронирования
//
// Проверка доступности и запись выполняются одной сериализуемой
// транзакцией: чтение бронирований внутри неё блокирует строки (FOR UPDATE),
// поэтому из двух одновременных запросов на один интервал выигрывает
// ровно один
type UseCase struct {
	bookingRepo    BookingRepository
	checker        AvailabilityChecker
	alternatives   AlternativesFinder
	identityClient IdentityServiceClient
	resolver       DateTimeResolver
	calendar       *domain.BusinessCalendar
	typeCatalog    domain.AppointmentTypeCatalog
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checker AvailabilityChecker,
	alternatives AlternativesFinder,
	identityClient IdentityServiceClient,
	resolver DateTimeResolver,
	calendar *domain.BusinessCalendar,
	typeCatalog domain.AppointmentTypeCatalog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		checker:        checker,
		alternatives:   alternatives,
		identityClient: identityClient,
		resolver:       resolver,
		calendar:       calendar,
		typeCatalog:    typeCatalog,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: resource=%d, subject=%v, type=%q, at=%v, date=%q, time=%q",
		req.ResourceID, req.SubjectID, req.AppointmentType, req.StartAt, req.DateText, req.TimeText)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.resolver.Location())

	// 3. Определяем момент начала: явный инстант или текстовые фрагменты
	start, err := uc.resolveStart(req, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve start: %v", err)
		return nil, err
	}

	// 4. Определяем длительность по каталогу типов приёма
	duration, err := resolveDuration(uc.typeCatalog, req.AppointmentType, req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve duration: %v", err)
		return nil, err
	}

	// 5. Разрешаем пациента через сервис идентификации
	subject, err := uc.resolveSubject(ctx, req)
	if err != nil {
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка доступности и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Повторная проверка доступности с блокировкой строк
		availability, err := uc.checker.Check(txCtx, req.ResourceID, start, duration)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !availability.Available {
			uc.logger.Warn("CreateBooking: interval unavailable, resource=%d, start=%s, reason=%s",
				req.ResourceID, start.Format(domain.DateFormat+" "+domain.TimeFormat), availability.Reason)
			return reasonToError(availability.Reason)
		}

		// 6.2. Создаем бронирование с кодом подтверждения
		booking := &domain.Booking{
			ConfirmationCode: domain.NewConfirmationCode(now),
			ResourceID:       req.ResourceID,
			SubjectID:        subject.ID,
			StartAt:          start,
			DurationMinutes:  duration,
			AppointmentType:  req.AppointmentType,
			Status:           domain.StatusScheduled,
			SubjectName:      subjectName(subject),
			Notes:            req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	// 7. При конфликте предлагаем альтернативы вместо голого отказа
	if errors.Is(err, ErrSlotConflict) {
		return uc.buildConflictResponse(ctx, req.ResourceID, start, duration), err
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, code=%s", result.ID, result.ConfirmationCode)

	return &Response{
		ID:               result.ID,
		ConfirmationCode: result.ConfirmationCode,
		ResourceID:       result.ResourceID,
		SubjectID:        result.SubjectID,
		SubjectName:      result.SubjectName,
		StartAt:          result.StartAt,
		DurationMinutes:  result.DurationMinutes,
		AppointmentType:  result.AppointmentType,
		Status:           string(result.Status),
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// resolveStart определяет момент начала из явного инстанта или текста
func (uc *UseCase) resolveStart(req *Request, now time.Time) (time.Time, error) {
	if req.StartAt != nil {
		return req.StartAt.In(uc.resolver.Location()), nil
	}
	return uc.resolver.Resolve(req.DateText, req.TimeText, now, uc.calendar)
}

// resolveSubject разрешает пациента: по известному ID или через
// поиск/создание по контактным данным
func (uc *UseCase) resolveSubject(ctx context.Context, req *Request) (*identityClient.Subject, error) {
	if req.SubjectID != nil {
		subject, err := uc.identityClient.GetSubject(ctx, *req.SubjectID)
		if err != nil {
			if errors.Is(err, identityClient.ErrSubjectNotFound) {
				uc.logger.Warn("CreateBooking: subject id=%d not found", *req.SubjectID)
				return nil, ErrSubjectNotFound
			}
			uc.logger.Error("CreateBooking: failed to get subject id=%d: %v", *req.SubjectID, err)
			return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
		}
		return subject, nil
	}

	subject, err := uc.identityClient.FindOrCreateSubject(ctx, &identityClient.FindOrCreateRequest{
		Phone: req.SubjectPhone,
		Email: req.SubjectEmail,
		Name:  req.SubjectName,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find or create subject: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}

	if subject.Created {
		uc.logger.Info("CreateBooking: created new subject id=%d", subject.ID)
	}
	return subject, nil
}

// buildConflictResponse собирает предложения альтернатив при конфликте
// Сбой поиска альтернатив не скрывает исходный конфликт
func (uc *UseCase) buildConflictResponse(ctx context.Context, resourceID int64, start time.Time, duration int) *Response {
	resp := &Response{}

	found, err := uc.alternatives.Execute(ctx, &find_alternatives.Request{
		ResourceID:      resourceID,
		Preferred:       start,
		DurationMinutes: duration,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find alternatives: %v", err)
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

// subjectName возвращает имя пациента для денормализации в бронировании
func subjectName(subject *identityClient.Subject) *string {
	if subject.Name == "" {
		return nil
	}
	name := subject.Name
	return &name
}
