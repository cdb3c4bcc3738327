package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	bookingModel "agenda/internal/domains/booking/model"
	bookingRepo "agenda/internal/domains/booking/repository"
	notifModel "agenda/internal/domains/notification/model"
	notifRepo "agenda/internal/domains/notification/repository"
	professionalModel "agenda/internal/domains/professional/model"
	professionalRepo "agenda/internal/domains/professional/repository"
	"agenda/internal/domains/schedule/model"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/internal/domains/schedule/repository"
	"agenda/permissions"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetSchedules    = "schedule:gets"
	cacheGetAvailability = "schedule:availability"

	actionDeleteSchedule = "schedule.delete"
)

// CheckAvailabilityQuery carries the optional filters of the availability check.
type CheckAvailabilityQuery struct {
	ProfessionalID string
	Specialty      string
	StartDate      string
	EndDate        string
}

type Schedule interface {
	Create(ctx context.Context, req dto.CreateScheduleRequest) (dto.CreateScheduleResponse, error)
	Update(ctx context.Context, req dto.UpdateScheduleRequest, id string) (dto.UpdateScheduleResponse, error)
	Delete(ctx context.Context, id, requesterRole string) (dto.DeleteScheduleResponse, error)
	GetSchedules(ctx context.Context, professionalID string) (dto.GetSchedulesResponse, error)
	GetAvailability(ctx context.Context) (dto.GetAvailabilityResponse, error)
	CheckAvailability(ctx context.Context, query CheckAvailabilityQuery) (dto.AvailabilityResponse, error)
	GetProfessionalAvailability(ctx context.Context, professionalID string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo             repository.Slot
	bookingRepo      bookingRepo.Booking
	notificationRepo notifRepo.Notification
	professionalRepo professionalRepo.Professional
	db               postgres.TxRunner
	permissions      *permissions.PermissionData
	kafkaClient      kafka.Client
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(
	repo repository.Slot,
	bookingRepository bookingRepo.Booking,
	notificationRepository notifRepo.Notification,
	professionalRepository professionalRepo.Professional,
	db postgres.TxRunner,
	permissionData *permissions.PermissionData,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Schedule {
	return &serviceImpl{
		repo:             repo,
		bookingRepo:      bookingRepository,
		notificationRepo: notificationRepository,
		professionalRepo: professionalRepository,
		db:               db,
		permissions:      permissionData,
		kafkaClient:      kafkaClient,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateScheduleRequest) (res dto.CreateScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	professionalExists, err := s.professionalRepo.Exist(ctx, shared.FilterByID(req.ProfessionalID, professionalModel.FieldID, professionalModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if professional exists")

		return res, fmt.Errorf("failed to check if professional exists: %w", err)
	}

	if !professionalExists {
		return res, failure.NotFound("Professional with the given ID does not exist") // nolint:wrapcheck
	}

	slot, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse schedule request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	// Closed-interval overlap: start <= requestedEnd AND end >= requestedStart.
	overlapFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProfessionalID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.ProfessionalID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_end",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorLessEq,
				Value:    slot.EndTime,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_start",
				Field:    model.FieldEndTime,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    slot.StartTime,
				Table:    model.TableName,
			},
		},
	}

	overlaps, err := s.repo.Exist(ctx, overlapFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check for slot overlap")

		return res, fmt.Errorf("failed to check for slot overlap: %w", err)
	}

	if overlaps {
		return res, failure.Conflict("This time slot conflicts with an existing schedule.") // nolint:wrapcheck
	}

	notification := notifModel.Notification{
		ID:      uuid.NewString(),
		UserID:  req.ProfessionalID,
		Message: fmt.Sprintf("New schedule created from %s to %s.", timezone.Format(slot.StartTime, constant.DateFormat), timezone.Format(slot.EndTime, constant.DateFormat)),
		Read:    false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, slot); err != nil {
			return err
		}

		return s.notificationRepo.InsertTx(ctx, tx, notification)
	})
	if err != nil {
		// The exclusion constraint backs the overlap check against concurrent
		// creates racing past the read above.
		if postgres.ErrorCode(err) == constant.PqErrorCodeExclusionViolation {
			return res, failure.Conflict("This time slot conflicts with an existing schedule.") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create schedule")

		return res, fmt.Errorf("failed to create schedule: %w", err)
	}

	res.ScheduleID = slot.ID
	res.ProfessionalID = slot.ProfessionalID
	res.WasNotificationSent = true
	res.IsActive = slot.IsActive

	s.publishEvent(ctx, constant.EventScheduleCreated, slot.ID, slot.ProfessionalID)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetSchedules)
		shared.InvalidateCaches(c, s.cache, cacheGetAvailability)
	}()

	return res, nil
}

// Update overwrites the slot's time range and professional without re-checking
// overlaps. A missing slot is not an error: the response reports updated=false
// with an empty notification placeholder.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateScheduleRequest, id string) (res dto.UpdateScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	startTime, endTime, err := req.ParseTimes()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse schedule update request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	res.ScheduleID = id

	affected, err := s.repo.Update(ctx, map[string]any{
		model.FieldStartTime:      startTime,
		model.FieldEndTime:        endTime,
		model.FieldProfessionalID: req.ProfessionalID,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update schedule")

		return res, fmt.Errorf("failed to update schedule: %w", err)
	}

	if affected == 0 {
		res.Updated = false
		res.Notification.CreatedAt = timezone.Format(timezone.Now(), constant.DateFormat)

		return res, nil
	}

	notification := notifModel.Notification{
		ID:      uuid.NewString(),
		UserID:  req.ProfessionalID,
		Message: fmt.Sprintf("Schedule updated: %s from %s to %s.", req.Activity, timezone.Format(startTime, constant.DateFormat), timezone.Format(endTime, constant.DateFormat)),
		Read:    false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.notificationRepo.Insert(ctx, notification); err != nil {
		log.Error().Err(err).Msg("failed to create schedule update notification")

		return res, fmt.Errorf("failed to create schedule update notification: %w", err)
	}

	res.Updated = true
	res.Notification.FromModel(notification)

	s.publishEvent(ctx, constant.EventScheduleUpdated, id, req.ProfessionalID)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetSchedules)
		shared.InvalidateCaches(c, s.cache, cacheGetAvailability)
	}()

	return res, nil
}

// Delete cancels every booking on the slot, notifies each affected user and
// soft-deletes the slot, all in one transaction.
func (s *serviceImpl) Delete(ctx context.Context, id, requesterRole string) (res dto.DeleteScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.permissions.IsActionAllowed(actionDeleteSchedule, requesterRole) {
		res.Success = false
		res.Message = dto.MessageScheduleDeleteDenied

		return res, nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return res, fmt.Errorf("failed to get schedule: %w", err)
	}

	if slot.ID == constant.Empty {
		res.Success = false
		res.Message = dto.MessageScheduleNotFound

		return res, nil
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldSlotID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for schedule")

		return res, fmt.Errorf("failed to get bookings for schedule: %w", err)
	}

	cancelledMessage := fmt.Sprintf("Booking for slot starting at %s has been cancelled.", timezone.Format(slot.StartTime, constant.DateFormat))

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, booking := range bookings {
			_, err := s.bookingRepo.UpdateTx(ctx, tx, map[string]any{
				bookingModel.FieldStatus: constant.BookingStatusCancelled,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName))
			if err != nil {
				return err
			}

			notification := notifModel.Notification{
				ID:      uuid.NewString(),
				UserID:  booking.UserID,
				Message: cancelledMessage,
				Read:    false,
				Metadata: gModel.Metadata{
					CreatedAt:  timezone.Now(),
					ModifiedAt: timezone.Now(),
					CreatedBy:  user,
					ModifiedBy: user,
				},
			}

			if err := s.notificationRepo.InsertTx(ctx, tx, notification); err != nil {
				return err
			}
		}

		_, err := s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldIsActive:      false,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete schedule")

		return res, fmt.Errorf("failed to delete schedule: %w", err)
	}

	res.Success = true
	res.Message = dto.MessageScheduleDeleted

	s.publishEvent(ctx, constant.EventScheduleDeleted, id, slot.ProfessionalID)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetSchedules)
		shared.InvalidateCaches(c, s.cache, cacheGetAvailability)
	}()

	return res, nil
}

func (s *serviceImpl) GetSchedules(ctx context.Context, professionalID string) (res dto.GetSchedulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSchedules")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSchedules, professionalID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedules")

		return res, nil
	}

	rows, err := s.repo.GetSchedules(ctx, professionalID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return res, fmt.Errorf("failed to get schedules: %w", err)
	}

	res.FromRows(rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedules to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAvailability(ctx context.Context) (res dto.GetAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAvailability, "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	rows, err := s.repo.GetProfessionalAvailability(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	res.FromRows(rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

// CheckAvailability classifies the matching active slots: a slot with no
// bookings, or only cancelled ones, makes the answer "available"; otherwise any
// booked slot makes it "busy"; no matching slots means "unavailable".
func (s *serviceImpl) CheckAvailability(ctx context.Context, query CheckAvailabilityQuery) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	if query.ProfessionalID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldProfessionalID,
			Operator: gDto.FilterOperatorEq,
			Value:    query.ProfessionalID,
			Table:    model.TableName,
		})
	}

	if query.Specialty != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    professionalModel.FieldSpecialty,
			Operator: gDto.FilterOperatorEq,
			Value:    query.Specialty,
			Table:    professionalModel.TableName,
		})
	}

	if query.StartDate != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "start_date",
			Field:    model.FieldStartTime,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    query.StartDate,
			Table:    model.TableName,
		})
	}

	if query.EndDate != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "end_date",
			Field:    model.FieldEndTime,
			Operator: gDto.FilterOperatorLessEq,
			Value:    query.EndDate,
			Table:    model.TableName,
		})
	}

	stats, err := s.repo.GetSlotStats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot stats")

		return res, fmt.Errorf("failed to get slot stats: %w", err)
	}

	res.Availability = constant.AvailabilityUnavailable

	for _, slot := range stats {
		if slot.BookingsTotal == 0 || slot.BookingsCancelled == slot.BookingsTotal {
			res.Availability = constant.AvailabilityAvailable

			return res, nil
		}
	}

	for _, slot := range stats {
		if slot.BookingsTotal > 0 {
			res.Availability = constant.AvailabilityBusy

			break
		}
	}

	return res, nil
}

// GetProfessionalAvailability reports on the professional's active slots whose
// interval contains the current time: "available" when none of them has a
// confirmed booking, "busy" otherwise.
func (s *serviceImpl) GetProfessionalAvailability(ctx context.Context, professionalID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfessionalAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProfessionalID,
				Operator: gDto.FilterOperatorEq,
				Value:    professionalID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "now_start",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorLessEq,
				Value:    now,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "now_end",
				Field:    model.FieldEndTime,
				Operator: gDto.FilterOperatorGreater,
				Value:    now,
				Table:    model.TableName,
			},
		},
	}

	stats, err := s.repo.GetSlotStats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot stats")

		return res, fmt.Errorf("failed to get slot stats: %w", err)
	}

	res.Availability = constant.AvailabilityAvailable

	for _, slot := range stats {
		if slot.BookingsConfirmed > 0 {
			res.Availability = constant.AvailabilityBusy

			break
		}
	}

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event, scheduleID, professionalID string) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafkaClient.SendMessages(c, constant.KafkaTopicDomainEvents, kafka.Message{
			Key: scheduleID,
			Value: dto.ScheduleEvent{
				Event:          event,
				ScheduleID:     scheduleID,
				ProfessionalID: professionalID,
				OccurredAt:     timezone.Format(timezone.Now(), constant.DateFormat),
			},
		})
		if err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish schedule event")
		}
	}()
}
