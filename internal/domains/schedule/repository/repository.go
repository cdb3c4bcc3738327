package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	bookingModel "agenda/internal/domains/booking/model"
	professionalModel "agenda/internal/domains/professional/model"
	"agenda/internal/domains/schedule/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Slot interface {
	Insert(ctx context.Context, model model.Slot) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Slot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Slot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Slot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetSchedules(ctx context.Context, professionalID string) ([]model.ScheduleRow, error)
	GetProfessionalAvailability(ctx context.Context) ([]model.AvailabilityRow, error)
	GetSlotStats(ctx context.Context, filter gDto.FilterGroup) ([]model.SlotStats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetSchedules returns every slot of the professional together with the status
// of its latest booking; slots without bookings carry PENDING.
func (repo *repositoryImpl) GetSchedules(ctx context.Context, professionalID string) (rows []model.ScheduleRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetSchedules")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT %[1]s.id, %[1]s.start_time, %[1]s.end_time, %[1]s.is_active,
		COALESCE(latest.status, '%[3]s') AS booking_status
		FROM %[1]s
		LEFT JOIN LATERAL (
			SELECT %[2]s.status FROM %[2]s
			WHERE %[2]s.slot_id = %[1]s.id
			ORDER BY %[2]s.created_at DESC
			LIMIT 1
		) latest ON TRUE
		WHERE %[1]s.professional_id = :professional_id
		ORDER BY %[1]s.start_time`,
		model.TableName, bookingModel.TableName, constant.BookingStatusPending)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, map[string]any{"professional_id": professionalID})
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to get schedules (%s): %w", model.EntityName, err)
	}

	return rows, nil
}

// GetProfessionalAvailability returns every professional joined against its
// active slots and their booking counts. Professionals without active slots
// still appear, as a single row with NULL slot columns. The display name is
// taken from the first favoriting profile when one exists.
func (repo *repositoryImpl) GetProfessionalAvailability(ctx context.Context) (rows []model.AvailabilityRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetProfessionalAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT p.id AS professional_id,
		COALESCE(pr.first_name || ' ' || pr.last_name, 'Name Unknown') AS full_name,
		p.specialty, s.id AS slot_id, s.start_time, s.end_time, s.is_active,
		COUNT(b.id) AS bookings
		FROM %s p
		LEFT JOIN %s s ON s.professional_id = p.id AND s.is_active = TRUE
		LEFT JOIN LATERAL (
			SELECT pf.profile_id FROM profile_favorites pf
			WHERE pf.professional_id = p.id
			ORDER BY pf.created_at
			LIMIT 1
		) fav ON TRUE
		LEFT JOIN profiles pr ON pr.id = fav.profile_id
		LEFT JOIN %s b ON b.slot_id = s.id
		GROUP BY p.id, p.specialty, pr.first_name, pr.last_name, s.id, s.start_time, s.end_time, s.is_active
		ORDER BY p.id, s.start_time`,
		professionalModel.TableName, model.TableName, bookingModel.TableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &rows, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to get professional availability (%s): %w", model.EntityName, err)
	}

	return rows, nil
}

// GetSlotStats returns per-slot booking counters for the slots matched by the
// filter. The filter may reference the professionals table; it is always joined.
func (repo *repositoryImpl) GetSlotStats(ctx context.Context, filter gDto.FilterGroup) (rows []model.SlotStats, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetSlotStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(`SELECT %[3]s.id,
		COUNT(%[5]s.id) AS bookings_total,
		COUNT(%[5]s.id) FILTER (WHERE %[5]s.status = '%[1]s') AS bookings_cancelled,
		COUNT(%[5]s.id) FILTER (WHERE %[5]s.status = '%[2]s') AS bookings_confirmed
		FROM %[3]s
		JOIN %[4]s ON %[4]s.id = %[3]s.professional_id
		LEFT JOIN %[5]s ON %[5]s.slot_id = %[3]s.id
		%[6]s
		GROUP BY %[3]s.id`,
		constant.BookingStatusCancelled, constant.BookingStatusConfirmed,
		model.TableName, professionalModel.TableName, bookingModel.TableName, where)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to get slot stats (%s): %w", model.EntityName, err)
	}

	return rows, nil
}
