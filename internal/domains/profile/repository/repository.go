package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	bookingModel "agenda/internal/domains/booking/model"
	professionalModel "agenda/internal/domains/professional/model"
	"agenda/internal/domains/profile/model"
	scheduleModel "agenda/internal/domains/schedule/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Profile interface {
	Insert(ctx context.Context, model model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Profile, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	GetBookingOverviews(ctx context.Context, userID string) ([]model.BookingOverviewRow, error)
	GetFavorites(ctx context.Context, userID string) ([]model.FavoriteRow, error)
}

type Favorite interface {
	Insert(ctx context.Context, model model.Favorite) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Favorite) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Favorite, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type profileRepositoryImpl struct {
	gRepo.Repository[model.Profile]
	db   *postgres.Connection
	otel otel.Otel
}

func NewProfile(db *postgres.Connection, otel otel.Otel) Profile {
	return &profileRepositoryImpl{
		Repository: gRepo.NewRepository[model.Profile](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetBookingOverviews returns the user's bookings joined to their slot and the
// slot's professional, ordered by slot start time.
func (repo *profileRepositoryImpl) GetBookingOverviews(ctx context.Context, userID string) (rows []model.BookingOverviewRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".profile.GetBookingOverviews")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT %[1]s.id AS booking_id, %[2]s.start_time, %[1]s.status,
		%[3]s.email AS professional_name
		FROM %[1]s
		JOIN %[2]s ON %[2]s.id = %[1]s.slot_id
		JOIN %[3]s ON %[3]s.id = %[2]s.professional_id
		WHERE %[1]s.user_id = :user_id
		ORDER BY %[2]s.start_time`,
		bookingModel.TableName, scheduleModel.TableName, professionalModel.TableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, map[string]any{"user_id": userID})
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to get booking overviews (%s): %w", model.EntityName, err)
	}

	return rows, nil
}

// GetFavorites returns the professionals favorited by the user's profiles, in
// the order the favorites were added.
func (repo *profileRepositoryImpl) GetFavorites(ctx context.Context, userID string) (rows []model.FavoriteRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".profile.GetFavorites")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT %[3]s.id AS professional_id, %[3]s.email, %[3]s.specialty
		FROM %[2]s
		JOIN %[1]s ON %[1]s.id = %[2]s.profile_id
		JOIN %[3]s ON %[3]s.id = %[2]s.professional_id
		WHERE %[1]s.user_id = :user_id
		ORDER BY %[2]s.created_at`,
		model.TableName, model.FavoriteTableName, professionalModel.TableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, map[string]any{"user_id": userID})
	if err != nil {
		logger.ErrorWithStack(err)

		return rows, fmt.Errorf("failed to get favorites (%s): %w", model.EntityName, err)
	}

	return rows, nil
}

type favoriteRepositoryImpl struct {
	gRepo.Repository[model.Favorite]
	db   *postgres.Connection
	otel otel.Otel
}

func NewFavorite(db *postgres.Connection, otel otel.Otel) Favorite {
	return &favoriteRepositoryImpl{
		Repository: gRepo.NewRepository[model.Favorite](model.FavoriteEntityName, model.FavoriteTableName, model.FavoriteFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
