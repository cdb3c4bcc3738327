package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	postgresMocks "agenda/infras/postgres/mocks"
	s3Mocks "agenda/infras/s3/mocks"
	bookingMocks "agenda/internal/domains/booking/mocks"
	notificationMocks "agenda/internal/domains/notification/mocks"
	professionalMocks "agenda/internal/domains/professional/mocks"
	profileMocks "agenda/internal/domains/profile/mocks"
	"agenda/internal/domains/profile/model"
	"agenda/internal/domains/profile/model/dto"
	"agenda/internal/domains/profile/service"
	userMocks "agenda/internal/domains/user/mocks"
	userModel "agenda/internal/domains/user/model"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	"agenda/shared/failure"
)

type profileMockSet struct {
	repo             *profileMocks.MockProfile
	favoriteRepo     *profileMocks.MockFavorite
	userRepo         *userMocks.MockUser
	bookingRepo      *bookingMocks.MockBooking
	notificationRepo *notificationMocks.MockNotification
	professionalRepo *professionalMocks.MockProfessional
	cache            *cacheMocks.MockRedisCache
	s3               *s3Mocks.MockS3
}

func newProfileService(t *testing.T) (service.Profile, profileMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	set := profileMockSet{
		repo:             profileMocks.NewMockProfile(ctrl),
		favoriteRepo:     profileMocks.NewMockFavorite(ctrl),
		userRepo:         userMocks.NewMockUser(ctrl),
		bookingRepo:      bookingMocks.NewMockBooking(ctrl),
		notificationRepo: notificationMocks.NewMockNotification(ctrl),
		professionalRepo: professionalMocks.NewMockProfessional(ctrl),
		cache:            cacheMocks.NewMockRedisCache(ctrl),
		s3:               s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(
		set.repo,
		set.favoriteRepo,
		set.userRepo,
		set.bookingRepo,
		set.notificationRepo,
		set.professionalRepo,
		postgresMocks.NewTxRunner(),
		cfg,
		set.cache,
		mocks.NewOtel(),
		set.s3,
	)

	return svc, set
}

func TestProfileService_Create(t *testing.T) {
	svc, set := newProfileService(t)

	req := dto.CreateProfileRequest{
		UserID:    "user-id",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func() {
				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id", Email: "jane@example.com"}, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					GetBookingOverviews(gomock.Any(), "user-id").
					Return([]model.BookingOverviewRow{}, nil)

				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return([]model.FavoriteRow{}, nil)
			},
		},
		{
			name: "user not found",
			setupMock: func() {
				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "profile already exists",
			setupMock: func() {
				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id", Email: "jane@example.com"}, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func() {
				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.Create(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "user-id", res.UserID)
			assert.Equal(t, "Jane Doe", res.Name)
			assert.Equal(t, "jane@example.com", res.Email)
			assert.Empty(t, res.BookedAppointments)
		})
	}
}

func TestProfileService_Get(t *testing.T) {
	svc, set := newProfileService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.UserProfileResponse)
						res.UserID = "user-id"
						res.Name = "Jane Doe"

						return nil
					})
			},
		},
		{
			name: "cache miss, successful get from db",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id", Email: "jane@example.com"}, nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id", FirstName: "Jane", LastName: "Doe"}, nil)

				set.repo.EXPECT().
					GetBookingOverviews(gomock.Any(), "user-id").
					Return([]model.BookingOverviewRow{
						{BookingID: "booking-1", StartTime: time.Now(), Status: constant.BookingStatusConfirmed, ProfessionalName: "dr.house@example.com"},
					}, nil)

				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return([]model.FavoriteRow{
						{ProfessionalID: "professional-1", Email: "dr.house@example.com", Specialty: "Diagnostics"},
					}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "user or profile not found",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id"}, nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "user-id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "user-id", res.UserID)
			assert.Equal(t, "Jane Doe", res.Name)
		})
	}
}

func TestProfileService_ListFavorites(t *testing.T) {
	svc, set := newProfileService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "successful list",
			setupMock: func() {
				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return([]model.FavoriteRow{
						{ProfessionalID: "professional-1", Email: "one@example.com", Specialty: "Cardiology"},
						{ProfessionalID: "professional-2", Email: "two@example.com", Specialty: "Dermatology"},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "no favorites",
			setupMock: func() {
				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return([]model.FavoriteRow{}, nil)
			},
			wantLen: 0,
		},
		{
			name: "repository error",
			setupMock: func() {
				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ListFavorites(context.Background(), "user-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Favorites, tt.wantLen)
			}
		})
	}
}

func TestProfileService_AddFavorite(t *testing.T) {
	svc, set := newProfileService(t)

	req := dto.AddFavoriteRequest{ProfessionalID: "professional-id"}

	favorites := []model.FavoriteRow{
		{ProfessionalID: "professional-id", Email: "dr.house@example.com", Specialty: "Diagnostics"},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful addition",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.favoriteRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.professionalRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.favoriteRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return(favorites, nil)
			},
		},
		{
			name: "already a favorite returns the unchanged list",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.favoriteRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return(favorites, nil)
			},
		},
		{
			name: "profile not found",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "professional does not exist",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.favoriteRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.professionalRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.AddFavorite(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Favorites, 1)
			assert.Equal(t, "professional-id", res.Favorites[0].ProfessionalID)
		})
	}
}

func TestProfileService_RemoveFavorite(t *testing.T) {
	svc, set := newProfileService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "successful removal",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.favoriteRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.favoriteRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					GetFavorites(gomock.Any(), "user-id").
					Return([]model.FavoriteRow{}, nil)
			},
			wantLen: 0,
		},
		{
			name: "favorite not linked returns empty list",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.favoriteRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantLen: 0,
		},
		{
			name: "repository error",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.RemoveFavorite(ctx, "professional-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Favorites, tt.wantLen)
			}
		})
	}
}

func TestProfileService_Update(t *testing.T) {
	svc, set := newProfileService(t)

	req := dto.UpdateProfileRequest{
		Email:     "jane.new@example.com",
		Favorites: []string{"professional-1", "professional-2"},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "replaces favorites in one transaction",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.userRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				set.favoriteRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.favoriteRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "profile does not exist",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "favorite replacement fails",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Profile{ID: "profile-id", UserID: "user-id"}, nil)

				set.userRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				set.favoriteRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.Update(ctx, req, "user-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "user-id", res.UserID)
			assert.Equal(t, req.Email, res.Email)
			assert.Equal(t, req.Favorites, res.Favorites)
		})
	}
}

func TestProfileService_Delete(t *testing.T) {
	svc, set := newProfileService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "removes the user and everything related",
			setupMock: func() {
				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Profile{{ID: "profile-id", UserID: "user-id"}}, nil)

				set.bookingRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.notificationRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.favoriteRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.userRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "transaction fails on booking cleanup",
			setupMock: func() {
				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Profile{{ID: "profile-id", UserID: "user-id"}}, nil)

				set.bookingRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.Delete(ctx, "user-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "User and all related data have been successfully deleted.", res.Message)
		})
	}
}
