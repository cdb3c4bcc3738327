package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	notificationMocks "agenda/internal/domains/notification/mocks"
	"agenda/internal/domains/notification/model"
	"agenda/internal/domains/notification/model/dto"
	"agenda/internal/domains/notification/service"
	"agenda/permissions"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
)

func newNotificationService(t *testing.T) (service.Notification, *notificationMocks.MockNotification, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	permissionData := &permissions.PermissionData{
		Actions: []permissions.Action{
			{
				Name:  "notification.update_status",
				Roles: []string{constant.RoleAdmin, constant.RoleProfessional, constant.RoleRegisteredUser},
			},
		},
	}

	svc := service.New(mockRepo, permissionData, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestNotificationService_Create(t *testing.T) {
	svc, mockRepo, mockCache := newNotificationService(t)

	tests := []struct {
		name        string
		req         dto.CreateNotificationRequest
		setupMock   func()
		wantErr     bool
		wantSuccess bool
		wantMessage string
	}{
		{
			name: "successful creation for multiple recipients",
			req: dto.CreateNotificationRequest{
				NotificationType: "BOOKING_CONFIRMED",
				RecipientIDs:     []string{"user-1", "user-2"},
				MessageContent:   "Your booking has been confirmed.",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantSuccess: true,
			wantMessage: "Notifications created successfully.",
		},
		{
			name: "no recipients",
			req: dto.CreateNotificationRequest{
				NotificationType: "BOOKING_CONFIRMED",
				RecipientIDs:     []string{},
				MessageContent:   "Your booking has been confirmed.",
			},
			setupMock:   func() {},
			wantSuccess: false,
			wantMessage: "Failed to create notifications.",
		},
		{
			name: "repository error",
			req: dto.CreateNotificationRequest{
				NotificationType: "BOOKING_CONFIRMED",
				RecipientIDs:     []string{"user-1"},
				MessageContent:   "Your booking has been confirmed.",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)

			if tt.wantSuccess {
				assert.NotEmpty(t, res.NotificationID)
			}
		})
	}
}

func TestNotificationService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newNotificationService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.GetNotificationsResponse)
						res.Notifications = []dto.NotificationResponse{{ID: "notification-1"}}

						return nil
					})
			},
			wantLen: 1,
		},
		{
			name: "cache miss, successful get from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Notification{
						{ID: "notification-1", UserID: "user-1", Message: "BOOKING_CONFIRMED: confirmed"},
						{ID: "notification-2", UserID: "user-1", Message: "BOOKING_CANCELLED: cancelled"},
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantLen: 2,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Notifications, tt.wantLen)
			}
		})
	}
}

func TestNotificationService_UpdateStatus(t *testing.T) {
	svc, mockRepo, mockCache := newNotificationService(t)

	read := true

	tests := []struct {
		name      string
		req       dto.UpdateNotificationStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful status update",
			req:  dto.UpdateNotificationStatusRequest{Read: &read, UpdaterRole: constant.RoleAdmin},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "updater role not allowed",
			req:       dto.UpdateNotificationStatusRequest{Read: &read, UpdaterRole: constant.RoleGuest},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusForbidden,
		},
		{
			name: "notification not found",
			req:  dto.UpdateNotificationStatusRequest{Read: &read, UpdaterRole: constant.RoleAdmin},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			res, err := svc.UpdateStatus(ctx, tt.req, "notification-id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "notification-id", res.ID)
				assert.True(t, res.Read)
			}
		})
	}
}

func TestNotificationService_Delete(t *testing.T) {
	svc, mockRepo, mockCache := newNotificationService(t)

	tests := []struct {
		name        string
		setupMock   func()
		wantErr     bool
		wantSuccess bool
		wantMessage string
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantSuccess: true,
			wantMessage: "Notification deleted successfully.",
		},
		{
			name: "notification not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantSuccess: false,
			wantMessage: "Notification not found.",
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Delete(context.Background(), "notification-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
		})
	}
}
