package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/otel/mocks"
	bookingMocks "agenda/internal/domains/booking/mocks"
	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/service"
	scheduleMocks "agenda/internal/domains/schedule/mocks"
	scheduleModel "agenda/internal/domains/schedule/model"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *scheduleMocks.MockSlot, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockSlotRepo := scheduleMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSlotRepo, kafkaMocks.NewMockClient(ctrl), cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockSlotRepo, mockCache
}

func TestBookingService_BookAppointment(t *testing.T) {
	svc, mockRepo, mockSlotRepo, mockCache := newBookingService(t)

	req := dto.BookAppointmentRequest{
		UserID:         "user-id",
		ProfessionalID: "professional-id",
		SlotID:         "slot-id",
	}

	activeSlot := scheduleModel.Slot{
		ID:             "slot-id",
		ProfessionalID: "professional-id",
		IsActive:       true,
	}

	tests := []struct {
		name        string
		setupMock   func()
		wantErr     bool
		wantStatus  string
		wantMessage string
	}{
		{
			name: "successful pending booking",
			setupMock: func() {
				mockSlotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSlot, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus:  "pending",
			wantMessage: "Booking is pending and awaiting confirmation.",
		},
		{
			name: "slot does not exist",
			setupMock: func() {
				mockSlotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(scheduleModel.Slot{}, nil)
			},
			wantStatus:  "failed",
			wantMessage: "Slot is not valid, not active, or does not belong to the specified professional.",
		},
		{
			name: "slot is inactive",
			setupMock: func() {
				mockSlotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(scheduleModel.Slot{ID: "slot-id", ProfessionalID: "professional-id", IsActive: false}, nil)
			},
			wantStatus:  "failed",
			wantMessage: "Slot is not valid, not active, or does not belong to the specified professional.",
		},
		{
			name: "slot belongs to a different professional",
			setupMock: func() {
				mockSlotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(scheduleModel.Slot{ID: "slot-id", ProfessionalID: "other-professional", IsActive: true}, nil)
			},
			wantStatus:  "failed",
			wantMessage: "Slot is not valid, not active, or does not belong to the specified professional.",
		},
		{
			name: "slot already confirmed",
			setupMock: func() {
				mockSlotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSlot, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantStatus:  "failed",
			wantMessage: "Slot is already confirmed for another booking.",
		},
		{
			name: "repository error",
			setupMock: func() {
				mockSlotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(scheduleModel.Slot{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.BookAppointment(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantMessage, res.Message)

			if tt.wantStatus == "pending" {
				assert.NotEmpty(t, res.BookingID)
			} else {
				assert.Empty(t, res.BookingID)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "cache miss, successful get from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						{ID: "booking-1", Status: constant.BookingStatusPending},
						{ID: "booking-2", Status: constant.BookingStatusConfirmed},
					}, nil)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

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
				assert.Len(t, res.Bookings, tt.wantLen)
				assert.Equal(t, 2, res.TotalData)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache miss, successful get from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", UserID: "user-id", SlotID: "slot-id", Status: constant.BookingStatusPending}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "booking not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", res.ID)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	req := dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful confirmation",
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", Status: constant.BookingStatusConfirmed}, nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "slot already confirmed for another booking",
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), &pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "booking not found",
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

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")
			res, err := svc.Update(ctx, req, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
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
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "booking not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
