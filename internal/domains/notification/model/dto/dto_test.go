package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agenda/internal/domains/notification/model"
	"agenda/internal/domains/notification/model/dto"
)

func TestCreateNotificationRequest_ToModels(t *testing.T) {
	req := dto.CreateNotificationRequest{
		NotificationType: "BOOKING_CONFIRMED",
		RecipientIDs:     []string{"user-1", "user-2"},
		MessageContent:   "Your booking has been confirmed.",
	}

	notifications := req.ToModels("admin-id")

	assert.Len(t, notifications, 2)

	for i, notification := range notifications {
		assert.NotEmpty(t, notification.ID)
		assert.Equal(t, req.RecipientIDs[i], notification.UserID)
		assert.Equal(t, "BOOKING_CONFIRMED: Your booking has been confirmed.", notification.Message)
		assert.False(t, notification.Read)
		assert.Equal(t, "admin-id", notification.CreatedBy)
	}
}

func TestCreateNotificationRequest_ToModelsEmpty(t *testing.T) {
	req := dto.CreateNotificationRequest{
		NotificationType: "BOOKING_CONFIRMED",
		MessageContent:   "Your booking has been confirmed.",
	}

	assert.Empty(t, req.ToModels("admin-id"))
}

func TestGetNotificationsResponse_FromModels(t *testing.T) {
	models := []model.Notification{
		{ID: "notification-1", UserID: "user-1", Message: "BOOKING_CONFIRMED: confirmed", Read: false},
		{ID: "notification-2", UserID: "user-1", Message: "BOOKING_CANCELLED: cancelled", Read: true},
	}

	var res dto.GetNotificationsResponse
	res.FromModels(models)

	assert.Len(t, res.Notifications, 2)
	assert.Equal(t, "notification-1", res.Notifications[0].ID)
	assert.False(t, res.Notifications[0].Read)
	assert.True(t, res.Notifications[1].Read)
}
