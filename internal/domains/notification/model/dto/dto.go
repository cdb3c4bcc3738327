package dto

import (
	"agenda/internal/domains/notification/model"
	"agenda/shared/constant"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	NotificationType string   `json:"notificationType" validate:"required,max=50"`
	RecipientIDs     []string `json:"recipientIds"     validate:"required,min=1,dive,uuid"`
	MessageContent   string   `json:"messageContent"   validate:"required"`
}

// ToModels builds one notification per recipient. The stored message is the
// type prefix joined with the content, matching the outbound wire format.
func (c *CreateNotificationRequest) ToModels(user string) []model.Notification {
	notifications := make([]model.Notification, len(c.RecipientIDs))

	for i, recipientID := range c.RecipientIDs {
		notifications[i] = model.Notification{
			ID:      uuid.NewString(),
			UserID:  recipientID,
			Message: c.NotificationType + ": " + c.MessageContent,
			Read:    false,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return notifications
}

type CreateNotificationResponse struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notificationId"`
	Message        string `json:"message"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Message = model.Message
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	r.Read = model.Read
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification) {
	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}

type UpdateNotificationStatusRequest struct {
	Read        *bool  `json:"read"        validate:"required"`
	UpdaterRole string `json:"updaterRole" validate:"required,oneof=ADMIN PROFESSIONAL REGISTERED_USER GUEST"`
}

type UpdateNotificationStatusResponse struct {
	ID   string `json:"id"`
	Read bool   `json:"read"`
}

type DeleteNotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
