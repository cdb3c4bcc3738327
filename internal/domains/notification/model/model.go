package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldMessage = "message"
	FieldRead    = "read"
)

type Notification struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	Message string `db:"message"`
	Read    bool   `db:"read"`
	model.Metadata
}
