package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldSlotID = "slot_id"
	FieldStatus = "status"
)

type Booking struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	SlotID string `db:"slot_id"`
	Status string `db:"status"`
	model.Metadata
}
