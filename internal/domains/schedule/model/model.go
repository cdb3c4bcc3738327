package model

import (
	"database/sql"
	"time"

	"agenda/shared/model"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID             = "id"
	FieldProfessionalID = "professional_id"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldIsActive       = "is_active"
)

type Slot struct {
	ID             string    `db:"id"`
	ProfessionalID string    `db:"professional_id"`
	StartTime      time.Time `db:"start_time"`
	EndTime        time.Time `db:"end_time"`
	IsActive       bool      `db:"is_active"`
	model.Metadata
}

// ScheduleRow is a slot joined with the status of its most recent booking.
// Slots without bookings report PENDING.
type ScheduleRow struct {
	SlotID        string    `db:"id"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	IsActive      bool      `db:"is_active"`
	BookingStatus string    `db:"booking_status"`
}

// AvailabilityRow is one professional paired with one of its active slots and
// that slot's booking count. The slot columns are nullable: a professional
// without active slots still produces a single row.
type AvailabilityRow struct {
	ProfessionalID string         `db:"professional_id"`
	FullName       string         `db:"full_name"`
	Specialty      string         `db:"specialty"`
	SlotID         sql.NullString `db:"slot_id"`
	StartTime      sql.NullTime   `db:"start_time"`
	EndTime        sql.NullTime   `db:"end_time"`
	IsActive       sql.NullBool   `db:"is_active"`
	Bookings       int            `db:"bookings"`
}

// SlotStats carries per-slot booking counters used by the availability checks.
type SlotStats struct {
	SlotID            string `db:"id"`
	BookingsTotal     int    `db:"bookings_total"`
	BookingsCancelled int    `db:"bookings_cancelled"`
	BookingsConfirmed int    `db:"bookings_confirmed"`
}
