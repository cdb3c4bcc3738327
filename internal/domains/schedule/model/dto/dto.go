package dto

import (
	"time"

	notifDto "agenda/internal/domains/notification/model/dto"
	"agenda/internal/domains/schedule/model"
	"agenda/shared/constant"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	ProfessionalID string `json:"professionalId" validate:"required,uuid"`
	StartTime      string `json:"startTime"      validate:"required"`
	EndTime        string `json:"endTime"        validate:"required"`
	ActivityType   string `json:"activityType"   validate:"required,max=100"`
	IsActive       bool   `json:"isActive"`
}

func (c *CreateScheduleRequest) ToModel(user string) (model.Slot, error) {
	startTime, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Slot{}, err
	}

	endTime, err := time.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return model.Slot{}, err
	}

	return model.Slot{
		ID:             uuid.NewString(),
		ProfessionalID: c.ProfessionalID,
		StartTime:      startTime,
		EndTime:        endTime,
		IsActive:       c.IsActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type CreateScheduleResponse struct {
	ScheduleID          string `json:"scheduleId"`
	ProfessionalID      string `json:"professionalId"`
	WasNotificationSent bool   `json:"wasNotificationSent"`
	IsActive            bool   `json:"isActive"`
}

type UpdateScheduleRequest struct {
	StartTime      string `json:"startTime"      validate:"required"`
	EndTime        string `json:"endTime"        validate:"required"`
	ProfessionalID string `json:"professionalId" validate:"required,uuid"`
	Activity       string `json:"activity"       validate:"required,max=100"`
}

func (u *UpdateScheduleRequest) ParseTimes() (startTime, endTime time.Time, err error) {
	startTime, err = time.Parse(constant.DateFormat, u.StartTime)
	if err != nil {
		return startTime, endTime, err
	}

	endTime, err = time.Parse(constant.DateFormat, u.EndTime)

	return startTime, endTime, err
}

type UpdateScheduleResponse struct {
	Updated      bool                          `json:"updated"`
	ScheduleID   string                        `json:"scheduleId"`
	Notification notifDto.NotificationResponse `json:"notification"`
}

// Messages carried by DeleteScheduleResponse. The handler maps them to status
// codes, so they are shared constants rather than inline literals.
const (
	MessageScheduleDeleted      = "Schedule successfully deleted."
	MessageScheduleDeleteDenied = "Request denied: unauthorized role."
	MessageScheduleNotFound     = "No such schedule exists."
)

type DeleteScheduleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProfessionalSchedule struct {
	SlotID        string `json:"slotId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	IsActive      bool   `json:"isActive"`
	BookingStatus string `json:"bookingStatus"`
}

type GetSchedulesResponse struct {
	Schedules []ProfessionalSchedule `json:"schedules"`
}

func (r *GetSchedulesResponse) FromRows(rows []model.ScheduleRow) {
	r.Schedules = make([]ProfessionalSchedule, len(rows))
	for i, row := range rows {
		r.Schedules[i] = ProfessionalSchedule{
			SlotID:        row.SlotID,
			StartTime:     timezone.Format(row.StartTime, constant.DateFormat),
			EndTime:       timezone.Format(row.EndTime, constant.DateFormat),
			IsActive:      row.IsActive,
			BookingStatus: row.BookingStatus,
		}
	}
}

type SlotDetails struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
	Bookings  int    `json:"bookings"`
}

type ProfessionalAvailability struct {
	ProfessionalID string        `json:"professionalId"`
	FullName       string        `json:"fullName"`
	Specialty      string        `json:"specialty"`
	Slots          []SlotDetails `json:"slots"`
}

type GetAvailabilityResponse struct {
	Professionals []ProfessionalAvailability `json:"professionals"`
}

// FromRows groups the flat per-slot rows by professional, preserving row order.
// A row with NULL slot columns registers the professional with an empty slot
// list.
func (r *GetAvailabilityResponse) FromRows(rows []model.AvailabilityRow) {
	r.Professionals = []ProfessionalAvailability{}

	indexByProfessional := map[string]int{}

	for _, row := range rows {
		idx, ok := indexByProfessional[row.ProfessionalID]
		if !ok {
			r.Professionals = append(r.Professionals, ProfessionalAvailability{
				ProfessionalID: row.ProfessionalID,
				FullName:       row.FullName,
				Specialty:      row.Specialty,
				Slots:          []SlotDetails{},
			})

			idx = len(r.Professionals) - 1
			indexByProfessional[row.ProfessionalID] = idx
		}

		if !row.SlotID.Valid {
			continue
		}

		r.Professionals[idx].Slots = append(r.Professionals[idx].Slots, SlotDetails{
			StartTime: timezone.Format(row.StartTime.Time, constant.DateFormat),
			EndTime:   timezone.Format(row.EndTime.Time, constant.DateFormat),
			IsActive:  row.IsActive.Bool,
			Bookings:  row.Bookings,
		})
	}
}

type AvailabilityResponse struct {
	Availability string `json:"availability"`
}

// ScheduleEvent is the payload published to the domain-event stream.
type ScheduleEvent struct {
	Event          string `json:"event"`
	ScheduleID     string `json:"scheduleId"`
	ProfessionalID string `json:"professionalId,omitempty"`
	OccurredAt     string `json:"occurredAt"`
}
