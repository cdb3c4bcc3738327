package dto

import (
	"agenda/internal/domains/booking/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	UserID         string `json:"userId"         validate:"required,uuid"`
	ProfessionalID string `json:"professionalId" validate:"required,uuid"`
	SlotID         string `json:"slotId"         validate:"required,uuid"`
}

func (b *BookAppointmentRequest) ToModel(user string) model.Booking {
	return model.Booking{
		ID:     uuid.NewString(),
		UserID: b.UserID,
		SlotID: b.SlotID,
		Status: constant.BookingStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookAppointmentResponse struct {
	BookingID string `json:"bookingId,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type UpdateBookingRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

type BookingResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	SlotID string `json:"slotId"`
	Status string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.SlotID = model.SlotID
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the domain-event stream.
type BookingEvent struct {
	Event      string `json:"event"`
	BookingID  string `json:"bookingId"`
	SlotID     string `json:"slotId"`
	UserID     string `json:"userId"`
	OccurredAt string `json:"occurredAt"`
}
