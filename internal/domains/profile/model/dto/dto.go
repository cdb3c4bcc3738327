package dto

import (
	"agenda/internal/domains/profile/model"
	"agenda/shared/constant"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateProfileRequest struct {
	UserID    string `json:"userId"           validate:"required,uuid"`
	FirstName string `json:"firstName"        validate:"required,max=100"`
	LastName  string `json:"lastName"         validate:"required,max=100"`
	Email     string `json:"email"            validate:"required,email"`
	Avatar    string `json:"avatar,omitempty" validate:"omitempty,startswith=data:"`
}

func (r *CreateProfileRequest) ToModel(username string, avatarURL *string) model.Profile {
	return model.Profile{
		ID:        uuid.NewString(),
		UserID:    r.UserID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		AvatarURL: avatarURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type BookingOverview struct {
	BookingID        string `json:"booking_id"`
	Datetime         string `json:"datetime"`
	Status           string `json:"status"`
	ProfessionalName string `json:"professional_name"`
}

type ProfessionalMini struct {
	ProfessionalID string `json:"professional_id"`
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
}

type UserProfileResponse struct {
	UserID             string             `json:"user_id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	BookedAppointments []BookingOverview  `json:"booked_appointments"`
	Favorites          []ProfessionalMini `json:"favorites"`
}

func (r *UserProfileResponse) FromRows(userID, name, email string, bookings []model.BookingOverviewRow, favorites []model.FavoriteRow) {
	r.UserID = userID
	r.Name = name
	r.Email = email

	r.BookedAppointments = make([]BookingOverview, len(bookings))
	for i, row := range bookings {
		r.BookedAppointments[i] = BookingOverview{
			BookingID:        row.BookingID,
			Datetime:         timezone.Format(row.StartTime, constant.DateFormat),
			Status:           row.Status,
			ProfessionalName: row.ProfessionalName,
		}
	}

	r.Favorites = make([]ProfessionalMini, len(favorites))
	for i, row := range favorites {
		r.Favorites[i] = ProfessionalMini{
			ProfessionalID: row.ProfessionalID,
			Name:           row.Email,
			Specialty:      row.Specialty,
		}
	}
}

type UpdateProfileRequest struct {
	Email     string   `json:"email"            validate:"required,email"`
	Favorites []string `json:"favorites"        validate:"dive,uuid"`
	Avatar    string   `json:"avatar,omitempty" validate:"omitempty,startswith=data:"`
}

type UpdateProfileResponse struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	Favorites []string `json:"favorites"`
}

type DeleteProfileResponse struct {
	Message string `json:"message"`
}

type FavoriteProfessional struct {
	ProfessionalID string `json:"professional_id"`
	Email          string `json:"email"`
	Specialty      string `json:"specialty"`
}

type FavoritesResponse struct {
	Favorites []FavoriteProfessional `json:"favorites"`
}

func (r *FavoritesResponse) FromRows(rows []model.FavoriteRow) {
	r.Favorites = make([]FavoriteProfessional, len(rows))
	for i, row := range rows {
		r.Favorites[i] = FavoriteProfessional{
			ProfessionalID: row.ProfessionalID,
			Email:          row.Email,
			Specialty:      row.Specialty,
		}
	}
}

type AddFavoriteRequest struct {
	ProfessionalID string `json:"professionalId" validate:"required,uuid"`
}
