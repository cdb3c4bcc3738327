package model

import (
	"time"

	"agenda/shared/model"
)

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldAvatarURL = "avatar_url"
)

const (
	FavoriteTableName  = "profile_favorites"
	FavoriteEntityName = "profile_favorite"

	FavoriteFieldID             = "id"
	FavoriteFieldProfileID      = "profile_id"
	FavoriteFieldProfessionalID = "professional_id"
)

type Profile struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	AvatarURL *string `db:"avatar_url"`
	model.Metadata
}

// Favorite is an explicit join row between a profile and a professional.
type Favorite struct {
	ID             string `db:"id"`
	ProfileID      string `db:"profile_id"`
	ProfessionalID string `db:"professional_id"`
	model.Metadata
}

// BookingOverviewRow is the flattened read model behind a profile's booked
// appointments: booking joined to its slot and the slot's professional.
type BookingOverviewRow struct {
	BookingID        string    `db:"booking_id"`
	StartTime        time.Time `db:"start_time"`
	Status           string    `db:"status"`
	ProfessionalName string    `db:"professional_name"`
}

// FavoriteRow is the read model of one favorited professional.
type FavoriteRow struct {
	ProfessionalID string `db:"professional_id"`
	Email          string `db:"email"`
	Specialty      string `db:"specialty"`
}
