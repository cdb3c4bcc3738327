package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "professionals"
	EntityName = "professional"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldSpecialty = "specialty"
)

type Professional struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Specialty string `db:"specialty"`
	model.Metadata
}
