package dto

import (
	"agenda/internal/domains/professional/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateProfessionalRequest struct {
	Email     string `json:"email"     validate:"required,email,max=100"`
	Specialty string `json:"specialty" validate:"required,max=100"`
}

func (c *CreateProfessionalRequest) ToModel(user string) model.Professional {
	return model.Professional{
		ID:        uuid.NewString(),
		Email:     c.Email,
		Specialty: c.Specialty,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateProfessionalRequest struct {
	Email     string `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	Specialty string `db:"specialty" json:"specialty" validate:"omitempty,max=100"`
}

type ProfessionalResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
	gDto.Metadata
}

func (r *ProfessionalResponse) FromModel(model model.Professional) {
	r.ID = model.ID
	r.Email = model.Email
	r.Specialty = model.Specialty
	r.Metadata.FromModel(model.Metadata)
}

type GetProfessionalsResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetProfessionalsResponse) FromModels(models []model.Professional, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Professionals = make([]ProfessionalResponse, len(models))
	for i, mod := range models {
		r.Professionals[i].FromModel(mod)
	}
}
