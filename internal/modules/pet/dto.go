package pet

import (
	"time"

	"petstat/internal/domain"
	"petstat/internal/pkg/validator"
)

type CreatePetRequest struct {
	Name              string                   `json:"name" validate:"required,max=255"`
	Sex               domain.PetSex            `json:"sex" validate:"required,oneof=Male Female Other"`
	Species           domain.PetSpecies        `json:"species" validate:"required,oneof=Dog Cat Fish Lizard Turtle Snake"`
	Birthday          string                   `json:"birthday" validate:"required,past_date"`
	BirthdayPrecision domain.BirthdayPrecision `json:"birthday_precision" validate:"required,oneof=FullDate Month Year"`
	FeedCount         *int                     `json:"feed_count" validate:"omitempty,gte=1"`
	FeedCountPer      *domain.FeedPeriod       `json:"feed_count_per" validate:"omitempty,oneof=Day Week Month"`
	Weight            *float64                 `json:"weight" validate:"omitempty,gte=0"`
}

// UpdatePetRequest is a partial update; nil fields are left unchanged.
type UpdatePetRequest struct {
	Name              *string                   `json:"name" validate:"omitempty,min=1,max=255"`
	Sex               *domain.PetSex            `json:"sex" validate:"omitempty,oneof=Male Female Other"`
	Species           *domain.PetSpecies        `json:"species" validate:"omitempty,oneof=Dog Cat Fish Lizard Turtle Snake"`
	Birthday          *string                   `json:"birthday" validate:"omitempty,past_date"`
	BirthdayPrecision *domain.BirthdayPrecision `json:"birthday_precision" validate:"omitempty,oneof=FullDate Month Year"`
	FeedCount         *int                      `json:"feed_count" validate:"omitempty,gte=1"`
	FeedCountPer      *domain.FeedPeriod        `json:"feed_count_per" validate:"omitempty,oneof=Day Week Month"`
	Weight            *float64                  `json:"weight" validate:"omitempty,gte=0"`
	IsDisabled        *bool                     `json:"is_disabled"`
}

type PetResponse struct {
	ID                int64                    `json:"id"`
	Name              string                   `json:"name"`
	Sex               domain.PetSex            `json:"sex"`
	Species           domain.PetSpecies        `json:"species"`
	Birthday          string                   `json:"birthday"`
	BirthdayPrecision domain.BirthdayPrecision `json:"birthday_precision"`
	FeedCount         int                      `json:"feed_count"`
	FeedCountPer      domain.FeedPeriod        `json:"feed_count_per"`
	Weight            *float64                 `json:"weight,omitempty"`
	IsDisabled        bool                     `json:"is_disabled"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type DeletePetResponse struct {
	ID      int64  `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func toPetResponse(p *domain.Pet) PetResponse {
	return PetResponse{
		ID:                p.ID,
		Name:              p.Name,
		Sex:               p.Sex,
		Species:           p.Species,
		Birthday:          p.Birthday.Format(validator.DateLayout),
		BirthdayPrecision: p.BirthdayPrecision,
		FeedCount:         p.FeedCount,
		FeedCountPer:      p.FeedCountPer,
		Weight:            p.Weight,
		IsDisabled:        p.IsDisabled,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
