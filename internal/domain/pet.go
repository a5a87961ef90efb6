package domain

import "time"

type PetSex string

const (
	PetSexMale   PetSex = "Male"
	PetSexFemale PetSex = "Female"
	PetSexOther  PetSex = "Other"
)

type PetSpecies string

const (
	SpeciesDog    PetSpecies = "Dog"
	SpeciesCat    PetSpecies = "Cat"
	SpeciesFish   PetSpecies = "Fish"
	SpeciesLizard PetSpecies = "Lizard"
	SpeciesTurtle PetSpecies = "Turtle"
	SpeciesSnake  PetSpecies = "Snake"
)

type BirthdayPrecision string

const (
	PrecisionFullDate BirthdayPrecision = "FullDate"
	PrecisionMonth    BirthdayPrecision = "Month"
	PrecisionYear     BirthdayPrecision = "Year"
)

type FeedPeriod string

const (
	FeedPerDay   FeedPeriod = "Day"
	FeedPerWeek  FeedPeriod = "Week"
	FeedPerMonth FeedPeriod = "Month"
)

type Pet struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"index;not null"`

	Name              string            `json:"name" gorm:"size:255;not null"`
	Sex               PetSex            `json:"sex" gorm:"size:16;not null"`
	Species           PetSpecies        `json:"species" gorm:"size:16;not null"`
	Birthday          time.Time         `json:"birthday" gorm:"type:date;not null"`
	BirthdayPrecision BirthdayPrecision `json:"birthday_precision" gorm:"size:16;not null"`
	FeedCount         int               `json:"feed_count" gorm:"not null"`
	FeedCountPer      FeedPeriod        `json:"feed_count_per" gorm:"size:16;not null;default:Day"`
	Weight            *float64          `json:"weight,omitempty"`
	IsDisabled        bool              `json:"is_disabled" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pet) TableName() string { return "pets" }
