package models

import (
	"gorm.io/gorm"
)

// TrainerProfile holds the public-facing profile for a trainer-role account.
type TrainerProfile struct {
	gorm.Model
	AccountID       uint   `gorm:"uniqueIndex;not null"`
	DisplayName     string `gorm:"not null"`
	Bio             string
	Specialties     string
	YearsExperience int
	Region          string
}
