package models

import "time"

type Professional struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	// Campo legado; o vínculo atual é N:N via Specialties
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`

	Specialties []Specialty `gorm:"many2many:professional_specialties;" json:"specialties"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Specialty struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}
