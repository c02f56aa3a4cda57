package models

import "time"

// Dados de contato exibidos na página pública do estabelecimento.
type Settings struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"uniqueIndex" json:"establishment_id"`

	Phone       string `gorm:"size:20" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`
	Hours       string `gorm:"size:255" json:"hours"`
	Description string `gorm:"size:500" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
