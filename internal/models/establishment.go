package models

import "time"

type Establishment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Address  string `gorm:"size:255" json:"address"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	AvgRating float64 `gorm:"default:0" json:"avg_rating"`

	// Janela de funcionamento em minutos desde a meia-noite.
	// ClosesMin < OpensMin significa aberto durante a madrugada.
	OpensMin  int `gorm:"default:540" json:"opens_min"`
	ClosesMin int `gorm:"default:1080" json:"closes_min"`

	Timezone string `gorm:"size:64" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
