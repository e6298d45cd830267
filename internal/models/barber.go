package models

import "time"

// Barber is a staff member of a shop. Availability is computed per
// barber; calendars are never shared between barbers.
type Barber struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
