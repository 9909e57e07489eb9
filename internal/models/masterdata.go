package models

import "time"

// Society is a client company bookings are made for.
type Society struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Email     string    `gorm:"size:100" json:"email,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SocietyTransp is a carrier company owning camions. Ad-hoc external
// carriers created during a departure land here as well.
type SocietyTransp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Email     string    `gorm:"size:100" json:"email,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CamionTypeExterne marks trucks created on the fly during a departure.
const CamionTypeExterne = "EXTERNE"

type Camion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Matricule       string    `gorm:"size:50;not null;uniqueIndex" json:"matricule"`
	DriverName      string    `gorm:"size:100" json:"driver_name,omitempty"`
	DriverPhone     string    `gorm:"size:50" json:"driver_phone,omitempty"`
	CamionType      string    `gorm:"size:50" json:"camion_type,omitempty"`
	SocietyTranspID *uint     `json:"society_transp_id,omitempty"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
