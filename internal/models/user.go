package models

import "time"

type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleBookingAgent Role = "Booking_Agent"
	RoleValidator    Role = "Trans_Respo"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(50);not null" json:"role"`
	SocietyID    *uint     `json:"society_id,omitempty"`
	TypeVoyage   string    `gorm:"size:100" json:"type_voyage,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
