package models

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingTemporised BookingStatus = "Temporised"
	BookingValidated  BookingStatus = "Validated"
	BookingCompleted  BookingStatus = "Completed"
	BookingCancelled  BookingStatus = "Cancelled"
)

// Booking is a freight booking. Its reference follows BK{yyyyMMdd}{seq:3}
// and NbrLTC is the hard ceiling on the number of voyages it may ever own.
type Booking struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	BookingReference  string        `gorm:"size:50;not null;uniqueIndex" json:"booking_reference"`
	NumeroBK          string        `gorm:"size:50;not null" json:"numero_bk"`
	SocietyID         uint          `gorm:"not null" json:"society_id"`
	TypeVoyage        string        `gorm:"size:100;not null" json:"type_voyage"`
	TypeContenaire    string        `gorm:"size:10" json:"type_contenaire,omitempty"`
	NomClient         string        `gorm:"size:200" json:"nom_client,omitempty"`
	NbrLTC            int           `gorm:"not null" json:"nbr_ltc"`
	Notes             string        `gorm:"size:2000" json:"notes,omitempty"`
	CreatedByUserID   uint          `gorm:"not null" json:"created_by_user_id"`
	ValidatedByUserID *uint         `json:"validated_by_user_id,omitempty"`
	ValidatedAt       *time.Time    `json:"validated_at,omitempty"`
	Status            BookingStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type CreatorResponse string

const (
	ResponsePending  CreatorResponse = "Pending"
	ResponseAccepted CreatorResponse = "Accepted"
	ResponseRefused  CreatorResponse = "Refused"
)

// BookingTemporisation records a deferral of a pending booking by an
// admin/validator. At most one active temporisation exists per booking;
// the creator responds exactly once.
type BookingTemporisation struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	BookingID               uint            `gorm:"not null;index" json:"booking_id"`
	TemporisedByUserID      uint            `gorm:"not null" json:"temporised_by_user_id"`
	TemporisedAt            time.Time       `gorm:"not null" json:"temporised_at"`
	Reason                  string          `gorm:"size:1000;not null" json:"reason"`
	EstimatedValidationDate time.Time       `gorm:"not null" json:"estimated_validation_date"`
	CreatorResponse         CreatorResponse `gorm:"type:varchar(20);not null;default:'Pending'" json:"creator_response"`
	CreatorRespondedAt      *time.Time      `json:"creator_responded_at,omitempty"`
	CreatorResponseNotes    string          `gorm:"size:500" json:"creator_response_notes,omitempty"`
	IsActive                bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}
