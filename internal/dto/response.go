package dto

import (
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	UserID    uint        `json:"user_id"`
	Username  string      `json:"username"`
	FullName  string      `json:"full_name"`
	Role      models.Role `json:"role"`
	SocietyID *uint       `json:"society_id,omitempty"`
}

type BookingResponse struct {
	ID                uint                 `json:"id"`
	BookingReference  string               `json:"booking_reference"`
	NumeroBK          string               `json:"numero_bk"`
	SocietyID         uint                 `json:"society_id"`
	TypeVoyage        string               `json:"type_voyage"`
	TypeContenaire    string               `json:"type_contenaire"`
	NomClient         string               `json:"nom_client"`
	NbrLTC            int                  `json:"nbr_ltc"`
	Notes             string               `json:"notes,omitempty"`
	Status            models.BookingStatus `json:"status"`
	CreatedByUserID   uint                 `json:"created_by_user_id"`
	ValidatedByUserID *uint                `json:"validated_by_user_id,omitempty"`
	ValidatedAt       *time.Time           `json:"validated_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID,
		BookingReference:  b.BookingReference,
		NumeroBK:          b.NumeroBK,
		SocietyID:         b.SocietyID,
		TypeVoyage:        b.TypeVoyage,
		TypeContenaire:    b.TypeContenaire,
		NomClient:         b.NomClient,
		NbrLTC:            b.NbrLTC,
		Notes:             b.Notes,
		Status:            b.Status,
		CreatedByUserID:   b.CreatedByUserID,
		ValidatedByUserID: b.ValidatedByUserID,
		ValidatedAt:       b.ValidatedAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}

type TemporisationResponse struct {
	ID                      uint                   `json:"id"`
	BookingID               uint                   `json:"booking_id"`
	TemporisedByUserID      uint                   `json:"temporised_by_user_id"`
	TemporisedAt            time.Time              `json:"temporised_at"`
	Reason                  string                 `json:"reason"`
	EstimatedValidationDate time.Time              `json:"estimated_validation_date"`
	CreatorResponse         models.CreatorResponse `json:"creator_response"`
	CreatorRespondedAt      *time.Time             `json:"creator_responded_at,omitempty"`
	CreatorResponseNotes    string                 `json:"creator_response_notes,omitempty"`
	IsActive                bool                   `json:"is_active"`
}

func ToTemporisationResponse(t *models.BookingTemporisation) TemporisationResponse {
	return TemporisationResponse{
		ID:                      t.ID,
		BookingID:               t.BookingID,
		TemporisedByUserID:      t.TemporisedByUserID,
		TemporisedAt:            t.TemporisedAt,
		Reason:                  t.Reason,
		EstimatedValidationDate: t.EstimatedValidationDate,
		CreatorResponse:         t.CreatorResponse,
		CreatorRespondedAt:      t.CreatorRespondedAt,
		CreatorResponseNotes:    t.CreatorResponseNotes,
		IsActive:                t.IsActive,
	}
}

func ToTemporisationResponses(temporisations []models.BookingTemporisation) []TemporisationResponse {
	out := make([]TemporisationResponse, 0, len(temporisations))
	for i := range temporisations {
		out = append(out, ToTemporisationResponse(&temporisations[i]))
	}
	return out
}
