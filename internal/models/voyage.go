package models

import "time"

type VoyageStatus string

const (
	VoyagePlanned    VoyageStatus = "Planned"
	VoyageInProgress VoyageStatus = "InProgress"
	VoyageCompleted  VoyageStatus = "Completed"
	VoyageCancelled  VoyageStatus = "Cancelled"
)

type DepartureType string

const (
	DepartureEmpty     DepartureType = "Empty"
	DepartureEmballage DepartureType = "Emballage"
)

const DefaultCurrency = "MAD"

// Voyage is one outbound/return truck rotation owned by a booking.
// VoyageNumber is sequential and unique within the booking; the composite
// unique index is the database-level guard against concurrent assignment.
type Voyage struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	BookingID            uint   `gorm:"not null;uniqueIndex:idx_voyage_booking_number" json:"booking_id"`
	VoyageNumber         int    `gorm:"not null;uniqueIndex:idx_voyage_booking_number" json:"voyage_number"`
	NumeroTC             string `gorm:"size:50;not null" json:"numero_tc"`
	SocietyPrincipaleID  uint   `gorm:"not null" json:"society_principale_id"`
	SocietySecondaireID  *uint  `json:"society_secondaire_id,omitempty"`
	CamionFirstDepartID  *uint  `json:"camion_first_depart_id,omitempty"`
	CamionSecondDepartID *uint  `json:"camion_second_depart_id,omitempty"`

	DepartureCity *string       `gorm:"size:50" json:"departure_city,omitempty"`
	DepartureDate *time.Time    `json:"departure_date,omitempty"`
	DepartureTime *string       `gorm:"size:5" json:"departure_time,omitempty"`
	DepartureType DepartureType `gorm:"type:varchar(20);not null;default:'Empty'" json:"departure_type"`
	TypeEmballage *string       `gorm:"size:200" json:"type_emballage,omitempty"`

	ReceptionDate *time.Time `json:"reception_date,omitempty"`
	ReceptionTime *string    `gorm:"size:5" json:"reception_time,omitempty"`

	ReturnDepartureDate *time.Time `json:"return_departure_date,omitempty"`
	ReturnDepartureTime *string    `gorm:"size:5" json:"return_departure_time,omitempty"`
	ReturnArrivalCity   *string    `gorm:"size:50" json:"return_arrival_city,omitempty"`
	ReturnArrivalDate   *time.Time `json:"return_arrival_date,omitempty"`
	ReturnArrivalTime   *string    `gorm:"size:5" json:"return_arrival_time,omitempty"`

	PricePrincipale *float64 `gorm:"type:decimal(18,2)" json:"price_principale,omitempty"`
	PriceSecondaire *float64 `gorm:"type:decimal(18,2)" json:"price_secondaire,omitempty"`
	Currency        string   `gorm:"size:10;not null;default:'MAD'" json:"currency"`

	Status    VoyageStatus `gorm:"type:varchar(20);not null;default:'Planned'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// DepartureCities and ReturnCities are the fixed ends of the rotation;
// the processing hub in between is Dakhla.
var (
	DepartureCities = []string{"Agadir", "Casablanca"}
	ReturnCities    = []string{"Agadir", "Casablanca"}
)

func ValidCity(city string, allowed []string) bool {
	for _, c := range allowed {
		if c == city {
			return true
		}
	}
	return false
}
