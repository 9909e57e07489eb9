package dto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateBookingRequest struct {
	SocietyID      uint   `json:"society_id"`
	NumeroBK       string `json:"numero_bk"`
	TypeVoyage     string `json:"type_voyage"`
	TypeContenaire string `json:"type_contenaire"`
	NomClient      string `json:"nom_client"`
	NbrLTC         int    `json:"nbr_ltc"`
	Notes          string `json:"notes"`
}

type EditBookingRequest struct {
	NumeroBK       string `json:"numero_bk"`
	SocietyID      uint   `json:"society_id"`
	TypeVoyage     string `json:"type_voyage"`
	TypeContenaire string `json:"type_contenaire"`
	NomClient      string `json:"nom_client"`
	NbrLTC         int    `json:"nbr_ltc"`
	Notes          string `json:"notes"`
}

type TemporiseRequest struct {
	Reason                  string    `json:"reason"`
	EstimatedValidationDate time.Time `json:"estimated_validation_date"`
}

type RespondTemporisationRequest struct {
	Response string `json:"response"`
	Notes    string `json:"notes"`
}

type VoyageTCEditRequest struct {
	VoyageID uint   `json:"voyage_id"`
	NumeroTC string `json:"numero_tc"`
}

type BulkEditBookingRequest struct {
	Booking EditBookingRequest    `json:"booking"`
	Voyages []VoyageTCEditRequest `json:"voyages"`
}

type CreateVoyageRequest struct {
	NumeroTC string `json:"numero_tc"`
}

// TruckSlotRequest selects either an existing camion or external details.
type TruckSlotRequest struct {
	CamionID    *uint  `json:"camion_id,omitempty"`
	CarrierName string `json:"carrier_name,omitempty"`
	Matricule   string `json:"matricule,omitempty"`
	DriverName  string `json:"driver_name,omitempty"`
	DriverPhone string `json:"driver_phone,omitempty"`
}

type DepartRequest struct {
	DepartureType       string           `json:"departure_type"`
	SocietySecondaireID *uint            `json:"society_secondaire_id,omitempty"`
	TypeEmballage       *string          `json:"type_emballage,omitempty"`
	DepartureCity       string           `json:"departure_city"`
	DepartureDate       time.Time        `json:"departure_date"`
	DepartureTime       *string          `json:"departure_time,omitempty"`
	Truck               TruckSlotRequest `json:"truck"`
}

type ReceptionRequest struct {
	ReceptionDate time.Time `json:"reception_date"`
	ReceptionTime *string   `json:"reception_time,omitempty"`
}

type ReturnDepartureRequest struct {
	ReturnDepartureDate time.Time        `json:"return_departure_date"`
	ReturnDepartureTime *string          `json:"return_departure_time,omitempty"`
	ReturnArrivalCity   string           `json:"return_arrival_city"`
	Truck               TruckSlotRequest `json:"truck"`
}

type ReturnArrivalRequest struct {
	ReturnArrivalDate time.Time `json:"return_arrival_date"`
	ReturnArrivalTime *string   `json:"return_arrival_time,omitempty"`
}

type AssignPricesRequest struct {
	PricePrincipale *float64 `json:"price_principale,omitempty"`
	PriceSecondaire *float64 `json:"price_secondaire,omitempty"`
	Currency        string   `json:"currency"`
}

type EditVoyageRequest struct {
	VoyageNumber int    `json:"voyage_number"`
	NumeroTC     string `json:"numero_tc"`
}

type SocietyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type CamionRequest struct {
	Matricule       string `json:"matricule"`
	DriverName      string `json:"driver_name"`
	DriverPhone     string `json:"driver_phone"`
	CamionType      string `json:"camion_type"`
	SocietyTranspID *uint  `json:"society_transp_id,omitempty"`
}

type UserRequest struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	SocietyID  *uint  `json:"society_id,omitempty"`
	TypeVoyage string `json:"type_voyage"`
}
