package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/gorm"
)

// TruckSlot selects a truck for one leg: either an existing active camion
// or ad-hoc external details persisted as master data on the fly.
type TruckSlot struct {
	CamionID *uint
	Externe  *ExternalTruck
}

type ExternalTruck struct {
	CarrierName string
	Matricule   string
	DriverName  string
	DriverPhone string
}

type DepartInput struct {
	DepartureType       models.DepartureType
	SocietySecondaireID *uint
	TypeEmballage       *string
	DepartureCity       string
	DepartureDate       time.Time
	DepartureTime       *string
	Truck               TruckSlot
}

type ReturnDepartureInput struct {
	ReturnDepartureDate time.Time
	ReturnDepartureTime *string
	ReturnArrivalCity   string
	Truck               TruckSlot
}

type AssignPricesInput struct {
	PricePrincipale *float64
	PriceSecondaire *float64
	Currency        string
}

type EditVoyageInput struct {
	VoyageNumber int
	NumeroTC     string
}

type VoyageService interface {
	Create(ctx context.Context, actor auth.Actor, bookingID uint, numeroTC string) (*models.Voyage, error)
	Get(ctx context.Context, id uint) (*models.Voyage, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Voyage, error)
	Depart(ctx context.Context, actor auth.Actor, id uint, input DepartInput) (*models.Voyage, error)
	RecordReception(ctx context.Context, actor auth.Actor, id uint, date time.Time, timeOfDay *string) (*models.Voyage, error)
	RecordReturnDeparture(ctx context.Context, actor auth.Actor, id uint, input ReturnDepartureInput) (*models.Voyage, error)
	RecordReturnArrival(ctx context.Context, actor auth.Actor, id uint, date time.Time, timeOfDay *string) (*models.Voyage, error)
	AssignPrices(ctx context.Context, actor auth.Actor, id uint, input AssignPricesInput) (*models.Voyage, error)
	Edit(ctx context.Context, actor auth.Actor, id uint, input EditVoyageInput) (*models.Voyage, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type voyageService struct {
	voyageRepo  repository.VoyageRepository
	bookingRepo repository.BookingRepository
	societyRepo repository.SocietyRepository
	fleet       FleetService
}

func NewVoyageService(
	voyageRepo repository.VoyageRepository,
	bookingRepo repository.BookingRepository,
	societyRepo repository.SocietyRepository,
	fleet FleetService,
) VoyageService {
	return &voyageService{
		voyageRepo:  voyageRepo,
		bookingRepo: bookingRepo,
		societyRepo: societyRepo,
		fleet:       fleet,
	}
}

// Create adds a voyage under the booking's NbrLTC ceiling. The booking row
// is locked for the duration of the check-then-insert; the unique
// (booking_id, voyage_number) index backstops concurrent number assignment.
func (s *voyageService) Create(ctx context.Context, actor auth.Actor, bookingID uint, numeroTC string) (*models.Voyage, error) {
	if !actor.CanManageVoyages() {
		return nil, ErrForbidden
	}
	if numeroTC == "" {
		return nil, invalid("numero_tc", "le numéro TC est requis")
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrNotFound
		}
		if booking.Status != models.BookingValidated {
			return ErrInvalidState
		}

		count, err := s.voyageRepo.CountByBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if count >= int64(booking.NbrLTC) {
			return ErrQuotaExceeded
		}

		maxNumber, err := s.voyageRepo.MaxVoyageNumber(ctx, tx, booking.ID)
		if err != nil {
			return err
		}

		voyage = &models.Voyage{
			BookingID:           booking.ID,
			VoyageNumber:        maxNumber + 1,
			NumeroTC:            numeroTC,
			SocietyPrincipaleID: booking.SocietyID,
			DepartureType:       models.DepartureEmpty,
			Currency:            models.DefaultCurrency,
			Status:              models.VoyagePlanned,
		}
		return s.voyageRepo.Create(ctx, tx, voyage)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Voyage] #%d created for booking %d", voyage.VoyageNumber, bookingID)
	return voyage, nil
}

func (s *voyageService) Get(ctx context.Context, id uint) (*models.Voyage, error) {
	voyage, err := s.voyageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return voyage, nil
}

func (s *voyageService) ListByBooking(ctx context.Context, bookingID uint) ([]models.Voyage, error) {
	if _, err := s.bookingRepo.FindByID(ctx, bookingID); err != nil {
		return nil, ErrNotFound
	}
	return s.voyageRepo.ListByBooking(ctx, bookingID)
}

func (s *voyageService) Depart(ctx context.Context, actor auth.Actor, id uint, input DepartInput) (*models.Voyage, error) {
	if !actor.CanManageVoyages() {
		return nil, ErrForbidden
	}

	if input.DepartureType != models.DepartureEmpty && input.DepartureType != models.DepartureEmballage {
		return nil, invalid("departure_type", "le type de départ est requis")
	}
	switch input.DepartureType {
	case models.DepartureEmballage:
		if input.SocietySecondaireID == nil {
			return nil, invalid("society_secondaire_id", "la société secondaire est requise pour un départ de type Emballage")
		}
	case models.DepartureEmpty:
		// Empty departures carry no packaging: both fields are cleared,
		// not rejected.
		input.SocietySecondaireID = nil
		input.TypeEmballage = nil
	}
	if !models.ValidCity(input.DepartureCity, models.DepartureCities) {
		return nil, invalid("departure_city", "la ville de départ est requise")
	}
	if input.DepartureDate.IsZero() {
		return nil, invalid("departure_date", "la date de départ est requise")
	}

	if input.SocietySecondaireID != nil {
		secondary, err := s.societyRepo.FindByID(ctx, *input.SocietySecondaireID)
		if err != nil || !secondary.IsActive {
			return nil, invalid("society_secondaire_id", "société secondaire introuvable ou inactive")
		}
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		voyage, err = s.voyageRepo.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}
		if voyage.Status != models.VoyagePlanned {
			return ErrInvalidState
		}

		camionID, err := s.fleet.ResolveTruckSlot(ctx, tx, input.Truck, "camion_first_depart")
		if err != nil {
			return err
		}

		voyage.DepartureType = input.DepartureType
		voyage.SocietySecondaireID = input.SocietySecondaireID
		voyage.TypeEmballage = input.TypeEmballage
		voyage.CamionFirstDepartID = &camionID
		voyage.DepartureCity = &input.DepartureCity
		voyage.DepartureDate = &input.DepartureDate
		voyage.DepartureTime = input.DepartureTime
		voyage.Status = models.VoyageInProgress
		return s.voyageRepo.Update(ctx, tx, voyage)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Voyage] %d departed from %s", voyage.ID, input.DepartureCity)
	return voyage, nil
}

// RecordReception stamps arrival at the hub. Re-recording while InProgress
// amends the previous values.
func (s *voyageService) RecordReception(ctx context.Context, actor auth.Actor, id uint, date time.Time, timeOfDay *string) (*models.Voyage, error) {
	if !actor.CanManageVoyages() {
		return nil, ErrForbidden
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		voyage, err = s.voyageRepo.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}
		if voyage.Status != models.VoyageInProgress {
			return ErrInvalidState
		}
		if voyage.DepartureDate == nil {
			return ErrInvalidState
		}
		if date.Before(*voyage.DepartureDate) {
			return invalid("reception_date", "la date de réception ne peut pas être antérieure à la date de départ")
		}

		voyage.ReceptionDate = &date
		voyage.ReceptionTime = timeOfDay
		return s.voyageRepo.Update(ctx, tx, voyage)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Voyage] %d reception recorded", voyage.ID)
	return voyage, nil
}

func (s *voyageService) RecordReturnDeparture(ctx context.Context, actor auth.Actor, id uint, input ReturnDepartureInput) (*models.Voyage, error) {
	if !actor.CanManageVoyages() {
		return nil, ErrForbidden
	}
	if !models.ValidCity(input.ReturnArrivalCity, models.ReturnCities) {
		return nil, invalid("return_arrival_city", "la ville d'arrivée est requise")
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		voyage, err = s.voyageRepo.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}
		if voyage.Status != models.VoyageInProgress {
			return ErrInvalidState
		}
		if voyage.ReceptionDate == nil {
			return ErrInvalidState
		}
		if input.ReturnDepartureDate.Before(*voyage.ReceptionDate) {
			return invalid("return_departure_date", "la date de départ retour ne peut pas être antérieure à la date de réception")
		}

		camionID, err := s.fleet.ResolveTruckSlot(ctx, tx, input.Truck, "camion_second_depart")
		if err != nil {
			return err
		}

		voyage.CamionSecondDepartID = &camionID
		voyage.ReturnDepartureDate = &input.ReturnDepartureDate
		voyage.ReturnDepartureTime = input.ReturnDepartureTime
		voyage.ReturnArrivalCity = &input.ReturnArrivalCity
		return s.voyageRepo.Update(ctx, tx, voyage)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Voyage] %d return departure recorded", voyage.ID)
	return voyage, nil
}

func (s *voyageService) RecordReturnArrival(ctx context.Context, actor auth.Actor, id uint, date time.Time, timeOfDay *string) (*models.Voyage, error) {
	if !actor.CanManageVoyages() {
		return nil, ErrForbidden
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		voyage, err = s.voyageRepo.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}
		if voyage.Status != models.VoyageInProgress {
			return ErrInvalidState
		}
		if voyage.ReturnDepartureDate == nil {
			return ErrInvalidState
		}
		if date.Before(*voyage.ReturnDepartureDate) {
			return invalid("return_arrival_date", "la date d'arrivée ne peut pas être antérieure à la date de départ retour")
		}

		voyage.ReturnArrivalDate = &date
		voyage.ReturnArrivalTime = timeOfDay
		voyage.Status = models.VoyageCompleted
		return s.voyageRepo.Update(ctx, tx, voyage)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Voyage] %d completed", voyage.ID)
	return voyage, nil
}

// AssignPrices is a pure data update allowed at any status.
func (s *voyageService) AssignPrices(ctx context.Context, actor auth.Actor, id uint, input AssignPricesInput) (*models.Voyage, error) {
	if !actor.CanManageVoyages() {
		return nil, ErrForbidden
	}
	if input.PricePrincipale != nil && *input.PricePrincipale < 0 {
		return nil, invalid("price_principale", "le prix ne peut pas être négatif")
	}
	if input.PriceSecondaire != nil && *input.PriceSecondaire < 0 {
		return nil, invalid("price_secondaire", "le prix ne peut pas être négatif")
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		voyage, err = s.voyageRepo.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}
		if voyage.SocietySecondaireID == nil && input.PriceSecondaire != nil {
			return invalid("price_secondaire", "ce voyage n'a pas de société secondaire")
		}

		voyage.PricePrincipale = input.PricePrincipale
		voyage.PriceSecondaire = input.PriceSecondaire
		if input.Currency != "" {
			voyage.Currency = input.Currency
		} else {
			voyage.Currency = models.DefaultCurrency
		}
		return s.voyageRepo.Update(ctx, tx, voyage)
	})
	if err != nil {
		return nil, err
	}
	return voyage, nil
}

func (s *voyageService) Edit(ctx context.Context, actor auth.Actor, id uint, input EditVoyageInput) (*models.Voyage, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.NumeroTC == "" {
		return nil, invalid("numero_tc", "le numéro TC est requis")
	}
	if input.VoyageNumber < 1 {
		return nil, invalid("voyage_number", "le numéro de voyage doit être positif")
	}

	var voyage *models.Voyage
	err := s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		voyage, err = s.voyageRepo.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}
		if voyage.Status != models.VoyagePlanned {
			return ErrInvalidState
		}

		voyage.VoyageNumber = input.VoyageNumber
		voyage.NumeroTC = input.NumeroTC
		return s.voyageRepo.Update(ctx, tx, voyage)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return voyage, nil
}

func (s *voyageService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	voyage, err := s.voyageRepo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if voyage.Status != models.VoyagePlanned {
		return ErrInvalidState
	}

	return s.voyageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.voyageRepo.Delete(ctx, tx, voyage.ID)
	})
}
