package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/notify"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/gorm"
)

const (
	minNbrLTC = 1
	maxNbrLTC = 100

	// createRetries bounds the duplicate-reference retry loop.
	createRetries = 3
)

type CreateBookingInput struct {
	SocietyID      uint
	NumeroBK       string
	TypeVoyage     string
	TypeContenaire string
	NomClient      string
	NbrLTC         int
	Notes          string
}

type EditBookingInput struct {
	NumeroBK       string
	SocietyID      uint
	TypeVoyage     string
	TypeContenaire string
	NomClient      string
	NbrLTC         int
	Notes          string
}

type TemporiseInput struct {
	Reason                  string
	EstimatedValidationDate time.Time
}

// VoyageTCEdit is one row of a bulk edit: only the TC number of a Planned
// voyage may change this way.
type VoyageTCEdit struct {
	VoyageID uint
	NumeroTC string
}

type BulkEditBookingInput struct {
	Booking EditBookingInput
	Voyages []VoyageTCEdit
}

type BookingService interface {
	Create(ctx context.Context, actor auth.Actor, input CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Booking, error)
	List(ctx context.Context, actor auth.Actor) ([]models.Booking, error)
	Validate(ctx context.Context, actor auth.Actor, id uint) (*models.Booking, error)
	Temporise(ctx context.Context, actor auth.Actor, id uint, input TemporiseInput) (*models.BookingTemporisation, error)
	ActiveTemporisation(ctx context.Context, actor auth.Actor, bookingID uint) (*models.BookingTemporisation, error)
	RespondToTemporisation(ctx context.Context, actor auth.Actor, temporisationID uint, response models.CreatorResponse, notes string) (*models.BookingTemporisation, error)
	Edit(ctx context.Context, actor auth.Actor, id uint, input EditBookingInput) (*models.Booking, error)
	BulkEdit(ctx context.Context, actor auth.Actor, id uint, input BulkEditBookingInput) (*models.Booking, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	PendingTemporisations(ctx context.Context, actor auth.Actor) ([]models.BookingTemporisation, error)
}

type bookingService struct {
	bookingRepo       repository.BookingRepository
	voyageRepo        repository.VoyageRepository
	temporisationRepo repository.TemporisationRepository
	societyRepo       repository.SocietyRepository
	userRepo          repository.UserRepository
	notifier          notify.Notifier
	opsMailbox        string
	now               func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	voyageRepo repository.VoyageRepository,
	temporisationRepo repository.TemporisationRepository,
	societyRepo repository.SocietyRepository,
	userRepo repository.UserRepository,
	notifier notify.Notifier,
	opsMailbox string,
) BookingService {
	return &bookingService{
		bookingRepo:       bookingRepo,
		voyageRepo:        voyageRepo,
		temporisationRepo: temporisationRepo,
		societyRepo:       societyRepo,
		userRepo:          userRepo,
		notifier:          notifier,
		opsMailbox:        opsMailbox,
		now:               time.Now,
	}
}

func (s *bookingService) validateSociety(ctx context.Context, societyID uint) error {
	society, err := s.societyRepo.FindByID(ctx, societyID)
	if err != nil {
		return invalid("society_id", "société introuvable")
	}
	if !society.IsActive {
		return invalid("society_id", "société inactive")
	}
	return nil
}

func (s *bookingService) validateCreateInput(ctx context.Context, input CreateBookingInput) error {
	if input.NumeroBK == "" {
		return invalid("numero_bk", "le numéro BK est requis")
	}
	if input.TypeVoyage == "" {
		return invalid("type_voyage", "le type de voyage est requis")
	}
	if input.NbrLTC < minNbrLTC || input.NbrLTC > maxNbrLTC {
		return invalid("nbr_ltc", "le nombre de LTC doit être entre 1 et 100")
	}
	return s.validateSociety(ctx, input.SocietyID)
}

func (s *bookingService) Create(ctx context.Context, actor auth.Actor, input CreateBookingInput) (*models.Booking, error) {
	if !actor.CanCreateBooking() {
		return nil, ErrForbidden
	}
	if err := s.validateCreateInput(ctx, input); err != nil {
		return nil, err
	}

	var booking *models.Booking
	var err error

	// The reference read races with concurrent creations; the unique index
	// on booking_reference catches the loser, which retries with a fresh
	// sequence.
	for attempt := 0; attempt < createRetries; attempt++ {
		booking = &models.Booking{
			NumeroBK:        input.NumeroBK,
			SocietyID:       input.SocietyID,
			TypeVoyage:      input.TypeVoyage,
			TypeContenaire:  input.TypeContenaire,
			NomClient:       input.NomClient,
			NbrLTC:          input.NbrLTC,
			Notes:           input.Notes,
			CreatedByUserID: actor.UserID,
			Status:          models.BookingPending,
		}

		err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			reference, refErr := nextBookingReference(ctx, tx, s.bookingRepo, s.now())
			if refErr != nil {
				return refErr
			}
			booking.BookingReference = reference
			return s.bookingRepo.Create(ctx, tx, booking)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Booking] %s created by user %d", booking.BookingReference, actor.UserID)
	s.notifier.BookingCreated(booking, s.creationRecipients(ctx, actor.UserID))

	return booking, nil
}

// creationRecipients is the fixed operations mailbox plus the creator.
func (s *bookingService) creationRecipients(ctx context.Context, creatorID uint) []string {
	recipients := []string{s.opsMailbox}
	if creator, err := s.userRepo.FindByID(ctx, creatorID); err == nil && creator.Email != "" {
		recipients = append(recipients, creator.Email)
	}
	return recipients
}

func (s *bookingService) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if actor.Role == models.RoleBookingAgent && booking.CreatedByUserID != actor.UserID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// List scopes booking agents to their own bookings.
func (s *bookingService) List(ctx context.Context, actor auth.Actor) ([]models.Booking, error) {
	var createdBy *uint
	if actor.Role == models.RoleBookingAgent {
		createdBy = &actor.UserID
	}
	return s.bookingRepo.List(ctx, createdBy)
}

func (s *bookingService) Validate(ctx context.Context, actor auth.Actor, id uint) (*models.Booking, error) {
	if !actor.CanValidateBooking() {
		return nil, ErrForbidden
	}

	var booking *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrNotFound
		}
		if booking.Status != models.BookingPending {
			return ErrInvalidState
		}

		now := s.now()
		booking.Status = models.BookingValidated
		booking.ValidatedByUserID = &actor.UserID
		booking.ValidatedAt = &now
		return s.bookingRepo.Update(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Booking] %s validated by user %d", booking.BookingReference, actor.UserID)
	s.notifier.BookingValidated(booking, s.creatorRecipients(ctx, booking))

	return booking, nil
}

func (s *bookingService) creatorRecipients(ctx context.Context, booking *models.Booking) []string {
	if creator, err := s.userRepo.FindByID(ctx, booking.CreatedByUserID); err == nil && creator.Email != "" {
		return []string{creator.Email}
	}
	return nil
}

func (s *bookingService) Temporise(ctx context.Context, actor auth.Actor, id uint, input TemporiseInput) (*models.BookingTemporisation, error) {
	if !actor.CanValidateBooking() {
		return nil, ErrForbidden
	}
	if input.Reason == "" {
		return nil, invalid("reason", "la raison de temporisation est requise")
	}
	// Date granularity: the estimate must land on tomorrow or later,
	// whatever time of day either side carries.
	today := s.now().Truncate(24 * time.Hour)
	if !input.EstimatedValidationDate.Truncate(24 * time.Hour).After(today) {
		return nil, invalid("estimated_validation_date", "la date estimée doit être dans le futur")
	}

	var booking *models.Booking
	var temporisation *models.BookingTemporisation

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrNotFound
		}
		if booking.Status != models.BookingPending {
			return ErrInvalidState
		}

		// A new temporisation supersedes any previous active one; the
		// partial unique index keeps this atomic under concurrency.
		if err := s.temporisationRepo.DeactivateAllForBooking(ctx, tx, booking.ID); err != nil {
			return err
		}

		temporisation = &models.BookingTemporisation{
			BookingID:               booking.ID,
			TemporisedByUserID:      actor.UserID,
			TemporisedAt:            s.now(),
			Reason:                  input.Reason,
			EstimatedValidationDate: input.EstimatedValidationDate,
			CreatorResponse:         models.ResponsePending,
			IsActive:                true,
		}
		if err := s.temporisationRepo.Create(ctx, tx, temporisation); err != nil {
			return err
		}

		booking.Status = models.BookingTemporised
		return s.bookingRepo.Update(ctx, tx, booking)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Booking] %s temporised by user %d until %s",
		booking.BookingReference, actor.UserID, input.EstimatedValidationDate.Format("2006-01-02"))
	s.notifier.BookingTemporised(booking, temporisation, s.creatorRecipients(ctx, booking))

	return temporisation, nil
}

// ActiveTemporisation returns the open temporisation on a booking, under the
// same visibility rule as Get. ErrNotFound when none is active.
func (s *bookingService) ActiveTemporisation(ctx context.Context, actor auth.Actor, bookingID uint) (*models.BookingTemporisation, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if actor.Role == models.RoleBookingAgent && booking.CreatedByUserID != actor.UserID {
		return nil, ErrForbidden
	}

	temporisation, err := s.temporisationRepo.FindActiveByBooking(ctx, booking.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	return temporisation, nil
}

func (s *bookingService) RespondToTemporisation(ctx context.Context, actor auth.Actor, temporisationID uint, response models.CreatorResponse, notes string) (*models.BookingTemporisation, error) {
	if response != models.ResponseAccepted && response != models.ResponseRefused {
		return nil, invalid("creator_response", "la réponse doit être Accepted ou Refused")
	}

	var booking *models.Booking
	var temporisation *models.BookingTemporisation

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		temporisation, err = s.temporisationRepo.FindByID(ctx, temporisationID)
		if err != nil {
			return ErrNotFound
		}
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, temporisation.BookingID)
		if err != nil {
			return ErrNotFound
		}

		// Only the booking creator answers a temporisation.
		if booking.CreatedByUserID != actor.UserID {
			return ErrForbidden
		}
		// Idempotence guard: one response per temporisation.
		if temporisation.CreatorResponse != models.ResponsePending {
			return ErrAlreadyResponded
		}

		now := s.now()
		temporisation.CreatorResponse = response
		temporisation.CreatorRespondedAt = &now
		temporisation.CreatorResponseNotes = notes

		if response == models.ResponseRefused {
			temporisation.IsActive = false
			booking.Status = models.BookingPending
			if err := s.bookingRepo.Update(ctx, tx, booking); err != nil {
				return err
			}
		}
		return s.temporisationRepo.Update(ctx, tx, temporisation)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Booking] temporisation %d on %s answered %s", temporisation.ID, booking.BookingReference, response)
	s.notifier.TemporisationResponded(booking, temporisation, s.temporiserRecipients(ctx, temporisation))

	return temporisation, nil
}

func (s *bookingService) temporiserRecipients(ctx context.Context, t *models.BookingTemporisation) []string {
	if temporiser, err := s.userRepo.FindByID(ctx, t.TemporisedByUserID); err == nil && temporiser.Email != "" {
		return []string{temporiser.Email}
	}
	return nil
}

func (s *bookingService) Edit(ctx context.Context, actor auth.Actor, id uint, input EditBookingInput) (*models.Booking, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.NbrLTC < minNbrLTC || input.NbrLTC > maxNbrLTC {
		return nil, invalid("nbr_ltc", "le nombre de LTC doit être entre 1 et 100")
	}
	if err := s.validateSociety(ctx, input.SocietyID); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrNotFound
		}
		if booking.Status != models.BookingPending {
			return ErrInvalidState
		}

		voyageCount, err := s.voyageRepo.CountByBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if int64(input.NbrLTC) < voyageCount {
			return invalid("nbr_ltc", "impossible de réduire le nombre de LTC en dessous du nombre de voyages existants")
		}

		booking.NumeroBK = input.NumeroBK
		booking.SocietyID = input.SocietyID
		booking.TypeVoyage = input.TypeVoyage
		booking.TypeContenaire = input.TypeContenaire
		booking.NomClient = input.NomClient
		booking.NbrLTC = input.NbrLTC
		booking.Notes = input.Notes
		return s.bookingRepo.Update(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// BulkEdit updates booking fields (Pending only) and the TC numbers of
// Planned voyages in one shot, rejecting duplicate TCs within the set.
func (s *bookingService) BulkEdit(ctx context.Context, actor auth.Actor, id uint, input BulkEditBookingInput) (*models.Booking, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	seen := make(map[string]bool, len(input.Voyages))
	for _, edit := range input.Voyages {
		if edit.NumeroTC == "" {
			return nil, invalid("numero_tc", "le numéro TC est requis")
		}
		if seen[edit.NumeroTC] {
			return nil, invalid("numero_tc", "numéros TC dupliqués détectés: "+edit.NumeroTC)
		}
		seen[edit.NumeroTC] = true
	}

	var booking *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrNotFound
		}

		voyageCount, err := s.voyageRepo.CountByBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if int64(input.Booking.NbrLTC) < voyageCount {
			return invalid("nbr_ltc", "impossible de réduire le nombre de LTC en dessous du nombre de voyages existants")
		}

		// Booking fields only move while Pending; voyage TCs are
		// editable on any booking status as long as the voyage is
		// still Planned.
		if booking.Status == models.BookingPending {
			if err := s.validateSociety(ctx, input.Booking.SocietyID); err != nil {
				return err
			}
			booking.NumeroBK = input.Booking.NumeroBK
			booking.SocietyID = input.Booking.SocietyID
			booking.TypeVoyage = input.Booking.TypeVoyage
			booking.TypeContenaire = input.Booking.TypeContenaire
			booking.NomClient = input.Booking.NomClient
			booking.NbrLTC = input.Booking.NbrLTC
			booking.Notes = input.Booking.Notes
			if err := s.bookingRepo.Update(ctx, tx, booking); err != nil {
				return err
			}
		}

		for _, edit := range input.Voyages {
			voyage, err := s.voyageRepo.FindByID(ctx, edit.VoyageID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if voyage.BookingID != booking.ID || voyage.Status != models.VoyagePlanned {
				continue
			}
			voyage.NumeroTC = edit.NumeroTC
			if err := s.voyageRepo.Update(ctx, tx, voyage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Booking] %s bulk-edited by user %d", booking.BookingReference, actor.UserID)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleBookingAgent:
		if booking.CreatedByUserID != actor.UserID {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	if booking.Status != models.BookingPending {
		return ErrInvalidState
	}

	return s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.temporisationRepo.DeactivateAllForBooking(ctx, tx, booking.ID); err != nil {
			return err
		}
		return s.bookingRepo.Delete(ctx, tx, booking.ID)
	})
}

// PendingTemporisations lists temporisations awaiting the caller's answer.
func (s *bookingService) PendingTemporisations(ctx context.Context, actor auth.Actor) ([]models.BookingTemporisation, error) {
	return s.temporisationRepo.ListPendingForCreator(ctx, actor.UserID)
}
