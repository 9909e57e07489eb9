package service

import (
	"context"
	"errors"
	"log"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/gorm"
)

type CamionInput struct {
	Matricule       string
	DriverName      string
	DriverPhone     string
	CamionType      string
	SocietyTranspID *uint
}

// FleetService owns carrier and camion master data, including the ad-hoc
// external-truck factory used by the voyage departure flow. Keeping the
// upsert logic here keeps the voyage state machine free of master-data
// concerns.
type FleetService interface {
	ResolveTruckSlot(ctx context.Context, tx *gorm.DB, slot TruckSlot, field string) (uint, error)
	CreateCamion(ctx context.Context, actor auth.Actor, input CamionInput) (*models.Camion, error)
	UpdateCamion(ctx context.Context, actor auth.Actor, id uint, input CamionInput) (*models.Camion, error)
	DeactivateCamion(ctx context.Context, actor auth.Actor, id uint) (*models.Camion, error)
	DeleteCamion(ctx context.Context, actor auth.Actor, id uint) error
	ListCamions(ctx context.Context, activeOnly bool) ([]models.Camion, error)
	ListCamionsByCarrier(ctx context.Context, carrierID uint) ([]models.Camion, error)
	ListCarriers(ctx context.Context, activeOnly bool) ([]models.SocietyTransp, error)
}

type fleetService struct {
	camionRepo  repository.CamionRepository
	carrierRepo repository.SocietyTranspRepository
	voyageRepo  repository.VoyageRepository
}

func NewFleetService(
	camionRepo repository.CamionRepository,
	carrierRepo repository.SocietyTranspRepository,
	voyageRepo repository.VoyageRepository,
) FleetService {
	return &fleetService{
		camionRepo:  camionRepo,
		carrierRepo: carrierRepo,
		voyageRepo:  voyageRepo,
	}
}

// ResolveTruckSlot returns the camion id for a leg: an existing active
// camion, or a new EXTERNE camion (and its carrier if unseen) created
// within the caller's transaction. field names the slot in errors.
func (s *fleetService) ResolveTruckSlot(ctx context.Context, tx *gorm.DB, slot TruckSlot, field string) (uint, error) {
	if slot.CamionID != nil {
		camion, err := s.camionRepo.FindActiveByID(ctx, tx, *slot.CamionID)
		if err != nil {
			return 0, invalid(field, "camion introuvable ou inactif")
		}
		return camion.ID, nil
	}

	ext := slot.Externe
	if ext == nil {
		return 0, invalid(field, "un camion ou les détails d'un camion externe sont requis")
	}
	if ext.CarrierName == "" {
		return 0, invalid(field, "le nom de la société de transport est requis")
	}
	if ext.Matricule == "" {
		return 0, invalid(field, "le matricule du camion est requis")
	}
	if ext.DriverName == "" {
		return 0, invalid(field, "le nom du chauffeur est requis")
	}
	if ext.DriverPhone == "" {
		return 0, invalid(field, "le téléphone du chauffeur est requis")
	}

	carrier, err := s.getOrCreateCarrier(ctx, tx, ext.CarrierName)
	if err != nil {
		return 0, err
	}

	camion := &models.Camion{
		Matricule:       ext.Matricule,
		DriverName:      ext.DriverName,
		DriverPhone:     ext.DriverPhone,
		CamionType:      models.CamionTypeExterne,
		SocietyTranspID: &carrier.ID,
		IsActive:        true,
	}
	if err := s.camionRepo.Create(ctx, tx, camion); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrConflict
		}
		return 0, err
	}

	log.Printf("[Fleet] external camion %s created for carrier %s", ext.Matricule, ext.CarrierName)
	return camion.ID, nil
}

func (s *fleetService) getOrCreateCarrier(ctx context.Context, tx *gorm.DB, name string) (*models.SocietyTransp, error) {
	carrier, err := s.carrierRepo.FindByName(ctx, tx, name)
	if err == nil {
		return carrier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	carrier = &models.SocietyTransp{
		Name:     name,
		Address:  "N/A",
		City:     "N/A",
		Phone:    "N/A",
		Email:    "N/A",
		IsActive: true,
	}
	if err := s.carrierRepo.Create(ctx, tx, carrier); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return carrier, nil
}

func (s *fleetService) CreateCamion(ctx context.Context, actor auth.Actor, input CamionInput) (*models.Camion, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.Matricule == "" {
		return nil, invalid("matricule", "le matricule est requis")
	}

	camion := &models.Camion{
		Matricule:       input.Matricule,
		DriverName:      input.DriverName,
		DriverPhone:     input.DriverPhone,
		CamionType:      input.CamionType,
		SocietyTranspID: input.SocietyTranspID,
		IsActive:        true,
	}
	err := s.camionRepo.Create(ctx, s.voyageRepo.GetDB(), camion)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return camion, nil
}

func (s *fleetService) UpdateCamion(ctx context.Context, actor auth.Actor, id uint, input CamionInput) (*models.Camion, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	camion, err := s.camionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	camion.Matricule = input.Matricule
	camion.DriverName = input.DriverName
	camion.DriverPhone = input.DriverPhone
	camion.CamionType = input.CamionType
	camion.SocietyTranspID = input.SocietyTranspID

	err = s.camionRepo.Update(ctx, camion)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return camion, nil
}

func (s *fleetService) DeactivateCamion(ctx context.Context, actor auth.Actor, id uint) (*models.Camion, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	camion, err := s.camionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	camion.IsActive = false
	if err := s.camionRepo.Update(ctx, camion); err != nil {
		return nil, err
	}
	return camion, nil
}

// DeleteCamion refuses while any voyage references the truck in either
// slot; deactivation is the supported alternative.
func (s *fleetService) DeleteCamion(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	camion, err := s.camionRepo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	voyages, err := s.voyageRepo.CountByCamion(ctx, camion.ID)
	if err != nil {
		return err
	}
	if voyages > 0 {
		return invalid("", "impossible de supprimer le camion '"+camion.Matricule+"' car il a des voyages associés. Désactivez-le plutôt.")
	}

	return s.camionRepo.Delete(ctx, camion.ID)
}

func (s *fleetService) ListCamions(ctx context.Context, activeOnly bool) ([]models.Camion, error) {
	return s.camionRepo.List(ctx, activeOnly)
}

func (s *fleetService) ListCamionsByCarrier(ctx context.Context, carrierID uint) ([]models.Camion, error) {
	return s.camionRepo.ListByCarrier(ctx, carrierID, true)
}

func (s *fleetService) ListCarriers(ctx context.Context, activeOnly bool) ([]models.SocietyTransp, error) {
	return s.carrierRepo.List(ctx, activeOnly)
}
