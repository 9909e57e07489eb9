package repository

import (
	"context"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/gorm"
)

type SocietyTranspRepository interface {
	Create(ctx context.Context, tx *gorm.DB, carrier *models.SocietyTransp) error
	FindByID(ctx context.Context, id uint) (*models.SocietyTransp, error)
	FindByName(ctx context.Context, tx *gorm.DB, name string) (*models.SocietyTransp, error)
	List(ctx context.Context, activeOnly bool) ([]models.SocietyTransp, error)
	Update(ctx context.Context, carrier *models.SocietyTransp) error
}

type societyTranspRepository struct {
	db *gorm.DB
}

func NewSocietyTranspRepository(db *gorm.DB) SocietyTranspRepository {
	return &societyTranspRepository{db: db}
}

func (r *societyTranspRepository) Create(ctx context.Context, tx *gorm.DB, carrier *models.SocietyTransp) error {
	return tx.WithContext(ctx).Create(carrier).Error
}

func (r *societyTranspRepository) FindByID(ctx context.Context, id uint) (*models.SocietyTransp, error) {
	var carrier models.SocietyTransp
	if err := r.db.WithContext(ctx).First(&carrier, id).Error; err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (r *societyTranspRepository) FindByName(ctx context.Context, tx *gorm.DB, name string) (*models.SocietyTransp, error) {
	var carrier models.SocietyTransp
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&carrier).Error; err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (r *societyTranspRepository) List(ctx context.Context, activeOnly bool) ([]models.SocietyTransp, error) {
	var carriers []models.SocietyTransp
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}

func (r *societyTranspRepository) Update(ctx context.Context, carrier *models.SocietyTransp) error {
	return r.db.WithContext(ctx).Save(carrier).Error
}

type CamionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, camion *models.Camion) error
	FindByID(ctx context.Context, id uint) (*models.Camion, error)
	FindActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Camion, error)
	ListByCarrier(ctx context.Context, carrierID uint, activeOnly bool) ([]models.Camion, error)
	List(ctx context.Context, activeOnly bool) ([]models.Camion, error)
	Update(ctx context.Context, camion *models.Camion) error
	Delete(ctx context.Context, id uint) error
}

type camionRepository struct {
	db *gorm.DB
}

func NewCamionRepository(db *gorm.DB) CamionRepository {
	return &camionRepository{db: db}
}

func (r *camionRepository) Create(ctx context.Context, tx *gorm.DB, camion *models.Camion) error {
	return tx.WithContext(ctx).Create(camion).Error
}

func (r *camionRepository) FindByID(ctx context.Context, id uint) (*models.Camion, error) {
	var camion models.Camion
	if err := r.db.WithContext(ctx).First(&camion, id).Error; err != nil {
		return nil, err
	}
	return &camion, nil
}

func (r *camionRepository) FindActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Camion, error) {
	var camion models.Camion
	err := tx.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&camion).Error
	if err != nil {
		return nil, err
	}
	return &camion, nil
}

func (r *camionRepository) ListByCarrier(ctx context.Context, carrierID uint, activeOnly bool) ([]models.Camion, error) {
	var camions []models.Camion
	q := r.db.WithContext(ctx).
		Where("society_transp_id = ?", carrierID).
		Order("matricule ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&camions).Error; err != nil {
		return nil, err
	}
	return camions, nil
}

func (r *camionRepository) List(ctx context.Context, activeOnly bool) ([]models.Camion, error) {
	var camions []models.Camion
	q := r.db.WithContext(ctx).Order("matricule ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&camions).Error; err != nil {
		return nil, err
	}
	return camions, nil
}

func (r *camionRepository) Update(ctx context.Context, camion *models.Camion) error {
	return r.db.WithContext(ctx).Save(camion).Error
}

func (r *camionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Camion{}, id).Error
}
