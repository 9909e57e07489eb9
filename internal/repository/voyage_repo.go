package repository

import (
	"context"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/gorm"
)

type VoyageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, voyage *models.Voyage) error
	FindByID(ctx context.Context, id uint) (*models.Voyage, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Voyage, error)
	CountByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error)
	MaxVoyageNumber(ctx context.Context, tx *gorm.DB, bookingID uint) (int, error)
	Update(ctx context.Context, tx *gorm.DB, voyage *models.Voyage) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	CountByCamion(ctx context.Context, camionID uint) (int64, error)
	GetDB() *gorm.DB
}

type voyageRepository struct {
	db *gorm.DB
}

func NewVoyageRepository(db *gorm.DB) VoyageRepository {
	return &voyageRepository{db: db}
}

func (r *voyageRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *voyageRepository) Create(ctx context.Context, tx *gorm.DB, voyage *models.Voyage) error {
	return tx.WithContext(ctx).Create(voyage).Error
}

func (r *voyageRepository) FindByID(ctx context.Context, id uint) (*models.Voyage, error) {
	var voyage models.Voyage
	if err := r.db.WithContext(ctx).First(&voyage, id).Error; err != nil {
		return nil, err
	}
	return &voyage, nil
}

func (r *voyageRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.Voyage, error) {
	var voyages []models.Voyage
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("voyage_number ASC").
		Find(&voyages).Error
	if err != nil {
		return nil, err
	}
	return voyages, nil
}

func (r *voyageRepository) CountByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Voyage{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count, err
}

// MaxVoyageNumber returns 0 when the booking has no voyages yet.
func (r *voyageRepository) MaxVoyageNumber(ctx context.Context, tx *gorm.DB, bookingID uint) (int, error) {
	var max *int
	err := tx.WithContext(ctx).
		Model(&models.Voyage{}).
		Where("booking_id = ?", bookingID).
		Select("MAX(voyage_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *voyageRepository) Update(ctx context.Context, tx *gorm.DB, voyage *models.Voyage) error {
	return tx.WithContext(ctx).Save(voyage).Error
}

func (r *voyageRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Voyage{}, id).Error
}

// CountByCamion counts voyages referencing the camion in either truck slot.
func (r *voyageRepository) CountByCamion(ctx context.Context, camionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Voyage{}).
		Where("camion_first_depart_id = ? OR camion_second_depart_id = ?", camionID, camionID).
		Count(&count).Error
	return count, err
}
