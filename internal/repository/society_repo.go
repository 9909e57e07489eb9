package repository

import (
	"context"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/gorm"
)

type SocietyRepository interface {
	Create(ctx context.Context, society *models.Society) error
	FindByID(ctx context.Context, id uint) (*models.Society, error)
	List(ctx context.Context, activeOnly bool) ([]models.Society, error)
	Update(ctx context.Context, society *models.Society) error
	Delete(ctx context.Context, id uint) error
	CountUsers(ctx context.Context, societyID uint) (int64, error)
}

type societyRepository struct {
	db *gorm.DB
}

func NewSocietyRepository(db *gorm.DB) SocietyRepository {
	return &societyRepository{db: db}
}

func (r *societyRepository) Create(ctx context.Context, society *models.Society) error {
	return r.db.WithContext(ctx).Create(society).Error
}

func (r *societyRepository) FindByID(ctx context.Context, id uint) (*models.Society, error) {
	var society models.Society
	if err := r.db.WithContext(ctx).First(&society, id).Error; err != nil {
		return nil, err
	}
	return &society, nil
}

func (r *societyRepository) List(ctx context.Context, activeOnly bool) ([]models.Society, error) {
	var societies []models.Society
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&societies).Error; err != nil {
		return nil, err
	}
	return societies, nil
}

func (r *societyRepository) Update(ctx context.Context, society *models.Society) error {
	return r.db.WithContext(ctx).Save(society).Error
}

func (r *societyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Society{}, id).Error
}

func (r *societyRepository) CountUsers(ctx context.Context, societyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("society_id = ?", societyID).
		Count(&count).Error
	return count, err
}
