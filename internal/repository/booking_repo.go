package repository

import (
	"context"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	LastReferenceWithPrefix(ctx context.Context, tx *gorm.DB, prefix string) (string, error)
	Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, createdBy *uint) ([]models.Booking, error)
	CountBySociety(ctx context.Context, societyID uint) (int64, error)
	CountByCreator(ctx context.Context, userID uint) (int64, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given
// transaction, serializing concurrent voyage creation and status changes.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// LastReferenceWithPrefix returns the highest booking reference sharing the
// given day prefix, or "" when none exists yet.
func (r *bookingRepository) LastReferenceWithPrefix(ctx context.Context, tx *gorm.DB, prefix string) (string, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("booking_reference LIKE ?", prefix+"%").
		Order("booking_reference DESC").
		First(&booking).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return booking.BookingReference, nil
}

func (r *bookingRepository) Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (r *bookingRepository) List(ctx context.Context, createdBy *uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if createdBy != nil {
		q = q.Where("created_by_user_id = ?", *createdBy)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountBySociety(ctx context.Context, societyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("society_id = ?", societyID).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountByCreator(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("created_by_user_id = ?", userID).
		Count(&count).Error
	return count, err
}
