package repository

import (
	"context"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/gorm"
)

type TemporisationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *models.BookingTemporisation) error
	FindByID(ctx context.Context, id uint) (*models.BookingTemporisation, error)
	FindActiveByBooking(ctx context.Context, bookingID uint) (*models.BookingTemporisation, error)
	DeactivateAllForBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error
	Update(ctx context.Context, tx *gorm.DB, t *models.BookingTemporisation) error
	ListPendingForCreator(ctx context.Context, creatorID uint) ([]models.BookingTemporisation, error)
}

type temporisationRepository struct {
	db *gorm.DB
}

func NewTemporisationRepository(db *gorm.DB) TemporisationRepository {
	return &temporisationRepository{db: db}
}

func (r *temporisationRepository) Create(ctx context.Context, tx *gorm.DB, t *models.BookingTemporisation) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *temporisationRepository) FindByID(ctx context.Context, id uint) (*models.BookingTemporisation, error) {
	var t models.BookingTemporisation
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *temporisationRepository) FindActiveByBooking(ctx context.Context, bookingID uint) (*models.BookingTemporisation, error) {
	var t models.BookingTemporisation
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND is_active = ?", bookingID, true).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *temporisationRepository) DeactivateAllForBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).
		Model(&models.BookingTemporisation{}).
		Where("booking_id = ? AND is_active = ?", bookingID, true).
		Update("is_active", false).Error
}

func (r *temporisationRepository) Update(ctx context.Context, tx *gorm.DB, t *models.BookingTemporisation) error {
	return tx.WithContext(ctx).Save(t).Error
}

// ListPendingForCreator returns active temporisations still awaiting a
// response, for bookings created by the given user.
func (r *temporisationRepository) ListPendingForCreator(ctx context.Context, creatorID uint) ([]models.BookingTemporisation, error) {
	var temporisations []models.BookingTemporisation
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = booking_temporisations.booking_id").
		Where("bookings.created_by_user_id = ?", creatorID).
		Where("booking_temporisations.is_active = ? AND booking_temporisations.creator_response = ?",
			true, models.ResponsePending).
		Order("booking_temporisations.temporised_at DESC").
		Find(&temporisations).Error
	if err != nil {
		return nil, err
	}
	return temporisations, nil
}
