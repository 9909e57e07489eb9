package service

import (
	"context"
	"errors"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/gorm"
)

type SocietyInput struct {
	Name    string
	Address string
	City    string
	Phone   string
	Email   string
}

type SocietyService interface {
	Create(ctx context.Context, actor auth.Actor, input SocietyInput) (*models.Society, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input SocietyInput) (*models.Society, error)
	Deactivate(ctx context.Context, actor auth.Actor, id uint) (*models.Society, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	List(ctx context.Context, activeOnly bool) ([]models.Society, error)
	Get(ctx context.Context, id uint) (*models.Society, error)
}

type societyService struct {
	societyRepo repository.SocietyRepository
	bookingRepo repository.BookingRepository
}

func NewSocietyService(societyRepo repository.SocietyRepository, bookingRepo repository.BookingRepository) SocietyService {
	return &societyService{societyRepo: societyRepo, bookingRepo: bookingRepo}
}

func (s *societyService) Create(ctx context.Context, actor auth.Actor, input SocietyInput) (*models.Society, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.Name == "" {
		return nil, invalid("name", "le nom de la société est requis")
	}

	society := &models.Society{
		Name:     input.Name,
		Address:  input.Address,
		City:     input.City,
		Phone:    input.Phone,
		Email:    input.Email,
		IsActive: true,
	}
	err := s.societyRepo.Create(ctx, society)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return society, nil
}

func (s *societyService) Update(ctx context.Context, actor auth.Actor, id uint, input SocietyInput) (*models.Society, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	society, err := s.societyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	society.Name = input.Name
	society.Address = input.Address
	society.City = input.City
	society.Phone = input.Phone
	society.Email = input.Email

	err = s.societyRepo.Update(ctx, society)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return society, nil
}

func (s *societyService) Deactivate(ctx context.Context, actor auth.Actor, id uint) (*models.Society, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	society, err := s.societyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	society.IsActive = false
	if err := s.societyRepo.Update(ctx, society); err != nil {
		return nil, err
	}
	return society, nil
}

// Delete refuses while users or bookings reference the société.
func (s *societyService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	society, err := s.societyRepo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	users, err := s.societyRepo.CountUsers(ctx, society.ID)
	if err != nil {
		return err
	}
	if users > 0 {
		return invalid("", "impossible de supprimer '"+society.Name+"' car elle a des utilisateurs associés. Désactivez-la plutôt.")
	}

	bookings, err := s.bookingRepo.CountBySociety(ctx, society.ID)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return invalid("", "impossible de supprimer '"+society.Name+"' car elle a des réservations associées. Désactivez-la plutôt.")
	}

	return s.societyRepo.Delete(ctx, society.ID)
}

func (s *societyService) List(ctx context.Context, activeOnly bool) ([]models.Society, error) {
	return s.societyRepo.List(ctx, activeOnly)
}

func (s *societyService) Get(ctx context.Context, id uint) (*models.Society, error) {
	society, err := s.societyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return society, nil
}
