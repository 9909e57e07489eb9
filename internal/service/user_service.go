package service

import (
	"context"
	"errors"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/gorm"
)

const minPasswordLength = 4

type UserInput struct {
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Role       models.Role
	SocietyID  *uint
	TypeVoyage string
}

type UserService interface {
	Create(ctx context.Context, actor auth.Actor, input UserInput) (*models.User, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UserInput) (*models.User, error)
	Deactivate(ctx context.Context, actor auth.Actor, id uint) (*models.User, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	List(ctx context.Context, actor auth.Actor, activeOnly bool) ([]models.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
}

func NewUserService(userRepo repository.UserRepository, bookingRepo repository.BookingRepository) UserService {
	return &userService{userRepo: userRepo, bookingRepo: bookingRepo}
}

func validRole(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleBookingAgent, models.RoleValidator:
		return true
	}
	return false
}

func (s *userService) Create(ctx context.Context, actor auth.Actor, input UserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.Username == "" {
		return nil, invalid("username", "le nom d'utilisateur est requis")
	}
	if len(input.Password) < minPasswordLength {
		return nil, invalid("password", "le mot de passe doit contenir au moins 4 caractères")
	}
	if !validRole(input.Role) {
		return nil, invalid("role", "rôle invalide")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		SocietyID:    input.SocietyID,
		TypeVoyage:   input.TypeVoyage,
		IsActive:     true,
	}
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update changes profile fields; the password only moves when a new one is
// supplied.
func (s *userService) Update(ctx context.Context, actor auth.Actor, id uint, input UserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !validRole(input.Role) {
		return nil, invalid("role", "rôle invalide")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	user.Username = input.Username
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Role = input.Role
	user.SocietyID = input.SocietyID
	user.TypeVoyage = input.TypeVoyage

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return nil, invalid("password", "le mot de passe doit contenir au moins 4 caractères")
		}
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	err = s.userRepo.Update(ctx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, actor auth.Actor, id uint) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if user.Role == models.RoleAdmin && user.IsActive {
		admins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, invalid("", "impossible de désactiver le dernier administrateur actif")
		}
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete refuses for booking creators and for the last active admin.
func (s *userService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if user.Role == models.RoleAdmin && user.IsActive {
		admins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return invalid("", "impossible de supprimer le dernier administrateur actif")
		}
	}

	bookings, err := s.bookingRepo.CountByCreator(ctx, user.ID)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return invalid("", "impossible de supprimer '"+user.Username+"' car cet utilisateur a créé des réservations. Désactivez-le plutôt.")
	}

	return s.userRepo.Delete(ctx, user.ID)
}

func (s *userService) List(ctx context.Context, actor auth.Actor, activeOnly bool) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.userRepo.List(ctx, activeOnly)
}
