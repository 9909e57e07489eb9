package auth

import "github.com/Moadjaafar/GESTION-LTIPM/internal/models"

// Actor is the authenticated principal behind a request. It is built by the
// identity middleware and passed explicitly into every service operation;
// the engines never read ambient request state.
type Actor struct {
	UserID    uint
	Role      models.Role
	SocietyID *uint
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanCreateBooking: Admin and booking agents open bookings.
func (a Actor) CanCreateBooking() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleBookingAgent
}

// CanValidateBooking covers validation and temporisation.
func (a Actor) CanValidateBooking() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleValidator
}

// CanManageVoyages: the voyage lifecycle belongs to transport staff.
func (a Actor) CanManageVoyages() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleValidator
}
