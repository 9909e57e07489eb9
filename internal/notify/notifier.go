package notify

import (
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
)

// Event names carried in the notification envelope.
const (
	EventBookingCreated         = "BookingCreated"
	EventBookingValidated       = "BookingValidated"
	EventBookingTemporised      = "BookingTemporised"
	EventTemporisationResponded = "TemporisationResponded"
)

// Notifier hands lifecycle events to the out-of-band email worker. Every
// method is fire-and-forget: implementations log failures and never return
// them, so a broken broker cannot gate a booking.
type Notifier interface {
	BookingCreated(booking *models.Booking, recipients []string)
	BookingValidated(booking *models.Booking, recipients []string)
	BookingTemporised(booking *models.Booking, t *models.BookingTemporisation, recipients []string)
	TemporisationResponded(booking *models.Booking, t *models.BookingTemporisation, recipients []string)
}

// Noop satisfies Notifier for tests and degraded startup.
type Noop struct{}

func (Noop) BookingCreated(*models.Booking, []string)   {}
func (Noop) BookingValidated(*models.Booking, []string) {}
func (Noop) BookingTemporised(*models.Booking, *models.BookingTemporisation, []string) {
}
func (Noop) TemporisationResponded(*models.Booking, *models.BookingTemporisation, []string) {
}
