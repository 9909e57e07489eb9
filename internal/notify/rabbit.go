package notify

import (
	"context"
	"log"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/pkg/rabbitmq"
	"github.com/google/uuid"
)

// envelope is the wire format consumed by the notification worker.
type envelope struct {
	ID         string      `json:"id"`
	Event      string      `json:"event"`
	Recipients []string    `json:"recipients"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type temporisationPayload struct {
	Booking       *models.Booking              `json:"booking"`
	Temporisation *models.BookingTemporisation `json:"temporisation"`
}

// RabbitNotifier publishes notification envelopes to the notifications
// topic exchange. Publish errors are logged and dropped.
type RabbitNotifier struct {
	publisher *rabbitmq.Publisher
}

func NewRabbitNotifier(publisher *rabbitmq.Publisher) *RabbitNotifier {
	return &RabbitNotifier{publisher: publisher}
}

func (n *RabbitNotifier) publish(routingKey, event string, recipients []string, payload interface{}) {
	// Fire-and-forget after the owning transaction: a fresh context so a
	// cancelled request cannot suppress the notification.
	err := n.publisher.Publish(context.Background(), routingKey, envelope{
		ID:         uuid.NewString(),
		Event:      event,
		Recipients: recipients,
		Payload:    payload,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("[Notifier] dropped %s notification: %v", event, err)
	}
}

func (n *RabbitNotifier) BookingCreated(booking *models.Booking, recipients []string) {
	n.publish("booking.created", EventBookingCreated, recipients, booking)
}

func (n *RabbitNotifier) BookingValidated(booking *models.Booking, recipients []string) {
	n.publish("booking.validated", EventBookingValidated, recipients, booking)
}

func (n *RabbitNotifier) BookingTemporised(booking *models.Booking, t *models.BookingTemporisation, recipients []string) {
	n.publish("booking.temporised", EventBookingTemporised, recipients, temporisationPayload{booking, t})
}

func (n *RabbitNotifier) TemporisationResponded(booking *models.Booking, t *models.BookingTemporisation, recipients []string) {
	n.publish("temporisation.responded", EventTemporisationResponded, recipients, temporisationPayload{booking, t})
}
