package service

import (
	"context"
	"testing"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/notify"
	"github.com/stretchr/testify/assert"
)

func validCreateInput(societyID uint) CreateBookingInput {
	return CreateBookingInput{
		SocietyID:      societyID,
		NumeroBK:       "BK-EXT-001",
		TypeVoyage:     "Poisson",
		TypeContenaire: "40HC",
		NomClient:      "Client Test",
		NbrLTC:         2,
	}
}

func TestCreateBooking_ReferenceSequence(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "King Pelagique")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)

	frozen := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	env.freezeClock(t, frozen)

	first, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)
	assert.Equal(t, "BK20250315001", first.BookingReference)
	assert.Equal(t, models.BookingPending, first.Status)
	assert.Equal(t, agent.ID, first.CreatedByUserID)

	second, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)
	assert.Equal(t, "BK20250315002", second.BookingReference)

	// The sequence restarts at 001 on the next calendar day.
	env.freezeClock(t, frozen.Add(24*time.Hour))
	rolled, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)
	assert.Equal(t, "BK20250316001", rolled.BookingReference)

	assert.Equal(t, []string{notify.EventBookingCreated, notify.EventBookingCreated, notify.EventBookingCreated}, env.notifier.events)
	assert.Equal(t, []string{"ops@test.local", "agent@test.local"}, env.notifier.recipients[0])
}

func TestCreateBooking_Validation(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Active")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	actor := actorFor(agent)

	input := validCreateInput(society.ID)
	input.NumeroBK = ""
	_, err := env.bookings.Create(context.Background(), actor, input)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "numero_bk", validationErr.Field)

	input = validCreateInput(society.ID)
	input.NbrLTC = 0
	_, err = env.bookings.Create(context.Background(), actor, input)
	assert.ErrorAs(t, err, &validationErr)

	input = validCreateInput(society.ID)
	input.NbrLTC = 101
	_, err = env.bookings.Create(context.Background(), actor, input)
	assert.ErrorAs(t, err, &validationErr)

	inactive := env.seedSociety(t, "Inactive")
	env.db.Model(inactive).Update("is_active", false)
	input = validCreateInput(inactive.ID)
	_, err = env.bookings.Create(context.Background(), actor, input)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "society_id", validationErr.Field)
}

func TestCreateBooking_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	_, err := env.bookings.Create(context.Background(), actorFor(validator), validCreateInput(society.ID))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestValidateBooking(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)

	// The creator role cannot validate.
	_, err = env.bookings.Validate(context.Background(), actorFor(agent), booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	validated, err := env.bookings.Validate(context.Background(), actorFor(validator), booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingValidated, validated.Status)
	assert.NotNil(t, validated.ValidatedAt)
	assert.Equal(t, validator.ID, *validated.ValidatedByUserID)

	// Validation is one-way and single-shot.
	_, err = env.bookings.Validate(context.Background(), actorFor(validator), booking.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Contains(t, env.notifier.events, notify.EventBookingValidated)
}

func TestTemporiseBooking(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)

	_, err = env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "",
		EstimatedValidationDate: time.Now().Add(72 * time.Hour),
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente documents",
		EstimatedValidationDate: time.Now().Add(-24 * time.Hour),
	})
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "estimated_validation_date", validationErr.Field)

	temporisation, err := env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente documents",
		EstimatedValidationDate: time.Now().Add(72 * time.Hour),
	})
	assert.NoError(t, err)
	assert.True(t, temporisation.IsActive)
	assert.Equal(t, models.ResponsePending, temporisation.CreatorResponse)

	refreshed, err := env.bookings.Get(context.Background(), actorFor(agent), booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingTemporised, refreshed.Status)

	// Temporised bookings cannot be temporised again without a refusal.
	_, err = env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "encore",
		EstimatedValidationDate: time.Now().Add(96 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTemporiseBooking_SameDayRejected(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)

	// The comparison is at date granularity: an afternoon clock must not
	// let a same-day (or earlier) timestamp through.
	frozen := time.Date(2025, 3, 15, 16, 0, 0, 0, time.UTC)
	env.freezeClock(t, frozen)

	for _, estimate := range []time.Time{
		time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC),
	} {
		_, err = env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
			Reason:                  "attente documents",
			EstimatedValidationDate: estimate,
		})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "estimated_validation_date", validationErr.Field)
	}

	// Tomorrow morning is fine even though the clock reads later in the day.
	_, err = env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente documents",
		EstimatedValidationDate: time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestActiveTemporisation(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	other := env.seedUser(t, "other", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)

	_, err = env.bookings.ActiveTemporisation(context.Background(), actorFor(agent), booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente quai",
		EstimatedValidationDate: time.Now().Add(72 * time.Hour),
	})
	assert.NoError(t, err)

	active, err := env.bookings.ActiveTemporisation(context.Background(), actorFor(agent), booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)

	// Agents only see their own bookings' temporisations.
	_, err = env.bookings.ActiveTemporisation(context.Background(), actorFor(other), booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// A refusal deactivates it.
	_, err = env.bookings.RespondToTemporisation(
		context.Background(), actorFor(agent), created.ID, models.ResponseRefused, "")
	assert.NoError(t, err)
	_, err = env.bookings.ActiveTemporisation(context.Background(), actorFor(agent), booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondToTemporisation(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	other := env.seedUser(t, "other", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)
	temporisation, err := env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente documents",
		EstimatedValidationDate: time.Now().Add(72 * time.Hour),
	})
	assert.NoError(t, err)

	// Only the booking creator answers.
	_, err = env.bookings.RespondToTemporisation(
		context.Background(), actorFor(other), temporisation.ID, models.ResponseAccepted, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.bookings.RespondToTemporisation(
		context.Background(), actorFor(agent), temporisation.ID, "Maybe", "")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	answered, err := env.bookings.RespondToTemporisation(
		context.Background(), actorFor(agent), temporisation.ID, models.ResponseRefused, "trop tard")
	assert.NoError(t, err)
	assert.Equal(t, models.ResponseRefused, answered.CreatorResponse)
	assert.False(t, answered.IsActive)
	assert.NotNil(t, answered.CreatorRespondedAt)

	// Refusal reverts the booking for a fresh decision.
	refreshed, err := env.bookings.Get(context.Background(), actorFor(agent), booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingPending, refreshed.Status)

	// One response per temporisation.
	_, err = env.bookings.RespondToTemporisation(
		context.Background(), actorFor(agent), temporisation.ID, models.ResponseAccepted, "")
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	assert.Contains(t, env.notifier.events, notify.EventTemporisationResponded)
}

func TestRespondToTemporisation_Accepted(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, _ := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	temporisation, _ := env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente quai",
		EstimatedValidationDate: time.Now().Add(72 * time.Hour),
	})

	answered, err := env.bookings.RespondToTemporisation(
		context.Background(), actorFor(agent), temporisation.ID, models.ResponseAccepted, "ok")
	assert.NoError(t, err)
	assert.Equal(t, models.ResponseAccepted, answered.CreatorResponse)
	assert.True(t, answered.IsActive)

	// Acceptance keeps the booking parked.
	refreshed, _ := env.bookings.Get(context.Background(), actorFor(agent), booking.ID)
	assert.Equal(t, models.BookingTemporised, refreshed.Status)
}

func TestEditBooking_NbrLTCFloor(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)

	booking, err := env.bookings.Create(context.Background(), actorFor(admin), validCreateInput(society.ID))
	assert.NoError(t, err)

	_, err = env.bookings.Validate(context.Background(), actorFor(admin), booking.ID)
	assert.NoError(t, err)
	_, err = env.voyages.Create(context.Background(), actorFor(admin), booking.ID, "TC-001")
	assert.NoError(t, err)
	_, err = env.voyages.Create(context.Background(), actorFor(admin), booking.ID, "TC-002")
	assert.NoError(t, err)

	// Validated bookings are frozen for plain edits.
	edit := EditBookingInput{
		NumeroBK:   booking.NumeroBK,
		SocietyID:  society.ID,
		TypeVoyage: booking.TypeVoyage,
		NbrLTC:     1,
	}
	_, err = env.bookings.Edit(context.Background(), actorFor(admin), booking.ID, edit)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEditBooking_Pending(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)

	_, err = env.bookings.Edit(context.Background(), actorFor(agent), booking.ID, EditBookingInput{})
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := env.bookings.Edit(context.Background(), actorFor(admin), booking.ID, EditBookingInput{
		NumeroBK:   "BK-EXT-002",
		SocietyID:  society.ID,
		TypeVoyage: "Farine",
		NbrLTC:     5,
		Notes:      "révision",
	})
	assert.NoError(t, err)
	assert.Equal(t, "BK-EXT-002", edited.NumeroBK)
	assert.Equal(t, 5, edited.NbrLTC)
	// The generated reference never changes on edit.
	assert.Equal(t, booking.BookingReference, edited.BookingReference)
}

func TestEditBooking_SocietyValidation(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)

	booking, err := env.bookings.Create(context.Background(), actorFor(admin), validCreateInput(society.ID))
	assert.NoError(t, err)

	edit := EditBookingInput{
		NumeroBK:   booking.NumeroBK,
		SocietyID:  9999,
		TypeVoyage: booking.TypeVoyage,
		NbrLTC:     booking.NbrLTC,
	}
	_, err = env.bookings.Edit(context.Background(), actorFor(admin), booking.ID, edit)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "society_id", validationErr.Field)

	inactive := env.seedSociety(t, "Inactive")
	env.db.Model(inactive).Update("is_active", false)
	edit.SocietyID = inactive.ID
	_, err = env.bookings.Edit(context.Background(), actorFor(admin), booking.ID, edit)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "society_id", validationErr.Field)

	// The rejected edits left the booking untouched.
	refreshed, err := env.bookings.Get(context.Background(), actorFor(admin), booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, society.ID, refreshed.SocietyID)
}

func TestBulkEditBooking_SocietyValidation(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)

	booking, err := env.bookings.Create(context.Background(), actorFor(admin), validCreateInput(society.ID))
	assert.NoError(t, err)

	_, err = env.bookings.BulkEdit(context.Background(), actorFor(admin), booking.ID, BulkEditBookingInput{
		Booking: EditBookingInput{
			NumeroBK:   booking.NumeroBK,
			SocietyID:  9999,
			TypeVoyage: booking.TypeVoyage,
			NbrLTC:     booking.NbrLTC,
		},
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "society_id", validationErr.Field)
}

func TestBulkEditBooking(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)

	booking, err := env.bookings.Create(context.Background(), actorFor(admin), validCreateInput(society.ID))
	assert.NoError(t, err)
	_, err = env.bookings.Validate(context.Background(), actorFor(admin), booking.ID)
	assert.NoError(t, err)
	v1, err := env.voyages.Create(context.Background(), actorFor(admin), booking.ID, "TC-001")
	assert.NoError(t, err)
	v2, err := env.voyages.Create(context.Background(), actorFor(admin), booking.ID, "TC-002")
	assert.NoError(t, err)

	input := BulkEditBookingInput{
		Booking: EditBookingInput{
			NumeroBK:   booking.NumeroBK,
			SocietyID:  society.ID,
			TypeVoyage: booking.TypeVoyage,
			NbrLTC:     booking.NbrLTC,
		},
		Voyages: []VoyageTCEdit{
			{VoyageID: v1.ID, NumeroTC: "TC-100"},
			{VoyageID: v2.ID, NumeroTC: "TC-100"},
		},
	}
	_, err = env.bookings.BulkEdit(context.Background(), actorFor(admin), booking.ID, input)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "dupliqués")

	input.Voyages[1].NumeroTC = "TC-200"
	// Rows pointing at voyages that no longer exist are skipped, not fatal.
	input.Voyages = append(input.Voyages, VoyageTCEdit{VoyageID: 9999, NumeroTC: "TC-300"})
	_, err = env.bookings.BulkEdit(context.Background(), actorFor(admin), booking.ID, input)
	assert.NoError(t, err)

	updated, err := env.voyages.Get(context.Background(), v1.ID)
	assert.NoError(t, err)
	assert.Equal(t, "TC-100", updated.NumeroTC)
}

func TestDeleteBooking(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	other := env.seedUser(t, "other", models.RoleBookingAgent)

	booking, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)

	// An agent only deletes their own pending bookings.
	err = env.bookings.Delete(context.Background(), actorFor(other), booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = env.bookings.Delete(context.Background(), actorFor(agent), booking.ID)
	assert.NoError(t, err)
	_, err = env.bookings.Get(context.Background(), actorFor(agent), booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	validated, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)
	_, err = env.bookings.Validate(context.Background(), actorFor(admin), validated.ID)
	assert.NoError(t, err)

	err = env.bookings.Delete(context.Background(), actorFor(admin), validated.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestListBookings_AgentScoping(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	other := env.seedUser(t, "other", models.RoleBookingAgent)

	_, err := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	assert.NoError(t, err)
	_, err = env.bookings.Create(context.Background(), actorFor(other), validCreateInput(society.ID))
	assert.NoError(t, err)

	mine, err := env.bookings.List(context.Background(), actorFor(agent))
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := env.bookings.List(context.Background(), actorFor(admin))
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPendingTemporisations(t *testing.T) {
	env := newTestEnv(t)
	society := env.seedSociety(t, "Société")
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	validator := env.seedUser(t, "transrespo", models.RoleValidator)

	booking, _ := env.bookings.Create(context.Background(), actorFor(agent), validCreateInput(society.ID))
	_, err := env.bookings.Temporise(context.Background(), actorFor(validator), booking.ID, TemporiseInput{
		Reason:                  "attente",
		EstimatedValidationDate: time.Now().Add(72 * time.Hour),
	})
	assert.NoError(t, err)

	pending, err := env.bookings.PendingTemporisations(context.Background(), actorFor(agent))
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	none, err := env.bookings.PendingTemporisations(context.Background(), actorFor(validator))
	assert.NoError(t, err)
	assert.Len(t, none, 0)
}
