package service

import (
	"context"
	"testing"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"github.com/stretchr/testify/assert"
)

func newSocietyService(env *testEnv) SocietyService {
	return NewSocietyService(
		repository.NewSocietyRepository(env.db),
		repository.NewBookingRepository(env.db),
	)
}

func TestSocietyService_Create(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)
	societies := newSocietyService(env)

	_, err := societies.Create(context.Background(), actorFor(agent), SocietyInput{Name: "X"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = societies.Create(context.Background(), actorFor(admin), SocietyInput{})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	created, err := societies.Create(context.Background(), actorFor(admin), SocietyInput{Name: "King Pelagique", City: "Dakhla"})
	assert.NoError(t, err)
	assert.True(t, created.IsActive)

	// Names are unique.
	_, err = societies.Create(context.Background(), actorFor(admin), SocietyInput{Name: "King Pelagique"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSocietyService_DeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	societies := newSocietyService(env)

	withUsers, err := societies.Create(context.Background(), actorFor(admin), SocietyInput{Name: "Avec Utilisateurs"})
	assert.NoError(t, err)
	member := env.seedUser(t, "member", models.RoleBookingAgent)
	env.db.Model(member).Update("society_id", withUsers.ID)

	err = societies.Delete(context.Background(), actorFor(admin), withUsers.ID)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "utilisateurs")

	withBookings, err := societies.Create(context.Background(), actorFor(admin), SocietyInput{Name: "Avec Réservations"})
	assert.NoError(t, err)
	_, err = env.bookings.Create(context.Background(), actorFor(admin), validCreateInput(withBookings.ID))
	assert.NoError(t, err)

	err = societies.Delete(context.Background(), actorFor(admin), withBookings.ID)
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "réservations")

	empty, err := societies.Create(context.Background(), actorFor(admin), SocietyInput{Name: "Vide"})
	assert.NoError(t, err)
	assert.NoError(t, societies.Delete(context.Background(), actorFor(admin), empty.ID))
	_, err = societies.Get(context.Background(), empty.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSocietyService_Deactivate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	societies := newSocietyService(env)

	society, err := societies.Create(context.Background(), actorFor(admin), SocietyInput{Name: "Société"})
	assert.NoError(t, err)

	deactivated, err := societies.Deactivate(context.Background(), actorFor(admin), society.ID)
	assert.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	// Inactive sociétés refuse new bookings.
	_, err = env.bookings.Create(context.Background(), actorFor(admin), validCreateInput(society.ID))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestFleetService_CamionCRUD(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin", models.RoleAdmin)
	agent := env.seedUser(t, "agent", models.RoleBookingAgent)

	_, err := env.fleet.CreateCamion(context.Background(), actorFor(agent), CamionInput{Matricule: "1-A-1"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.fleet.CreateCamion(context.Background(), actorFor(admin), CamionInput{})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	camion, err := env.fleet.CreateCamion(context.Background(), actorFor(admin), CamionInput{
		Matricule:   "1-A-1",
		DriverName:  "Chauffeur",
		DriverPhone: "0600000000",
		CamionType:  "INTERNE",
	})
	assert.NoError(t, err)
	assert.True(t, camion.IsActive)

	// Matricules are unique.
	_, err = env.fleet.CreateCamion(context.Background(), actorFor(admin), CamionInput{Matricule: "1-A-1"})
	assert.ErrorIs(t, err, ErrConflict)

	deactivated, err := env.fleet.DeactivateCamion(context.Background(), actorFor(admin), camion.ID)
	assert.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	active, err := env.fleet.ListCamions(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, active, 0)
}

func TestFleetService_DeleteCamionGuard(t *testing.T) {
	env := newTestEnv(t)
	actor, booking := validatedBooking(t, env, 1)
	camion := env.seedCamion(t, "1-A-1")

	voyage, err := env.voyages.Create(context.Background(), actor, booking.ID, "TC-001")
	assert.NoError(t, err)
	input := departInput("Agadir", camion.ID)
	input.DepartureDate = time.Now()
	_, err = env.voyages.Depart(context.Background(), actor, voyage.ID, input)
	assert.NoError(t, err)

	err = env.fleet.DeleteCamion(context.Background(), actor, camion.ID)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "Désactivez-le")

	unused := env.seedCamion(t, "2-B-2")
	assert.NoError(t, env.fleet.DeleteCamion(context.Background(), actor, unused.ID))
}

func TestFleetService_CarrierReuse(t *testing.T) {
	env := newTestEnv(t)
	actor, booking := validatedBooking(t, env, 2)

	external := func(matricule string) DepartInput {
		return DepartInput{
			DepartureType: models.DepartureEmpty,
			DepartureCity: "Agadir",
			DepartureDate: time.Now(),
			Truck: TruckSlot{Externe: &ExternalTruck{
				CarrierName: "Trans Sud",
				Matricule:   matricule,
				DriverName:  "Chauffeur",
				DriverPhone: "0600000000",
			}},
		}
	}

	v1, err := env.voyages.Create(context.Background(), actor, booking.ID, "TC-001")
	assert.NoError(t, err)
	_, err = env.voyages.Depart(context.Background(), actor, v1.ID, external("9-C-1"))
	assert.NoError(t, err)

	v2, err := env.voyages.Create(context.Background(), actor, booking.ID, "TC-002")
	assert.NoError(t, err)
	_, err = env.voyages.Depart(context.Background(), actor, v2.ID, external("9-C-2"))
	assert.NoError(t, err)

	// Both external trucks share the one carrier record.
	carriers, err := env.fleet.ListCarriers(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, carriers, 1)

	camions, err := env.fleet.ListCamionsByCarrier(context.Background(), carriers[0].ID)
	assert.NoError(t, err)
	assert.Len(t, camions, 2)
}
