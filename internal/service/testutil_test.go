package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/notify"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Society{},
		&models.SocietyTransp{},
		&models.Camion{},
		&models.User{},
		&models.Booking{},
		&models.BookingTemporisation{},
		&models.Voyage{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_temporisation_active
		ON booking_temporisations (booking_id)
		WHERE is_active
	`)

	return db
}

// recordingNotifier captures event names for assertions.
type recordingNotifier struct {
	events     []string
	recipients [][]string
}

func (n *recordingNotifier) record(event string, recipients []string) {
	n.events = append(n.events, event)
	n.recipients = append(n.recipients, recipients)
}

func (n *recordingNotifier) BookingCreated(b *models.Booking, r []string) {
	n.record(notify.EventBookingCreated, r)
}

func (n *recordingNotifier) BookingValidated(b *models.Booking, r []string) {
	n.record(notify.EventBookingValidated, r)
}

func (n *recordingNotifier) BookingTemporised(b *models.Booking, t *models.BookingTemporisation, r []string) {
	n.record(notify.EventBookingTemporised, r)
}

func (n *recordingNotifier) TemporisationResponded(b *models.Booking, t *models.BookingTemporisation, r []string) {
	n.record(notify.EventTemporisationResponded, r)
}

// testEnv bundles the repos and services every scenario needs.
type testEnv struct {
	db       *gorm.DB
	bookings BookingService
	voyages  VoyageService
	fleet    FleetService
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	bookingRepo := repository.NewBookingRepository(db)
	voyageRepo := repository.NewVoyageRepository(db)
	temporisationRepo := repository.NewTemporisationRepository(db)
	societyRepo := repository.NewSocietyRepository(db)
	carrierRepo := repository.NewSocietyTranspRepository(db)
	camionRepo := repository.NewCamionRepository(db)
	userRepo := repository.NewUserRepository(db)

	notifier := &recordingNotifier{}
	fleet := NewFleetService(camionRepo, carrierRepo, voyageRepo)

	return &testEnv{
		db: db,
		bookings: NewBookingService(
			bookingRepo, voyageRepo, temporisationRepo, societyRepo, userRepo, notifier, "ops@test.local"),
		voyages:  NewVoyageService(voyageRepo, bookingRepo, societyRepo, fleet),
		fleet:    fleet,
		notifier: notifier,
	}
}

func (e *testEnv) freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	e.bookings.(*bookingService).now = func() time.Time { return at }
}

func (e *testEnv) seedSociety(t *testing.T, name string) *models.Society {
	t.Helper()
	society := &models.Society{Name: name, City: "Dakhla", IsActive: true}
	if err := e.db.Create(society).Error; err != nil {
		t.Fatalf("failed to seed society: %v", err)
	}
	return society
}

func (e *testEnv) seedUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@test.local",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedCamion(t *testing.T, matricule string) *models.Camion {
	t.Helper()
	camion := &models.Camion{
		Matricule:   matricule,
		DriverName:  "Driver",
		DriverPhone: "0600000000",
		CamionType:  "INTERNE",
		IsActive:    true,
	}
	if err := e.db.Create(camion).Error; err != nil {
		t.Fatalf("failed to seed camion: %v", err)
	}
	return camion
}

func actorFor(user *models.User) auth.Actor {
	return auth.Actor{UserID: user.ID, Role: user.Role, SocietyID: user.SocietyID}
}
