package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuth(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewService(repository.NewUserRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, active bool) *models.User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@test.local",
		PasswordHash: hash,
		Role:         models.RoleBookingAgent,
		IsActive:     active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestAuthenticate(t *testing.T) {
	svc, db := setupAuth(t)
	seeded := seedUser(t, db, "agent", "secret", true)

	user, err := svc.Authenticate(context.Background(), "agent", "secret")
	assert.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, "Test User", user.FullName())
}

func TestAuthenticate_Failures(t *testing.T) {
	svc, db := setupAuth(t)
	seedUser(t, db, "agent", "secret", true)
	seedUser(t, db, "inactive", "secret", false)

	// Unknown user, wrong password and deactivated account all return the
	// same error.
	_, err := svc.Authenticate(context.Background(), "ghost", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "agent", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "inactive", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
