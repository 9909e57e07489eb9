package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"gorm.io/gorm"
)

// referencePrefix is "BK" + yyyyMMdd; the suffix is a zero-padded 3-digit
// sequence that resets every calendar day.
func referencePrefix(now time.Time) string {
	return "BK" + now.Format("20060102")
}

// nextBookingReference computes 1 + the highest existing suffix for today's
// prefix. The read runs inside the caller's transaction, but the real guard
// against two creations landing on the same second is the unique index on
// booking_reference: the caller retries on a duplicate-key error.
func nextBookingReference(ctx context.Context, tx *gorm.DB, repo repository.BookingRepository, now time.Time) (string, error) {
	prefix := referencePrefix(now)

	last, err := repo.LastReferenceWithPrefix(ctx, tx, prefix)
	if err != nil {
		return "", err
	}

	sequence := 1
	if last != "" {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			sequence = n + 1
		}
	}

	return fmt.Sprintf("%s%03d", prefix, sequence), nil
}
