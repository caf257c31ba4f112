// Package repositories holds the ledger store contract and its MySQL
// implementation. The contract is the only way the services mutate or read
// trip facts, so a test double can stand in for the whole database.
package repositories

import (
	"context"
	"time"

	"angkot/internal/domain"
)

// Storage is the ledger store contract. All names are case-sensitive
// strings; all day parameters are compared at calendar-day granularity in
// the app timezone.
type Storage interface {
	SaveDriver(ctx context.Context, name string, chatID int64) error
	GetDrivers(ctx context.Context, chatID int64) ([]string, error)
	DriverExists(ctx context.Context, name string, chatID int64) (bool, error)

	SavePassenger(ctx context.Context, name string, chatID int64) error
	GetPassengers(ctx context.Context, chatID int64) ([]string, error)

	// ReplaceDeparture and ReplaceReturn discard the driver's existing leg
	// of that type for the day and insert the given passenger set, as one
	// atomic operation. Submitting twice never accumulates.
	ReplaceDeparture(ctx context.Context, driver string, passengers []string, chatID int64, day time.Time) error
	ReplaceReturn(ctx context.Context, driver string, passengers []string, chatID int64, day time.Time) error
	DeleteDeparture(ctx context.Context, driver string, chatID int64, day time.Time) error
	DeleteReturn(ctx context.Context, driver string, chatID int64, day time.Time) error

	GetDeparturePassengers(ctx context.Context, driver string, chatID int64, day time.Time) ([]string, error)
	GetReturnPassengers(ctx context.Context, driver string, chatID int64, day time.Time) ([]string, error)
	GetDriversByDate(ctx context.Context, chatID int64, day time.Time) ([]string, error)
	HasDepartureOn(ctx context.Context, passenger string, chatID int64, day time.Time) (bool, error)

	ListLegs(ctx context.Context, chatID int64, day time.Time) ([]domain.TripLeg, error)
}
