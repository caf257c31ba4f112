package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"angkot/internal/domain"
	"angkot/internal/repositories"
	"angkot/internal/utils"
)

// memStore is an in-memory Storage for service tests. Replacement
// semantics mirror the MySQL implementation: delete the leg, insert the
// deduplicated set, keep insertion order.
type memStore struct {
	drivers    map[string]bool
	passengers []string
	legs       map[string][]string
	failing    bool
}

var _ repositories.Storage = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		drivers: make(map[string]bool),
		legs:    make(map[string][]string),
	}
}

var errStoreDown = errors.New("ledger unavailable")

func driverKey(name string, chatID int64) string {
	return fmt.Sprintf("%d|%s", chatID, name)
}

func storeLegKey(driver string, chatID int64, leg domain.LegType, day time.Time) string {
	return fmt.Sprintf("%d|%s|%s|%s", chatID, driver, leg, utils.FormatDay(day))
}

func (m *memStore) SaveDriver(_ context.Context, name string, chatID int64) error {
	if m.failing {
		return errStoreDown
	}
	m.drivers[driverKey(name, chatID)] = true
	return nil
}

func (m *memStore) GetDrivers(_ context.Context, chatID int64) ([]string, error) {
	if m.failing {
		return nil, errStoreDown
	}
	var out []string
	for key := range m.drivers {
		var id int64
		var name string
		fmt.Sscanf(key, "%d|", &id)
		if id == chatID {
			name = key[len(fmt.Sprintf("%d|", id)):]
			out = append(out, name)
		}
	}
	return out, nil
}

func (m *memStore) DriverExists(_ context.Context, name string, chatID int64) (bool, error) {
	if m.failing {
		return false, errStoreDown
	}
	return m.drivers[driverKey(name, chatID)], nil
}

func (m *memStore) SavePassenger(_ context.Context, name string, chatID int64) error {
	if m.failing {
		return errStoreDown
	}
	m.passengers = append(m.passengers, name)
	return nil
}

func (m *memStore) GetPassengers(_ context.Context, _ int64) ([]string, error) {
	if m.failing {
		return nil, errStoreDown
	}
	return append([]string{}, m.passengers...), nil
}

func (m *memStore) ReplaceDeparture(_ context.Context, driver string, passengers []string, chatID int64, day time.Time) error {
	return m.replace(driver, passengers, chatID, domain.LegDeparture, day)
}

func (m *memStore) ReplaceReturn(_ context.Context, driver string, passengers []string, chatID int64, day time.Time) error {
	return m.replace(driver, passengers, chatID, domain.LegReturn, day)
}

func (m *memStore) DeleteDeparture(_ context.Context, driver string, chatID int64, day time.Time) error {
	return m.replace(driver, nil, chatID, domain.LegDeparture, day)
}

func (m *memStore) DeleteReturn(_ context.Context, driver string, chatID int64, day time.Time) error {
	return m.replace(driver, nil, chatID, domain.LegReturn, day)
}

func (m *memStore) replace(driver string, passengers []string, chatID int64, leg domain.LegType, day time.Time) error {
	if m.failing {
		return errStoreDown
	}
	key := storeLegKey(driver, chatID, leg, day)
	delete(m.legs, key)
	seen := make(map[string]bool)
	for _, p := range passengers {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		m.legs[key] = append(m.legs[key], p)
	}
	return nil
}

func (m *memStore) GetDeparturePassengers(_ context.Context, driver string, chatID int64, day time.Time) ([]string, error) {
	if m.failing {
		return nil, errStoreDown
	}
	return append([]string{}, m.legs[storeLegKey(driver, chatID, domain.LegDeparture, day)]...), nil
}

func (m *memStore) GetReturnPassengers(_ context.Context, driver string, chatID int64, day time.Time) ([]string, error) {
	if m.failing {
		return nil, errStoreDown
	}
	return append([]string{}, m.legs[storeLegKey(driver, chatID, domain.LegReturn, day)]...), nil
}

func (m *memStore) GetDriversByDate(_ context.Context, chatID int64, day time.Time) ([]string, error) {
	if m.failing {
		return nil, errStoreDown
	}
	seen := make(map[string]bool)
	var out []string
	for _, leg := range []domain.LegType{domain.LegDeparture, domain.LegReturn} {
		for key, passengers := range m.legs {
			var driver string
			var ok bool
			driver, ok = parseLegKeyDriver(key, chatID, leg, day)
			if !ok || len(passengers) == 0 || seen[driver] {
				continue
			}
			seen[driver] = true
			out = append(out, driver)
		}
	}
	sortStrings(out)
	return out, nil
}

func (m *memStore) HasDepartureOn(_ context.Context, passenger string, chatID int64, day time.Time) (bool, error) {
	if m.failing {
		return false, errStoreDown
	}
	for key, passengers := range m.legs {
		if _, ok := parseLegKeyDriver(key, chatID, domain.LegDeparture, day); !ok {
			continue
		}
		for _, p := range passengers {
			if p == passenger {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memStore) ListLegs(_ context.Context, chatID int64, day time.Time) ([]domain.TripLeg, error) {
	if m.failing {
		return nil, errStoreDown
	}
	var legs []domain.TripLeg
	for _, legType := range []domain.LegType{domain.LegDeparture, domain.LegReturn} {
		for key, passengers := range m.legs {
			driver, ok := parseLegKeyDriver(key, chatID, legType, day)
			if !ok {
				continue
			}
			for _, p := range passengers {
				legs = append(legs, domain.TripLeg{
					DriverName:    driver,
					PassengerName: p,
					ChatID:        chatID,
					Leg:           legType,
					Day:           day,
				})
			}
		}
	}
	return legs, nil
}

func parseLegKeyDriver(key string, chatID int64, leg domain.LegType, day time.Time) (string, bool) {
	prefix := fmt.Sprintf("%d|", chatID)
	suffix := fmt.Sprintf("|%s|%s", leg, utils.FormatDay(day))
	if len(key) <= len(prefix)+len(suffix) {
		return "", false
	}
	if key[:len(prefix)] != prefix || key[len(key)-len(suffix):] != suffix {
		return "", false
	}
	return key[len(prefix) : len(key)-len(suffix)], true
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
