package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"angkot/internal/config"
	"angkot/internal/domain"
	"angkot/internal/utils"
)

// Interface check keeps the contract and the MySQL impl from drifting.
var _ Storage = LedgerRepository{}

// LedgerRepository implements Storage on MySQL. Replacement semantics are
// enforced here (delete + insert inside one transaction) so every caller
// gets the same last-write-wins behavior.
type LedgerRepository struct {
	DB *sql.DB
}

func (r LedgerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r LedgerRepository) SaveDriver(ctx context.Context, name string, chatID int64) error {
	_, err := r.db().ExecContext(ctx,
		`INSERT INTO drivers (name, chat_id) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE name = name`, name, chatID)
	if err != nil {
		utils.LogEvent("", "ledger", "save_driver_error", err.Error())
	}
	return err
}

func (r LedgerRepository) GetDrivers(ctx context.Context, chatID int64) ([]string, error) {
	return r.queryNames(ctx,
		`SELECT name FROM drivers WHERE chat_id = ? ORDER BY name`, chatID)
}

func (r LedgerRepository) DriverExists(ctx context.Context, name string, chatID int64) (bool, error) {
	var exists bool
	err := r.db().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM drivers WHERE name = ? AND chat_id = ?)`,
		name, chatID).Scan(&exists)
	return exists, err
}

func (r LedgerRepository) SavePassenger(ctx context.Context, name string, chatID int64) error {
	_, err := r.db().ExecContext(ctx,
		`INSERT INTO passengers (name, chat_id) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE name = name`, name, chatID)
	if err != nil {
		utils.LogEvent("", "ledger", "save_passenger_error", err.Error())
	}
	return err
}

func (r LedgerRepository) GetPassengers(ctx context.Context, chatID int64) ([]string, error) {
	return r.queryNames(ctx,
		`SELECT name FROM passengers WHERE chat_id = ? ORDER BY name`, chatID)
}

func (r LedgerRepository) ReplaceDeparture(ctx context.Context, driver string, passengers []string, chatID int64, day time.Time) error {
	return r.replaceLeg(ctx, driver, passengers, chatID, domain.LegDeparture, day)
}

func (r LedgerRepository) ReplaceReturn(ctx context.Context, driver string, passengers []string, chatID int64, day time.Time) error {
	return r.replaceLeg(ctx, driver, passengers, chatID, domain.LegReturn, day)
}

func (r LedgerRepository) DeleteDeparture(ctx context.Context, driver string, chatID int64, day time.Time) error {
	return r.replaceLeg(ctx, driver, nil, chatID, domain.LegDeparture, day)
}

func (r LedgerRepository) DeleteReturn(ctx context.Context, driver string, chatID int64, day time.Time) error {
	return r.replaceLeg(ctx, driver, nil, chatID, domain.LegReturn, day)
}

func (r LedgerRepository) replaceLeg(ctx context.Context, driver string, passengers []string, chatID int64, leg domain.LegType, day time.Time) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		utils.LogEvent("", "ledger", "replace_leg_begin_error", err.Error())
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM trip_legs WHERE driver_name = ? AND chat_id = ? AND leg_type = ? AND trip_date = ?`,
		driver, chatID, string(leg), utils.FormatDay(day))
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(passengers))
	for _, p := range passengers {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trip_legs (driver_name, passenger_name, chat_id, leg_type, trip_date) VALUES (?, ?, ?, ?, ?)`,
			driver, p, chatID, string(leg), utils.FormatDay(day))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r LedgerRepository) GetDeparturePassengers(ctx context.Context, driver string, chatID int64, day time.Time) ([]string, error) {
	return r.legPassengers(ctx, driver, chatID, domain.LegDeparture, day)
}

func (r LedgerRepository) GetReturnPassengers(ctx context.Context, driver string, chatID int64, day time.Time) ([]string, error) {
	return r.legPassengers(ctx, driver, chatID, domain.LegReturn, day)
}

func (r LedgerRepository) legPassengers(ctx context.Context, driver string, chatID int64, leg domain.LegType, day time.Time) ([]string, error) {
	return r.queryNames(ctx,
		`SELECT passenger_name FROM trip_legs
		 WHERE driver_name = ? AND chat_id = ? AND leg_type = ? AND trip_date = ?
		 ORDER BY id`,
		driver, chatID, string(leg), utils.FormatDay(day))
}

func (r LedgerRepository) GetDriversByDate(ctx context.Context, chatID int64, day time.Time) ([]string, error) {
	return r.queryNames(ctx,
		`SELECT DISTINCT driver_name FROM trip_legs
		 WHERE chat_id = ? AND trip_date = ?
		 ORDER BY driver_name`,
		chatID, utils.FormatDay(day))
}

func (r LedgerRepository) HasDepartureOn(ctx context.Context, passenger string, chatID int64, day time.Time) (bool, error) {
	var exists bool
	err := r.db().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM trip_legs
		 WHERE passenger_name = ? AND chat_id = ? AND leg_type = ? AND trip_date = ?)`,
		passenger, chatID, string(domain.LegDeparture), utils.FormatDay(day)).Scan(&exists)
	return exists, err
}

func (r LedgerRepository) ListLegs(ctx context.Context, chatID int64, day time.Time) ([]domain.TripLeg, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT driver_name, passenger_name, leg_type, DATE_FORMAT(trip_date, '%Y-%m-%d') FROM trip_legs
		 WHERE chat_id = ? AND trip_date = ?
		 ORDER BY driver_name, leg_type, id`,
		chatID, utils.FormatDay(day))
	if err != nil {
		utils.LogEvent("", "ledger", "list_legs_error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var legs []domain.TripLeg
	for rows.Next() {
		var leg domain.TripLeg
		var legType, tripDate string
		if err := rows.Scan(&leg.DriverName, &leg.PassengerName, &legType, &tripDate); err != nil {
			return nil, err
		}
		leg.ChatID = chatID
		leg.Leg = domain.LegType(legType)
		if t, err := time.ParseInLocation("2006-01-02", tripDate, utils.Location()); err == nil {
			leg.Day = t
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

func (r LedgerRepository) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		utils.LogEvent("", "ledger", "query_error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
