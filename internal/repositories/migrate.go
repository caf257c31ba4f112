package repositories

import (
	"context"
	"database/sql"
)

// Migrate creates the ledger schema when missing. Safe to run at every
// startup. trip_legs carries no uniqueness constraint; the replace
// operations own that invariant.
func Migrate(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS drivers (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			name VARCHAR(191) NOT NULL,
			chat_id BIGINT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_drivers_name_chat (name, chat_id)
		)`,
		`CREATE TABLE IF NOT EXISTS passengers (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			name VARCHAR(191) NOT NULL,
			chat_id BIGINT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_passengers_name_chat (name, chat_id)
		)`,
		`CREATE TABLE IF NOT EXISTS trip_legs (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			driver_name VARCHAR(191) NOT NULL,
			passenger_name VARCHAR(191) NOT NULL,
			chat_id BIGINT NOT NULL,
			leg_type ENUM('departure','return') NOT NULL,
			trip_date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			KEY idx_trip_legs_day (chat_id, trip_date),
			KEY idx_trip_legs_driver (chat_id, driver_name, trip_date)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			name VARCHAR(191) NOT NULL,
			username VARCHAR(191) NOT NULL,
			email VARCHAR(191) NOT NULL,
			phone VARCHAR(32) DEFAULT '',
			password_hash VARCHAR(191) NOT NULL,
			role VARCHAR(32) DEFAULT 'admin',
			status VARCHAR(32) DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email),
			UNIQUE KEY uq_users_username (username)
		)`,
	}

	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
