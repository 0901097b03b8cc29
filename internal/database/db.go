// Package database opens the MySQL pool and owns the schema DDL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/time-tracker-api/internal/config"
)

// Open connects to MySQL and verifies the connection.
// parseTime=true maps DATE and DATETIME columns onto time.Time; loc=UTC
// keeps entry dates stable regardless of the server's zone.
func Open(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Statements are ordered so that referenced tables exist first.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name      VARCHAR(100)    NOT NULL,
		hour_rate DECIMAL(10,2)   NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS clients (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100)    NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS projects (
		id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name      VARCHAR(100)    NOT NULL,
		client_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_projects_client (client_id),
		CONSTRAINT fk_projects_client FOREIGN KEY (client_id) REFERENCES clients (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id     BIGINT UNSIGNED NOT NULL,
		project_id  BIGINT UNSIGNED NOT NULL,
		entry_date  DATE            NOT NULL,
		hours       INT             NOT NULL,
		hour_rate   DECIMAL(10,2)   NOT NULL,
		description TEXT            NOT NULL,
		PRIMARY KEY (id),
		KEY idx_time_entries_user_date (user_id, entry_date),
		KEY idx_time_entries_project (project_id),
		CONSTRAINT fk_time_entries_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_time_entries_project FOREIGN KEY (project_id) REFERENCES projects (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables the API needs when they are absent.
// It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
