package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLiteTimeLayout is the fixed-width text form timestamps are stored in,
// so that lexical order in SQLite equals chronological order.
const SQLiteTimeLayout = "2006-01-02T15:04:05.000Z"

var psqlMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users
	(
		id            TEXT PRIMARY KEY,
		username      VARCHAR     NOT NULL UNIQUE,
		password_hash VARCHAR     NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS programs
	(
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		created_at  TIMESTAMPTZ DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS workouts
	(
		id          SERIAL PRIMARY KEY,
		program_id  INTEGER NOT NULL REFERENCES programs (id) ON DELETE CASCADE,
		name        TEXT    NOT NULL,
		description TEXT,
		order_index INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS workout_rows
	(
		id              SERIAL PRIMARY KEY,
		workout_id      INTEGER     NOT NULL REFERENCES workouts (id) ON DELETE CASCADE,
		order_label     TEXT        NOT NULL,
		lift_name       TEXT        NOT NULL,
		variant         TEXT,
		sets            TEXT        NOT NULL,
		reps            TEXT        NOT NULL,
		intensity_value TEXT,
		intensity_type  TEXT                 DEFAULT 'RPE' CHECK (intensity_type IN ('RPE', '%1RM', 'MAX', 'Text')),
		rest            TEXT,
		is_anchor       BOOLEAN     NOT NULL DEFAULT FALSE,
		movement_family TEXT        NOT NULL DEFAULT 'Accessory'
			CHECK (movement_family IN ('Bench', 'Deadlift', 'Squat', 'Row', 'Carry', 'Conditioning', 'Accessory')),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS workout_rows_workout_id_order_label_idx ON workout_rows (workout_id, order_label);`,
	`CREATE TABLE IF NOT EXISTS logs
	(
		id             SERIAL PRIMARY KEY,
		user_id        TEXT        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		workout_row_id INTEGER     NOT NULL REFERENCES workout_rows (id) ON DELETE CASCADE,
		weight         NUMERIC,
		reps           INTEGER,
		rpe            NUMERIC,
		notes          TEXT,
		date           TIMESTAMPTZ          DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS logs_user_id_date_idx ON logs (user_id, date DESC);`,
	`CREATE INDEX IF NOT EXISTS logs_workout_row_id_date_idx ON logs (workout_row_id, date DESC);`,
	`CREATE OR REPLACE FUNCTION touch_updated_at() RETURNS TRIGGER AS
	$$
	BEGIN
		NEW.updated_at = now();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DROP TRIGGER IF EXISTS logs_touch_updated_at ON logs;`,
	`CREATE TRIGGER logs_touch_updated_at BEFORE UPDATE ON logs FOR EACH ROW EXECUTE PROCEDURE touch_updated_at();`,
	`DROP TRIGGER IF EXISTS workout_rows_touch_updated_at ON workout_rows;`,
	`CREATE TRIGGER workout_rows_touch_updated_at BEFORE UPDATE ON workout_rows FOR EACH ROW EXECUTE PROCEDURE touch_updated_at();`,
}

const sqliteNow = `(strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))`

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL DEFAULT ` + sqliteNow + `
	)`,
	`CREATE TABLE IF NOT EXISTS programs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		description TEXT,
		created_at  TEXT DEFAULT ` + sqliteNow + `
	)`,
	`CREATE TABLE IF NOT EXISTS workouts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		program_id  INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		order_index INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workout_rows (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id      INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		order_label     TEXT NOT NULL,
		lift_name       TEXT NOT NULL,
		variant         TEXT,
		sets            TEXT NOT NULL,
		reps            TEXT NOT NULL,
		intensity_value TEXT,
		intensity_type  TEXT DEFAULT 'RPE' CHECK (intensity_type IN ('RPE', '%1RM', 'MAX', 'Text')),
		rest            TEXT,
		is_anchor       INTEGER NOT NULL DEFAULT 0,
		movement_family TEXT NOT NULL DEFAULT 'Accessory'
			CHECK (movement_family IN ('Bench', 'Deadlift', 'Squat', 'Row', 'Carry', 'Conditioning', 'Accessory')),
		updated_at      TEXT NOT NULL DEFAULT ` + sqliteNow + `
	)`,
	`CREATE INDEX IF NOT EXISTS workout_rows_workout_id_order_label_idx ON workout_rows(workout_id, order_label)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		workout_row_id INTEGER NOT NULL REFERENCES workout_rows(id) ON DELETE CASCADE,
		weight         REAL,
		reps           INTEGER,
		rpe            REAL,
		notes          TEXT,
		date           TEXT DEFAULT ` + sqliteNow + `,
		updated_at     TEXT NOT NULL DEFAULT ` + sqliteNow + `
	)`,
	`CREATE INDEX IF NOT EXISTS logs_user_id_date_idx ON logs(user_id, date DESC)`,
	`CREATE INDEX IF NOT EXISTS logs_workout_row_id_date_idx ON logs(workout_row_id, date DESC)`,
	`CREATE TRIGGER IF NOT EXISTS logs_touch_updated_at AFTER UPDATE ON logs
	FOR EACH ROW WHEN NEW.updated_at = OLD.updated_at
	BEGIN
		UPDATE logs SET updated_at = ` + sqliteNow + ` WHERE id = NEW.id;
	END`,
	`CREATE TRIGGER IF NOT EXISTS workout_rows_touch_updated_at AFTER UPDATE ON workout_rows
	FOR EACH ROW WHEN NEW.updated_at = OLD.updated_at
	BEGIN
		UPDATE workout_rows SET updated_at = ` + sqliteNow + ` WHERE id = NEW.id;
	END`,
}

// MigratePsql creates the krank schema in Postgres. Safe to run repeatedly.
func MigratePsql(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range psqlMigrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// MigrateSQLite creates the krank schema in a SQLite database. Safe to run repeatedly.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	for i, stmt := range sqliteMigrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
