package logs

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/krank/internal/db"
	"github.com/2beens/krank/internal/strength"
)

// SQLiteRepo reads logged sets from a local SQLite database.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

const sqliteSelectSets = `SELECT l.id, l.weight, l.reps, l.rpe, l.date, r.movement_family, r.is_anchor, COALESCE(r.variant, '')
		FROM logs l
		JOIN workout_rows r ON l.workout_row_id = r.id`

func (r *SQLiteRepo) ListSets(ctx context.Context, params ListParams) ([]strength.LoggedSet, error) {
	var (
		where = []string{"l.user_id = ?", "l.weight IS NOT NULL", "l.reps IS NOT NULL"}
		args  = []any{params.UserID}
	)
	if params.MovementFamily != "" {
		where = append(where, "r.movement_family = ?")
		args = append(args, string(params.MovementFamily))
	}
	if params.IsAnchor != nil {
		where = append(where, "r.is_anchor = ?")
		args = append(args, *params.IsAnchor)
	}
	if params.Variant != "" {
		where = append(where, "r.variant = ?")
		args = append(args, params.Variant)
	}
	if params.From != nil {
		where = append(where, "l.date >= ?")
		args = append(args, params.From.UTC().Format(db.SQLiteTimeLayout))
	}
	if params.To != nil {
		where = append(where, "l.date <= ?")
		args = append(args, params.To.UTC().Format(db.SQLiteTimeLayout))
	}

	query := sqliteSelectSets + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY l.date IS NOT NULL, l.date ASC, l.id ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}
	defer rows.Close()
	return scanSets(rows)
}

func (r *SQLiteRepo) LastAnchorSet(
	ctx context.Context,
	userID string,
	family strength.MovementFamily,
	variant string,
) (*strength.LoggedSet, error) {
	query := sqliteSelectSets + `
		WHERE l.user_id = ?
		  AND l.weight IS NOT NULL AND l.reps IS NOT NULL
		  AND r.movement_family = ?
		  AND r.is_anchor = 1
		  AND (? = '' OR r.variant = ?)
		ORDER BY l.date IS NULL, l.date DESC, l.id DESC
		LIMIT 1`
	rows, err := r.db.QueryContext(ctx, query, userID, string(family), variant, variant)
	if err != nil {
		return nil, fmt.Errorf("getting last anchor set: %w", err)
	}
	defer rows.Close()

	sets, err := scanSets(rows)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return &sets[0], nil
}

func (r *SQLiteRepo) DataVersion(ctx context.Context, userID string) (string, error) {
	query := `SELECT COUNT(*), COALESCE(MAX(l.id), 0), COALESCE(MAX(MAX(l.updated_at), MAX(r.updated_at)), '')
		FROM logs l
		JOIN workout_rows r ON l.workout_row_id = r.id
		WHERE l.user_id = ?`
	var (
		count       int64
		maxID       int64
		lastChanged string
	)
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count, &maxID, &lastChanged); err != nil {
		return "", fmt.Errorf("reading data version: %w", err)
	}
	return fmt.Sprintf("%d.%d.%s", count, maxID, lastChanged), nil
}

func scanSets(rows *sql.Rows) ([]strength.LoggedSet, error) {
	var sets []strength.LoggedSet
	for rows.Next() {
		var (
			set    strength.LoggedSet
			family string
			rpe    sql.NullFloat64
			date   sql.NullString
		)
		if err := rows.Scan(
			&set.ID, &set.Weight, &set.Reps, &rpe, &date, &family, &set.IsAnchor, &set.Variant,
		); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if rpe.Valid {
			v := rpe.Float64
			set.RPE = &v
		}
		if date.Valid && date.String != "" {
			t, err := parseSQLiteTime(date.String)
			if err != nil {
				return nil, fmt.Errorf("parsing date of log %d: %w", set.ID, err)
			}
			set.PerformedAt = t
		}
		set.MovementFamily = strength.MovementFamily(family)
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sets: %w", err)
	}
	return sets, nil
}

func parseSQLiteTime(s string) (time.Time, error) {
	if t, err := time.Parse(db.SQLiteTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
