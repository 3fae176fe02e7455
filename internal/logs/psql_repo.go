package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/krank/internal/strength"
	"github.com/2beens/krank/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

const psqlSelectSets = `
	SELECT
		l.id, l.weight, l.reps, l.rpe, l.date, r.movement_family, r.is_anchor, COALESCE(r.variant, '')
	FROM logs l
	JOIN workout_rows r ON l.workout_row_id = r.id`

// ListSets returns the user's sets, most recent first. Rows without a weight
// or reps are not sets the estimator can use and are left out.
func (r *PsqlRepo) ListSets(ctx context.Context, params ListParams) (_ []strength.LoggedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.listsets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("movement_family", string(params.MovementFamily)))
	span.SetAttributes(attribute.String("variant", params.Variant))
	if params.IsAnchor != nil {
		span.SetAttributes(attribute.Bool("is_anchor", *params.IsAnchor))
	}

	rows, err := r.db.Query(
		ctx,
		psqlSelectSets+`
			WHERE l.user_id = $1
				AND l.weight IS NOT NULL AND l.reps IS NOT NULL
				AND ($2::text = '' OR r.movement_family = $2)
				AND ($3::boolean IS NULL OR r.is_anchor = $3)
				AND ($4::text = '' OR r.variant = $4)
				AND ($5::timestamptz IS NULL OR l.date >= $5)
				AND ($6::timestamptz IS NULL OR l.date <= $6)
			ORDER BY l.date ASC NULLS FIRST, l.id ASC;`,
		params.UserID, string(params.MovementFamily), params.IsAnchor, params.Variant,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets, err := rows2sets(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sets: %w", err)
	}
	span.SetAttributes(attribute.Int("count", len(sets)))

	return sets, nil
}

// LastAnchorSet returns the most recent anchor set of a movement family,
// or nil when the user has none.
func (r *PsqlRepo) LastAnchorSet(
	ctx context.Context,
	userID string,
	family strength.MovementFamily,
	variant string,
) (_ *strength.LoggedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.lastanchorset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("movement_family", string(family)))
	span.SetAttributes(attribute.String("variant", variant))

	rows, err := r.db.Query(
		ctx,
		psqlSelectSets+`
			WHERE l.user_id = $1
				AND l.weight IS NOT NULL AND l.reps IS NOT NULL
				AND r.movement_family = $2
				AND r.is_anchor = TRUE
				AND ($3::text = '' OR r.variant = $3)
			ORDER BY l.date DESC NULLS LAST, l.id DESC
			LIMIT 1;`,
		userID, string(family), variant,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets, err := rows2sets(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sets: %w", err)
	}
	if len(sets) == 0 {
		return nil, nil
	}

	return &sets[0], nil
}

// DataVersion changes whenever a log of the user (or the row it belongs to)
// is added, edited or removed.
func (r *PsqlRepo) DataVersion(ctx context.Context, userID string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.dataversion")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var (
		count       int64
		maxID       int64
		lastChanged time.Time
	)
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				COUNT(*),
				COALESCE(MAX(l.id), 0),
				GREATEST(
					COALESCE(MAX(l.updated_at), 'epoch'::timestamptz),
					COALESCE(MAX(r.updated_at), 'epoch'::timestamptz)
				)
			FROM logs l
			JOIN workout_rows r ON l.workout_row_id = r.id
			WHERE l.user_id = $1;`,
		userID,
	).Scan(&count, &maxID, &lastChanged)
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}

	version := fmt.Sprintf("%d.%d.%d", count, maxID, lastChanged.UnixMicro())
	span.SetAttributes(attribute.String("version", version))
	return version, nil
}

func rows2sets(rows pgx.Rows) ([]strength.LoggedSet, error) {
	var sets []strength.LoggedSet
	for rows.Next() {
		var (
			set    strength.LoggedSet
			family string
			weight pgtype.Numeric
			rpe    pgtype.Numeric
			date   pgtype.Timestamptz
		)
		if err := rows.Scan(
			&set.ID, &weight, &set.Reps, &rpe, &date, &family, &set.IsAnchor, &set.Variant,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		w, err := numericToFloat(weight)
		if err != nil {
			return nil, fmt.Errorf("weight of log %d: %w", set.ID, err)
		}
		if w == nil {
			return nil, errors.New("unexpected null weight")
		}
		set.Weight = *w

		set.RPE, err = numericToFloat(rpe)
		if err != nil {
			return nil, fmt.Errorf("rpe of log %d: %w", set.ID, err)
		}

		if date.Valid {
			set.PerformedAt = date.Time
		}
		set.MovementFamily = strength.MovementFamily(family)

		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

func numericToFloat(n pgtype.Numeric) (*float64, error) {
	if !n.Valid {
		return nil, nil
	}
	f, err := n.Float64Value()
	if err != nil {
		return nil, err
	}
	return &f.Float64, nil
}
