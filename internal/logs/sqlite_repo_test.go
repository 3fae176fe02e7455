package logs_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/2beens/krank/internal/db"
	"github.com/2beens/krank/internal/logs"
	"github.com/2beens/krank/internal/strength"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedSQL = `
INSERT INTO users (id, username, password_hash) VALUES ('lifter', 'lifter', 'x'), ('other', 'other', 'x');
INSERT INTO programs (id, name) VALUES (1, 'Krank 6-Week Strength');
INSERT INTO workouts (id, program_id, name, order_index) VALUES (1, 1, 'Week 1 - Lower Body', 1);
INSERT INTO workout_rows (id, workout_id, order_label, lift_name, variant, sets, reps, is_anchor, movement_family) VALUES
	(1, 1, '1a', 'Deadlift', NULL, '1', '3', 1, 'Deadlift'),
	(2, 1, '1b', 'Deadlift', 'Pause', '3', '5', 1, 'Deadlift'),
	(3, 1, '2a', 'RDL', NULL, '3', '8', 0, 'Deadlift'),
	(4, 1, '3a', 'Squat', NULL, '1', '5', 1, 'Squat');
INSERT INTO logs (id, user_id, workout_row_id, weight, reps, rpe, date) VALUES
	(1, 'lifter', 1, 285, 1, 10, '2024-03-01T17:30:00.000Z'),
	(2, 'lifter', 1, 300, 3, 8.5, '2024-03-08T17:30:00.000Z'),
	(3, 'lifter', 2, 250, 5, NULL, '2024-03-05T17:30:00.000Z'),
	(4, 'lifter', 3, 200, 8, 7, '2024-03-09T17:30:00.000Z'),
	(5, 'lifter', 4, 225, 5, 7, '2024-03-02T17:30:00.000Z'),
	(6, 'lifter', 1, NULL, 3, 8, '2024-03-10T17:30:00.000Z'),
	(7, 'other', 1, 405, 1, 10, '2024-03-11T17:30:00.000Z');
`

func newSeededRepo(t *testing.T) (*logs.SQLiteRepo, *sql.DB) {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		database.Close()
	})
	require.NoError(t, db.MigrateSQLite(context.Background(), database))
	_, err = database.Exec(seedSQL)
	require.NoError(t, err)
	return logs.NewSQLiteRepo(database), database
}

func setIDs(sets []strength.LoggedSet) []int {
	ids := make([]int, 0, len(sets))
	for _, s := range sets {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSQLiteRepo_ListSets(t *testing.T) {
	repo, _ := newSeededRepo(t)
	ctx := context.Background()
	anchor := true
	notAnchor := false

	testCases := []struct {
		name   string
		params logs.ListParams
		want   []int
	}{
		{
			name:   "all of user, oldest first, null weight skipped",
			params: logs.ListParams{UserID: "lifter"},
			want:   []int{1, 5, 3, 2, 4},
		},
		{
			name:   "deadlift anchors",
			params: logs.ListParams{UserID: "lifter", MovementFamily: strength.Deadlift, IsAnchor: &anchor},
			want:   []int{1, 3, 2},
		},
		{
			name:   "deadlift non anchors",
			params: logs.ListParams{UserID: "lifter", MovementFamily: strength.Deadlift, IsAnchor: &notAnchor},
			want:   []int{4},
		},
		{
			name:   "variant",
			params: logs.ListParams{UserID: "lifter", MovementFamily: strength.Deadlift, Variant: "Pause"},
			want:   []int{3},
		},
		{
			name: "date range",
			params: logs.ListParams{
				UserID: "lifter",
				From:   ptrTime(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
				To:     ptrTime(time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)),
			},
			want: []int{5, 3},
		},
		{
			name:   "unknown user",
			params: logs.ListParams{UserID: "nobody"},
			want:   []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sets, err := repo.ListSets(ctx, tc.params)
			require.NoError(t, err)
			assert.Equal(t, tc.want, setIDs(sets))
		})
	}
}

func TestSQLiteRepo_ListSets_Fields(t *testing.T) {
	repo, _ := newSeededRepo(t)
	anchor := true

	sets, err := repo.ListSets(context.Background(), logs.ListParams{
		UserID:         "lifter",
		MovementFamily: strength.Deadlift,
		IsAnchor:       &anchor,
		Variant:        "Pause",
	})
	require.NoError(t, err)
	require.Len(t, sets, 1)

	s := sets[0]
	assert.Equal(t, 250.0, s.Weight)
	assert.Equal(t, 5, s.Reps)
	assert.Nil(t, s.RPE)
	assert.True(t, s.IsAnchor)
	assert.Equal(t, "Pause", s.Variant)
	assert.Equal(t, strength.Deadlift, s.MovementFamily)
	assert.Equal(t, time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), s.PerformedAt)
}

func TestSQLiteRepo_ListSets_SameTimestampInLoggingOrder(t *testing.T) {
	repo, database := newSeededRepo(t)
	ctx := context.Background()

	_, err := database.Exec(`INSERT INTO logs (id, user_id, workout_row_id, weight, reps, rpe, date) VALUES
		(20, 'lifter', 4, 245, 3, 8, '2024-03-12T17:30:00.000Z'),
		(21, 'lifter', 4, 255, 2, 9, '2024-03-12T17:30:00.000Z'),
		(22, 'lifter', 4, 235, 5, 8, '2024-03-12T17:30:00.000Z')`)
	require.NoError(t, err)

	sets, err := repo.ListSets(ctx, logs.ListParams{
		UserID:         "lifter",
		MovementFamily: strength.Squat,
		From:           ptrTime(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{20, 21, 22}, setIDs(sets))

	series := strength.BuildE1RMSeries(sets)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{245, 255, 235}, []float64{series[0].Weight, series[1].Weight, series[2].Weight})
}

func TestSQLiteRepo_LastAnchorSet(t *testing.T) {
	repo, _ := newSeededRepo(t)
	ctx := context.Background()

	last, err := repo.LastAnchorSet(ctx, "lifter", strength.Deadlift, "")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 2, last.ID)
	assert.Equal(t, 300.0, last.Weight)
	require.NotNil(t, last.RPE)
	assert.Equal(t, 8.5, *last.RPE)

	last, err = repo.LastAnchorSet(ctx, "lifter", strength.Deadlift, "Pause")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 3, last.ID)

	last, err = repo.LastAnchorSet(ctx, "lifter", strength.Bench, "")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSQLiteRepo_DataVersion(t *testing.T) {
	repo, database := newSeededRepo(t)
	ctx := context.Background()

	v1, err := repo.DataVersion(ctx, "lifter")
	require.NoError(t, err)
	v1Again, err := repo.DataVersion(ctx, "lifter")
	require.NoError(t, err)
	assert.Equal(t, v1, v1Again)

	_, err = database.Exec(`UPDATE logs SET weight = 290, updated_at = '2030-01-01T00:00:00.000Z' WHERE id = 1`)
	require.NoError(t, err)
	v2, err := repo.DataVersion(ctx, "lifter")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	_, err = database.Exec(`DELETE FROM logs WHERE id = 4`)
	require.NoError(t, err)
	v3, err := repo.DataVersion(ctx, "lifter")
	require.NoError(t, err)
	assert.NotEqual(t, v2, v3)

	// no logs at all
	other, err := repo.DataVersion(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "0.0.", other)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
