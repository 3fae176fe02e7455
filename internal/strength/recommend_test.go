package strength_test

import (
	"math"
	"testing"
	"time"

	"github.com/2beens/krank/internal/strength"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendLoads_NoHistory(t *testing.T) {
	rec := strength.RecommendLoads(nil, &strength.Target{Reps: 5, RPE: 8})
	assert.Equal(t, strength.Recommendation{}, rec)

	rec = strength.RecommendLoads(nil, nil)
	assert.Nil(t, rec.Suggestion1x3)
	assert.Nil(t, rec.Suggestion1x5)
	assert.Nil(t, rec.RecommendedWeight)
	assert.Nil(t, rec.RecommendedRaw)
	assert.Nil(t, rec.E1RMUsed)
	assert.Nil(t, rec.BasedOn)
}

func TestRecommendLoads_WithoutTarget(t *testing.T) {
	performedAt := time.Date(2024, 6, 2, 18, 0, 0, 0, time.UTC)
	last := &strength.LoggedSet{
		Weight:         285,
		Reps:           1,
		RPE:            fptr(10),
		PerformedAt:    performedAt,
		MovementFamily: strength.Deadlift,
		IsAnchor:       true,
	}

	rec := strength.RecommendLoads(last, nil)

	require.NotNil(t, rec.Suggestion1x3)
	require.NotNil(t, rec.Suggestion1x5)
	assert.Equal(t, 238.8, *rec.Suggestion1x3)
	assert.Equal(t, 226.6, *rec.Suggestion1x5)

	assert.Nil(t, rec.RecommendedWeight)
	assert.Nil(t, rec.RecommendedRaw)
	assert.Nil(t, rec.E1RMUsed)

	require.NotNil(t, rec.BasedOn)
	assert.Equal(t, strength.SetRef{
		Date:   "2024-06-02T18:00:00.000Z",
		Weight: 285,
		Reps:   1,
		RPE:    fptr(10),
	}, *rec.BasedOn)
}

func TestRecommendLoads_WithTarget(t *testing.T) {
	last := &strength.LoggedSet{
		Weight:      300,
		Reps:        0,
		RPE:         fptr(10),
		PerformedAt: time.Date(2024, 6, 2, 18, 0, 0, 0, time.UTC),
		IsAnchor:    true,
	}

	rec := strength.RecommendLoads(last, &strength.Target{Reps: 5, RPE: 8})

	require.NotNil(t, rec.RecommendedRaw)
	require.NotNil(t, rec.RecommendedWeight)
	require.NotNil(t, rec.E1RMUsed)
	assert.InDelta(t, 243.29, *rec.RecommendedRaw, 0.01)
	assert.Equal(t, 245.0, *rec.RecommendedWeight)
	assert.Equal(t, 300.0, *rec.E1RMUsed)
	assert.NotNil(t, rec.Suggestion1x3)
	assert.NotNil(t, rec.Suggestion1x5)
}

func TestRecommendLoads_AbsentRPEEchoedAsAbsent(t *testing.T) {
	last := &strength.LoggedSet{Weight: 100, Reps: 5, PerformedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	rec := strength.RecommendLoads(last, &strength.Target{Reps: 8, RPE: 10})
	require.NotNil(t, rec.BasedOn)
	assert.Nil(t, rec.BasedOn.RPE)

	// e1rm 116.65 (absent RPE counts as 10)
	assert.Equal(t, 116.7, *rec.E1RMUsed)
	assert.Equal(t, 94.6, *rec.Suggestion1x3)
	assert.Equal(t, 89.8, *rec.Suggestion1x5)
	// 8@10 target: 116.65 / (1 + 0.0333*8)
	assert.InDelta(t, 92.111, *rec.RecommendedRaw, 0.001)
	assert.Equal(t, 90.0, *rec.RecommendedWeight)
}

func TestRecommender_CustomIncrement(t *testing.T) {
	last := &strength.LoggedSet{Weight: 100, Reps: 5, PerformedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	r := strength.NewRecommender(2.5)
	assert.Equal(t, 2.5, r.Increment())

	rec := r.Recommend(last, &strength.Target{Reps: 8, RPE: 10})
	require.NotNil(t, rec.RecommendedWeight)
	assert.InDelta(t, 92.111, *rec.RecommendedRaw, 0.001)
	assert.Equal(t, 92.5, *rec.RecommendedWeight)
}

func TestNewRecommender_InvalidIncrementFallsBack(t *testing.T) {
	for _, inc := range []float64{0, -2.5, math.NaN(), math.Inf(1)} {
		assert.Equal(t, strength.DefaultLoadIncrement, strength.NewRecommender(inc).Increment())
	}
}

func TestRecommendLoads_Properties(t *testing.T) {
	faker := gofakeit.New(2024)
	for i := 0; i < 500; i++ {
		last := &strength.LoggedSet{
			Weight:      faker.Float64Range(20, 400),
			Reps:        faker.IntRange(1, 12),
			RPE:         fptr(faker.Float64Range(5, 10)),
			PerformedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		target := &strength.Target{
			Reps: faker.IntRange(1, 12),
			RPE:  faker.Float64Range(5, 10),
		}

		rec := strength.RecommendLoads(last, target)
		require.NotNil(t, rec.RecommendedWeight)
		require.NotNil(t, rec.RecommendedRaw)

		// snapped to a multiple of the increment, never further than half a step away
		q := *rec.RecommendedWeight / strength.DefaultLoadIncrement
		assert.InDelta(t, math.Round(q), q, 1e-9)
		assert.LessOrEqual(t, math.Abs(*rec.RecommendedWeight-*rec.RecommendedRaw), strength.DefaultLoadIncrement/2+1e-9)

		// a 1x3 is always heavier than a 1x5 at the same effort
		assert.Greater(t, *rec.Suggestion1x3, *rec.Suggestion1x5)
	}
}

func TestParseTarget(t *testing.T) {
	testCases := []struct {
		name     string
		reps     string
		rpe      string
		expected *strength.Target
	}{
		{name: "valid", reps: "5", rpe: "8", expected: &strength.Target{Reps: 5, RPE: 8}},
		{name: "fractional rpe", reps: "3", rpe: "7.5", expected: &strength.Target{Reps: 3, RPE: 7.5}},
		{name: "padded", reps: " 5 ", rpe: " 8 ", expected: &strength.Target{Reps: 5, RPE: 8}},
		{name: "missing reps", reps: "", rpe: "8", expected: nil},
		{name: "missing rpe", reps: "5", rpe: "", expected: nil},
		{name: "non numeric reps", reps: "five", rpe: "8", expected: nil},
		{name: "non integer reps", reps: "5.5", rpe: "8", expected: nil},
		{name: "non numeric rpe", reps: "5", rpe: "hard", expected: nil},
		{name: "zero reps", reps: "0", rpe: "8", expected: nil},
		{name: "negative reps", reps: "-3", rpe: "8", expected: nil},
		{name: "zero rpe", reps: "5", rpe: "0", expected: nil},
		{name: "nan rpe", reps: "5", rpe: "NaN", expected: nil},
		{name: "inf rpe", reps: "5", rpe: "Inf", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, strength.ParseTarget(tc.reps, tc.rpe))
		})
	}
}
