//go:build integration

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/krank/internal/strength"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestStats_E1RM() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t := s.T()

	status, _ := s.get(ctx, t, "/stats/e1rm?movementFamily=Deadlift", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	token := s.doLogin(ctx, t)

	status, body := s.get(ctx, t, "/stats/e1rm?movementFamily=Deadlift&isAnchor=true", token)
	require.Equal(t, http.StatusOK, status)
	var points []strength.E1RMPoint
	require.NoError(t, json.Unmarshal(body, &points))
	require.Len(t, points, 3)
	assert.Equal(t, 294, points[0].E1RM)
	assert.Equal(t, 292, points[1].E1RM)
	assert.Equal(t, 345, points[2].E1RM)
	assert.Equal(t, "2024-03-01T17:30:00.000Z", points[0].Date)

	status, body = s.get(ctx, t, "/stats/e1rm?movementFamily=Deadlift&isAnchor=false", token)
	require.Equal(t, http.StatusOK, status)
	points = nil
	require.NoError(t, json.Unmarshal(body, &points))
	require.Len(t, points, 1)
	assert.Equal(t, 273, points[0].E1RM)

	// no anchor filter: the RDL set joins the series
	status, body = s.get(ctx, t, "/stats/e1rm?movementFamily=Deadlift", token)
	require.Equal(t, http.StatusOK, status)
	points = nil
	require.NoError(t, json.Unmarshal(body, &points))
	require.Len(t, points, 4)
	assert.Equal(t, []int{294, 292, 345, 273}, []int{points[0].E1RM, points[1].E1RM, points[2].E1RM, points[3].E1RM})

	status, body = s.get(ctx, t, "/stats/e1rm?movementFamily=Deadlift&variant=Pause", token)
	require.Equal(t, http.StatusOK, status)
	points = nil
	require.NoError(t, json.Unmarshal(body, &points))
	require.Len(t, points, 1)
	assert.Equal(t, 292, points[0].E1RM)

	status, _ = s.get(ctx, t, "/stats/e1rm?movementFamily=Curl", token)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.get(ctx, t, "/stats/e1rm", token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestStats_Suggestions() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t := s.T()

	token := s.doLogin(ctx, t)

	status, body := s.get(ctx, t, "/stats/suggestions?movementFamily=Deadlift&targetReps=5&targetRpe=8", token)
	require.Equal(t, http.StatusOK, status)
	var rec strength.Recommendation
	require.NoError(t, json.Unmarshal(body, &rec))
	require.NotNil(t, rec.RecommendedWeight)
	assert.Equal(t, 280.0, *rec.RecommendedWeight)
	require.NotNil(t, rec.BasedOn)
	assert.Equal(t, 300.0, rec.BasedOn.Weight)

	// no anchor sets logged for Bench
	status, body = s.get(ctx, t, "/stats/suggestions?movementFamily=Bench", token)
	require.Equal(t, http.StatusOK, status)
	rec = strength.Recommendation{}
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Nil(t, rec.E1RMUsed)
	assert.Nil(t, rec.RecommendedWeight)
}

func (s *IntegrationTestSuite) TestStats_SeriesRefreshedAfterNewLog() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t := s.T()

	token := s.doLogin(ctx, t)

	status, body := s.get(ctx, t, "/stats/e1rm?movementFamily=Squat", token)
	require.Equal(t, http.StatusOK, status)
	var points []strength.E1RMPoint
	require.NoError(t, json.Unmarshal(body, &points))
	assert.Empty(t, points)

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO logs (user_id, workout_row_id, weight, reps, rpe, date) VALUES ($1, 4, 315, 5, 9, '2024-03-12T17:30:00Z')`,
		testUserID,
	)
	require.NoError(t, err)

	status, body = s.get(ctx, t, "/stats/e1rm?movementFamily=Squat", token)
	require.Equal(t, http.StatusOK, status)
	points = nil
	require.NoError(t, json.Unmarshal(body, &points))
	require.Len(t, points, 1)
	// 315 * (1 + 0.0333*6)
	assert.Equal(t, 378, points[0].E1RM)
}

func (s *IntegrationTestSuite) TestStats_MovementFamilies() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, body := s.get(ctx, s.T(), "/stats/movement-families", "")
	require.Equal(s.T(), http.StatusOK, status)
	var families []string
	require.NoError(s.T(), json.Unmarshal(body, &families))
	s.Len(families, 7)
	s.Contains(families, "Deadlift")
}
