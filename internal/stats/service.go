package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/2beens/krank/internal/cache"
	"github.com/2beens/krank/internal/logs"
	"github.com/2beens/krank/internal/strength"
	"github.com/2beens/krank/internal/telemetry/metrics"
	"github.com/2beens/krank/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=stats_test

type logsRepo interface {
	ListSets(ctx context.Context, params logs.ListParams) ([]strength.LoggedSet, error)
	LastAnchorSet(ctx context.Context, userID string, family strength.MovementFamily, variant string) (*strength.LoggedSet, error)
	DataVersion(ctx context.Context, userID string) (string, error)
}

// SeriesQuery selects the sets of one movement family. A nil IsAnchor means
// anchor and non anchor sets alike.
type SeriesQuery struct {
	UserID         string
	MovementFamily strength.MovementFamily
	IsAnchor       *bool
	Variant        string
}

func (q SeriesQuery) anchorFilter() string {
	if q.IsAnchor == nil {
		return "any"
	}
	return strconv.FormatBool(*q.IsAnchor)
}

func (q SeriesQuery) cacheKey(version string) string {
	return fmt.Sprintf("e1rm:%q:%q:%s:%q:%s", q.UserID, q.MovementFamily, q.anchorFilter(), q.Variant, version)
}

type SuggestionQuery struct {
	UserID         string
	MovementFamily strength.MovementFamily
	Variant        string
	// Target is optional, nil leaves the target specific fields empty.
	Target *strength.Target
}

func (q SuggestionQuery) cacheKey(version string, increment float64) string {
	target := "-"
	if q.Target != nil {
		target = strconv.Itoa(q.Target.Reps) + "@" + strconv.FormatFloat(q.Target.RPE, 'g', -1, 64)
	}
	return fmt.Sprintf("suggest:%q:%q:%q:%s:%g:%s", q.UserID, q.MovementFamily, q.Variant, target, increment, version)
}

type Service struct {
	repo           logsRepo
	cache          cache.Cache
	recommender    *strength.Recommender
	metricsManager *metrics.Manager
}

func NewService(
	repo logsRepo,
	resultCache cache.Cache,
	recommender *strength.Recommender,
	metricsManager *metrics.Manager,
) *Service {
	if resultCache == nil {
		resultCache = cache.Noop{}
	}
	if recommender == nil {
		recommender = strength.NewRecommender(strength.DefaultLoadIncrement)
	}
	return &Service{
		repo:           repo,
		cache:          resultCache,
		recommender:    recommender,
		metricsManager: metricsManager,
	}
}

// E1RMSeries returns the estimated one-rep-max trend of the user's sets, oldest first.
// Stored sets that fail validation are left out of the series.
func (s *Service) E1RMSeries(ctx context.Context, q SeriesQuery) (_ []strength.E1RMPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.e1rmseries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement_family", string(q.MovementFamily)))
	span.SetAttributes(attribute.String("is_anchor", q.anchorFilter()))

	version, err := s.repo.DataVersion(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("data version: %w", err)
	}

	key := q.cacheKey(version)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var points []strength.E1RMPoint
		if err := json.Unmarshal(cached, &points); err == nil {
			span.SetAttributes(attribute.Bool("cached", true))
			return points, nil
		}
		log.Warnf("stats: dropping unreadable cached series %s", key)
	}

	var isAnchor *bool
	if q.IsAnchor != nil {
		anchor := *q.IsAnchor
		isAnchor = &anchor
	}
	sets, err := s.repo.ListSets(ctx, logs.ListParams{
		UserID:         q.UserID,
		MovementFamily: q.MovementFamily,
		IsAnchor:       isAnchor,
		Variant:        q.Variant,
	})
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	valid := make([]strength.LoggedSet, 0, len(sets))
	for _, set := range sets {
		if err := logs.ValidateSet(set); err != nil {
			log.Warnf("stats: skipping log %d of user %s: %s", set.ID, q.UserID, err)
			s.incSkipped()
			continue
		}
		valid = append(valid, set)
	}

	points := strength.BuildE1RMSeries(valid)
	span.SetAttributes(attribute.Int("points", len(points)))

	if s.metricsManager != nil {
		s.metricsManager.CounterE1RMSeries.WithLabelValues(string(q.MovementFamily)).Inc()
		s.metricsManager.HistogramSeriesLength.Observe(float64(len(points)))
	}

	s.store(ctx, key, points)
	return points, nil
}

// Suggestions recommends loads from the user's most recent anchor set.
// No history, or an invalid most recent anchor, gives an empty recommendation.
func (s *Service) Suggestions(ctx context.Context, q SuggestionQuery) (_ *strength.Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.suggestions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement_family", string(q.MovementFamily)))
	span.SetAttributes(attribute.Bool("has_target", q.Target != nil))

	version, err := s.repo.DataVersion(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("data version: %w", err)
	}

	key := q.cacheKey(version, s.recommender.Increment())
	if cached, ok := s.cache.Get(ctx, key); ok {
		var rec strength.Recommendation
		if err := json.Unmarshal(cached, &rec); err == nil {
			span.SetAttributes(attribute.Bool("cached", true))
			return &rec, nil
		}
		log.Warnf("stats: dropping unreadable cached suggestion %s", key)
	}

	last, err := s.repo.LastAnchorSet(ctx, q.UserID, q.MovementFamily, q.Variant)
	if err != nil {
		return nil, fmt.Errorf("last anchor set: %w", err)
	}
	if last != nil {
		if err := logs.ValidateSet(*last); err != nil {
			log.Warnf("stats: ignoring last anchor log %d of user %s: %s", last.ID, q.UserID, err)
			s.incSkipped()
			last = nil
		}
	}

	rec := s.recommender.Recommend(last, q.Target)

	if s.metricsManager != nil {
		s.metricsManager.CounterSuggestions.
			WithLabelValues(string(q.MovementFamily), strconv.FormatBool(last != nil)).
			Inc()
	}

	s.store(ctx, key, rec)
	return &rec, nil
}

func (s *Service) store(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("stats: marshal result for cache: %s", err)
		return
	}
	s.cache.Set(ctx, key, payload)
}

func (s *Service) incSkipped() {
	if s.metricsManager != nil {
		s.metricsManager.CounterSkippedSets.Inc()
	}
}
