package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/krank/internal/auth"
	"github.com/2beens/krank/internal/strength"
	"github.com/2beens/krank/internal/telemetry/tracing"
	"github.com/2beens/krank/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsService interface {
	E1RMSeries(ctx context.Context, q SeriesQuery) ([]strength.E1RMPoint, error)
	Suggestions(ctx context.Context, q SuggestionQuery) (*strength.Recommendation, error)
}

const msgFamilyRequired = "Movement family required"

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/e1rm", handler.HandleE1RM).Methods("GET", "OPTIONS").Name("stats-e1rm")
	router.HandleFunc("/suggestions", handler.HandleSuggestions).Methods("GET", "OPTIONS").Name("stats-suggestions")
	router.HandleFunc("/movement-families", handler.HandleMovementFamilies).Methods("GET", "OPTIONS").Name("stats-movement-families")
}

// HandleE1RM returns the e1RM trend for a movement family. The anchor flag
// filters only when isAnchor is given.
func (handler *Handler) HandleE1RM(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.e1rm")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	family, ok := familyFromQuery(w, r)
	if !ok {
		return
	}

	var isAnchor *bool
	if isAnchorStr := r.URL.Query().Get("isAnchor"); isAnchorStr != "" {
		parsed, err := strconv.ParseBool(isAnchorStr)
		if err != nil {
			pkg.WriteJSONMessage(w, http.StatusBadRequest, fmt.Sprintf("Invalid isAnchor: %s", isAnchorStr))
			return
		}
		isAnchor = &parsed
	}

	span.SetAttributes(attribute.String("movement_family", string(family)))

	points, err := handler.service.E1RMSeries(ctx, SeriesQuery{
		UserID:         userID,
		MovementFamily: family,
		IsAnchor:       isAnchor,
		Variant:        r.URL.Query().Get("variant"),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get e1rm series for user %s: %s", userID, err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to get e1RM series")
		return
	}

	writeJSON(w, points)
}

// HandleSuggestions returns load suggestions based on the last anchor set.
// A malformed targetReps/targetRpe pair is ignored, not rejected.
func (handler *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.suggestions")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	family, ok := familyFromQuery(w, r)
	if !ok {
		return
	}

	target := strength.ParseTarget(r.URL.Query().Get("targetReps"), r.URL.Query().Get("targetRpe"))
	span.SetAttributes(attribute.String("movement_family", string(family)))
	span.SetAttributes(attribute.Bool("has_target", target != nil))

	rec, err := handler.service.Suggestions(ctx, SuggestionQuery{
		UserID:         userID,
		MovementFamily: family,
		Variant:        r.URL.Query().Get("variant"),
		Target:         target,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get suggestions for user %s: %s", userID, err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to get suggestions")
		return
	}

	writeJSON(w, rec)
}

func (handler *Handler) HandleMovementFamilies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, strength.AllMovementFamilies())
}

func familyFromQuery(w http.ResponseWriter, r *http.Request) (strength.MovementFamily, bool) {
	familyStr := r.URL.Query().Get("movementFamily")
	if familyStr == "" {
		pkg.WriteJSONMessage(w, http.StatusBadRequest, msgFamilyRequired)
		return "", false
	}
	family, err := strength.ParseMovementFamily(familyStr)
	if err != nil {
		log.Tracef("stats: bad movement family: %s", err)
		pkg.WriteJSONMessage(w, http.StatusBadRequest, fmt.Sprintf("Unknown movement family: %s", familyStr))
		return "", false
	}
	return family, true
}

func writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal stats response: %s", err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
