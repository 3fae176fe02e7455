package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/krank/internal/stats"
	"github.com/2beens/krank/internal/strength"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service toolsService
	// boundUserID, when set, is the only user the tools may read.
	boundUserID string
}

func NewHandler(service toolsService, boundUserID string) *Handler {
	return &Handler{
		service:     service,
		boundUserID: boundUserID,
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: %s", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) resolveUser(requested string) (string, error) {
	if h.boundUserID == "" {
		if requested == "" {
			return "", fmt.Errorf("user_id is required")
		}
		return requested, nil
	}
	if requested != "" && requested != h.boundUserID {
		return "", fmt.Errorf("user_id does not match the authenticated user")
	}
	return h.boundUserID, nil
}

// GetSchemaTool returns the MCP tool handler for get_krank_schema.
func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: %s", err), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// E1RMSeriesInput is the input for get_e1rm_series.
type E1RMSeriesInput struct {
	UserID         string `json:"user_id,omitempty" jsonschema:"Id of the lifter whose logs are read"`
	MovementFamily string `json:"movement_family" jsonschema:"One of Bench, Deadlift, Squat, Row, Carry, Conditioning, Accessory"`
	IsAnchor       *bool  `json:"is_anchor,omitempty" jsonschema:"true for anchor sets only, false for non anchor sets only, absent for all sets"`
	Variant        string `json:"variant,omitempty" jsonschema:"Only sets of this lift variant (e.g. Pause)"`
}

// GetE1RMSeriesTool returns the MCP tool handler for get_e1rm_series.
func (h *Handler) GetE1RMSeriesTool() func(context.Context, *mcp.CallToolRequest, E1RMSeriesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in E1RMSeriesInput) (*mcp.CallToolResult, any, error) {
		userID, err := h.resolveUser(in.UserID)
		if err != nil {
			return errorResult("Invalid user_id: %s", err), nil, nil
		}
		family, err := strength.ParseMovementFamily(in.MovementFamily)
		if err != nil {
			return errorResult("Invalid movement_family: %s", err), nil, nil
		}
		points, err := h.service.E1RMSeries(ctx, stats.SeriesQuery{
			UserID:         userID,
			MovementFamily: family,
			IsAnchor:       in.IsAnchor,
			Variant:        in.Variant,
		})
		if err != nil {
			return errorResult("Error building e1RM series: %s", err), nil, nil
		}
		return jsonResult(points), nil, nil
	}
}

// LoadSuggestionsInput is the input for get_load_suggestions.
type LoadSuggestionsInput struct {
	UserID         string   `json:"user_id,omitempty" jsonschema:"Id of the lifter whose logs are read"`
	MovementFamily string   `json:"movement_family" jsonschema:"One of Bench, Deadlift, Squat, Row, Carry, Conditioning, Accessory"`
	TargetReps     *int     `json:"target_reps,omitempty" jsonschema:"Reps of the set to prescribe"`
	TargetRPE      *float64 `json:"target_rpe,omitempty" jsonschema:"RPE of the set to prescribe"`
	Variant        string   `json:"variant,omitempty" jsonschema:"Only anchor sets of this lift variant"`
}

func (in LoadSuggestionsInput) target() *strength.Target {
	if in.TargetReps == nil || in.TargetRPE == nil || *in.TargetReps <= 0 || *in.TargetRPE <= 0 {
		return nil
	}
	return &strength.Target{Reps: *in.TargetReps, RPE: *in.TargetRPE}
}

// GetLoadSuggestionsTool returns the MCP tool handler for get_load_suggestions.
func (h *Handler) GetLoadSuggestionsTool() func(context.Context, *mcp.CallToolRequest, LoadSuggestionsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in LoadSuggestionsInput) (*mcp.CallToolResult, any, error) {
		userID, err := h.resolveUser(in.UserID)
		if err != nil {
			return errorResult("Invalid user_id: %s", err), nil, nil
		}
		family, err := strength.ParseMovementFamily(in.MovementFamily)
		if err != nil {
			return errorResult("Invalid movement_family: %s", err), nil, nil
		}

		rec, err := h.service.Suggestions(ctx, stats.SuggestionQuery{
			UserID:         userID,
			MovementFamily: family,
			Variant:        in.Variant,
			Target:         in.target(),
		})
		if err != nil {
			return errorResult("Error computing suggestions: %s", err), nil, nil
		}
		return jsonResult(rec), nil, nil
	}
}

// EstimateInput is the input for estimate_one_rep_max.
type EstimateInput struct {
	Weight float64  `json:"weight" jsonschema:"Weight lifted"`
	Reps   int      `json:"reps" jsonschema:"Reps performed"`
	RPE    *float64 `json:"rpe,omitempty" jsonschema:"RPE of the set, 0 to 10 (absent means 10)"`
}

// EstimateOneRepMaxTool returns the MCP tool handler for estimate_one_rep_max.
func (h *Handler) EstimateOneRepMaxTool() func(context.Context, *mcp.CallToolRequest, EstimateInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in EstimateInput) (*mcp.CallToolResult, any, error) {
		estimate, err := h.service.Estimate(strength.LoggedSet{
			Weight: in.Weight,
			Reps:   in.Reps,
			RPE:    in.RPE,
		})
		if err != nil {
			return errorResult("Invalid set: %s", err), nil, nil
		}
		return jsonResult(estimate), nil, nil
	}
}
