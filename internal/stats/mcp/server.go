package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the strength stats as tools.
// A non-empty boundUserID pins every tool to that user (used behind the
// authenticated HTTP endpoint); otherwise tools take user_id as input.
func NewServer(service toolsService, boundUserID string, version string) *mcp.Server {
	h := NewHandler(service, boundUserID)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "krank-stats",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_krank_schema",
		Description: "Returns the DB schema of the training tables (programs, workouts, workout_rows, logs): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_e1rm_series",
		Description: "Returns the estimated one-rep-max trend for a movement family, oldest first: date, e1rm, weight, reps, rpe per logged set. Filtered on the anchor flag only when is_anchor is given.",
	}, h.GetE1RMSeriesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_load_suggestions",
		Description: "Returns training loads derived from the most recent anchor set of a movement family: 1x3 and 1x5 at RPE 6, and, given target_reps and target_rpe, a weight rounded to a loadable increment. All values are null without anchor history.",
	}, h.GetLoadSuggestionsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "estimate_one_rep_max",
		Description: "Estimates a one-rep-max from weight, reps and RPE (RPE-adjusted Epley). Missing RPE counts as 10.",
	}, h.EstimateOneRepMaxTool())

	return s
}
