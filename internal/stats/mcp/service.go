package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/krank/internal/stats"
	"github.com/2beens/krank/internal/strength"
)

type statsService interface {
	E1RMSeries(ctx context.Context, q stats.SeriesQuery) ([]strength.E1RMPoint, error)
	Suggestions(ctx context.Context, q stats.SuggestionQuery) (*strength.Recommendation, error)
}

// toolsService is what the tool handlers need. Kept as an interface for tests.
type toolsService interface {
	GetSchema(ctx context.Context) (string, error)
	E1RMSeries(ctx context.Context, q stats.SeriesQuery) ([]strength.E1RMPoint, error)
	Suggestions(ctx context.Context, q stats.SuggestionQuery) (*strength.Recommendation, error)
	Estimate(set strength.LoggedSet) (*Estimate, error)
}

// Estimate is the result of estimate_one_rep_max.
type Estimate = stats.Estimate

type ToolsService struct {
	schema SchemaRepo
	stats  statsService
}

func NewToolsService(schemaRepo SchemaRepo, statsService statsService) *ToolsService {
	return &ToolsService{
		schema: schemaRepo,
		stats:  statsService,
	}
}

// GetSchema renders the training tables as markdown.
func (s *ToolsService) GetSchema(ctx context.Context) (string, error) {
	if s.schema == nil {
		return "", fmt.Errorf("schema is not available")
	}
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func (s *ToolsService) E1RMSeries(ctx context.Context, q stats.SeriesQuery) ([]strength.E1RMPoint, error) {
	return s.stats.E1RMSeries(ctx, q)
}

func (s *ToolsService) Suggestions(ctx context.Context, q stats.SuggestionQuery) (*strength.Recommendation, error) {
	return s.stats.Suggestions(ctx, q)
}

func (s *ToolsService) Estimate(set strength.LoggedSet) (*Estimate, error) {
	return stats.EstimateSet(set)
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Krank DB Schema\n\nNo krank tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Krank DB Schema\n\n")
	b.WriteString("A log belongs to a workout row; is_anchor and movement_family live on the row.\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}
