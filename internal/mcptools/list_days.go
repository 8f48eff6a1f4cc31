package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papadavis47/mountains-tui/internal/storage"
)

// ListDaysHandler returns the handler function for the list_days MCP tool.
func ListDaysHandler(store storage.DayStore) func(ctx context.Context, req *mcp.CallToolRequest, input ListDaysInput) (*mcp.CallToolResult, ListDaysOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDaysInput) (*mcp.CallToolResult, ListDaysOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 30
		}

		var startKey, endKey string
		if input.StartDate != "" {
			t, err := parseDate(input.StartDate)
			if err != nil {
				return nil, ListDaysOutput{}, err
			}
			startKey = t.Format("2006-01-02")
		}
		if input.EndDate != "" {
			t, err := parseDate(input.EndDate)
			if err != nil {
				return nil, ListDaysOutput{}, err
			}
			endKey = t.Format("2006-01-02")
		}

		days, err := store.LoadAllDays(ctx)
		if err != nil {
			return nil, ListDaysOutput{}, err
		}

		results := []DaySummary{}
		for _, d := range days {
			key := d.Key()
			if (startKey != "" && key < startKey) || (endKey != "" && key > endKey) {
				continue
			}
			results = append(results, DaySummary{
				Date:      key,
				Miles:     d.Miles,
				Elevation: d.Elevation,
				Food:      len(d.Food),
				Sokay:     len(d.Sokay),
				Preview:   preview(d.Notes, 100),
			})
			if len(results) == limit {
				break
			}
		}

		return nil, ListDaysOutput{Days: results}, nil
	}
}
