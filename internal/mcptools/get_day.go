package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papadavis47/mountains-tui/internal/storage"
)

// GetDayHandler returns the handler function for the get_day MCP tool.
// An unlogged day is reported as storage.ErrNotFound.
func GetDayHandler(store storage.DayStore) func(ctx context.Context, req *mcp.CallToolRequest, input GetDayInput) (*mcp.CallToolResult, GetDayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetDayInput) (*mcp.CallToolResult, GetDayOutput, error) {
		date, err := parseDate(input.Date)
		if err != nil {
			return nil, GetDayOutput{}, err
		}
		d, err := store.GetDay(ctx, date)
		if err != nil {
			return nil, GetDayOutput{}, err
		}

		out := GetDayOutput{
			Date:             d.Key(),
			Weight:           d.Weight,
			Waist:            d.Waist,
			Miles:            d.Miles,
			Elevation:        d.Elevation,
			Food:             make([]string, 0, len(d.Food)),
			Sokay:            make([]string, 0, len(d.Sokay)),
			StrengthMobility: deref(d.StrengthMobility),
			Notes:            deref(d.Notes),
		}
		for _, f := range d.Food {
			out.Food = append(out.Food, f.Name)
		}
		for _, c := range d.Sokay {
			out.Sokay = append(out.Sokay, c.Name)
		}
		return nil, out, nil
	}
}
