package mcptools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// GetStatsHandler returns the handler function for the get_stats MCP tool.
func GetStatsHandler(store storage.DayStore) func(ctx context.Context, req *mcp.CallToolRequest, input GetStatsInput) (*mcp.CallToolResult, GetStatsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetStatsInput) (*mcp.CallToolResult, GetStatsOutput, error) {
		ref := daylog.NormalizeDate(time.Now())
		if input.Date != "" {
			t, err := parseDate(input.Date)
			if err != nil {
				return nil, GetStatsOutput{}, err
			}
			ref = t
		}

		days, err := store.LoadAllDays(ctx)
		if err != nil {
			return nil, GetStatsOutput{}, err
		}

		return nil, GetStatsOutput{
			Year:            ref.Year(),
			Month:           ref.Month().String(),
			YearlyMiles:     daylog.YearlyMiles(days, ref),
			MonthlyMiles:    daylog.MonthlyMiles(days, ref),
			YearlyElevation: daylog.YearlyElevation(days, ref),
			MonthlyVertDays: daylog.MonthlyVertDays(days, ref),
			VertStreak:      daylog.VertStreak(days),
			SokayTotal:      daylog.SokayTotal(days, ref),
			Days:            len(days),
			Message:         daylog.StreakMessage(days),
		}, nil
	}
}
