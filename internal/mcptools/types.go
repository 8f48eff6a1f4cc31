package mcptools

// ListDaysInput is the input schema for the list_days MCP tool.
type ListDaysInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema-description:"ISO date lower bound (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema-description:"ISO date upper bound (inclusive)"`
	Limit     int    `json:"limit" jsonschema-description:"Maximum number of days to return"`
}

// ListDaysOutput is the output schema for the list_days MCP tool.
type ListDaysOutput struct {
	Days []DaySummary `json:"days"`
}

// DaySummary is the compact form of a day in list_days output.
type DaySummary struct {
	Date      string   `json:"date"`
	Miles     *float64 `json:"miles,omitempty"`
	Elevation *int     `json:"elevation,omitempty"`
	Food      int      `json:"food"`
	Sokay     int      `json:"sokay"`
	Preview   string   `json:"preview,omitempty"`
}

// GetDayInput is the input schema for the get_day MCP tool.
type GetDayInput struct {
	Date string `json:"date" jsonschema-description:"ISO date of the day (YYYY-MM-DD)"`
}

// GetDayOutput is the output schema for the get_day MCP tool.
type GetDayOutput struct {
	Date             string   `json:"date"`
	Weight           *float64 `json:"weight,omitempty"`
	Waist            *float64 `json:"waist,omitempty"`
	Miles            *float64 `json:"miles,omitempty"`
	Elevation        *int     `json:"elevation,omitempty"`
	Food             []string `json:"food"`
	Sokay            []string `json:"sokay"`
	StrengthMobility string   `json:"strength_mobility,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// GetStatsInput is the input schema for the get_stats MCP tool.
type GetStatsInput struct {
	Date string `json:"date,omitempty" jsonschema-description:"Reference ISO date; defaults to today"`
}

// GetStatsOutput is the output schema for the get_stats MCP tool.
type GetStatsOutput struct {
	Year            int     `json:"year"`
	Month           string  `json:"month"`
	YearlyMiles     float64 `json:"yearly_miles"`
	MonthlyMiles    float64 `json:"monthly_miles"`
	YearlyElevation int     `json:"yearly_elevation"`
	MonthlyVertDays int     `json:"monthly_vert_days"`
	VertStreak      int     `json:"vert_streak"`
	SokayTotal      int     `json:"sokay_total"`
	Days            int     `json:"days"`
	Message         string  `json:"message"`
}
