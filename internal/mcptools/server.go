package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papadavis47/mountains-tui/internal/storage"
)

// NewLogMCPServer creates an in-memory MCP server exposing training log tools.
// Returns the server and a client transport for connecting to it.
func NewLogMCPServer(store storage.DayStore) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(store, "dev")

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the read-only log tools registered.
func CreateMCPServer(store storage.DayStore, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mountains",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_days",
		Description: "List logged training days, newest first, optionally within a date range",
	}, ListDaysHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_day",
		Description: "Get the full log of one day: measurements, running, food, sokay and notes",
	}, GetDayHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get yearly and monthly mileage, elevation and the current 1000+ ft vert streak",
	}, GetStatsHandler(store))

	return server
}
