package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-palette/internal/adapters/driving/mcp"
)

func TestServeCmd_RequiresSearch(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingSearchService)
}

func TestServeCmd_DefaultAddr(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")

	assert.Equal(t, "127.0.0.1:7878", flag.DefValue)
}

func TestServeCmd_BadAddress(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "serve", "--addr", "256.0.0.1:-1")

	assert.Error(t, err)
	assert.Equal(t, int32(1), ts.freshness.stops.Load(), "refresh is stopped when the server fails")
}

func TestMCPCmd_RequiresSearch(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "mcp")

	assert.ErrorIs(t, err, mcp.ErrMissingSearchService)
}

func TestMCPCmd_HTTPBadAddress(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "mcp", "--http", "256.0.0.1:-1")

	assert.Error(t, err)
}
