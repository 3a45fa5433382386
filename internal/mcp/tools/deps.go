// Package tools contains the MCP tool implementations for the netinv
// search console.
package tools

import (
	"github.com/usestring/netinv-mcp/internal/config"
	"github.com/usestring/netinv-mcp/internal/controller"
	"github.com/usestring/netinv-mcp/internal/history"
	"github.com/usestring/netinv-mcp/internal/preview"
	"github.com/usestring/netinv-mcp/internal/query"
)

// Deps bundles the console components the tools operate on.
type Deps struct {
	Config  *config.Config
	Console *controller.Controller
	Preview *preview.Cache
	History *history.Manager
	Query   *query.Engine
}
