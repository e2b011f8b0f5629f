package mcpsrv

import (
	"github.com/usestring/callsight-mcp/internal/cache"
	"github.com/usestring/callsight-mcp/internal/config"
	"github.com/usestring/callsight-mcp/internal/query"
	"github.com/usestring/callsight-mcp/internal/resultschema"
	"github.com/usestring/callsight-mcp/internal/store"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Store   *store.Store
	Cache   *cache.ResultCache
	Config  *config.Config
	Query   *query.Engine
	Checker *resultschema.Checker
}
