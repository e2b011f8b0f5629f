package tools

import (
	"github.com/usestring/callsight-mcp/internal/cache"
	"github.com/usestring/callsight-mcp/internal/config"
	"github.com/usestring/callsight-mcp/internal/query"
	"github.com/usestring/callsight-mcp/internal/resultschema"
	"github.com/usestring/callsight-mcp/internal/store"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Store   *store.Store
	Cache   *cache.ResultCache
	Config  *config.Config
	Query   *query.Engine
	Checker *resultschema.Checker
}

// fetchRecord looks a record up by ID, or returns a coded not-found error.
func (d *Deps) fetchRecord(id string) (*store.Classified, error) {
	cls, ok := d.Store.Get(id)
	if !ok {
		return nil, ErrNotFound("record", id)
	}
	return cls, nil
}
