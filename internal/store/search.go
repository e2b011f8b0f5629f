package store

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/callsight-mcp/pkg/classify"
)

// Filter narrows a search. Zero-valued fields do not constrain.
type Filter struct {
	Domain           string
	FunctionName     string
	RequestCategory  classify.Category
	ResponseCategory classify.Category
	PendingAuthOnly  bool
}

// Search returns records matching every set filter field, in ingest order,
// capped at limit (0 = no cap). Total is the match count before the cap.
func (s *Store) Search(f Filter, limit int) (matches []*Classified, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bm := s.allDocs()
	if f.Domain != "" {
		intersect(bm, s.idxDomain[f.Domain])
	}
	if f.FunctionName != "" {
		intersect(bm, s.idxFunction[f.FunctionName])
	}
	if f.RequestCategory != "" {
		intersect(bm, s.idxRequestCategory[f.RequestCategory])
	}
	if f.ResponseCategory != "" {
		intersect(bm, s.idxResponseCategory[f.ResponseCategory])
	}
	if f.PendingAuthOnly {
		bm.And(s.idxPendingAuth)
	}

	total = int(bm.GetCardinality())
	if limit <= 0 || limit > total {
		limit = total
	}

	matches = make([]*Classified, 0, limit)
	it := bm.Iterator()
	for it.HasNext() && len(matches) < limit {
		matches = append(matches, s.docs[it.Next()])
	}
	return matches, total
}

// intersect ANDs other into bm, treating a nil index bucket as empty.
func intersect(bm, other *roaring.Bitmap) {
	if other == nil {
		bm.Clear()
		return
	}
	bm.And(other)
}

// CategoryHistogram counts records per classification category for one role.
func (s *Store) CategoryHistogram(role Role) map[classify.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.idxRequestCategory
	if role == RoleResponse {
		idx = s.idxResponseCategory
	}

	hist := make(map[classify.Category]int, len(idx))
	for cat, bm := range idx {
		hist[cat] = int(bm.GetCardinality())
	}
	return hist
}

// Domains lists the distinct domains observed, with record counts.
func (s *Store) Domains() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.idxDomain))
	for d, bm := range s.idxDomain {
		out[d] = int(bm.GetCardinality())
	}
	return out
}

// Functions lists the distinct function names observed, with record counts.
func (s *Store) Functions() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.idxFunction))
	for f, bm := range s.idxFunction {
		out[f] = int(bm.GetCardinality())
	}
	return out
}
