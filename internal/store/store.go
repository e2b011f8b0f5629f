// Package store maintains an in-memory index of classified tool-call records
// using Roaring bitmaps.
package store

import (
	"context"
	"runtime"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/callsight-mcp/internal/cache"
	"github.com/usestring/callsight-mcp/pkg/classify"
)

// Role distinguishes the two payloads of a call record.
type Role string

const (
	RoleRequest  Role = "request"
	RoleResponse Role = "response"
)

// Record is one tool call as captured from a transcript: the raw input and
// output payload strings plus routing metadata.
type Record struct {
	ID           string `json:"id"`
	Domain       string `json:"domain,omitempty"`
	FunctionName string `json:"function_name,omitempty"`
	PendingAuth  bool   `json:"pending_auth,omitempty"`
	Input        string `json:"input"`
	Output       string `json:"output"`
}

// Classified is a record with both payloads classified.
type Classified struct {
	Record   *Record          `json:"record"`
	Request  *classify.Result `json:"request"`
	Response *classify.Result `json:"response"`
}

// Store indexes classified records. Classification happens exactly once per
// distinct payload: results are memoized through the shared cache.
type Store struct {
	mu sync.RWMutex

	idToDoc map[string]uint32
	docs    []*Classified
	nextDoc uint32

	idxRequestCategory  map[classify.Category]*roaring.Bitmap
	idxResponseCategory map[classify.Category]*roaring.Bitmap
	idxDomain           map[string]*roaring.Bitmap
	idxFunction         map[string]*roaring.Bitmap
	idxPendingAuth      *roaring.Bitmap

	results *cache.ResultCache
	workers int
}

// New creates a Store. The cache may be nil to disable memoization; workers
// bounds batch-ingest concurrency and defaults to GOMAXPROCS when zero.
func New(results *cache.ResultCache, workers int) *Store {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Store{
		idToDoc:             make(map[string]uint32),
		docs:                make([]*Classified, 0, 256),
		idxRequestCategory:  make(map[classify.Category]*roaring.Bitmap),
		idxResponseCategory: make(map[classify.Category]*roaring.Bitmap),
		idxDomain:           make(map[string]*roaring.Bitmap),
		idxFunction:         make(map[string]*roaring.Bitmap),
		idxPendingAuth:      roaring.New(),
		results:             results,
		workers:             workers,
	}
}

// Add classifies both payloads of a record and indexes it. Re-adding an
// existing ID is a no-op returning the original document ID.
func (s *Store) Add(rec *Record) uint32 {
	s.mu.RLock()
	docID, exists := s.idToDoc[rec.ID]
	s.mu.RUnlock()
	if exists {
		return docID
	}

	cls := &Classified{
		Record:   rec,
		Request:  s.classify(RoleRequest, rec.Input),
		Response: s.classify(RoleResponse, rec.Output),
	}
	return s.index(cls)
}

// AddBatch classifies and indexes a batch concurrently. Classification runs
// on the worker pool; indexing stays serialized behind the store lock.
func (s *Store) AddBatch(ctx context.Context, recs []*Record) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, rec := range recs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Add(rec)
			return nil
		})
	}
	return g.Wait()
}

func (s *Store) classify(role Role, payload string) *classify.Result {
	if s.results == nil {
		return classifyPayload(role, payload)
	}
	key := cache.Key(string(role), payload)
	if res, ok := s.results.Get(key); ok {
		return res
	}
	res := classifyPayload(role, payload)
	s.results.Put(key, res)
	return res
}

func classifyPayload(role Role, payload string) *classify.Result {
	if role == RoleRequest {
		return classify.ClassifyRequest(payload)
	}
	return classify.ClassifyResponse(payload)
}

func (s *Store) index(cls *Classified) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Lost the race against a concurrent Add of the same ID.
	if docID, exists := s.idToDoc[cls.Record.ID]; exists {
		return docID
	}

	docID := s.nextDoc
	s.nextDoc++
	s.idToDoc[cls.Record.ID] = docID
	s.docs = append(s.docs, cls)

	addToBitmap(s.idxRequestCategory, cls.Request.Category, docID)
	addToBitmap(s.idxResponseCategory, cls.Response.Category, docID)
	if cls.Record.Domain != "" {
		addToBitmap(s.idxDomain, cls.Record.Domain, docID)
	}
	if cls.Record.FunctionName != "" {
		addToBitmap(s.idxFunction, cls.Record.FunctionName, docID)
	}
	if cls.Record.PendingAuth {
		s.idxPendingAuth.Add(docID)
	}

	return docID
}

func addToBitmap[K comparable](index map[K]*roaring.Bitmap, key K, docID uint32) {
	bm, ok := index[key]
	if !ok {
		bm = roaring.New()
		index[key] = bm
	}
	bm.Add(docID)
}

// Get returns the classified record for an ID.
func (s *Store) Get(id string) (*Classified, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docID, ok := s.idToDoc[id]
	if !ok {
		return nil, false
	}
	return s.docs[docID], true
}

// Len returns the number of indexed records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) allDocs() *roaring.Bitmap {
	bm := roaring.New()
	bm.AddRange(0, uint64(s.nextDoc))
	return bm
}
