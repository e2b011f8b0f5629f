package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/callsight-mcp/internal/cache"
	"github.com/usestring/callsight-mcp/pkg/classify"
)

func testRecord(id string) *Record {
	return &Record{
		ID:           id,
		Domain:       "api.example.com",
		FunctionName: "run_query",
		Input:        `{"query":"query { users { id } }"}`,
		Output:       `{"success":true,"output":"done"}`,
	}
}

func TestStoreAddClassifiesBothRoles(t *testing.T) {
	s := New(nil, 1)
	s.Add(testRecord("r1"))

	cls, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, classify.CategoryGraphQLQuery, cls.Request.Category)
	assert.Equal(t, classify.CategoryPythonResult, cls.Response.Category)
}

func TestStoreAddIdempotent(t *testing.T) {
	s := New(nil, 1)
	first := s.Add(testRecord("r1"))
	second := s.Add(testRecord("r1"))

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.Len())
}

func TestStoreAddBatch(t *testing.T) {
	results, err := cache.NewResultCache(64)
	require.NoError(t, err)
	s := New(results, 4)

	var recs []*Record
	for i := 0; i < 20; i++ {
		recs = append(recs, testRecord(fmt.Sprintf("r%d", i)))
	}
	require.NoError(t, s.AddBatch(context.Background(), recs))
	assert.Equal(t, 20, s.Len())

	// All records share the same two payloads, so the cache holds exactly
	// one entry per role.
	assert.Equal(t, 2, results.Len())
}

func TestStoreSearchFilters(t *testing.T) {
	s := New(nil, 1)
	s.Add(&Record{
		ID: "graphql", Domain: "a.example", FunctionName: "call_tool",
		Input:  `{"query":"query { users { id } }"}`,
		Output: `not json at all`,
	})
	s.Add(&Record{
		ID: "python", Domain: "b.example", FunctionName: "execute_python",
		Input:  `{"code":"import os\nprint(os.getcwd())"}`,
		Output: `{"success":false,"error":"boom"}`,
	})
	s.Add(&Record{
		ID: "pending", Domain: "a.example", FunctionName: "call_tool",
		PendingAuth: true,
		Input:       `plain request`,
		Output:      `plain response`,
	})

	cases := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{"all", Filter{}, []string{"graphql", "python", "pending"}},
		{"by domain", Filter{Domain: "a.example"}, []string{"graphql", "pending"}},
		{"by function", Filter{FunctionName: "execute_python"}, []string{"python"}},
		{"by request category", Filter{RequestCategory: classify.CategoryPythonCode}, []string{"python"}},
		{"by response category", Filter{ResponseCategory: classify.CategoryPythonResult}, []string{"python"}},
		{"pending auth", Filter{PendingAuthOnly: true}, []string{"pending"}},
		{"no match", Filter{Domain: "missing.example"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches, total := s.Search(tc.filter, 0)
			assert.Equal(t, len(tc.wantIDs), total)

			var ids []string
			for _, m := range matches {
				ids = append(ids, m.Record.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestStoreSearchLimit(t *testing.T) {
	s := New(nil, 1)
	for i := 0; i < 10; i++ {
		s.Add(testRecord(fmt.Sprintf("r%d", i)))
	}

	matches, total := s.Search(Filter{}, 3)
	assert.Equal(t, 10, total)
	assert.Len(t, matches, 3)
}

func TestStoreCategoryHistogram(t *testing.T) {
	s := New(nil, 1)
	s.Add(testRecord("r1"))
	s.Add(&Record{ID: "r2", Input: "plain", Output: "plain"})

	req := s.CategoryHistogram(RoleRequest)
	assert.Equal(t, 1, req[classify.CategoryGraphQLQuery])
	assert.Equal(t, 1, req[classify.CategoryPlainText])

	resp := s.CategoryHistogram(RoleResponse)
	assert.Equal(t, 1, resp[classify.CategoryPythonResult])
}

func TestStoreDomainsAndFunctions(t *testing.T) {
	s := New(nil, 1)
	s.Add(testRecord("r1"))
	s.Add(testRecord("r2"))

	assert.Equal(t, map[string]int{"api.example.com": 2}, s.Domains())
	assert.Equal(t, map[string]int{"run_query": 2}, s.Functions())
}
