package sdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"schema and type", "schema { query: Query } type Query { id: ID }", true},
		{"type only", "type Query { id: ID }", false},
		{"schema only", "schema { query: Query }", false},
		{"plain prose", "the weather is nice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Looks(tt.text))
		})
	}
}

func TestExtract(t *testing.T) {
	raw := "schema { query: Query mutation: Mutation } type Query { id: ID } type User { name: String } enum Color { RED GREEN } directive @deprecated on FIELD_DEFINITION"

	s := Extract(raw)

	assert.Equal(t, "Query", s.QueryType)
	assert.Equal(t, "Mutation", s.MutationType)
	assert.Empty(t, s.SubscriptionType)
	assert.Equal(t, []string{"Query", "User"}, s.Types)
	assert.Equal(t, []string{"Color"}, s.Enums)
	assert.Equal(t, []string{"deprecated"}, s.Directives)
	assert.Equal(t, 1, s.LineCount)
}

func TestExtractMinimal(t *testing.T) {
	s := Extract("schema { query: Query } type Query { id: ID } enum Color { RED }")

	assert.Equal(t, "Query", s.QueryType)
	assert.Equal(t, []string{"Query"}, s.Types)
	assert.Equal(t, []string{"Color"}, s.Enums)
}

func TestExtractEscapedNewlines(t *testing.T) {
	s := Extract(`schema {\n  query: Query\n}\ntype Query {\n  id: ID\n}`)

	assert.Equal(t, "Query", s.QueryType)
	assert.Equal(t, []string{"Query"}, s.Types)
	assert.Equal(t, 6, s.LineCount)
}

func TestExtractNoSchemaBlock(t *testing.T) {
	s := Extract("type Product { sku: String }")

	assert.Empty(t, s.QueryType)
	assert.Equal(t, []string{"Product"}, s.Types)
	assert.Equal(t, 1, s.LineCount)
}
