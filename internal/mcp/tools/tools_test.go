package tools

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/callsight-mcp/internal/cache"
	"github.com/usestring/callsight-mcp/internal/config"
	"github.com/usestring/callsight-mcp/internal/query"
	"github.com/usestring/callsight-mcp/internal/resultschema"
	"github.com/usestring/callsight-mcp/internal/store"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	results, err := cache.NewResultCache(64)
	require.NoError(t, err)
	checker, err := resultschema.NewChecker()
	require.NoError(t, err)

	return &Deps{
		Store:   store.New(results, 2),
		Cache:   results,
		Config:  config.Load(),
		Query:   query.NewEngine(),
		Checker: checker,
	}
}

// ingestFixture loads three records: a GraphQL call returning tabular data,
// a Python execution, and a pending-auth call with opaque payloads.
func ingestFixture(t *testing.T, d *Deps) {
	t.Helper()

	handler := ToolIngestTranscript(d)
	_, out, err := handler(context.Background(), nil, IngestTranscriptInput{
		Records: []IngestRecord{
			{
				ID:           "r1",
				Domain:       "api.acme.dev",
				FunctionName: "run_graphql_query",
				Input:        `{"query":"query { users { id name } }"}`,
				Output:       `{"data":[{"id":1,"name":"Ada"},{"id":2,"name":"Bob"}]}`,
			},
			{
				ID:           "r2",
				Domain:       "api.acme.dev",
				FunctionName: "execute_python",
				Input:        `{"code":"import json\nprint(json.dumps({\"n\": 1}))"}`,
				Output:       `{"success":true,"output":"{\"n\": 1}\n"}`,
			},
			{
				ID:           "r3",
				Domain:       "files.acme.dev",
				FunctionName: "read_file",
				PendingAuth:  true,
				Input:        "path=/etc/motd",
				Output:       "permission pending",
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, out.Ingested)
}

// textOf extracts the markdown text content of a tool result.
func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestToolClassifyCall(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolClassifyCall(d)

	res, out, err := handler(context.Background(), nil, ClassifyCallInput{
		Input:  `{"query":"query { user { id } }"}`,
		Output: `{"success":false,"error":"boom"}`,
	})
	require.NoError(t, err)

	require.NotNil(t, out.Request)
	assert.Equal(t, "graphql_query", string(out.Request.Category))
	require.NotNil(t, out.Response)
	assert.Equal(t, "python_result", string(out.Response.Category))

	require.NotNil(t, res)
	text := textOf(t, res)
	assert.Contains(t, text, "## Request")
	assert.Contains(t, text, "## Response")
	assert.Contains(t, text, "**Execution failed**")
}

func TestToolClassifyCallRequiresPayload(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolClassifyCall(d)

	_, _, err := handler(context.Background(), nil, ClassifyCallInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidInput)
}

func TestToolIngestTranscriptRejectsEmpty(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolIngestTranscript(d)

	_, _, err := handler(context.Background(), nil, IngestTranscriptInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidInput)

	_, _, err = handler(context.Background(), nil, IngestTranscriptInput{
		Records: []IngestRecord{{Input: "x", Output: "y"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestToolIngestTranscriptHistograms(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolIngestTranscript(d)
	_, out, err := handler(context.Background(), nil, IngestTranscriptInput{
		Records: []IngestRecord{{
			ID:     "r4",
			Input:  "plain",
			Output: `{"success":false,"error":"nope"}`,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Ingested)
	assert.Equal(t, 4, out.TotalRecords)
	assert.Equal(t, 1, out.RequestCategories["graphql_query"])
	assert.Equal(t, 2, out.ResponseCategories["python_result"])
}

func TestToolSearchCallsByCategory(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolSearchCalls(d)
	_, out, err := handler(context.Background(), nil, SearchCallsInput{
		ResponseCategory: "python_result",
	})
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, "r2", out.Results[0].ID)
	assert.Equal(t, "execute_python", out.Results[0].FunctionName)
	assert.Equal(t, 1, out.Total)
	// Overview histograms only appear on unfiltered searches.
	assert.Nil(t, out.Domains)
}

func TestToolSearchCallsUnfilteredOverview(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolSearchCalls(d)
	_, out, err := handler(context.Background(), nil, SearchCallsInput{})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.Domains["api.acme.dev"])
	assert.Equal(t, 1, out.Functions["read_file"])
}

func TestToolSearchCallsPendingAuth(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolSearchCalls(d)
	_, out, err := handler(context.Background(), nil, SearchCallsInput{PendingAuthOnly: true})
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, "r3", out.Results[0].ID)
	assert.True(t, out.Results[0].PendingAuth)
}

func TestToolSearchCallsOffset(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolSearchCalls(d)
	_, out, err := handler(context.Background(), nil, SearchCallsInput{
		Domain: "api.acme.dev",
		Offset: 1,
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "r2", out.Results[0].ID)
	assert.Equal(t, 2, out.Total)

	// Out-of-range offset yields no results, not an error.
	_, out, err = handler(context.Background(), nil, SearchCallsInput{
		Domain: "api.acme.dev",
		Offset: 50,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Results)
	assert.Equal(t, 2, out.Total)
}

func TestToolQueryPayload(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolQueryPayload(d)
	_, out, err := handler(context.Background(), nil, QueryPayloadInput{
		RecordIDs:  []string{"r2"},
		Expression: ".output",
	})
	require.NoError(t, err)

	require.Len(t, out.Values, 1)
	assert.Equal(t, "{\"n\": 1}\n", out.Values[0])
	assert.Empty(t, out.Errors)
}

func TestToolQueryPayloadUnknownRecord(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolQueryPayload(d)
	_, _, err := handler(context.Background(), nil, QueryPayloadInput{
		RecordIDs:  []string{"missing"},
		Expression: ".",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestToolInferPayloadSchema(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolInferPayloadSchema(d)
	_, out, err := handler(context.Background(), nil, InferPayloadSchemaInput{
		RecordIDs: []string{"r2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.SampleCount)
	assert.True(t, out.AllMatch)
	assert.NotNil(t, out.Schema)
	assert.Empty(t, out.Skipped)
}

func TestToolInferPayloadSchemaSkipsOpaque(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolInferPayloadSchema(d)
	_, out, err := handler(context.Background(), nil, InferPayloadSchemaInput{
		RecordIDs: []string{"r2", "r3"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.SampleCount)
	assert.Equal(t, []string{"r3"}, out.Skipped)
}

func TestToolInferPayloadSchemaMaxSamples(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolInferPayloadSchema(d)
	_, out, err := handler(context.Background(), nil, InferPayloadSchemaInput{
		RecordIDs:  []string{"r1", "r2"},
		MaxSamples: 1,
	})
	require.NoError(t, err)

	// Only the first record is sampled; the rest are ignored, not skipped.
	assert.Equal(t, 1, out.SampleCount)
	assert.True(t, out.AllMatch)
	assert.Empty(t, out.Skipped)
}

func TestToolCheckResultByPayload(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolCheckResult(d)

	_, out, err := handler(context.Background(), nil, CheckResultInput{
		Payload: `{"success":true,"output":"done"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, "python_result", out.Category)
	assert.True(t, out.Valid)
	assert.Equal(t, "direct", out.Recovery)
}

func TestToolCheckResultByRecord(t *testing.T) {
	d := newTestDeps(t)
	ingestFixture(t, d)

	handler := ToolCheckResult(d)
	_, out, err := handler(context.Background(), nil, CheckResultInput{RecordID: "r2"})
	require.NoError(t, err)

	assert.Equal(t, "python_result", out.Category)
	assert.True(t, out.Valid)
}

func TestToolCheckResultExclusiveInput(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolCheckResult(d)

	_, _, err := handler(context.Background(), nil, CheckResultInput{})
	require.Error(t, err)

	_, _, err = handler(context.Background(), nil, CheckResultInput{
		RecordID: "r1",
		Payload:  "{}",
	})
	require.Error(t, err)
}
