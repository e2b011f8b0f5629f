package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema_panicsOnNilSlice(t *testing.T) {
	type BadOutput struct {
		Items []string `json:"items"` // no omitzero → nil → null → schema expects array
	}
	assert.Panics(t, func() {
		CheckOutputSchema[BadOutput]("test_bad_tool")
	})
}

func TestCheckOutputSchema_okWithOmitzero(t *testing.T) {
	type GoodOutput struct {
		Items []string `json:"items,omitzero"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[GoodOutput]("test_good_tool")
	})
}

func TestCheckOutputSchema_okWithOmitempty(t *testing.T) {
	type GoodOutput struct {
		Items []string `json:"items,omitempty"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[GoodOutput]("test_good_tool")
	})
}

func TestCheckOutputSchema_okWithNoSlices(t *testing.T) {
	type SimpleOutput struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[SimpleOutput]("test_simple_tool")
	})
}

func TestCheckOutputSchema_okWithAny(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[any]("test_any_tool")
	})
}

func TestCheckOutputSchema_okWithAnySlice(t *testing.T) {
	type GoodOutput struct {
		Items []any `json:"items,omitzero"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[GoodOutput]("test_any_slice")
	})
}

func TestCheckOutputSchema_okWithToolOutputs(t *testing.T) {
	// The registered tool output types must pass the startup check.
	assert.NotPanics(t, func() {
		CheckOutputSchema[ClassifyCallOutput]("callsight_classify_call")
		CheckOutputSchema[IngestTranscriptOutput]("callsight_ingest_transcript")
		CheckOutputSchema[SearchCallsOutput]("callsight_search_calls")
		CheckOutputSchema[QueryPayloadOutput]("callsight_query_payload")
		CheckOutputSchema[InferPayloadSchemaOutput]("callsight_infer_payload_schema")
		CheckOutputSchema[CheckResultOutput]("callsight_check_result")
	})
}
