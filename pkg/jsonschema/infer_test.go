package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferPrimitives(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"string", `"hello"`, "string"},
		{"integer", `42`, "integer"},
		{"whole float", `1.0`, "integer"},
		{"float", `3.14`, "number"},
		{"bool", `true`, "boolean"},
		{"null", `null`, "null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inf := Infer([]byte(tc.json))
			require.NotNil(t, inf)
			assert.Equal(t, tc.want, inf.Schema.Type)
		})
	}
}

func TestInferObjectRequired(t *testing.T) {
	samples := [][]byte{
		[]byte(`{"id": 1, "name": "alice", "note": "x"}`),
		[]byte(`{"id": 2, "name": "bob"}`),
		[]byte(`{"id": 3, "name": null}`),
	}

	inf := Infer(samples...)
	require.NotNil(t, inf)
	assert.Equal(t, 3, inf.SampleCount)
	assert.False(t, inf.AllMatch)

	require.Equal(t, "object", inf.Schema.Type)
	// id is in every sample and never null; name is nullable; note is
	// missing from two samples.
	assert.Equal(t, []string{"id"}, inf.Schema.Required)
}

func TestInferArrayItems(t *testing.T) {
	inf := Infer([]byte(`[{"id": 1}, {"id": 2, "tag": "a"}]`))
	require.NotNil(t, inf)
	require.Equal(t, "array", inf.Schema.Type)
	require.NotNil(t, inf.Schema.Items)
	assert.Equal(t, "object", inf.Schema.Items.Type)

	var keys []string
	for pair := inf.Schema.Items.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"id", "tag"}, keys)
}

func TestInferMixedTypesAnyOf(t *testing.T) {
	inf := Infer([]byte(`"text"`), []byte(`42`))
	require.NotNil(t, inf)
	assert.False(t, inf.AllMatch)
	require.Len(t, inf.Schema.AnyOf, 2)
	assert.Equal(t, "integer", inf.Schema.AnyOf[0].Type)
	assert.Equal(t, "string", inf.Schema.AnyOf[1].Type)
}

func TestInferSkipsUnparseable(t *testing.T) {
	inf := Infer([]byte(`not json`), []byte(`{"ok": true}`))
	require.NotNil(t, inf)
	assert.Equal(t, 1, inf.SampleCount)

	assert.Nil(t, Infer([]byte(`not json`)))
	assert.Nil(t, Infer())
}

func TestInferNestedRequired(t *testing.T) {
	samples := [][]byte{
		[]byte(`{"user": {"id": 1, "email": "a@b.c"}}`),
		[]byte(`{"user": {"id": 2}}`),
	}

	inf := Infer(samples...)
	require.NotNil(t, inf)

	userSchema, ok := inf.Schema.Properties.Get("user")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, userSchema.Required)
}
