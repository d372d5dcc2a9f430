package chatstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilerInterleavedOrder(t *testing.T) {
	r := NewReconciler()
	r.Apply(TextDelta("Hi"))
	r.Apply(ToolCall("c1", "getTasks", json.RawMessage(`{}`)))
	r.Apply(ToolResult("c1", "getTasks", json.RawMessage(`{"tasks":[]}`)))
	r.Apply(TextDelta("done"))

	parts := r.Parts()
	require.Len(t, parts, 3)

	text, ok := parts[0].(TextPart)
	require.True(t, ok)
	assert.Equal(t, "Hi", text.Text)

	tool, ok := parts[1].(ToolPart)
	require.True(t, ok)
	assert.Equal(t, "getTasks", tool.ToolName)
	assert.Equal(t, ToolStateResult, tool.State)
	assert.JSONEq(t, `{"tasks":[]}`, string(tool.Result))

	tail, ok := parts[2].(TextPart)
	require.True(t, ok)
	assert.Equal(t, "done", tail.Text)
}

func TestReconcilerMergesContiguousText(t *testing.T) {
	r := NewReconciler()
	r.Apply(TextDelta("Hel"))
	r.Apply(TextDelta("lo "))
	r.Apply(TextDelta("world"))

	parts := r.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, "Hello world", parts[0].(TextPart).Text)
}

func TestReconcilerToolTransitionsExactlyOnce(t *testing.T) {
	r := NewReconciler()
	r.Apply(ToolCall("c1", "deleteTask", json.RawMessage(`{"id":"x"}`)))

	parts := r.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, ToolStatePending, parts[0].(ToolPart).State)

	r.Apply(ToolResult("c1", "deleteTask", json.RawMessage(`{"success":true}`)))
	r.Apply(ToolResult("c1", "deleteTask", json.RawMessage(`{"success":false}`)))

	parts = r.Parts()
	require.Len(t, parts, 1)
	tool := parts[0].(ToolPart)
	assert.Equal(t, ToolStateResult, tool.State)
	assert.JSONEq(t, `{"success":true}`, string(tool.Result))
}

func TestReconcilerIgnoresUnmatchedResult(t *testing.T) {
	r := NewReconciler()
	r.Apply(ToolResult("ghost", "getTasks", json.RawMessage(`{}`)))
	assert.Empty(t, r.Parts())
}

func TestReconcilerDuplicateCallIDIgnored(t *testing.T) {
	r := NewReconciler()
	r.Apply(ToolCall("c1", "getTasks", json.RawMessage(`{}`)))
	r.Apply(ToolCall("c1", "getTasks", json.RawMessage(`{}`)))
	assert.Len(t, r.Parts(), 1)
}

func TestReconcilerFreezesOnDone(t *testing.T) {
	r := NewReconciler()
	r.Apply(TextDelta("final"))
	r.Apply(Done("text_response"))
	r.Apply(TextDelta("late"))

	parts := r.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, "final", parts[0].(TextPart).Text)
	assert.True(t, r.Done())
	assert.Equal(t, "text_response", r.Reason())
}

func TestReconcilerRecordsError(t *testing.T) {
	r := NewReconciler()
	r.Apply(ErrorEvent("upstream unavailable"))
	assert.Equal(t, "upstream unavailable", r.Err())
}

func TestPartsJSONRoundTrip(t *testing.T) {
	original := Parts{
		TextPart{Text: "Hi"},
		ToolPart{ID: "c1", ToolName: "getTasks", State: ToolStateResult, Args: json.RawMessage(`{}`), Result: json.RawMessage(`{"tasks":[]}`)},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"text"`)
	assert.Contains(t, string(data), `"type":"tool"`)

	var decoded Parts
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Hi", decoded[0].(TextPart).Text)
	assert.Equal(t, "getTasks", decoded[1].(ToolPart).ToolName)
}

func TestPartsUnknownTypeRejected(t *testing.T) {
	var decoded Parts
	err := json.Unmarshal([]byte(`[{"type":"mystery"}]`), &decoded)
	require.Error(t, err)
}
