package aisdk

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replayStream yields its chunks then err (io.EOF for a clean end).
type replayStream struct {
	chunks []*StreamChunk
	err    error
	pos    int
	closed bool
}

func (s *replayStream) Read() (*StreamChunk, error) {
	if s.pos >= len(s.chunks) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, nil
}

func (s *replayStream) Close() error {
	s.closed = true
	return nil
}

func TestStreamToChannel(t *testing.T) {
	stream := &replayStream{chunks: []*StreamChunk{
		deltaChunk(MessageDelta{Content: "a"}, ""),
		deltaChunk(MessageDelta{Content: "b"}, "stop"),
	}}

	var got []StreamResult
	for result := range StreamToChannel(stream) {
		got = append(got, result)
	}

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Chunk.Choices[0].Delta.Content)
	assert.Equal(t, "b", got[1].Chunk.Choices[0].Delta.Content)
	assert.True(t, stream.closed, "stream must be closed when the channel drains")
}

func TestStreamToChannelDeliversTerminalError(t *testing.T) {
	stream := &replayStream{
		chunks: []*StreamChunk{deltaChunk(MessageDelta{Content: "partial"}, "")},
		err:    fmt.Errorf("connection reset"),
	}

	var got []StreamResult
	for result := range StreamToChannel(stream) {
		got = append(got, result)
	}

	require.Len(t, got, 2)
	require.NoError(t, got[0].Error)
	require.Error(t, got[1].Error)
	assert.ErrorContains(t, got[1].Error, "connection reset")
}

func deltaChunk(delta MessageDelta, finish string) *StreamChunk {
	return &StreamChunk{
		Choices: []Choice{{Delta: &delta, FinishReason: finish}},
	}
}

func TestStreamAccumulatorText(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.AddChunk(deltaChunk(MessageDelta{Content: "Hello"}, ""))
	acc.AddChunk(deltaChunk(MessageDelta{Content: ", world"}, ""))
	acc.AddChunk(deltaChunk(MessageDelta{}, "stop"))

	msg := acc.Message()
	assert.Equal(t, "assistant", msg.Role)
	assert.Equal(t, "Hello, world", msg.Content)
	assert.Empty(t, msg.ToolCalls)
	assert.Equal(t, "stop", acc.FinishReason)
}

func TestStreamAccumulatorToolCallFragments(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.AddChunk(deltaChunk(MessageDelta{ToolCalls: []ToolCallDelta{{
		Index: 0, ID: "call_1", Type: "function",
		Function: FunctionCallDelta{Name: "addTask", Arguments: `{"title":`},
	}}}, ""))
	acc.AddChunk(deltaChunk(MessageDelta{ToolCalls: []ToolCallDelta{{
		Index:    0,
		Function: FunctionCallDelta{Arguments: `"buy milk"}`},
	}}}, ""))
	acc.AddChunk(deltaChunk(MessageDelta{}, "tool_calls"))

	msg := acc.Message()
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "addTask", msg.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"title":"buy milk"}`, string(msg.ToolCalls[0].Function.Arguments))
}

func TestStreamAccumulatorMultipleToolCalls(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.AddChunk(deltaChunk(MessageDelta{ToolCalls: []ToolCallDelta{
		{Index: 0, ID: "call_1", Function: FunctionCallDelta{Name: "getTasks", Arguments: "{}"}},
		{Index: 1, ID: "call_2", Function: FunctionCallDelta{Name: "deleteTask"}},
	}}, ""))
	acc.AddChunk(deltaChunk(MessageDelta{ToolCalls: []ToolCallDelta{
		{Index: 1, Function: FunctionCallDelta{Arguments: `{"id":"x"}`}},
	}}, ""))

	msg := acc.Message()
	require.Len(t, msg.ToolCalls, 2)
	assert.Equal(t, "getTasks", msg.ToolCalls[0].Function.Name)
	assert.Equal(t, "deleteTask", msg.ToolCalls[1].Function.Name)
	assert.JSONEq(t, `{"id":"x"}`, string(msg.ToolCalls[1].Function.Arguments))
}

func TestStreamAccumulatorEmptyArgsDefaultToObject(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.AddChunk(deltaChunk(MessageDelta{ToolCalls: []ToolCallDelta{{
		Index: 0, ID: "call_1", Function: FunctionCallDelta{Name: "getTasks"},
	}}}, ""))

	msg := acc.Message()
	require.Len(t, msg.ToolCalls, 1)
	assert.JSONEq(t, `{}`, string(msg.ToolCalls[0].Function.Arguments))
}
