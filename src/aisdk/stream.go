package aisdk

import (
	"errors"
	"io"
	"strings"
)

// StreamInterface defines the interface for reading streaming responses.
// Read returns io.EOF when the stream is exhausted.
type StreamInterface interface {
	Read() (*StreamChunk, error)
	Close() error
}

// StreamResult represents a result from a streaming operation.
type StreamResult struct {
	Chunk *StreamChunk
	Error error
}

// StreamToChannel converts a StreamInterface to a Go channel. The
// channel closes when the stream ends; a terminal error is delivered as
// the final element.
func StreamToChannel(stream StreamInterface) <-chan StreamResult {
	ch := make(chan StreamResult, 1)

	go func() {
		defer close(ch)
		defer stream.Close()

		for {
			chunk, err := stream.Read()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					ch <- StreamResult{Error: err}
				}
				return
			}
			if chunk == nil {
				return
			}
			ch <- StreamResult{Chunk: chunk}
		}
	}()

	return ch
}

// StreamAccumulator assembles streamed deltas into a complete assistant
// message: text content plus fully-argumented tool calls.
type StreamAccumulator struct {
	content   strings.Builder
	toolCalls []ToolCall
	// argument fragments per tool call index, joined on Message()
	args         map[int]*strings.Builder
	indexOf      map[int]int // delta index -> position in toolCalls
	FinishReason string
}

// NewStreamAccumulator creates an empty accumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{
		args:    make(map[int]*strings.Builder),
		indexOf: make(map[int]int),
	}
}

// AddChunk folds one streamed chunk into the accumulated state and
// returns any text delta it carried.
func (a *StreamAccumulator) AddChunk(chunk *StreamChunk) string {
	if chunk == nil || len(chunk.Choices) == 0 {
		return ""
	}
	choice := chunk.Choices[0]
	if choice.FinishReason != "" {
		a.FinishReason = choice.FinishReason
	}
	if choice.Delta == nil {
		return ""
	}

	if choice.Delta.Content != "" {
		a.content.WriteString(choice.Delta.Content)
	}

	for _, tc := range choice.Delta.ToolCalls {
		pos, seen := a.indexOf[tc.Index]
		if !seen {
			pos = len(a.toolCalls)
			a.indexOf[tc.Index] = pos
			a.toolCalls = append(a.toolCalls, ToolCall{Type: "function"})
			a.args[tc.Index] = &strings.Builder{}
		}
		if tc.ID != "" {
			a.toolCalls[pos].ID = tc.ID
		}
		if tc.Function.Name != "" {
			a.toolCalls[pos].Function.Name = tc.Function.Name
		}
		if tc.Function.Arguments != "" {
			a.args[tc.Index].WriteString(tc.Function.Arguments)
		}
	}

	return choice.Delta.Content
}

// Message returns the assembled assistant message.
func (a *StreamAccumulator) Message() *Message {
	msg := &Message{
		Role:    "assistant",
		Content: a.content.String(),
	}
	if len(a.toolCalls) == 0 {
		return msg
	}

	msg.ToolCalls = make([]ToolCall, len(a.toolCalls))
	copy(msg.ToolCalls, a.toolCalls)
	for idx, pos := range a.indexOf {
		args := a.args[idx].String()
		if args == "" {
			args = "{}"
		}
		msg.ToolCalls[pos].Function.Arguments = []byte(args)
	}
	return msg
}
