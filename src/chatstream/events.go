// Package chatstream defines the wire protocol between the assistant
// loop and its clients: newline-delimited JSON events, the message part
// model clients reconstruct from them, and a reconciler that folds an
// event stream into ordered parts.
package chatstream

import "encoding/json"

// EventType tags a stream event.
type EventType string

const (
	EventTextDelta  EventType = "text-delta"
	EventToolCall   EventType = "tool-call"
	EventToolResult EventType = "tool-result"
	EventError      EventType = "error"
	EventDone       EventType = "done"
)

// Event is one element of the stream. Fields are populated according
// to Type; unused fields are omitted on the wire.
type Event struct {
	Type EventType `json:"type"`

	// text-delta
	Text string `json:"text,omitempty"`

	// tool-call / tool-result
	ID       string          `json:"id,omitempty"`
	ToolName string          `json:"toolName,omitempty"`
	Args     json.RawMessage `json:"args,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`

	// error
	Message string `json:"message,omitempty"`

	// done
	Reason string `json:"reason,omitempty"`
}

// TextDelta builds a text-delta event.
func TextDelta(text string) Event {
	return Event{Type: EventTextDelta, Text: text}
}

// ToolCall builds a tool-call event.
func ToolCall(id, toolName string, args json.RawMessage) Event {
	return Event{Type: EventToolCall, ID: id, ToolName: toolName, Args: args}
}

// ToolResult builds a tool-result event.
func ToolResult(id, toolName string, result json.RawMessage) Event {
	return Event{Type: EventToolResult, ID: id, ToolName: toolName, Result: result}
}

// ErrorEvent builds an error event.
func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

// Done builds a done event.
func Done(reason string) Event {
	return Event{Type: EventDone, Reason: reason}
}
