package executor

import (
	"fmt"
	"time"

	"github.com/elee1766/taskdeck/src/aisdk"
)

// EventType represents the type of turn event
type EventType string

const (
	// Assistant events
	EventAssistantStreamStart EventType = "assistant_stream_start"
	EventAssistantStreamChunk EventType = "assistant_stream_chunk"
	EventAssistantStreamEnd   EventType = "assistant_stream_end"
	EventAssistantMessage     EventType = "assistant_message"

	// Tool events
	EventToolCallRequest  EventType = "tool_call_request"
	EventToolCallResponse EventType = "tool_call_response"

	// System events
	EventError        EventType = "error"
	EventStepComplete EventType = "step_complete"
	EventTurnComplete EventType = "turn_complete"
)

// TurnEvent is the base interface for all turn events
type TurnEvent interface {
	GetType() EventType
	GetTimestamp() time.Time
	GetStepNumber() int
}

// BaseEvent contains common fields for all events
type BaseEvent struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	StepNumber int       `json:"step_number"`
}

func (e BaseEvent) GetType() EventType      { return e.Type }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetStepNumber() int      { return e.StepNumber }

// AssistantStreamStartEvent represents the start of assistant streaming
type AssistantStreamStartEvent struct {
	BaseEvent
	Model string `json:"model"`
}

// AssistantStreamChunkEvent represents a chunk of streamed text
type AssistantStreamChunkEvent struct {
	BaseEvent
	Content string `json:"content"`
}

// AssistantStreamEndEvent represents the end of assistant streaming
type AssistantStreamEndEvent struct {
	BaseEvent
}

// AssistantMessageEvent represents a complete assistant message
type AssistantMessageEvent struct {
	BaseEvent
	Content   string           `json:"content"`
	ToolCalls []aisdk.ToolCall `json:"tool_calls,omitempty"`
	Model     string           `json:"model"`
}

// ToolCallRequestEvent represents a tool call the model asked for
type ToolCallRequestEvent struct {
	BaseEvent
	ToolCall aisdk.ToolCall `json:"tool_call"`
}

// ToolCallResponseEvent represents a finished tool call. A failed
// execution is still a response; IsError is carried on the payload.
type ToolCallResponseEvent struct {
	BaseEvent
	ToolName string              `json:"tool_name"`
	ToolID   string              `json:"tool_id"`
	Response *aisdk.ToolResponse `json:"response"`
	Duration time.Duration       `json:"duration"`
}

// ErrorEvent represents an error in the turn
type ErrorEvent struct {
	BaseEvent
	Error   error  `json:"error"`
	Context string `json:"context"`
}

// StepCompleteEvent represents the completion of a single model step
type StepCompleteEvent struct {
	BaseEvent
	State ExecutionState `json:"state"`
}

// TurnCompleteEvent represents the end of a turn
type TurnCompleteEvent struct {
	BaseEvent
	Reason     string `json:"reason"` // "text_response", "max_steps", "error"
	TotalSteps int    `json:"total_steps"`
}

// EventSink is the interface for handling turn events
type EventSink interface {
	// Send sends an event to the sink
	Send(event TurnEvent) error

	// Close closes the event sink
	Close() error
}

// EventProcessor processes turn events
type EventProcessor interface {
	// Process handles a single event
	Process(event TurnEvent) error

	// Close cleans up any resources
	Close() error
}

// ChannelEventSink implements EventSink using Go channels
type ChannelEventSink struct {
	events     chan TurnEvent
	processors []EventProcessor
	done       chan struct{}
}

// NewChannelEventSink creates a new channel-based event sink
func NewChannelEventSink(bufferSize int, processors ...EventProcessor) *ChannelEventSink {
	sink := &ChannelEventSink{
		events:     make(chan TurnEvent, bufferSize),
		processors: processors,
		done:       make(chan struct{}),
	}

	go sink.processEvents()

	return sink
}

// Send sends an event to the sink. Sending after Close is an error.
func (s *ChannelEventSink) Send(event TurnEvent) error {
	select {
	case <-s.done:
		return fmt.Errorf("event sink is closed")
	default:
	}
	select {
	case s.events <- event:
		return nil
	case <-s.done:
		return fmt.Errorf("event sink is closed")
	}
}

// Close closes the event sink and waits for pending events to drain
func (s *ChannelEventSink) Close() error {
	close(s.events)
	<-s.done

	for _, p := range s.processors {
		if err := p.Close(); err != nil {
			return err
		}
	}

	return nil
}

func (s *ChannelEventSink) processEvents() {
	defer close(s.done)

	for event := range s.events {
		for _, processor := range s.processors {
			// Processor failures must not stall the turn.
			_ = processor.Process(event)
		}
	}
}
