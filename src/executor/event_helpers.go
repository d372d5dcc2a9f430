package executor

import (
	"time"

	"github.com/elee1766/taskdeck/src/aisdk"
)

// EventEmitter helps emit events with common fields. All Emit methods
// are no-ops when the sink is nil.
type EventEmitter struct {
	sink       EventSink
	stepNumber int
}

// NewEventEmitter creates a new event emitter
func NewEventEmitter(sink EventSink, stepNumber int) *EventEmitter {
	return &EventEmitter{
		sink:       sink,
		stepNumber: stepNumber,
	}
}

func (e *EventEmitter) createBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Timestamp:  time.Now(),
		StepNumber: e.stepNumber,
	}
}

// EmitAssistantStreamStart emits the start of assistant streaming
func (e *EventEmitter) EmitAssistantStreamStart(model string) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&AssistantStreamStartEvent{
		BaseEvent: e.createBaseEvent(EventAssistantStreamStart),
		Model:     model,
	})
}

// EmitAssistantStreamChunk emits a chunk of streamed text
func (e *EventEmitter) EmitAssistantStreamChunk(content string) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&AssistantStreamChunkEvent{
		BaseEvent: e.createBaseEvent(EventAssistantStreamChunk),
		Content:   content,
	})
}

// EmitAssistantStreamEnd emits the end of assistant streaming
func (e *EventEmitter) EmitAssistantStreamEnd() error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&AssistantStreamEndEvent{
		BaseEvent: e.createBaseEvent(EventAssistantStreamEnd),
	})
}

// EmitAssistantMessage emits a complete assistant message
func (e *EventEmitter) EmitAssistantMessage(content string, toolCalls []aisdk.ToolCall, model string) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&AssistantMessageEvent{
		BaseEvent: e.createBaseEvent(EventAssistantMessage),
		Content:   content,
		ToolCalls: toolCalls,
		Model:     model,
	})
}

// EmitToolCallRequest emits a tool call request
func (e *EventEmitter) EmitToolCallRequest(toolCall aisdk.ToolCall) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&ToolCallRequestEvent{
		BaseEvent: e.createBaseEvent(EventToolCallRequest),
		ToolCall:  toolCall,
	})
}

// EmitToolCallResponse emits a finished tool call
func (e *EventEmitter) EmitToolCallResponse(toolName, toolID string, response *aisdk.ToolResponse, duration time.Duration) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&ToolCallResponseEvent{
		BaseEvent: e.createBaseEvent(EventToolCallResponse),
		ToolName:  toolName,
		ToolID:    toolID,
		Response:  response,
		Duration:  duration,
	})
}

// EmitError emits an error event
func (e *EventEmitter) EmitError(err error, context string) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&ErrorEvent{
		BaseEvent: e.createBaseEvent(EventError),
		Error:     err,
		Context:   context,
	})
}

// EmitStepComplete emits a step completion event
func (e *EventEmitter) EmitStepComplete(state ExecutionState) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&StepCompleteEvent{
		BaseEvent: e.createBaseEvent(EventStepComplete),
		State:     state,
	})
}

// EmitTurnComplete emits a turn completion event
func (e *EventEmitter) EmitTurnComplete(reason string, totalSteps int) error {
	if e.sink == nil {
		return nil
	}

	return e.sink.Send(&TurnCompleteEvent{
		BaseEvent:  e.createBaseEvent(EventTurnComplete),
		Reason:     reason,
		TotalSteps: totalSteps,
	})
}
