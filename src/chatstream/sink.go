package chatstream

import (
	"encoding/json"

	"github.com/elee1766/taskdeck/src/executor"
)

// FromTurnEvent translates an executor event into its wire event. The
// second return is false for events with no wire representation.
func FromTurnEvent(event executor.TurnEvent) (Event, bool) {
	switch e := event.(type) {
	case *executor.AssistantStreamChunkEvent:
		return TextDelta(e.Content), true

	case *executor.ToolCallRequestEvent:
		return ToolCall(e.ToolCall.ID, e.ToolCall.Function.Name, e.ToolCall.Function.Arguments), true

	case *executor.ToolCallResponseEvent:
		return ToolResult(e.ToolID, e.ToolName, resultPayload(e.Response.Content)), true

	case *executor.ErrorEvent:
		return ErrorEvent(e.Error.Error()), true

	case *executor.TurnCompleteEvent:
		return Done(e.Reason), true
	}
	return Event{}, false
}

// EncoderSink adapts an Encoder to the executor's event sink, turning
// turn events into wire events as they happen. Encode failures are
// surfaced so the loop can stop streaming to a dead client.
type EncoderSink struct {
	enc *Encoder
}

var (
	_ executor.EventSink      = (*EncoderSink)(nil)
	_ executor.EventProcessor = (*EncoderSink)(nil)
)

// NewEncoderSink creates a sink writing to enc.
func NewEncoderSink(enc *Encoder) *EncoderSink {
	return &EncoderSink{enc: enc}
}

// Send translates one turn event onto the wire. Events with no wire
// representation are dropped.
func (s *EncoderSink) Send(event executor.TurnEvent) error {
	wire, ok := FromTurnEvent(event)
	if !ok {
		return nil
	}
	return s.enc.Encode(wire)
}

// Process implements executor.EventProcessor, so the sink can also sit
// behind a ChannelEventSink fan-out.
func (s *EncoderSink) Process(event executor.TurnEvent) error {
	return s.Send(event)
}

// Close implements executor.EventSink.
func (s *EncoderSink) Close() error {
	return nil
}

// resultPayload keeps valid JSON tool output structured on the wire
// and quotes anything else as a JSON string.
func resultPayload(content []byte) json.RawMessage {
	if json.Valid(content) {
		return json.RawMessage(content)
	}
	quoted, err := json.Marshal(string(content))
	if err != nil {
		return json.RawMessage(`""`)
	}
	return json.RawMessage(quoted)
}
