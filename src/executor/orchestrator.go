package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/aisdk"
)

// ExecutionState represents the state a step left the turn in
type ExecutionState int

const (
	// StateTextResponse means the model answered in plain text with no tool calls
	StateTextResponse ExecutionState = iota
	// StateToolCallsNeeded means the model requested tool calls
	StateToolCallsNeeded
	// StateToolCallsCompleted means tool calls have been executed and results are ready to send back
	StateToolCallsCompleted
	// StateError means an error occurred during execution
	StateError
)

// StepRequest describes a single model round trip. The caller owns the
// message history and decides whether to continue after each step.
type StepRequest struct {
	// Messages is the conversation so far, without the system prompt.
	Messages []*aisdk.Message

	// ModelClient to use
	ModelClient aisdk.ModelClient

	// Optional toolbox for function calling
	Toolbox *agent.Toolbox

	// Event sink for observing the step
	EventSink EventSink

	// Current step number, starting at 1
	StepNumber int
}

// StepResult represents the result of a single model round trip
type StepResult struct {
	// The state after this step
	State ExecutionState

	// The assembled assistant message
	Message *aisdk.Message

	// Tool calls that need to be executed (if State == StateToolCallsNeeded)
	ToolCalls []aisdk.ToolCall

	// Tool results to send back to the model (if State == StateToolCallsCompleted)
	ToolResults []*aisdk.Message

	// Error information (if State == StateError)
	Error error
}

// Step performs one streaming model call and assembles the response.
// Upstream failures are returned in the result; there is no retry.
func (s *Service) Step(ctx context.Context, req *StepRequest) (*StepResult, error) {
	if req.ModelClient == nil {
		return &StepResult{State: StateError, Error: ErrModelClientRequired}, nil
	}
	if len(req.Messages) == 0 {
		return &StepResult{State: StateError, Error: ErrMessagesRequired}, nil
	}

	emitter := NewEventEmitter(req.EventSink, req.StepNumber)

	messages := req.Messages
	if s.systemPrompt != nil {
		if prompt := s.systemPrompt(); prompt != "" {
			messages = make([]*aisdk.Message, 0, len(req.Messages)+1)
			messages = append(messages, &aisdk.Message{Role: "system", Content: prompt})
			messages = append(messages, req.Messages...)
		}
	}

	chatReq := &aisdk.ChatCompletionRequest{
		Messages: messages,
	}
	if req.Toolbox != nil {
		chatReq.Tools = agent.ToChatTools(req.Toolbox.Tools())
	}

	stream, err := req.ModelClient.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		emitter.EmitError(err, "CreateChatCompletionStream")
		return &StepResult{State: StateError, Error: err}, nil
	}
	defer stream.Close()

	emitter.EmitAssistantStreamStart(req.ModelClient.ModelID())

	// The stream is drained through a channel so cancellation can
	// interrupt a stalled read; closing the stream unblocks the reader.
	acc := aisdk.NewStreamAccumulator()
	results := aisdk.StreamToChannel(stream)
drain:
	for {
		select {
		case <-ctx.Done():
			emitter.EmitError(ctx.Err(), "stream")
			return &StepResult{State: StateError, Error: ctx.Err()}, nil
		case result, ok := <-results:
			if !ok {
				break drain
			}
			if result.Error != nil {
				emitter.EmitError(result.Error, "stream")
				return &StepResult{State: StateError, Error: result.Error}, nil
			}
			if delta := acc.AddChunk(result.Chunk); delta != "" {
				emitter.EmitAssistantStreamChunk(delta)
			}
		}
	}

	emitter.EmitAssistantStreamEnd()

	response := acc.Message()
	emitter.EmitAssistantMessage(response.Content, response.ToolCalls, req.ModelClient.ModelID())

	if len(response.ToolCalls) > 0 {
		return &StepResult{
			State:     StateToolCallsNeeded,
			Message:   response,
			ToolCalls: response.ToolCalls,
		}, nil
	}

	return &StepResult{
		State:   StateTextResponse,
		Message: response,
	}, nil
}

// ToolExecutionRequest represents a request to execute tool calls
type ToolExecutionRequest struct {
	// Tool calls to execute, in the order the model requested them
	ToolCalls []aisdk.ToolCall

	// Toolbox to use for execution
	Toolbox *agent.Toolbox

	// Event sink for observing execution
	EventSink EventSink

	// Current step number
	StepNumber int
}

// ExecuteToolCalls executes the given tool calls sequentially and
// returns role "tool" messages ready to send back to the model. A
// failing call never aborts the batch: the failure is converted into an
// error-flavored result so the model can react to it.
func (s *Service) ExecuteToolCalls(ctx context.Context, req *ToolExecutionRequest) (*StepResult, error) {
	emitter := NewEventEmitter(req.EventSink, req.StepNumber)

	toolResults := make([]*aisdk.Message, 0, len(req.ToolCalls))
	for i := range req.ToolCalls {
		toolCall := req.ToolCalls[i]

		if err := ctx.Err(); err != nil {
			return &StepResult{State: StateError, Error: err, ToolResults: toolResults}, nil
		}

		s.logger.Debug("executing tool", "name", toolCall.Function.Name, "id", toolCall.ID)
		emitter.EmitToolCallRequest(toolCall)

		response := s.executeOne(ctx, req.Toolbox, &toolCall, emitter)

		toolResults = append(toolResults, &aisdk.Message{
			Role:       "tool",
			Content:    string(response.Content),
			Name:       toolCall.Function.Name,
			ToolCallID: toolCall.ID,
		})
	}

	return &StepResult{
		State:       StateToolCallsCompleted,
		ToolResults: toolResults,
	}, nil
}

func (s *Service) executeOne(ctx context.Context, toolbox *agent.Toolbox, toolCall *aisdk.ToolCall, emitter *EventEmitter) *aisdk.ToolResponse {
	start := time.Now()

	var response *aisdk.ToolResponse
	switch {
	case toolbox == nil:
		response = errorToolResponse("tool execution not available: no toolbox configured")
	case !toolbox.HasTool(toolCall.Function.Name):
		response = errorToolResponse(fmt.Sprintf("tool not found: %s", toolCall.Function.Name))
	default:
		result, err := toolbox.ExecuteTool(ctx, toolCall)
		if err != nil {
			response = errorToolResponse(fmt.Sprintf("tool execution failed: %s", err))
		} else {
			response = result
		}
	}

	duration := time.Since(start)
	if response.IsError {
		s.logger.Warn("tool call failed", "name", toolCall.Function.Name, "id", toolCall.ID, "duration_ms", duration.Milliseconds())
	}
	emitter.EmitToolCallResponse(toolCall.Function.Name, toolCall.ID, response, duration)

	return response
}

func errorToolResponse(msg string) *aisdk.ToolResponse {
	return &aisdk.ToolResponse{
		Type:    "error",
		Content: []byte(msg),
		IsError: true,
	}
}
