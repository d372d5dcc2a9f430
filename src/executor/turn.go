package executor

import (
	"context"
	"strings"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/aisdk"
)

// Turn stop reasons.
const (
	StopReasonTextResponse = "text_response"
	StopReasonMaxSteps     = "max_steps"
	StopReasonError        = "error"
)

// TurnRequest describes one user turn to run to completion.
type TurnRequest struct {
	// Messages is the conversation so far, ending with the new user
	// message. The system prompt is injected by the service.
	Messages []*aisdk.Message

	// ModelClient to use
	ModelClient aisdk.ModelClient

	// Optional toolbox for function calling
	Toolbox *agent.Toolbox

	// Event sink for observing the turn
	EventSink EventSink
}

// TurnResult is the outcome of a user turn.
type TurnResult struct {
	// Messages is the full updated history, including assistant and
	// tool messages appended during the turn.
	Messages []*aisdk.Message

	// Answer is the assistant text accumulated across all steps of the
	// turn. On StopReasonMaxSteps it holds whatever was produced before
	// the bound was hit.
	Answer string

	// Steps is the number of model round trips performed.
	Steps int

	// StopReason records why the turn ended.
	StopReason string
}

// RunTurn drives Step and ExecuteToolCalls until the model responds
// with no tool calls, or the step bound is reached. Hitting the bound
// is not an error: the partial answer collected so far is returned with
// StopReasonMaxSteps.
func (s *Service) RunTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error) {
	if req.ModelClient == nil {
		return nil, ErrModelClientRequired
	}
	if len(req.Messages) == 0 {
		return nil, ErrMessagesRequired
	}

	messages := make([]*aisdk.Message, len(req.Messages))
	copy(messages, req.Messages)

	var answer strings.Builder
	steps := 0

	for steps < s.maxSteps {
		steps++

		stepResult, err := s.Step(ctx, &StepRequest{
			Messages:    messages,
			ModelClient: req.ModelClient,
			Toolbox:     req.Toolbox,
			EventSink:   req.EventSink,
			StepNumber:  steps,
		})
		if err != nil {
			return nil, err
		}

		if stepResult.State == StateError {
			NewEventEmitter(req.EventSink, steps).EmitTurnComplete(StopReasonError, steps)
			return &TurnResult{
				Messages:   messages,
				Answer:     answer.String(),
				Steps:      steps,
				StopReason: StopReasonError,
			}, stepResult.Error
		}

		messages = append(messages, stepResult.Message)
		if stepResult.Message.Content != "" {
			answer.WriteString(stepResult.Message.Content)
		}

		if stepResult.State == StateTextResponse {
			s.logger.Debug("turn complete", "steps", steps)
			NewEventEmitter(req.EventSink, steps).EmitTurnComplete(StopReasonTextResponse, steps)
			return &TurnResult{
				Messages:   messages,
				Answer:     answer.String(),
				Steps:      steps,
				StopReason: StopReasonTextResponse,
			}, nil
		}

		execResult, err := s.ExecuteToolCalls(ctx, &ToolExecutionRequest{
			ToolCalls:  stepResult.ToolCalls,
			Toolbox:    req.Toolbox,
			EventSink:  req.EventSink,
			StepNumber: steps,
		})
		if err != nil {
			return nil, err
		}
		if execResult.State == StateError {
			// Context cancellation mid-dispatch. Keep whatever results
			// completed so the history stays coherent.
			messages = append(messages, execResult.ToolResults...)
			NewEventEmitter(req.EventSink, steps).EmitTurnComplete(StopReasonError, steps)
			return &TurnResult{
				Messages:   messages,
				Answer:     answer.String(),
				Steps:      steps,
				StopReason: StopReasonError,
			}, execResult.Error
		}

		messages = append(messages, execResult.ToolResults...)

		NewEventEmitter(req.EventSink, steps).EmitStepComplete(StateToolCallsCompleted)
	}

	s.logger.Warn("step bound reached, returning partial answer", "steps", steps)
	NewEventEmitter(req.EventSink, steps).EmitTurnComplete(StopReasonMaxSteps, steps)
	return &TurnResult{
		Messages:   messages,
		Answer:     answer.String(),
		Steps:      steps,
		StopReason: StopReasonMaxSteps,
	}, nil
}
