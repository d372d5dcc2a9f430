package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/taskdeck/src/aisdk"
)

type echoInput struct {
	Text string `json:"text" required:"true" description:"Text to echo"`
}

type echoOutput struct {
	Echo string `json:"echo"`
}

func newEchoTool(t *testing.T) Tool {
	t.Helper()
	tool, err := NewGenericTool("echo", "Echo the input text",
		func(ctx context.Context, in echoInput) (echoOutput, error) {
			return echoOutput{Echo: in.Text}, nil
		})
	require.NoError(t, err)
	return tool
}

func callFor(name, args string) *aisdk.ToolCall {
	return &aisdk.ToolCall{
		ID:   "call_1",
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      name,
			Arguments: json.RawMessage(args),
		},
	}
}

func TestGenericToolSchema(t *testing.T) {
	tool := newEchoTool(t)
	assert.Equal(t, "echo", tool.GetName())

	schema := tool.GetParameters()
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "text")

	chatTool := ToChatTool(tool)
	assert.Equal(t, "function", chatTool.Type)
	assert.Equal(t, "echo", chatTool.Function.Name)
}

func TestGenericToolExecute(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), callFor("echo", `{"text":"hi"}`))
	require.NoError(t, err)
	assert.False(t, resp.IsError)

	var out echoOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "hi", out.Echo)
}

func TestGenericToolFailuresAreResultsNotErrors(t *testing.T) {
	tool := newEchoTool(t)
	failing := MustNewGenericTool("boom", "Always fails",
		func(ctx context.Context, in echoInput) (echoOutput, error) {
			return echoOutput{}, errors.New("store unavailable")
		})

	tests := []struct {
		name string
		tool Tool
		args string
	}{
		{"malformed arguments", tool, `{"text":`},
		{"missing required field", tool, `{}`},
		{"handler error", failing, `{"text":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.tool.Execute(context.Background(), callFor(tt.tool.GetName(), tt.args))
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.True(t, resp.IsError)
			assert.NotEmpty(t, resp.Content)
		})
	}
}

type reviseChanges struct {
	Note *string `json:"note"`
}

type reviseInput struct {
	ID      string        `json:"id" required:"true"`
	Changes reviseChanges `json:"changes" required:"true"`
}

// Required checks are about presence in the arguments, not about the
// decoded value. An object whose members are all null was still
// provided and must reach the handler.
func TestGenericToolRequiredFieldPresence(t *testing.T) {
	tool := MustNewGenericTool("revise", "Revise a record",
		func(ctx context.Context, in reviseInput) (echoOutput, error) {
			return echoOutput{Echo: in.ID}, nil
		})

	tests := []struct {
		name    string
		args    string
		isError bool
	}{
		{"all null members still count as provided", `{"id":"r1","changes":{"note":null}}`, false},
		{"explicit null required field is missing", `{"id":"r1","changes":null}`, true},
		{"absent required field is missing", `{"changes":{"note":null}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tool.Execute(context.Background(), callFor("revise", tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.isError, resp.IsError, string(resp.Content))
		})
	}
}

func TestToolboxRegistration(t *testing.T) {
	tb := NewToolbox()
	tool := newEchoTool(t)

	require.NoError(t, tb.RegisterTool(tool))
	assert.Error(t, tb.RegisterTool(tool), "duplicate registration should fail")

	got, ok := tb.GetTool("echo")
	assert.True(t, ok)
	assert.Equal(t, tool, got)
	assert.True(t, tb.HasTool("echo"))
	assert.False(t, tb.HasTool("nope"))
}

func TestToolboxExecuteUnknownTool(t *testing.T) {
	tb := NewToolbox()
	_, err := tb.ExecuteTool(context.Background(), callFor("ghost", `{}`))
	require.Error(t, err)
}

func TestToolboxMiddlewareOrder(t *testing.T) {
	tb := NewToolbox()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))

	var order []string
	mw := func(name string) ToolMiddleware {
		return func(next ToolExecutor) ToolExecutor {
			return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
				order = append(order, name)
				return next(ctx, call)
			}
		}
	}
	tb.RegisterMiddleware(mw("outer"))
	tb.RegisterMiddleware(mw("inner"))

	_, err := tb.ExecuteTool(context.Background(), callFor("echo", `{"text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
