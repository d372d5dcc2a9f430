// Package agent provides the tool abstraction the orchestration loop
// dispatches against: a Tool interface, a Toolbox registry with
// middleware, and a generic type-safe tool constructor that reflects a
// JSON schema from its input struct.
package agent

import (
	"context"

	"github.com/elee1766/taskdeck/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// Tool is the interface that all tools must implement.
type Tool interface {
	// GetName returns the tool's name as exposed to the model.
	GetName() string

	// GetDescription returns the tool's description.
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters.
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given call's arguments.
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}

// ToChatTool converts a Tool to the ChatTool shape for API requests.
func ToChatTool(tool Tool) *aisdk.ChatTool {
	return &aisdk.ChatTool{
		Type: "function",
		Function: aisdk.ChatToolFunction{
			Name:        tool.GetName(),
			Description: tool.GetDescription(),
			Parameters:  tool.GetParameters(),
		},
	}
}

// ToChatTools converts a slice of Tools to ChatTools.
func ToChatTools(tools []Tool) []*aisdk.ChatTool {
	chatTools := make([]*aisdk.ChatTool, len(tools))
	for i, tool := range tools {
		chatTools[i] = ToChatTool(tool)
	}
	return chatTools
}
