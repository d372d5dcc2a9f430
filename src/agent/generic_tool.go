package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/elee1766/taskdeck/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// GenericToolHandler is a type-safe handler function.
type GenericToolHandler[TInput any, TOutput any] func(ctx context.Context, input TInput) (TOutput, error)

// GenericTool is a type-safe tool whose parameter schema is reflected
// from its input struct. Argument parse failures, missing required
// fields, and handler errors all become ToolResponse{IsError: true}
// with a nil Go error: a bad call fails that call, not the turn.
type GenericTool[TInput any, TOutput any] struct {
	name        string
	description string
	schema      *jsonschema.Schema
	handler     GenericToolHandler[TInput, TOutput]
}

// NewGenericTool creates a tool with automatic schema generation.
func NewGenericTool[TInput any, TOutput any](name, description string, handler GenericToolHandler[TInput, TOutput]) (Tool, error) {
	var input TInput
	inputType := reflect.TypeOf(input)
	if inputType.Kind() == reflect.Ptr {
		inputType = inputType.Elem()
	}
	if inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Kind())
	}

	reflector := jsonschema.Reflector{}
	schema, err := reflector.Reflect(input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	return &GenericTool[TInput, TOutput]{
		name:        name,
		description: description,
		schema:      &schema,
		handler:     handler,
	}, nil
}

// MustNewGenericTool creates a new generic tool and panics on error.
func MustNewGenericTool[TInput any, TOutput any](name, description string, handler GenericToolHandler[TInput, TOutput]) Tool {
	tool, err := NewGenericTool(name, description, handler)
	if err != nil {
		panic(fmt.Sprintf("failed to create generic tool: %v", err))
	}
	return tool
}

// GetName implements Tool.
func (gt *GenericTool[TInput, TOutput]) GetName() string { return gt.name }

// GetDescription implements Tool.
func (gt *GenericTool[TInput, TOutput]) GetDescription() string { return gt.description }

// GetParameters implements Tool.
func (gt *GenericTool[TInput, TOutput]) GetParameters() *jsonschema.Schema { return gt.schema }

// Execute implements Tool.
func (gt *GenericTool[TInput, TOutput]) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	var input TInput
	if err := json.Unmarshal(call.Function.Arguments, &input); err != nil {
		return errorResponse(fmt.Sprintf("failed to parse input: %v", err)), nil
	}

	if err := gt.validateRequired(call.Function.Arguments); err != nil {
		return errorResponse(fmt.Sprintf("validation failed: %v", err)), nil
	}

	output, err := gt.handler(ctx, input)
	if err != nil {
		return errorResponse(err.Error()), nil
	}

	content, err := json.Marshal(output)
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return &aisdk.ToolResponse{
		Type:    "success",
		Content: content,
	}, nil
}

// validateRequired checks that every schema-required field is present
// in the raw arguments. Presence is judged on the JSON itself, so an
// object whose members are all null still counts as provided; only an
// absent or explicitly null required field is rejected.
func (gt *GenericTool[TInput, TOutput]) validateRequired(args json.RawMessage) error {
	if gt.schema == nil || len(gt.schema.Required) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(args, &fields); err != nil {
		return fmt.Errorf("arguments must be a JSON object: %v", err)
	}

	for _, requiredField := range gt.schema.Required {
		raw, ok := fields[requiredField]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("required field '%s' is missing", requiredField)
		}
	}
	return nil
}

func errorResponse(msg string) *aisdk.ToolResponse {
	return &aisdk.ToolResponse{
		Type:    "error",
		Content: []byte(msg),
		IsError: true,
	}
}

var _ Tool = (*GenericTool[struct{}, struct{}])(nil)
