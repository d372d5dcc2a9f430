package oaiclient

import (
	"context"

	"github.com/elee1766/taskdeck/src/aisdk"
)

var _ aisdk.ModelClient = (*ModelClient)(nil)

// ModelClient represents a client bound to a specific model.
type ModelClient struct {
	client *Client
	model  string
}

// CreateChatCompletion creates a chat completion with the bound model.
func (mc *ModelClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	req.Model = mc.model
	return mc.client.createChatCompletion(ctx, req)
}

// CreateChatCompletionStream creates a streaming chat completion with
// the bound model.
func (mc *ModelClient) CreateChatCompletionStream(ctx context.Context, req *aisdk.ChatCompletionRequest) (aisdk.StreamInterface, error) {
	req.Model = mc.model
	return mc.client.createChatCompletionStream(ctx, req)
}

// ModelID returns the bound model name.
func (mc *ModelClient) ModelID() string {
	return mc.model
}
