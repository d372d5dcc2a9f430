package executor

import "errors"

var (
	// Config validation errors
	ErrModelClientRequired = errors.New("model client is required")
	ErrMessagesRequired    = errors.New("at least one message is required")
)
