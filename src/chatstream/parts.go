package chatstream

import (
	"encoding/json"
	"fmt"
)

// ToolState tracks a tool part's lifecycle.
type ToolState string

const (
	ToolStatePending ToolState = "pending"
	ToolStateResult  ToolState = "result"
)

// MessagePart is one ordered element of a reconstructed assistant
// message: either a run of text or a tool invocation.
type MessagePart interface {
	partType() string
}

// TextPart is a run of assistant text.
type TextPart struct {
	Text string `json:"text"`
}

func (TextPart) partType() string { return "text" }

// ToolPart is a tool invocation. It is created pending and transitions
// to result exactly once, when the matching tool-result arrives.
type ToolPart struct {
	ID       string          `json:"id"`
	ToolName string          `json:"toolName"`
	State    ToolState       `json:"state"`
	Args     json.RawMessage `json:"args,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

func (ToolPart) partType() string { return "tool" }

// MarshalJSON adds the type discriminator.
func (p TextPart) MarshalJSON() ([]byte, error) {
	type alias TextPart
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: p.partType(), alias: alias(p)})
}

// MarshalJSON adds the type discriminator.
func (p ToolPart) MarshalJSON() ([]byte, error) {
	type alias ToolPart
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: p.partType(), alias: alias(p)})
}

// Parts is an ordered part list with type-discriminated decoding.
type Parts []MessagePart

// UnmarshalJSON decodes a part list, dispatching on each element's
// "type" field.
func (ps *Parts) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Parts, 0, len(raws))
	for _, raw := range raws {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return err
		}
		switch head.Type {
		case "text":
			var p TextPart
			if err := json.Unmarshal(raw, &p); err != nil {
				return err
			}
			out = append(out, p)
		case "tool":
			var p ToolPart
			if err := json.Unmarshal(raw, &p); err != nil {
				return err
			}
			out = append(out, p)
		default:
			return fmt.Errorf("unknown part type %q", head.Type)
		}
	}
	*ps = out
	return nil
}
