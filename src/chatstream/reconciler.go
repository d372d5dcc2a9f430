package chatstream

// Reconciler folds a stream of events into an ordered part list.
// Contiguous text deltas merge into a single TextPart; tool calls
// appear as pending ToolParts and flip to result in place when the
// matching tool-result arrives. Events after done are ignored.
type Reconciler struct {
	texts []*TextPart
	tools []*ToolPart
	order []MessagePart // points into texts/tools, arrival order

	toolByID map[string]*ToolPart
	lastText *TextPart

	err    string
	done   bool
	reason string
}

// NewReconciler creates an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{
		toolByID: make(map[string]*ToolPart),
	}
}

// Apply folds one event into the part list.
func (r *Reconciler) Apply(event Event) {
	if r.done {
		return
	}

	switch event.Type {
	case EventTextDelta:
		if event.Text == "" {
			return
		}
		if r.lastText != nil {
			r.lastText.Text += event.Text
			return
		}
		part := &TextPart{Text: event.Text}
		r.texts = append(r.texts, part)
		r.lastText = part
		r.order = append(r.order, part)

	case EventToolCall:
		if _, exists := r.toolByID[event.ID]; exists {
			return
		}
		part := &ToolPart{
			ID:       event.ID,
			ToolName: event.ToolName,
			State:    ToolStatePending,
			Args:     event.Args,
		}
		r.tools = append(r.tools, part)
		r.toolByID[event.ID] = part
		r.order = append(r.order, part)
		// A tool call breaks the current text run.
		r.lastText = nil

	case EventToolResult:
		part, exists := r.toolByID[event.ID]
		if !exists || part.State == ToolStateResult {
			return
		}
		part.State = ToolStateResult
		part.Result = event.Result

	case EventError:
		r.err = event.Message

	case EventDone:
		r.done = true
		r.reason = event.Reason
	}
}

// Parts returns the current part list in arrival order.
func (r *Reconciler) Parts() Parts {
	out := make(Parts, 0, len(r.order))
	for _, p := range r.order {
		switch part := p.(type) {
		case *TextPart:
			out = append(out, *part)
		case *ToolPart:
			out = append(out, *part)
		}
	}
	return out
}

// Err returns the message of the last error event, if any.
func (r *Reconciler) Err() string {
	return r.err
}

// Done reports whether the stream has ended.
func (r *Reconciler) Done() bool {
	return r.done
}

// Reason returns the done event's reason, if the stream has ended.
func (r *Reconciler) Reason() string {
	return r.reason
}
