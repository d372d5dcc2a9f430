package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/elee1766/taskdeck/src/aisdk"
	"github.com/elee1766/taskdeck/src/chatstream"
	"github.com/elee1766/taskdeck/src/executor"
)

// ChatCmd sends a single message to the assistant and renders the
// response in the terminal.
type ChatCmd struct {
	Text []string `arg:"" help:"The message to send"`
}

func (c *ChatCmd) Run(cli *CLI) error {
	a, err := buildApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Model == nil {
		return fmt.Errorf("OPENAI_API_KEY is required for chat")
	}

	term := &terminalSink{rec: chatstream.NewReconciler()}
	sink := executor.NewChannelEventSink(64, term)

	_, err = a.Executor.RunTurn(context.Background(), &executor.TurnRequest{
		Messages: []*aisdk.Message{
			{Role: "user", Content: strings.Join(c.Text, " ")},
		},
		ModelClient: a.Model,
		Toolbox:     a.Toolbox,
		EventSink:   sink,
	})
	// Drain buffered events before reading the reconciled parts.
	closeErr := sink.Close()
	fmt.Println()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	// Text was already streamed; render the tool invocations as cards.
	renderer := chatstream.NewRenderer()
	var toolParts chatstream.Parts
	for _, part := range term.rec.Parts() {
		if tool, ok := part.(chatstream.ToolPart); ok {
			toolParts = append(toolParts, tool)
		}
	}
	if rendered := renderer.RenderParts(toolParts); rendered != "" {
		fmt.Println(rendered)
	}
	return nil
}

// terminalSink prints text deltas as they stream and feeds everything
// into a reconciler for rendering once the turn ends. It runs as a
// processor behind a ChannelEventSink.
type terminalSink struct {
	rec *chatstream.Reconciler
}

func (s *terminalSink) Process(event executor.TurnEvent) error {
	wire, ok := chatstream.FromTurnEvent(event)
	if !ok {
		return nil
	}
	if wire.Type == chatstream.EventTextDelta {
		fmt.Fprint(os.Stdout, wire.Text)
	}
	s.rec.Apply(wire)
	return nil
}

func (s *terminalSink) Close() error { return nil }
