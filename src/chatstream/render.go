package chatstream

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elee1766/taskdeck/src/taskstore"
	"github.com/elee1766/taskdeck/src/theme"
)

// Renderer renders reconciled message parts for the terminal.
type Renderer struct {
	text    lipgloss.Style
	card    lipgloss.Style
	title   lipgloss.Style
	meta    lipgloss.Style
	action  lipgloss.Style
	confirm lipgloss.Style
	failed  lipgloss.Style
}

// NewRenderer creates a renderer using the current theme.
func NewRenderer() *Renderer {
	palette := theme.CurrentTheme
	return &Renderer{
		text: lipgloss.NewStyle().Foreground(palette.Text),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(palette.Text),
		meta:    lipgloss.NewStyle().Foreground(palette.TextMuted),
		action:  lipgloss.NewStyle().Bold(true).Foreground(palette.Primary),
		confirm: lipgloss.NewStyle().Foreground(palette.Success),
		failed:  lipgloss.NewStyle().Foreground(palette.Danger),
	}
}

// RenderParts renders the parts in order, one block per line.
func (r *Renderer) RenderParts(parts Parts) string {
	var blocks []string
	for _, part := range parts {
		switch p := part.(type) {
		case TextPart:
			if p.Text != "" {
				blocks = append(blocks, r.text.Render(p.Text))
			}
		case ToolPart:
			if rendered := r.renderTool(p); rendered != "" {
				blocks = append(blocks, rendered)
			}
		}
	}
	return strings.Join(blocks, "\n")
}

func (r *Renderer) renderTool(part ToolPart) string {
	if part.State != ToolStateResult {
		return r.meta.Render(fmt.Sprintf("… %s", part.ToolName))
	}

	switch part.ToolName {
	case "getTasks":
		var out struct {
			Tasks []taskstore.Task `json:"tasks"`
		}
		if err := json.Unmarshal(part.Result, &out); err != nil {
			return ""
		}
		return r.RenderTaskList(out.Tasks)

	case "addTask", "updateTask":
		var out struct {
			Success bool            `json:"success"`
			Task    *taskstore.Task `json:"task"`
		}
		if err := json.Unmarshal(part.Result, &out); err != nil {
			return ""
		}
		label := "Added"
		if part.ToolName == "updateTask" {
			label = "Updated"
		}
		if !out.Success || out.Task == nil {
			return r.failed.Render(fmt.Sprintf("✗ %s failed", part.ToolName))
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			r.action.Render(label),
			r.taskCard(*out.Task),
		)

	case "deleteTask":
		var out struct {
			Success bool `json:"success"`
		}
		if err := json.Unmarshal(part.Result, &out); err != nil {
			return ""
		}
		if !out.Success {
			return r.failed.Render("✗ delete failed")
		}
		return r.confirm.Render("✓ Task deleted")
	}

	return ""
}

// RenderTaskList renders one card per task.
func (r *Renderer) RenderTaskList(tasks []taskstore.Task) string {
	if len(tasks) == 0 {
		return r.meta.Render("No tasks.")
	}
	cards := make([]string, 0, len(tasks))
	for _, task := range tasks {
		cards = append(cards, r.taskCard(task))
	}
	return strings.Join(cards, "\n")
}

// RenderTask renders a single task card.
func (r *Renderer) RenderTask(task taskstore.Task) string {
	return r.taskCard(task)
}

func (r *Renderer) taskCard(task taskstore.Task) string {
	meta := []string{string(task.Status)}
	if task.Priority != "" {
		meta = append(meta, string(task.Priority))
	}
	if task.DueDate != nil {
		meta = append(meta, "due "+task.DueDate.Format("2006-01-02"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		r.title.Render(task.Title),
		r.meta.Render(strings.Join(meta, " · ")),
	)
	return r.card.Render(body)
}
