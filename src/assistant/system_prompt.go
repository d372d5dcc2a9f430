// Package assistant wires the task tools and system instruction that
// turn a generic tool-calling loop into a task management assistant.
package assistant

import (
	"fmt"
	"time"
)

const systemPromptTemplate = `You are a helpful task management assistant. You help users manage their task list.
When adding a task, extract the title, due date, and priority from the user's message.
When listing tasks, ALWAYS use the getTasks tool - the UI will render results as visual cards automatically.
When marking a task done, first use getTasks to find the task by title, then use updateTask with the ID.
When deleting a task, first use getTasks to find the task by title, then use deleteTask with the ID.
Keep your text responses brief when a tool result is being shown - the UI renders task data visually.
Always confirm your actions to the user.
Today's date is %s.`

// SystemPrompt builds the assistant instruction. Today's date is
// injected per request so relative dates like "tomorrow" resolve
// consistently on the model side.
func SystemPrompt(today time.Time) string {
	return fmt.Sprintf(systemPromptTemplate, today.Format("2006-01-02"))
}
