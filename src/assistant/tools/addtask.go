package tools

import (
	"context"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

// AddTaskName is the tool name exposed to the model.
const AddTaskName = "addTask"

const addTaskPrompt = `Add a new task to the task list`

// AddTaskInput are the parameters for addTask. Null dueDate or
// priority means "not specified".
type AddTaskInput struct {
	Title    string  `json:"title" required:"true" description:"The title of the task"`
	DueDate  *string `json:"dueDate" description:"ISO date string for the due date, e.g. 2026-02-13. Use null if not specified."`
	Priority *string `json:"priority" enum:"low,medium,high" description:"Priority level. Use null to default to medium."`
}

// AddTaskOutput is the result of addTask.
type AddTaskOutput struct {
	Success bool           `json:"success"`
	Task    taskstore.Task `json:"task"`
}

// AddTaskTool returns the addTask tool definition.
func AddTaskTool(svc *taskservice.Service) (agent.Tool, error) {
	return agent.NewGenericTool(AddTaskName, addTaskPrompt,
		func(ctx context.Context, input AddTaskInput) (AddTaskOutput, error) {
			create := taskservice.CreateTaskInput{Title: input.Title}

			if input.DueDate != nil && *input.DueDate != "" {
				due, err := parseDueDate(*input.DueDate)
				if err != nil {
					return AddTaskOutput{}, err
				}
				create.DueDate = due
			}
			if input.Priority != nil && *input.Priority != "" {
				create.Priority = taskstore.Priority(*input.Priority)
			}

			task, err := svc.Create(ctx, create)
			if err != nil {
				return AddTaskOutput{}, err
			}
			return AddTaskOutput{Success: true, Task: *task}, nil
		})
}
