package tools

import (
	"context"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

// UpdateTaskName is the tool name exposed to the model.
const UpdateTaskName = "updateTask"

const updateTaskPrompt = `Update a task (change status, title, or priority)`

// UpdateTaskChanges lists the updatable fields. A null field means
// "keep unchanged"; sending every field as null is a valid no-op.
type UpdateTaskChanges struct {
	Status   *string `json:"status" enum:"pending,completed" description:"New status. Use null to keep unchanged."`
	Title    *string `json:"title" description:"New title. Use null to keep unchanged."`
	Priority *string `json:"priority" enum:"low,medium,high" description:"New priority. Use null to keep unchanged."`
}

// UpdateTaskInput are the parameters for updateTask.
type UpdateTaskInput struct {
	ID      string            `json:"id" required:"true" description:"The ID of the task to update"`
	Updates UpdateTaskChanges `json:"updates" required:"true"`
}

// UpdateTaskOutput is the result of updateTask. Success is false when
// the id does not resolve to an existing task.
type UpdateTaskOutput struct {
	Success bool            `json:"success"`
	Task    *taskstore.Task `json:"task,omitempty"`
}

// UpdateTaskTool returns the updateTask tool definition.
func UpdateTaskTool(svc *taskservice.Service) (agent.Tool, error) {
	return agent.NewGenericTool(UpdateTaskName, updateTaskPrompt,
		func(ctx context.Context, input UpdateTaskInput) (UpdateTaskOutput, error) {
			update := taskservice.UpdateTaskInput{
				Title: input.Updates.Title,
			}
			if input.Updates.Status != nil {
				status := taskstore.Status(*input.Updates.Status)
				update.Status = &status
			}
			if input.Updates.Priority != nil {
				priority := taskstore.Priority(*input.Updates.Priority)
				update.Priority = &priority
			}

			task, err := svc.Update(ctx, input.ID, update)
			if err != nil {
				return UpdateTaskOutput{}, err
			}
			return UpdateTaskOutput{Success: task != nil, Task: task}, nil
		})
}
