package tools

import (
	"context"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/taskservice"
)

// DeleteTaskName is the tool name exposed to the model.
const DeleteTaskName = "deleteTask"

const deleteTaskPrompt = `Delete a task from the task list`

// DeleteTaskInput are the parameters for deleteTask.
type DeleteTaskInput struct {
	ID string `json:"id" required:"true" description:"The ID of the task to delete"`
}

// DeleteTaskOutput is the result of deleteTask. Success is false when
// no task with the given id existed.
type DeleteTaskOutput struct {
	Success bool `json:"success"`
}

// DeleteTaskTool returns the deleteTask tool definition.
func DeleteTaskTool(svc *taskservice.Service) (agent.Tool, error) {
	return agent.NewGenericTool(DeleteTaskName, deleteTaskPrompt,
		func(ctx context.Context, input DeleteTaskInput) (DeleteTaskOutput, error) {
			ok, err := svc.Delete(ctx, input.ID)
			if err != nil {
				return DeleteTaskOutput{}, err
			}
			return DeleteTaskOutput{Success: ok}, nil
		})
}
