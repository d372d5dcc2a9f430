package tools

import (
	"context"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

// GetTasksName is the tool name exposed to the model.
const GetTasksName = "getTasks"

const getTasksPrompt = `Get all tasks from the task list. Use this to find task IDs before updating or deleting.`

// GetTasksInput has no parameters.
type GetTasksInput struct{}

// GetTasksOutput is the full current task list.
type GetTasksOutput struct {
	Tasks []taskstore.Task `json:"tasks" description:"All tasks in the list"`
}

// GetTasksTool returns the getTasks tool definition.
func GetTasksTool(svc *taskservice.Service) (agent.Tool, error) {
	return agent.NewGenericTool(GetTasksName, getTasksPrompt,
		func(ctx context.Context, input GetTasksInput) (GetTasksOutput, error) {
			tasks, err := svc.List(ctx)
			if err != nil {
				return GetTasksOutput{}, err
			}
			if tasks == nil {
				tasks = []taskstore.Task{}
			}
			return GetTasksOutput{Tasks: tasks}, nil
		})
}
