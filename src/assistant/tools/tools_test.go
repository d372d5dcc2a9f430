package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/taskdeck/src/aisdk"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

func newFixture(t *testing.T) (*taskservice.Service, *taskstore.MemoryStore) {
	t.Helper()
	store := taskstore.NewMemoryStore()
	return taskservice.New(store, nil), store
}

func execute(t *testing.T, tool interface {
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}, args string) *aisdk.ToolResponse {
	t.Helper()
	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		ID:       "call_1",
		Type:     "function",
		Function: aisdk.FunctionCall{Arguments: json.RawMessage(args)},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestNewToolboxRegistersAllTools(t *testing.T) {
	svc, _ := newFixture(t)
	tb, err := NewToolbox(svc, nil)
	require.NoError(t, err)

	for _, name := range []string{GetTasksName, AddTaskName, UpdateTaskName, DeleteTaskName} {
		assert.True(t, tb.HasTool(name), "missing tool %s", name)
	}
	assert.Len(t, tb.Tools(), 4)
}

func TestAddTask(t *testing.T) {
	svc, store := newFixture(t)
	tool, err := AddTaskTool(svc)
	require.NoError(t, err)

	t.Run("full arguments", func(t *testing.T) {
		resp := execute(t, tool, `{"title":"buy milk","dueDate":"2026-08-29","priority":"high"}`)
		require.False(t, resp.IsError, string(resp.Content))

		var out AddTaskOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.True(t, out.Success)
		assert.Equal(t, "buy milk", out.Task.Title)
		assert.Equal(t, taskstore.PriorityHigh, out.Task.Priority)
		require.NotNil(t, out.Task.DueDate)
		assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), out.Task.DueDate.UTC())
	})

	t.Run("nulls default to medium and no due date", func(t *testing.T) {
		resp := execute(t, tool, `{"title":"plain","dueDate":null,"priority":null}`)
		require.False(t, resp.IsError)

		var out AddTaskOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.Equal(t, taskstore.PriorityMedium, out.Task.Priority)
		assert.Nil(t, out.Task.DueDate)
	})

	t.Run("missing title is a failure result", func(t *testing.T) {
		resp := execute(t, tool, `{"dueDate":null,"priority":null}`)
		assert.True(t, resp.IsError)
	})

	t.Run("garbage due date is a failure result", func(t *testing.T) {
		resp := execute(t, tool, `{"title":"x","dueDate":"next tuesday-ish"}`)
		assert.True(t, resp.IsError)
	})

	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetTasks(t *testing.T) {
	svc, _ := newFixture(t)
	tool, err := GetTasksTool(svc)
	require.NoError(t, err)

	resp := execute(t, tool, `{}`)
	require.False(t, resp.IsError)
	var out GetTasksOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Empty(t, out.Tasks)

	_, err = svc.Create(context.Background(), taskservice.CreateTaskInput{Title: "one"})
	require.NoError(t, err)

	resp = execute(t, tool, `{}`)
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "one", out.Tasks[0].Title)
}

func TestUpdateTask(t *testing.T) {
	svc, _ := newFixture(t)
	tool, err := UpdateTaskTool(svc)
	require.NoError(t, err)

	task, err := svc.Create(context.Background(), taskservice.CreateTaskInput{Title: "todo"})
	require.NoError(t, err)

	t.Run("all null updates is a no-op", func(t *testing.T) {
		resp := execute(t, tool, `{"id":"`+task.ID+`","updates":{"status":null,"title":null,"priority":null}}`)
		require.False(t, resp.IsError, string(resp.Content))

		var out UpdateTaskOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.True(t, out.Success)
		require.NotNil(t, out.Task)
		assert.Equal(t, "todo", out.Task.Title)
		assert.Equal(t, taskstore.StatusPending, out.Task.Status)
		assert.Equal(t, taskstore.PriorityMedium, out.Task.Priority)
	})

	t.Run("null updates keep fields unchanged", func(t *testing.T) {
		resp := execute(t, tool, `{"id":"`+task.ID+`","updates":{"status":"completed","title":null,"priority":null}}`)
		require.False(t, resp.IsError, string(resp.Content))

		var out UpdateTaskOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.True(t, out.Success)
		require.NotNil(t, out.Task)
		assert.Equal(t, taskstore.StatusCompleted, out.Task.Status)
		assert.Equal(t, "todo", out.Task.Title)
	})

	t.Run("unknown id yields success false", func(t *testing.T) {
		resp := execute(t, tool, `{"id":"missing","updates":{"status":"completed","title":null,"priority":null}}`)
		require.False(t, resp.IsError)

		var out UpdateTaskOutput
		require.NoError(t, json.Unmarshal(resp.Content, &out))
		assert.False(t, out.Success)
		assert.Nil(t, out.Task)
	})

	t.Run("invalid enum is a failure result", func(t *testing.T) {
		resp := execute(t, tool, `{"id":"`+task.ID+`","updates":{"status":"archived","title":null,"priority":null}}`)
		assert.True(t, resp.IsError)
	})
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newFixture(t)
	tool, err := DeleteTaskTool(svc)
	require.NoError(t, err)

	task, err := svc.Create(context.Background(), taskservice.CreateTaskInput{Title: "doomed"})
	require.NoError(t, err)

	resp := execute(t, tool, `{"id":"`+task.ID+`"}`)
	require.False(t, resp.IsError)
	var out DeleteTaskOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.True(t, out.Success)

	resp = execute(t, tool, `{"id":"`+task.ID+`"}`)
	require.False(t, resp.IsError)
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.False(t, out.Success)
}
