package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/elee1766/taskdeck/src/chatstream"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

// TasksCmd manages tasks directly, without the assistant.
type TasksCmd struct {
	List TasksListCmd   `cmd:"" help:"List all tasks"`
	Add  TasksAddCmd    `cmd:"" help:"Add a task"`
	Done TasksDoneCmd   `cmd:"" help:"Mark a task completed"`
	Rm   TasksDeleteCmd `cmd:"" help:"Delete a task"`
}

// TasksListCmd lists all tasks.
type TasksListCmd struct{}

func (t *TasksListCmd) Run(cli *CLI) error {
	a, err := buildApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.Tasks.List(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(chatstream.NewRenderer().RenderTaskList(tasks))
	return nil
}

// TasksAddCmd adds a task.
type TasksAddCmd struct {
	Title    []string `arg:"" help:"Task title"`
	Due      string   `help:"Due date (YYYY-MM-DD)"`
	Priority string   `help:"Priority (low, medium, high)"`
}

func (t *TasksAddCmd) Run(cli *CLI) error {
	a, err := buildApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	in := taskservice.CreateTaskInput{Title: strings.Join(t.Title, " ")}
	if t.Due != "" {
		due, err := taskservice.ParseDueDate(t.Due)
		if err != nil {
			return err
		}
		in.DueDate = due
	}
	if t.Priority != "" {
		in.Priority = taskstore.Priority(t.Priority)
	}

	task, err := a.Tasks.Create(context.Background(), in)
	if err != nil {
		return err
	}
	fmt.Println(chatstream.NewRenderer().RenderTask(*task))
	return nil
}

// TasksDoneCmd marks a task completed.
type TasksDoneCmd struct {
	ID string `arg:"" help:"Task id"`
}

func (t *TasksDoneCmd) Run(cli *CLI) error {
	a, err := buildApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	status := taskstore.StatusCompleted
	task, err := a.Tasks.Update(context.Background(), t.ID, taskservice.UpdateTaskInput{Status: &status})
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task %s not found", t.ID)
	}
	fmt.Println(chatstream.NewRenderer().RenderTask(*task))
	return nil
}

// TasksDeleteCmd deletes a task.
type TasksDeleteCmd struct {
	ID string `arg:"" help:"Task id"`
}

func (t *TasksDeleteCmd) Run(cli *CLI) error {
	a, err := buildApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.Tasks.Delete(context.Background(), t.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("task %s not found", t.ID)
	}
	fmt.Println("deleted", t.ID)
	return nil
}
