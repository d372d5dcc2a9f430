package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elee1766/taskdeck/src/aisdk"
	"github.com/elee1766/taskdeck/src/chatstream"
	"github.com/elee1766/taskdeck/src/executor"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

// handleChat runs one assistant turn and streams its events as
// newline-delimited JSON. Failures before the first byte (bad body,
// missing credential) are plain 500 responses; failures mid-stream are
// embedded as error events.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusInternalServerError, "messages are required")
		return
	}
	if s.model == nil || s.exec == nil {
		writeError(w, http.StatusInternalServerError, "model credential not configured")
		return
	}

	messages := make([]*aisdk.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, &aisdk.Message{Role: m.Role, Content: m.Content})
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")

	// Events fan out through a buffered channel so encoding to a slow
	// client never blocks the turn loop. Close drains the channel
	// before the handler returns.
	sink := executor.NewChannelEventSink(64, chatstream.NewEncoderSink(chatstream.NewEncoder(w)))
	defer sink.Close()

	// The request context cancels the loop when the client disconnects.
	result, err := s.exec.RunTurn(r.Context(), &executor.TurnRequest{
		Messages:    messages,
		ModelClient: s.model,
		Toolbox:     s.toolbox,
		EventSink:   sink,
	})
	if err != nil {
		// The error and done events were already emitted through the sink.
		s.logger.Error("chat turn failed", "error", err)
		return
	}

	s.logger.Info("chat turn complete", "steps", result.Steps, "stop_reason", result.StopReason)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tasks == nil {
		tasks = []taskstore.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

type createTaskRequest struct {
	Title    string  `json:"title"`
	DueDate  *string `json:"dueDate,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := taskservice.CreateTaskInput{Title: req.Title}
	if req.DueDate != nil {
		due, err := taskservice.ParseDueDate(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.DueDate = due
	}
	if req.Priority != nil {
		in.Priority = taskstore.Priority(*req.Priority)
	}

	task, err := s.tasks.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, taskservice.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	ID      string `json:"id"`
	Updates struct {
		Title    *string `json:"title,omitempty"`
		Status   *string `json:"status,omitempty"`
		Priority *string `json:"priority,omitempty"`
		DueDate  *string `json:"dueDate,omitempty"`
	} `json:"updates"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in taskservice.UpdateTaskInput
	in.Title = req.Updates.Title
	if req.Updates.Status != nil {
		status := taskstore.Status(*req.Updates.Status)
		in.Status = &status
	}
	if req.Updates.Priority != nil {
		priority := taskstore.Priority(*req.Updates.Priority)
		in.Priority = &priority
	}
	if req.Updates.DueDate != nil {
		due, err := taskservice.ParseDueDate(*req.Updates.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.DueDate = due
	}

	task, err := s.tasks.Update(r.Context(), req.ID, in)
	if err != nil {
		if errors.Is(err, taskservice.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type deleteTaskRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	var req deleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ok, err := s.tasks.Delete(r.Context(), req.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": ok, "id": req.ID})
}
