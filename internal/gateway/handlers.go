package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"scout/internal/agent"
	"scout/internal/history"
	"scout/internal/llm"
	"scout/internal/profile"

	"github.com/google/uuid"
)

type researchRequest struct {
	Topic  string `json:"topic"`
	Depth  string `json:"depth"`
	Format string `json:"format"`
	Role   string `json:"role"`
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Topic == "" {
		badRequest(w, "topic is required")
		return
	}

	// Reject unknown depth/format before the stream opens, same as the
	// CLI does; empty means "not requested" and picks up the role
	// default downstream.
	var depth profile.Depth
	if req.Depth != "" {
		d, err := profile.ParseDepth(req.Depth)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		depth = d
	}
	var format profile.Format
	if req.Format != "" {
		f, err := profile.ParseFormat(req.Format)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		format = f
	}

	runID := uuid.NewString()
	sse := NewSSEWriter(w)
	var sentError bool

	run, err := s.runner.Run(r.Context(), runID, agent.Request{
		Topic:  req.Topic,
		Depth:  depth,
		Format: format,
		Role:   req.Role,
	}, func(ev llm.Event) {
		switch ev.Type {
		case llm.EventInit:
			sse.Send("init", ev.Data)
		case llm.EventText:
			sse.Send("text", map[string]any{"content": ev.Data})
		case llm.EventToolUse:
			sse.Send("tool_use", map[string]any{"name": ev.Data})
		case llm.EventResult:
			sse.Send("result", ev.Data)
		case llm.EventError:
			sentError = true
			sse.Send("error", map[string]any{"error": ev.Data})
		case llm.EventDone:
			sse.Send("done", map[string]string{"run_id": runID})
		}
	})

	if err != nil && !sentError {
		sse.Send("error", map[string]string{"error": err.Error()})
	}
	if run != nil && run.Report != "" {
		sse.Send("report", map[string]string{"run_id": run.ID, "markdown": run.Report})
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"archive disabled"}`, http.StatusNotImplemented)
		return
	}
	runs, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		http.Error(w, `{"error":"listing runs failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"archive disabled"}`, http.StatusNotImplemented)
		return
	}
	run, err := s.store.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"loading run failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, run)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
