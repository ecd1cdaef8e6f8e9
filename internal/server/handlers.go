package server

import (
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/job-hunter/internal/agent"
	"github.com/jonathan/job-hunter/internal/notify"
	"github.com/jonathan/job-hunter/internal/settings"
	"github.com/jonathan/job-hunter/internal/tools"
)

// AnalysisRequest is the request body for POST /analyses.
type AnalysisRequest struct {
	URL string `json:"url"`
}

// AnalysisResponse reports the launched analysis.
type AnalysisResponse struct {
	AnalysisID string `json:"analysisId"`
	MCPPort    int    `json:"mcpPort"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	current, err := s.settings.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if current == nil {
		defaults := settings.Default()
		current = &defaults
	}
	s.jsonResponse(w, http.StatusOK, current)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var snapshot settings.Settings
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&snapshot); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid settings payload: "+err.Error())
		return
	}

	saved, err := s.settings.Save(snapshot)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	limit := tools.DefaultListLimit
	if value := r.URL.Query().Get("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	matches, err := s.matches.List(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleClearMatches(w http.ResponseWriter, r *http.Request) {
	if err := s.matches.Clear(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleStartAnalysis spawns the worker process against the RPC port and
// reports the assigned analysis id.
func (s *Server) handleStartAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	analysisID := uuid.NewString()
	exe, err := os.Executable()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to locate executable: "+err.Error())
		return
	}

	cmd := exec.Command(exe, "analyze")
	cmd.Env = append(os.Environ(),
		agent.EnvPort+"="+strconv.Itoa(s.rpcPort),
		agent.EnvTargetURL+"="+req.URL,
		agent.EnvAnalysisID+"="+analysisID,
	)
	if err := cmd.Start(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to spawn analysis worker: "+err.Error())
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.Warn("analysis worker exited with error", "analysisId", analysisID, "error", err)
		}
	}()

	s.bus.Emit(notify.EventAnalysisStarted, map[string]any{
		"analysisId": analysisID,
		"mcpPort":    s.rpcPort,
	})
	s.jsonResponse(w, http.StatusAccepted, AnalysisResponse{
		AnalysisID: analysisID,
		MCPPort:    s.rpcPort,
	})
}

// handleEvents streams notifier events to the UI as Server-Sent Events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Push the headers out now; the first event may be a long time coming
	// and clients block on the response status until something is flushed.
	w.WriteHeader(http.StatusOK)
	sse.Flush()

	events, cancel := s.bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sse.WriteEvent(event.Name, event.Payload); err != nil {
				return
			}
		}
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to write response", "error", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
