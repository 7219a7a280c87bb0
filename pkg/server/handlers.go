package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/engine"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

type statusResponse struct {
	Status   string `json:"status"`
	Pilots   int    `json:"pilots_loaded"`
	Drones   int    `json:"drones_loaded"`
	Missions int    `json:"missions_loaded"`
	Issues   int    `json:"record_issues"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, statusResponse{Status: "degraded", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:   "healthy",
		Pilots:   len(snap.Pilots),
		Drones:   len(snap.Drones),
		Missions: len(snap.Missions),
		Issues:   len(snap.Issues),
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	started := time.Now()
	report := s.eng.ScanAll(snap)
	s.metrics.RecordScan(time.Since(started))
	for i := range report.Conflicts {
		s.metrics.RecordConflict(string(report.Conflicts[i].Type), string(report.Conflicts[i].Severity))
	}
	for i := range report.Advisories {
		s.metrics.RecordAdvisory(string(report.Advisories[i].Code))
	}

	writeJSON(w, http.StatusOK, report)
}

type matchRequest struct {
	MissionID string             `json:"mission_id"`
	Kind      fleet.ResourceKind `json:"kind"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	started := time.Now()
	candidates, err := s.eng.FindCandidates(snap, req.MissionID, req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.RecordMatch(string(req.Kind), time.Since(started))

	writeJSON(w, http.StatusOK, map[string]any{
		"mission_id": req.MissionID,
		"kind":       req.Kind,
		"candidates": candidates,
	})
}

type reassignRequest struct {
	MissionID  string             `json:"mission_id"`
	ResourceID string             `json:"resource_id"`
	Kind       fleet.ResourceKind `json:"kind"`
}

func (s *Server) handleReassign(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	plan, err := s.eng.PlanReassignment(snap, req.MissionID, req.ResourceID, req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}
	outcome := "blocked"
	if plan.Replacement != nil {
		outcome = "replaced"
	}
	s.metrics.RecordReassignment(outcome)

	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	pilotID := r.URL.Query().Get("pilot_id")
	missionID := r.URL.Query().Get("mission_id")
	if pilotID == "" || missionID == "" {
		http.Error(w, "pilot_id and mission_id are required", http.StatusBadRequest)
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	cost, err := s.eng.EstimateCost(snap, pilotID, missionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pilot_id":   pilotID,
		"mission_id": missionID,
		"cost":       cost,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto HTTP statuses: reference errors are
// 404, validation errors 400, anything else 500.
func writeError(w http.ResponseWriter, err error) {
	var engErr *engine.EngineError
	if errors.As(err, &engErr) {
		switch engErr.Class {
		case engine.ErrorClassReference:
			http.Error(w, engErr.Error(), http.StatusNotFound)
			return
		case engine.ErrorClassValidation:
			http.Error(w, engErr.Error(), http.StatusBadRequest)
			return
		}
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
