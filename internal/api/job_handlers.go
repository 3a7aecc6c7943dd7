package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

// handleStartJob starts an asynchronous import and returns its id
// immediately; the run itself proceeds on its own goroutine.
func (s *Server) handleStartJob(w http.ResponseWriter, r *http.Request) {
	gameDir, ok := decodeImportRequest(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Missing 'gameDir' string")
		return
	}

	jobID := s.registry.Start(gameDir)
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := s.registry.Get(jobID)
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.registry.List()
	// Newest first, stable for equal timestamps.
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	RespondWithJSON(w, http.StatusOK, jobs)
}
