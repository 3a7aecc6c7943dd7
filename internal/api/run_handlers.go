package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/libertyfm/libertyfm/internal/store"
)

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.ListRuns(limit)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list import runs")
		return
	}
	if runs == nil {
		runs = []*store.ImportRun{}
	}
	RespondWithJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "runID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := s.store.GetRun(runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondWithError(w, http.StatusNotFound, "Run not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to load import run")
		return
	}
	RespondWithJSON(w, http.StatusOK, run)
}
