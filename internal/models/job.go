package models

import "time"

// JobStatus tracks the lifecycle of one asynchronous import run.
// Transitions are forward-only: pending -> running -> completed or
// failed. A finished job never changes state again.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is one asynchronous import run tracked by the registry. The
// registry owns the live instance; everything handed to callers is a
// snapshot produced by Snapshot.
type Job struct {
	ID        string                   `json:"id"`
	Status    JobStatus                `json:"status"`
	Progress  int                      `json:"progress"`
	Total     int                      `json:"total"`
	Records   map[Station]ImportRecord `json:"records"`
	Summary   *Summary                 `json:"summary,omitempty"`
	Error     string                   `json:"error,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Snapshot returns a fully independent copy of the job. Callers can
// never observe a half-written job through a snapshot.
func (j *Job) Snapshot() Job {
	out := *j
	out.Records = make(map[Station]ImportRecord, len(j.Records))
	for stem, rec := range j.Records {
		out.Records[stem] = rec
	}
	if j.Summary != nil {
		s := j.Summary.Clone()
		out.Summary = &s
	}
	return out
}
