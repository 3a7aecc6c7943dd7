// This file implements the job registry: every asynchronous import
// run is tracked as a Job owned by the registry, guarded by a single
// mutex. Callers only ever receive snapshots, so a status poll can
// never observe a half-written job. The lock is held only to mutate
// state, never across the (potentially long) external tool invocation.

package jobs

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libertyfm/libertyfm/internal/importer"
	"github.com/libertyfm/libertyfm/internal/models"
)

// Broadcaster pushes progress updates to connected clients. The
// registry works fine without one.
type Broadcaster interface {
	BroadcastJSON(v interface{}) error
}

// RunFunc executes one import run, reporting incremental progress to
// the observer. The registry is decoupled from the pipeline through
// this type so tests can drive the lifecycle without touching disk.
type RunFunc func(gameRoot string, observer importer.Observer) (*models.Summary, error)

// Registry tracks every asynchronous import run for the life of the
// process. Each started job runs on its own goroutine; nothing bounds
// how many run at once.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
	run  RunFunc
	hub  Broadcaster
}

// NewRegistry creates an empty registry. hub may be nil.
func NewRegistry(run RunFunc, hub Broadcaster) *Registry {
	return &Registry{
		jobs: make(map[string]*models.Job),
		run:  run,
		hub:  hub,
	}
}

// Start creates a pending job for gameRoot, begins execution on a new
// goroutine and returns the job id immediately. It never blocks on
// I/O or transcoding.
func (r *Registry) Start(gameRoot string) string {
	id := uuid.NewString()
	now := time.Now()

	job := &models.Job{
		ID:        id,
		Status:    models.JobPending,
		Total:     len(models.Stations),
		Records:   make(map[models.Station]models.ImportRecord),
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.jobs[id] = job
	r.mu.Unlock()

	go r.execute(id, gameRoot)
	return id
}

// Get returns an independent snapshot of a job.
func (r *Registry) Get(id string) (models.Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	return job.Snapshot(), true
}

// List returns snapshots of every job the registry knows about.
func (r *Registry) List() []models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, job.Snapshot())
	}
	return out
}

// execute drives one import run and finalizes the job. Any panic in
// the pipeline is caught here and turned into a failed job; a job must
// never crash the owning process.
func (r *Registry) execute(id, gameRoot string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Import job %s panicked: %v", id, rec)
			r.fail(id, fmt.Sprintf("import panicked: %v", rec))
		}
	}()

	r.setRunning(id)

	summary, err := r.run(gameRoot, &registryObserver{registry: r, jobID: id})
	if err != nil {
		log.Printf("Import job %s failed: %v", id, err)
		r.fail(id, err.Error())
		return
	}
	r.complete(id, summary)
}

func (r *Registry) setRunning(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.Status != models.JobPending {
		return
	}
	job.Status = models.JobRunning
	job.UpdatedAt = time.Now()
}

// recordProgress applies one station outcome to a job. Progress only
// ever moves forward, even if notifications were delivered out of
// strict station order.
func (r *Registry) recordProgress(id string, index int, record models.ImportRecord, partial models.Summary) {
	r.mu.Lock()
	job, ok := r.jobs[id]
	if !ok || (job.Status != models.JobRunning && job.Status != models.JobPending) {
		r.mu.Unlock()
		return
	}
	if index > job.Progress {
		job.Progress = index
	}
	job.Records[record.Stem] = record
	snapshot := partial.Clone()
	job.Summary = &snapshot
	job.UpdatedAt = time.Now()
	progress := job.Progress
	total := job.Total
	r.mu.Unlock()

	r.broadcast(models.ProgressUpdate{
		JobID:    id,
		Station:  record.Stem,
		Status:   record.Status,
		Progress: progress,
		Total:    total,
		Done:     false,
	})
}

func (r *Registry) complete(id string, summary *models.Summary) {
	r.mu.Lock()
	job, ok := r.jobs[id]
	if !ok || (job.Status != models.JobRunning && job.Status != models.JobPending) {
		r.mu.Unlock()
		return
	}
	job.Status = models.JobCompleted
	job.Progress = job.Total
	snapshot := summary.Clone()
	job.Summary = &snapshot
	job.UpdatedAt = time.Now()
	total := job.Total
	r.mu.Unlock()

	log.Printf("Import job %s completed", id)
	r.broadcast(models.ProgressUpdate{
		JobID:    id,
		Progress: total,
		Total:    total,
		Done:     true,
	})
}

func (r *Registry) fail(id string, message string) {
	r.mu.Lock()
	job, ok := r.jobs[id]
	if !ok || job.Status == models.JobCompleted || job.Status == models.JobFailed {
		r.mu.Unlock()
		return
	}
	job.Status = models.JobFailed
	job.Error = message
	job.UpdatedAt = time.Now()
	progress := job.Progress
	total := job.Total
	r.mu.Unlock()

	r.broadcast(models.ProgressUpdate{
		JobID:    id,
		Progress: progress,
		Total:    total,
		Done:     true,
	})
}

func (r *Registry) broadcast(update models.ProgressUpdate) {
	if r.hub == nil {
		return
	}
	if err := r.hub.BroadcastJSON(update); err != nil {
		log.Printf("Error broadcasting progress for job %s: %v", update.JobID, err)
	}
}

// registryObserver adapts the registry to the pipeline's progress
// contract for a single job.
type registryObserver struct {
	registry *Registry
	jobID    string
}

func (o *registryObserver) StationProcessed(index int, record models.ImportRecord, partial models.Summary) {
	o.registry.recordProgress(o.jobID, index, record, partial)
}
