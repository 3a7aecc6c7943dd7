package jobs

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/libertyfm/libertyfm/internal/config"
	"github.com/libertyfm/libertyfm/internal/importer"
)

// StartScheduler starts the background verify job that periodically
// re-checks the destination directory against the last import record.
func StartScheduler(cfg *config.Config) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startVerifyJob(s, cfg)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

func startVerifyJob(s *gocron.Scheduler, cfg *config.Config) {
	interval := cfg.VerifyInterval
	if interval == 0 {
		log.Println("Verify interval is 0, scheduled destination verify is disabled.")
		return
	}

	log.Printf("Scheduling destination verify to run every %d minutes.", interval)

	_, err := s.Every(interval).Minutes().Do(func() {
		VerifyDestination(cfg.Target.Path)
	})
	if err != nil {
		log.Printf("Error scheduling destination verify job: %v", err)
	}
}

// VerifyDestination runs one verify sweep and logs any drift. It is
// shared between the scheduler and the filesystem watcher.
func VerifyDestination(targetDir string) {
	drifted, err := importer.VerifyTarget(targetDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No import has been recorded yet; nothing to verify.
			return
		}
		log.Printf("Destination verify failed for %s: %v", targetDir, err)
		return
	}
	if len(drifted) == 0 {
		return
	}
	log.Printf("Destination drift detected in %s: %d imported station file(s) missing: %v", targetDir, len(drifted), drifted)
}
