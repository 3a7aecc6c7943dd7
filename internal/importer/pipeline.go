// This file contains the import pipeline: for each station, the
// resolved source is either copied verbatim (already in the canonical
// container) or transcoded by the external tool, and the outcome is
// aggregated into a Summary. Per-station problems never abort the run;
// only structural failures (no audio directory, no tool) do.

package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/libertyfm/libertyfm/internal/library"
	"github.com/libertyfm/libertyfm/internal/models"
)

// Observer receives one notification after each station is processed.
// index is the 1-based position of the station in the canonical order,
// record is the outcome just produced, and partial is a snapshot of
// the summary so far. This is the only channel through which callers
// learn of incremental progress.
type Observer interface {
	StationProcessed(index int, record models.ImportRecord, partial models.Summary)
}

// Options configures one pipeline run.
type Options struct {
	GameRoot  string
	TargetDir string
	Tool      string   // explicit tool name or path, empty for PATH search
	Observer  Observer // optional
}

// IsStructural reports whether err prevented the pipeline from
// starting at all, as opposed to a fault during execution.
func IsStructural(err error) bool {
	return errors.Is(err, library.ErrRootNotFound) ||
		errors.Is(err, library.ErrAudioDirNotFound) ||
		errors.Is(err, ErrToolNotFound)
}

// Run executes one full import. It locates the audio directory,
// resolves the tool, processes every station in canonical order and
// returns the aggregate Summary. The summary is also recorded as
// import-cache.json in the target directory; a failure to write the
// cache is noted on the summary, never fatal.
func Run(opts Options) (*models.Summary, error) {
	audioDir, matches, err := library.LocateAudioDir(opts.GameRoot)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.TargetDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create target directory: %w", err)
	}

	tool, err := ResolveTool(opts.Tool)
	if err != nil {
		return nil, err
	}

	sourceRoot, err := filepath.Abs(opts.GameRoot)
	if err != nil {
		sourceRoot = opts.GameRoot
	}

	summary := &models.Summary{
		Expected:     len(models.Stations),
		Missing:      []models.Station{},
		Failures:     []models.Station{},
		Details:      []models.ImportRecord{},
		Target:       opts.TargetDir,
		Tool:         tool,
		SourceRoot:   sourceRoot,
		AudioDir:     audioDir,
		AudioMatches: matches,
	}

	for i, stem := range models.Stations {
		record := processStation(audioDir, opts.TargetDir, tool, stem)

		switch record.Status {
		case models.StatusMissing:
			summary.Missing = append(summary.Missing, stem)
		case models.StatusCopied:
			summary.Found++
			summary.Copied++
		case models.StatusConverted:
			summary.Found++
			summary.Converted++
		case models.StatusFailed:
			summary.Found++
			summary.Failures = append(summary.Failures, stem)
		}
		summary.Details = append(summary.Details, record)

		if opts.Observer != nil {
			opts.Observer.StationProcessed(i+1, record, summary.Clone())
		}
	}

	writeCache(opts.TargetDir, summary)
	return summary, nil
}

// processStation produces the ImportRecord for a single station.
func processStation(audioDir, targetDir, tool string, stem models.Station) models.ImportRecord {
	record := models.ImportRecord{Stem: stem, Status: models.StatusMissing}

	src, ok := library.FindSource(audioDir, stem)
	if !ok {
		return record
	}

	dst := filepath.Join(targetDir, string(stem)+models.CanonicalExt)
	record.Source = src
	record.Destination = dst

	if strings.EqualFold(filepath.Ext(src), models.CanonicalExt) {
		if err := copyFile(src, dst); err != nil {
			record.Status = models.StatusFailed
			record.Error = err.Error()
			removePartial(dst)
		} else {
			record.Status = models.StatusCopied
		}
		return record
	}

	code, logs := transcode(tool, src, dst)
	if code == 0 {
		record.Status = models.StatusConverted
	} else {
		record.Status = models.StatusFailed
		record.ExitCode = &code
		record.Logs = logs
		removePartial(dst)
	}
	return record
}

// copyFile copies src to dst. Copying a file onto itself is a no-op
// success.
func copyFile(src, dst string) error {
	if same, err := sameFile(src, dst); err == nil && same {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

// transcode invokes the external tool once with the fixed argument
// contract: resample to 44.1kHz stereo, encode with libmp3lame at
// quality 2, writing directly to dst. The returned code is the tool's
// exit code, or 127 when the binary could not be executed at all.
func transcode(tool, src, dst string) (int, []string) {
	cmd := exec.Command(tool,
		"-y",
		"-i", src,
		"-ar", "44100",
		"-ac", "2",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		dst,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var logs []string
	if s := strings.TrimSpace(stdout.String()); s != "" {
		logs = append(logs, s)
	}
	if s := strings.TrimSpace(stderr.String()); s != "" {
		logs = append(logs, s)
	}

	if err == nil {
		return 0, logs
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), logs
	}
	// The tool vanished between resolution and invocation, or is not
	// executable. Report the conventional "command not found" code.
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return 127, logs
	}
	return 127, append(logs, err.Error())
}

// removePartial deletes a possibly half-written destination file after
// a failure. A failed cleanup is ignored; the record already carries
// the original error.
func removePartial(dst string) {
	if _, err := os.Stat(dst); err == nil {
		os.Remove(dst)
	}
}
