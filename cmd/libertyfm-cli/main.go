package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/libertyfm/libertyfm/internal/config"
	"github.com/libertyfm/libertyfm/internal/importer"
	"github.com/libertyfm/libertyfm/internal/models"
	"github.com/libertyfm/libertyfm/internal/picker"
)

func main() {
	dirFlag := flag.String("dir", "", "Path to the game directory (contains the Audio folder)")
	toolFlag := flag.String("tool", "", "Explicit ffmpeg/avconv binary to use")
	jsonFlag := flag.Bool("json", false, "Emit the summary as JSON (useful for automation)")
	flag.Parse()

	// Load configuration from config.yml for the target directory and
	// tool default; flags win over config.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tool := cfg.Tool
	if *toolFlag != "" {
		tool = *toolFlag
	}

	gameDir := strings.TrimSpace(*dirFlag)
	if gameDir == "" {
		gameDir = askForDirectory()
	}
	if gameDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no game directory provided")
		os.Exit(2)
	}

	summary, err := importer.Run(importer.Options{
		GameRoot:  gameDir,
		TargetDir: cfg.Target.Path,
		Tool:      tool,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *jsonFlag {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	} else {
		fmt.Println(formatSummary(summary))
	}

	if summary.Found == 0 {
		os.Exit(1)
	}
}

// askForDirectory tries the host folder picker first, then falls back
// to a plain stdin prompt.
func askForDirectory() string {
	dir, err := picker.Default().PickDirectory()
	if err == nil {
		return dir
	}
	if !errors.Is(err, picker.ErrUnavailable) {
		return ""
	}

	fmt.Print("Enter path to the game directory: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(line), `"`)
}

// formatSummary renders the human-readable summary block.
func formatSummary(summary *models.Summary) string {
	lines := []string{
		fmt.Sprintf("Expected:   %d", summary.Expected),
		fmt.Sprintf("Found:      %d", summary.Found),
		fmt.Sprintf("Copied:     %d", summary.Copied),
		fmt.Sprintf("Transcoded: %d", summary.Converted),
		fmt.Sprintf("Target dir: %s", summary.Target),
		fmt.Sprintf("Tool:       %s", summary.Tool),
		fmt.Sprintf("Source dir: %s", summary.SourceRoot),
		fmt.Sprintf("Audio dir:  %s", summary.AudioDir),
		fmt.Sprintf("Audio hits: %d", summary.AudioMatches),
	}
	if len(summary.Missing) > 0 {
		lines = append(lines, fmt.Sprintf("Missing:   %s", joinStations(summary.Missing)))
	}
	if len(summary.Failures) > 0 {
		lines = append(lines, fmt.Sprintf("Failures:  %s", joinStations(summary.Failures)))
	}
	return strings.Join(lines, "\n")
}

func joinStations(stations []models.Station) string {
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
