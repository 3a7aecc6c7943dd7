package models

// ImportStatus describes the outcome of importing a single station.
type ImportStatus string

const (
	StatusMissing   ImportStatus = "missing"
	StatusCopied    ImportStatus = "copied"
	StatusConverted ImportStatus = "converted"
	StatusFailed    ImportStatus = "failed"
)

// ImportRecord is the per-station outcome of one import run. It is
// created once per station and never mutated after the pipeline moves
// on to the next station.
type ImportRecord struct {
	Stem        Station      `json:"stem"`
	Status      ImportStatus `json:"status"`
	Source      string       `json:"source,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Error       string       `json:"error,omitempty"`
	ExitCode    *int         `json:"exit_code,omitempty"`
	Logs        []string     `json:"logs,omitempty"`
}

// Summary aggregates the outcome of one full pipeline run.
type Summary struct {
	Expected     int            `json:"expected"`
	Found        int            `json:"found"`
	Copied       int            `json:"copied"`
	Converted    int            `json:"converted"`
	Missing      []Station      `json:"missing"`
	Failures     []Station      `json:"failures"`
	Details      []ImportRecord `json:"details"`
	Target       string         `json:"target"`
	Tool         string         `json:"tool"`
	SourceRoot   string         `json:"source_root"`
	AudioDir     string         `json:"audio_dir"`
	AudioMatches int            `json:"audio_matches"`
	CacheFile    string         `json:"cache_file,omitempty"`
	CacheError   string         `json:"cache_error,omitempty"`
}

// Clone returns a deep copy of the summary so callers can hold a
// snapshot without sharing slices with the live run.
func (s *Summary) Clone() Summary {
	out := *s
	out.Missing = append([]Station(nil), s.Missing...)
	out.Failures = append([]Station(nil), s.Failures...)
	out.Details = append([]ImportRecord(nil), s.Details...)
	return out
}
