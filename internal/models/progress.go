package models

// ProgressUpdate is the payload broadcast to WebSocket clients after
// each station is processed.
type ProgressUpdate struct {
	JobID    string       `json:"jobId"`
	Station  Station      `json:"station"`
	Status   ImportStatus `json:"status"`
	Progress int          `json:"progress"`
	Total    int          `json:"total"`
	Done     bool         `json:"done"`
}
