package api

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/libertyfm/libertyfm/internal/core"
	"github.com/libertyfm/libertyfm/internal/importer"
	"github.com/libertyfm/libertyfm/internal/models"
)

// maxUploadMemory bounds the in-memory portion of a multipart upload;
// larger file parts spill to temporary files.
const maxUploadMemory = 32 << 20

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": core.Version})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"target":          s.app.Config.Target.Path,
		"verify_interval": s.app.Config.VerifyInterval,
	})
}

// importRequest is the body of the synchronous and asynchronous import
// endpoints. "path" is accepted as an alias for "gameDir".
type importRequest struct {
	GameDir string `json:"gameDir"`
	Path    string `json:"path"`
}

func (req *importRequest) dir() string {
	if req.GameDir != "" {
		return req.GameDir
	}
	return req.Path
}

func decodeImportRequest(r *http.Request) (string, bool) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	dir := strings.TrimSpace(req.dir())
	if dir == "" {
		return "", false
	}
	return dir, true
}

// handleImport runs a full import synchronously and responds with the
// summary. Structural failures map to 400 with the reason; anything
// unexpected maps to 500.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	gameDir, ok := decodeImportRequest(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Missing 'gameDir' string")
		return
	}

	summary, err := s.runImport(gameDir)
	if err != nil {
		if importer.IsStructural(err) {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Import failed: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Unexpected import failure")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

// handleImportUpload accepts a multipart directory upload, rebuilds
// the tree under a temporary root and imports from there.
func (s *Server) handleImportUpload(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		RespondWithError(w, http.StatusBadRequest, "Expected multipart/form-data")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		RespondWithError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	tempRoot, err := os.MkdirTemp("", "libertyfm-upload-")
	if err != nil {
		log.Printf("Import upload failed: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Unexpected import failure")
		return
	}
	defer os.RemoveAll(tempRoot)

	for _, header := range files {
		if header.Filename == "" {
			continue
		}
		// Uploaded names are slash-separated relative paths from the
		// browser's directory picker. Refuse traversal components.
		relative := path.Clean(header.Filename)
		if relative == ".." || strings.HasPrefix(relative, "../") || path.IsAbs(relative) {
			continue
		}
		destination := filepath.Join(tempRoot, filepath.FromSlash(relative))
		if err := saveUploadedFile(header, destination); err != nil {
			log.Printf("Import upload failed writing %s: %v", relative, err)
			RespondWithError(w, http.StatusInternalServerError, "Unexpected import failure")
			return
		}
	}

	summary, err := s.runImport(tempRoot)
	if err != nil {
		if importer.IsStructural(err) {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Import upload failed: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Unexpected import failure")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

// runImport executes one synchronous pipeline run with the configured
// target and tool, then records the summary in the run history. A
// history write failure is logged, never surfaced: the import itself
// succeeded.
func (s *Server) runImport(gameDir string) (*models.Summary, error) {
	summary, err := importer.Run(importer.Options{
		GameRoot:  gameDir,
		TargetDir: s.app.Config.Target.Path,
		Tool:      s.app.Config.Tool,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.store.SaveRun(summary); err != nil {
		log.Printf("Error recording import run: %v", err)
	}
	return summary, nil
}

func saveUploadedFile(header *multipart.FileHeader, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return err
	}
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destination)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
