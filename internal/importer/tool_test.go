package importer_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/libertyfm/libertyfm/internal/importer"
	"github.com/libertyfm/libertyfm/internal/testutil"
)

func TestResolveTool_ExplicitPath(t *testing.T) {
	tool := testutil.StubTool(t, "ffmpeg", testutil.StubToolScript)

	resolved, err := importer.ResolveTool(tool)
	if err != nil {
		t.Fatalf("ResolveTool returned an error: %v", err)
	}
	if resolved != tool {
		t.Errorf("Expected %s, got %s", tool, resolved)
	}
}

func TestResolveTool_SearchPath(t *testing.T) {
	tool := testutil.StubTool(t, "ffmpeg", testutil.StubToolScript)
	t.Setenv("PATH", filepath.Dir(tool))

	resolved, err := importer.ResolveTool("")
	if err != nil {
		t.Fatalf("ResolveTool returned an error: %v", err)
	}
	if resolved != tool {
		t.Errorf("Expected %s, got %s", tool, resolved)
	}
}

func TestResolveTool_FallsBackToAvconv(t *testing.T) {
	tool := testutil.StubTool(t, "avconv", testutil.StubToolScript)
	t.Setenv("PATH", filepath.Dir(tool))

	resolved, err := importer.ResolveTool("")
	if err != nil {
		t.Fatalf("ResolveTool returned an error: %v", err)
	}
	if resolved != tool {
		t.Errorf("Expected avconv fallback %s, got %s", tool, resolved)
	}
}

func TestResolveTool_PreferredBeatsDefaults(t *testing.T) {
	ffmpeg := testutil.StubTool(t, "ffmpeg", testutil.StubToolScript)
	custom := testutil.StubTool(t, "my-encoder", testutil.StubToolScript)
	t.Setenv("PATH", filepath.Dir(ffmpeg)+string(filepath.ListSeparator)+filepath.Dir(custom))

	resolved, err := importer.ResolveTool("my-encoder")
	if err != nil {
		t.Fatalf("ResolveTool returned an error: %v", err)
	}
	if resolved != custom {
		t.Errorf("Expected preferred tool %s, got %s", custom, resolved)
	}
}

func TestResolveTool_UnresolvablePreferredFallsThrough(t *testing.T) {
	ffmpeg := testutil.StubTool(t, "ffmpeg", testutil.StubToolScript)
	t.Setenv("PATH", filepath.Dir(ffmpeg))

	resolved, err := importer.ResolveTool("no-such-encoder")
	if err != nil {
		t.Fatalf("ResolveTool returned an error: %v", err)
	}
	if resolved != ffmpeg {
		t.Errorf("Expected fallback to ffmpeg %s, got %s", ffmpeg, resolved)
	}
}

func TestResolveTool_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := importer.ResolveTool("")
	if !errors.Is(err, importer.ErrToolNotFound) {
		t.Fatalf("Expected ErrToolNotFound, got %v", err)
	}
}
