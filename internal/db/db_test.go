package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/config"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer database.Close()

	// Database file exists
	if _, err := os.Stat(filepath.Join(tmpDir, "pyopt.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	// Artifacts dir exists
	if _, err := os.Stat(filepath.Join(tmpDir, "artifacts")); err != nil {
		t.Errorf("artifacts directory not created: %v", err)
	}

	// Schema version recorded
	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInitIdempotent(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	database.Close()

	// Second init against the same dir must not fail or re-migrate
	database, err = Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer database.Close()

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatal(err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d after re-init, want %d", version, CurrentSchemaVersion)
	}
}

func TestArtifactDir(t *testing.T) {
	if got := ArtifactDir("/base", nil); got != filepath.Join("/base", "artifacts") {
		t.Errorf("ArtifactDir with nil config = %q", got)
	}

	cfg := &config.Config{ArtifactDir: "/elsewhere"}
	if got := ArtifactDir("/base", cfg); got != "/elsewhere" {
		t.Errorf("ArtifactDir with override = %q, want /elsewhere", got)
	}
}
