package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PythonBin != "python3" {
		t.Errorf("PythonBin = %q, want python3", cfg.PythonBin)
	}
	if cfg.ExecTimeoutSecs != 10 {
		t.Errorf("ExecTimeoutSecs = %d, want 10", cfg.ExecTimeoutSecs)
	}
	if cfg.ExecMaxMemoryMB != 512 {
		t.Errorf("ExecMaxMemoryMB = %d, want 512", cfg.ExecMaxMemoryMB)
	}
}

func TestLoadMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PythonBin != "python3" {
		t.Errorf("missing file should yield defaults, got PythonBin = %q", cfg.PythonBin)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"python_bin": "python3.12", "exec_timeout_secs": 30}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PythonBin != "python3.12" {
		t.Errorf("PythonBin = %q, want python3.12", cfg.PythonBin)
	}
	if cfg.ExecTimeoutSecs != 30 {
		t.Errorf("ExecTimeoutSecs = %d, want 30", cfg.ExecTimeoutSecs)
	}
	// Untouched scalar falls back to default
	if cfg.ExecMaxMemoryMB != 512 {
		t.Errorf("ExecMaxMemoryMB = %d, want 512", cfg.ExecMaxMemoryMB)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() with invalid JSON should return error")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{
		PythonBin:       "python3",
		ExecTimeoutSecs: 10,
		DisabledTools:   []string{"run_purge"},
	}
	overlay := &Config{
		ExecTimeoutSecs: 60,
		DisabledTools:   []string{"run_purge", "run_delete"},
	}

	merged := Merge(base, overlay)

	if merged.PythonBin != "python3" {
		t.Errorf("PythonBin = %q, base should survive empty overlay", merged.PythonBin)
	}
	if merged.ExecTimeoutSecs != 60 {
		t.Errorf("ExecTimeoutSecs = %d, overlay should win", merged.ExecTimeoutSecs)
	}
	if len(merged.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want deduplicated union of 2", merged.DisabledTools)
	}
}

func TestLoadWithRepo(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	globalContent := `{"python_bin": "python3.11", "exec_timeout_secs": 20}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalContent), 0600); err != nil {
		t.Fatal(err)
	}

	repoDir := filepath.Join(repoRoot, ".pyopt")
	if err := os.MkdirAll(repoDir, 0700); err != nil {
		t.Fatal(err)
	}
	repoContent := `{"exec_timeout_secs": 5}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoContent), 0600); err != nil {
		t.Fatal(err)
	}

	// Start from a nested dir to exercise the upward walk
	nested := filepath.Join(repoRoot, "src", "pkg")
	if err := os.MkdirAll(nested, 0700); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithRepo(globalDir, nested)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.PythonBin != "python3.11" {
		t.Errorf("PythonBin = %q, want global value", cfg.PythonBin)
	}
	if cfg.ExecTimeoutSecs != 5 {
		t.Errorf("ExecTimeoutSecs = %d, repo should win over global", cfg.ExecTimeoutSecs)
	}
	if cfg.ExecMaxMemoryMB != 512 {
		t.Errorf("ExecMaxMemoryMB = %d, want default", cfg.ExecMaxMemoryMB)
	}
}

func TestFindRepoConfigNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	if got := FindRepoConfig(tmpDir); got != "" {
		t.Errorf("FindRepoConfig() = %q, want empty", got)
	}
}
