package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadThresholdsMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadThresholds(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadThresholds: %v", err)
	}
	if cfg != DefaultThresholds() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadThresholdsOverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.toml")
	content := "promote-accuracy = 90\nsuper-questions = 100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("LoadThresholds: %v", err)
	}
	if cfg.PromoteAccuracy != 90 {
		t.Errorf("PromoteAccuracy = %d, want 90", cfg.PromoteAccuracy)
	}
	if cfg.SuperQuestions != 100 {
		t.Errorf("SuperQuestions = %d, want 100", cfg.SuperQuestions)
	}
	// Untouched fields keep their defaults.
	if cfg.MinQuestions != DefaultThresholds().MinQuestions {
		t.Errorf("MinQuestions = %d, want default", cfg.MinQuestions)
	}
}

func TestLoadThresholdsMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.toml")
	if err := os.WriteFile(path, []byte("promote-accuracy = {"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadThresholds(path)
	if err == nil {
		t.Error("expected decode error")
	}
	if cfg != DefaultThresholds() {
		t.Errorf("cfg = %+v, want defaults on decode failure", cfg)
	}
}
