package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/movesim/game"
)

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("save default: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatal("expected an error when the settings file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected the default settings, got %+v", s)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[movement]\nultra_warm = true\nedge_back_off = false\n\n[workers]\ncount = 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOVESIM_LOG_LEVEL", "debug")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Movement.UltraWarm || s.Movement.EdgeBackOff || s.Workers.Count != 3 {
		t.Fatalf("expected file values to apply, got %+v", s)
	}
	if s.Log.Level != "debug" {
		t.Fatalf("expected the environment to override the log level, got %q", s.Log.Level)
	}
	if s.Movement.WaterFlowScale != game.WaterFlowScale {
		t.Fatalf("expected unset values to keep their defaults, got %v", s.Movement.WaterFlowScale)
	}

	opts := s.MovementOptions()
	if !opts.UltraWarm || opts.EdgeBackOff {
		t.Fatalf("unexpected movement options %+v", opts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
