package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/san-kum/sortsim/internal/ops"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubble" {
		t.Errorf("expected algorithm bubble, got %s", cfg.Algorithm)
	}
	if cfg.Interval() != 100*time.Millisecond {
		t.Errorf("expected 100ms interval, got %s", cfg.Interval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortsim.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "merge"
	cfg.Compare = []string{"quick", "insertion"}
	cfg.Input.Values = []float64{3, 1, 2}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Algorithm != "merge" || !slices.Equal(got.Compare, cfg.Compare) {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if !slices.Equal(got.Input.Values, []float64{3, 1, 2}) {
		t.Errorf("values = %v", got.Input.Values)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("algorithm: quick\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Algorithm != "quick" || cfg.Input.Size != DefaultSize || cfg.Playback.IntervalMs != DefaultIntervalMs {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"zero interval", func(c *Config) { c.Playback.IntervalMs = 0 }, false},
		{"zero size", func(c *Config) { c.Input.Size = 0 }, false},
		{"huge size", func(c *Config) { c.Input.Size = MaxSize + 1 }, false},
		{"unknown preset", func(c *Config) { c.Input.Preset = "zigzag" }, false},
		{"NaN value", func(c *Config) { c.Input.Values = []float64{3, math.NaN(), 1} }, false},
		{"infinite value", func(c *Config) { c.Input.Values = []float64{1, math.Inf(-1)} }, false},
		{"explicit values skip preset", func(c *Config) {
			c.Input.Preset = "zigzag"
			c.Input.Values = []float64{1}
		}, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v", tt.name, err)
		}
	}
}

func TestGeneratePresets(t *testing.T) {
	for _, name := range ListPresets() {
		a, err := Generate(name, 30, 7)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(a) != 30 {
			t.Errorf("%s: len = %d", name, len(a))
		}
		b, _ := Generate(name, 30, 7)
		if !slices.Equal(a, b) {
			t.Errorf("%s: not deterministic", name)
		}
	}

	sorted, _ := Generate("sorted", 5, 0)
	if !slices.Equal(sorted, []float64{1, 2, 3, 4, 5}) {
		t.Errorf("sorted = %v", sorted)
	}
	reversed, _ := Generate("reversed", 4, 0)
	if !slices.Equal(reversed, []float64{4, 3, 2, 1}) {
		t.Errorf("reversed = %v", reversed)
	}
}

func TestGenerateUnknown(t *testing.T) {
	if _, err := Generate("zigzag", 3, 1); err == nil {
		t.Error("expected error for unknown preset")
	}
	if GetPreset("zigzag") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestBuildInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Values = []float64{9, 8}
	got, err := cfg.BuildInput()
	if err != nil || !slices.Equal(got, []float64{9, 8}) {
		t.Fatalf("BuildInput = %v, %v", got, err)
	}
	got[0] = 0
	if cfg.Input.Values[0] != 9 {
		t.Error("BuildInput returned the config's slice")
	}
}

func TestParseValues(t *testing.T) {
	got, err := ParseValues("5, 1,4 2\t8")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []float64{5, 1, 4, 2, 8}) {
		t.Errorf("ParseValues = %v", got)
	}
	if _, err := ParseValues("1,x"); err == nil {
		t.Error("expected parse error")
	}
	for _, s := range []string{"3,NaN,1", "1 inf", "-Inf", "nan"} {
		if _, err := ParseValues(s); !errors.Is(err, ops.ErrInvalidInput) {
			t.Errorf("ParseValues(%q) = %v, want ErrInvalidInput", s, err)
		}
	}
	if got, _ := ParseValues(""); len(got) != 0 {
		t.Errorf("empty string parsed to %v", got)
	}
}

func TestValidateRejectsNonFiniteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(path, []byte("input:\n  values: [3, .nan, 1]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ops.ErrInvalidInput) {
		t.Errorf("Validate() = %v, want ErrInvalidInput", err)
	}
}
