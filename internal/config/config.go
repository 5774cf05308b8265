package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortsim/internal/ops"
)

const (
	DefaultAlgorithm  = "bubble"
	DefaultPreset     = "random"
	DefaultSize       = 24
	DefaultSeed       = 1
	DefaultIntervalMs = 100
	DefaultTheme      = "ocean"
	MaxSize           = 512
)

type Config struct {
	Algorithm string         `yaml:"algorithm"`
	Compare   []string       `yaml:"compare,omitempty"`
	Input     InputConfig    `yaml:"input"`
	Playback  PlaybackConfig `yaml:"playback"`
	Theme     string         `yaml:"theme"`
}

// InputConfig describes the array to sort. Explicit values win over the
// preset generator.
type InputConfig struct {
	Preset string    `yaml:"preset"`
	Size   int       `yaml:"size"`
	Seed   int64     `yaml:"seed"`
	Values []float64 `yaml:"values,omitempty"`
}

type PlaybackConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Input: InputConfig{
			Preset: DefaultPreset,
			Size:   DefaultSize,
			Seed:   DefaultSeed,
		},
		Playback: PlaybackConfig{
			IntervalMs: DefaultIntervalMs,
		},
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Playback.IntervalMs <= 0 {
		return fmt.Errorf("playback.interval_ms must be positive, got %d", c.Playback.IntervalMs)
	}
	if len(c.Input.Values) > 0 {
		if len(c.Input.Values) > MaxSize {
			return fmt.Errorf("input.values has %d entries, max %d", len(c.Input.Values), MaxSize)
		}
		if err := ops.ValidateInput(c.Input.Values); err != nil {
			return fmt.Errorf("input.values: %w", err)
		}
		return nil
	}
	if c.Input.Size < 1 || c.Input.Size > MaxSize {
		return fmt.Errorf("input.size must be in [1, %d], got %d", MaxSize, c.Input.Size)
	}
	if GetPreset(c.Input.Preset) == nil {
		return fmt.Errorf("unknown input preset %q (known: %s)", c.Input.Preset, strings.Join(ListPresets(), ", "))
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.Playback.IntervalMs) * time.Millisecond
}

// BuildInput returns the configured values, or generates them from the
// preset, size and seed.
func (c *Config) BuildInput() ([]float64, error) {
	if len(c.Input.Values) > 0 {
		return append([]float64(nil), c.Input.Values...), nil
	}
	return Generate(c.Input.Preset, c.Input.Size, c.Input.Seed)
}

// ParseValues parses a comma or space separated list of finite numbers.
func ParseValues(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %q is not a finite number", ops.ErrInvalidInput, f)
		}
		values = append(values, v)
	}
	return values, nil
}
