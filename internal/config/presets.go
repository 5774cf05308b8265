package config

import (
	"fmt"
	"math/rand"
	"sort"
)

// Preset generates a deterministic input array for a size and seed.
type Preset struct {
	Description string
	Generate    func(n int, rng *rand.Rand) []float64
}

var Presets = map[string]Preset{
	"random": {
		Description: "uniform integers in [1, 100]",
		Generate: func(n int, rng *rand.Rand) []float64 {
			a := make([]float64, n)
			for i := range a {
				a[i] = float64(rng.Intn(100) + 1)
			}
			return a
		},
	},
	"sorted": {
		Description: "1..n ascending (best case for bubble and insertion)",
		Generate: func(n int, _ *rand.Rand) []float64 {
			return ascending(n)
		},
	},
	"reversed": {
		Description: "n..1 descending (worst case for most algorithms)",
		Generate: func(n int, _ *rand.Rand) []float64 {
			a := ascending(n)
			for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
				a[i], a[j] = a[j], a[i]
			}
			return a
		},
	},
	"nearly_sorted": {
		Description: "ascending with about a tenth of adjacent pairs swapped",
		Generate: func(n int, rng *rand.Rand) []float64 {
			a := ascending(n)
			if n < 2 {
				return a
			}
			swaps := max(1, n/10)
			for range swaps {
				i := rng.Intn(n - 1)
				a[i], a[i+1] = a[i+1], a[i]
			}
			return a
		},
	},
	"few_unique": {
		Description: "four distinct values repeated (shows stability)",
		Generate: func(n int, rng *rand.Rand) []float64 {
			a := make([]float64, n)
			for i := range a {
				a[i] = float64(rng.Intn(4)+1) * 25
			}
			return a
		},
	},
}

func ascending(n int) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = float64(i + 1)
	}
	return a
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate builds n values with the named preset. The same seed always
// yields the same array.
func Generate(name string, n int, seed int64) ([]float64, error) {
	p := GetPreset(name)
	if p == nil {
		return nil, fmt.Errorf("unknown input preset %q", name)
	}
	if n < 0 {
		return nil, fmt.Errorf("input size must not be negative, got %d", n)
	}
	return p.Generate(n, rand.New(rand.NewSource(seed))), nil
}
