// Package registry maps algorithm identifiers to their step producers and
// the complexity metadata shown alongside the visualization.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/ops"
)

// Complexity holds asymptotic bounds as display strings.
type Complexity struct {
	Best    string `json:"best" yaml:"best"`
	Average string `json:"average" yaml:"average"`
	Worst   string `json:"worst" yaml:"worst"`
}

type Metadata struct {
	Time        Complexity `json:"time" yaml:"time"`
	Space       string     `json:"space" yaml:"space"`
	Stable      bool       `json:"stable" yaml:"stable"`
	Description string     `json:"description" yaml:"description"`
	Code        string     `json:"code" yaml:"code"`
}

type Entry struct {
	Name     string              `json:"name" yaml:"name"`
	Produce  algorithms.Producer `json:"-" yaml:"-"`
	Metadata Metadata            `json:"metadata" yaml:"metadata"`
}

// Algorithm returns the entry in the form the playback controller takes.
func (e Entry) Algorithm() algorithms.Algorithm {
	return algorithms.Algorithm{Name: e.Name, Produce: e.Produce}
}

// Registry is an ordered, read-only table of entries. The first entry is
// the fallback for unknown identifiers.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// New builds a registry in the given display order.
func New(entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, errors.New("sortsim: registry needs at least one entry")
	}
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := normalize(e.Name)
		if key == "" || e.Produce == nil {
			return nil, fmt.Errorf("sortsim: registry entry %q is incomplete", e.Name)
		}
		if _, dup := r.index[key]; dup {
			return nil, fmt.Errorf("sortsim: duplicate registry entry %q", e.Name)
		}
		r.index[key] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func (r *Registry) Lookup(id string) (Entry, bool) {
	i, ok := r.index[normalize(id)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

func (r *Registry) Get(id string) (Entry, error) {
	e, ok := r.Lookup(id)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q (known: %s)", ops.ErrUnknownAlgorithm, id, strings.Join(r.Names(), ", "))
	}
	return e, nil
}

// Resolve never fails: unknown or empty identifiers get the first entry.
func (r *Registry) Resolve(id string) Entry {
	if e, ok := r.Lookup(id); ok {
		return e
	}
	return r.entries[0]
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the table in display order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

func (r *Registry) Len() int { return len(r.entries) }
