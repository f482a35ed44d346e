package kernel

import (
	"strings"
	"sync"

	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/pkg/errors"
)

// Auto selects the highest-priority backend supported by the CPU.
const Auto = "auto"

// MulFn computes dst[i] = a[i] * b[i].
type MulFn func(dst, a, b []float64)

// SquaredDistanceFn returns sum((x[i] - y[i])^2).
type SquaredDistanceFn func(x, y []float64) float64

// WindowMeanFn returns the mean of src[offset : offset+width].
type WindowMeanFn func(src []float64, offset, width int) float64

// Backend is one registered kernel implementation.
type Backend struct {
	Name            string
	SIMDLevel       cpu.SIMDLevel
	Priority        int
	Mul             MulFn
	SquaredDistance SquaredDistanceFn
	WindowMean      WindowMeanFn
}

// Registry stores available backends.
type Registry struct {
	mu      sync.RWMutex
	entries []Backend
	sorted  bool
}

// Global is the default backend registry.
var Global = &Registry{}

// Register adds a backend.
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, b)
	r.sorted = false
}

// Lookup returns the highest-priority backend supported by features.
func (r *Registry) Lookup(features cpu.Features) *Backend {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// ByName returns the backend registered under name.
func (r *Registry) ByName(name string) (*Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			return &r.entries[i], true
		}
	}

	return nil, false
}

// Select resolves a backend by name. An empty name or Auto consults the
// detected CPU features.
func (r *Registry) Select(name string) (*Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == Auto {
		if b := r.Lookup(cpu.DetectFeatures()); b != nil {
			return b, nil
		}
		return nil, errors.Wrap(spectrum.ErrConfiguration, "kernel: no backend registered")
	}

	b, ok := r.ByName(name)
	if !ok {
		return nil, errors.Wrapf(spectrum.ErrConfiguration, "kernel: unknown backend %q (available: %s)",
			name, strings.Join(r.Names(), ", "))
	}

	return b, nil
}

// Names lists registered backend names in priority order.
func (r *Registry) Names() []string {
	entries := r.ListEntries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func (r *Registry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of the entries in priority order.
func (r *Registry) ListEntries() []Backend {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Backend, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Default returns the backend Select would choose for "auto". It panics if
// no backend is registered, which only happens when the generic fallback is
// missing from the build.
func Default() *Backend {
	b, err := Global.Select(Auto)
	if err != nil {
		panic(err)
	}
	return b
}
