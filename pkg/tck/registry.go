package tck

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Instantiator is a construction strategy: given a type T it returns a new *T
// or fails. Implementations may panic; the engine recovers at the trial boundary.
type Instantiator interface {
	NewInstance(t reflect.Type) (any, error)
}

// InstantiatorFunc adapts a function to Instantiator.
type InstantiatorFunc func(t reflect.Type) (any, error)

// NewInstance calls f.
func (f InstantiatorFunc) NewInstance(t reflect.Type) (any, error) { return f(t) }

// Registration is one labelled instantiator.
type Registration struct {
	Label        string
	Instantiator Instantiator
}

// Registry holds instantiators in registration order. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []Registration
	index   map[string]int
	strict  bool
	logger  *zap.Logger
}

// NewRegistry returns an empty registry. In strict mode a repeated label is
// rejected; otherwise the later registration replaces the earlier one in place.
func NewRegistry(strict bool, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{index: make(map[string]int), strict: strict, logger: logger}
}

// Register adds inst under label.
func (r *Registry) Register(label string, inst Instantiator) error {
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidRegistration)
	}
	if inst == nil || isNilValue(inst) {
		return fmt.Errorf("%w: nil instantiator for %q", ErrInvalidRegistration, label)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.index[label]; ok {
		if r.strict {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		r.logger.Warn("instantiator label re-registered, replacing previous entry", zap.String("label", label))
		r.entries[i].Instantiator = inst
		return nil
	}
	r.index[label] = len(r.entries)
	r.entries = append(r.entries, Registration{Label: label, Instantiator: inst})
	return nil
}

// Entries returns a snapshot of the registrations in order.
func (r *Registry) Entries() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Registration, len(r.entries))
	copy(out, r.entries)
	return out
}

// Labels returns the registered labels in order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels := make([]string, len(r.entries))
	for i, e := range r.entries {
		labels[i] = e.Label
	}
	return labels
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
