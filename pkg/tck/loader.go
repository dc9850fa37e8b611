package tck

import (
	"errors"
	"reflect"

	"go.uber.org/zap"

	"github.com/dkoosis/tck/pkg/candidatelist"
)

// TypeResolver turns a fully-qualified name into a type.
type TypeResolver interface {
	Resolve(name ClassIdentifier) (reflect.Type, error)
}

// ResolverFunc adapts a function to TypeResolver.
type ResolverFunc func(name ClassIdentifier) (reflect.Type, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(name ClassIdentifier) (reflect.Type, error) { return f(name) }

// ErrorHandler decides what an unresolvable candidate name means to the caller.
// It is invoked once per failed name; loading always continues afterwards.
type ErrorHandler interface {
	ClassNotFound(name ClassIdentifier, err error)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(name ClassIdentifier, err error)

// ClassNotFound calls f.
func (f ErrorHandlerFunc) ClassNotFound(name ClassIdentifier, err error) { f(name, err) }

// BatchResult is the value form of a tolerant load: what resolved, in input
// order, and every name that did not.
type BatchResult struct {
	Resolved []Candidate
	Failures []*ResolveError
}

// Set builds a CandidateSet from the resolved candidates.
func (b BatchResult) Set() *CandidateSet {
	return NewCandidateSet(b.Resolved...)
}

// Loader resolves candidate names against a TypeResolver.
type Loader struct {
	resolver TypeResolver
	handler  ErrorHandler
	logger   *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used for skipped and unresolved names.
func WithLoaderLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader returns a loader. A nil handler only logs unresolved names.
func NewLoader(resolver TypeResolver, handler ErrorHandler, opts ...LoaderOption) *Loader {
	ld := &Loader{resolver: resolver, handler: handler, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load resolves names in order. Unresolved names are passed to the error
// handler and left out of the returned set.
func (ld *Loader) Load(names []ClassIdentifier) *CandidateSet {
	entries := make([]candidatelist.Entry, len(names))
	for i, n := range names {
		entries[i] = candidatelist.Entry{Name: n}
	}
	return ld.LoadEntries(entries)
}

// LoadEntries is Load for entries that carry descriptions.
func (ld *Loader) LoadEntries(entries []candidatelist.Entry) *CandidateSet {
	res := ld.ResolveEntries(entries)
	for _, f := range res.Failures {
		ld.logger.Warn("candidate not resolved", zap.String("name", f.Name), zap.Error(f.Err))
		if ld.handler != nil {
			ld.handler.ClassNotFound(f.Name, f)
		}
	}
	set := NewCandidateSet()
	for _, c := range res.Resolved {
		if !set.Add(c) {
			ld.logger.Debug("duplicate candidate type skipped",
				zap.String("name", c.Name), zap.Stringer("type", c.Type))
		}
	}
	return set
}

// Resolve resolves names without invoking the error handler.
func (ld *Loader) Resolve(names []ClassIdentifier) BatchResult {
	entries := make([]candidatelist.Entry, len(names))
	for i, n := range names {
		entries[i] = candidatelist.Entry{Name: n}
	}
	return ld.ResolveEntries(entries)
}

// ResolveEntries resolves entries without invoking the error handler.
func (ld *Loader) ResolveEntries(entries []candidatelist.Entry) BatchResult {
	var res BatchResult
	for _, e := range entries {
		t, err := ld.resolveOne(e.Name)
		if err != nil {
			res.Failures = append(res.Failures, &ResolveError{Name: e.Name, Err: err})
			continue
		}
		res.Resolved = append(res.Resolved, Candidate{Name: e.Name, Description: e.Description, Type: t})
	}
	return res
}

func (ld *Loader) resolveOne(name ClassIdentifier) (t reflect.Type, err error) {
	if ld.resolver == nil {
		return nil, ErrClassNotFound
	}
	// A resolver that panics counts as an unresolvable name, not a failed load.
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, &PanicError{Value: r}
		}
	}()
	t, err = ld.resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) || errors.Is(err, ErrNotInstantiable) {
			return nil, err
		}
		return nil, errors.Join(ErrClassNotFound, err)
	}
	if t == nil || t.Kind() == reflect.Interface {
		return nil, ErrNotInstantiable
	}
	return t, nil
}
