// Package tck cross-tests object construction strategies against a battery
// of candidate types.
//
// A run is a two dimensional matrix: every registered Instantiator is asked
// to build every Candidate, instantiator-major and candidate-minor, and each
// cell is pushed to a Reporter as it completes. A failing cell never stops
// the matrix.
package tck

import "reflect"

// ClassIdentifier is the fully-qualified name of a candidate type,
// e.g. "github.com/dkoosis/tck/pkg/candidates.EmptyClass".
type ClassIdentifier = string

// Candidate is a resolved type under test plus the name it was loaded from.
type Candidate struct {
	Name        ClassIdentifier
	Description string
	Type        reflect.Type
}

// Describe returns the label reporters see for this candidate.
func (c Candidate) Describe() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Name
}

// CandidateSet is an ordered collection of candidates without duplicate types.
// Order is load order and drives report order.
type CandidateSet struct {
	items []Candidate
	seen  map[reflect.Type]struct{}
}

// NewCandidateSet returns a set holding cs, skipping duplicate types.
func NewCandidateSet(cs ...Candidate) *CandidateSet {
	s := &CandidateSet{seen: make(map[reflect.Type]struct{}, len(cs))}
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

// Add appends c unless its type is already present. It reports whether c was added.
func (s *CandidateSet) Add(c Candidate) bool {
	if s.seen == nil {
		s.seen = make(map[reflect.Type]struct{})
	}
	if _, dup := s.seen[c.Type]; dup {
		return false
	}
	s.seen[c.Type] = struct{}{}
	s.items = append(s.items, c)
	return true
}

// Len returns the number of candidates.
func (s *CandidateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Candidates returns a copy of the candidates in load order.
func (s *CandidateSet) Candidates() []Candidate {
	if s == nil {
		return nil
	}
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

// Labels returns the candidate descriptions in load order.
func (s *CandidateSet) Labels() []string {
	if s == nil {
		return nil
	}
	labels := make([]string, len(s.items))
	for i, c := range s.items {
		labels[i] = c.Describe()
	}
	return labels
}
