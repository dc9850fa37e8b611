// Package tcktest runs the TCK inside go test.
//
// Reporter turns every failed or panicking trial into a test failure, and
// FailOnClassNotFound does the same for unresolvable candidate names:
//
//	func TestStd(t *testing.T) {
//		tcktest.Run(t, candidates.Default(), candidates.General(), "std", instantiator.Std{})
//	}
package tcktest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/tck/pkg/candidatelist"
	"github.com/dkoosis/tck/pkg/tck"
)

// Reporter asserts that every trial instantiated its candidate.
// Failures are non-fatal so one run reports every broken cell.
type Reporter struct {
	t            testing.TB
	candidate    string
	instantiator string
	trials       int
}

// NewReporter returns a Reporter failing t.
func NewReporter(t testing.TB) *Reporter {
	return &Reporter{t: t}
}

// Trials returns the number of trials seen so far.
func (r *Reporter) Trials() int { return r.trials }

func (r *Reporter) StartTests(string, []string, []string) {}

func (r *Reporter) StartTest(candidate, instantiator string) {
	r.candidate = candidate
	r.instantiator = instantiator
	r.trials++
}

func (r *Reporter) Result(instantiated bool) {
	r.t.Helper()
	assert.Truef(r.t, instantiated, "Instantiating %s with %s failed", r.candidate, r.instantiator)
}

func (r *Reporter) Exception(err error) {
	r.t.Helper()
	msg := fmt.Sprintf("Exception when instantiating %s with %s: %v", r.candidate, r.instantiator, err)
	var pe *tck.PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		msg += "\n" + string(pe.Stack)
	}
	assert.Fail(r.t, msg)
}

func (r *Reporter) EndTest()               {}
func (r *Reporter) EndInstantiator(string) {}
func (r *Reporter) EndTests()              {}

// FailOnClassNotFound returns an error handler that fails t for every
// unresolvable candidate name.
func FailOnClassNotFound(t testing.TB) tck.ErrorHandler {
	return tck.ErrorHandlerFunc(func(name tck.ClassIdentifier, err error) {
		t.Helper()
		assert.Failf(t, "Class not found", "%s: %v", name, err)
	})
}

// Run loads entries against resolver, registers inst under label and runs
// the matrix, failing t for any unresolved name or failed trial.
func Run(t testing.TB, resolver tck.TypeResolver, entries []candidatelist.Entry, label string, inst tck.Instantiator, opts ...tck.Option) {
	t.Helper()
	set := tck.NewLoader(resolver, FailOnClassNotFound(t)).LoadEntries(entries)
	k := tck.New(opts...)
	if err := k.RegisterInstantiator(label, inst); err != nil {
		t.Fatalf("register %s: %v", label, err)
	}
	rep := NewReporter(t)
	k.Run(set, rep)
	assert.Equal(t, set.Len(), rep.Trials(), "every candidate should be tried once")
}
