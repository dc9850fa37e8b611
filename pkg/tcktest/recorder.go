package tcktest

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Recorder is a Reporter that logs every call as a string, for asserting on
// call order. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	calls    []string
	errs     []error
	elapsed  []time.Duration
	platform string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded call log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Errors returns the errors passed to Exception, in order.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

// Durations returns the trial durations passed to Elapsed, in order.
func (r *Recorder) Durations() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.elapsed))
	copy(out, r.elapsed)
	return out
}

// Platform returns the platform description passed to StartTests.
func (r *Recorder) Platform() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.platform
}

func (r *Recorder) StartTests(platform string, candidates, instantiators []string) {
	r.mu.Lock()
	r.platform = platform
	r.mu.Unlock()
	r.add("StartTests([%s], [%s])", strings.Join(candidates, " "), strings.Join(instantiators, " "))
}

func (r *Recorder) StartTest(candidate, instantiator string) {
	r.add("StartTest(%s, %s)", candidate, instantiator)
}

func (r *Recorder) Result(instantiated bool) { r.add("Result(%t)", instantiated) }

func (r *Recorder) Exception(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.add("Exception")
}

func (r *Recorder) Elapsed(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = append(r.elapsed, d)
}

func (r *Recorder) EndTest() { r.add("EndTest") }

func (r *Recorder) EndInstantiator(instantiator string) {
	r.add("EndInstantiator(%s)", instantiator)
}

func (r *Recorder) EndTests() { r.add("EndTests") }
