package tck

import (
	"reflect"
	"runtime/debug"
	"time"
)

type outcome struct {
	ok      bool
	err     error
	elapsed time.Duration
}

// try runs one trial. Errors and panics from inst become outcome.err.
func (k *TCK) try(inst Instantiator, c Candidate) (out outcome) {
	start := k.now()
	defer func() {
		if v := recover(); v != nil {
			out = outcome{err: &PanicError{Value: v, Stack: debug.Stack()}}
		}
		out.elapsed = k.now().Sub(start)
	}()

	obj, err := inst.NewInstance(c.Type)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{ok: IsInstanceOf(obj, c.Type)}
}

// IsInstanceOf reports whether obj is a non-nil *t. A pointer to any other
// type, including one embedding t, does not count.
func IsInstanceOf(obj any, t reflect.Type) bool {
	if obj == nil || t == nil {
		return false
	}
	v := reflect.ValueOf(obj)
	return v.Type() == reflect.PointerTo(t) && !v.IsNil()
}

func deliver(r Reporter, out outcome) {
	if out.err != nil {
		r.Exception(out.err)
	} else {
		r.Result(out.ok)
	}
	if t, ok := r.(TrialTimer); ok {
		t.Elapsed(out.elapsed)
	}
	r.EndTest()
}
