package tck

import "time"

// Reporter receives the outcome of a run as an ordered sequence of calls:
//
//	StartTests
//	  for each instantiator:
//	    for each candidate: StartTest, Result or Exception, EndTest
//	    EndInstantiator
//	EndTests
//
// Implementations decide what a failure means (assert, print, aggregate).
type Reporter interface {
	StartTests(platform string, candidates, instantiators []string)
	StartTest(candidate, instantiator string)
	Result(instantiated bool)
	Exception(err error)
	EndTest()
	EndInstantiator(instantiator string)
	EndTests()
}

// TrialTimer is implemented by reporters that want each trial's duration.
// Elapsed is called after Result or Exception and before EndTest.
type TrialTimer interface {
	Elapsed(d time.Duration)
}

// MultiReporter fans every call out to each reporter in order.
func MultiReporter(reporters ...Reporter) Reporter {
	all := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r == nil {
			continue
		}
		if m, ok := r.(multiReporter); ok {
			all = append(all, m...)
			continue
		}
		all = append(all, r)
	}
	return multiReporter(all)
}

type multiReporter []Reporter

func (m multiReporter) StartTests(platform string, candidates, instantiators []string) {
	for _, r := range m {
		r.StartTests(platform, candidates, instantiators)
	}
}

func (m multiReporter) StartTest(candidate, instantiator string) {
	for _, r := range m {
		r.StartTest(candidate, instantiator)
	}
}

func (m multiReporter) Result(instantiated bool) {
	for _, r := range m {
		r.Result(instantiated)
	}
}

func (m multiReporter) Exception(err error) {
	for _, r := range m {
		r.Exception(err)
	}
}

func (m multiReporter) Elapsed(d time.Duration) {
	for _, r := range m {
		if t, ok := r.(TrialTimer); ok {
			t.Elapsed(d)
		}
	}
}

func (m multiReporter) EndTest() {
	for _, r := range m {
		r.EndTest()
	}
}

func (m multiReporter) EndInstantiator(instantiator string) {
	for _, r := range m {
		r.EndInstantiator(instantiator)
	}
}

func (m multiReporter) EndTests() {
	for _, r := range m {
		r.EndTests()
	}
}
