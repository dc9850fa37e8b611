package results

import (
	"time"

	"github.com/google/uuid"
)

// Collector is a tck.Reporter that records a Matrix. OnEnd, when set, is
// called with the finished matrix from EndTests.
type Collector struct {
	OnEnd func(*Matrix)

	now     func() time.Time
	matrix  Matrix
	current *Trial
	row     int // StartTest calls since the instantiator began
}

// NewCollector returns a Collector stamping runs with a time-ordered id.
func NewCollector(onEnd func(*Matrix)) *Collector {
	return &Collector{OnEnd: onEnd, now: time.Now}
}

// Matrix returns the matrix recorded so far.
func (c *Collector) Matrix() *Matrix { return &c.matrix }

func (c *Collector) StartTests(platform string, candidates, instantiators []string) {
	c.matrix = Matrix{
		RunID:         newRunID(),
		Platform:      platform,
		Candidates:    append([]string(nil), candidates...),
		Instantiators: append([]string(nil), instantiators...),
		Started:       c.clock(),
	}
	c.row = 0
}

func (c *Collector) StartTest(candidate, instantiator string) {
	c.current = &Trial{Row: c.row, Candidate: candidate, Instantiator: instantiator}
	c.row++
}

func (c *Collector) Result(instantiated bool) {
	if c.current != nil {
		c.current.Instantiated = instantiated
	}
}

func (c *Collector) Exception(err error) {
	if c.current != nil {
		c.current.Err = err
	}
}

// Elapsed implements tck.TrialTimer.
func (c *Collector) Elapsed(d time.Duration) {
	if c.current != nil {
		c.current.Elapsed = d
	}
}

func (c *Collector) EndTest() {
	if c.current != nil {
		c.matrix.Trials = append(c.matrix.Trials, *c.current)
		c.current = nil
	}
}

func (c *Collector) EndInstantiator(string) { c.row = 0 }

func (c *Collector) EndTests() {
	c.matrix.Finished = c.clock()
	if c.OnEnd != nil {
		c.OnEnd(&c.matrix)
	}
}

func (c *Collector) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
