package tck

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TCK owns the instantiator registry and drives the test matrix.
type TCK struct {
	registry    *Registry
	logger      *zap.Logger
	parallelism int
	platform    string
	now         func() time.Time
}

// Option configures a TCK.
type Option func(*config)

type config struct {
	logger      *zap.Logger
	parallelism int
	platform    string
	strict      bool
	now         func() time.Time
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithParallelism tries up to n candidates of one instantiator at once.
// Reports are still delivered in candidate order. n <= 1 runs sequentially.
// Instantiators must be safe for concurrent use when n > 1.
func WithParallelism(n int) Option {
	return func(c *config) { c.parallelism = n }
}

// WithPlatform overrides the platform description passed to StartTests.
func WithPlatform(desc string) Option {
	return func(c *config) { c.platform = desc }
}

// WithStrictRegistration makes a repeated instantiator label an error
// instead of replacing the earlier registration.
func WithStrictRegistration() Option {
	return func(c *config) { c.strict = true }
}

// WithClock sets the time source used for trial durations.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns an engine with an empty registry.
func New(opts ...Option) *TCK {
	cfg := config{logger: zap.NewNop(), parallelism: 1, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.platform == "" {
		cfg.platform = PlatformDescription()
	}
	return &TCK{
		registry:    NewRegistry(cfg.strict, cfg.logger),
		logger:      cfg.logger,
		parallelism: cfg.parallelism,
		platform:    cfg.platform,
		now:         cfg.now,
	}
}

// PlatformDescription describes the running Go toolchain and target.
func PlatformDescription() string {
	return fmt.Sprintf("Go %s %s/%s (%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.Compiler)
}

// RegisterInstantiator adds inst to the matrix under label.
func (k *TCK) RegisterInstantiator(label string, inst Instantiator) error {
	return k.registry.Register(label, inst)
}

// Registry exposes the instantiator registry.
func (k *TCK) Registry() *Registry { return k.registry }

// Run executes every (instantiator, candidate) trial and reports each one.
// Outcomes flow only through r; a failing trial never stops the run.
func (k *TCK) Run(set *CandidateSet, r Reporter) {
	_ = k.RunContext(context.Background(), set, r)
}

// RunContext is Run with cancellation. Once ctx is done no new trial starts;
// the current instantiator and the run are still closed on r, and ctx.Err()
// is returned.
func (k *TCK) RunContext(ctx context.Context, set *CandidateSet, r Reporter) error {
	if r == nil {
		r = nopReporter{}
	}
	entries := k.registry.Entries()
	candidates := set.Candidates()
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}

	k.logger.Info("starting tck run",
		zap.String("platform", k.platform),
		zap.Int("candidates", len(candidates)),
		zap.Int("instantiators", len(entries)),
		zap.Int("parallelism", k.parallelism))

	r.StartTests(k.platform, set.Labels(), labels)
	var runErr error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		var err error
		if k.parallelism > 1 {
			err = k.runParallel(ctx, e, candidates, r)
		} else {
			err = k.runSequential(ctx, e, candidates, r)
		}
		r.EndInstantiator(e.Label)
		if err != nil {
			runErr = err
			break
		}
	}
	r.EndTests()

	if runErr != nil {
		k.logger.Warn("tck run cancelled", zap.Error(runErr))
	} else {
		k.logger.Info("tck run finished")
	}
	return runErr
}

func (k *TCK) runSequential(ctx context.Context, e Registration, candidates []Candidate, r Reporter) error {
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.StartTest(c.Describe(), e.Label)
		out := k.try(e.Instantiator, c)
		k.logTrial(e.Label, c, out)
		deliver(r, out)
	}
	return nil
}

// runParallel tries candidates on a bounded pool, then replays the buffered
// outcomes in candidate order. After cancellation only the completed prefix
// is reported.
func (k *TCK) runParallel(ctx context.Context, e Registration, candidates []Candidate, r Reporter) error {
	outcomes := make([]outcome, len(candidates))
	done := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(k.parallelism)
	for i, c := range candidates {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			outcomes[i] = k.try(e.Instantiator, c)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range candidates {
		if !done[i] {
			return ctx.Err()
		}
		r.StartTest(c.Describe(), e.Label)
		k.logTrial(e.Label, c, outcomes[i])
		deliver(r, outcomes[i])
	}
	return ctx.Err()
}

func (k *TCK) logTrial(label string, c Candidate, out outcome) {
	if ce := k.logger.Check(zap.DebugLevel, "trial"); ce != nil {
		ce.Write(
			zap.String("instantiator", label),
			zap.String("candidate", c.Name),
			zap.Bool("instantiated", out.ok),
			zap.Duration("elapsed", out.elapsed),
			zap.Error(out.err))
	}
}

type nopReporter struct{}

func (nopReporter) StartTests(string, []string, []string) {}
func (nopReporter) StartTest(string, string)              {}
func (nopReporter) Result(bool)                           {}
func (nopReporter) Exception(error)                       {}
func (nopReporter) EndTest()                              {}
func (nopReporter) EndInstantiator(string)                {}
func (nopReporter) EndTests()                             {}
