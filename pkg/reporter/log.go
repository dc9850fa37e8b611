package reporter

import (
	"time"

	"go.uber.org/zap"
)

// Log writes one structured line per trial and per instantiator. Failed
// trials log at warn, everything else at debug or info.
type Log struct {
	logger       *zap.Logger
	candidate    string
	instantiator string
	start        time.Time
	passed       int
	failed       int
}

// NewLog returns a Log reporter. A nil logger discards output.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger.Named("tck")}
}

func (l *Log) StartTests(platform string, candidates, instantiators []string) {
	l.start = time.Now()
	l.logger.Info("run started",
		zap.String("platform", platform),
		zap.Strings("candidates", candidates),
		zap.Strings("instantiators", instantiators))
}

func (l *Log) StartTest(candidate, instantiator string) {
	l.candidate, l.instantiator = candidate, instantiator
}

func (l *Log) Result(instantiated bool) {
	if instantiated {
		l.passed++
		l.logger.Debug("instantiated", zap.String("candidate", l.candidate), zap.String("instantiator", l.instantiator))
		return
	}
	l.failed++
	l.logger.Warn("no usable instance", zap.String("candidate", l.candidate), zap.String("instantiator", l.instantiator))
}

func (l *Log) Exception(err error) {
	l.failed++
	l.logger.Warn("instantiation raised",
		zap.String("candidate", l.candidate),
		zap.String("instantiator", l.instantiator),
		zap.Error(err))
}

func (l *Log) EndTest() {}

func (l *Log) EndInstantiator(instantiator string) {
	l.logger.Info("instantiator finished", zap.String("instantiator", instantiator))
}

func (l *Log) EndTests() {
	l.logger.Info("run finished",
		zap.Int("passed", l.passed),
		zap.Int("failed", l.failed),
		zap.Duration("elapsed", time.Since(l.start)))
}
