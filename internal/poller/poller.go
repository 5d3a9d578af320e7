// Package poller runs a fetch on a fixed period and hands each result to a
// sink until stopped.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CycleObserver is notified after each delivered cycle
type CycleObserver interface {
	ObservePollCycle(view string)
}

type options struct {
	view      string
	logger    *zap.Logger
	observer  CycleObserver
	immediate bool
}

// Option configures a Task
type Option func(*options)

// WithView names the task in logs and metrics
func WithView(view string) Option {
	return func(o *options) { o.view = view }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets the cycle observer
func WithObserver(obs CycleObserver) Option {
	return func(o *options) { o.observer = obs }
}

// WithoutImmediate waits for the first tick instead of fetching at start
func WithoutImmediate() Option {
	return func(o *options) { o.immediate = false }
}

// Task is a running poll loop. A tick that fires while the previous cycle is
// still running is skipped.
type Task struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	view   string
	logger *zap.Logger

	mu      sync.Mutex
	stopped bool
}

// Start fetches every interval and passes results to sink. Intervals below
// one second are rounded up to one second. sink must not call Stop.
func Start[T any](interval time.Duration, fetch func(context.Context) T, sink func(T), opts ...Option) *Task {
	o := options{view: "default", logger: zap.NewNop(), immediate: true}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		ctx:    ctx,
		cancel: cancel,
		view:   o.view,
		logger: o.logger.With(zap.String("view", o.view)),
	}

	cycle := func() {
		if t.ctx.Err() != nil {
			return
		}
		v := fetch(t.ctx)

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.stopped {
			t.logger.Debug("discarding result of cancelled cycle")
			return
		}
		sink(v)
		if o.observer != nil {
			o.observer.ObservePollCycle(o.view)
		}
	}

	clog := cronLogger{t.logger}
	job := cron.NewChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)).Then(cron.FuncJob(cycle))

	t.cron = cron.New(cron.WithLogger(clog))
	t.cron.Schedule(cron.Every(interval), job)
	t.cron.Start()

	if o.immediate {
		go job.Run()
	}

	t.logger.Debug("poller started", zap.Duration("interval", interval))
	return t
}

// Stop cancels the in-flight fetch and guarantees no sink call begins after
// it returns. It is safe to call more than once.
func (t *Task) Stop() {
	t.cancel()

	t.mu.Lock()
	already := t.stopped
	t.stopped = true
	t.mu.Unlock()

	if already {
		return
	}
	t.cron.Stop()
	t.logger.Debug("poller stopped")
}

// Stopped reports whether Stop has been called
func (t *Task) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
