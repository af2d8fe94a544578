// Package schedule implements the scheduled worker pool (§4.I): one-shot
// and recurring task submission over a fixed-size pool of named worker
// goroutines, with the logging-correlation context and any configured
// propagators installed on every task body.
package schedule

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/resilientgo/core/pkg/propagation"
	"github.com/resilientgo/core/pkg/rerrors"
	"github.com/resilientgo/core/pkg/rlog"
)

const component = "schedule"

// DefaultNamePrefix is used when Config.NamePrefix is empty.
const DefaultNamePrefix = "resilience-scheduler"

// Task is a unit of scheduled work. ctx carries the logging-correlation
// map and any configured propagator values installed for this run.
type Task func(ctx context.Context)

// Config configures an Executor.
type Config struct {
	// CorePoolSize is the number of worker goroutines. Must be >= 1.
	CorePoolSize int
	// NamePrefix names worker goroutines "{NamePrefix}-1", "-2", ... The
	// counter is per-Executor; it never resets and never reuses a number.
	NamePrefix string
	// Propagators run, in addition to the built-in correlation
	// propagator, on every submitted task.
	Propagators []propagation.Propagator
	// Logger receives a swallowed panic from a task body. Defaults to
	// rlog.Global().
	Logger *rlog.Logger
}

// DefaultConfig returns a single-worker configuration with no additional
// propagators.
func DefaultConfig() *Config {
	return &Config{CorePoolSize: 1, NamePrefix: DefaultNamePrefix}
}

// Executor is a fixed-size pool of named worker goroutines accepting
// one-shot and recurring tasks.
type Executor struct {
	namePrefix  string
	workerSeq   atomic.Uint64
	propagators []propagation.Propagator
	logger      *rlog.Logger

	tasks  chan namedTask
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

type namedTask struct {
	fn   func()
	done chan struct{}
}

// New creates an Executor per config, starting config.CorePoolSize worker
// goroutines immediately. CorePoolSize < 1 fails validation.
func New(config *Config) (*Executor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.CorePoolSize < 1 {
		return nil, rerrors.Validationf(component, "core pool size must be >= 1, got %d", config.CorePoolSize)
	}

	namePrefix := config.NamePrefix
	if namePrefix == "" {
		namePrefix = DefaultNamePrefix
	}
	logger := config.Logger
	if logger == nil {
		logger = rlog.Global()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(context.Background())

	e := &Executor{
		namePrefix:  namePrefix,
		propagators: config.Propagators,
		logger:      logger,
		tasks:       make(chan namedTask),
		ctx:         ctx,
		cancel:      cancel,
		group:       g,
	}

	for i := 0; i < config.CorePoolSize; i++ {
		e.startWorker()
	}
	return e, nil
}

func (e *Executor) startWorker() {
	name := fmt.Sprintf("%s-%d", e.namePrefix, e.workerSeq.Add(1))
	e.group.Go(func() error {
		for {
			select {
			case <-e.ctx.Done():
				return nil
			case t, ok := <-e.tasks:
				if !ok {
					return nil
				}
				e.runTask(name, t)
			}
		}
	})
}

func (e *Executor) runTask(workerName string, t namedTask) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("scheduled task panicked on %s: %v", workerName, r)
		}
		close(t.done)
	}()
	t.fn()
}

// submitAndWait hands fn to the worker pool and blocks until it has run, or
// the executor is shut down first.
func (e *Executor) submitAndWait(fn func()) {
	done := make(chan struct{})
	select {
	case e.tasks <- namedTask{fn: fn, done: done}:
	case <-e.ctx.Done():
		return
	}
	select {
	case <-done:
	case <-e.ctx.Done():
	}
}

// decorate installs the built-in correlation propagator (capturing
// whatever correlation map is present on ctx) ahead of any configured
// propagators, per §4.I step 1-2.
func (e *Executor) decorate(ctx context.Context, task Task) propagation.WorkItem {
	all := make([]propagation.Propagator, 0, len(e.propagators)+1)
	all = append(all, propagation.Correlation{Ctx: ctx})
	all = append(all, e.propagators...)
	return propagation.DecorateAll(all, func(dctx context.Context) { task(dctx) })
}

// Handle cancels a scheduled task. Cancel is idempotent.
type Handle struct {
	id      uuid.UUID
	cancels []func()
}

// ID returns the handle's unique identifier.
func (h *Handle) ID() string { return h.id.String() }

// Cancel stops future runs of the task. A run already in flight on a worker
// goroutine completes.
func (h *Handle) Cancel() {
	for _, c := range h.cancels {
		c()
	}
}

// Schedule runs task once, after delay, on a worker goroutine.
func (e *Executor) Schedule(ctx context.Context, delay time.Duration, task Task) (*Handle, error) {
	if e.ctx.Err() != nil {
		return nil, rerrors.Validationf(component, "executor is shut down, rejecting submission")
	}
	if delay < 0 {
		return nil, rerrors.Validationf(component, "delay must be >= 0, got %v", delay)
	}
	decorated := e.decorate(ctx, task)
	taskCtx, cancel := context.WithCancel(e.ctx)

	timer := time.AfterFunc(delay, func() {
		select {
		case <-taskCtx.Done():
			return
		default:
		}
		e.submitAndWait(func() { decorated(taskCtx) })
	})

	return &Handle{id: uuid.New(), cancels: []func(){cancel, func() { timer.Stop() }}}, nil
}

// ScheduleAtFixedRate runs task every period, first after initialDelay. The
// next scheduled start is always previous_scheduled_start + period, even if
// a run overran — successive runs never overlap; an overrun shifts later
// starts later but never causes two runs to execute concurrently.
func (e *Executor) ScheduleAtFixedRate(ctx context.Context, initialDelay, period time.Duration, task Task) (*Handle, error) {
	if e.ctx.Err() != nil {
		return nil, rerrors.Validationf(component, "executor is shut down, rejecting submission")
	}
	if period <= 0 {
		return nil, rerrors.Validationf(component, "period must be > 0, got %v", period)
	}
	if initialDelay < 0 {
		return nil, rerrors.Validationf(component, "initial delay must be >= 0, got %v", initialDelay)
	}

	decorated := e.decorate(ctx, task)
	taskCtx, cancel := context.WithCancel(e.ctx)

	go func() {
		nextStart := time.Now().Add(initialDelay)
		timer := time.NewTimer(initialDelay)
		defer timer.Stop()

		for {
			select {
			case <-taskCtx.Done():
				return
			case <-timer.C:
			}

			select {
			case <-taskCtx.Done():
				return
			default:
			}

			e.submitAndWait(func() { decorated(taskCtx) })

			nextStart = nextStart.Add(period)
			d := time.Until(nextStart)
			if d < 0 {
				d = 0
			}
			timer.Reset(d)
		}
	}()

	return &Handle{id: uuid.New(), cancels: []func(){cancel}}, nil
}

// ScheduleWithFixedDelay runs task repeatedly, first after initialDelay,
// then delay after each run's completion (previous_run_end + delay).
func (e *Executor) ScheduleWithFixedDelay(ctx context.Context, initialDelay, delay time.Duration, task Task) (*Handle, error) {
	if e.ctx.Err() != nil {
		return nil, rerrors.Validationf(component, "executor is shut down, rejecting submission")
	}
	if delay <= 0 {
		return nil, rerrors.Validationf(component, "delay must be > 0, got %v", delay)
	}
	if initialDelay < 0 {
		return nil, rerrors.Validationf(component, "initial delay must be >= 0, got %v", initialDelay)
	}

	decorated := e.decorate(ctx, task)
	taskCtx, cancel := context.WithCancel(e.ctx)

	go func() {
		timer := time.NewTimer(initialDelay)
		defer timer.Stop()

		for {
			select {
			case <-taskCtx.Done():
				return
			case <-timer.C:
			}

			select {
			case <-taskCtx.Done():
				return
			default:
			}

			e.submitAndWait(func() { decorated(taskCtx) })
			timer.Reset(delay)
		}
	}()

	return &Handle{id: uuid.New(), cancels: []func(){cancel}}, nil
}

// Shutdown cancels every outstanding and future task, then waits for
// in-flight worker goroutines to drain, or for ctx to expire first.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.cancel()

	done := make(chan error, 1)
	go func() { done <- e.group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
