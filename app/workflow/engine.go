// Package workflow runs durable multi-step background functions. Every
// execution is backed by a WorkflowRun row holding the event, payload,
// current step and wake time, so suspended or retrying runs survive
// process restarts: the scheduler simply resumes whatever is due.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/model"
)

var ErrWorkflow = errs.Class("workflow")

// errSuspend is returned through handlers when SleepUntil parks a run.
var errSuspend = errors.New("workflow run suspended")

type Config struct {
	PollInterval   time.Duration `help:"how often the scheduler looks for due runs" devDefault:"200ms" default:"2s"`
	MaxRetries     int           `help:"attempts before a run is dead-lettered" default:"5"`
	BaseRetryDelay time.Duration `help:"first retry backoff" default:"1s"`
	MaxRetryDelay  time.Duration `help:"retry backoff cap" default:"1m"`
}

// HandlerFunc is one registered workflow function. It must be written so
// every step boundary is an idempotent restart point; the Context step
// helpers take care of skipping work a previous attempt completed.
type HandlerFunc func(c *Context) error

type Engine struct {
	log      *zap.Logger
	db       *gorm.DB
	config   Config
	handlers map[string]HandlerFunc
	notify   chan struct{}
	now      func() time.Time
}

func NewEngine(log *zap.Logger, db *gorm.DB, config Config) *Engine {
	return &Engine{
		log:      log,
		db:       db,
		config:   config,
		handlers: map[string]HandlerFunc{},
		notify:   make(chan struct{}, 1),
		now:      time.Now,
	}
}

func (e *Engine) Register(event string, fn HandlerFunc) {
	e.handlers[event] = fn
}

// Send accepts a named event with a JSON payload and durably enqueues a
// run for its registered handler. It returns once the run is persisted;
// execution happens on the scheduler goroutine.
func (e *Engine) Send(ctx context.Context, event string, payload any) error {
	if _, ok := e.handlers[event]; !ok {
		return ErrWorkflow.New("no handler registered for event %q", event)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ErrWorkflow.Wrap(err)
	}
	run := &model.WorkflowRun{
		Event:   event,
		Payload: raw,
		Status:  model.WorkflowRunPending,
	}
	if err = e.db.WithContext(ctx).Create(run).Error; err != nil {
		return ErrWorkflow.Wrap(err)
	}
	select {
	case e.notify <- struct{}{}:
	default:
	}
	return nil
}

// Run drives the scheduler until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.config.PollInterval)
	defer ticker.Stop()
	for {
		e.RunDue(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-e.notify:
		}
	}
}

// RunDue executes every run whose wake time has passed. Exposed so tests
// can step the scheduler without the polling loop.
func (e *Engine) RunDue(ctx context.Context) {
	var runs []*model.WorkflowRun
	err := e.db.WithContext(ctx).
		Where("status in ?", []int{model.WorkflowRunPending, model.WorkflowRunSleeping}).
		Where("wake_at is null or wake_at <= ?", e.now()).
		Order("created_at").
		Find(&runs).Error
	if err != nil {
		e.log.Error("workflow poll failed", zap.Error(err))
		return
	}
	for _, run := range runs {
		if ctx.Err() != nil {
			return
		}
		e.execute(ctx, run)
	}
}

func (e *Engine) execute(ctx context.Context, run *model.WorkflowRun) {
	handler, ok := e.handlers[run.Event]
	if !ok {
		run.Status = model.WorkflowRunFailed
		run.LastError = "no handler registered"
		e.save(run)
		return
	}
	c := &Context{ctx: ctx, engine: e, run: run}
	err := handler(c)
	switch {
	case errors.Is(err, errSuspend):
		run.Status = model.WorkflowRunSleeping
	case err != nil:
		run.Attempts++
		run.LastError = err.Error()
		if run.Attempts >= e.config.MaxRetries {
			run.Status = model.WorkflowRunFailed
			run.WakeAt = nil
			e.log.Error("workflow run dead-lettered",
				zap.String("event", run.Event), zap.String("run", run.ID),
				zap.Int("attempts", run.Attempts), zap.Error(err))
		} else {
			wake := e.now().Add(e.backoff(run.Attempts))
			run.WakeAt = &wake
			run.Status = model.WorkflowRunPending
			e.log.Warn("workflow step failed, will retry",
				zap.String("event", run.Event), zap.String("run", run.ID),
				zap.Int("attempts", run.Attempts), zap.Error(err))
		}
	default:
		run.Status = model.WorkflowRunDone
		run.WakeAt = nil
		run.LastError = ""
	}
	e.save(run)
}

func (e *Engine) backoff(attempt int) time.Duration {
	d := e.config.BaseRetryDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= e.config.MaxRetryDelay {
			return e.config.MaxRetryDelay
		}
	}
	if d > e.config.MaxRetryDelay {
		d = e.config.MaxRetryDelay
	}
	return d
}

func (e *Engine) save(run *model.WorkflowRun) {
	if err := e.db.Save(run).Error; err != nil {
		e.log.Error("workflow run save failed", zap.String("run", run.ID), zap.Error(err))
	}
}
