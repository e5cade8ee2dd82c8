package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/model"
)

// Context carries one attempt of one run through its handler. Step and
// SleepUntil are positional: handlers must call them in a deterministic
// order so a resumed attempt skips exactly the work already recorded.
type Context struct {
	ctx    context.Context
	engine *Engine
	run    *model.WorkflowRun
	pos    int
}

// Context exposes the scheduler's context for cancellation-aware work.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Payload decodes the event payload into v.
func (c *Context) Payload(v any) error {
	return ErrWorkflow.Wrap(json.Unmarshal(c.run.Payload, v))
}

// StartedAt is the time the run was first enqueued. Branch decisions that
// must stay stable across retries and wakes (such as "was the task due
// the day it was assigned") are made against this, never against now.
func (c *Context) StartedAt() time.Time {
	return c.run.CreatedAt
}

// DB returns the store handle for handler mutations.
func (c *Context) DB() *gorm.DB {
	return c.engine.db
}

// Step runs fn unless an earlier attempt already completed this step. On
// success the progress is persisted immediately, so a later failure in
// the same attempt never re-runs it.
func (c *Context) Step(name string, fn func() error) error {
	idx := c.pos
	c.pos++
	if c.run.Step > idx {
		return nil
	}
	if err := fn(); err != nil {
		return ErrWorkflow.Wrap(fmt.Errorf("step %s: %w", name, err))
	}
	return c.advance(idx, name)
}

// SleepUntil suspends the run until t. If t has already passed the step
// completes immediately. The wake time is persisted; the scheduler
// resumes the run after t even across process restarts.
func (c *Context) SleepUntil(name string, t time.Time) error {
	idx := c.pos
	c.pos++
	if c.run.Step > idx {
		return nil
	}
	if !c.engine.now().Before(t) {
		return c.advance(idx, name)
	}
	c.run.WakeAt = &t
	c.run.Step = idx + 1
	c.engine.log.Debug("workflow run sleeping",
		zap.String("event", c.run.Event), zap.String("run", c.run.ID),
		zap.String("step", name), zap.Time("wake_at", t))
	return errSuspend
}

func (c *Context) advance(idx int, name string) error {
	c.run.Step = idx + 1
	err := c.engine.db.Model(&model.WorkflowRun{}).
		Where("id = ?", c.run.ID).
		Update("step", c.run.Step).Error
	if err != nil {
		return ErrWorkflow.Wrap(fmt.Errorf("step %s: persist progress: %w", name, err))
	}
	return nil
}
