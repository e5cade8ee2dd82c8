package workflow

import (
	"errors"

	"gorm.io/gorm"

	"taskhub/app/model"
	"taskhub/app/pkg/mail"
)

// taskAssigned is the multi-step assignment workflow: mail the assignee,
// and when the task is due on a later day, sleep until the due date and
// remind them if the task still is not done.
//
// The "due on a later day" decision compares against StartedAt, not the
// clock: by the time a sleeping run wakes, the due date IS today, and
// re-evaluating against now would skip the reminder branch entirely.
func (f *functions) taskAssigned(c *Context) error {
	var p TaskAssignedPayload
	if err := c.Payload(&p); err != nil {
		return err
	}

	var task model.Task
	err := f.db.Preload("Assignee").Preload("Project").First(&task, "id = ?", p.TaskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// assigned then deleted before the first attempt ran
			return nil
		}
		return err
	}
	if task.Assignee == nil {
		return nil
	}

	if err := c.Step("send-assignment-email", func() error {
		msg := mail.Assignment(mail.TaskMailData{
			Name:    task.Assignee.Name,
			Project: projectName(task.Project),
			Title:   task.Title,
			DueDate: deref(task.DueDate),
			Origin:  p.Origin,
		})
		msg.To = task.Assignee.Email
		return f.sender.Send(c.Context(), msg)
	}); err != nil {
		return err
	}

	// Due the day it was assigned (or unset, or already past): only the
	// assignment mail fires, no reminder is scheduled.
	if task.DueDate == nil || !task.DueDate.After(endOfDay(c.StartedAt())) {
		return nil
	}

	if err := c.SleepUntil("wait-for-the-due-date", *task.DueDate); err != nil {
		return err
	}

	return c.Step("check-and-send-reminder", func() error {
		var current model.Task
		err := f.db.Preload("Assignee").Preload("Project").First(&current, "id = ?", p.TaskID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// task deleted while we slept; nothing to remind about
			return nil
		}
		if err != nil {
			return err
		}
		if current.Status.IsDone() || current.Assignee == nil {
			return nil
		}
		msg := mail.Reminder(mail.TaskMailData{
			Name:    current.Assignee.Name,
			Project: projectName(current.Project),
			Title:   current.Title,
			DueDate: deref(current.DueDate),
			Origin:  p.Origin,
		})
		msg.To = current.Assignee.Email
		return f.sender.Send(c.Context(), msg)
	})
}
