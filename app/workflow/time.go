package workflow

import (
	"time"

	"taskhub/app/model"
)

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func projectName(p *model.Project) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
