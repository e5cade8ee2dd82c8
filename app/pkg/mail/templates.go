package mail

import (
	"html/template"
	"strings"
	"time"
)

// TaskMailData feeds the assignment and reminder templates.
type TaskMailData struct {
	Name    string
	Project string
	Title   string
	DueDate time.Time
	Origin  string
}

type welcomeData struct {
	Name string
}

var (
	welcomeTpl    = template.Must(template.New("welcome").Parse(welcomeHTML))
	assignmentTpl = template.Must(template.New("assignment").Parse(assignmentHTML))
	reminderTpl   = template.Must(template.New("reminder").Parse(reminderHTML))
)

func render(tpl *template.Template, data any) string {
	var b strings.Builder
	// templates are static and parsed at init; execution cannot fail on
	// these value types
	_ = tpl.Execute(&b, data)
	return b.String()
}

// Welcome renders the mail sent when an identity-provider account is
// first synced.
func Welcome(name string) *Message {
	if name == "" {
		name = "there"
	}
	return &Message{
		Subject: "Welcome to Taskhub",
		Body:    render(welcomeTpl, welcomeData{Name: name}),
	}
}

// Assignment renders the mail sent when a task is assigned.
func Assignment(data TaskMailData) *Message {
	return &Message{
		Subject: "New task assignment in " + data.Project,
		Body:    render(assignmentTpl, data),
	}
}

// Reminder renders the due-date reminder for a task that is not done.
func Reminder(data TaskMailData) *Message {
	return &Message{
		Subject: "Reminder for " + data.Project,
		Body:    render(reminderTpl, data),
	}
}

const welcomeHTML = `<table width="100%" cellpadding="0" cellspacing="0" style="font-family:Arial,Helvetica,sans-serif;background-color:#f4f6f8;padding:30px;">
<tr><td align="center"><table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">
<tr><td style="padding:20px 30px;border-bottom:1px solid #eaeaea;"><h2 style="margin:0;color:#333;">Welcome aboard</h2></td></tr>
<tr><td style="padding:30px;color:#555;font-size:15px;line-height:1.6;">
<p>Hi <strong>{{.Name}}</strong>,</p>
<p>Your account is ready. Join a workspace or wait for an invite, and your projects and tasks will show up here.</p>
<p style="margin-top:30px;">Best regards,<br /><strong>The Taskhub Team</strong></p>
</td></tr>
<tr><td style="padding:15px 30px;background:#f9fafb;font-size:12px;color:#888;text-align:center;border-top:1px solid #eaeaea;">This is an automated message. Please do not reply.</td></tr>
</table></td></tr></table>`

const assignmentHTML = `<table width="100%" cellpadding="0" cellspacing="0" style="font-family:Arial,Helvetica,sans-serif;background-color:#f4f6f8;padding:30px;">
<tr><td align="center"><table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">
<tr><td style="padding:20px 30px;border-bottom:1px solid #eaeaea;"><h2 style="margin:0;color:#333;">New Task Assigned</h2></td></tr>
<tr><td style="padding:30px;color:#555;font-size:15px;line-height:1.6;">
<p>Hi <strong>{{.Name}}</strong>,</p>
<p>You have been assigned a new task. Please review and complete it before the due date.</p>
<table width="100%" cellpadding="0" cellspacing="0" style="margin:20px 0;">
<tr><td style="padding:8px 0;width:120px;"><strong>Task:</strong></td><td style="padding:8px 0;">{{.Title}}</td></tr>
<tr><td style="padding:8px 0;"><strong>Due Date:</strong></td><td style="padding:8px 0;">{{.DueDate.Format "Jan 2, 2006"}}</td></tr>
</table>
{{if .Origin}}<p style="text-align:center;margin:30px 0;"><a href="{{.Origin}}" style="background:#2563eb;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;font-weight:bold;display:inline-block;">View Task</a></p>{{end}}
<p style="margin-top:30px;">Best regards,<br /><strong>The Taskhub Team</strong></p>
</td></tr>
<tr><td style="padding:15px 30px;background:#f9fafb;font-size:12px;color:#888;text-align:center;border-top:1px solid #eaeaea;">This is an automated message. Please do not reply.</td></tr>
</table></td></tr></table>`

const reminderHTML = `<table width="100%" cellpadding="0" cellspacing="0" style="font-family:Arial,Helvetica,sans-serif;background-color:#f4f6f8;padding:30px;">
<tr><td align="center"><table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">
<tr><td style="padding:20px 30px;border-bottom:1px solid #eaeaea;"><h2 style="margin:0;color:#333;">Task Due Today</h2></td></tr>
<tr><td style="padding:30px;color:#555;font-size:15px;line-height:1.6;">
<p>Hi <strong>{{.Name}}</strong>,</p>
<p>This is a friendly reminder that the following task is <strong>due today</strong>.</p>
<table width="100%" cellpadding="0" cellspacing="0" style="margin:20px 0;">
<tr><td style="padding:8px 0;width:120px;"><strong>Task:</strong></td><td style="padding:8px 0;">{{.Title}}</td></tr>
<tr><td style="padding:8px 0;"><strong>Due Date:</strong></td><td style="padding:8px 0;color:#d97706;font-weight:bold;">{{.DueDate.Format "Jan 2, 2006"}}</td></tr>
</table>
{{if .Origin}}<p style="text-align:center;margin:30px 0;"><a href="{{.Origin}}" style="background:#d97706;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;font-weight:bold;display:inline-block;">View Task</a></p>{{end}}
<p>If the task has already been completed, feel free to disregard this message.</p>
<p style="margin-top:30px;">Best regards,<br /><strong>The Taskhub Team</strong></p>
</td></tr>
<tr><td style="padding:15px 30px;background:#f9fafb;font-size:12px;color:#888;text-align:center;border-top:1px solid #eaeaea;">This is an automated reminder. Please do not reply.</td></tr>
</table></td></tr></table>`
