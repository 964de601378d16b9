package mail

import (
	"bytes"
	"fmt"
	"text/template"
)

type messageTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]messageTemplate{
	"verification": {
		subject: "Verify your email address",
		body: template.Must(template.New("verification").Parse(
			"Hi {{.name}},\n\nUse the following token to verify your email address:\n\n{{.token}}\n\nIf you did not create an account, ignore this email.\n")),
	},
	"password-reset": {
		subject: "Reset your password",
		body: template.Must(template.New("password-reset").Parse(
			"Hi {{.name}},\n\nUse the following token to reset your password:\n\n{{.token}}\n\nIf you did not request a reset, ignore this email.\n")),
	},
	"email-change": {
		subject: "Confirm your new email address",
		body: template.Must(template.New("email-change").Parse(
			"Hi {{.name}},\n\nUse the following token to confirm your new email address:\n\n{{.token}}\n\nIf you did not request this change, ignore this email.\n")),
	},
	"welcome": {
		subject: "Welcome!",
		body: template.Must(template.New("welcome").Parse(
			"Hi {{.name}},\n\nYour account is ready.\n")),
	},
}

// Render produces the subject and body for a job's template.
func Render(job *Job) (string, string, error) {
	tmpl, ok := templates[job.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", job.Template)
	}

	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, job.Vars); err != nil {
		return "", "", fmt.Errorf("failed to render template %q: %w", job.Template, err)
	}

	return tmpl.subject, buf.String(), nil
}

// KnownTemplate reports whether name maps to a registered template, so bad
// template names fail at enqueue time rather than in the worker.
func KnownTemplate(name string) bool {
	_, ok := templates[name]
	return ok
}
