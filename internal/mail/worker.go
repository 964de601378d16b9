package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	msg := []byte("From: " + s.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}

	return smtp.SendMail(addr, auth, s.From, []string{to}, msg)
}

// Worker consumes the queue and delivers messages. Delivery failures are
// logged and the job is dropped; callers never observe them.
type Worker struct {
	queue  *Queue
	sender Sender
	log    *slog.Logger
}

func NewWorker(queue *Queue, sender Sender, log *slog.Logger) *Worker {
	return &Worker{queue: queue, sender: sender, log: log}
}

// Run blocks until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.queue.Pop(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Error("mail queue pop failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		w.process(job)
	}
}

func (w *Worker) process(job *Job) {
	subject, body, err := Render(job)
	if err != nil {
		w.log.Error("dropping unrenderable mail job", "template", job.Template, "error", err)
		return
	}

	if err := w.sender.Send(job.To, subject, body); err != nil {
		w.log.Error("mail delivery failed", "template", job.Template, "to", job.To, "error", err)
		return
	}

	w.log.Info("mail delivered", "template", job.Template, "to", job.To)
}
