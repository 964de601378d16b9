package mail

import (
	"context"
	"fmt"
)

// Service is the producer side: it validates and enqueues jobs. It satisfies
// the auth service's Mailer interface.
type Service struct {
	queue *Queue
}

func NewService(queue *Queue) *Service {
	return &Service{queue: queue}
}

func (s *Service) Enqueue(ctx context.Context, template, to string, vars map[string]string) error {
	if !KnownTemplate(template) {
		return fmt.Errorf("unknown mail template %q", template)
	}
	if to == "" {
		return fmt.Errorf("missing recipient")
	}

	return s.queue.Push(ctx, Job{Template: template, To: to, Vars: vars})
}
