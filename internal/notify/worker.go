package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"queue-booking/pkg/mailer"
	"queue-booking/pkg/queue"

	"go.uber.org/zap"
)

// Telegram abstracts the group announcement so the worker can be tested
// without the Bot API.
type Telegram interface {
	Send(ctx context.Context, text string) error
}

// Worker drains the booking notification queue and delivers each booking
// to the Telegram group and the booker's mailbox.
type Worker struct {
	queue    *queue.Queue
	telegram Telegram
	mail     mailer.Mailer
	log      *zap.Logger
}

func NewWorker(q *queue.Queue, telegram Telegram, mail mailer.Mailer, log *zap.Logger) *Worker {
	return &Worker{
		queue:    q,
		telegram: telegram,
		mail:     mail,
		log:      log.With(zap.String("component", "notify_worker")),
	}
}

// Process executes one booking notification job. A partial delivery (one
// channel succeeded, the other failed) is treated as a failure so the retry
// covers both; both deliveries are idempotent enough to repeat.
func (w *Worker) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeBookingCreated {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.BookingCreatedPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	var firstErr error

	if err := w.telegram.Send(ctx, bookingMessage(payload)); err != nil {
		w.log.Error("Telegram delivery failed",
			zap.Error(err),
			zap.String("slot_id", payload.SlotID.String()),
		)
		firstErr = err
	}

	subject := "Booking confirmation"
	if err := w.mail.Send(payload.UserEmail, subject, confirmationBody(payload)); err != nil {
		w.log.Error("Confirmation email delivery failed",
			zap.Error(err),
			zap.String("slot_id", payload.SlotID.String()),
			zap.String("email", payload.UserEmail),
		)
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		w.log.Info("Booking notification delivered",
			zap.String("slot_id", payload.SlotID.String()),
			zap.String("branch", payload.BranchName),
		)
	}
	return firstErr
}

// Run starts the worker loop: dequeue, process, retry on error.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("notification worker stopping")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Info("notification worker stopping")
				return
			}
			w.log.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		w.log.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := w.Process(ctx, job); err != nil {
			w.log.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := w.queue.Retry(ctx, job); reErr != nil {
				w.log.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}

func bookingMessage(p queue.BookingCreatedPayload) string {
	fullName := p.UserFullName
	if fullName == "" {
		fullName = "Not provided"
	}
	return fmt.Sprintf(
		"New booking created!\n\n"+
			"User: %s\n"+
			"Email: %s\n"+
			"Branch: %s\n"+
			"Organization: %s\n"+
			"Address: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Booking ID: %s\n"+
			"Status: %s",
		fullName, p.UserEmail, p.BranchName, p.OrganizationName,
		p.BranchAddress, p.Date, p.Time, p.SlotID.String(), p.Status,
	)
}

func confirmationBody(p queue.BookingCreatedPayload) string {
	return fmt.Sprintf(
		"Booking confirmation:\n\n"+
			"Branch: %s\n"+
			"Date: %s\n"+
			"Time: %s\n\n"+
			"Thank you for using our service!",
		p.BranchName, p.Date, p.Time,
	)
}
