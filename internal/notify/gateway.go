// Package notify is the booking notification side-channel. The service
// layer hands a successful booking to a Gateway and moves on; delivery
// happens on a worker fed by a Redis queue, and no failure here ever
// reaches the booking caller.
package notify

import (
	"context"

	"queue-booking/internal/data/entity"
	"queue-booking/pkg/queue"

	"go.uber.org/zap"
)

// Gateway announces new bookings. Best-effort: implementations log and
// swallow delivery failures.
type Gateway interface {
	BookingCreated(ctx context.Context, slot *entity.QueueSlot, user *entity.User, branch *entity.Branch, org *entity.Organization) error
}

// QueueGateway publishes bookings onto the Redis job queue for the worker
// to deliver.
type QueueGateway struct {
	queue *queue.Queue
	log   *zap.Logger
}

func NewQueueGateway(q *queue.Queue, log *zap.Logger) *QueueGateway {
	return &QueueGateway{
		queue: q,
		log:   log.With(zap.String("component", "notify_gateway")),
	}
}

func (g *QueueGateway) BookingCreated(ctx context.Context, slot *entity.QueueSlot, user *entity.User, branch *entity.Branch, org *entity.Organization) error {
	payload := queue.BookingCreatedPayload{
		SlotID:           slot.ID,
		Date:             slot.Date,
		Time:             slot.Time,
		Status:           string(slot.Status),
		UserEmail:        user.Email,
		BranchName:       branch.Name,
		BranchAddress:    branch.Address,
		OrganizationName: org.Name,
	}
	if user.FullName != nil {
		payload.UserFullName = *user.FullName
	}

	if err := g.queue.EnqueueBookingCreated(ctx, payload); err != nil {
		g.log.Error("Failed to enqueue booking notification",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return err
	}

	return nil
}
