// Package notification is the fire-and-forget dispatch boundary. The core
// never blocks on delivery; the default implementation just logs.
package notification

import (
	"context"
	"log/slog"
)

type Event struct {
	Type        string
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
}

const (
	TypePayrollApproved     = "payroll_approved"
	TypeThirteenthGenerated = "thirteenth_month_generated"
)

type Dispatcher interface {
	// Dispatch queues an event for delivery. Implementations must not block
	// the caller on delivery and must never return delivery errors into the
	// core's control flow.
	Dispatch(ctx context.Context, event Event)
}

type logDispatcher struct{}

// NewLogDispatcher returns a Dispatcher that records events to the structured
// log instead of delivering them anywhere.
func NewLogDispatcher() Dispatcher {
	return logDispatcher{}
}

func (logDispatcher) Dispatch(_ context.Context, event Event) {
	slog.Info("notification dispatched",
		"type", event.Type,
		"recipient_id", event.RecipientID,
		"title", event.Title,
	)
}
