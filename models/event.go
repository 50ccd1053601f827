package models

import "time"

// Lifecycle event names. The first four have webhook targets; the generic
// *_updated events exist for the activity log only.
const (
	EventBookingCreated        = "booking_created"
	EventGuestCheckedIn        = "guest_checked_in"
	EventGuestCheckedOut       = "guest_checked_out"
	EventPaymentReceived       = "payment_received"
	EventBookingStatusUpdated  = "booking_status_updated"
	EventBookingPaymentUpdated = "booking_payment_updated"
)

// Event is a domain event produced by a lifecycle operation. The engine only
// returns events; the composition root dispatches them to the webhook sender
// and the activity logger, so the core stays free of I/O.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"event"`
	BookingID  uint           `json:"booking_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Details    map[string]any `json:"details,omitempty"`
}
