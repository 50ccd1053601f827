package services

import (
	"log"

	"nichehotel-backend/models"
)

// Dispatcher fans lifecycle events out to the audit log and the webhook
// sender. The audit write happens synchronously so the trail is complete
// when the request returns; webhook delivery runs in the background.
type Dispatcher struct {
	Webhooks *WebhookService
	Activity *ActivityService
}

func NewDispatcher(webhooks *WebhookService, activity *ActivityService) *Dispatcher {
	return &Dispatcher{Webhooks: webhooks, Activity: activity}
}

// Dispatch handles all events produced by one operation. userID is the
// acting admin, or zero for the public booking form.
func (d *Dispatcher) Dispatch(userID uint, events []models.Event, booking models.Booking) {
	for _, event := range events {
		if d.Activity != nil {
			details := map[string]any{"event_id": event.ID, "booking_id": event.BookingID}
			for k, v := range event.Details {
				details[k] = v
			}
			if err := d.Activity.Log(userID, event.Name, details); err != nil {
				log.Printf("activity log %s: %v", event.Name, err)
			}
		}
		if d.Webhooks != nil {
			ev := event
			go d.Webhooks.Send(ev, booking)
		}
	}
}
