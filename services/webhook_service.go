package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"nichehotel-backend/models"
)

const webhookTimeout = 10 * time.Second

// WebhookService delivers lifecycle events to the URLs configured in
// settings. Deliveries are best effort: failures are logged and counted,
// never surfaced to the operation that produced the event.
type WebhookService struct {
	Settings *SettingsService
	Client   *http.Client
	Metrics  *Metrics

	// LookupIP resolves the target host for the private-address check.
	// Injectable so tests can pin answers.
	LookupIP func(host string) ([]net.IP, error)
}

func NewWebhookService(settings *SettingsService, metrics *Metrics) *WebhookService {
	return &WebhookService{
		Settings: settings,
		Client:   &http.Client{Timeout: webhookTimeout},
		Metrics:  metrics,
		LookupIP: net.LookupIP,
	}
}

// checkTarget rejects URLs that would let a configured webhook reach
// internal infrastructure: non-http schemes, loopback, RFC1918 ranges,
// link-local addresses and the cloud metadata endpoint.
func (w *WebhookService) checkTarget(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("webhook url scheme %q not allowed", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("webhook url has no host")
	}

	ips, err := w.LookupIP(host)
	if err != nil {
		return fmt.Errorf("resolve webhook host %q: %w", host, err)
	}
	metadata := net.ParseIP("169.254.169.254")
	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
			ip.IsLinkLocalMulticast() || ip.IsUnspecified() || ip.Equal(metadata) {
			return fmt.Errorf("webhook host %q resolves to blocked address %s", host, ip)
		}
	}
	return nil
}

// BookingWebhookPayload is the body posted to webhook targets.
type BookingWebhookPayload struct {
	Event       string  `json:"event"`
	BookingID   uint    `json:"booking_id"`
	BookingCode string  `json:"booking_code"`
	Guest       string  `json:"guest"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Hotel       string  `json:"hotel"`
	Checkin     string  `json:"checkin"`
	Checkout    string  `json:"checkout"`
	Nights      int     `json:"nights"`
	Adults      int     `json:"adults"`
	Children    int     `json:"children"`
	Rooms       string  `json:"rooms"`
	RoomTypes   string  `json:"room_types"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
	Payment     string  `json:"payment"`
	OccurredAt  string  `json:"occurred_at"`
}

// BuildBookingPayload flattens a booking for webhook consumers. Dates use
// m/d/Y to match what the downstream form tooling expects.
func BuildBookingPayload(event models.Event, booking models.Booking) BookingWebhookPayload {
	const displayDate = "01/02/2006"
	p := BookingWebhookPayload{
		Event:       event.Name,
		BookingID:   booking.ID,
		BookingCode: booking.BookingCode,
		Guest:       booking.GuestName,
		Email:       booking.GuestEmail,
		Phone:       booking.GuestPhone,
		Hotel:       booking.HotelName,
		Nights:      booking.Nights,
		Adults:      booking.Adults,
		Children:    booking.Children,
		Rooms:       RoomNumberDisplay(booking),
		RoomTypes:   RoomTypeDisplay(booking),
		Subtotal:    booking.Subtotal,
		Tax:         booking.Tax,
		Total:       booking.Total,
		Status:      booking.Status,
		Payment:     booking.PaymentStatus,
		OccurredAt:  event.OccurredAt.Format(time.RFC3339),
	}
	if booking.CheckinDate != nil {
		p.Checkin = booking.CheckinDate.Format(displayDate)
	}
	if booking.CheckoutDate != nil {
		p.Checkout = booking.CheckoutDate.Format(displayDate)
	}
	return p
}

// Send posts the event's payload to its configured target, if any. All
// failures are swallowed after logging; the lifecycle operation that
// produced the event has already committed.
func (w *WebhookService) Send(event models.Event, booking models.Booking) {
	target, err := w.Settings.WebhookURLFor(event.Name)
	if err != nil {
		log.Printf("webhook %s: load target: %v", event.Name, err)
		return
	}
	if target == "" {
		return
	}

	outcome := "delivered"
	defer func() {
		if w.Metrics != nil {
			w.Metrics.WebhookDeliveries.WithLabelValues(event.Name, outcome).Inc()
		}
	}()

	if err := w.checkTarget(target); err != nil {
		outcome = "blocked"
		log.Printf("webhook %s: %v", event.Name, err)
		return
	}

	body, err := json.Marshal(BuildBookingPayload(event, booking))
	if err != nil {
		outcome = "error"
		log.Printf("webhook %s: encode payload: %v", event.Name, err)
		return
	}

	resp, err := w.Client.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		outcome = "error"
		log.Printf("webhook %s: post %s: %v", event.Name, target, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		outcome = "error"
		log.Printf("webhook %s: target %s returned %d", event.Name, target, resp.StatusCode)
	}
}
