package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"nichehotel-backend/models"
)

// RoomStatusForBooking maps a booking status to the status every allocated
// room takes on that transition. The second return is false for unknown
// statuses.
func RoomStatusForBooking(bookingStatus string) (string, bool) {
	switch bookingStatus {
	case models.BookingStatusCreated:
		return models.RoomStatusBooked, true
	case models.BookingStatusCheckedIn:
		return models.RoomStatusCheckedIn, true
	case models.BookingStatusCheckedOut, models.BookingStatusCanceled:
		return models.RoomStatusAvailable, true
	}
	return "", false
}

// MergeCheckinStamps stamps now for every room id missing from the map.
// Existing stamps are never overwritten, which is what makes staggered
// check-in across the rooms of one booking work.
func MergeCheckinStamps(existing map[string]string, roomIDs []uint, now time.Time) map[string]string {
	out := make(map[string]string, len(existing)+len(roomIDs))
	for k, v := range existing {
		out[k] = v
	}
	ts := now.UTC().Format(time.RFC3339)
	for _, id := range roomIDs {
		key := strconv.FormatUint(uint64(id), 10)
		if _, ok := out[key]; !ok {
			out[key] = ts
		}
	}
	return out
}

// ResolvePaymentStatus decides the stored payment status. An externally
// verified card/ewallet reference is trusted and forces paid regardless of
// any explicit status; otherwise an explicit status normalizes to
// paid/unpaid. Empty result means nothing was supplied.
func ResolvePaymentStatus(method, ref, explicit string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	if (m == models.PaymentMethodCard || m == models.PaymentMethodEwallet) && strings.TrimSpace(ref) != "" {
		return models.PaymentStatusPaid
	}
	if strings.TrimSpace(explicit) == "" {
		return ""
	}
	if strings.EqualFold(strings.TrimSpace(explicit), models.PaymentStatusPaid) {
		return models.PaymentStatusPaid
	}
	return models.PaymentStatusUnpaid
}

func newEvent(bookingID uint, name string, details map[string]any) models.Event {
	return models.Event{
		ID:         uuid.NewString(),
		Name:       name,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
		Details:    details,
	}
}

// statusChangeEvents builds the events for a transition from oldStatus to
// newStatus. The generic update event always fires; the named lifecycle
// events fire only when the status actually changed.
func statusChangeEvents(bookingID uint, oldStatus, newStatus string) []models.Event {
	events := []models.Event{
		newEvent(bookingID, models.EventBookingStatusUpdated, map[string]any{"status": newStatus}),
	}
	if oldStatus == newStatus {
		return events
	}
	switch newStatus {
	case models.BookingStatusCreated:
		events = append(events, newEvent(bookingID, models.EventBookingCreated, nil))
	case models.BookingStatusCheckedIn:
		events = append(events, newEvent(bookingID, models.EventGuestCheckedIn, nil))
	case models.BookingStatusCheckedOut:
		events = append(events, newEvent(bookingID, models.EventGuestCheckedOut, nil))
	}
	return events
}

// RoomNumberDisplay joins the allocated room numbers for summaries, exports
// and webhook payloads: "101, 102".
func RoomNumberDisplay(b models.Booking) string {
	nums := make([]string, 0, len(b.Rooms))
	for _, r := range b.Rooms {
		if r.RoomNumber != "" {
			nums = append(nums, r.RoomNumber)
		}
	}
	return strings.Join(nums, ", ")
}

// RoomTypeDisplay summarizes allocated types with counts: "2x Standard, 1x
// Deluxe". Order follows first appearance in the allocation.
func RoomTypeDisplay(b models.Booking) string {
	counts := map[string]int{}
	order := make([]string, 0, len(b.Rooms))
	for _, r := range b.Rooms {
		t := r.RoomType
		if t == "" {
			continue
		}
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}
	parts := make([]string, 0, len(order))
	for _, t := range order {
		parts = append(parts, strconv.Itoa(counts[t])+"x "+ucfirst(t))
	}
	return strings.Join(parts, ", ")
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
