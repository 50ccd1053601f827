package services

import (
	"testing"
	"time"

	"nichehotel-backend/models"
)

func TestRoomStatusForBooking(t *testing.T) {
	cases := []struct {
		booking string
		room    string
		ok      bool
	}{
		{models.BookingStatusCreated, models.RoomStatusBooked, true},
		{models.BookingStatusCheckedIn, models.RoomStatusCheckedIn, true},
		{models.BookingStatusCheckedOut, models.RoomStatusAvailable, true},
		{models.BookingStatusCanceled, models.RoomStatusAvailable, true},
		{"confirmed", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := RoomStatusForBooking(tc.booking)
		if ok != tc.ok || got != tc.room {
			t.Errorf("RoomStatusForBooking(%q) = (%q, %v), want (%q, %v)", tc.booking, got, ok, tc.room, tc.ok)
		}
	}
}

func TestMergeCheckinStamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

	t.Run("stamps new rooms", func(t *testing.T) {
		got := MergeCheckinStamps(nil, []uint{7, 8}, now)
		want := now.Format(time.RFC3339)
		if got["7"] != want || got["8"] != want {
			t.Errorf("stamps = %v, want both %s", got, want)
		}
	})

	t.Run("existing stamps survive", func(t *testing.T) {
		earlier := "2026-02-28T09:00:00Z"
		got := MergeCheckinStamps(map[string]string{"7": earlier}, []uint{7, 8}, now)
		if got["7"] != earlier {
			t.Errorf("room 7 stamp overwritten: %s", got["7"])
		}
		if got["8"] != now.Format(time.RFC3339) {
			t.Errorf("room 8 stamp = %s", got["8"])
		}
	})

	t.Run("input map untouched", func(t *testing.T) {
		in := map[string]string{"1": "2026-01-01T00:00:00Z"}
		MergeCheckinStamps(in, []uint{2}, now)
		if len(in) != 1 {
			t.Errorf("input map mutated: %v", in)
		}
	})
}

func TestResolvePaymentStatus(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		ref      string
		explicit string
		want     string
	}{
		{"card with ref forces paid", "card", "ch_123", "unpaid", models.PaymentStatusPaid},
		{"ewallet with ref forces paid", "ewallet", "tx_9", "", models.PaymentStatusPaid},
		{"card without ref obeys explicit", "card", "", "paid", models.PaymentStatusPaid},
		{"cash explicit paid", "cash", "", "paid", models.PaymentStatusPaid},
		{"cash explicit PAID case insensitive", "cash", "", "PAID", models.PaymentStatusPaid},
		{"explicit anything else is unpaid", "cash", "", "pending", models.PaymentStatusUnpaid},
		{"nothing supplied", "cash", "", "", ""},
		{"ref on cash does not force paid", "cash", "ref", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePaymentStatus(tc.method, tc.ref, tc.explicit); got != tc.want {
				t.Errorf("ResolvePaymentStatus(%q, %q, %q) = %q, want %q",
					tc.method, tc.ref, tc.explicit, got, tc.want)
			}
		})
	}
}

func eventNames(events []models.Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

func TestStatusChangeEvents(t *testing.T) {
	t.Run("transition emits lifecycle event", func(t *testing.T) {
		events := statusChangeEvents(1, models.BookingStatusCreated, models.BookingStatusCheckedIn)
		names := eventNames(events)
		if len(names) != 2 || names[0] != models.EventBookingStatusUpdated || names[1] != models.EventGuestCheckedIn {
			t.Errorf("events = %v", names)
		}
	})

	t.Run("no-op transition only updates", func(t *testing.T) {
		events := statusChangeEvents(1, models.BookingStatusCheckedIn, models.BookingStatusCheckedIn)
		if len(events) != 1 || events[0].Name != models.EventBookingStatusUpdated {
			t.Errorf("events = %v", eventNames(events))
		}
	})

	t.Run("creation emits booking_created", func(t *testing.T) {
		events := statusChangeEvents(1, "", models.BookingStatusCreated)
		names := eventNames(events)
		if len(names) != 2 || names[1] != models.EventBookingCreated {
			t.Errorf("events = %v", names)
		}
	})

	t.Run("cancel has no lifecycle event", func(t *testing.T) {
		events := statusChangeEvents(1, models.BookingStatusCreated, models.BookingStatusCanceled)
		if len(events) != 1 {
			t.Errorf("events = %v", eventNames(events))
		}
	})

	t.Run("events carry distinct ids", func(t *testing.T) {
		events := statusChangeEvents(1, "", models.BookingStatusCreated)
		if events[0].ID == "" || events[0].ID == events[1].ID {
			t.Errorf("event ids not unique: %q, %q", events[0].ID, events[1].ID)
		}
	})
}

func TestDisplayHelpers(t *testing.T) {
	booking := models.Booking{
		Rooms: []models.BookingRoom{
			{RoomNumber: "101", RoomType: "standard"},
			{RoomNumber: "102", RoomType: "standard"},
			{RoomNumber: "201", RoomType: "deluxe"},
		},
	}

	if got := RoomNumberDisplay(booking); got != "101, 102, 201" {
		t.Errorf("RoomNumberDisplay = %q", got)
	}
	if got := RoomTypeDisplay(booking); got != "2x Standard, 1x Deluxe" {
		t.Errorf("RoomTypeDisplay = %q", got)
	}
	if got := RoomTypeDisplay(models.Booking{}); got != "" {
		t.Errorf("empty booking display = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	if ve.ErrOrNil() != nil {
		t.Error("empty validation error should be nil")
	}

	ve.Add("checkout", "must be after checkin")
	ve.Add("guest", "guest name is required")
	err := ve.ErrOrNil()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "checkout: must be after checkin; guest: guest name is required" {
		t.Errorf("message = %q", got)
	}
	if IsValidationError(err) == nil {
		t.Error("IsValidationError failed to unwrap")
	}
}
