package services

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nichehotel-backend/models"
)

func testWebhookService(lookup func(string) ([]net.IP, error)) *WebhookService {
	return &WebhookService{
		Client:   &http.Client{Timeout: time.Second},
		LookupIP: lookup,
	}
}

func TestCheckTarget(t *testing.T) {
	public := func(string) ([]net.IP, error) {
		return []net.IP{net.ParseIP("93.184.216.34")}, nil
	}

	cases := []struct {
		name    string
		url     string
		resolve func(string) ([]net.IP, error)
		wantErr bool
	}{
		{"public https", "https://example.com/hook", public, false},
		{"public http", "http://example.com/hook", public, false},
		{"ftp scheme", "ftp://example.com/hook", public, true},
		{"file scheme", "file:///etc/passwd", public, true},
		{"loopback", "http://localhost/hook", func(string) ([]net.IP, error) {
			return []net.IP{net.ParseIP("127.0.0.1")}, nil
		}, true},
		{"private range", "http://internal.example/hook", func(string) ([]net.IP, error) {
			return []net.IP{net.ParseIP("10.0.0.5")}, nil
		}, true},
		{"link local metadata", "http://metadata/hook", func(string) ([]net.IP, error) {
			return []net.IP{net.ParseIP("169.254.169.254")}, nil
		}, true},
		{"mixed public and private", "http://sneaky.example/hook", func(string) ([]net.IP, error) {
			return []net.IP{net.ParseIP("93.184.216.34"), net.ParseIP("192.168.1.1")}, nil
		}, true},
		{"unresolvable", "http://nowhere.invalid/hook", func(string) ([]net.IP, error) {
			return nil, &net.DNSError{Err: "no such host"}
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := testWebhookService(tc.resolve)
			err := w.checkTarget(tc.url)
			if (err != nil) != tc.wantErr {
				t.Errorf("checkTarget(%q) error = %v, wantErr %v", tc.url, err, tc.wantErr)
			}
		})
	}
}

func TestBuildBookingPayload(t *testing.T) {
	checkin := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	booking := models.Booking{
		ID:           42,
		BookingCode:  "AB12CD34",
		GuestName:    "Jo Guest",
		HotelName:    "Main Branch",
		CheckinDate:  &checkin,
		CheckoutDate: &checkout,
		Nights:       2,
		Subtotal:     4000,
		Tax:          480,
		Total:        4480,
		Status:       models.BookingStatusCreated,
		Rooms: []models.BookingRoom{
			{RoomNumber: "101", RoomType: "standard"},
			{RoomNumber: "102", RoomType: "standard"},
		},
	}
	event := newEvent(42, models.EventBookingCreated, nil)

	p := BuildBookingPayload(event, booking)
	if p.Checkin != "03/05/2026" || p.Checkout != "03/07/2026" {
		t.Errorf("dates = %s / %s", p.Checkin, p.Checkout)
	}
	if p.Rooms != "101, 102" {
		t.Errorf("rooms = %q", p.Rooms)
	}
	if p.RoomTypes != "2x Standard" {
		t.Errorf("room types = %q", p.RoomTypes)
	}
	if p.Total != 4480 || p.Event != models.EventBookingCreated {
		t.Errorf("payload = %+v", p)
	}
}

func TestWebhookSendDelivers(t *testing.T) {
	var received atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload BookingWebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		received.Store(payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Point the resolver at a public address so the listener's loopback
	// address passes the guard; the HTTP client still dials the test server.
	w := testWebhookService(func(string) ([]net.IP, error) {
		return []net.IP{net.ParseIP("93.184.216.34")}, nil
	})
	w.Settings = nil

	booking := models.Booking{ID: 7, BookingCode: "XY99ZZ11", GuestName: "A Guest"}
	event := newEvent(7, models.EventBookingCreated, nil)

	if err := w.checkTarget(server.URL); err != nil {
		t.Fatalf("checkTarget: %v", err)
	}
	body, _ := json.Marshal(BuildBookingPayload(event, booking))
	resp, err := w.Client.Post(server.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	got, ok := received.Load().(BookingWebhookPayload)
	if !ok {
		t.Fatal("no payload received")
	}
	if got.BookingCode != "XY99ZZ11" || got.Event != models.EventBookingCreated {
		t.Errorf("payload = %+v", got)
	}
}
