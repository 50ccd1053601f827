package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"nichehotel-backend/models"
)

func TestSanitizeCSVCell(t *testing.T) {
	cases := map[string]string{
		"plain":             "plain",
		"=1+2":              "'=1+2",
		"+SUM(A1:A2)":       "'+SUM(A1:A2)",
		"-2+3":              "'-2+3",
		"@cmd":              "'@cmd",
		"":                  "",
		"name =with equals": "name =with equals",
		"101":               "101",
	}
	for in, want := range cases {
		if got := sanitizeCSVCell(in); got != want {
			t.Errorf("sanitizeCSVCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	checkin := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{
			ID:            1,
			BookingCode:   "AB12CD34",
			GuestName:     "=HYPERLINK(\"http://evil\")",
			HotelName:     "Main Branch",
			CheckinDate:   &checkin,
			CheckoutDate:  &checkout,
			Status:        models.BookingStatusCreated,
			PaymentStatus: models.PaymentStatusUnpaid,
			Total:         4480,
			Rooms: []models.BookingRoom{
				{RoomNumber: "101", RoomType: "standard"},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, bookings); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0][0] != "ID" || records[0][2] != "Guest" {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if !strings.HasPrefix(row[2], "'=") {
		t.Errorf("guest cell not sanitized: %q", row[2])
	}
	if row[1] != "AB12CD34" || row[5] != "101" || row[6] != "2026-03-05" {
		t.Errorf("row = %v", row)
	}
	if row[10] != "4480.00" {
		t.Errorf("total = %q", row[10])
	}
}

func TestWriteXLSX(t *testing.T) {
	bookings := []models.Booking{
		{ID: 3, BookingCode: "ZZ00XX11", GuestName: "A Guest", Total: 100},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, bookings); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	// XLSX is a zip container; check the magic bytes rather than reparsing.
	if buf.Len() < 4 || buf.Bytes()[0] != 'P' || buf.Bytes()[1] != 'K' {
		t.Errorf("output does not look like an xlsx file")
	}
}
