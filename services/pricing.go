package services

import (
	"math"
	"time"
)

// DefaultTaxRatePercent applies when the booking-form settings carry no rate.
const DefaultTaxRatePercent = 12.0

// AllocatedRoom is one claimed room as the engine and the pricing calculator
// see it: the effective nightly price resolved at claim time plus any
// per-room overrides the caller supplied.
type AllocatedRoom struct {
	RoomID     uint
	RoomNumber string
	RoomType   string
	Price      float64

	// NightsOverride, when positive, is clamped to the date-range nights.
	NightsOverride int
	Adults         int
	Children       int
}

// RoomCharge is a priced line for a single allocated room.
type RoomCharge struct {
	AllocatedRoom
	Nights    int
	LineTotal float64
}

// BookingTotals is the frozen pricing snapshot persisted on the booking.
type BookingTotals struct {
	Rooms         []RoomCharge
	TypeSubtotals map[string]float64
	Subtotal      float64
	Tax           float64
	Total         float64
}

// EffectivePrice resolves a room's nightly rate: the room's own price wins
// when set, otherwise the catalog default for its type applies.
func EffectivePrice(roomPrice, catalogDefault float64) float64 {
	if roomPrice > 0 {
		return roomPrice
	}
	return catalogDefault
}

// NightsBetween is the whole-day length of the stay, floored, never negative.
func NightsBetween(checkin, checkout time.Time) int {
	d := checkout.Sub(checkin)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// EffectiveNights clamps a positive per-room override to the date-range
// nights; a missing or non-positive override means the full range.
func EffectiveNights(override, defaultNights int) int {
	if override > 0 {
		if override > defaultNights {
			return defaultNights
		}
		return override
	}
	return defaultNights
}

// Round2 rounds to two decimals for currency display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBookingTotals prices the allocated set. Pure function of its inputs:
// same rooms, overrides and rate always produce the same totals. Occupant
// counts are carried through for display and never affect price. A zero-night
// degenerate range (same-day stay) bills a single night.
func ComputeBookingTotals(rooms []AllocatedRoom, defaultNights int, taxRatePercent float64) BookingTotals {
	if taxRatePercent < 0 {
		taxRatePercent = DefaultTaxRatePercent
	}

	totals := BookingTotals{
		Rooms:         make([]RoomCharge, 0, len(rooms)),
		TypeSubtotals: map[string]float64{},
	}

	for _, room := range rooms {
		nights := EffectiveNights(room.NightsOverride, defaultNights)
		if nights == 0 {
			nights = 1
		}
		if room.Adults < 1 {
			room.Adults = 1
		}
		if room.Children < 0 {
			room.Children = 0
		}

		line := Round2(float64(nights) * room.Price)
		totals.Rooms = append(totals.Rooms, RoomCharge{
			AllocatedRoom: room,
			Nights:        nights,
			LineTotal:     line,
		})
		totals.TypeSubtotals[room.RoomType] = Round2(totals.TypeSubtotals[room.RoomType] + line)
		totals.Subtotal = Round2(totals.Subtotal + line)
	}

	totals.Tax = Round2(totals.Subtotal * taxRatePercent / 100)
	totals.Total = Round2(totals.Subtotal + totals.Tax)
	return totals
}
