package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

// WizardController backs the public booking form. No authentication; every
// response is limited to what a guest may see and pricing is always
// recomputed server side.
type WizardController struct {
	Bookings   *services.BookingService
	Rooms      *services.RoomService
	Types      *services.RoomTypeService
	Dashboard  *services.DashboardService
	Settings   *services.SettingsService
	PayPal     *services.PayPalService
	Dispatcher *services.Dispatcher
}

// FormSettings exposes the public form configuration, without anything an
// operator would consider private.
func (ctl *WizardController) FormSettings(c *gin.Context) {
	form, err := ctl.Settings.BookingForm()
	if err != nil {
		respondError(c, err)
		return
	}
	payment, err := ctl.Settings.Payment()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"enable_promo":   form.EnablePromo,
		"default_branch": form.DefaultBranch,
		"tax_rate":       form.TaxRate,
		"button_label":   form.ButtonLabel,
		"online_payment": payment.Enabled && payment.Method == "online",
	})
}

// Availability lists available-room counts per type for the hotel.
func (ctl *WizardController) Availability(c *gin.Context) {
	var hotelID uint
	if raw := c.Query("hotel_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondInvalidPayload(c)
			return
		}
		hotelID = uint(id)
	}
	counts, err := ctl.Dashboard.AvailableByType(hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, counts)
}

// RoomsForHotel lists concrete available rooms, optionally filtered by type.
func (ctl *WizardController) RoomsForHotel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	rooms, err := ctl.Rooms.AvailableForHotel(uint(id), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// RoomTypeDetails resolves a type label or slug to its catalog entry for the
// form's detail pane.
func (ctl *WizardController) RoomTypeDetails(c *gin.Context) {
	rt, err := ctl.Types.Lookup(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

// CreateBooking is the public submission endpoint. The payload's payment
// status is ignored; only a verified gateway reference can mark a fresh
// public booking paid.
func (ctl *WizardController) CreateBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidPayload(c)
		return
	}

	form, err := ctl.Settings.BookingForm()
	if err != nil {
		respondError(c, err)
		return
	}
	input.TaxRatePercent = form.TaxRate
	if input.HotelID == 0 {
		input.HotelID = form.DefaultBranch
	}
	input.PaymentStatus = ""

	result, err := ctl.Bookings.CreateBooking(input)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.Dispatcher.Dispatch(0, result.Events, *result.Booking)

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"code":      result.Booking.BookingCode,
		"total":     result.Booking.Total,
		"requested": result.RequestedRooms,
		"allocated": result.AllocatedRooms,
	})
}

type paypalStartPayload struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Currency  string `json:"currency"`
}

// StartPayment opens a gateway order for an existing booking's total.
func (ctl *WizardController) StartPayment(c *gin.Context) {
	var payload paypalStartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}

	booking, err := ctl.Bookings.Get(payload.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ctl.PayPal.CreateOrder(booking.Total, payload.Currency, booking.BookingCode)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}
