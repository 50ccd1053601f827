// controllers/booking_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/middleware"
	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type BookingController struct {
	Bookings   *services.BookingService
	Settings   *services.SettingsService
	Dispatcher *services.Dispatcher
}

func NewBookingController(bookings *services.BookingService, settings *services.SettingsService, dispatcher *services.Dispatcher) *BookingController {
	return &BookingController{Bookings: bookings, Settings: settings, Dispatcher: dispatcher}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid booking id", nil)
		return 0, false
	}
	return uint(id), true
}

func (ctl *BookingController) filterFromQuery(c *gin.Context) services.BookingFilter {
	filter := services.BookingFilter{
		Guest:  c.Query("q"),
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if raw := c.Query("hotel_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.HotelID = uint(id)
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Limit = n
		}
	}
	if statuses := c.QueryArray("statuses"); len(statuses) > 0 {
		filter.Statuses = statuses
	}
	return filter
}

func (ctl *BookingController) List(c *gin.Context) {
	bookings, err := ctl.Bookings.List(ctl.filterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctl *BookingController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := ctl.Bookings.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// Create books rooms on behalf of an operator. The tax rate always comes
// from settings; clients cannot price their own bookings.
func (ctl *BookingController) Create(c *gin.Context) {
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

	result, err := ctl.Bookings.CreateBooking(input)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.Dispatcher.Dispatch(middleware.CurrentAdminID(c), result.Events, *result.Booking)

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"booking":   result.Booking,
		"requested": result.RequestedRooms,
		"allocated": result.AllocatedRooms,
	})
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}

	booking, events, err := ctl.Bookings.UpdateStatus(id, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.Dispatcher.Dispatch(middleware.CurrentAdminID(c), events, *booking)

	utils.JSONSuccess(c, http.StatusOK, booking)
}

type bulkStatusPayload struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// BulkUpdateStatus applies one transition to many bookings. Unknown ids are
// skipped; the response reports how many were actually updated.
func (ctl *BookingController) BulkUpdateStatus(c *gin.Context) {
	var payload bulkStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}

	updated, events, err := ctl.Bookings.BulkUpdateStatus(payload.IDs, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	userID := middleware.CurrentAdminID(c)
	for _, event := range events {
		if booking, gerr := ctl.Bookings.Get(event.BookingID); gerr == nil {
			ctl.Dispatcher.Dispatch(userID, []models.Event{event}, *booking)
		}
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"requested": len(payload.IDs), "updated": updated})
}

type paymentPayload struct {
	Method string `json:"method"`
	Ref    string `json:"ref"`
	Status string `json:"status"`
}

func (ctl *BookingController) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload paymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}

	booking, events, err := ctl.Bookings.UpdatePayment(id, payload.Method, payload.Ref, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.Dispatcher.Dispatch(middleware.CurrentAdminID(c), events, *booking)

	utils.JSONSuccess(c, http.StatusOK, booking)
}

func exportFilename(ext string) string {
	return fmt.Sprintf("bookings-%s.%s", time.Now().Format("2006-01-02"), ext)
}

func (ctl *BookingController) ExportCSV(c *gin.Context) {
	bookings, err := ctl.Bookings.List(ctl.filterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("csv")+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if err := services.WriteCSV(c.Writer, bookings); err != nil {
		respondError(c, err)
	}
}

func (ctl *BookingController) ExportXLSX(c *gin.Context) {
	bookings, err := ctl.Bookings.List(ctl.filterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("xlsx")+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := services.WriteXLSX(c.Writer, bookings); err != nil {
		respondError(c, err)
	}
}
