package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

func (ctl *SettingsController) GetBookingForm(c *gin.Context) {
	form, err := ctl.Settings.BookingForm()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, form)
}

func (ctl *SettingsController) SaveBookingForm(c *gin.Context) {
	var form services.BookingFormSettings
	if err := c.ShouldBindJSON(&form); err != nil {
		respondInvalidPayload(c)
		return
	}
	if err := ctl.Settings.SaveBookingForm(form); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, form)
}

func (ctl *SettingsController) GetPayment(c *gin.Context) {
	payment, err := ctl.Settings.Payment()
	if err != nil {
		respondError(c, err)
		return
	}
	// Never echo the secret back to the UI.
	payment.Secret = ""
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctl *SettingsController) SavePayment(c *gin.Context) {
	var payment services.PaymentSettings
	if err := c.ShouldBindJSON(&payment); err != nil {
		respondInvalidPayload(c)
		return
	}
	if payment.Secret == "" {
		// Keep the stored secret when the form resubmits without one.
		current, err := ctl.Settings.Payment()
		if err != nil {
			respondError(c, err)
			return
		}
		payment.Secret = current.Secret
	}
	if err := ctl.Settings.SavePayment(payment); err != nil {
		respondError(c, err)
		return
	}
	payment.Secret = ""
	utils.JSONSuccess(c, http.StatusOK, payment)
}

type webhookSettingsPayload struct {
	BookingCreated  *string `json:"booking_created"`
	GuestCheckedIn  *string `json:"guest_checked_in"`
	GuestCheckedOut *string `json:"guest_checked_out"`
	PaymentReceived *string `json:"payment_received"`
}

func (ctl *SettingsController) GetWebhooks(c *gin.Context) {
	out := gin.H{}
	for event, key := range map[string]string{
		"booking_created":   services.SettingWebhookBookingCreated,
		"guest_checked_in":  services.SettingWebhookGuestCheckedIn,
		"guest_checked_out": services.SettingWebhookGuestCheckedOut,
		"payment_received":  services.SettingWebhookPaymentReceived,
	} {
		url, err := ctl.Settings.Get(key)
		if err != nil {
			respondError(c, err)
			return
		}
		out[event] = url
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// SaveWebhooks updates only the targets present in the payload; nil fields
// keep their current value and an empty string clears one.
func (ctl *SettingsController) SaveWebhooks(c *gin.Context) {
	var payload webhookSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}

	updates := map[string]*string{
		services.SettingWebhookBookingCreated:  payload.BookingCreated,
		services.SettingWebhookGuestCheckedIn:  payload.GuestCheckedIn,
		services.SettingWebhookGuestCheckedOut: payload.GuestCheckedOut,
		services.SettingWebhookPaymentReceived: payload.PaymentReceived,
	}
	for key, value := range updates {
		if value == nil {
			continue
		}
		if err := ctl.Settings.Set(key, *value); err != nil {
			respondError(c, err)
			return
		}
	}
	ctl.GetWebhooks(c)
}
