package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nichehotel-backend/models"
)

// Webhook setting names, one per outbound event.
const (
	SettingWebhookBookingCreated  = "webhook_booking_created"
	SettingWebhookGuestCheckedIn  = "webhook_guest_checked_in"
	SettingWebhookGuestCheckedOut = "webhook_guest_checked_out"
	SettingWebhookPaymentReceived = "webhook_payment_received"
	SettingBookingForm            = "booking_form"
	SettingPayment                = "payment"
)

// BookingFormSettings configures the public booking form.
type BookingFormSettings struct {
	EnablePromo   bool    `json:"enable_promo"`
	DefaultBranch uint    `json:"default_branch"`
	TaxRate       float64 `json:"tax_rate"`
	ButtonLabel   string  `json:"button_label"`
}

// PaymentSettings configures the online payment gateway.
type PaymentSettings struct {
	Mode        string `json:"mode"` // sandbox or live
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	Enabled     bool   `json:"enabled"`
	AccountType string `json:"account_type"`
	Method      string `json:"method"` // branch or online
}

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func (s *SettingsService) Get(name string) (string, error) {
	var setting models.Setting
	err := s.DB.First(&setting, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return setting.Value, err
}

func (s *SettingsService) Set(name, value string) error {
	setting := models.Setting{Name: name, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// WebhookURLFor returns the configured target for an event name, or "" when
// the event has no webhook slot or none is configured.
func (s *SettingsService) WebhookURLFor(event string) (string, error) {
	var name string
	switch event {
	case models.EventBookingCreated:
		name = SettingWebhookBookingCreated
	case models.EventGuestCheckedIn:
		name = SettingWebhookGuestCheckedIn
	case models.EventGuestCheckedOut:
		name = SettingWebhookGuestCheckedOut
	case models.EventPaymentReceived:
		name = SettingWebhookPaymentReceived
	default:
		return "", nil
	}
	url, err := s.Get(name)
	return strings.TrimSpace(url), err
}

func (s *SettingsService) BookingForm() (BookingFormSettings, error) {
	out := BookingFormSettings{
		TaxRate:     DefaultTaxRatePercent,
		ButtonLabel: "Check Availability",
	}
	raw, err := s.Get(SettingBookingForm)
	if err != nil || raw == "" {
		return out, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode booking form settings: %w", err)
	}
	if out.TaxRate <= 0 {
		out.TaxRate = DefaultTaxRatePercent
	}
	if out.ButtonLabel == "" {
		out.ButtonLabel = "Check Availability"
	}
	return out, nil
}

func (s *SettingsService) SaveBookingForm(in BookingFormSettings) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.Set(SettingBookingForm, string(raw))
}

func (s *SettingsService) Payment() (PaymentSettings, error) {
	out := PaymentSettings{Mode: "sandbox", Method: "branch"}
	raw, err := s.Get(SettingPayment)
	if err != nil || raw == "" {
		return out, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode payment settings: %w", err)
	}
	return out, nil
}

func (s *SettingsService) SavePayment(in PaymentSettings) error {
	if in.Mode != "sandbox" && in.Mode != "live" {
		ve := NewValidationError()
		ve.Add("mode", "must be sandbox or live")
		return ve
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.Set(SettingPayment, string(raw))
}
