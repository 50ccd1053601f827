package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	paypalSandboxBase = "https://api-m.sandbox.paypal.com"
	paypalLiveBase    = "https://api-m.paypal.com"
)

// PayPalService creates checkout orders for online payment. The caller
// redirects the guest to the returned approval link; settlement is confirmed
// out of band by the payment-update operation.
type PayPalService struct {
	Settings *SettingsService
	Client   *http.Client

	// BaseOverride points the client at a test server when non-empty.
	BaseOverride string
}

func NewPayPalService(settings *SettingsService) *PayPalService {
	return &PayPalService{
		Settings: settings,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PayPalService) baseURL(cfg PaymentSettings) string {
	if p.BaseOverride != "" {
		return strings.TrimRight(p.BaseOverride, "/")
	}
	if cfg.Mode == "live" {
		return paypalLiveBase
	}
	return paypalSandboxBase
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *PayPalService) accessToken(cfg PaymentSettings) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequest(http.MethodPost, p.baseURL(cfg)+"/v1/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(cfg.ClientID, cfg.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: paypal token: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: paypal token returned %d", ErrExternalService, resp.StatusCode)
	}

	var tok paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decode paypal token: %v", ErrExternalService, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty paypal access token", ErrExternalService)
	}
	return tok.AccessToken, nil
}

// CheckoutOrder is what the booking form needs to hand the guest over.
type CheckoutOrder struct {
	OrderID    string `json:"order_id"`
	ApproveURL string `json:"approve_url"`
}

type paypalOrderResponse struct {
	ID    string `json:"id"`
	Links []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// CreateOrder opens a CAPTURE-intent order for the booking total. A missing
// gateway configuration is an input problem, not an upstream failure.
func (p *PayPalService) CreateOrder(total float64, currency, reference string) (*CheckoutOrder, error) {
	cfg, err := p.Settings.Payment()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled || cfg.ClientID == "" || cfg.Secret == "" {
		ve := NewValidationError()
		ve.Add("payment", "online payment is not configured")
		return nil, ve
	}
	return p.createOrderWith(cfg, total, currency, reference)
}

func (p *PayPalService) createOrderWith(cfg PaymentSettings, total float64, currency, reference string) (*CheckoutOrder, error) {
	if currency == "" {
		currency = "USD"
	}

	token, err := p.accessToken(cfg)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"reference_id": reference,
			"amount": map[string]string{
				"currency_code": currency,
				"value":         fmt.Sprintf("%.2f", total),
			},
		}},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL(cfg)+"/v2/checkout/orders",
		strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: paypal order: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: paypal order returned %d", ErrExternalService, resp.StatusCode)
	}

	var order paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: decode paypal order: %v", ErrExternalService, err)
	}

	out := &CheckoutOrder{OrderID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			out.ApproveURL = link.Href
			break
		}
	}
	if out.OrderID == "" || out.ApproveURL == "" {
		return nil, fmt.Errorf("%w: paypal order missing id or approve link", ErrExternalService)
	}
	return out, nil
}
