package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// paypalTestService bypasses settings persistence by overriding the base URL
// and feeding the config directly through accessToken/CreateOrder internals.
func paypalTestServer(t *testing.T) (*httptest.Server, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, mux
}

func TestPayPalAccessToken(t *testing.T) {
	server, mux := paypalTestServer(t)
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok_abc",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	p := &PayPalService{
		Client:       &http.Client{Timeout: time.Second},
		BaseOverride: server.URL,
	}
	cfg := PaymentSettings{Mode: "sandbox", ClientID: "client-id", Secret: "secret", Enabled: true}

	token, err := p.accessToken(cfg)
	if err != nil {
		t.Fatalf("accessToken: %v", err)
	}
	if token != "tok_abc" {
		t.Errorf("token = %q", token)
	}
}

func TestPayPalAccessTokenUpstreamFailure(t *testing.T) {
	server, mux := paypalTestServer(t)
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	p := &PayPalService{Client: &http.Client{Timeout: time.Second}, BaseOverride: server.URL}
	_, err := p.accessToken(PaymentSettings{ClientID: "x", Secret: "y"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrExternalService) {
		t.Errorf("error %v not tagged as external service failure", err)
	}
}

func TestPayPalOrderParsing(t *testing.T) {
	server, mux := paypalTestServer(t)
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok"})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				ReferenceID string `json:"reference_id"`
				Amount      struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body.Intent != "CAPTURE" {
			t.Errorf("intent = %q, want CAPTURE", body.Intent)
		}
		if got := body.PurchaseUnits[0].Amount.Value; got != "4480.00" {
			t.Errorf("amount = %q, want 4480.00", got)
		}
		if got := body.PurchaseUnits[0].ReferenceID; got != "AB12CD34" {
			t.Errorf("reference = %q", got)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "ORDER-1",
			"links": []map[string]string{
				{"href": server.URL + "/self", "rel": "self"},
				{"href": "https://paypal.example/approve/ORDER-1", "rel": "approve"},
			},
		})
	})

	p := &PayPalService{Client: &http.Client{Timeout: time.Second}, BaseOverride: server.URL}
	order, err := p.createOrderWith(PaymentSettings{ClientID: "x", Secret: "y", Enabled: true}, 4480, "USD", "AB12CD34")
	if err != nil {
		t.Fatalf("createOrderWith: %v", err)
	}
	if order.OrderID != "ORDER-1" {
		t.Errorf("order id = %q", order.OrderID)
	}
	if order.ApproveURL != "https://paypal.example/approve/ORDER-1" {
		t.Errorf("approve url = %q", order.ApproveURL)
	}
}
