package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStkPassword(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*3600)
	ts := time.Date(2026, 9, 15, 11, 4, 5, 0, nairobi)

	password, timestamp := stkPassword("174379", "passkey", ts, nairobi)
	assert.Equal(t, "20260915110405", timestamp)

	decoded, err := base64.StdEncoding.DecodeString(password)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey20260915110405", string(decoded))

	// The timestamp renders in the business timezone regardless of the
	// clock's own zone.
	_, timestamp = stkPassword("174379", "passkey", ts.UTC(), nairobi)
	assert.Equal(t, "20260915110405", timestamp)
}

func TestTokenTTL(t *testing.T) {
	assert.Equal(t, 3599*time.Second-tokenSkew, tokenTTL("3599"))
	assert.Equal(t, time.Duration(0), tokenTTL("30"))
	assert.Equal(t, time.Duration(0), tokenTTL("not-a-number"))
	assert.Equal(t, time.Duration(0), tokenTTL(""))
}

func newGatewayTestServer(t *testing.T, pushStatus int, pushBody interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
		if auth != expected {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "test-token",
			"expires_in":   "3599",
		})
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(pushStatus)
		json.NewEncoder(w).Encode(pushBody)
	})
	return httptest.NewServer(mux)
}

func testClient(baseURL string) *DarajaClient {
	return NewDarajaClient(DarajaConfig{
		BaseURL:        baseURL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		Passkey:        "passkey",
		CallbackURL:    "https://example.com/api/payment/callback",
		Timeout:        5 * time.Second,
	}, nil, time.UTC)
}

func TestInitiateSTKPush(t *testing.T) {
	srv := newGatewayTestServer(t, http.StatusOK, map[string]string{
		"MerchantRequestID":   "mr-1",
		"CheckoutRequestID":   "cr-1",
		"ResponseCode":        "0",
		"ResponseDescription": "Success. Request accepted for processing",
	})
	defer srv.Close()

	client := testClient(srv.URL)
	push, err := client.InitiateSTKPush(context.Background(), "254712345678", 4500, "bk-1", "Payment for Volume Lashes")
	require.NoError(t, err)
	assert.Equal(t, "cr-1", push.CheckoutRequestID)
	assert.Equal(t, "mr-1", push.MerchantRequestID)
}

func TestInitiateSTKPushRejected(t *testing.T) {
	srv := newGatewayTestServer(t, http.StatusBadRequest, map[string]string{
		"errorCode":    "400.002.02",
		"errorMessage": "Bad Request - Invalid PhoneNumber",
	})
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.InitiateSTKPush(context.Background(), "bad", 4500, "bk-1", "desc")
	var gwErr GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "400.002.02", gwErr.Code)
}

func TestInitiateSTKPushNonZeroResponseCode(t *testing.T) {
	srv := newGatewayTestServer(t, http.StatusOK, map[string]string{
		"MerchantRequestID":   "mr-1",
		"CheckoutRequestID":   "cr-1",
		"ResponseCode":        "1",
		"ResponseDescription": "Request declined",
	})
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.InitiateSTKPush(context.Background(), "254712345678", 4500, "bk-1", "desc")
	var gwErr GatewayError
	assert.ErrorAs(t, err, &gwErr)
}

func TestAccessTokenAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorMessage":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.InitiateSTKPush(context.Background(), "254712345678", 100, "bk-1", "desc")
	var authErr AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
}
