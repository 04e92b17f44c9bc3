package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"velour/models"
	"velour/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Gateway is the outbound interface to the mobile-payment provider.
type Gateway interface {
	InitiateSTKPush(ctx context.Context, phone string, amount float64, accountRef, description string) (*models.STKPushResponse, error)
}

// DarajaConfig carries the gateway credentials and endpoints.
type DarajaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
	Timeout        time.Duration
}

// DarajaClient talks to the Safaricom Daraja API: OAuth token acquisition
// followed by an STK push. Tokens are short-lived and cached in Redis with a
// safety skew so an expired token is never reused.
type DarajaClient struct {
	cfg        DarajaConfig
	httpClient *http.Client
	tokenCache *redis.Client
	loc        *time.Location
	// now is the clock; nil means time.Now. Tests override it.
	now func() time.Time
}

const tokenSkew = 60 * time.Second

// NewDarajaClient builds a gateway client. tokenCache may be nil, in which
// case a fresh token is acquired per push.
func NewDarajaClient(cfg DarajaConfig, tokenCache *redis.Client, loc *time.Location) *DarajaClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &DarajaClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokenCache: tokenCache,
		loc:        loc,
	}
}

func (c *DarajaClient) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *DarajaClient) tokenCacheKey() string {
	return "mpesa:token:" + c.cfg.ConsumerKey
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// accessToken returns a valid bearer token, from cache when possible.
func (c *DarajaClient) accessToken(ctx context.Context) (string, error) {
	if c.tokenCache != nil {
		if cached, err := c.tokenCache.Get(ctx, c.tokenCacheKey()).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
		return "", AuthError{Status: resp.StatusCode, Body: "malformed token response"}
	}

	if c.tokenCache != nil {
		ttl := tokenTTL(tok.ExpiresIn)
		if ttl > 0 {
			if err := c.tokenCache.Set(ctx, c.tokenCacheKey(), tok.AccessToken, ttl).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache gateway token", zap.Error(err))
			}
		}
	}
	return tok.AccessToken, nil
}

// tokenTTL converts the gateway's expires_in (seconds, as a string) into a
// cache TTL with the safety skew subtracted. Zero means do not cache.
func tokenTTL(expiresIn string) time.Duration {
	secs, err := strconv.Atoi(expiresIn)
	if err != nil || secs <= 0 {
		return 0
	}
	ttl := time.Duration(secs)*time.Second - tokenSkew
	if ttl <= 0 {
		return 0
	}
	return ttl
}

// stkPassword derives the request password: base64(shortcode+passkey+timestamp),
// with the timestamp rendered in the business timezone.
func stkPassword(shortCode, passkey string, ts time.Time, loc *time.Location) (password, timestamp string) {
	timestamp = ts.In(loc).Format("20060102150405")
	password = base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
	return password, timestamp
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// InitiateSTKPush sends a payment prompt to the customer's phone and returns
// the synchronous acknowledgment. The final result arrives later on the
// callback endpoint.
func (c *DarajaClient) InitiateSTKPush(ctx context.Context, phone string, amount float64, accountRef, description string) (*models.STKPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	password, timestamp := stkPassword(c.cfg.ShortCode, c.cfg.Passkey, c.clock(), c.loc)
	payload := stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            strconv.Itoa(int(amount)),
		PartyA:            phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   description,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal stk push request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build stk push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stk push request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			ErrorCode    string `json:"errorCode"`
			ErrorMessage string `json:"errorMessage"`
		}
		_ = json.Unmarshal(respBody, &apiErr)
		if apiErr.ErrorMessage == "" {
			apiErr.ErrorMessage = string(respBody)
		}
		return nil, GatewayError{Code: apiErr.ErrorCode, Description: apiErr.ErrorMessage}
	}

	var push models.STKPushResponse
	if err := json.Unmarshal(respBody, &push); err != nil {
		return nil, fmt.Errorf("decode stk push response: %w", err)
	}
	if push.ResponseCode != "0" {
		return nil, GatewayError{Code: push.ResponseCode, Description: push.ResponseDescription}
	}

	utils.GetLogger().Info("stk push accepted",
		zap.String("merchantRequestId", push.MerchantRequestID),
		zap.String("checkoutRequestId", push.CheckoutRequestID),
	)
	return &push, nil
}
