package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/config"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(signURL string, timeout time.Duration) *gateway.HTTPClient {
	return gateway.NewClient(config.GatewayConfig{
		SignURL:  signURL,
		PayURL:   "https://pay.example.test/checkout",
		Timeout:  timeout,
		Lang:     "en",
		Encoding: "utf-8",
	})
}

func paymentRequest(terminal domain.Terminal) application.PaymentRequest {
	return application.PaymentRequest{
		Terminal:     terminal,
		Amount:       decimal.RequireFromString("103"),
		Reference:    77,
		SessionToken: "tok-1",
		Description:  "Order #77",
		SuccessURL:   "https://api.example.test/callbacks/success",
		ErrorURL:     "https://api.example.test/callbacks/error",
	}
}

func TestHTTPClient_Sign_WithAPIKey(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte("signature=abc123"))
	}))
	defer srv.Close()

	client := newClient(srv.URL, time.Second)
	signed, err := client.Sign(context.Background(), paymentRequest(domain.Terminal{
		MerchantID: "M-1",
		TerminalID: "T-1",
		APIKey:     "key-1",
		Referer:    "https://shop.example.test",
	}))

	require.NoError(t, err)
	assert.Equal(t, "abc123", signed.Signature)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "M-1", q.Get("MerchantId"))
	assert.Equal(t, "key-1", q.Get("ApiKey"))
	assert.Empty(t, q.Get("Passphrase"))
	assert.Equal(t, "103.00", q.Get("Amount"))
	assert.Equal(t, "77", q.Get("OrderId"))
	assert.Equal(t, "Order #77", q.Get("Description"))
	assert.Equal(t, "https://shop.example.test", got.Header.Get("Referer"))

	redirect, err := url.Parse(signed.RedirectURL)
	require.NoError(t, err)
	assert.Equal(t, "pay.example.test", redirect.Host)
	rq := redirect.Query()
	assert.Equal(t, "T-1", rq.Get("TerminalId"))
	assert.Equal(t, "103.00", rq.Get("Amount"))
	assert.Equal(t, "77", rq.Get("Echo1"))
	assert.Equal(t, "77", rq.Get("Echo2"))
	assert.Equal(t, "tok-1", rq.Get("Echo3"))
	assert.Equal(t, "abc123", rq.Get("signature"))
	assert.Equal(t, "https://api.example.test/callbacks/success", rq.Get("SuccessUrl"))
	assert.Equal(t, "en", rq.Get("Lang"))
}

func TestHTTPClient_Sign_WithPassphrase(t *testing.T) {
	var query url.Values
	var referer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		referer = r.Header.Get("Referer")
		_, _ = w.Write([]byte("signature=platform-sig"))
	}))
	defer srv.Close()

	client := newClient(srv.URL, time.Second)
	signed, err := client.Sign(context.Background(), paymentRequest(domain.Terminal{
		MerchantID: "PLATFORM",
		Passphrase: "secret",
	}))

	require.NoError(t, err)
	assert.Equal(t, "platform-sig", signed.Signature)
	assert.Equal(t, "secret", query.Get("Passphrase"))
	assert.Empty(t, query.Get("ApiKey"))
	assert.Empty(t, referer)
}

func TestHTTPClient_Sign_Failures(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantCode    string
		wantMessage string
		wantStatus  int
	}{
		{
			name: "empty signature carries gateway error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ErrorCode=E17&ErrorMessage=Invalid+merchant"))
			},
			wantCode:    "E17",
			wantMessage: "Invalid merchant",
			wantStatus:  http.StatusOK,
		},
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream down"))
			},
			wantCode:    "HTTP_502",
			wantMessage: "upstream down",
			wantStatus:  http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newClient(srv.URL, time.Second)
			signed, err := client.Sign(context.Background(), paymentRequest(domain.Terminal{MerchantID: "M-1", APIKey: "k"}))

			require.Error(t, err)
			assert.Nil(t, signed)
			assert.True(t, errors.Is(err, domain.ErrGatewaySigningFailed))

			var gwErr *application.GatewayError
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, tt.wantCode, gwErr.Code)
			assert.Equal(t, tt.wantMessage, gwErr.Message)
			assert.Equal(t, tt.wantStatus, gwErr.StatusCode)
		})
	}
}

func TestHTTPClient_Sign_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := newClient(srv.URL, 50*time.Millisecond)
	_, err := client.Sign(context.Background(), paymentRequest(domain.Terminal{MerchantID: "M-1", APIKey: "k"}))

	var gwErr *application.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "TIMEOUT", gwErr.Code)
}

func TestHTTPClient_Sign_MissingMerchant(t *testing.T) {
	client := newClient("http://127.0.0.1:0", time.Second)
	_, err := client.Sign(context.Background(), paymentRequest(domain.Terminal{}))

	assert.True(t, errors.Is(err, domain.ErrGatewaySigningFailed))
}
