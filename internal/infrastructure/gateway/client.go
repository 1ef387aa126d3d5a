// Package gateway talks to the card-payment gateway's signing endpoint and
// builds the browser redirect into its hosted payment page.
package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/config"
)

// maxResponseBytes bounds the signing response read.
const maxResponseBytes = 64 << 10

type HTTPClient struct {
	signURL    string
	payURL     string
	lang       string
	encoding   string
	httpClient *http.Client
}

var _ application.Gateway = (*HTTPClient)(nil)

func NewClient(cfg config.GatewayConfig) *HTTPClient {
	return &HTTPClient{
		signURL:  cfg.SignURL,
		payURL:   cfg.PayURL,
		lang:     cfg.Lang,
		encoding: cfg.Encoding,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Sign obtains the gateway signature for req and returns the redirect URL.
// Any failure is a *application.GatewayError; the call is never retried.
func (c *HTTPClient) Sign(ctx context.Context, req application.PaymentRequest) (*application.SignedPayment, error) {
	if req.Terminal.MerchantID == "" {
		return nil, &application.GatewayError{Code: "NO_MERCHANT", Message: "terminal has no merchant id"}
	}

	amount := req.Amount.StringFixed(2)
	reference := strconv.FormatInt(req.Reference, 10)

	q := url.Values{}
	q.Set("MerchantId", req.Terminal.MerchantID)
	if req.Terminal.APIKey != "" {
		q.Set("ApiKey", req.Terminal.APIKey)
	} else {
		q.Set("Passphrase", req.Terminal.Passphrase)
	}
	q.Set("Amount", amount)
	q.Set("OrderId", reference)
	q.Set("Description", req.Description)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.signURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &application.GatewayError{Code: "REQUEST_ERROR", Message: "error creating request", Err: err}
	}
	if req.Terminal.Referer != "" {
		httpReq.Header.Set("Referer", req.Terminal.Referer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		code := "NETWORK_ERROR"
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			code = "TIMEOUT"
		}
		return nil, &application.GatewayError{Code: code, Message: "error making request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &application.GatewayError{Code: "READ_ERROR", Message: "error reading response", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &application.GatewayError{
			Code:       "HTTP_" + strconv.Itoa(resp.StatusCode),
			Message:    string(body),
			StatusCode: resp.StatusCode,
		}
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, &application.GatewayError{Code: "MALFORMED_RESPONSE", Message: string(body), StatusCode: resp.StatusCode, Err: err}
	}

	signature := values.Get("signature")
	if signature == "" {
		return nil, &application.GatewayError{
			Code:       values.Get("ErrorCode"),
			Message:    values.Get("ErrorMessage"),
			StatusCode: resp.StatusCode,
		}
	}

	redirect, err := c.redirectURL(req, amount, reference, signature)
	if err != nil {
		return nil, &application.GatewayError{Code: "REDIRECT_ERROR", Message: "invalid pay url", Err: err}
	}
	return &application.SignedPayment{Signature: signature, RedirectURL: redirect}, nil
}

// redirectURL appends the full parameter set and signature to the pay URL.
// Echo1 and Echo2 repeat the reference because the gateway may overwrite
// OrderId with customer data on the way back.
func (c *HTTPClient) redirectURL(req application.PaymentRequest, amount, reference, signature string) (string, error) {
	u, err := url.Parse(c.payURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("MerchantId", req.Terminal.MerchantID)
	q.Set("TerminalId", req.Terminal.TerminalID)
	q.Set("Amount", amount)
	q.Set("OrderId", reference)
	q.Set("MerchantRef", reference)
	q.Set("SuccessUrl", req.SuccessURL)
	q.Set("ErrorUrl", req.ErrorURL)
	q.Set("Lang", c.lang)
	q.Set("Encoding", c.encoding)
	q.Set("Echo1", reference)
	q.Set("Echo2", reference)
	q.Set("Echo3", req.SessionToken)
	q.Set("signature", signature)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
