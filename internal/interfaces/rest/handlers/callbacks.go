package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/oapi-codegen/runtime"
)

// Gateway parameter names, as sent by the hosted payment page.
const (
	paramTransID    = "TransId"
	paramResultCode = "ResultCode"
	paramAmount     = "Amount"
	paramOrderID    = "OrderId"
	paramEcho1      = "Echo1"
	paramEcho2      = "Echo2"
	paramEcho3      = "Echo3"
	paramErrMsg     = "ErrMsg"
)

// callbackBody is the JSON form of the POST callback. Relays echo the
// gateway keys as strings or numbers.
type callbackBody struct {
	TransID    callbackValue `json:"TransId"`
	ResultCode callbackValue `json:"ResultCode"`
	Amount     callbackValue `json:"Amount"`
	OrderID    callbackValue `json:"OrderId"`
	Echo1      callbackValue `json:"Echo1"`
	Echo2      callbackValue `json:"Echo2"`
	Echo3      callbackValue `json:"Echo3"`
	ErrMsg     callbackValue `json:"ErrMsg"`
}

// callbackValue is a JSON string, number or null read as its literal text,
// so 103.00 stays "103.00".
type callbackValue string

func (v *callbackValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = callbackValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}
	*v = callbackValue(n.String())
	return nil
}

type CallbackResult struct {
	OrderID       int64                `json:"order_id"`
	PaymentStatus domain.PaymentStatus `json:"payment_status,omitempty"`
	Code          string               `json:"code"`
	Message       string               `json:"message"`
}

type CallbackResponse struct {
	Success bool           `json:"success"`
	Data    CallbackResult `json:"data"`
}

// callback builds the handler for one callback endpoint. GET answers the
// customer's browser with a redirect; POST always answers 200 with the
// outcome so the gateway never retries on our account.
func (h *Handlers) callback(rec CallbackReconciler, success bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindCallback(r)
		if err != nil {
			h.logger.Warn("malformed payment callback", "method", r.Method, "path", r.URL.Path, "error", err)
			out := services.CallbackOutcome{Err: application.NewInvalidInputError(err)}
			h.respondCallback(w, r, out)
			return
		}

		var out services.CallbackOutcome
		if success {
			out = rec.HandleSuccess(r.Context(), params)
		} else {
			out = rec.HandleError(r.Context(), params)
		}
		h.respondCallback(w, r, out)
	}
}

func (h *Handlers) respondCallback(w http.ResponseWriter, r *http.Request, out services.CallbackOutcome) {
	if r.Method == http.MethodGet {
		http.Redirect(w, r, h.landingURL(out), http.StatusFound)
		return
	}

	result := CallbackResult{
		OrderID:       out.TargetID,
		PaymentStatus: out.PaymentStatus,
		Code:          "OK",
		Message:       "payment settled",
	}
	switch {
	case out.AlreadyPaid:
		result.Message = "payment already settled"
	case out.Err != nil:
		result.Code = application.ToErrorCode(out.Err)
		result.Message = out.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(CallbackResponse{Success: out.Success(), Data: result})
}

func (h *Handlers) landingURL(out services.CallbackOutcome) string {
	base := h.cfg.SuccessURL
	if !out.Success() {
		base = h.cfg.FailureURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	if out.TargetID != 0 {
		key := "order_id"
		if out.Kind == domain.SessionSubscription {
			key = "payment_id"
		}
		q.Set(key, strconv.FormatInt(out.TargetID, 10))
	}
	if !out.Success() {
		q.Set("reason", application.ToErrorCode(out.Err))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// bindCallback normalizes the query string, form body or JSON body into
// CallbackParams.
func bindCallback(r *http.Request) (domain.CallbackParams, error) {
	if r.Method == http.MethodPost && isJSON(r) {
		var body callbackBody
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return domain.CallbackParams{}, err
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return domain.CallbackParams{}, fmt.Errorf("malformed callback body: %w", err)
		}
		return domain.CallbackParams{
			TransactionID: string(body.TransID),
			ResultCode:    string(body.ResultCode),
			Amount:        string(body.Amount),
			OrderRef:      string(body.OrderID),
			Echo1:         string(body.Echo1),
			Echo2:         string(body.Echo2),
			Echo3:         string(body.Echo3),
			ErrorMessage:  string(body.ErrMsg),
		}, nil
	}

	values := r.URL.Query()
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return domain.CallbackParams{}, fmt.Errorf("malformed callback form: %w", err)
		}
		values = r.Form
	}
	return bindCallbackValues(values)
}

func bindCallbackValues(values url.Values) (domain.CallbackParams, error) {
	var p domain.CallbackParams
	fields := []struct {
		name string
		dest *string
	}{
		{paramTransID, &p.TransactionID},
		{paramResultCode, &p.ResultCode},
		{paramAmount, &p.Amount},
		{paramOrderID, &p.OrderRef},
		{paramEcho1, &p.Echo1},
		{paramEcho2, &p.Echo2},
		{paramEcho3, &p.Echo3},
		{paramErrMsg, &p.ErrorMessage},
	}
	for _, f := range fields {
		if err := runtime.BindQueryParameter("form", true, false, f.name, values, f.dest); err != nil {
			return domain.CallbackParams{}, fmt.Errorf("parameter %s: %w", f.name, err)
		}
	}
	return p, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
