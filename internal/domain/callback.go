package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CallbackParams is the gateway callback normalised from either transport.
type CallbackParams struct {
	TransactionID string
	ResultCode    string
	Amount        string
	OrderRef      string
	Echo1         string
	Echo2         string
	// Echo3 carries the session token.
	Echo3        string
	ErrorMessage string
}

func (p CallbackParams) Approved(approvedCode string) bool {
	return strings.TrimSpace(p.ResultCode) == approvedCode
}

func (p CallbackParams) ParsedAmount() (decimal.Decimal, error) {
	raw := strings.TrimSpace(p.Amount)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount missing", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d, nil
}

// CorrelationExtractor pulls a target id out of callback params.
type CorrelationExtractor func(CallbackParams) (int64, bool)

// DefaultCorrelation tries the merchant reference, then the echo fields the
// gateway sometimes overwrites with customer input.
var DefaultCorrelation = []CorrelationExtractor{
	func(p CallbackParams) (int64, bool) { return positiveID(p.OrderRef) },
	func(p CallbackParams) (int64, bool) { return positiveID(p.Echo1) },
	func(p CallbackParams) (int64, bool) { return positiveID(p.Echo2) },
}

// ResolveCorrelation returns the first id any extractor yields.
func ResolveCorrelation(p CallbackParams, chain []CorrelationExtractor) (int64, bool) {
	for _, extract := range chain {
		if id, ok := extract(p); ok {
			return id, true
		}
	}
	return 0, false
}

func positiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
