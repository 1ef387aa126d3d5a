package domain

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Terminal holds gateway credentials. A restaurant terminal authenticates
// with an API key and a fixed Referer; the platform terminal uses a passphrase.
type Terminal struct {
	MerchantID string
	TerminalID string
	APIKey     string
	Passphrase string
	Referer    string
}

type PaymentSettings struct {
	TenantID     int64
	RestaurantID int64
	AcceptsCash  bool
	AcceptsCard  bool
	Verification VerificationStatus
	Terminal     Terminal
}

// CardUsable reports whether online card checkout may start.
func (s *PaymentSettings) CardUsable() bool {
	return s.AcceptsCard && s.Verification == VerificationVerified && s.Terminal.MerchantID != ""
}

// PaymentSettingsView is the public read model. It never carries secrets.
type PaymentSettingsView struct {
	RestaurantID    int64              `json:"restaurant_id"`
	AcceptedMethods []PaymentMethod    `json:"accepted_methods"`
	Verification    VerificationStatus `json:"verification_status"`
	CardEnabled     bool               `json:"card_enabled"`
}

func (s *PaymentSettings) View() PaymentSettingsView {
	methods := []PaymentMethod{}
	if s.AcceptsCash {
		methods = append(methods, MethodCash)
	}
	if s.CardUsable() {
		methods = append(methods, MethodOnline)
	}
	return PaymentSettingsView{
		RestaurantID:    s.RestaurantID,
		AcceptedMethods: methods,
		Verification:    s.Verification,
		CardEnabled:     s.CardUsable(),
	}
}
