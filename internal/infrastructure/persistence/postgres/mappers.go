package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/domain"
)

func toDomainOrder(m orderModel) *domain.Order {
	return &domain.Order{
		ID:           m.ID,
		TenantID:     m.TenantID,
		RestaurantID: m.RestaurantID,
		Customer: domain.Customer{
			Name:    m.CustomerName,
			Phone:   m.CustomerPhone,
			Address: m.CustomerAddress,
		},
		Channel:        domain.Channel(m.Channel),
		DeliveryMethod: domain.DeliveryMethod(m.DeliveryMethod),
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		Status:         domain.OrderStatus(m.Status),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		TotalAmount:    toDecimal(m.TotalAmount),
		TransactionID:  m.TransactionID,
		PaidAmount:     toDecimalPtr(m.PaidAmount),
		PaidAt:         m.PaidAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainLine(m orderLineModel) (domain.OrderLine, error) {
	line := domain.OrderLine{
		ID:               m.ID,
		OrderID:          m.OrderID,
		MenuItemID:       m.MenuItemID,
		Quantity:         m.Quantity,
		UnitPriceAtOrder: toDecimal(m.UnitPriceAtOrder),
		LineTotal:        toDecimal(m.LineTotal),
	}
	if m.VariantID != nil {
		v := &domain.VariantSnapshot{
			ID:         *m.VariantID,
			PriceDelta: toDecimal(m.VariantPriceDelta),
			Shared:     m.VariantShared,
		}
		if m.VariantName != nil {
			v.Name = *m.VariantName
		}
		line.Variant = v
	}
	if len(m.Addons) > 0 {
		if err := json.Unmarshal(m.Addons, &line.Addons); err != nil {
			return domain.OrderLine{}, fmt.Errorf("decode addons of line %d: %w", m.ID, err)
		}
	}
	return line, nil
}

func addonsJSON(addons []domain.AddonSnapshot) ([]byte, error) {
	if addons == nil {
		addons = []domain.AddonSnapshot{}
	}
	return json.Marshal(addons)
}

func toDomainSession(m sessionModel) *domain.PaymentSession {
	return &domain.PaymentSession{
		Token:         m.Token,
		Kind:          domain.SessionKind(m.Kind),
		TargetID:      m.TargetID,
		TenantID:      m.TenantID,
		RestaurantID:  m.RestaurantID,
		Amount:        toDecimal(m.Amount),
		Status:        domain.SessionStatus(m.Status),
		ExpiresAt:     m.ExpiresAt,
		TransactionID: m.TransactionID,
		ErrorMessage:  m.ErrorMessage,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func toDomainShift(m shiftModel) *domain.CashRegisterShift {
	return &domain.CashRegisterShift{
		ID:              m.ID,
		TenantID:        m.TenantID,
		RestaurantID:    m.RestaurantID,
		CashierID:       m.CashierID,
		OpenedAt:        m.OpenedAt,
		OpeningBalance:  toDecimal(m.OpeningBalance),
		ClosedAt:        m.ClosedAt,
		ClosingBalance:  toDecimalPtr(m.ClosingBalance),
		ExpectedBalance: toDecimalPtr(m.ExpectedBalance),
		Notes:           m.Notes,
	}
}

func toDomainSubscriptionPayment(m subscriptionPaymentModel) *domain.SubscriptionPayment {
	return &domain.SubscriptionPayment{
		ID:            m.ID,
		TenantID:      m.TenantID,
		RestaurantID:  m.RestaurantID,
		PlanCode:      m.PlanCode,
		Months:        m.Months,
		AICredits:     m.AICredits,
		Amount:        toDecimal(m.Amount),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		TransactionID: m.TransactionID,
		PaidAmount:    toDecimalPtr(m.PaidAmount),
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
