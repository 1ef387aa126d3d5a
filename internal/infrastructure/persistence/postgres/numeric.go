package postgres

import (
	"context"

	"github.com/DanielPopoola/dinepay/internal/tenant"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func toDecimal(n pgtype.Numeric) decimal.Decimal {
	d := toDecimalPtr(n)
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return nil
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return nil
	}
	return &d
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func toNullNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return toNumeric(*d)
}

// tenantArg is bound to the ($n::bigint IS NULL OR tenant_id = $n) guard.
// It is nil only for explicitly unscoped callers.
func tenantArg(ctx context.Context) (*int64, error) {
	return tenant.Filter(ctx)
}
