// values.go
package pgtable

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// normalizeValue maps pgx driver values onto the Go types callers work
// with: numerics become decimals, uuid bytes become uuid.UUID. Anything
// unrecognized passes through untouched.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		if d, ok := numericToDecimal(val); ok {
			return d
		}
		return val
	case [16]byte:
		return uuid.UUID(val)
	default:
		return v
	}
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, bool) {
	v, err := n.Value()
	if err != nil || v == nil {
		return decimal.Decimal{}, false
	}

	switch t := v.(type) {
	case string:
		if d, err := decimal.NewFromString(t); err == nil {
			return d, true
		}
	case []byte:
		if d, err := decimal.NewFromString(string(t)); err == nil {
			return d, true
		}
	case float64:
		return decimal.NewFromFloat(t), true
	case int64:
		return decimal.NewFromInt(t), true
	default:
		if d, err := decimal.NewFromString(fmt.Sprint(v)); err == nil {
			return d, true
		}
	}

	return decimal.Decimal{}, false
}
