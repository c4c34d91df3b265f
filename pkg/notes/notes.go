// Package notes round-trips the legacy manual-sale notes format, where
// settlement figures were smuggled into the free-text notes column as
// key=value tokens, e.g.
//
//	"walk-in tyre rotation profit=12.50 commission=1.88 base=18.75"
//
// New records store these figures in dedicated columns; this codec exists so
// rows written by the old system can still be read, and so exports consumed
// by downstream tooling keep their shape.
package notes

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	keyProfit     = "profit"
	keyCommission = "commission"
	keyBase       = "base"
)

// Meta holds the settlement figures embedded in legacy notes.
// Amounts are in cents.
type Meta struct {
	ProfitTotal     int64
	CommissionTotal int64
	CommissionBase  int64
}

// Encode appends the settlement tokens to the free text. The token order is
// fixed; the old system always wrote profit, commission, base.
func Encode(freeText string, m Meta) string {
	tokens := fmt.Sprintf("%s=%s %s=%s %s=%s",
		keyProfit, formatAmount(m.ProfitTotal),
		keyCommission, formatAmount(m.CommissionTotal),
		keyBase, formatAmount(m.CommissionBase),
	)

	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return tokens
	}
	return freeText + " " + tokens
}

// Decode splits a legacy notes string into its free text and settlement
// figures. ok is false when no recognized token was present, in which case
// the whole input is returned as free text.
func Decode(s string) (freeText string, m Meta, ok bool) {
	var kept []string

	for _, field := range strings.Fields(s) {
		key, val, found := strings.Cut(field, "=")
		if !found {
			kept = append(kept, field)
			continue
		}

		cents, err := parseAmount(val)
		if err != nil {
			kept = append(kept, field)
			continue
		}

		switch key {
		case keyProfit:
			m.ProfitTotal = cents
		case keyCommission:
			m.CommissionTotal = cents
		case keyBase:
			m.CommissionBase = cents
		default:
			kept = append(kept, field)
			continue
		}
		ok = true
	}

	return strings.Join(kept, " "), m, ok
}

func formatAmount(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

func parseAmount(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return int64(f*100 + 0.5), nil
}
