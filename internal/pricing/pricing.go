package pricing

import (
	"github.com/festivo/festivo-backend/pkg/config"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Policy applies the platform's fee and tax rates to package amounts.
// Tax is computed on the subtotal alone, never on subtotal plus fee; the two
// orderings diverge once rates are nonzero, so the choice is fixed here.
// Both fee and tax truncate toward zero so totals reproduce exactly.
type Policy struct {
	feeRate decimal.Decimal
	taxRate decimal.Decimal
}

var bpsDivisor = decimal.NewFromInt(10000)

// NewPolicy converts basis-point config into decimal rates.
func NewPolicy(cfg config.PricingConfig) Policy {
	return Policy{
		feeRate: decimal.NewFromInt(int64(cfg.PlatformFeeBps)).Div(bpsDivisor),
		taxRate: decimal.NewFromInt(int64(cfg.TaxBps)).Div(bpsDivisor),
	}
}

// Totals are always derived from the current item list, never stored
// independently of it.
type Totals struct {
	SubtotalCents    int `json:"subtotal_cents"`
	PlatformFeeCents int `json:"platform_fee_cents"`
	TaxCents         int `json:"tax_cents"`
	TotalCents       int `json:"total_cents"`
}

// LineTotalCents computes unit price times quantity. Quantities are whole and
// positive in this domain.
func LineTotalCents(unitPriceCents, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidArgument, "quantity must be positive")
	}
	if unitPriceCents < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidArgument, "unit price must be non-negative")
	}
	return unitPriceCents * quantity, nil
}

// PlatformFeeCents returns the truncated platform fee on the subtotal.
func (p Policy) PlatformFeeCents(subtotalCents int) int {
	return int(decimal.NewFromInt(int64(subtotalCents)).Mul(p.feeRate).IntPart())
}

// TaxCents returns the truncated tax on the subtotal.
func (p Policy) TaxCents(subtotalCents int) int {
	return int(decimal.NewFromInt(int64(subtotalCents)).Mul(p.taxRate).IntPart())
}

// Compute derives all totals from scratch from the given line totals.
func (p Policy) Compute(lineTotals []int) Totals {
	subtotal := 0
	for _, line := range lineTotals {
		subtotal += line
	}
	fee := p.PlatformFeeCents(subtotal)
	tax := p.TaxCents(subtotal)
	return Totals{
		SubtotalCents:    subtotal,
		PlatformFeeCents: fee,
		TaxCents:         tax,
		TotalCents:       subtotal + fee + tax,
	}
}
