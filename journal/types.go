// Package journal declares the data model the balancing engine operates on:
// commodities, styled amounts, conversion prices, postings, transactions and
// the journal that holds them. It is the pure data layer — analogous to an
// AST — with no balancing logic of its own; that lives in package balance.
package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Commodity is an opaque currency or commodity symbol, e.g. "USD" or "AAPL".
// The engine never interprets its text beyond equality comparison.
type Commodity string

// Side records which side of the quantity a commodity symbol is printed on.
type Side int

const (
	SideLeft  Side = iota // $100
	SideRight             // 100 USD
)

// NaturalPrecision means "whatever precision the source amount had" rather
// than a fixed number of decimal digits. It is the spec's "Natural" value.
const NaturalPrecision = -1

// AmountStyle records how a commodity's amounts should be displayed:
// which side the symbol goes on, whether a space separates symbol from
// digits, how many decimal digits to show (or NaturalPrecision), the
// decimal-point character, and the digit-grouping separator (0 means none).
type AmountStyle struct {
	CommoditySide Side
	Spaced        bool
	Precision     int // >= 0, or NaturalPrecision
	DecimalMark   rune
	DigitGroup    rune // 0 if amounts are not digit-grouped
}

// DefaultAmountStyle is used for commodities the journal has no observed
// style for: symbol on the left, no digit grouping, natural precision.
func DefaultAmountStyle() AmountStyle {
	return AmountStyle{
		CommoditySide: SideLeft,
		Spaced:        false,
		Precision:     NaturalPrecision,
		DecimalMark:   '.',
	}
}

// PriceKind distinguishes a per-unit conversion price from a total one.
type PriceKind int

const (
	PriceUnit  PriceKind = iota // @ 1.35 USD — per unit of the posting's own commodity
	PriceTotal                  // @@ 4 USD — total for the whole posting
)

// Price is a conversion factor attached to an Amount, pointing at another
// commodity. It is always expressed as a positive or negative Amount in the
// target commodity; PriceKind says whether that Amount is per-unit or total.
type Price struct {
	Kind   PriceKind
	Amount *Amount
}

// UnitPrice builds a per-unit Price (the `@` form).
func UnitPrice(a *Amount) *Price { return &Price{Kind: PriceUnit, Amount: a} }

// TotalPrice builds a total Price (the `@@` form).
func TotalPrice(a *Amount) *Price { return &Price{Kind: PriceTotal, Amount: a} }

func (p *Price) String() string {
	if p == nil {
		return ""
	}
	if p.Kind == PriceTotal {
		return "@@ " + p.Amount.String()
	}
	return "@ " + p.Amount.String()
}

// Amount is a single signed quantity in one commodity, optionally carrying
// a conversion Price to another commodity and an AmountStyle describing how
// it should be displayed.
type Amount struct {
	Commodity Commodity
	Quantity  decimal.Decimal
	Price     *Price
	Style     AmountStyle
}

// NewAmount builds an Amount from a decimal string and commodity, with the
// default style. Panics on an unparsable quantity; use for literals/tests.
func NewAmount(quantity string, commodity Commodity) *Amount {
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		panic(fmt.Sprintf("journal: invalid amount quantity %q: %v", quantity, err))
	}
	return &Amount{Commodity: commodity, Quantity: q, Style: DefaultAmountStyle()}
}

// Neg returns a new Amount with the quantity negated. The price, if any, is
// left untouched — negating a posting's own quantity does not flip the
// conversion rate it was priced at.
func (a *Amount) Neg() *Amount {
	if a == nil {
		return nil
	}
	return &Amount{Commodity: a.Commodity, Quantity: a.Quantity.Neg(), Price: a.Price, Style: a.Style}
}

// WithStyle returns a copy of a styled under the given style.
func (a *Amount) WithStyle(style AmountStyle) *Amount {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Style = style
	return &cp
}

// Round returns the quantity rounded to the amount's display precision.
// NaturalPrecision rounds to the quantity's own exponent, i.e. a no-op.
func (a *Amount) Round() decimal.Decimal {
	if a.Style.Precision == NaturalPrecision {
		return a.Quantity
	}
	return a.Quantity.Round(int32(a.Style.Precision))
}

// IsZero reports whether the amount looks like zero at its display
// precision (spec's "looks-zero" test, applied to a single Amount).
func (a *Amount) IsZero() bool {
	return a.Round().IsZero()
}

// IsNegative reports the sign of the amount's quantity. Zero is not negative.
func (a *Amount) IsNegative() bool {
	return a.Quantity.IsNegative()
}

func (a *Amount) String() string {
	if a == nil {
		return ""
	}
	s := fmt.Sprintf("%s %s", a.Quantity.String(), a.Commodity)
	if a.Price != nil {
		s += " " + a.Price.String()
	}
	return s
}

// PostingType classifies a posting for balancing purposes: real postings
// and balanced-virtual postings are each checked and balanced separately;
// virtual postings never participate in balance math.
type PostingType int

const (
	Regular         PostingType = iota // Account
	Virtual                            // (Account)
	BalancedVirtual                    // [Account]
)
