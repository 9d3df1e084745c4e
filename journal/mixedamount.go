package journal

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// MixedAmount is an ordered multiset of Amounts, e.g. the value of a posting
// that holds "10 USD, 5 EUR" at once. It keeps two views of the same data:
//
//   - raw: insertion order, preserved exactly as amounts were added, used
//     where component-by-component processing matters (e.g. summing weights
//     before cost conversion, or round-tripping a posting's original form).
//   - normalized (via Amounts): one entry per (commodity, price) pair, with
//     quantities of matching pairs summed together.
//
// This mirrors the teacher repo's Inventory type (map[commodity][]lot with
// Add/Get and sorted iteration), keyed here by commodity+price identity
// instead of by cost lot, since this engine does not track acquisition lots.
type MixedAmount struct {
	raw []*Amount
}

// NewMixedAmount builds a MixedAmount from the given Amounts, preserving
// their order as the raw view. Nil amounts are dropped.
func NewMixedAmount(amounts ...*Amount) *MixedAmount {
	m := &MixedAmount{}
	for _, a := range amounts {
		if a != nil {
			m.raw = append(m.raw, a)
		}
	}
	return m
}

// priceKey returns a string identity for an Amount's price, used to group
// amounts that should be summed together under Amounts(). Amounts with no
// price share the empty key.
func priceKey(a *Amount) string {
	if a.Price == nil {
		return ""
	}
	kind := "u"
	if a.Price.Kind == PriceTotal {
		kind = "t"
	}
	return kind + "|" + string(a.Price.Amount.Commodity) + "|" + a.Price.Amount.Quantity.String()
}

// Raw returns the amounts in insertion order, unmerged. The returned slice
// shares no backing array with m's internals.
func (m *MixedAmount) Raw() []*Amount {
	if m == nil {
		return nil
	}
	out := make([]*Amount, len(m.raw))
	copy(out, m.raw)
	return out
}

// Amounts returns the normalized view: one Amount per distinct
// (commodity, price) pair found in the raw view, with quantities summed.
// Order is by first appearance of each (commodity, price) pair.
func (m *MixedAmount) Amounts() []*Amount {
	if m == nil {
		return nil
	}

	type bucket struct {
		amount *Amount
	}
	order := make([]string, 0, len(m.raw))
	buckets := make(map[string]*bucket, len(m.raw))

	for _, a := range m.raw {
		key := string(a.Commodity) + "\x00" + priceKey(a)
		if b, ok := buckets[key]; ok {
			b.amount.Quantity = b.amount.Quantity.Add(a.Quantity)
			continue
		}
		cp := *a
		buckets[key] = &bucket{amount: &cp}
		order = append(order, key)
	}

	out := make([]*Amount, 0, len(order))
	for _, key := range order {
		out = append(out, buckets[key].amount)
	}
	return out
}

// IsEmpty reports whether the mixed amount has no components at all.
func (m *MixedAmount) IsEmpty() bool {
	return m == nil || len(m.raw) == 0
}

// AmountInCommodity sums every component (ignoring price) whose commodity
// matches, returning a bare Amount in that commodity (zero if absent).
// Used by the assertion checker to pull the single-commodity value out of a
// running balance that may hold several commodities at once.
func (m *MixedAmount) AmountInCommodity(c Commodity) *Amount {
	total := decimal.Zero
	style := DefaultAmountStyle()
	found := false
	if m != nil {
		for _, a := range m.raw {
			if a.Commodity == c {
				total = total.Add(a.Quantity)
				if !found {
					style = a.Style
					found = true
				}
			}
		}
	}
	return &Amount{Commodity: c, Quantity: total, Style: style}
}

// Commodities returns the distinct commodities present, in first-appearance order.
func (m *MixedAmount) Commodities() []Commodity {
	if m == nil {
		return nil
	}
	seen := make(map[Commodity]bool)
	var out []Commodity
	for _, a := range m.raw {
		if !seen[a.Commodity] {
			seen[a.Commodity] = true
			out = append(out, a.Commodity)
		}
	}
	return out
}

// Add returns a new MixedAmount holding the commodity-wise sum of m and
// other, normalized.
func (m *MixedAmount) Add(other *MixedAmount) *MixedAmount {
	combined := NewMixedAmount()
	combined.raw = append(combined.raw, m.Raw()...)
	combined.raw = append(combined.raw, other.Raw()...)
	return NewMixedAmount(combined.Amounts()...)
}

// Sub returns m minus other, commodity-wise.
func (m *MixedAmount) Sub(other *MixedAmount) *MixedAmount {
	return m.Add(other.Negate())
}

// Negate returns a new MixedAmount with every component's quantity negated.
func (m *MixedAmount) Negate() *MixedAmount {
	if m == nil {
		return NewMixedAmount()
	}
	out := make([]*Amount, len(m.raw))
	for i, a := range m.raw {
		out[i] = a.Neg()
	}
	return NewMixedAmount(out...)
}

// Filter returns a new MixedAmount containing only the raw components for
// which pred returns true.
func (m *MixedAmount) Filter(pred func(*Amount) bool) *MixedAmount {
	out := NewMixedAmount()
	if m == nil {
		return out
	}
	for _, a := range m.raw {
		if pred(a) {
			out.raw = append(out.raw, a)
		}
	}
	return out
}

// WithoutZeros returns a copy of m's normalized view with every component
// that looks zero at its display precision removed.
func (m *MixedAmount) WithoutZeros() *MixedAmount {
	return NewMixedAmount(m.Amounts()...).Filter(func(a *Amount) bool { return !a.IsZero() })
}

// ToCost replaces every priced component with its cost-denominated
// equivalent: a Unit price multiplies the quantity by the price's quantity;
// a Total price substitutes the price's magnitude, keeping the original
// component's sign. Unpriced components pass through unchanged. The result
// carries no prices — it is already expressed at cost.
func (m *MixedAmount) ToCost() *MixedAmount {
	out := NewMixedAmount()
	if m == nil {
		return out
	}
	for _, a := range m.raw {
		if a.Price == nil {
			out.raw = append(out.raw, a)
			continue
		}

		priceAmt := a.Price.Amount
		var qty decimal.Decimal
		switch a.Price.Kind {
		case PriceTotal:
			qty = priceAmt.Quantity.Abs()
			if a.IsNegative() {
				qty = qty.Neg()
			}
		default: // PriceUnit
			qty = a.Quantity.Mul(priceAmt.Quantity)
		}

		out.raw = append(out.raw, &Amount{
			Commodity: priceAmt.Commodity,
			Quantity:  qty,
			Style:     priceAmt.Style,
		})
	}
	return out
}

// WithoutPrices returns a copy of m's raw view with every component's Price
// cleared. The running-balance table tracks each commodity in its own
// terms rather than through whatever it was priced at when posted.
func (m *MixedAmount) WithoutPrices() *MixedAmount {
	out := NewMixedAmount()
	if m == nil {
		return out
	}
	for _, a := range m.raw {
		cp := *a
		cp.Price = nil
		out.raw = append(out.raw, &cp)
	}
	return out
}

// Canonicalize restyles every normalized component under styles (falling
// back to each component's own style when styles has no entry for its
// commodity) and returns the normalized, restyled result.
func (m *MixedAmount) Canonicalize(styles map[Commodity]AmountStyle) *MixedAmount {
	out := NewMixedAmount()
	for _, a := range m.Amounts() {
		style := a.Style
		if s, ok := styles[a.Commodity]; ok {
			style = s
		}
		out.raw = append(out.raw, a.WithStyle(style))
	}
	return out
}

// LooksZero reports whether every commodity's canonicalized quantity rounds
// to zero at that commodity's display precision. An empty mixed amount
// looks zero.
func (m *MixedAmount) LooksZero(styles map[Commodity]AmountStyle) bool {
	for _, a := range m.Canonicalize(styles).Amounts() {
		if !a.IsZero() {
			return false
		}
	}
	return true
}

// Sign reports the common sign of every nonzero commodity in the
// normalized view. ok is false when the mixed amount has commodities of
// both signs (Nothing, in the spec's terms) or has no nonzero commodity.
func (m *MixedAmount) Sign(styles map[Commodity]AmountStyle) (negative bool, ok bool) {
	seenPositive, seenNegative := false, false
	for _, a := range m.Canonicalize(styles).Amounts() {
		if a.IsZero() {
			continue
		}
		if a.IsNegative() {
			seenNegative = true
		} else {
			seenPositive = true
		}
	}
	switch {
	case seenPositive && seenNegative:
		return false, false
	case seenNegative:
		return true, true
	case seenPositive:
		return false, true
	default:
		return false, false
	}
}

// DivideAmount divides numerator's quantity by divisor's quantity. It is
// defined only when divisor holds exactly one commodity; the result is
// expressed in numerator's commodity. Used by the price inferrer to derive
// a unit price (-to / from_quantity).
func DivideAmount(numerator *Amount, divisor *MixedAmount) (*Amount, bool) {
	amounts := divisor.Amounts()
	if len(amounts) != 1 {
		return nil, false
	}
	return &Amount{
		Commodity: numerator.Commodity,
		Quantity:  numerator.Quantity.Div(amounts[0].Quantity),
		Style:     numerator.Style,
	}, true
}

func (m *MixedAmount) String() string {
	amounts := m.Amounts()
	parts := make([]string, len(amounts))
	for i, a := range amounts {
		parts[i] = a.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
