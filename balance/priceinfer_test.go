package balance

import (
	"testing"

	"github.com/Flimm/hledger/journal"
	"github.com/alecthomas/assert/v2"
)

// Scenario 5: a 1.35 USD, b -1 EUR -> first posting becomes
// 1.35 USD @@ 1 EUR; transaction balances on cost.
func TestInferPrices_SinglePostingGetsTotalPrice(t *testing.T) {
	a := posting("a", usd("1.35"))
	b := posting("b", eur("-1"))
	tr := txn(t, "2024-01-01", a, b)

	inferPrices(tr, DefaultOptions())

	amt := a.Amount.Amounts()[0]
	assert.True(t, amt.Price != nil)
	assert.Equal(t, journal.PriceTotal, amt.Price.Kind)
	assert.Equal(t, "1", amt.Price.Amount.Quantity.String())

	diagnostics := Check(tr, DefaultOptions())
	assert.Zero(t, len(diagnostics))
}

func TestInferPrices_SharedUnitPrice(t *testing.T) {
	a1 := posting("a", usd("1"))
	a2 := posting("a", usd("1"))
	b := posting("b", eur("-2"))
	tr := txn(t, "2024-01-01", a1, a2, b)

	inferPrices(tr, DefaultOptions())

	amt1 := a1.Amount.Amounts()[0]
	amt2 := a2.Amount.Amounts()[0]
	assert.True(t, amt1.Price != nil)
	assert.Equal(t, journal.PriceUnit, amt1.Price.Kind)
	assert.Equal(t, amt1.Price.Amount.Quantity.String(), amt2.Price.Amount.Quantity.String())
}

func TestInferPrices_SkipsWhenAlreadyPriced(t *testing.T) {
	priced := usd("1")
	priced.Price = journal.UnitPrice(eur("1"))
	a := posting("a", priced)
	b := posting("b", eur("-1"))
	tr := txn(t, "2024-01-01", a, b)

	inferPrices(tr, DefaultOptions())

	assert.Equal(t, 1, len(b.Amount.Amounts()))
	assert.Zero(t, b.Amount.Amounts()[0].Price)
}

func TestInferPrices_SkipsWhenSameSign(t *testing.T) {
	a := posting("a", usd("1"))
	b := posting("b", eur("1"))
	tr := txn(t, "2024-01-01", a, b)

	inferPrices(tr, DefaultOptions())

	assert.Zero(t, a.Amount.Amounts()[0].Price)
}
