package balance

import (
	"testing"

	"github.com/Flimm/hledger/journal"
	"github.com/alecthomas/assert/v2"
)

func TestCheckAssertion_ExactMatch(t *testing.T) {
	bals := map[journal.Account]*journal.MixedAmount{
		"a": journal.NewMixedAmount(usd("5")),
	}
	p := &journal.Posting{
		Account:     "a",
		Assertion:   &journal.BalanceAssertion{Amount: usd("5")},
		Transaction: &journal.Transaction{},
	}

	assert.NoError(t, checkAssertion(p, bals))
}

func TestCheckAssertion_Mismatch(t *testing.T) {
	bals := map[journal.Account]*journal.MixedAmount{
		"a": journal.NewMixedAmount(usd("5")),
	}
	p := &journal.Posting{
		Account:     "a",
		Assertion:   &journal.BalanceAssertion{Amount: usd("6")},
		Transaction: &journal.Transaction{},
	}

	err := checkAssertion(p, bals)
	assert.Error(t, err)

	failure, ok := err.(*AssertionFailedError)
	assert.True(t, ok)
	assert.Equal(t, "5", failure.Calculated)
	assert.Equal(t, "6", failure.Asserted)
}

func TestCheckAssertion_TotalRequiresOtherCommoditiesZero(t *testing.T) {
	bals := map[journal.Account]*journal.MixedAmount{
		"a": journal.NewMixedAmount(usd("5"), eur("1")),
	}
	p := &journal.Posting{
		Account:     "a",
		Assertion:   &journal.BalanceAssertion{Amount: usd("5"), Total: true},
		Transaction: &journal.Transaction{},
	}

	err := checkAssertion(p, bals)
	assert.Error(t, err)

	failure, ok := err.(*AssertionFailedError)
	assert.True(t, ok)
	assert.Equal(t, journal.Commodity("EUR"), failure.Commodity)
}

func TestCheckAssertion_InclusiveRollsUpSubaccounts(t *testing.T) {
	bals := map[journal.Account]*journal.MixedAmount{
		"a":     journal.NewMixedAmount(usd("5")),
		"a:sub": journal.NewMixedAmount(usd("5")),
	}
	p := &journal.Posting{
		Account:     "a",
		Assertion:   &journal.BalanceAssertion{Amount: usd("10"), Inclusive: true},
		Transaction: &journal.Transaction{},
	}

	assert.NoError(t, checkAssertion(p, bals))
}

func TestInclusiveRollup_ExcludesUnrelatedAccounts(t *testing.T) {
	bals := map[journal.Account]*journal.MixedAmount{
		"a":       journal.NewMixedAmount(usd("5")),
		"a:sub":   journal.NewMixedAmount(usd("5")),
		"assets2": journal.NewMixedAmount(usd("100")),
	}

	rollup := inclusiveRollup(bals, "a")
	assert.Equal(t, "10", rollup.AmountInCommodity("USD").Quantity.String())
}

func TestProperSubaccountsSum_ExcludesSelf(t *testing.T) {
	bals := map[journal.Account]*journal.MixedAmount{
		"a":     journal.NewMixedAmount(usd("5")),
		"a:sub": journal.NewMixedAmount(usd("3")),
	}

	sum := properSubaccountsSum(bals, "a")
	assert.Equal(t, "3", sum.AmountInCommodity("USD").Quantity.String())
}
