package balance

import (
	"context"
	"testing"

	"github.com/Flimm/hledger/journal"
	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func assignment(account journal.Account, amount *journal.Amount, total, inclusive bool) *journal.Posting {
	return &journal.Posting{
		Account: account,
		Assertion: &journal.BalanceAssertion{
			Amount:    amount,
			Total:     total,
			Inclusive: inclusive,
		},
	}
}

// Scenario 6: two same-day transactions on account a: (a) = 1 then
// (a) 1 = 2 -- both accepted; final balance of a is 2.
func TestBalanceJournal_SameDayAssignments(t *testing.T) {
	j := journal.NewJournal()

	assignOne := assignment("a", usd("1"), true, false)

	checkedTwo := posting("a", usd("1"))
	checkedTwo.Assertion = &journal.BalanceAssertion{Amount: usd("2"), Total: true}

	j.Transactions = []*journal.Transaction{
		txn(t, "2024-01-01", assignOne, posting("equity", usd("-1"))),
		txn(t, "2024-01-01", checkedTwo, posting("equity", usd("-1"))),
	}

	result, err := BalanceJournal(context.Background(), j, DefaultOptions())
	assert.NoError(t, err)

	total := decimal.Zero
	for _, tr := range result.Transactions {
		for _, p := range tr.Postings {
			if p.Account == "a" {
				total = total.Add(p.Amount.AmountInCommodity("USD").Quantity)
			}
		}
	}
	assert.Equal(t, "2", total.String())
}

// Scenario 7: out-of-order input, accepted after date sort; assignments
// resolve in date order rather than input order.
func TestBalanceJournal_OutOfOrderDates(t *testing.T) {
	j := journal.NewJournal()
	second := txn(t, "2019-01-02", assignment("a", usd("2"), true, false), posting("equity", usd("-1")))
	first := txn(t, "2019-01-01", assignment("a", usd("1"), true, false), posting("equity", usd("-1")))
	j.Transactions = []*journal.Transaction{second, first}

	result, err := BalanceJournal(context.Background(), j, DefaultOptions())
	assert.NoError(t, err)

	var firstResult, secondResult *journal.Transaction
	for _, tr := range result.Transactions {
		if tr.Date.Format("2006-01-02") == "2019-01-01" {
			firstResult = tr
		} else {
			secondResult = tr
		}
	}
	assert.Equal(t, "1", firstResult.Postings[0].Amount.AmountInCommodity("USD").Quantity.String())
	assert.Equal(t, "1", secondResult.Postings[0].Amount.AmountInCommodity("USD").Quantity.String())
}

// Scenario 8: an assignment posting with a custom posting date is rejected.
func TestBalanceJournal_AssignmentWithPostingDateRejected(t *testing.T) {
	j := journal.NewJournal()
	overrideDate := mustDate(t, "2024-01-02")
	p := assignment("a", usd("1"), true, false)
	p.PostingDate = &overrideDate

	j.Transactions = []*journal.Transaction{
		txn(t, "2024-01-01", p, posting("equity", usd("-1"))),
	}

	_, err := BalanceJournal(context.Background(), j, DefaultOptions())
	assert.Error(t, err)
	_, ok := err.(*AssignmentWithPostingDateError)
	assert.True(t, ok)
}

func TestBalanceJournal_AssignmentOnUnassignableAccountRejected(t *testing.T) {
	j := journal.NewJournal()
	j.UnassignableAccounts[journal.Account("a")] = true
	j.Transactions = []*journal.Transaction{
		txn(t, "2024-01-01", assignment("a", usd("1"), true, false), posting("equity", usd("-1"))),
	}

	_, err := BalanceJournal(context.Background(), j, DefaultOptions())
	assert.Error(t, err)
	_, ok := err.(*AssignmentOnUnassignableAccountError)
	assert.True(t, ok)
}

func TestBalanceJournal_PartialAssignmentPreservesOtherCommodities(t *testing.T) {
	j := journal.NewJournal()
	j.Transactions = []*journal.Transaction{
		txn(t, "2024-01-01", posting("a", eur("10")), posting("equity", eur("-10"))),
		txn(t, "2024-01-02", assignment("a", usd("5"), false, false), posting("equity", usd("-5"))),
	}

	result, err := BalanceJournal(context.Background(), j, DefaultOptions())
	assert.NoError(t, err)

	second := result.Transactions[1]
	delta := second.Postings[0].Amount
	assert.Equal(t, "5", delta.AmountInCommodity("USD").Quantity.String())
	assert.True(t, delta.AmountInCommodity("EUR").Quantity.IsZero())
}

func TestBalanceJournal_InclusiveAssignment(t *testing.T) {
	j := journal.NewJournal()
	j.Transactions = []*journal.Transaction{
		txn(t, "2024-01-01", posting("a:sub", usd("3")), posting("equity", usd("-3"))),
		txn(t, "2024-01-02", assignment("a", usd("10"), true, true), posting("equity", usd("-7"))),
	}

	result, err := BalanceJournal(context.Background(), j, DefaultOptions())
	assert.NoError(t, err)

	second := result.Transactions[1]
	assert.Equal(t, "7", second.Postings[0].Amount.AmountInCommodity("USD").Quantity.String())
}
