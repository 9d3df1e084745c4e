package balance

import (
	"testing"
	"time"

	"github.com/Flimm/hledger/journal"
	"github.com/alecthomas/assert/v2"
)

func usd(q string) *journal.Amount { return journal.NewAmount(q, "USD") }
func eur(q string) *journal.Amount { return journal.NewAmount(q, "EUR") }

func mustDate(t *testing.T, s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	assert.NoError(t, err)
	return d
}

// posting builds a regular posting, amt nil meaning "missing, to be inferred".
func posting(account journal.Account, amt *journal.Amount) *journal.Posting {
	p := &journal.Posting{Account: account, Type: journal.Regular}
	if amt != nil {
		p.Amount = journal.NewMixedAmount(amt)
	}
	return p
}

// txn builds a transaction dated date with the given postings.
func txn(t *testing.T, date string, postings ...*journal.Posting) *journal.Transaction {
	return &journal.Transaction{Date: mustDate(t, date), Description: "test", Postings: postings}
}
