package balance

import (
	"context"
	"fmt"

	"github.com/Flimm/hledger/journal"
	"github.com/Flimm/hledger/telemetry"
)

// BalanceTransaction balances a single transaction standalone: infers at
// most one missing price and one missing amount per posting class, then
// checks it. Assignments require running-balance state a lone transaction
// doesn't have, so a transaction carrying one is rejected outright — the
// spec requires callers to go through BalanceJournal for those.
func BalanceTransaction(ctx context.Context, txn *journal.Transaction, opts Options) (*journal.Transaction, error) {
	timer := telemetry.StartTimer(ctx, "balance.transaction")
	defer timer.End()

	if txn.HasAssignment() {
		return nil, fmt.Errorf("balance: transaction has a balance assignment; use BalanceJournal")
	}

	result, _, err := balanceWithInferred(txn, opts)
	return result, err
}

// IsBalanced is a convenience wrapper around Check: it runs no inference,
// it only reports whether the transaction already passes the checker as-is.
func IsBalanced(ctx context.Context, txn *journal.Transaction, opts Options) bool {
	timer := telemetry.StartTimer(ctx, "balance.is_balanced")
	defer timer.End()

	return len(Check(txn, opts)) == 0
}

// balanceWithInferred is the §4.5 pipeline used both by BalanceTransaction
// and, internally, by the journal balancer once it has resolved every
// assignment posting in txn down to an explicit amount. It returns the
// (account, amount) pairs the amount inferrer produced, since those
// postings were never walked by the journal balancer's own running-balance
// loop and must still be folded into it.
//
// Price and amount inference run against a scratch copy of txn's postings,
// not txn's own, so that a class that infers successfully but is then
// rejected by Check because a different class fails never leaves the
// caller's Posting values half-written. Only once Check passes are the
// scratch postings' Amount/Original copied back onto txn's own postings —
// the same compute-delta-then-apply shape the teacher's own
// processTransaction/validateTransaction pair uses (ledger/ledger.go:201),
// which mutates nothing until validation has fully succeeded.
func balanceWithInferred(txn *journal.Transaction, opts Options) (*journal.Transaction, []InferredAmount, error) {
	scratch := *txn
	scratch.Postings = make([]*journal.Posting, len(txn.Postings))
	for i, p := range txn.Postings {
		cp := *p
		scratch.Postings[i] = &cp
	}

	if opts.InferTransactionPrices {
		inferPrices(&scratch, opts)
	}

	inferred, err := inferAmounts(&scratch, opts)
	if err != nil {
		return nil, nil, err
	}

	if diagnostics := Check(&scratch, opts); len(diagnostics) > 0 {
		return nil, nil, &BalanceError{
			Pos:         txn.Pos,
			Diagnostics: diagnostics,
			Transaction: txn,
		}
	}

	for i, p := range txn.Postings {
		p.Amount = scratch.Postings[i].Amount
		p.Original = scratch.Postings[i].Original
		p.Transaction = txn
	}

	return txn, inferred, nil
}
