package balance

import (
	"fmt"
	"strings"

	"github.com/Flimm/hledger/journal"
)

// BalanceError reports that a transaction's checker found one or more
// problems (wrong sign, nonzero sum) in one of its posting classes. It is
// the error kind behind both spec's UnbalancedSum and SameSign: a single
// transaction can fail both checks at once (e.g. on both its real and
// balanced-virtual postings), so the checker collects every diagnostic line
// before the single-transaction balancer wraps them into one message.
type BalanceError struct {
	Pos         journal.Position
	Diagnostics []string
	Transaction *journal.Transaction
}

func (e *BalanceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not balance this transaction:\n")
	for _, d := range e.Diagnostics {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "(%s)\n", e.Pos)
	b.WriteString(e.Transaction.Render())
	return b.String()
}

func (e *BalanceError) GetPosition() journal.Position { return e.Pos }

// TooManyMissingAmountsError is returned by the amount inferrer when a
// posting class has more than one amountless posting — ambiguous, since
// any one of them could absorb the residual.
type TooManyMissingAmountsError struct {
	Pos         journal.Position
	Class       string // "real" or "balanced virtual"
	Transaction *journal.Transaction
}

func (e *TooManyMissingAmountsError) Error() string {
	return fmt.Sprintf(
		"can't have more than one %s posting with no amount\n"+
			"(Hint: a posting's amount must be separated from its account by at least two spaces or a tab.)",
		e.Class,
	)
}

func (e *TooManyMissingAmountsError) GetPosition() journal.Position { return e.Pos }

// AssignmentWithPostingDateError is returned when a balance-assignment
// posting carries an explicit posting date: assignments resolve against
// the running balance at the posting's position in the date-sorted pass,
// and an overridden date would make "the" running balance ambiguous.
type AssignmentWithPostingDateError struct {
	Pos         journal.Position
	Account     journal.Account
	Transaction *journal.Transaction
}

func (e *AssignmentWithPostingDateError) Error() string {
	return fmt.Sprintf(
		"balance assignments cannot have a custom posting date\n"+
			"(%s) account: %s\n%s",
		e.Pos, e.Account, e.Transaction.Render(),
	)
}

func (e *AssignmentWithPostingDateError) GetPosition() journal.Position { return e.Pos }

// AssignmentOnUnassignableAccountError is returned when a balance
// assignment targets an account named by a transaction-modifier rule.
// Modifier rules generate postings on these accounts automatically, so a
// user-written assignment there could race an amount it did not write.
type AssignmentOnUnassignableAccountError struct {
	Pos         journal.Position
	Account     journal.Account
	Transaction *journal.Transaction
}

func (e *AssignmentOnUnassignableAccountError) Error() string {
	return fmt.Sprintf(
		"balance assignments cannot be used with account %s\n"+
			"(it is managed by a transaction modifier rule)\n%s",
		e.Account, e.Transaction.Render(),
	)
}

func (e *AssignmentOnUnassignableAccountError) GetPosition() journal.Position { return e.Pos }

// AssertionFailedError is returned when a posting's BalanceAssertion does
// not match the running balance computed for it at its point in date order.
type AssertionFailedError struct {
	Pos         journal.Position
	Date        string
	Account     journal.Account
	Inclusive   bool
	Commodity   journal.Commodity
	Calculated  string
	Asserted    string
	Difference  string
	Transaction *journal.Transaction
}

func (e *AssertionFailedError) Error() string {
	account := string(e.Account)
	if e.Inclusive {
		account += " (and subs)"
	}
	return fmt.Sprintf(
		"balance assertion failed\n"+
			"date: %s\n"+
			"account: %s\n"+
			"commodity: %s\n"+
			"calculated: %s\n"+
			"asserted: %s\n"+
			"difference: %s\n"+
			"(%s)\n%s",
		e.Date, account, e.Commodity, e.Calculated, e.Asserted, e.Difference, e.Pos, e.Transaction.Render(),
	)
}

func (e *AssertionFailedError) GetPosition() journal.Position { return e.Pos }
