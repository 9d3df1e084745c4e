package journal

import "time"

// Transaction records a dated, multi-posting entry in double-entry form.
// Index is a 1-based key assigned by the journal's numbering pass and is
// used to address the transaction in the journal balancer's mutable array;
// it has no meaning before balancing and is stable afterwards.
type Transaction struct {
	Index int

	Pos           Position
	Date          time.Time
	SecondaryDate *time.Time

	Status      string // e.g. "*" (cleared), "!" (pending), "" (unmarked)
	Code        string
	Description string
	Comment     string
	Tags        []string

	Postings []*Posting
}

// HasAssignment reports whether any posting in the transaction is a
// balance assignment (amountless but carrying a BalanceAssertion). Such
// transactions cannot be balanced standalone; they require the
// journal-level running-balance table.
func (t *Transaction) HasAssignment() bool {
	for _, p := range t.Postings {
		if p.IsAssignment() {
			return true
		}
	}
	return false
}

// PostingsByType returns the subset of postings matching typ, in order.
func (t *Transaction) PostingsByType(typ PostingType) []*Posting {
	var out []*Posting
	for _, p := range t.Postings {
		if p.Type == typ {
			out = append(out, p)
		}
	}
	return out
}

// Render produces a deterministic, human-readable rendering of the
// transaction for embedding in error messages. It is not a ledger-format
// writer — the journal text format is out of this engine's scope — it
// exists solely so diagnostics can show the offending entry.
func (t *Transaction) Render() string {
	var b []byte
	b = append(b, t.Date.Format("2006-01-02")...)
	if t.Status != "" {
		b = append(b, ' ')
		b = append(b, t.Status...)
	}
	if t.Description != "" {
		b = append(b, ' ')
		b = append(b, t.Description...)
	}
	b = append(b, '\n')
	for _, p := range t.Postings {
		b = append(b, "    "...)
		b = append(b, renderPostingAccount(p)...)
		if p.Amount != nil {
			b = append(b, "    "...)
			b = append(b, p.Amount.String()...)
		}
		if p.Assertion != nil {
			b = append(b, "  = "...)
			b = append(b, p.Assertion.Amount.String()...)
		}
		b = append(b, '\n')
	}
	return string(b)
}

func renderPostingAccount(p *Posting) string {
	switch p.Type {
	case Virtual:
		return "(" + string(p.Account) + ")"
	case BalancedVirtual:
		return "[" + string(p.Account) + "]"
	default:
		return string(p.Account)
	}
}
