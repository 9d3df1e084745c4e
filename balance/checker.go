package balance

import (
	"fmt"

	"github.com/Flimm/hledger/journal"
)

// classLabel names a checked posting class for diagnostic text.
type classLabel struct {
	typ   journal.PostingType
	noun  string // "real" or "balanced virtual"
}

var checkedClasses = []classLabel{
	{journal.Regular, "real"},
	{journal.BalancedVirtual, "balanced virtual"},
}

// Check runs the per-transaction sign and sum-to-zero checks of §4.2,
// independently for real postings and for balanced-virtual postings.
// Virtual postings never participate. It returns an ordered list of
// diagnostic strings, sign-first then sum per class, empty on success. Each
// class yields at most one diagnostic: once its sign check fires, the sum
// check for that same class is skipped rather than piling on a second line.
func Check(txn *journal.Transaction, opts Options) []string {
	var diagnostics []string
	styles := opts.styles()

	for _, class := range checkedClasses {
		postings := txn.PostingsByType(class.typ)

		residuals := getResidualMap()

		var nonzero []*journal.MixedAmount
		for _, p := range postings {
			if p.Amount == nil {
				continue
			}
			cost := p.Amount.ToCost()
			for _, a := range cost.Amounts() {
				addResidual(residuals, a)
			}
			if !cost.LooksZero(styles) {
				nonzero = append(nonzero, cost)
			}
		}

		if d := signDiagnostic(class.noun, nonzero, styles); d != "" {
			diagnostics = append(diagnostics, d)
			putResidualMap(residuals)
			continue
		}

		canon := mixedAmountFromResiduals(residuals, styles).Canonicalize(styles)
		putResidualMap(residuals)
		if !canon.LooksZero(styles) {
			diagnostics = append(diagnostics, fmt.Sprintf(
				"%s postings' sum should be 0 but is: %s", class.noun, canon.String()))
		}
	}

	return diagnostics
}

// signDiagnostic implements §4.2's best-effort sign check: every nonzero
// posting amount's sign must be concretely determinable (Sign's ok==true);
// if any posting's sign is ambiguous (mixed-commodity, mixed-sign amount),
// the check passes outright rather than guess. With fewer than two
// determinable nonzero postings there is nothing to compare, so it passes.
func signDiagnostic(noun string, nonzero []*journal.MixedAmount, styles map[journal.Commodity]journal.AmountStyle) string {
	var signs []bool
	for _, amt := range nonzero {
		negative, ok := amt.Sign(styles)
		if !ok {
			return "" // indeterminate sign anywhere: best-effort pass
		}
		signs = append(signs, negative)
	}

	if len(signs) < 2 {
		return ""
	}

	first := signs[0]
	for _, s := range signs[1:] {
		if s != first {
			return ""
		}
	}

	return fmt.Sprintf("%s postings all have the same sign", noun)
}
