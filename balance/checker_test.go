package balance

import (
	"strings"
	"testing"

	"github.com/Flimm/hledger/journal"
	"github.com/alecthomas/assert/v2"
)

func TestCheck_Balanced(t *testing.T) {
	tr := txn(t, "2024-01-01",
		posting("a", usd("-5")),
		posting("b", usd("5")),
	)

	diagnostics := Check(tr, DefaultOptions())
	assert.Zero(t, len(diagnostics))
}

// Scenario 3: a 1 USD, b 1 USD -> error "real postings all have the same sign".
func TestCheck_SameSign(t *testing.T) {
	tr := txn(t, "2024-01-01",
		posting("a", usd("1")),
		posting("b", usd("1")),
	)

	diagnostics := Check(tr, DefaultOptions())
	assert.Equal(t, 1, len(diagnostics))
	assert.Equal(t, "real postings all have the same sign", diagnostics[0])
}

func TestCheck_UnbalancedSum(t *testing.T) {
	tr := txn(t, "2024-01-01",
		posting("a", usd("-5")),
		posting("b", usd("3")),
	)

	diagnostics := Check(tr, DefaultOptions())
	assert.Equal(t, 1, len(diagnostics))
	assert.True(t, strings.Contains(diagnostics[0], "real postings' sum should be 0 but is"))
}

func TestCheck_BalancedMultiCommodityMixedSigns(t *testing.T) {
	tr := txn(t, "2024-01-01",
		posting("a", usd("5")),
		posting("b", eur("5")),
		posting("c", usd("-5")),
		posting("d", eur("-5")),
	)

	// Each posting holds a single commodity, so every individual sign is
	// determinate; this is a balanced, multi-sign set that should pass both
	// checks.
	diagnostics := Check(tr, DefaultOptions())
	assert.Zero(t, len(diagnostics))
}

func TestCheck_VirtualPostingsExcluded(t *testing.T) {
	tr := txn(t, "2024-01-01",
		posting("a", usd("-5")),
		posting("b", usd("5")),
		&journal.Posting{Account: "c", Type: journal.Virtual, Amount: journal.NewMixedAmount(usd("999"))},
	)

	diagnostics := Check(tr, DefaultOptions())
	assert.Zero(t, len(diagnostics))
}
