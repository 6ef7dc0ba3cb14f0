package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sift-dev/sift/internal/model"
)

func payment(payee, reference string) model.Payment {
	return model.Payment{
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Payee:         payee,
		PayeeFriendly: payee,
		Reference:     reference,
		Amount:        1250,
	}
}

func TestApply_RenameAndCategorize(t *testing.T) {
	rs := []Rule{
		{PayeeContains: "NETFLIX", Result: Result{Name: "Netflix", Category: "subscription"}},
	}

	got := Apply(payment("NETFLIX.COM", ""), rs)
	assert.Equal(t, "Netflix", got.PayeeFriendly)
	require.NotNil(t, got.Category)
	assert.Equal(t, "subscription", *got.Category)
	assert.Equal(t, "NETFLIX.COM", got.Payee, "raw payee never changes")
}

func TestApply_CaseInsensitive(t *testing.T) {
	rs := []Rule{{PayeeContains: "netflix", Result: Result{Name: "Netflix"}}}
	got := Apply(payment("NETFLIX.COM", ""), rs)
	assert.Equal(t, "Netflix", got.PayeeFriendly)
}

func TestApply_NoMatch(t *testing.T) {
	rs := []Rule{{PayeeContains: "NETFLIX", Result: Result{Name: "Netflix"}}}
	got := Apply(payment("REWE MARKT", ""), rs)
	assert.Equal(t, "REWE MARKT", got.PayeeFriendly)
	assert.Nil(t, got.Category)
}

func TestApply_LastMatchWins(t *testing.T) {
	rs := []Rule{
		{PayeeContains: "MARKT", Result: Result{Name: "First"}},
		{PayeeContains: "REWE", Result: Result{Name: "Second"}},
	}
	got := Apply(payment("REWE MARKT", ""), rs)
	assert.Equal(t, "Second", got.PayeeFriendly)
}

func TestApply_LaterRuleKeepsEarlierFields(t *testing.T) {
	rs := []Rule{
		{PayeeContains: "REWE", Result: Result{Name: "Rewe", Category: "grocery"}},
		{PayeeContains: "MARKT", Result: Result{Name: "Markt"}},
	}
	got := Apply(payment("REWE MARKT", ""), rs)
	assert.Equal(t, "Markt", got.PayeeFriendly)
	require.NotNil(t, got.Category)
	assert.Equal(t, "grocery", *got.Category, "category survives a rule without one")
}

func TestApply_Idempotent(t *testing.T) {
	rs := []Rule{
		{PayeeContains: "NETFLIX", Result: Result{Name: "Netflix", Category: "subscription"}},
		{ReferenceContains: "flix", Result: Result{Category: "streaming"}},
	}

	once := Apply(payment("NETFLIX.COM", ""), rs)
	twice := Apply(once, rs)
	assert.Equal(t, once, twice)
}

func TestApply_InputNotModified(t *testing.T) {
	rs := []Rule{{PayeeContains: "NETFLIX", Result: Result{Name: "Netflix"}}}
	in := payment("NETFLIX.COM", "")
	_ = Apply(in, rs)
	assert.Equal(t, "NETFLIX.COM", in.PayeeFriendly)
	assert.Nil(t, in.Category)
}

func TestMatches_ReferenceConditionTestsPayee(t *testing.T) {
	// reference_contains matches against the payee, not the reference.
	// Existing rule files depend on this; see DESIGN.md.
	r := Rule{ReferenceContains: "NETFLIX", Result: Result{Name: "Netflix"}}

	assert.True(t, Matches(r, payment("NETFLIX.COM", "invoice 42")))
	assert.False(t, Matches(r, payment("PAYPAL", "NETFLIX monthly")))
}

func TestMatching_PreservesOrder(t *testing.T) {
	rs := []Rule{
		{PayeeContains: "MARKT", Result: Result{Name: "First"}},
		{PayeeContains: "none", Result: Result{Name: "Never"}},
		{PayeeContains: "REWE", Result: Result{Name: "Second"}},
	}

	matched := Matching(payment("REWE MARKT", ""), rs)
	require.Len(t, matched, 2)
	assert.Equal(t, "First", matched[0].Result.Name)
	assert.Equal(t, "Second", matched[1].Result.Name)
}
