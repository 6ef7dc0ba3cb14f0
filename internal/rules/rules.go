// Package rules rewrites payment display names and categories from an
// ordered list of substring-match rules.
package rules

import (
	"strings"

	"github.com/sift-dev/sift/internal/model"
)

// Rule matches a payment by case-insensitive substring and rewrites its
// display fields. At least one of the *_contains conditions should be set.
type Rule struct {
	PayeeContains     string `yaml:"payee_contains,omitempty"`
	ReferenceContains string `yaml:"reference_contains,omitempty"`
	Result            Result `yaml:"result"`
}

// Result holds the fields a matching rule writes. Empty fields leave the
// payment's current value untouched.
type Result struct {
	Name     string `yaml:"name,omitempty"`
	Category string `yaml:"category,omitempty"`
}

// Apply folds the rule list over a payment, in order, with no short-circuit:
// when several rules match, the last one wins. The input payment is not
// modified.
func Apply(p model.Payment, rs []Rule) model.Payment {
	out := p
	for _, r := range rs {
		if !Matches(r, out) {
			continue
		}
		if r.Result.Name != "" {
			out.PayeeFriendly = r.Result.Name
		}
		if r.Result.Category != "" {
			category := r.Result.Category
			out.Category = &category
		}
	}
	return out
}

// Matches reports whether a rule's condition holds for a payment.
//
// reference_contains is tested against the payee, not the reference. Existing
// rule files were written against that behavior, so it is kept until the
// semantics are confirmed; see DESIGN.md.
func Matches(r Rule, p model.Payment) bool {
	payee := strings.ToLower(p.Payee)
	if r.PayeeContains != "" && strings.Contains(payee, strings.ToLower(r.PayeeContains)) {
		return true
	}
	if r.ReferenceContains != "" && strings.Contains(payee, strings.ToLower(r.ReferenceContains)) {
		return true
	}
	return false
}

// Matching returns the rules that match a payment, in list order.
func Matching(p model.Payment, rs []Rule) []Rule {
	var matched []Rule
	for _, r := range rs {
		if Matches(r, p) {
			matched = append(matched, r)
		}
	}
	return matched
}
