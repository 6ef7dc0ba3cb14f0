// Package triage runs the interactive review loop that sorts payments into
// the approved, second-look and ignore buckets.
package triage

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/sift-dev/sift/internal/model"
	"github.com/sift-dev/sift/internal/money"
	"github.com/sift-dev/sift/internal/rules"
)

// KeyReader supplies single-key operator commands.
type KeyReader interface {
	ReadKey() (rune, error)
}

// RecordEditor hands a payment to an external editor and returns the edited
// result. An error means the payment was not replaced.
type RecordEditor interface {
	Edit(p model.Payment) (model.Payment, error)
}

// Outcome holds the three terminal buckets. At the end of a run (completed or
// quit early) every input payment sits in exactly one of them.
type Outcome struct {
	Approved   []model.Payment
	SecondLook []model.Payment
	Ignored    []model.Payment
}

// Session runs the interactive review loop. Rules are applied per record at
// display time; the session itself holds no state between records beyond the
// outcome buckets.
type Session struct {
	Rules      []rules.Rule
	Categories map[string]string // shortcut key -> category name
	Keys       KeyReader
	Editor     RecordEditor
	Out        io.Writer
}

const commandMenu = "(a) approve / (c) add category / (e) edit by hand and approve / (j) second look / (x) ignore / (q) quit"

// Run reviews payments one at a time, in reverse of input order: bank exports
// list the newest booking first, so the reversal walks the operator through
// the statement chronologically. Quitting sends the current record and
// everything after it (in reversed positions, unmodified) to second look.
func (s *Session) Run(payments []model.Payment) (*Outcome, error) {
	items := make([]model.Payment, len(payments))
	for i, p := range payments {
		items[len(payments)-1-i] = p
	}

	out := &Outcome{}
	for idx, raw := range items {
		p := rules.Apply(raw, s.Rules)
		s.render(raw, p, idx+1, len(items))

		quit, err := s.decide(&p, out)
		if err != nil {
			return nil, err
		}
		if quit {
			fmt.Fprintln(s.Out, "adding all remaining items to the second look list")
			out.SecondLook = append(out.SecondLook, items[idx:]...)
			break
		}
	}
	return out, nil
}

// decide loops until the operator picks a terminal action for p. It appends
// the record to a bucket itself except on quit, where the caller sweeps up
// the remainder.
func (s *Session) decide(p *model.Payment, out *Outcome) (quit bool, err error) {
	for {
		fmt.Fprintln(s.Out, commandMenu)
		ch, err := s.Keys.ReadKey()
		if err != nil {
			return false, fmt.Errorf("reading command: %w", err)
		}

		switch ch {
		case 'a':
			out.Approved = append(out.Approved, *p)
			fmt.Fprintln(s.Out, "added to the approved list")
			return false, nil
		case 'c':
			if err := s.chooseCategory(p); err != nil {
				return false, err
			}
		case 'e':
			edited, err := s.Editor.Edit(*p)
			if err != nil {
				// Keep the unedited record so the operator can retry.
				color.New(color.FgRed).Fprintf(s.Out, "edit failed: %v\n", err)
				continue
			}
			*p = edited
			out.Approved = append(out.Approved, *p)
			fmt.Fprintln(s.Out, "added to the approved list")
			return false, nil
		case 'j':
			out.SecondLook = append(out.SecondLook, *p)
			fmt.Fprintln(s.Out, "added to the second look list")
			return false, nil
		case 'x':
			out.Ignored = append(out.Ignored, *p)
			fmt.Fprintln(s.Out, "added to the ignore list")
			return false, nil
		case 'q':
			return true, nil
		}
	}
}

// chooseCategory shows the shortcut menu and sets the category in place. Any
// key without a mapping clears it. The operator stays in the decision loop
// afterwards; categorizing is not a terminal action.
func (s *Session) chooseCategory(p *model.Payment) error {
	keys := make([]string, 0, len(s.Categories))
	for k := range s.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.Out, "(%s) %s\n", k, s.Categories[k])
	}
	fmt.Fprintln(s.Out, "(x) clear category")

	ch, err := s.Keys.ReadKey()
	if err != nil {
		return fmt.Errorf("reading category: %w", err)
	}

	if name, ok := s.Categories[string(ch)]; ok {
		p.Category = &name
	} else {
		p.Category = nil
	}
	return nil
}

func (s *Session) render(raw, p model.Payment, pos, total int) {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out)
	for _, r := range rules.Matching(raw, s.Rules) {
		color.New(color.FgYellow).Fprintf(s.Out, "rule: %+v\n", r)
	}

	color.New(color.Bold).Fprintf(s.Out, "%d/%d\n", pos, total)
	fmt.Fprintf(s.Out, "Date:       %s\n", p.Date.Format("2006-01-02"))
	fmt.Fprintf(s.Out, "Payee:      %s (%s)\n", p.PayeeFriendly, p.Payee)
	fmt.Fprintf(s.Out, "Reference:  %s\n", p.Reference)

	amount := color.New(color.FgGreen)
	if p.Amount < 0 {
		amount = color.New(color.FgRed)
	}
	amount.Fprintf(s.Out, "Amount:     %s\n", money.FormatMajorUnits(p.Amount))
}
