package model

import "time"

// Payment is one bank statement row under review.
//
// Payee is the raw counterparty name as exported and is never rewritten;
// PayeeFriendly starts out equal to Payee and is the only name the rules or
// the operator touch. Amount is in minor currency units (cents), already
// sign-inverted relative to the statement so a debit becomes a positive
// ledger amount.
type Payment struct {
	Date          time.Time
	Payee         string
	PayeeFriendly string
	Reference     string
	Amount        int64
	Category      *string // nil until a rule or the operator sets one
}
