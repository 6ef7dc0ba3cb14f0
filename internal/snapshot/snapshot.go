// Package snapshot persists triage buckets as JSON files so a run can be
// resumed or pushed later.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sift-dev/sift/internal/model"
)

const dateFormat = "2006-01-02"

// paymentJSON is the persisted shape of one payment. The schema is spelled
// out field by field so the on-disk format cannot drift with the in-memory
// struct. Required fields are pointers so decoding can tell absent from
// zero-valued.
type paymentJSON struct {
	Date          *string `json:"date"`
	Payee         *string `json:"payee"`
	PayeeFriendly *string `json:"payee_friendly"`
	Reference     *string `json:"reference"`
	Amount        *int64  `json:"amount"`
	Category      *string `json:"category"`
}

func toJSON(p model.Payment) paymentJSON {
	date := p.Date.Format(dateFormat)
	payee := p.Payee
	friendly := p.PayeeFriendly
	reference := p.Reference
	amount := p.Amount
	return paymentJSON{
		Date:          &date,
		Payee:         &payee,
		PayeeFriendly: &friendly,
		Reference:     &reference,
		Amount:        &amount,
		Category:      p.Category,
	}
}

func fromJSON(j paymentJSON) (model.Payment, error) {
	switch {
	case j.Date == nil:
		return model.Payment{}, fmt.Errorf("missing required field %q", "date")
	case j.Payee == nil:
		return model.Payment{}, fmt.Errorf("missing required field %q", "payee")
	case j.PayeeFriendly == nil:
		return model.Payment{}, fmt.Errorf("missing required field %q", "payee_friendly")
	case j.Reference == nil:
		return model.Payment{}, fmt.Errorf("missing required field %q", "reference")
	case j.Amount == nil:
		return model.Payment{}, fmt.Errorf("missing required field %q", "amount")
	}

	date, err := time.Parse(dateFormat, *j.Date)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing date %q: %w", *j.Date, err)
	}

	return model.Payment{
		Date:          date,
		Payee:         *j.Payee,
		PayeeFriendly: *j.PayeeFriendly,
		Reference:     *j.Reference,
		Amount:        *j.Amount,
		Category:      j.Category,
	}, nil
}

// Encode renders payments as indented JSON, dates in ISO 8601.
func Encode(payments []model.Payment) ([]byte, error) {
	out := make([]paymentJSON, len(payments))
	for i, p := range payments {
		out[i] = toJSON(p)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// EncodeOne renders a single payment, the shape handed to the manual editor.
func EncodeOne(p model.Payment) ([]byte, error) {
	j := toJSON(p)
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding payment: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot back into payments.
func Decode(data []byte) ([]model.Payment, error) {
	var rows []paymentJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing snapshot JSON: %w", err)
	}

	var payments []model.Payment
	for i, row := range rows {
		p, err := fromJSON(row)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// DecodeOne parses a single edited payment.
func DecodeOne(data []byte) (model.Payment, error) {
	var row paymentJSON
	if err := json.Unmarshal(data, &row); err != nil {
		return model.Payment{}, fmt.Errorf("parsing payment JSON: %w", err)
	}
	return fromJSON(row)
}

// Write persists payments to a new file at path. Paths are timestamp-named,
// so an existing file is never overwritten; colliding with one is an error.
func Write(path string, payments []model.Payment) error {
	data, err := Encode(payments)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot file back into payments.
func Load(path string) ([]model.Payment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	payments, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return payments, nil
}

// FileName returns the timestamp-named file for a bucket, e.g.
// "2024-03-01T17:30:00-approved.json".
func FileName(now time.Time, bucket string) string {
	return now.Format("2006-01-02T15:04:05") + "-" + bucket + ".json"
}
