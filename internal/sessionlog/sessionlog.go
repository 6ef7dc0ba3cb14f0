// Package sessionlog keeps a CSV record of every classify and push run.
package sessionlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in sessions.csv.
type Entry struct {
	Timestamp  time.Time
	Action     string // "classify" or "push"
	Source     string // statement or snapshot path
	Approved   int
	SecondLook int
	Ignored    int
	Submitted  int
	Failed     int
}

// Header is the CSV header for sessions.csv.
const Header = "timestamp,action,source,approved,second_look,ignored,submitted,failed"

// LogFile is the session log path relative to the workspace root.
const LogFile = "sessions.csv"

const (
	numFields     = 8
	colTimestamp  = 0
	colAction     = 1
	colSource     = 2
	colApproved   = 3
	colSecondLook = 4
	colIgnored    = 5
	colSubmitted  = 6
	colFailed     = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colSource] = e.Source
	row[colApproved] = strconv.Itoa(e.Approved)
	row[colSecondLook] = strconv.Itoa(e.SecondLook)
	row[colIgnored] = strconv.Itoa(e.Ignored)
	row[colSubmitted] = strconv.Itoa(e.Submitted)
	row[colFailed] = strconv.Itoa(e.Failed)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 0, 5)
	for _, col := range []int{colApproved, colSecondLook, colIgnored, colSubmitted, colFailed} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts = append(counts, n)
	}

	return Entry{
		Timestamp:  ts,
		Action:     record[colAction],
		Source:     record[colSource],
		Approved:   counts[0],
		SecondLook: counts[1],
		Ignored:    counts[2],
		Submitted:  counts[3],
		Failed:     counts[4],
	}, nil
}

// Append writes an entry to <dir>/sessions.csv, creating the file and header
// if needed.
func Append(dir string, e Entry) error {
	path := filepath.Join(dir, LogFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return cw.Error()
}

// Read returns all entries from <dir>/sessions.csv. Returns nil if the file
// does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, LogFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading session log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
