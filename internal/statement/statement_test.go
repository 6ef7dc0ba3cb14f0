package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sift-dev/sift/internal/config"
)

var testColumns = config.ColumnMapping{
	Date:      "Buchungstag",
	Payee:     "Payee",
	Reference: "Verwendungszweck",
	Amount:    "Betrag",
}

const testHeader = "Buchungstag;Payee;Verwendungszweck;Betrag\n"

func TestParse(t *testing.T) {
	csv := testHeader +
		"01.03.2024;NETFLIX.COM;monthly fee;-12,50\n" +
		"29.02.2024;ACME GMBH;salary;2500,00\n"

	imp := NewImporter(testColumns)
	payments, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, payments, 2)

	first := payments[0]
	assert.Equal(t, 2024, first.Date.Year())
	assert.Equal(t, 3, int(first.Date.Month()))
	assert.Equal(t, 1, first.Date.Day())
	assert.Equal(t, "NETFLIX.COM", first.Payee)
	assert.Equal(t, "NETFLIX.COM", first.PayeeFriendly, "friendly name starts as payee")
	assert.Equal(t, "monthly fee", first.Reference)
	assert.Equal(t, int64(1250), first.Amount, "debit inverted to positive cents")
	assert.Nil(t, first.Category)

	assert.Equal(t, int64(-250000), payments[1].Amount, "credit inverted to negative cents")
}

func TestParse_SourceOrderPreserved(t *testing.T) {
	csv := testHeader +
		"03.03.2024;C;;-1,00\n" +
		"02.03.2024;B;;-1,00\n" +
		"01.03.2024;A;;-1,00\n"

	imp := NewImporter(testColumns)
	payments, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, "C", payments[0].Payee)
	assert.Equal(t, "A", payments[2].Payee)
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	csv := "Betrag;Buchungstag;Verwendungszweck;Payee\n" +
		"-5,00;01.03.2024;ref;SHOP\n"

	imp := NewImporter(testColumns)
	payments, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "SHOP", payments[0].Payee)
	assert.Equal(t, int64(500), payments[0].Amount)
}

func TestParse_BadDateFailsWholeImport(t *testing.T) {
	csv := testHeader +
		"01.03.2024;OK;;-1,00\n" +
		"2024-03-01;BAD;;-1,00\n"

	imp := NewImporter(testColumns)
	_, err := imp.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "parsing date")
}

func TestParse_BadAmountFailsWholeImport(t *testing.T) {
	csv := testHeader +
		"01.03.2024;BAD;;twelve\n"

	imp := NewImporter(testColumns)
	_, err := imp.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestParse_MissingColumn(t *testing.T) {
	csv := "Buchungstag;Payee;Betrag\n01.03.2024;X;-1,00\n"

	imp := NewImporter(testColumns)
	_, err := imp.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Verwendungszweck")
}

func TestParse_EmptyInput(t *testing.T) {
	imp := NewImporter(testColumns)
	_, err := imp.Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestParse_HeaderOnly(t *testing.T) {
	imp := NewImporter(testColumns)
	payments, err := imp.Parse(strings.NewReader(testHeader))
	require.NoError(t, err)
	assert.Nil(t, payments)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.csv")
	csv := testHeader + "01.03.2024;SHOP;ref;-9,99\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	imp := NewImporter(testColumns)
	payments, err := imp.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(999), payments[0].Amount)
}

func TestReadFile_NotFound(t *testing.T) {
	imp := NewImporter(testColumns)
	_, err := imp.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
