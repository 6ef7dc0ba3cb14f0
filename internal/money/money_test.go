package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinorUnits_InvertsDebit(t *testing.T) {
	got, err := ParseMinorUnits("-12,50")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), got)
}

func TestParseMinorUnits_InvertsCredit(t *testing.T) {
	got, err := ParseMinorUnits("12,34")
	require.NoError(t, err)
	assert.Equal(t, int64(-1234), got)
}

func TestParseMinorUnits_WholeAmount(t *testing.T) {
	got, err := ParseMinorUnits("-3")
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)
}

func TestParseMinorUnits_Exactness(t *testing.T) {
	// 0.29 is not representable in binary floating point; exact decimal
	// arithmetic must still land on 29 cents.
	got, err := ParseMinorUnits("-0,29")
	require.NoError(t, err)
	assert.Equal(t, int64(29), got)

	got, err = ParseMinorUnits("-4111111111111111,11")
	require.NoError(t, err)
	assert.Equal(t, int64(411111111111111111), got)
}

func TestParseMinorUnits_TrimsWhitespace(t *testing.T) {
	got, err := ParseMinorUnits(" -12,50 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), got)
}

func TestParseMinorUnits_Malformed(t *testing.T) {
	for _, s := range []string{"", "abc", "12,3,4", "--1,00"} {
		_, err := ParseMinorUnits(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFormatMajorUnits(t *testing.T) {
	assert.Equal(t, "12.50", FormatMajorUnits(1250))
	assert.Equal(t, "-12.34", FormatMajorUnits(-1234))
	assert.Equal(t, "0.00", FormatMajorUnits(0))
	assert.Equal(t, "0.05", FormatMajorUnits(5))
}
