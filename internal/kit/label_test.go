package kit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFieldsLotAndExpiry(t *testing.T) {
	label := ParseFields(strings.Fields("LOT L23089 EXP 04/2027"))

	assert.Equal(t, "L23089", label.Lot)
	assert.Equal(t, 2027, label.Expiry.Year())
	assert.Equal(t, time.April, label.Expiry.Month())
	// Lot L23089 = day 89 of 2023 = 30 March.
	assert.Equal(t, time.Date(2023, 3, 30, 0, 0, 0, 0, time.UTC), label.Produced)
}

func TestParseFieldsExpiryFormats(t *testing.T) {
	tests := []struct {
		code  string
		year  int
		month time.Month
	}{
		{"04/2027", 2027, time.April},
		{"04-2027", 2027, time.April},
		{"4/27", 2027, time.April},
		{"2027-04", 2027, time.April},
		{"12/2030", 2030, time.December},
	}
	for _, tt := range tests {
		label := ParseFields([]string{"EXP", tt.code})
		assert.Equal(t, tt.year, label.Expiry.Year(), tt.code)
		assert.Equal(t, tt.month, label.Expiry.Month(), tt.code)
	}
}

func TestParseFieldsExpiryIsEndOfMonth(t *testing.T) {
	label := ParseFields([]string{"EXP", "04/2027"})

	assert.False(t, label.Expired(time.Date(2027, 4, 30, 12, 0, 0, 0, time.UTC)))
	assert.True(t, label.Expired(time.Date(2027, 5, 1, 0, 0, 1, 0, time.UTC)))
}

func TestParseFieldsRejectsNonsense(t *testing.T) {
	label := ParseFields([]string{"EXP", "13/2027"})
	assert.True(t, label.Expiry.IsZero())

	label = ParseFields([]string{"EXP", "ABC"})
	assert.True(t, label.Expiry.IsZero())

	label = ParseFields(nil)
	assert.True(t, label.Expiry.IsZero())
	assert.Empty(t, label.Lot)
}

func TestParseFieldsUnmarkedTokens(t *testing.T) {
	// No LOT/EXP markers: date-shaped and lot-shaped tokens still bind.
	label := ParseFields(strings.Fields("FRESHWATER 06/2026 L24150"))

	assert.Equal(t, time.June, label.Expiry.Month())
	assert.Equal(t, "L24150", label.Lot)
}

func TestParseFieldsLotOnlyEstimatesExpiry(t *testing.T) {
	label := ParseFields([]string{"LOT", "L24001"})

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), label.Produced)
	assert.Equal(t, label.Produced.Add(DefaultShelfLife), label.Expiry)
	assert.True(t, label.Expired(time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestExpiredZeroExpiry(t *testing.T) {
	assert.False(t, Label{}.Expired(time.Now()))
}

func TestParseFieldsInvalidLotDay(t *testing.T) {
	label := ParseFields([]string{"LOT", "L24999"})

	// The token is kept as the lot string but yields no production date.
	assert.Equal(t, "L24999", label.Lot)
	assert.True(t, label.Produced.IsZero())
}
