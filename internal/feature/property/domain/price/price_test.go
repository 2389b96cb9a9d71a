package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"15000", "15000"},
		{"₹15,000/month", "15000"},
		{"  1 200 ", "1200"},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractDigits(tt.in), "input %q", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(15000), ParseAmount("Rs. 15,000"))
	assert.Equal(t, int64(0), ParseAmount("free"))
	assert.Equal(t, int64(0), ParseAmount("99999999999999999999999"), "overflow defaults to zero")
}

func TestCheckAmount(t *testing.T) {
	t.Parallel()

	n, err := CheckAmount("₹15,000")
	assert.NoError(t, err)
	assert.Equal(t, int64(15000), n)

	n, err = CheckAmount("none")
	assert.NoError(t, err)
	assert.Zero(t, n)

	_, err = CheckAmount("99999999999999999999")
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		unit string
		want string
	}{
		{"monthly rent", "15000", UnitMonth, "₹15,000/month"},
		{"daily rate", "1200", UnitDay, "₹1,200/day"},
		{"per bed", "6,500", UnitBed, "₹6,500/bed"},
		{"deposit has no unit", "30000", UnitNone, "₹30,000"},
		{"small amount", "999", UnitMonth, "₹999/month"},
		{"non numeric becomes zero", "ask owner", UnitMonth, "₹0/month"},
		{"blank stays blank", "   ", UnitMonth, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.raw, tt.unit))
		})
	}
}

func TestIsStayType(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStayType("Homestay"))
	assert.True(t, IsStayType("2BHK"))
	assert.True(t, IsStayType("1BHK, 3BHK"))
	assert.False(t, IsStayType("Bungalow"))
	assert.False(t, IsStayType("Flat"))
	assert.False(t, IsStayType("PG"))
	assert.False(t, IsStayType(""))
}

func TestReformat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "₹2,500/day", Reformat("₹2,500/month", "Homestay"))
	assert.Equal(t, "₹8,000/month", Reformat("8000", "Rent House"))
	assert.Equal(t, "₹40,000/day", Reformat("₹40,000/month", "Bungalow"))
	assert.Equal(t, "₹8,000/month", Reformat("₹8,000/month", "PG"), "already canonical is unchanged")
}

func TestAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(12000), Amount("₹12,000/month"))
	assert.Equal(t, int64(1200), Amount("₹1,200/day"))
	assert.Equal(t, int64(0), Amount(""))
}
