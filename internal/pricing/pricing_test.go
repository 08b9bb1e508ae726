package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	cases := []struct {
		raw string
		ok  bool
	}{
		{"0", true},
		{"", true},
		{"500", true},
		{"5000", true},
		{"1500", true},
		{"499", false},
		{"5001", false},
		{"85", false},
		{"-100", false},
		{"abc", false},
	}
	for _, tc := range cases {
		_, err := ValidateString(tc.raw)
		if tc.ok {
			assert.NoError(t, err, "price %q should be accepted", tc.raw)
		} else {
			assert.Error(t, err, "price %q should be rejected", tc.raw)
		}
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		stored float64
		want   float64
	}{
		{0, 0},       // free, never scaled or clamped
		{85, 5000},   // 85*1000 = 85000, clamped down
		{299, 5000},  // 299*1000 = 299000, clamped down
		{1500, 1500}, // already >= 1000 and in band
		{500, 5000},  // 500*1000 = 500000, clamped down
		{1000, 1000},
		{5000, 5000},
		{9000, 5000}, // above band, clamp only
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Display(tc.stored), "Display(%v)", tc.stored)
	}
}

func TestRepairMovesToNearestBound(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	cases := []struct {
		stored  *float64
		want    float64
		changed bool
	}{
		{nil, 500, true},
		{f(0), 0, false},
		{f(100), 500, true},
		{f(499), 500, true},
		{f(500), 500, false},
		{f(3000), 3000, false},
		{f(5000), 5000, false},
		{f(5001), 5000, true},
		{f(99999), 5000, true},
	}
	for _, tc := range cases {
		got, changed := Repair(tc.stored)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.changed, changed)
	}
}

func TestRepairIdempotent(t *testing.T) {
	inputs := []*float64{nil}
	for _, v := range []float64{0, 85, 499, 500, 1234, 5000, 80000} {
		v := v
		inputs = append(inputs, &v)
	}
	for _, in := range inputs {
		once, _ := Repair(in)
		twice, changed := Repair(&once)
		assert.Equal(t, once, twice)
		assert.False(t, changed, "second pass over %v must change nothing", once)
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, 0.0, Parse(""))
	assert.Equal(t, 0.0, Parse("not-a-price"))
	assert.Equal(t, 1500.0, Parse("1500"))
	assert.Equal(t, 749.5, Parse(" 749.5 "))
}

func TestFormatNPR(t *testing.T) {
	assert.Equal(t, "Rs 1,500", FormatNPR(1500))
	assert.Equal(t, "Rs 250", FormatNPR(250))
	assert.Equal(t, "Rs 1,234,567", FormatNPR(1234567))
	assert.Equal(t, "Rs 2,200", FormatNPR(2200))
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Free", DisplayLabel(0))
	assert.Equal(t, "Rs 1,500", DisplayLabel(1500))
	assert.Equal(t, "Rs 5,000", DisplayLabel(299))
}
