// Package pricing holds the three price policies of the platform. They look
// related but diverged historically and must stay separate: validation is a
// hard acceptance gate on writes, display is a render-time correction for
// legacy records, and repair is a batch rewrite of stored rows. For example
// display multiplies sub-1000 values while validation rejects them outright.
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

const (
	MinPrice = 500
	MaxPrice = 5000

	// Stored values below this are assumed to be recorded in the wrong
	// scale and multiplied up at display time.
	displayScaleThreshold = 1000
	displayScaleFactor    = 1000
)

// Parse converts a raw price string to a number. Missing or unparseable
// input counts as 0 (free), matching how listings treat bad data.
func Parse(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != v { // reject NaN
		return 0
	}
	return v
}

// Validate is the write-time acceptance gate: zero (free) or a value inside
// [MinPrice, MaxPrice] inclusive. Out-of-band values are rejected, never
// corrected.
func Validate(price float64) error {
	if price == 0 {
		return nil
	}
	if price < MinPrice || price > MaxPrice {
		return errors.Wrapf(domain.ErrInvalidInput,
			"event price must be between %d and %d NPR", MinPrice, MaxPrice)
	}
	return nil
}

// ValidateString parses then validates a submitted price string.
func ValidateString(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(domain.ErrInvalidInput, "price is not a number")
	}
	if err := Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Display applies the render-time heuristic to a stored price: nonzero
// values under 1000 are scaled up, then the result is clamped to the band.
// Zero is free and passes through untouched.
func Display(stored float64) float64 {
	if stored == 0 {
		return 0
	}
	v := stored
	if v > 0 && v < displayScaleThreshold {
		v *= displayScaleFactor
	}
	if v < MinPrice {
		v = MinPrice
	}
	if v > MaxPrice {
		v = MaxPrice
	}
	return v
}

// Repair maps a stored price to its repaired value for the legacy batch
// pass: nonzero values outside the band (nil counts as below) move to the
// nearest bound. The bool reports whether the row needs rewriting, so
// running the pass twice is a no-op the second time.
func Repair(stored *float64) (float64, bool) {
	if stored == nil {
		return MinPrice, true
	}
	v := *stored
	if v == 0 {
		return 0, false
	}
	if v < MinPrice {
		return MinPrice, true
	}
	if v > MaxPrice {
		return MaxPrice, true
	}
	return v, false
}

// FormatNPR renders an amount as Nepali rupees with thousands grouping.
func FormatNPR(amount float64) string {
	whole := int64(amount)
	frac := amount - float64(whole)

	s := strconv.FormatInt(whole, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	if frac > 0 {
		out = fmt.Sprintf("%s.%02d", out, int(frac*100+0.5))
	}
	return "Rs " + out
}

// DisplayLabel is the user-facing string for a stored price: "Free" for
// zero, otherwise the display-normalized amount in rupees.
func DisplayLabel(stored float64) string {
	if stored == 0 {
		return "Free"
	}
	return FormatNPR(Display(stored))
}
