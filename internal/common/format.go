package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders a dollar amount with thousands separators. Whole
// amounts drop the cents: 1200 → "$1,200", 99.5 → "$99.50".
func FormatCurrency(v float64) string {
	neg := v < 0
	v = math.Abs(v)

	whole := math.Floor(v)
	cents := math.Round((v - whole) * 100)
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if cents > 0 {
		b.WriteByte('.')
		c := strconv.Itoa(int(cents))
		if len(c) == 1 {
			b.WriteByte('0')
		}
		b.WriteString(c)
	}
	return b.String()
}

// ParseAmount converts user text such as "$1,200.50" into a non-negative
// amount.
func ParseAmount(text string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: amount is empty", ErrInvalidInput)
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, text)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}
	return amount, nil
}
