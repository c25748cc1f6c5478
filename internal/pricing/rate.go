// Package pricing turns human-authored rate strings such as
// "₹1000 per 1000" or "₹100 per 1K" into computed order totals.
package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Primary form: "<symbol><rate> per <unit>[K|k]". The currency symbol is
	// ignored; thousands separators inside numbers are tolerated.
	ratePattern = regexp.MustCompile(`(?i)([0-9][0-9,]*(?:\.[0-9]+)?)\s*per\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*([kK]?)`)

	// Fallback: any numeric tokens, taken positionally as rate then unit.
	numberPattern = regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?)\s*([kK]?)`)
)

// ParseRate extracts the rate and per-unit quantity from a rate spec string.
// ok is false when the string yields fewer than two numbers or a zero unit;
// callers that need strictness should treat that as a data error upstream.
func ParseRate(spec string) (rate, perUnit float64, ok bool) {
	if m := ratePattern.FindStringSubmatch(spec); m != nil {
		rate = parseNumber(m[1])
		perUnit = parseNumber(m[2])
		if m[3] != "" {
			perUnit *= 1000
		}
		return rate, perUnit, perUnit != 0
	}

	m := numberPattern.FindAllStringSubmatch(spec, 2)
	if len(m) < 2 {
		return 0, 0, false
	}
	rate = parseNumber(m[0][1])
	perUnit = parseNumber(m[1][1])
	if m[1][2] != "" {
		perUnit *= 1000
	}
	return rate, perUnit, perUnit != 0
}

// ComputeAmount returns the total for quantity under the given rate spec,
// rounded to two decimals. Unparsable specs yield 0 rather than an error;
// use ComputeAmountChecked when a silent zero must be surfaced.
func ComputeAmount(spec string, quantity int) float64 {
	amount, _ := ComputeAmountChecked(spec, quantity)
	return amount
}

// ComputeAmountChecked is ComputeAmount plus a flag telling whether the rate
// string actually parsed.
func ComputeAmountChecked(spec string, quantity int) (float64, bool) {
	rate, perUnit, ok := ParseRate(spec)
	if !ok {
		return 0, false
	}
	total := rate / perUnit * float64(quantity)
	return math.Round(total*100) / 100, true
}

func parseNumber(s string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return n
}
