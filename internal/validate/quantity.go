package validate

import (
	"strconv"
	"strings"
)

// Quantity parses raw as a positive integer. Non-numeric and non-positive
// inputs fail with distinct reasons so the prompts can name the violated rule.
func Quantity(raw string) (int, Reason) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NotANumber
	}
	if n <= 0 {
		return 0, NotPositive
	}
	return n, ReasonNone
}
