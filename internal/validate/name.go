package validate

import "strings"

// ShortName validates the custom short name used on profiles. Length is
// bounded to keep it display-safe in menus.
func ShortName(raw string) (string, Reason) {
	s := strings.TrimSpace(raw)
	if n := len([]rune(s)); n < 2 || n > 6 {
		return "", NameLength
	}
	return s, ReasonNone
}
