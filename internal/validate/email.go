package validate

import "strings"

// Email normalizes (lowercase, spaces stripped) and checks the minimal
// contract: an address must contain "@" and ".", with non-empty parts around
// the "@". Returns the normalized address on success.
func Email(raw string) (string, Reason) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return "", BadEmailFormat
	}
	if !strings.Contains(s, ".") {
		return "", BadEmailFormat
	}
	if strings.Count(s, "@") > 1 {
		return "", BadEmailFormat
	}
	return s, ReasonNone
}
