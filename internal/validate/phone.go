package validate

import "strings"

// phoneNormalizer strips the separators people paste along with numbers.
var phoneNormalizer = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// reservedPrefixes are two-digit leading combinations that Indian carriers do
// not assign to subscribers.
var reservedPrefixes = map[string]struct{}{
	"60": {}, "61": {}, "62": {}, "63": {}, "64": {}, "65": {},
	"90": {}, "91": {}, "92": {}, "93": {}, "94": {}, "95": {},
}

// knownTestNumbers are widely circulated placeholder numbers that show up in
// tutorials and spam sign-ups.
var knownTestNumbers = map[string]struct{}{
	"9876543211": {},
	"8888855555": {},
	"7777788888": {},
	"9191919191": {},
}

// Phone validates an Indian mobile number. The number must carry a literal
// +91 country code and a plausible 10-digit subscriber part. Checks run in a
// fixed order and the first violation wins; on success the normalized
// +91XXXXXXXXXX form is returned.
func Phone(raw string) (string, Reason) {
	s := phoneNormalizer.Replace(strings.TrimSpace(raw))

	if !strings.HasPrefix(s, "+91") {
		return "", MissingCountryCode
	}
	if len(s) != 13 {
		return "", WrongLength
	}

	digits := s[3:]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", NotANumber
		}
	}

	if digits[0] <= '5' {
		return "", InvalidStartingDigit
	}
	if allSame(digits) {
		return "", RepeatedPattern
	}
	if digits == "1234567890" || digits == "0123456789" {
		return "", SequentialPattern
	}
	if countZeros(digits) >= 5 {
		return "", TooManyZeros
	}
	if tiledByPattern(digits) {
		return "", RepeatedPattern
	}
	if _, ok := reservedPrefixes[digits[:2]]; ok {
		return "", ReservedRange
	}
	if _, ok := knownTestNumbers[digits]; ok {
		return "", KnownTestNumber
	}
	return s, ReasonNone
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func countZeros(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '0' {
			n++
		}
	}
	return n
}

// tiledByPattern reports whether a sub-pattern of length 1..5 repeats to fill
// the whole 10-digit string, e.g. 9898989898 or 6789567895.
func tiledByPattern(s string) bool {
	for size := 1; size <= 5; size++ {
		if len(s)%size != 0 {
			continue
		}
		pat := s[:size]
		tiled := true
		for i := size; i < len(s); i += size {
			if s[i:i+size] != pat {
				tiled = false
				break
			}
		}
		if tiled {
			return true
		}
	}
	return false
}
