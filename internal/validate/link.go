package validate

import (
	"net/url"
	"strings"
)

// Link checks a submitted URL syntactically and against the platform's domain
// allow-list. Matching is a case-insensitive substring check on the host, so
// subdomains like www.instagram.com pass. Returns the trimmed URL on success.
func Link(raw string, allowedDomains []string) (string, Reason) {
	s := strings.TrimSpace(raw)
	u, err := url.Parse(s)
	if err != nil {
		return "", BadURLFormat
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", BadURLFormat
	}
	if u.Host == "" {
		return "", BadURLFormat
	}
	host := strings.ToLower(u.Host)
	for _, d := range allowedDomains {
		if strings.Contains(host, strings.ToLower(d)) {
			return s, ReasonNone
		}
	}
	return "", DomainMismatch
}
