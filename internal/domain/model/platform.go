package model

import "strings"

// platformDomains is the fixed allow-list used to check a submitted link
// against the platform of the selected package. Matching is a
// case-insensitive substring check against the link's host.
var platformDomains = map[string][]string{
	"instagram": {"instagram.com", "instagr.am"},
	"youtube":   {"youtube.com", "youtu.be"},
	"facebook":  {"facebook.com", "fb.com", "fb.watch"},
	"twitter":   {"twitter.com", "x.com"},
	"telegram":  {"t.me", "telegram.me"},
	"tiktok":    {"tiktok.com"},
}

// DomainsFor returns the allowed link domains for a platform identifier,
// or nil when the platform is unknown.
func DomainsFor(platform string) []string {
	return platformDomains[strings.ToLower(strings.TrimSpace(platform))]
}

// KnownPlatform reports whether the platform has a domain allow-list.
func KnownPlatform(platform string) bool {
	return DomainsFor(platform) != nil
}

// Platforms lists the supported platform identifiers.
func Platforms() []string {
	out := make([]string, 0, len(platformDomains))
	for p := range platformDomains {
		out = append(out, p)
	}
	return out
}
