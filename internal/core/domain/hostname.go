package domain

import (
	"net"
	"net/url"
	"strings"
)

// compoundSecondLevel lists second-level labels that are registered under a
// country code, as in example.co.uk or example.com.au.
var compoundSecondLevel = map[string]bool{
	"co":  true,
	"com": true,
	"org": true,
	"net": true,
	"gov": true,
	"edu": true,
	"ac":  true,
}

// Hostname returns the lower-cased host of an absolute URL.
// The boolean is false when the URL cannot be parsed or has no host.
func Hostname(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	return host, true
}

// StripWWW removes a leading "www." label.
func StripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// ExtractMainDomain returns the registrable domain of a URL, e.g.
// "https://sub.example.co.uk/path" yields "example.co.uk" and
// "https://docs.example.com" yields "example.com".
//
// When the input cannot be parsed as an absolute URL it is returned
// unchanged, so callers grouping by domain treat it as its own group.
func ExtractMainDomain(rawURL string) string {
	host, ok := Hostname(rawURL)
	if !ok {
		return rawURL
	}
	if net.ParseIP(host) != nil {
		return host
	}

	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	n := len(labels)
	if n <= 2 {
		return strings.Join(labels, ".")
	}

	tld := labels[n-1]
	second := labels[n-2]
	if len(tld) == 2 && compoundSecondLevel[second] {
		return strings.Join(labels[n-3:], ".")
	}
	return strings.Join(labels[n-2:], ".")
}
