package linkexport

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// FilterConfig holds the filtering rules for one extraction request.
// It is built fresh from user input and not modified during extraction.
type FilterConfig struct {
	// ExcludeGoogle drops URLs on Google properties (google.com, google.co.uk, ...).
	ExcludeGoogle bool

	// ExcludeInternal drops URLs whose hostname equals the current page's hostname.
	ExcludeInternal bool

	// OnlySearch keeps only URLs whose query carries a search parameter.
	OnlySearch bool

	// CustomDomains drops URLs on any listed domain or its subdomains.
	// Entries are lowercase, trimmed and ASCII (see ParseDomains).
	CustomDomains []string

	// HTTPOnly drops URLs whose scheme is not http or https
	// (mailto:, javascript:, tel:, ...).
	HTTPOnly bool
}

var (
	googleHostPattern  = regexp.MustCompile(`(?i)(^|\.)google\.(com|co\.[a-z]{2}|ca|com\.[a-z]{2,3}|[a-z]{2,3})$`)
	searchParamPattern = regexp.MustCompile(`(?i)(^|&)(q|query|search|s|k)=`)
)

// Allows reports whether u passes every enabled filter.
// The currentHostname must already be canonical (see CanonicalHost).
func (c FilterConfig) Allows(u *url.URL, currentHostname string) bool {
	host := u.Hostname()

	if c.ExcludeGoogle && IsGoogleHost(host) {
		return false
	}
	if c.ExcludeInternal && host == currentHostname {
		return false
	}
	if c.OnlySearch && !IsSearchQuery(u.RawQuery) {
		return false
	}
	if len(c.CustomDomains) > 0 && MatchesDomain(host, c.CustomDomains) {
		return false
	}
	if c.HTTPOnly && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return true
}

// IsGoogleHost reports whether host is google.<tld> or one of its subdomains,
// where tld is com, ca, a two or three letter code, co.<cc> or com.<cc>.
func IsGoogleHost(host string) bool {
	return googleHostPattern.MatchString(host)
}

// IsSearchQuery reports whether a raw query string has a q, query, search,
// s or k parameter with a value separator. Keys match case-insensitively.
func IsSearchQuery(rawQuery string) bool {
	return searchParamPattern.MatchString(rawQuery)
}

// MatchesDomain reports whether host equals one of domains or is a
// subdomain of one.
func MatchesDomain(host string, domains []string) bool {
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ParseDomains splits comma-separated domain text into canonical entries.
// Entries are trimmed, lowercased and converted to ASCII; empty entries are
// dropped. The result is never nil.
func ParseDomains(raw string) []string {
	domains := []string{}
	for _, part := range strings.Split(raw, ",") {
		domain := strings.ToLower(strings.TrimSpace(part))
		if domain == "" {
			continue
		}
		if ascii, err := idna.Lookup.ToASCII(domain); err == nil {
			domain = ascii
		}
		domains = append(domains, domain)
	}
	return domains
}

// CanonicalHost lowercases a hostname and converts it to its ASCII form,
// the way browsers report location.hostname. Hosts that fail IDNA
// conversion are returned lowercased.
func CanonicalHost(host string) string {
	host = strings.ToLower(host)
	if isASCII(host) {
		return host
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}
	return host
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
