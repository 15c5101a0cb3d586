package linkexport

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/idna"
)

// Comparer orders strings. *collate.Collator from golang.org/x/text satisfies it.
type Comparer interface {
	CompareString(a, b string) int
}

// Engine turns the links of one page into a ResultSet.
// An Engine is not safe for concurrent use when its Comparer is not.
type Engine struct {
	// Comparer orders the result. Nil means byte order.
	Comparer Comparer
}

// NewEngine creates an Engine sorting with cmp.
func NewEngine(cmp Comparer) *Engine {
	return &Engine{Comparer: cmp}
}

// Extract resolves every href of snap against its base URI, drops malformed
// and duplicate URLs, applies cfg and returns the survivors sorted.
//
// Malformed hrefs are skipped, never reported. A nil snapshot or a snapshot
// without hrefs yields an empty, non-nil ResultSet.
func (e *Engine) Extract(snap *LinkSnapshot, hostname string, cfg FilterConfig) ResultSet {
	urls := ResultSet{}
	if snap == nil {
		return urls
	}

	base := parseBase(snap.BaseURI)
	hostname = CanonicalHost(hostname)

	seen := make(map[string]struct{}, len(snap.Hrefs))
	for _, href := range snap.Hrefs {
		u, ok := resolveHref(base, href)
		if !ok {
			continue
		}

		s := u.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		if !cfg.Allows(u, hostname) {
			continue
		}
		urls = append(urls, s)
	}

	e.sort(urls)
	return urls
}

// ExtractURLs runs a byte-ordered Engine over hrefs.
func ExtractURLs(hrefs []string, baseURI, hostname string, cfg FilterConfig) ResultSet {
	var e Engine
	return e.Extract(&LinkSnapshot{BaseURI: baseURI, Hrefs: hrefs}, hostname, cfg)
}

// sort orders urls with the Comparer, breaking ties by byte order so that
// distinct strings the collator considers equal keep a stable order.
func (e *Engine) sort(urls []string) {
	slices.SortFunc(urls, func(a, b string) int {
		if e.Comparer != nil {
			if c := e.Comparer.CompareString(a, b); c != 0 {
				return c
			}
		}
		return strings.Compare(a, b)
	})
}

// parseBase returns nil when baseURI cannot serve as a resolution base.
func parseBase(baseURI string) *url.URL {
	base, err := url.Parse(strings.TrimSpace(baseURI))
	if err != nil || !base.IsAbs() || base.Opaque != "" {
		return nil
	}
	return base
}

// resolveHref resolves href against base and normalizes the result.
// Returns false when href is malformed or does not resolve to an absolute URL.
func resolveHref(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}

	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}
	if !u.IsAbs() {
		return nil, false
	}

	if !normalizeURL(u) {
		return nil, false
	}
	return u, true
}

var defaultPorts = map[string]string{
	"ftp":   "21",
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

// normalizeURL rewrites u in place the way a browser serializes it:
// lowercase ASCII host, no default port, "/" for an empty hierarchical path
// and a percent-encoded query.
func normalizeURL(u *url.URL) bool {
	u.Scheme = strings.ToLower(u.Scheme)
	_, special := defaultPorts[u.Scheme]
	u.RawQuery = encodeQuery(u.RawQuery, special)
	if u.Host == "" {
		return true
	}

	name := strings.ToLower(u.Hostname())
	if !isASCII(name) {
		ascii, err := idna.Lookup.ToASCII(name)
		if err != nil {
			return false
		}
		name = ascii
	}
	if strings.Contains(name, ":") {
		name = "[" + name + "]"
	}

	port := u.Port()
	if port == "" || port == defaultPorts[u.Scheme] {
		u.Host = name
	} else {
		u.Host = name + ":" + port
	}

	if special && u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return true
}

// encodeQuery percent-encodes the bytes of a raw query that fall in the
// query percent-encode set. Existing escapes are left alone, so "a b" and
// "a%20b" serialize the same way. Special schemes also encode "'".
func encodeQuery(q string, special bool) string {
	n := 0
	for i := 0; i < len(q); i++ {
		if inQueryEncodeSet(q[i], special) {
			n++
		}
	}
	if n == 0 {
		return q
	}

	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(q) + 2*n)
	for i := 0; i < len(q); i++ {
		c := q[i]
		if inQueryEncodeSet(c, special) {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func inQueryEncodeSet(c byte, special bool) bool {
	switch {
	case c <= 0x20, c >= 0x7F:
		return true
	case c == '"', c == '#', c == '<', c == '>':
		return true
	case c == '\'':
		return special
	}
	return false
}
