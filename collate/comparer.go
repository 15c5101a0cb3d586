// Package collate provides locale-aware ordering of result sets using
// golang.org/x/text collation.
package collate

import (
	"strings"

	"github.com/fwojciec/linkexport"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ensure Comparer implements linkexport.Comparer at compile time.
var _ linkexport.Comparer = (*Comparer)(nil)

// Comparer orders strings by the collation rules of a locale.
// Comparer is not safe for concurrent use.
type Comparer struct {
	tag      language.Tag
	collator *collate.Collator
}

// NewComparer creates a Comparer for locale. Both BCP 47 tags ("de-DE") and
// POSIX locale names ("de_DE.UTF-8") are accepted. An empty locale, "C" or
// "POSIX" selects the root collation.
//
// Returns EINVALID if the locale cannot be parsed.
func NewComparer(locale string) (*Comparer, error) {
	tag, err := ParseLocale(locale)
	if err != nil {
		return nil, err
	}
	return &Comparer{tag: tag, collator: collate.New(tag)}, nil
}

// CompareString returns -1, 0 or 1 depending on the collation order of a and b.
func (c *Comparer) CompareString(a, b string) int {
	return c.collator.CompareString(a, b)
}

// Locale returns the language tag the Comparer collates for.
func (c *Comparer) Locale() string {
	return c.tag.String()
}

// ParseLocale converts a BCP 47 tag or POSIX locale name to a language tag.
func ParseLocale(locale string) (language.Tag, error) {
	// Strip POSIX codeset and modifier: de_DE.UTF-8@euro -> de_DE
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")

	switch strings.ToUpper(locale) {
	case "", "C", "POSIX":
		return language.Und, nil
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, linkexport.Errorf(linkexport.EINVALID, "invalid locale %q: %v", locale, err)
	}
	return tag, nil
}
