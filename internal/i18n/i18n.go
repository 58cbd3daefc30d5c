// Package i18n localises notification and validation messages with an
// x/text message catalog keyed by core.theme.development.* identifiers.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.SimplifiedChinese}

var (
	matcher = language.NewMatcher(supported)
	builder = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		_ = b.SetString(language.English, key, msg)
	}
	for key, msg := range chinese {
		_ = b.SetString(language.SimplifiedChinese, key, msg)
	}
	return b
}

// Localizer renders catalog messages for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for locale, e.g. "en", "zh" or "zh-CN".
// Unknown or empty locales fall back to English.
func New(locale string) *Localizer {
	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, _ := matcher.Match(parsed)
		tag = supported[idx]
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

// Locale returns the matched language tag.
func (l *Localizer) Locale() string {
	return l.tag.String()
}

// T renders the message for key with args substituted.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Number formats n with locale-specific grouping.
func (l *Localizer) Number(n int64) string {
	return l.printer.Sprintf("%d", n)
}
