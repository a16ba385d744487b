package views

import (
	"strings"
	"time"
)

const defaultLocale = "en-US"

// Long-month layouts, keyed by locale.
var dateLayouts = map[string]string{
	"en-US": "January 2, 2006",
	"en-GB": "2 January 2006",
	"zh-CN": "2006年1月2日",
	"zh-TW": "2006年1月2日",
	"ja-JP": "2006年1月2日",
}

var languageDefaults = map[string]string{
	"en": "en-US",
	"zh": "zh-CN",
	"ja": "ja-JP",
}

// FormatDate renders an ISO date (2006-01-02 or RFC 3339) as a long-month
// date for locale. Unparseable input is returned unchanged.
func FormatDate(date, locale string) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return t.Format(dateLayout(locale))
}

func dateLayout(locale string) string {
	if layout, ok := dateLayouts[locale]; ok {
		return layout
	}
	lang, _, _ := strings.Cut(locale, "-")
	if full, ok := languageDefaults[strings.ToLower(lang)]; ok {
		return dateLayouts[full]
	}
	return dateLayouts[defaultLocale]
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
