package views

import (
	"strings"
	"unicode"
)

// Slug converts a tag to the URL segment used under /tags/.
// It matches github-slugger: lower-case, keep letters, numbers, marks,
// '-' and '_', turn every space into '-' and drop everything else.
// Non-ASCII letters are kept, so "数据库" stays "数据库".
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
