package speech

import "strings"

// NormalizeLanguage lower-cases a language code and strips any region
// subtag, so "en-US" becomes "en". The operation is idempotent.
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	base, _, _ := strings.Cut(code, "-")
	return base
}
