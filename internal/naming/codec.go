package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxNameLen caps the sanitized display-name portion of a folder token.
const MaxNameLen = 20

// fallbackName is used when nothing of the display name survives sanitization.
const fallbackName = "unknown"

// markStripper decomposes characters and drops combining marks so accented
// letters survive sanitization as their base form.
var markStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// EncodeFolder derives the folder token for an owner and display name. It is
// deterministic and total: any input produces a usable token.
func EncodeFolder(ownerID, displayName string) string {
	return ownerID + "_" + Sanitize(displayName, MaxNameLen)
}

// MatchesOwner reports whether folderToken belongs to ownerID. Matching is by
// prefix, never by fixed offset, because the sanitized name length varies.
func MatchesOwner(folderToken, ownerID string) bool {
	if ownerID == "" {
		return false
	}
	return strings.HasPrefix(folderToken, ownerID+"_")
}

// Sanitize maps a display name onto a filesystem-safe token of at most
// maxLen runes. Path-unsafe characters and whitespace runs become single
// underscores; combining marks are stripped rather than dropped wholesale.
func Sanitize(name string, maxLen int) string {
	name = strings.TrimSpace(name)
	if folded, _, err := transform.String(markStripper, name); err == nil {
		name = folded
	}

	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '-' || r == '.':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			// Covers / \ : * ? " < > |, whitespace, control and symbol runes.
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "_")
	if maxLen > 0 {
		r := []rune(out)
		if len(r) > maxLen {
			out = strings.TrimRight(string(r[:maxLen]), "_")
		}
	}
	if out == "" {
		return fallbackName
	}
	return out
}
