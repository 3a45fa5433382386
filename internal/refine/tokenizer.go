package refine

import (
	"strings"
	"unicode"

	"github.com/usestring/netinv-mcp/internal/normalize"
)

// tokenDelimiters defines characters that separate tokens within a cell.
const tokenDelimiters = "/.:-_@,;()"

// Tokenize splits a cell value into searchable tokens.
// Splits on separators and whitespace, lowercases, drops tokens < 2 chars.
// A cell that reduces to a canonical MAC also contributes that canonical
// form (lowercased) so separator-formatted identifiers match as one token.
func Tokenize(s string) []string {
	lower := strings.ToLower(s)

	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	result := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		if len(t) >= 2 {
			result = append(result, t)
		}
	}

	if mac, ok := normalize.CanonicalMAC(s); ok {
		result = append(result, strings.ToLower(mac))
	}

	return result
}
