package overlay

import (
	"strings"
	"unicode"
)

// normalizeIdent normalizes an identifier for loose matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, spaces, dots).
func normalizeIdent(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.Join(tokens, "")
	joined = strings.ToLower(joined)

	return joined
}

// sameIdent reports whether two identifiers match after normalization.
// A qualified overlay identifier ("examples.ColorImage") matches on its
// last segment.
func sameIdent(overlayID, goID string) bool {
	if i := strings.LastIndexByte(overlayID, '.'); i >= 0 {
		overlayID = overlayID[i+1:]
	}

	return normalizeIdent(overlayID) == normalizeIdent(goID)
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "ColorImage" -> ["Color", "Image"]
//   - "xAxis" -> ["x", "Axis"]
//   - "RGBData" -> ["RGB", "Data"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// Lowercase to uppercase transition: "colorImage" splits before 'I'.
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// End of acronym: "RGBData" splits before 'D'.
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}
