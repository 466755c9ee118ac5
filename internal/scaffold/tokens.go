package scaffold

import "regexp"

var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// ApplyTokens replaces every {{TOKEN}} that has a value in tokens.
// Tokens without a value are kept verbatim.
func ApplyTokens(content string, tokens map[string]string) string {
	if len(tokens) == 0 {
		return content
	}
	return tokenPattern.ReplaceAllStringFunc(content, func(m string) string {
		key := m[2 : len(m)-2]
		if v, ok := tokens[key]; ok {
			return v
		}
		return m
	})
}
