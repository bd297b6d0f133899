// Package template substitutes {name} placeholders in URL path templates.
package template

import (
	"regexp"
	"strings"
)

// tokenPattern matches a single brace pair holding an identifier with no
// nested braces.
var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// MissingPathParamError reports a template token with no supplied value.
type MissingPathParamError struct {
	Token string
}

func (e *MissingPathParamError) Error() string {
	return "missing path parameter: " + e.Token
}

// Resolve replaces every {key} token in tmpl with params[key]. Values are
// substituted verbatim, without URL-encoding, so intentional slashes in a
// segment survive. Each occurrence of a token is replaced independently.
// A token with no matching key fails with MissingPathParamError; supplied
// params that match no token are ignored.
func Resolve(tmpl string, params map[string]string) (string, error) {
	var missing *MissingPathParamError

	resolved := tokenPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := strings.TrimSpace(match[1 : len(match)-1])
		if val, ok := params[key]; ok {
			return val
		}
		if missing == nil {
			missing = &MissingPathParamError{Token: key}
		}
		return match
	})

	if missing != nil {
		return "", missing
	}
	return resolved, nil
}

// Tokens returns the distinct token names of a template in order of first
// appearance.
func Tokens(tmpl string) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(tmpl, -1) {
		key := strings.TrimSpace(m[1])
		if !seen[key] {
			seen[key] = true
			tokens = append(tokens, key)
		}
	}
	return tokens
}
