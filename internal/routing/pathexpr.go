package routing

import "strings"

// PathExpression is the parsed, reverse-lookup form of a route pattern.
// It is derived deterministically from the pattern and never mutated
// afterwards.
type PathExpression struct {
	// Expression is the pattern with every placeholder rewritten to its
	// canonical {name} token, literal segments kept verbatim
	Expression string

	// StaticPrefix is the longest literal leading portion of the pattern,
	// normalized to start with "/" and carry no trailing "/"
	StaticPrefix string

	// ParamNames are the placeholder names in declaration order
	ParamNames []string
}

// BuildPathExpression parses a route pattern into its PathExpression.
//
// The pattern is split into alternating literal and placeholder segments.
// Placeholders use brace syntax and may carry a regexp constraint
// ({id:[0-9]+}); the constraint is dropped from the canonical token since
// reverse routing only substitutes values, it never validates them.
func BuildPathExpression(pattern string) *PathExpression {
	var (
		expression   strings.Builder
		paramNames   []string
		staticPrefix string
		sawParam     bool
	)

	rest := pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if !sawParam {
				staticPrefix += rest
			}
			expression.WriteString(rest)
			break
		}

		literal := rest[:open]
		expression.WriteString(literal)
		if !sawParam {
			staticPrefix += literal
			sawParam = true
		}

		close := braceEnd(rest, open)
		if close < 0 {
			// Unterminated placeholder, keep the remainder literally.
			expression.WriteString(rest[open:])
			break
		}

		name := paramName(rest[open+1 : close])
		paramNames = append(paramNames, name)
		expression.WriteString("{")
		expression.WriteString(name)
		expression.WriteString("}")

		rest = rest[close+1:]
	}

	return &PathExpression{
		Expression:   expression.String(),
		StaticPrefix: normalizePrefix(staticPrefix),
		ParamNames:   paramNames,
	}
}

// StaticPrefix extracts the literal leading portion of a pattern. Route
// and the URL manager both key into the path index through this function,
// so the two always agree on bucket names.
func StaticPrefix(pattern string) string {
	if open := strings.IndexByte(pattern, '{'); open >= 0 {
		pattern = pattern[:open]
	}
	return normalizePrefix(pattern)
}

// braceEnd finds the index of the brace closing the placeholder opened at
// open, skipping braces nested inside a regexp constraint like {id:[0-9]{4}}
func braceEnd(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// paramName strips an optional regexp constraint from a placeholder body
func paramName(body string) string {
	if colon := strings.IndexByte(body, ':'); colon >= 0 {
		return body[:colon]
	}
	return body
}

// normalizePrefix forces a leading "/" and strips the trailing "/". The
// prefix is only an index key, so the exact shape matters less than every
// caller producing the same one.
func normalizePrefix(prefix string) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	for len(prefix) > 1 && strings.HasSuffix(prefix, "/") {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix
}
