// Package signature implements the Markdown Signature sub-grammar (spec
// §4.1): the structured parse of a section's first line into an
// identifier, a value or comma-separated values, parenthesized
// attributes (one of which may resolve to a type specification), and
// whatever text remains.
package signature

import (
	"strings"

	"github.com/SMillerDev/drafter/internal/diagnostic"
)

// Trait is a bitmask of grammar productions a section processor opts
// into. A processor declares exactly the traits its section type's
// first line can carry; traits it does not declare are never parsed out
// of the line (e.g. a processor without [Value] leaves everything after
// the identifier's colon in RemainingContent).
type Trait int

const (
	Identifier Trait = 1 << iota
	Value
	Values
	Attributes
	Content
)

// Has reports whether t declares trait want.
func (t Trait) Has(want Trait) bool { return t&want != 0 }

// TypeSpecification is the parsed form of a signature's attribute list
// first token, when it names a registered type: a base name plus,
// for container types, the nested type names inside `[...]`
// (`Array[string]`, `Enum[Foo, Bar]`).
type TypeSpecification struct {
	Name        string
	NestedNames []string
}

// Empty reports whether ts carries no type name.
func (ts TypeSpecification) Empty() bool { return ts.Name == "" }

// Signature is the structured result of parsing a section's first line.
type Signature struct {
	Identifier       string
	Values           []string
	TypeSpec         TypeSpecification
	Attributes       []string
	Value            string
	RemainingContent string
}

// DefaultTypeNames is the registry of MSON base type names a signature's
// first attribute token is checked against to populate [TypeSpecification].
var DefaultTypeNames = map[string]bool{
	"boolean": true,
	"string":  true,
	"number":  true,
	"array":   true,
	"enum":    true,
	"object":  true,
}

// Parse parses line (already isolated to a section's first line) per the
// traits the caller's processor declared, using typeNames to recognize a
// type specification in the attribute list. typeNames may be nil, which
// is equivalent to [DefaultTypeNames].
func Parse(line string, traits Trait, typeNames map[string]bool) (Signature, []diagnostic.Warning) {
	if typeNames == nil {
		typeNames = DefaultTypeNames
	}

	var warnings []diagnostic.Warning

	sig := Signature{}

	rest := strings.TrimLeft(line, " \t")

	if traits.Has(Identifier) {
		rest = parseIdentifier(rest, &sig)
	}

	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]

		switch {
		case traits.Has(Values):
			var w []diagnostic.Warning
			rest, w = parseValues(rest, &sig)
			warnings = append(warnings, w...)
		case traits.Has(Value):
			var w []diagnostic.Warning
			rest, w = parseSingleValue(rest, &sig)
			warnings = append(warnings, w...)
		}
	}

	rest = strings.TrimLeft(rest, " \t")

	if traits.Has(Attributes) && strings.HasPrefix(rest, "(") {
		var w []diagnostic.Warning
		rest, w = parseAttributes(rest, &sig, typeNames)
		warnings = append(warnings, w...)
	}

	sig.RemainingContent = strings.TrimLeft(rest, " \t")

	return sig, warnings
}

// parseIdentifier consumes an unescaped run of characters up to the
// first unescaped ':' or '(' (or end of line) as sig.Identifier, and
// returns what follows it (the terminator is left in place so the
// caller can detect which production follows).
func parseIdentifier(s string, sig *Signature) string {
	var b strings.Builder

	i := 0
	for i < len(s) {
		c := s[i]

		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i += 2

			continue
		}

		if c == ':' || c == '(' {
			break
		}

		b.WriteByte(c)
		i++
	}

	sig.Identifier = strings.TrimRight(b.String(), " \t")

	return s[i:]
}

// parseSingleValue consumes one value, honoring a backtick-quoted span
// so it may contain ':' or '(' without terminating early. An unterminated
// backtick quote yields a FormattingWarning.
func parseSingleValue(s string, sig *Signature) (string, []diagnostic.Warning) {
	var warnings []diagnostic.Warning

	s = strings.TrimLeft(s, " \t")

	val, rest, unterminated := readToken(s)
	if unterminated {
		warnings = append(warnings, diagnostic.Warning{
			Code:    diagnostic.FormattingWarning,
			Message: "unterminated backtick-quoted value in signature, took remainder verbatim",
		})
	}

	sig.Value = val

	return rest, warnings
}

// parseValues consumes a comma-separated list of (optionally
// backtick-quoted) values, up to the first unescaped '(' or end of line.
func parseValues(s string, sig *Signature) (string, []diagnostic.Warning) {
	var warnings []diagnostic.Warning

	s = strings.TrimLeft(s, " \t")

	for {
		val, rest, unterminated := readToken(s)
		if unterminated {
			warnings = append(warnings, diagnostic.Warning{
				Code:    diagnostic.FormattingWarning,
				Message: "unterminated backtick-quoted value in signature, took remainder verbatim",
			})
		}

		sig.Values = append(sig.Values, val)
		s = strings.TrimLeft(rest, " \t")

		if strings.HasPrefix(s, ",") {
			s = strings.TrimLeft(s[1:], " \t")

			continue
		}

		break
	}

	return s, warnings
}

// readToken reads one value token from s: either a backtick-quoted span
// (with '\`' and '\\' escapes, ended by the next unescaped backtick) or a
// bare run up to the next unescaped ',' or '(' or end of line. It
// returns the token, the remainder of s after the token, and whether a
// backtick quote was left unterminated.
func readToken(s string) (token, rest string, unterminated bool) {
	if strings.HasPrefix(s, "`") {
		var b strings.Builder

		i := 1
		for i < len(s) {
			c := s[i]

			if c == '\\' && i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2

				continue
			}

			if c == '`' {
				return b.String(), s[i+1:], false
			}

			b.WriteByte(c)
			i++
		}

		// Unterminated backtick: take the remainder verbatim.
		return b.String(), "", true
	}

	var b strings.Builder

	i := 0
	for i < len(s) {
		c := s[i]

		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i += 2

			continue
		}

		if c == ',' || c == '(' {
			break
		}

		b.WriteByte(c)
		i++
	}

	return strings.TrimRight(b.String(), " \t"), s[i:], false
}

// parseAttributes parses the parenthesized attribute list: a
// comma-separated sequence of tokens. The first token, if it names a
// registered type, becomes sig.TypeSpec; nested container names inside
// `Name[A, B]` become TypeSpec.NestedNames. Unknown attribute tokens are
// preserved in sig.Attributes verbatim.
func parseAttributes(s string, sig *Signature, typeNames map[string]bool) (string, []diagnostic.Warning) {
	var warnings []diagnostic.Warning

	if !strings.HasPrefix(s, "(") {
		return s, warnings
	}

	s = s[1:]

	closeIdx := strings.IndexByte(s, ')')
	if closeIdx < 0 {
		warnings = append(warnings, diagnostic.Warning{
			Code:    diagnostic.FormattingWarning,
			Message: "unterminated attribute list, took remainder verbatim",
		})
		closeIdx = len(s)
	}

	body := s[:closeIdx]

	var rest string
	if closeIdx < len(s) {
		rest = s[closeIdx+1:]
	}

	tokens := splitAttributeTokens(body)

	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		name, nested := splitNestedType(tok)

		if i == 0 && typeNames[strings.ToLower(name)] {
			sig.TypeSpec = TypeSpecification{Name: name, NestedNames: nested}

			continue
		}

		sig.Attributes = append(sig.Attributes, tok)
	}

	return rest, warnings
}

// splitAttributeTokens splits a parenthesized attribute body on
// top-level commas (commas inside a nested `[...]` do not split).
func splitAttributeTokens(body string) []string {
	var tokens []string

	depth := 0
	start := 0

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, body[start:i])
				start = i + 1
			}
		}
	}

	tokens = append(tokens, body[start:])

	return tokens
}

// splitNestedType splits `Name[A, B]` into ("Name", ["A", "B"]), or
// returns (tok, nil) if tok has no `[...]` suffix.
func splitNestedType(tok string) (string, []string) {
	open := strings.IndexByte(tok, '[')
	if open < 0 || !strings.HasSuffix(tok, "]") {
		return tok, nil
	}

	name := strings.TrimSpace(tok[:open])
	inner := tok[open+1 : len(tok)-1]

	var nested []string

	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			nested = append(nested, part)
		}
	}

	return name, nested
}
