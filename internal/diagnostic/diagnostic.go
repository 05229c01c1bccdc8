// Package diagnostic defines the closed enumeration of warning and error
// codes a drafter parse can emit, the source-range set attached to every
// diagnostic, and the [Report] that accumulates them for one parse call.
//
// A [Report] is never itself a Go error: a fatal [Error] is a value
// carried on the report, and callers must check [Report.Err] before
// trusting the product tree it accompanies.
package diagnostic

import "github.com/SMillerDev/drafter/mdast"

// WarningCode is a tag from the closed set of non-fatal diagnostic kinds.
type WarningCode string

// The warning codes named in spec §4.9.
const (
	FormattingWarning      WarningCode = "formatting"
	RedefinitionWarning    WarningCode = "redefinition"
	IgnoringWarning        WarningCode = "ignoring"
	EmptyDefinitionWarning WarningCode = "empty-definition"
	IndentationWarning     WarningCode = "indentation"
	HTTPMethodWarning      WarningCode = "http-method"
	AmbiguityWarning       WarningCode = "ambiguity"
	URIWarning             WarningCode = "uri"
	DeprecatedWarning      WarningCode = "deprecated"
	LogicalErrorWarning    WarningCode = "logical-error"
)

// ErrorCode is a tag from the closed set of fatal diagnostic kinds.
type ErrorCode string

// The error codes named in spec §4.9.
const (
	BusinessError ErrorCode = "business"
	NotFoundError ErrorCode = "not-found"
	ModelError    ErrorCode = "model"
	SymbolError   ErrorCode = "symbol"
	MSONError     ErrorCode = "mson"
)

// Range is a character (not byte) span in the original source document.
// See [CharacterRanges] for the byte-to-character translation.
type Range struct {
	Offset int
	Length int
}

// RangeSet is an ordered set of [Range]s. Every diagnostic carries one;
// it is empty only when no source position was available for the node
// that produced the diagnostic.
type RangeSet []Range

// Warning is a single non-fatal diagnostic.
type Warning struct {
	Code    WarningCode
	Message string
	Ranges  RangeSet
}

// Error is the single fatal diagnostic a [Report] may carry.
type Error struct {
	Code    ErrorCode
	Message string
	Ranges  RangeSet
}

// Report accumulates the diagnostics produced by one Parse call.
//
// Warnings are appended in discovery order, which spec §5 defines as
// depth-first pre-order over the source. Err is set at most once: the
// first processor to fail wins, matching spec §7 ("errors... cause the
// enclosing driver to stop descending... but its parent continues with
// the next sibling") — later independent subtrees may still add
// Warnings, but a document carries only one fatal Error.
type Report struct {
	Err      *Error
	Warnings []Warning
}

// Warn appends a warning to r in discovery order.
func (r *Report) Warn(code WarningCode, message string, ranges RangeSet) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: message, Ranges: ranges})
}

// Fail records a fatal error on r, if one is not already recorded.
// Returns true if this call set the error (the caller's driver should
// stop descending into further siblings of the failing node).
func (r *Report) Fail(code ErrorCode, message string, ranges RangeSet) bool {
	if r.Err != nil {
		return false
	}

	r.Err = &Error{Code: code, Message: message, Ranges: ranges}

	return true
}

// Merge appends other's warnings to r and adopts other's Err if r has
// none yet.
func (r *Report) Merge(other Report) {
	r.Warnings = append(r.Warnings, other.Warnings...)

	if r.Err == nil {
		r.Err = other.Err
	}
}

// RangesOf translates a node's byte-offset source map into character
// ranges against src, scanning UTF-8 boundaries. See [CharacterRanges].
func RangesOf(node mdast.Node, src []byte) RangeSet {
	return CharacterRanges(node.SourceMap(), src)
}

// CharacterRanges translates a set of byte ranges against src into
// character ranges, by counting runes up to each byte offset. Ranges
// with an offset beyond len(src) are dropped rather than panicking.
func CharacterRanges(byteRanges []mdast.Range, src []byte) RangeSet {
	if len(byteRanges) == 0 {
		return nil
	}

	// Each range counts runes from the start of src afresh, with no
	// shared prefix table (ranges are expected to be few, as they come
	// from a single node).
	out := make(RangeSet, 0, len(byteRanges))

	for _, br := range byteRanges {
		if br.Offset < 0 || br.Offset > len(src) {
			continue
		}

		startChars := runeCount(src[:br.Offset])

		end := br.Offset + br.Length
		if end > len(src) {
			end = len(src)
		}

		endChars := startChars + runeCount(src[br.Offset:end])

		out = append(out, Range{Offset: startChars, Length: endChars - startChars})
	}

	return out
}

func runeCount(b []byte) int {
	n := 0

	for i := 0; i < len(b); {
		_, size := decodeRuneLen(b[i:])
		i += size
		n++
	}

	return n
}

// decodeRuneLen returns the byte length of the UTF-8 rune starting at b[0].
// It does not validate encoding beyond the leading-byte length tag, which
// is sufficient for counting runes in well-formed source documents.
func decodeRuneLen(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}

	c := b[0]

	switch {
	case c < 0x80:
		return rune(c), 1
	case c&0xE0 == 0xC0 && len(b) >= 2:
		return 0, 2
	case c&0xF0 == 0xE0 && len(b) >= 3:
		return 0, 3
	case c&0xF8 == 0xF0 && len(b) >= 4:
		return 0, 4
	}

	return 0, 1
}
