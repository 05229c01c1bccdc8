package blueprint

import (
	"strings"

	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/mdast"
)

// ParseHeaders parses a classified Headers node's body (its code-block
// child, one `Name: Value` line each) into an ordered [Headers], warning
// on duplicate names (case-insensitive, per spec §3).
//
// A Headers body is a run of raw text lines inside a code fence, not a
// sequence of independently classifiable child sections, so unlike
// Parameters it does not fit the section driver's signature/nested-dispatch
// contract; it is parsed directly here, the same way mson's member lists
// bypass [section.Processor] for the same reason (see mson/parser.go).
func ParseHeaders(node mdast.Node, pd *section.Data) (Headers, diagnostic.Report) {
	var rpt diagnostic.Report

	body := bodyText(node)

	var headers Headers

	seen := make(map[string]bool)

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			rpt.Warn(diagnostic.FormattingWarning, "malformed header line, expected \"Name: Value\"", ranges(node, pd))

			continue
		}

		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		key := strings.ToLower(name)
		if seen[key] {
			rpt.Warn(diagnostic.RedefinitionWarning, "header \""+name+"\" is redefined", ranges(node, pd))

			continue
		}

		seen[key] = true
		headers = append(headers, Header{Name: name, Value: value})
	}

	return headers, rpt
}

// bodyText extracts the raw text of a section node's body: the text of
// its first Code child if present, otherwise its own joined children
// text minus the first (signature) child (covers both the "fenced code
// block" and "inline list text" spellings a Markdown front-end may
// produce for the same construct).
func bodyText(node mdast.Node) string {
	children := node.Children()

	for _, child := range children {
		if child.Type() == mdast.CodeNode {
			return string(child.Text())
		}
	}

	var b strings.Builder

	for _, child := range children[minInt(1, len(children)):] {
		b.Write(child.Text())
		b.WriteByte('\n')
	}

	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// ranges translates a node's source map to character ranges against pd's
// source document.
func ranges(node mdast.Node, pd *section.Data) diagnostic.RangeSet {
	return diagnostic.CharacterRanges(node.SourceMap(), pd.Source)
}
