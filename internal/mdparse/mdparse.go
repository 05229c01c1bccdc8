// Package mdparse is a minimal block-level Markdown reader producing an
// [mdast.Node] tree for the CLI front-end (cmd/drafter). It is
// deliberately not a conforming CommonMark implementation: the section
// parser's Markdown lexer/parser is named out of scope in favor of the
// mdast collaborator interface (see mdast.Node's doc comment), and this
// package exists only so the CLI has a concrete provider of that
// interface to drive, recognizing the handful of block shapes API
// Blueprint documents actually use: ATX headers, bulleted list items
// (with indented continuation as nested children), fenced and
// 4-space-indented code blocks, horizontal rules, and paragraphs.
package mdparse

import (
	"strings"

	"github.com/SMillerDev/drafter/mdast"
)

// Parse reads src into a flat tree of top-level block nodes wrapped in a
// synthetic [mdast.DocumentNode] root.
func Parse(src []byte) mdast.Node {
	lines := splitLines(src)
	nodes, _ := parseBlocks(lines, 0, 0, len(src))

	return &mdast.SimpleNode{NodeType: mdast.DocumentNode, NodeChildren: nodes}
}

type line struct {
	text   string
	offset int
}

func splitLines(src []byte) []line {
	var lines []line

	offset := 0

	for offset <= len(src) {
		idx := indexByte(src[offset:], '\n')
		if idx < 0 {
			if offset < len(src) {
				lines = append(lines, line{text: string(src[offset:]), offset: offset})
			}

			break
		}

		lines = append(lines, line{text: string(src[offset : offset+idx]), offset: offset})
		offset += idx + 1
	}

	return lines
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}

	return -1
}

// parseBlocks consumes lines[start:], at the given indentation floor,
// until it runs out of lines or hits a line indented less than indent
// (signalling the end of the enclosing block), returning the parsed
// nodes and the index just past what was consumed.
func parseBlocks(lines []line, start, indent, docEnd int) ([]mdast.Node, int) {
	var nodes []mdast.Node

	i := start

	for i < len(lines) {
		l := lines[i]
		trimmed := strings.TrimLeft(l.text, " ")
		lineIndent := len(l.text) - len(trimmed)

		if trimmed == "" {
			i++

			continue
		}

		if lineIndent < indent {
			break
		}

		body := l.text[indent:]
		trimmedBody := strings.TrimLeft(body, " ")
		bodyIndent := len(body) - len(trimmedBody)

		switch {
		case isHRule(trimmedBody):
			nodes = append(nodes, &mdast.SimpleNode{
				NodeType:   mdast.HRuleNode,
				NodeRanges: []mdast.Range{{Offset: l.offset, Length: len(l.text)}},
			})
			i++

		case strings.HasPrefix(trimmedBody, "#"):
			level := 0
			for level < len(trimmedBody) && trimmedBody[level] == '#' {
				level++
			}

			text := strings.TrimSpace(trimmedBody[level:])
			nodes = append(nodes, &mdast.SimpleNode{
				NodeType:   mdast.HeaderNode,
				NodeText:   []byte(text),
				NodeLevel:  level,
				NodeRanges: []mdast.Range{{Offset: l.offset, Length: len(l.text)}},
			})
			i++

		case strings.HasPrefix(trimmedBody, "```") || strings.HasPrefix(trimmedBody, "~~~"):
			fence := trimmedBody[:3]
			start := l.offset + len(l.text) + 1
			j := i + 1
			var buf strings.Builder

			for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j].text[minInt(indent, len(lines[j].text)):]), fence) {
				buf.WriteString(lines[j].text)
				buf.WriteByte('\n')
				j++
			}

			end := start + buf.Len()
			nodes = append(nodes, &mdast.SimpleNode{
				NodeType:   mdast.CodeNode,
				NodeText:   []byte(buf.String()),
				NodeRanges: []mdast.Range{{Offset: start, Length: end - start}},
			})
			i = j + 1

		case bodyIndent >= 4:
			start := l.offset + indent
			j := i
			var buf strings.Builder

			for j < len(lines) {
				jBody := lines[j].text[minInt(indent, len(lines[j].text)):]
				jTrimmed := strings.TrimLeft(jBody, " ")
				if strings.TrimSpace(jTrimmed) == "" {
					break
				}

				if len(jBody)-len(jTrimmed) < 4 {
					break
				}

				buf.WriteString(jBody[4:])
				buf.WriteByte('\n')
				j++
			}

			nodes = append(nodes, &mdast.SimpleNode{
				NodeType:   mdast.CodeNode,
				NodeText:   []byte(buf.String()),
				NodeRanges: []mdast.Range{{Offset: start, Length: buf.Len()}},
			})
			i = j

		case isListMarker(trimmedBody):
			marker := listMarkerWidth(trimmedBody)
			itemIndent := indent + bodyIndent + marker

			firstText := strings.TrimRight(trimmedBody[marker:], " \t")
			startOffset := l.offset

			children, next := parseBlocks(lines, i+1, itemIndent, docEnd)

			var itemChildren []mdast.Node
			if firstText != "" {
				itemChildren = append(itemChildren, &mdast.SimpleNode{
					NodeType:   mdast.ParagraphNode,
					NodeText:   []byte(firstText),
					NodeRanges: []mdast.Range{{Offset: l.offset, Length: len(l.text)}},
				})
			}

			itemChildren = append(itemChildren, children...)

			endOffset := startOffset + len(l.text)
			if len(children) > 0 {
				endOffset = docEnd
			}

			nodes = append(nodes, &mdast.SimpleNode{
				NodeType:     mdast.ListItemNode,
				NodeChildren: itemChildren,
				NodeRanges:   []mdast.Range{{Offset: startOffset, Length: endOffset - startOffset}},
			})
			i = next

		default:
			start := l.offset
			j := i
			var buf strings.Builder

			for j < len(lines) {
				lj := lines[j]
				tj := strings.TrimLeft(lj.text, " ")

				if strings.TrimSpace(tj) == "" || len(lj.text)-len(tj) < indent {
					break
				}

				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}

				buf.WriteString(lj.text[indent:])
				j++
			}

			nodes = append(nodes, &mdast.SimpleNode{
				NodeType:   mdast.ParagraphNode,
				NodeText:   []byte(buf.String()),
				NodeRanges: []mdast.Range{{Offset: start, Length: l.offset + len(l.text) - start}},
			})
			i = j
		}
	}

	return nodes, i
}

func isHRule(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return false
	}

	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}

	for _, r := range s {
		if byte(r) != c && r != ' ' {
			return false
		}
	}

	return true
}

func isListMarker(s string) bool {
	return strings.HasPrefix(s, "+ ") || strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") ||
		s == "+" || s == "-" || s == "*"
}

func listMarkerWidth(s string) int {
	if len(s) >= 2 {
		return 2
	}

	return 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
