package blueprint

import "github.com/SMillerDev/drafter/mdast"

// ParseAsset extracts the literal content of a Body/Schema/Model asset
// node: the concatenated text of its Code children, or, for a front-end
// that represents an indented block as the list item's own trailing
// text, everything after the first line.
func ParseAsset(node mdast.Node) []byte {
	var out []byte

	found := false

	for _, child := range node.Children() {
		if child.Type() == mdast.CodeNode {
			out = append(out, child.Text()...)
			found = true
		}
	}

	if found {
		return out
	}

	text := node.Text()

	for i, c := range text {
		if c == '\n' {
			return text[i+1:]
		}
	}

	return nil
}
