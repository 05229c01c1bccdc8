// Package mdast declares the collaborator contract for the block-level
// Markdown AST that drives the section parser. Producing this tree (the
// Markdown lexer/parser) is out of scope for this module; drafter only
// consumes it.
//
// [SimpleNode] is a minimal, dependency-free implementation of [Node]
// good enough to build fixtures in tests; a real Markdown front-end
// would construct its own type satisfying [Node] instead.
package mdast

// NodeType classifies a block-level Markdown node.
type NodeType int

const (
	// DocumentNode is the root of a Markdown document.
	DocumentNode NodeType = iota
	// HeaderNode is an ATX or Setext header (# .. ######).
	HeaderNode
	// ParagraphNode is a run of text not otherwise classified.
	ParagraphNode
	// ListItemNode is a single item of a bulleted or numbered list.
	ListItemNode
	// ListBlockNode groups sibling ListItemNode children.
	ListBlockNode
	// CodeNode is a fenced or indented code block.
	CodeNode
	// QuoteNode is a blockquote.
	QuoteNode
	// HRuleNode is a horizontal rule (`---`, `***`, ...).
	HRuleNode
)

// String returns a human-readable name for t, used in warning messages.
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case HeaderNode:
		return "Header"
	case ParagraphNode:
		return "Paragraph"
	case ListItemNode:
		return "ListItem"
	case ListBlockNode:
		return "ListBlock"
	case CodeNode:
		return "Code"
	case QuoteNode:
		return "Quote"
	case HRuleNode:
		return "HRule"
	}

	return "Undefined"
}

// Range is a half-open byte span [Offset, Offset+Length) in the original
// source document.
type Range struct {
	Offset int
	Length int
}

// Node is one block-level element of a Markdown document, as produced by
// an external Markdown lexer/parser. Implementations are expected to be
// immutable once built.
type Node interface {
	// Type returns the structural kind of this node.
	Type() NodeType
	// Text returns the node's own raw text, excluding any text that
	// belongs to its Children. For a Header this is the header line's
	// content; for a ListItem it is empty (content lives in children).
	Text() []byte
	// Level returns the header level (1-6) for a HeaderNode, or 0 for
	// any other node type.
	Level() int
	// Children returns the node's nested block children, in document
	// order.
	Children() []Node
	// SourceMap returns the byte ranges in the original document this
	// node covers. A node built by concatenating disjoint spans (e.g. a
	// list item continued after an interrupting code fence) may report
	// more than one range.
	SourceMap() []Range
}

// SimpleNode is a minimal, struct-literal-friendly [Node] implementation
// for building test fixtures and for front-ends that produce an already
// flat, fully-materialized tree.
type SimpleNode struct {
	NodeType     NodeType
	NodeText     []byte
	NodeLevel    int
	NodeChildren []Node
	NodeRanges   []Range
}

// Type implements [Node].
func (n *SimpleNode) Type() NodeType { return n.NodeType }

// Text implements [Node].
func (n *SimpleNode) Text() []byte { return n.NodeText }

// Level implements [Node].
func (n *SimpleNode) Level() int { return n.NodeLevel }

// Children implements [Node].
func (n *SimpleNode) Children() []Node { return n.NodeChildren }

// SourceMap implements [Node].
func (n *SimpleNode) SourceMap() []Range { return n.NodeRanges }
