// Package section implements the generic section driver (spec §4.3):
// the sequence signature -> description -> nested dispatch -> finalize.
// Package blueprint's ResourceGroup, Resource, Action, Parameters and
// Parameter processors are built on it; the Blueprint root, Headers,
// Payload (Request/Response/Model), Asset and Data Structures sections,
// and all of package mson, are parsed directly without it.
//
// Per spec §9's design note, this replaces C++ template specialization
// over a SectionProcessor trait with a discriminated-union match over a
// per-section-type [Processor] value, generalized with a Go type
// parameter instead of dynamic inheritance. Grounded on the teacher's
// Annotator/Generator.walkNode dispatch (magicschema/generator.go,
// magicschema/annotation.go): there, a slice of Annotator values is run
// against every node and merged by priority; here, a single matched
// Processor is run against one node's whole subtree and returns the
// result plus a diagnostic.Report.
package section

import (
	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
)

// Cursor is an explicit position into a pre-collected flat sibling list,
// per spec §9's note to model iteration as an index rather than keeping
// raw pointers into a tree that may be walked more than once.
type Cursor struct {
	Nodes []mdast.Node
	Index int
}

// Done reports whether the cursor has been advanced past the end of its
// sibling list.
func (c Cursor) Done() bool { return c.Index >= len(c.Nodes) }

// Node returns the node currently under the cursor. Callers must check
// Done first.
func (c Cursor) Node() mdast.Node { return c.Nodes[c.Index] }

// Advance returns a cursor moved forward by n nodes.
func (c Cursor) Advance(n int) Cursor { return Cursor{Nodes: c.Nodes, Index: c.Index + n} }

// Data is the ambient parse-wide state every processor phase can read
// and, where documented, mutate: the original source (for source-map
// translation), the current classification depth, and the caller's
// [Options] equivalent flags a processor may need (e.g. whether to
// populate source maps at all).
type Data struct {
	Source          []byte
	Depth           int
	ExportSourcemap bool
}

// Processor is the per-section-type record a concrete section (spec
// §4.4-§4.8) implements. T is that section's product type (e.g.
// blueprint.Resource).
type Processor[T any] interface {
	// SectionType identifies this processor's own section kind, passed
	// as Context.Parent to classify.Classify when dispatching this
	// processor's children (e.g. so a bare list item is recognized as
	// a Parameter only inside a Parameters section).
	SectionType() classify.SectionType

	// SignatureTraits declares which productions of the signature
	// grammar (spec §4.1) this section's first line may carry.
	SignatureTraits() signature.Trait

	// ParseSignature consumes sig into out. Returning false vetoes this
	// node: the driver treats the section as not belonging to this
	// processor and returns the cursor unadvanced.
	ParseSignature(node mdast.Node, pd *Data, sig signature.Signature, out *T, rpt *diagnostic.Report) bool

	// AcceptsDescription reports whether, after the signature, a run of
	// Undefined-classified nodes should accumulate into out's
	// description.
	AcceptsDescription() bool

	// NestedSectionTypes lists the SectionTypes this processor
	// recognizes as children. An Undefined node yields an IgnoringWarning
	// from the driver and is skipped; a node of any other SectionType
	// outside this set ends the nested phase, and Drive returns the
	// cursor at that node for the caller to classify.
	NestedSectionTypes() []classify.SectionType

	// ProcessNested handles one classified nested node (and whatever
	// subtree it owns); it returns the cursor advanced past what it
	// consumed. This is the iterator-returning contract spec §9's first
	// Open Question resolves in favor of (see SPEC_FULL.md §12.1).
	ProcessNested(cur Cursor, typ classify.SectionType, pd *Data, out *T, rpt *diagnostic.Report) Cursor

	// Finalize runs post-checks (emptiness warnings, cross-field
	// validation, required-subfield checks) after every nested node has
	// been dispatched.
	Finalize(pd *Data, out *T, rpt *diagnostic.Report)
}

// Drive runs proc's four phases against the subtree rooted at
// cur.Node(), per spec §4.3, and returns the cursor advanced past the
// consumed subtree, the populated product, and the accumulated report.
// If proc vetoes the signature, ok is false and cur is returned
// unmodified.
func Drive[T any](cur Cursor, pd *Data, proc Processor[T]) (next Cursor, out T, rpt diagnostic.Report, ok bool) {
	if cur.Done() {
		return cur, out, rpt, false
	}

	node := cur.Node()

	line := firstLine(node)
	sig, sigWarnings := signature.Parse(line, proc.SignatureTraits(), nil)
	rpt.Warnings = append(rpt.Warnings, sigWarnings...)

	if !proc.ParseSignature(node, pd, sig, &out, &rpt) {
		return cur, out, diagnostic.Report{}, false
	}

	next = cur.Advance(1)

	// Description: accumulate raw Markdown text from the signature's
	// remaining content plus any run of Undefined-classified siblings,
	// preserving blank-line structure (the driver appends text exactly
	// as provided by node children; it never reflows it). A processor
	// that declares AcceptsDescription() false (e.g. parametersProcessor)
	// skips this block entirely.
	if proc.AcceptsDescription() {
		var descParts []string
		if sig.RemainingContent != "" {
			descParts = append(descParts, sig.RemainingContent)
		}

		childDepth := pd.Depth + 1

		for !next.Done() {
			ctx := classify.Context{Parent: proc.SectionType(), Depth: childDepth}
			typ := classify.Classify(next.Node(), ctx)

			if typ != classify.Undefined {
				break
			}

			descParts = append(descParts, string(next.Node().Text()))
			next = next.Advance(1)
		}

		if len(descParts) > 0 {
			setDescription(&out, joinParagraphs(descParts))
		}
	}

	// Nested dispatch.
	nestedDepth := pd.Depth + 1
	accepted := asSet(proc.NestedSectionTypes())
	childPD := &Data{Source: pd.Source, Depth: nestedDepth, ExportSourcemap: pd.ExportSourcemap}

	for !next.Done() {
		ctx := classify.Context{Parent: proc.SectionType(), Depth: nestedDepth}
		typ := classify.Classify(next.Node(), ctx)

		if typ == classify.Undefined {
			rpt.Warn(diagnostic.IgnoringWarning, "ignoring unrecognized node", rangesOf(next.Node(), pd))
			next = next.Advance(1)

			continue
		}

		if typ == classify.TerminatorSection {
			break
		}

		// A node classified as some other concrete SectionType (not one
		// of ours) belongs to an enclosing or sibling scope — e.g. a
		// second Action header encountered while scanning the first
		// Action's own Request/Response content. Per the teacher's
		// ClassifyBlock state machine (ResourceGroupParser.h's "context
		// == ResourceSection -> UndefinedSection" rule), that is an
		// implicit end of this processor's own scope, not discardable
		// content: return the cursor unconsumed so the caller's own
		// dispatch loop can classify it against its own accepted set.
		if !accepted[typ] {
			break
		}

		next = proc.ProcessNested(next, typ, childPD, &out, &rpt)
	}

	proc.Finalize(pd, &out, &rpt)

	return next, out, rpt, true
}

func asSet(types []classify.SectionType) map[classify.SectionType]bool {
	m := make(map[classify.SectionType]bool, len(types))
	for _, t := range types {
		m[t] = true
	}

	return m
}

func firstLine(node mdast.Node) string {
	text := node.Text()
	if len(text) == 0 && node.Type() == mdast.ListItemNode {
		children := node.Children()
		if len(children) > 0 {
			text = children[0].Text()
		}
	}

	s := string(text)
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}

	return s
}

func joinParagraphs(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}

		out += p
	}

	return out
}

// rangesOf translates a node's source map to character ranges. Warning
// ranges are always populated regardless of Options.ExportSourcemap,
// which only controls the separate product-tree source map (spec §6).
func rangesOf(node mdast.Node, pd *Data) diagnostic.RangeSet {
	return diagnostic.CharacterRanges(node.SourceMap(), pd.Source)
}

// descriptionSetter lets Drive set a description field on an arbitrary
// product type without every T needing to embed a common base type.
type descriptionSetter interface {
	SetDescription(string)
}

func setDescription[T any](out *T, desc string) {
	if ds, ok := any(out).(descriptionSetter); ok {
		ds.SetDescription(desc)
	}
}
