package blueprint

import (
	"regexp"
	"strings"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/mdast"
	"github.com/SMillerDev/drafter/mson"
)

// Options configures a [Parse] call (spec §6).
type Options struct {
	// ExportSourcemap is carried into every processor's section.Data.
	// No source-map side tree is built: the returned Blueprint has no
	// source-map field. Diagnostic ranges are always populated
	// regardless of this flag.
	ExportSourcemap bool
	// RequireBlueprintName, when true, turns a missing Blueprint name
	// into a fatal BusinessError instead of leaving it absent.
	RequireBlueprintName bool
}

var metadataLineRegex = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*:\s*(.*)$`)

// Parse is the module's external entry point (spec §6): it consumes a
// Markdown AST root and produces a [Blueprint] and a [diagnostic.Report].
//
// The Blueprint level has no signature line of its own to drive against
// (it is the root of the tree), so unlike every processor beneath it,
// it is walked directly here rather than through [section.Drive] — the
// same bypass Headers and mson's member lists use for children that
// don't decompose into the classify.SectionType model (see
// blueprint/processor_headers.go, mson/parser.go).
func Parse(root mdast.Node, opts Options) (*Blueprint, diagnostic.Report) {
	bp := &Blueprint{Symbols: NewSymbolTable()}

	var rpt diagnostic.Report

	pd := &section.Data{Source: sourceBytes(root), Depth: 0, ExportSourcemap: opts.ExportSourcemap}

	cur := section.Cursor{Nodes: root.Children()}

	cur = consumeMetadata(cur, bp)
	cur = consumeBlueprintName(cur, bp)

	if opts.RequireBlueprintName && bp.Name == "" {
		rpt.Fail(diagnostic.BusinessError, "blueprint has no name", nil)
	}

	var descParts []string

	for !cur.Done() {
		ctx := classify.Context{Parent: classify.BlueprintSection, Depth: 0}
		typ := classify.Classify(cur.Node(), ctx)

		if typ != classify.Undefined {
			break
		}

		descParts = append(descParts, string(cur.Node().Text()))
		cur = cur.Advance(1)
	}

	bp.Description = strings.Join(descParts, "\n")

	for !cur.Done() {
		node := cur.Node()
		ctx := classify.Context{Parent: classify.BlueprintSection, Depth: 0}
		typ := classify.Classify(node, ctx)

		switch typ {
		case classify.ResourceGroupSection:
			next, group, groupReport, ok := section.Drive(cur, pd, resourceGroupProcessor{})
			rpt.Merge(groupReport)

			if ok {
				bp.ResourceGroups = append(bp.ResourceGroups, group)
				cur = next

				continue
			}

		case classify.ResourceSection:
			next, resource, resourceReport, ok := section.Drive(cur, pd, resourceProcessor{})
			rpt.Merge(resourceReport)

			if ok {
				appendImplicitResource(bp, resource)
				cur = next

				continue
			}

		case classify.DataStructuresSection:
			cur = consumeDataStructures(cur, pd, bp, &rpt)

			continue

		case classify.TerminatorSection:
			// An HRule at the document root has nothing left to
			// terminate; skip it.

		default:
			rpt.Warn(diagnostic.IgnoringWarning, "ignoring unrecognized top-level node", diagnostic.RangesOf(node, pd.Source))
		}

		cur = cur.Advance(1)
	}

	resolveReport := resolveModelReferences(bp)
	rpt.Merge(resolveReport)

	return bp, rpt
}

func sourceBytes(root mdast.Node) []byte {
	var b strings.Builder

	var walk func(mdast.Node)

	walk = func(n mdast.Node) {
		b.Write(n.Text())

		for _, c := range n.Children() {
			walk(c)
		}
	}

	walk(root)

	return []byte(b.String())
}

func consumeMetadata(cur section.Cursor, bp *Blueprint) section.Cursor {
	if cur.Done() || cur.Node().Type() != mdast.ParagraphNode {
		return cur
	}

	lines := strings.Split(string(cur.Node().Text()), "\n")

	allMatch := len(lines) > 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !metadataLineRegex.MatchString(line) {
			allMatch = false

			break
		}
	}

	if !allMatch {
		return cur
	}

	for _, line := range lines {
		m := metadataLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		bp.Metadata = append(bp.Metadata, Metadata{Key: m[1], Value: strings.TrimSpace(m[2])})
	}

	return cur.Advance(1)
}

func consumeBlueprintName(cur section.Cursor, bp *Blueprint) section.Cursor {
	if cur.Done() || cur.Node().Type() != mdast.HeaderNode || cur.Node().Level() != 1 {
		return cur
	}

	ctx := classify.Context{Parent: classify.BlueprintSection, Depth: 0}
	if classify.Classify(cur.Node(), ctx) != classify.BlueprintSection {
		return cur
	}

	bp.Name = strings.TrimSpace(string(cur.Node().Text()))

	return cur.Advance(1)
}

// appendImplicitResource attaches a bare top-level Resource to the
// trailing nameless ResourceGroup, creating one if the last group is
// itself named (spec §4.4: "a Resource appearing at top level implies
// a nameless ResourceGroup").
func appendImplicitResource(bp *Blueprint, resource Resource) {
	if n := len(bp.ResourceGroups); n > 0 && bp.ResourceGroups[n-1].Name == "" {
		bp.ResourceGroups[n-1].Resources = append(bp.ResourceGroups[n-1].Resources, resource)

		return
	}

	bp.ResourceGroups = append(bp.ResourceGroups, ResourceGroup{Resources: []Resource{resource}})
}

func consumeDataStructures(cur section.Cursor, pd *section.Data, bp *Blueprint, rpt *diagnostic.Report) section.Cursor {
	node := cur.Node()

	for _, child := range node.Children() {
		line := firstLineOf(child)

		name := strings.TrimSpace(line)
		if idx := strings.IndexAny(name, "(:"); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}

		childPD := &section.Data{Source: pd.Source, Depth: pd.Depth + 1, ExportSourcemap: pd.ExportSourcemap}

		attrs, attrReport := mson.ParseAttributes(child, childPD, mson.ImplicitBaseType)
		rpt.Merge(attrReport)

		bp.Symbols.Register(name, &Payload{Name: name, Attributes: attrs})
	}

	return cur.Advance(1)
}

// resolveModelReferences performs the post-pass described in spec §4.4:
// every Payload that carried an unresolved `[Name][]` reference has its
// body, schema, headers, and attributes filled from the matching Model.
func resolveModelReferences(bp *Blueprint) diagnostic.Report {
	var rpt diagnostic.Report

	for gi := range bp.ResourceGroups {
		group := &bp.ResourceGroups[gi]

		for ri := range group.Resources {
			resource := &group.Resources[ri]

			if resource.Model != nil && resource.Model.Name != "" {
				bp.Symbols.Register(resource.Model.Name, resource.Model)
			} else if resource.Model != nil {
				bp.Symbols.RegisterResourceModel(resource.Name, resource.Model)
			}
		}
	}

	for gi := range bp.ResourceGroups {
		group := &bp.ResourceGroups[gi]

		for ri := range group.Resources {
			resource := &group.Resources[ri]

			for ai := range resource.Actions {
				action := &resource.Actions[ai]

				for ei := range action.Examples {
					ex := &action.Examples[ei]

					resolvePayloads(ex.Requests, bp.Symbols, &rpt)
					resolvePayloads(ex.Responses, bp.Symbols, &rpt)
				}
			}
		}
	}

	return rpt
}

func resolvePayloads(payloads []Payload, symbols *SymbolTable, rpt *diagnostic.Report) {
	for i := range payloads {
		p := &payloads[i]

		if p.Reference == "" {
			continue
		}

		model, ok := symbols.Lookup(p.Reference)
		if !ok {
			rpt.Fail(diagnostic.SymbolError, "unresolved model reference \""+p.Reference+"\"", nil)

			continue
		}

		p.Resolved = model

		if p.Body == nil {
			p.Body = model.Body
		}

		if p.Schema == nil {
			p.Schema = model.Schema
		}

		if len(p.Headers) == 0 {
			p.Headers = model.Headers
		}

		if p.Attributes == nil {
			p.Attributes = model.Attributes
		}
	}
}
