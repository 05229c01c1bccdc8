package mson

import (
	"strings"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
)

// ParseAttributes parses a `+ Attributes` (or `+ Properties`/`+ Items`
// top-level) node's children into a TypeSection tree representing the
// MSON type attached to a Resource, Action, or Payload (spec §4.8).
// baseType becomes the returned root TypeSection's BaseType; nested
// TypeSections parsed beneath it always get ImplicitBaseType.
func ParseAttributes(node mdast.Node, pd *section.Data, baseType BaseType) (*TypeSection, diagnostic.Report) {
	root := &TypeSection{Tag: MemberTypeTag, BaseType: baseType}

	var rpt diagnostic.Report

	// node's own first child is the synthetic paragraph carrying its
	// signature line ("Attributes", "Properties", ...), already consumed
	// by the caller's classification; only the members that follow it
	// belong to cur.
	children := node.Children()
	cur := section.Cursor{Nodes: children, Index: min(1, len(children))}

	for !cur.Done() {
		child := cur.Node()

		ctx := classify.Context{Parent: classify.AttributesSection, Depth: pd.Depth + 1}
		typ := classify.Classify(child, ctx)

		switch typ {
		case classify.MSONPropertyMembersSection, classify.MSONValueMembersSection, classify.MSONSampleDefaultSection:
			next, ts, sectionReport, ok := parseTypeSection(cur, pd, typ)
			rpt.Merge(sectionReport)

			if ok {
				root.Members = append(root.Members, ts.Members...)
			}

			cur = next

		default:
			member, next, w, ok := parseMemberType(cur, pd)
			rpt.Warnings = append(rpt.Warnings, w...)

			if ok {
				root.Members = append(root.Members, member)
			}

			cur = next
		}
	}

	return root, rpt
}

// parseTypeSection drives one Default/Sample/Items/Members/Properties
// TypeSection node, returning the cursor advanced past it. Grounded on
// original_source/src/MSONTypeSectionParser.h's sectionType()/
// finalizeSignature split: identifier names the section kind, and for
// Sample/Default the signature's values (or remaining content, for a
// Primitive base type) become the section's content.
func parseTypeSection(cur section.Cursor, pd *section.Data, typ classify.SectionType) (section.Cursor, TypeSection, diagnostic.Report, bool) {
	var rpt diagnostic.Report

	if cur.Done() {
		return cur, TypeSection{}, rpt, false
	}

	node := cur.Node()
	line := firstLine(node)
	sig, warnings := signature.Parse(line, signature.Identifier|signature.Values|signature.Content, nil)
	rpt.Warnings = append(rpt.Warnings, warnings...)

	ts := TypeSection{BaseType: ImplicitBaseType}

	switch typ {
	case classify.MSONSampleDefaultSection:
		if strings.EqualFold(sig.Identifier, "Default") {
			ts.Tag = DefaultTag
		} else {
			ts.Tag = SampleTag
		}

		assignSampleDefaultValues(&ts, sig, node, pd, &rpt)

	case classify.MSONPropertyMembersSection, classify.MSONValueMembersSection:
		ts.Tag = MemberTypeTag

		childNodes := node.Children()
		members, _, w := parseMemberList(section.Cursor{Nodes: childNodes, Index: min(1, len(childNodes))}, pd)
		rpt.Warnings = append(rpt.Warnings, w...)
		ts.Members = members
	}

	return cur.Advance(1), ts, rpt, true
}

func assignSampleDefaultValues(ts *TypeSection, sig signature.Signature, node mdast.Node, pd *section.Data, rpt *diagnostic.Report) {
	hasValues := len(sig.Values) > 0 || sig.Value != ""

	if hasValues {
		switch ts.BaseType {
		case PrimitiveBaseType, ImplicitBaseType:
			if len(sig.Values) > 0 {
				ts.Value = sig.Values[0]
			} else {
				ts.Value = sig.Value
			}
		case ValueBaseType:
			for _, v := range sig.Values {
				ts.Members = append(ts.Members, MemberType{Variant: ValueMember, Name: v})
			}
		case ObjectBaseType:
			rpt.Warn(diagnostic.LogicalErrorWarning,
				"a type section for an object cannot have value(s) in the signature of the type section",
				ranges(node, pd))
		}
	}

	if sig.RemainingContent != "" && (ts.BaseType == PrimitiveBaseType || ts.BaseType == ImplicitBaseType) {
		ts.Value += sig.RemainingContent
	}
}

// parseMemberList parses a Properties/Items/Members section's children,
// each a MemberType list item, recursing into nested TypeSections for
// any member that itself carries Properties/Items/Default/Sample.
func parseMemberList(cur section.Cursor, pd *section.Data) ([]MemberType, section.Cursor, []diagnostic.Warning) {
	var (
		members  []MemberType
		warnings []diagnostic.Warning
	)

	for !cur.Done() {
		member, next, w, ok := parseMemberType(cur, pd)
		warnings = append(warnings, w...)

		if ok {
			members = append(members, member)
		}

		cur = next
	}

	return members, cur, warnings
}

// parseMemberType parses one member list item into a MemberType,
// recognizing `Include X` mixins and `One Of` groups as distinct
// variants (spec §4.8), and recursing into any nested TypeSection
// (Properties/Items/Members/Default/Sample) the item's children carry.
func parseMemberType(cur section.Cursor, pd *section.Data) (MemberType, section.Cursor, []diagnostic.Warning, bool) {
	if cur.Done() {
		return MemberType{}, cur, nil, false
	}

	node := cur.Node()
	line := firstLine(node)

	var warnings []diagnostic.Warning

	if strings.HasPrefix(strings.TrimSpace(line), "Include ") {
		return MemberType{
			Variant:        MixinMember,
			MixinReference: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "Include ")),
		}, cur.Advance(1), warnings, true
	}

	if strings.EqualFold(strings.TrimSpace(line), "One Of") {
		member := MemberType{Variant: OneOfMember}

		children := node.Children()
		for _, child := range children[min(1, len(children)):] {
			grandchildren := child.Children()
			childCur := section.Cursor{Nodes: grandchildren, Index: min(1, len(grandchildren))}
			branch, _, w := parseMemberList(childCur, pd)
			warnings = append(warnings, w...)
			member.OneOfBranches = append(member.OneOfBranches, branch)
		}

		return member, cur.Advance(1), warnings, true
	}

	sig, sigWarnings := signature.Parse(line, signature.Identifier|signature.Values|signature.Attributes|signature.Content, nil)
	warnings = append(warnings, sigWarnings...)

	member := MemberType{
		Variant: PropertyMember,
		Name:    sig.Identifier,
		Type: TypeDefinition{
			TypeName:    sig.TypeSpec.Name,
			NestedNames: sig.TypeSpec.NestedNames,
		},
		Description: sig.RemainingContent,
	}

	if sig.Identifier == "" && sig.Value != "" {
		member.Variant = ValueMember
		member.Name = sig.Value
	}

	for _, attr := range sig.Attributes {
		applyMemberAttribute(&member, attr)
	}

	childDepth := pd.Depth + 1
	childPD := &section.Data{Source: pd.Source, Depth: childDepth, ExportSourcemap: pd.ExportSourcemap}

	for _, child := range node.Children()[min(1, len(node.Children())):] {
		ctx := classify.Context{Parent: classify.AttributesSection, Depth: childDepth}
		typ := classify.Classify(child, ctx)

		switch typ {
		case classify.MSONSampleDefaultSection, classify.MSONPropertyMembersSection, classify.MSONValueMembersSection:
			subCur := section.Cursor{Nodes: []mdast.Node{child}}
			_, ts, w, ok := parseTypeSection(subCur, childPD, typ)
			warnings = append(warnings, w.Warnings...)

			if ok {
				member.NestedSections = append(member.NestedSections, ts)
			}
		}
	}

	return member, cur.Advance(1), warnings, true
}

func applyMemberAttribute(member *MemberType, attr string) {
	switch strings.ToLower(strings.TrimSpace(attr)) {
	case "required":
		member.Type.Required = true
	case "optional":
		member.Type.Optional = true
	case "nullable":
		member.Type.Nullable = true
	case "fixed":
		member.Type.FixedValue = true
	}
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

func ranges(node mdast.Node, pd *section.Data) diagnostic.RangeSet {
	return diagnostic.CharacterRanges(node.SourceMap(), pd.Source)
}
