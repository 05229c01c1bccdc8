package blueprint

import (
	"strings"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
)

// parameterProcessor implements section.Processor[Parameter] for one
// Parameter list item (spec §4.7): `+ name (type, required, `value`) -
// description`, plus the deprecated `+ name = `value` ...` old-style
// form original_source's ParameterParser.h also still recognizes.
type parameterProcessor struct{}

func (parameterProcessor) SectionType() classify.SectionType { return classify.ParameterSection }

func (parameterProcessor) SignatureTraits() signature.Trait {
	return signature.Identifier | signature.Value | signature.Attributes | signature.Content
}

func (parameterProcessor) ParseSignature(node mdast.Node, pd *section.Data, sig signature.Signature, out *Parameter, rpt *diagnostic.Report) bool {
	name, oldStyleValue, oldStyle := splitOldStyleParameter(sig.Identifier)

	out.Name = name
	out.OldStyle = oldStyle

	if oldStyle {
		out.Default = oldStyleValue
	} else if sig.Value != "" {
		out.Example = sig.Value
	}

	out.Usage = ParameterOptional

	for _, attr := range sig.Attributes {
		switch strings.ToLower(strings.TrimSpace(attr)) {
		case "required":
			out.Usage = ParameterRequired
		case "optional":
			out.Usage = ParameterOptional
		default:
			applyParameterAttribute(out, attr)
		}
	}

	if !sig.TypeSpec.Empty() {
		out.Type = sig.TypeSpec.Name
	}

	return true
}

func (parameterProcessor) AcceptsDescription() bool { return true }

func (parameterProcessor) NestedSectionTypes() []classify.SectionType {
	return []classify.SectionType{classify.MSONSampleDefaultSection, classify.MSONValueMembersSection}
}

func (parameterProcessor) ProcessNested(cur section.Cursor, typ classify.SectionType, pd *section.Data, out *Parameter, rpt *diagnostic.Report) section.Cursor {
	node := cur.Node()
	line := firstLineOf(node)
	sig, warnings := signature.Parse(line, signature.Identifier|signature.Values|signature.Content, nil)
	rpt.Warnings = append(rpt.Warnings, warnings...)

	switch typ {
	case classify.MSONSampleDefaultSection:
		value := sig.RemainingContent
		if len(sig.Values) > 0 {
			value = sig.Values[0]
		}

		if strings.EqualFold(sig.Identifier, "default") {
			out.Default = value
		} else {
			out.Example = value
		}
	case classify.MSONValueMembersSection:
		for _, child := range node.Children() {
			v := strings.TrimSpace(firstLineOf(child))
			if v != "" {
				out.Values = append(out.Values, v)
			}
		}
	}

	return cur.Advance(1)
}

func (parameterProcessor) Finalize(pd *section.Data, out *Parameter, rpt *diagnostic.Report) {
	if out.Name == "" {
		rpt.Warn(diagnostic.EmptyDefinitionWarning, "parameter has no name", nil)
	}
}

// splitOldStyleParameter recognizes the deprecated `name = value` spelling
// of a parameter's identifier, returning the bare name, the literal value,
// and whether the old style was used.
func splitOldStyleParameter(identifier string) (name, value string, oldStyle bool) {
	idx := strings.Index(identifier, "=")
	if idx < 0 {
		return strings.TrimSpace(identifier), "", false
	}

	name = strings.TrimSpace(identifier[:idx])
	value = strings.Trim(strings.TrimSpace(identifier[idx+1:]), "`")

	return name, value, true
}

func applyParameterAttribute(p *Parameter, attr string) {
	attr = strings.TrimSpace(attr)
	if attr == "" || p.Type != "" {
		return
	}

	p.Type = attr
}

func firstLineOf(node mdast.Node) string {
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
