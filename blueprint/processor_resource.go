package blueprint

import (
	"regexp"
	"strings"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
	"github.com/SMillerDev/drafter/mson"
)

var resourceBracketRegex = regexp.MustCompile(`^(.*)\[([^\]]+)\]\s*$`)

// resourceProcessor implements section.Processor[Resource] (spec §4.5).
type resourceProcessor struct{}

func (resourceProcessor) SectionType() classify.SectionType { return classify.ResourceSection }

func (resourceProcessor) SignatureTraits() signature.Trait { return signature.Identifier }

func (resourceProcessor) ParseSignature(node mdast.Node, pd *section.Data, sig signature.Signature, out *Resource, rpt *diagnostic.Report) bool {
	text := strings.TrimSpace(sig.Identifier)

	if m := resourceBracketRegex.FindStringSubmatch(text); m != nil && strings.Contains(m[2], "/") {
		out.Name = strings.TrimSpace(m[1])
		out.URITemplate = strings.TrimSpace(m[2])

		return true
	}

	fields := strings.Fields(text)
	if len(fields) > 0 && classify.HTTPMethods[strings.ToUpper(fields[0])] {
		method := strings.ToUpper(fields[0])
		out.URITemplate = strings.TrimSpace(strings.Join(fields[1:], " "))
		out.Actions = append(out.Actions, Action{Method: method})

		return true
	}

	if strings.HasPrefix(text, "/") {
		out.URITemplate = text

		return true
	}

	out.Name = text

	return true
}

func (resourceProcessor) AcceptsDescription() bool { return true }

func (resourceProcessor) NestedSectionTypes() []classify.SectionType {
	return []classify.SectionType{
		classify.ModelSection,
		classify.ParametersSection,
		classify.HeadersSection,
		classify.AttributesSection,
		classify.ActionSection,
		classify.RequestSection,
		classify.ResponseSection,
		classify.RelationSection,
	}
}

func (resourceProcessor) ProcessNested(cur section.Cursor, typ classify.SectionType, pd *section.Data, out *Resource, rpt *diagnostic.Report) section.Cursor {
	node := cur.Node()

	switch typ {
	case classify.ModelSection:
		payload, payloadReport := ParsePayload(node, pd, false)
		rpt.Merge(payloadReport)

		next := recoverIndentedBody(cur.Advance(1), pd, classify.ResourceSection, &payload, rpt)
		out.Model = &payload

		return next

	case classify.ParametersSection:
		params, paramReport := ParseParameters(node, pd)
		rpt.Merge(paramReport)
		out.Parameters = append(out.Parameters, params...)

	case classify.HeadersSection:
		rpt.Warn(diagnostic.DeprecatedWarning, "resource-level Headers is deprecated, prefer per-response Headers", ranges(node, pd))

		headers, headerReport := ParseHeaders(node, pd)
		rpt.Merge(headerReport)
		out.Headers = append(out.Headers, headers...)

	case classify.AttributesSection:
		attrs, attrReport := mson.ParseAttributes(node, pd, mson.ImplicitBaseType)
		rpt.Merge(attrReport)
		out.Attributes = attrs

	case classify.ActionSection:
		next, action, actionReport, ok := section.Drive(cur, pd, actionProcessor{})
		rpt.Merge(actionReport)

		if ok {
			for _, existing := range out.Actions {
				if existing.Method == action.Method {
					rpt.Warn(diagnostic.RedefinitionWarning, "action method \""+action.Method+"\" is redefined", ranges(node, pd))

					break
				}
			}

			out.Actions = append(out.Actions, action)

			return next
		}

	case classify.RequestSection, classify.ResponseSection:
		// Abbreviated-form resource ("# METHOD URITemplate"): the implied
		// single Action already exists in out.Actions (see ParseSignature);
		// its body belongs there, not to the Resource directly.
		if len(out.Actions) > 0 {
			isResponse := typ == classify.ResponseSection

			payload, payloadReport := ParsePayload(node, pd, isResponse)
			rpt.Merge(payloadReport)

			next := recoverIndentedBody(cur.Advance(1), pd, classify.ResourceSection, &payload, rpt)
			appendTransactionPayload(&out.Actions[len(out.Actions)-1].Examples, isResponse, payload)

			return next
		}

	case classify.RelationSection:
		if len(out.Actions) > 0 {
			line := firstLineOf(node)
			sig, warnings := signature.Parse(line, signature.Identifier|signature.Value|signature.Content, nil)
			rpt.Warnings = append(rpt.Warnings, warnings...)
			out.Actions[len(out.Actions)-1].Relation = strings.TrimSpace(sig.Value)
		}
	}

	return cur.Advance(1)
}

func (resourceProcessor) Finalize(pd *section.Data, out *Resource, rpt *diagnostic.Report) {
	if out.Model != nil && out.Model.Name == "" {
		out.Model.Name = out.Name
	}

	uriVars := extractURITemplateNames(out.URITemplate)

	checkParametersInURITemplate(out.Parameters, uriVars, rpt)

	for _, a := range out.Actions {
		checkParametersInURITemplate(a.Parameters, uriVars, rpt)
	}
}

// checkParametersInURITemplate warns for each parameter absent from
// uriVars, in declaration order (spec §4.5/§4.6: a Parameter not named
// by the resource's URI template is a LogicalErrorWarning).
func checkParametersInURITemplate(params []Parameter, uriVars map[string]bool, rpt *diagnostic.Report) {
	for _, p := range params {
		if !uriVars[p.Name] {
			rpt.Warn(diagnostic.LogicalErrorWarning, "parameter \""+p.Name+"\" is not present in the URI template", nil)
		}
	}
}

var uriVarRegex = regexp.MustCompile(`\{([^}]+)\}`)

// extractURITemplateNames returns the set of variable names a URI
// template declares, per RFC 6570's `{var}` syntax.
func extractURITemplateNames(template string) map[string]bool {
	names := make(map[string]bool)

	for _, m := range uriVarRegex.FindAllStringSubmatch(template, -1) {
		for _, v := range strings.Split(m[1], ",") {
			v = strings.TrimSpace(strings.TrimLeft(v, "#?&/.;"))
			if v != "" {
				names[v] = true
			}
		}
	}

	return names
}
