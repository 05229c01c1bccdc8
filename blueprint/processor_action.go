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

var actionBracketRegex = regexp.MustCompile(`^(.*)\[([A-Za-z]+)\]\s*$`)

// actionProcessor implements section.Processor[Action] (spec §4.6).
type actionProcessor struct{}

func (actionProcessor) SectionType() classify.SectionType { return classify.ActionSection }

func (actionProcessor) SignatureTraits() signature.Trait { return signature.Identifier }

func (actionProcessor) ParseSignature(node mdast.Node, pd *section.Data, sig signature.Signature, out *Action, rpt *diagnostic.Report) bool {
	text := strings.TrimSpace(sig.Identifier)

	method := text
	if m := actionBracketRegex.FindStringSubmatch(text); m != nil {
		out.Name = strings.TrimSpace(m[1])
		method = m[2]
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if !classify.HTTPMethods[method] {
		rpt.Warn(diagnostic.HTTPMethodWarning, "unrecognized HTTP method \""+method+"\"", ranges(node, pd))
	}

	out.Method = method

	return true
}

func (actionProcessor) AcceptsDescription() bool { return true }

func (actionProcessor) NestedSectionTypes() []classify.SectionType {
	return []classify.SectionType{
		classify.ParametersSection,
		classify.HeadersSection,
		classify.AttributesSection,
		classify.RelationSection,
		classify.RequestSection,
		classify.ResponseSection,
	}
}

func (actionProcessor) ProcessNested(cur section.Cursor, typ classify.SectionType, pd *section.Data, out *Action, rpt *diagnostic.Report) section.Cursor {
	node := cur.Node()

	switch typ {
	case classify.ParametersSection:
		params, paramReport := ParseParameters(node, pd)
		rpt.Merge(paramReport)
		out.Parameters = append(out.Parameters, params...)

	case classify.HeadersSection:
		rpt.Warn(diagnostic.DeprecatedWarning, "action-level Headers is deprecated, prefer per-response Headers", ranges(node, pd))

		headers, headerReport := ParseHeaders(node, pd)
		rpt.Merge(headerReport)
		out.Headers = append(out.Headers, headers...)

	case classify.AttributesSection:
		attrs, attrReport := mson.ParseAttributes(node, pd, mson.ImplicitBaseType)
		rpt.Merge(attrReport)
		out.Attributes = attrs

	case classify.RelationSection:
		line := firstLineOf(node)
		sig, warnings := signature.Parse(line, signature.Identifier|signature.Value|signature.Content, nil)
		rpt.Warnings = append(rpt.Warnings, warnings...)
		out.Relation = strings.TrimSpace(sig.Value)

	case classify.RequestSection, classify.ResponseSection:
		isResponse := typ == classify.ResponseSection

		payload, payloadReport := ParsePayload(node, pd, isResponse)
		rpt.Merge(payloadReport)

		next := recoverIndentedBody(cur.Advance(1), pd, classify.ActionSection, &payload, rpt)
		appendTransactionPayload(&out.Examples, isResponse, payload)

		return next
	}

	return cur.Advance(1)
}

func (actionProcessor) Finalize(pd *section.Data, out *Action, rpt *diagnostic.Report) {
	if len(out.Examples) == 0 {
		rpt.Warn(diagnostic.EmptyDefinitionWarning, "action \""+out.Method+"\" has no response", nil)

		return
	}

	hasResponse := false

	for _, ex := range out.Examples {
		if len(ex.Responses) > 0 {
			hasResponse = true
		}
	}

	if !hasResponse {
		rpt.Warn(diagnostic.EmptyDefinitionWarning, "action \""+out.Method+"\" has no response", nil)

		return
	}

	last := out.Examples[len(out.Examples)-1]
	if len(last.Requests) > 0 && len(last.Responses) == 0 {
		rpt.Warn(diagnostic.EmptyDefinitionWarning, "request has no following response", nil)
	}
}

// appendTransactionPayload groups Requests and Responses into
// [TransactionExample]s (spec §4.6): a new example begins whenever a
// Request arrives after the current example already holds a Response.
func appendTransactionPayload(examples *[]TransactionExample, isResponse bool, payload Payload) {
	if len(*examples) == 0 {
		*examples = append(*examples, TransactionExample{})
	}

	last := &(*examples)[len(*examples)-1]

	if !isResponse && len(last.Responses) > 0 {
		*examples = append(*examples, TransactionExample{})
		last = &(*examples)[len(*examples)-1]
	}

	if isResponse {
		last.Responses = append(last.Responses, payload)
	} else {
		last.Requests = append(last.Requests, payload)
	}
}
