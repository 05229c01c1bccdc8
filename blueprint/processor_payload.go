package blueprint

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
	"github.com/SMillerDev/drafter/mson"
)

var referenceRegex = regexp.MustCompile(`^\[([^\]]+)\]\[\]\s*$`)

// ParsePayload parses a classified Request, Response, or Model node into
// a [Payload] (spec §4.7).
//
// A Payload's children mix two shapes the classify.SectionType model
// doesn't cleanly separate: explicit wrapper sections (`+ Headers`,
// `+ Body`, `+ Schema`, `+ Attributes`) and bare prose/code content
// belonging directly to the payload (a response's literal body, an
// inline `[Name][]` reference). Rather than force the latter through
// the section driver's single generic description bucket, it is
// recognized here by node type, the same bypass mson's member-list
// parsing and Headers use for their own non-uniform children.
func ParsePayload(node mdast.Node, pd *section.Data, wantStatus bool) (Payload, diagnostic.Report) {
	var (
		payload Payload
		rpt     diagnostic.Report
	)

	line := firstLineOf(node)
	sig, warnings := signature.Parse(line, signature.Identifier|signature.Attributes|signature.Content, nil)
	rpt.Warnings = append(rpt.Warnings, warnings...)

	fields := strings.Fields(sig.Identifier)
	if len(fields) > 0 {
		fields = fields[1:] // drop the leading "Request"/"Response"/"Model" keyword.
	}

	if wantStatus && len(fields) > 0 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			payload.Status = fields[0]
			fields = fields[1:]
		}
	}

	payload.Name = strings.TrimSpace(strings.Join(fields, " "))

	if len(sig.Attributes) > 0 {
		payload.MediaType = parseMediaType(sig.Attributes[0])
	}

	var descParts []string

	if sig.RemainingContent != "" {
		consumePayloadProse(sig.RemainingContent, &payload, &descParts, node, pd, &rpt)
	}

	children := node.Children()
	for i := minInt(1, len(children)); i < len(children); i++ {
		child := children[i]

		if child.Type() == mdast.CodeNode {
			if payload.Body == nil {
				payload.Body = append(payload.Body, child.Text()...)
			} else {
				payload.Schema = append(payload.Schema, child.Text()...)
			}

			continue
		}

		ctx := classify.Context{Parent: classify.RequestSection, Depth: pd.Depth + 1}
		typ := classify.Classify(child, ctx)

		childPD := &section.Data{Source: pd.Source, Depth: pd.Depth + 1, ExportSourcemap: pd.ExportSourcemap}

		switch typ {
		case classify.HeadersSection:
			headers, headerReport := ParseHeaders(child, childPD)
			rpt.Merge(headerReport)
			payload.Headers = append(payload.Headers, headers...)
		case classify.BodySection:
			payload.Body = append(payload.Body, ParseAsset(child)...)
		case classify.SchemaSection:
			payload.Schema = append(payload.Schema, ParseAsset(child)...)
		case classify.AttributesSection:
			attrs, attrReport := mson.ParseAttributes(child, childPD, mson.ImplicitBaseType)
			rpt.Merge(attrReport)
			payload.Attributes = attrs
		case classify.Undefined:
			consumePayloadProse(string(child.Text()), &payload, &descParts, child, childPD, &rpt)
		default:
			rpt.Warn(diagnostic.IgnoringWarning, "ignoring "+typ.String()+" section not valid in a payload", ranges(child, childPD))
		}
	}

	if len(descParts) > 0 {
		payload.Description = strings.Join(descParts, "\n")
	}

	if payload.Reference != "" && payload.Body != nil {
		rpt.Warn(diagnostic.FormattingWarning,
			"payload has both a local body and a named model reference; the local body supersedes", ranges(node, pd))
	}

	return payload, rpt
}

// consumePayloadProse classifies one line of a payload's prose content as
// either a `[Name][]` model reference or ordinary description text.
func consumePayloadProse(text string, payload *Payload, descParts *[]string, node mdast.Node, pd *section.Data, rpt *diagnostic.Report) {
	trimmed := strings.TrimSpace(text)

	if m := referenceRegex.FindStringSubmatch(trimmed); m != nil {
		if payload.Reference != "" {
			rpt.Warn(diagnostic.RedefinitionWarning, "payload already references a named model", ranges(node, pd))
		}

		payload.Reference = m[1]

		return
	}

	*descParts = append(*descParts, text)
}

// recoverIndentedBody implements spec §4.3 phase 3's indentation
// recovery: a Request/Response/Model body that should have been an
// indented code block under its list item, but wasn't indented enough
// for the block reader to nest it there, surfaces instead as plain
// sibling content immediately following. Rather than let the driver's
// nested-dispatch loop discard that content with an IgnoringWarning,
// the caller offers it here first: any run of Undefined-classified
// siblings immediately following is folded into payload.Body with a
// single IndentationWarning, best-effort. Only runs when ParsePayload
// didn't already find a body.
func recoverIndentedBody(cur section.Cursor, pd *section.Data, parent classify.SectionType, payload *Payload, rpt *diagnostic.Report) section.Cursor {
	if payload.Body != nil {
		return cur
	}

	var recovered []byte

	warned := false

	for !cur.Done() {
		node := cur.Node()
		ctx := classify.Context{Parent: parent, Depth: pd.Depth}

		if classify.Classify(node, ctx) != classify.Undefined {
			break
		}

		if !warned {
			rpt.Warn(diagnostic.IndentationWarning,
				"expected an indented code block; recovering unindented content as the payload body", ranges(node, pd))
			warned = true
		}

		recovered = append(recovered, node.Text()...)
		recovered = append(recovered, '\n')
		cur = cur.Advance(1)
	}

	if warned {
		recovered = append(recovered, '\n')
		payload.Body = recovered
	}

	return cur
}

// parseMediaType parses a signature attribute token of the form
// `type/subtype+suffix; param=value` (RFC 6838), tolerating an absent
// type or subtype.
func parseMediaType(tok string) *MediaType {
	mt := &MediaType{Parameters: map[string]string{}}

	parts := strings.Split(tok, ";")
	typeSubtype := strings.TrimSpace(parts[0])

	for _, p := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(p), "=", 2)
		if len(kv) == 2 {
			mt.Parameters[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	slash := strings.IndexByte(typeSubtype, '/')
	if slash < 0 {
		if typeSubtype != "" {
			mt.Type = typeSubtype
		}

		return mt
	}

	mt.Type = typeSubtype[:slash]
	subtype := typeSubtype[slash+1:]

	if plus := strings.IndexByte(subtype, '+'); plus >= 0 {
		mt.Subtype = subtype[:plus]
		mt.Suffix = subtype[plus+1:]
	} else {
		mt.Subtype = subtype
	}

	return mt
}
