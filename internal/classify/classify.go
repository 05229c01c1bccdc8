// Package classify implements the section classifier (spec §4.2): a
// pure function from a Markdown node and its parent context to a
// [SectionType]. Classification never looks at siblings; Context exists
// only to suppress classifications illegal in the current scope (e.g. an
// HRule is a Terminator only at Depth 0, and Undefined at any other
// depth).
package classify

import (
	"regexp"
	"strings"

	"github.com/SMillerDev/drafter/mdast"
)

// SectionType is the classification of one Markdown node.
type SectionType int

const (
	Undefined SectionType = iota
	BlueprintSection
	ResourceGroupSection
	ResourceSection
	ActionSection
	ParametersSection
	ParameterSection
	HeadersSection
	ModelSection
	AttributesSection
	RequestSection
	ResponseSection
	RelationSection
	BodySection
	SchemaSection
	DataStructuresSection
	MSONSampleDefaultSection
	MSONValueMembersSection
	MSONPropertyMembersSection
	TerminatorSection
)

// String names a SectionType, for warning messages and logs.
func (t SectionType) String() string {
	switch t {
	case BlueprintSection:
		return "Blueprint"
	case ResourceGroupSection:
		return "ResourceGroup"
	case ResourceSection:
		return "Resource"
	case ActionSection:
		return "Action"
	case ParametersSection:
		return "Parameters"
	case ParameterSection:
		return "Parameter"
	case HeadersSection:
		return "Headers"
	case ModelSection:
		return "Model"
	case AttributesSection:
		return "Attributes"
	case RequestSection:
		return "Request"
	case ResponseSection:
		return "Response"
	case RelationSection:
		return "Relation"
	case BodySection:
		return "Body"
	case SchemaSection:
		return "Schema"
	case DataStructuresSection:
		return "DataStructures"
	case MSONSampleDefaultSection:
		return "MSONSampleDefault"
	case MSONValueMembersSection:
		return "MSONValueMembers"
	case MSONPropertyMembersSection:
		return "MSONPropertyMembers"
	case TerminatorSection:
		return "Terminator"
	}

	return "Undefined"
}

// HTTPMethods is the fixed set of permitted HTTP method tokens (spec §3).
var HTTPMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "OPTIONS": true, "LINK": true, "UNLINK": true,
	"LOCK": true, "UNLOCK": true, "PROPFIND": true, "PROPPATCH": true,
	"COPY": true, "MOVE": true, "MKCOL": true,
}

var (
	groupRegex               = regexp.MustCompile(`(?i)^Group\s+(.+)$`)
	methodPrefixRegex        = regexp.MustCompile(`^([A-Za-z]+)(\s+(\S+))?\s*$`)
	uriBracketRegex          = regexp.MustCompile(`\[[^\]]*/[^\]]*\]\s*$`)
	bareURIRegex             = regexp.MustCompile(`^/\S*$`)
	parametersRegex          = regexp.MustCompile(`^[Pp]arameters?$`)
	headersRegex             = regexp.MustCompile(`^[Hh]eaders?$`)
	responseRegex            = regexp.MustCompile(`^[Rr]esponse(\s+\d{3})?(\s*\([^)]*\))?$`)
	requestRegex             = regexp.MustCompile(`^[Rr]equest(\s+\S+)?(\s*\([^)]*\))?$`)
	modelRegex               = regexp.MustCompile(`^[Mm]odel(\s*\([^)]*\))?$`)
	attributesRegex          = regexp.MustCompile(`^[Aa]ttributes?(\s*\([^)]*\))?$`)
	defaultRegex             = regexp.MustCompile(`^[Dd]efault$`)
	sampleRegex              = regexp.MustCompile(`^[Ss]ample$`)
	membersRegex             = regexp.MustCompile(`^([Ii]tems|[Mm]embers)$`)
	propertiesRegex          = regexp.MustCompile(`^[Pp]roperties$`)
	dataStructRegex          = regexp.MustCompile(`(?i)^Data Structures?$`)
	relationRegex            = regexp.MustCompile(`^[Rr]elation(\s*\([^)]*\))?$`)
	bodyRegex                = regexp.MustCompile(`^[Bb]ody$`)
	schemaRegex              = regexp.MustCompile(`^[Ss]chema$`)
	actionMethodBracketRegex = regexp.MustCompile(`^.*\[([A-Za-z]+)\]\s*$`)
)

// Context carries the minimum parent-scope information the classifier
// needs to suppress illegal classifications. Depth is the node's
// distance from the Blueprint's own child list: an HRule classifies as
// TerminatorSection only at Depth == 0. Only blueprint.Parse classifies
// at Depth 0, and it skips a Terminator; section.Drive classifies at
// Depth 1 or deeper, so an HRule after a ResourceGroup's or Resource's
// content is Undefined there and does not end that group.
type Context struct {
	Parent SectionType
	Depth  int
}

// Classify returns the SectionType node represents given its parent
// scope. It never consults siblings.
func Classify(node mdast.Node, ctx Context) SectionType {
	switch node.Type() {
	case mdast.HRuleNode:
		if ctx.Depth == 0 {
			return TerminatorSection
		}

		return Undefined

	case mdast.HeaderNode:
		return classifyFirstLine(firstLine(node.Text()), ctx, true)

	case mdast.ListItemNode:
		text := firstChildText(node)

		return classifyFirstLine(firstLine(text), ctx, false)

	default:
		return Undefined
	}
}

func firstChildText(node mdast.Node) []byte {
	children := node.Children()
	if len(children) == 0 {
		return nil
	}

	return children[0].Text()
}

func firstLine(text []byte) string {
	s := string(text)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

func classifyFirstLine(line string, ctx Context, isHeader bool) SectionType {
	if isHeader {
		if groupRegex.MatchString(line) {
			return ResourceGroupSection
		}

		if dataStructRegex.MatchString(line) {
			return DataStructuresSection
		}

		// A method token leads the line ("## GET", "# POST /widgets"):
		// an abbreviated Resource at top level, an Action header nested
		// inside a Resource.
		if m := methodPrefixRegex.FindStringSubmatch(line); m != nil && HTTPMethods[strings.ToUpper(m[1])] {
			if ctx.Parent == ResourceSection {
				return ActionSection
			}

			return ResourceSection
		}

		// "Name [METHOD]" is only a legal Action signature, nested inside
		// a Resource; the same bracket shape at any other depth is not
		// classifiable as anything else here.
		if ctx.Parent == ResourceSection {
			if m := actionMethodBracketRegex.FindStringSubmatch(line); m != nil && HTTPMethods[strings.ToUpper(m[1])] {
				return ActionSection
			}
		}

		if uriBracketRegex.MatchString(line) || bareURIRegex.MatchString(line) {
			return ResourceSection
		}

		// A plain "# Name [URI]" or "# Name" header with no other
		// classifiable shape: a named Resource if it carries a bracketed
		// URI, otherwise (top level) a Blueprint name / ResourceGroup
		// overview header, decided by the caller from ctx.Parent.
		if ctx.Parent == Undefined || ctx.Parent == BlueprintSection {
			return BlueprintSection
		}

		if ctx.Parent == ResourceSection {
			return ActionSection
		}

		return ResourceSection
	}

	// ListItem first line.
	switch {
	case parametersRegex.MatchString(line):
		if ctx.Parent == ParametersSection {
			return ParameterSection
		}

		return ParametersSection
	case headersRegex.MatchString(line):
		return HeadersSection
	case responseRegex.MatchString(line):
		return ResponseSection
	case requestRegex.MatchString(line):
		return RequestSection
	case modelRegex.MatchString(line):
		return ModelSection
	case relationRegex.MatchString(line):
		return RelationSection
	case attributesRegex.MatchString(line):
		return AttributesSection
	case bodyRegex.MatchString(line):
		return BodySection
	case schemaRegex.MatchString(line):
		return SchemaSection
	case defaultRegex.MatchString(line), sampleRegex.MatchString(line):
		return MSONSampleDefaultSection
	case membersRegex.MatchString(line):
		return MSONValueMembersSection
	case propertiesRegex.MatchString(line):
		return MSONPropertyMembersSection
	}

	// Anything else inside a Parameters section not matching the
	// "Parameters" wrapper line itself is a bare Parameter, per
	// SPEC_FULL.md §11 (ParametersParser.h). It is only legal there.
	if ctx.Parent == ParametersSection {
		return ParameterSection
	}

	return Undefined
}
