package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/mdast"
)

func header(text string) *mdast.SimpleNode {
	return &mdast.SimpleNode{NodeType: mdast.HeaderNode, NodeText: []byte(text)}
}

func listItem(firstLine string) *mdast.SimpleNode {
	return &mdast.SimpleNode{
		NodeType: mdast.ListItemNode,
		NodeChildren: []mdast.Node{
			&mdast.SimpleNode{NodeType: mdast.ParagraphNode, NodeText: []byte(firstLine)},
		},
	}
}

func TestClassify_Headers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text string
		ctx  classify.Context
		want classify.SectionType
	}{
		"group header": {
			text: "Group Widgets",
			ctx:  classify.Context{Parent: classify.Undefined},
			want: classify.ResourceGroupSection,
		},
		"data structures header": {
			text: "Data Structures",
			ctx:  classify.Context{Parent: classify.BlueprintSection},
			want: classify.DataStructuresSection,
		},
		"bracketed resource uri": {
			text: "My Resource [/r/{id}]",
			ctx:  classify.Context{Parent: classify.BlueprintSection},
			want: classify.ResourceSection,
		},
		"bare uri header": {
			text: "/1",
			ctx:  classify.Context{Parent: classify.BlueprintSection},
			want: classify.ResourceSection,
		},
		"abbreviated resource with method prefix": {
			text: "GET /1",
			ctx:  classify.Context{Parent: classify.BlueprintSection},
			want: classify.ResourceSection,
		},
		"nested method header is an action": {
			text: "GET",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.ActionSection,
		},
		"nested bracketed action": {
			text: "List [GET]",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.ActionSection,
		},
		"top-level blueprint name": {
			text: "My API",
			ctx:  classify.Context{Parent: classify.Undefined},
			want: classify.BlueprintSection,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := classify.Classify(header(tc.text), tc.ctx)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_ListItems(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text string
		ctx  classify.Context
		want classify.SectionType
	}{
		"parameters wrapper": {
			text: "Parameters",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.ParametersSection,
		},
		"nested parameter inside parameters": {
			text: "Parameters",
			ctx:  classify.Context{Parent: classify.ParametersSection},
			want: classify.ParameterSection,
		},
		"bare name inside parameters is a parameter": {
			text: "id",
			ctx:  classify.Context{Parent: classify.ParametersSection},
			want: classify.ParameterSection,
		},
		"headers": {
			text: "Headers",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.HeadersSection,
		},
		"response with status and media type": {
			text: "Response 200 (text/plain)",
			ctx:  classify.Context{Parent: classify.ActionSection},
			want: classify.ResponseSection,
		},
		"bare request": {
			text: "Request",
			ctx:  classify.Context{Parent: classify.ActionSection},
			want: classify.RequestSection,
		},
		"model": {
			text: "Model",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.ModelSection,
		},
		"attributes": {
			text: "Attributes (object)",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.AttributesSection,
		},
		"body": {
			text: "Body",
			ctx:  classify.Context{Parent: classify.RequestSection},
			want: classify.BodySection,
		},
		"schema": {
			text: "Schema",
			ctx:  classify.Context{Parent: classify.RequestSection},
			want: classify.SchemaSection,
		},
		"default": {
			text: "Default",
			ctx:  classify.Context{Parent: classify.MSONValueMembersSection},
			want: classify.MSONSampleDefaultSection,
		},
		"members": {
			text: "Members",
			ctx:  classify.Context{Parent: classify.AttributesSection},
			want: classify.MSONValueMembersSection,
		},
		"properties": {
			text: "Properties",
			ctx:  classify.Context{Parent: classify.AttributesSection},
			want: classify.MSONPropertyMembersSection,
		},
		"unmatched list item outside parameters is undefined": {
			text: "just a note",
			ctx:  classify.Context{Parent: classify.ResourceSection},
			want: classify.Undefined,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := classify.Classify(listItem(tc.text), tc.ctx)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_HRule(t *testing.T) {
	t.Parallel()

	hrule := &mdast.SimpleNode{NodeType: mdast.HRuleNode}

	assert.Equal(t, classify.TerminatorSection, classify.Classify(hrule, classify.Context{Depth: 0}))
	assert.Equal(t, classify.Undefined, classify.Classify(hrule, classify.Context{Depth: 1}))
}

func TestSectionType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Resource", classify.ResourceSection.String())
	assert.Equal(t, "Undefined", classify.SectionType(999).String())
}
