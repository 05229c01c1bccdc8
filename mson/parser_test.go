package mson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/mdast"
	"github.com/SMillerDev/drafter/mson"
)

// Fixtures are hand-built rather than run through internal/mdparse, per
// the same ListItem-first-line-as-synthetic-paragraph convention
// blueprint's own tests rely on.

func para(text string) mdast.Node {
	return &mdast.SimpleNode{NodeType: mdast.ParagraphNode, NodeText: []byte(text)}
}

func listItem(firstLine string, nested ...mdast.Node) mdast.Node {
	children := append([]mdast.Node{para(firstLine)}, nested...)

	return &mdast.SimpleNode{NodeType: mdast.ListItemNode, NodeChildren: children}
}

// A wrapper section's own first child is the synthetic paragraph
// carrying its signature line; it must not be mistaken for the list's
// first member.
func TestParseAttributes_SiblingMembersExcludeOwnSignatureLine(t *testing.T) {
	t.Parallel()

	node := listItem("Attributes",
		listItem("name (string, required)"),
		listItem("age (number)"),
	)

	ts, rpt := mson.ParseAttributes(node, &section.Data{}, mson.ImplicitBaseType)

	assert.Empty(t, rpt.Warnings)
	require.Len(t, ts.Members, 2)

	assert.Equal(t, "name", ts.Members[0].Name)
	assert.Equal(t, "string", ts.Members[0].Type.TypeName)
	assert.True(t, ts.Members[0].Type.Required)

	assert.Equal(t, "age", ts.Members[1].Name)
	assert.Equal(t, "number", ts.Members[1].Type.TypeName)
}

// A member's own nested Properties section is driven over its
// children, not over itself-plus-children, so its own "Properties"
// line never appears as a spurious first nested member.
func TestParseAttributes_NestedPropertiesExcludeOwnSignatureLine(t *testing.T) {
	t.Parallel()

	node := listItem("Attributes",
		listItem("address",
			listItem("Properties",
				listItem("city (string)"),
				listItem("zip (string)"),
			),
		),
	)

	ts, rpt := mson.ParseAttributes(node, &section.Data{}, mson.ImplicitBaseType)

	assert.Empty(t, rpt.Warnings)
	require.Len(t, ts.Members, 1)

	address := ts.Members[0]
	assert.Equal(t, "address", address.Name)
	require.Len(t, address.NestedSections, 1)
	require.Len(t, address.NestedSections[0].Members, 2)
	assert.Equal(t, "city", address.NestedSections[0].Members[0].Name)
	assert.Equal(t, "zip", address.NestedSections[0].Members[1].Name)
}

// Each "One Of" branch is driven over its own nested members, not over
// its own signature line plus those members.
func TestParseAttributes_OneOfBranchesExcludeOwnSignatureLine(t *testing.T) {
	t.Parallel()

	node := listItem("Attributes",
		listItem("One Of",
			listItem("(object)", listItem("a (string)")),
			listItem("(object)", listItem("b (string)")),
		),
	)

	ts, rpt := mson.ParseAttributes(node, &section.Data{}, mson.ImplicitBaseType)

	assert.Empty(t, rpt.Warnings)
	require.Len(t, ts.Members, 1)

	oneOf := ts.Members[0]
	assert.Equal(t, mson.OneOfMember, oneOf.Variant)
	require.Len(t, oneOf.OneOfBranches, 2)
	require.Len(t, oneOf.OneOfBranches[0], 1)
	assert.Equal(t, "a", oneOf.OneOfBranches[0][0].Name)
	require.Len(t, oneOf.OneOfBranches[1], 1)
	assert.Equal(t, "b", oneOf.OneOfBranches[1][0].Name)
}
