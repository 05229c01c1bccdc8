package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMillerDev/drafter/blueprint"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/mdast"
)

// The fixtures below build mdast trees by hand rather than going
// through internal/mdparse, so each test exercises exactly the node
// shape it claims to. Two conventions matter: internal/mdparse never
// gives a Header node children (everything nested under a Resource or
// Action header is a flat sibling in the same top-level slice, scoped
// by classify.Context rather than tree structure), and a ListItem's own
// first line lives in a synthetic Paragraph child rather than in the
// ListItem's own Text.

func doc(children ...mdast.Node) mdast.Node {
	return &mdast.SimpleNode{NodeType: mdast.DocumentNode, NodeChildren: children}
}

func header(level int, text string) mdast.Node {
	return &mdast.SimpleNode{NodeType: mdast.HeaderNode, NodeLevel: level, NodeText: []byte(text)}
}

func para(text string) mdast.Node {
	return &mdast.SimpleNode{NodeType: mdast.ParagraphNode, NodeText: []byte(text)}
}

func code(text string) mdast.Node {
	return &mdast.SimpleNode{NodeType: mdast.CodeNode, NodeText: []byte(text)}
}

func listItem(firstLine string, nested ...mdast.Node) mdast.Node {
	children := append([]mdast.Node{para(firstLine)}, nested...)

	return &mdast.SimpleNode{NodeType: mdast.ListItemNode, NodeChildren: children}
}

func warningCodes(rpt diagnostic.Report) []diagnostic.WarningCode {
	codes := make([]diagnostic.WarningCode, len(rpt.Warnings))
	for i, w := range rpt.Warnings {
		codes[i] = w.Code
	}

	return codes
}

// A Resource carrying resource-level Parameters and one Action with a
// single Response whose body is an indented code block parses clean.
func TestParse_ResourceWithParametersAndResponse(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, "My Resource [/r/{id}]"),
		listItem("Parameters", listItem("id = `1234` (optional, number)")),
		header(2, "GET"),
		listItem("Response 200 (text/plain)", code("OK.\n")),
	)

	bp, rpt := blueprint.Parse(root, blueprint.Options{})

	require.Nil(t, rpt.Err)
	assert.Empty(t, rpt.Warnings)

	require.Len(t, bp.ResourceGroups, 1)
	require.Len(t, bp.ResourceGroups[0].Resources, 1)

	resource := bp.ResourceGroups[0].Resources[0]
	assert.Equal(t, "My Resource", resource.Name)
	assert.Equal(t, "/r/{id}", resource.URITemplate)
	assert.Equal(t, []blueprint.Parameter{{
		Name: "id", OldStyle: true, Default: "1234",
		Usage: blueprint.ParameterOptional, Type: "number",
	}}, resource.Parameters)

	require.Len(t, resource.Actions, 1)
	action := resource.Actions[0]
	assert.Equal(t, "GET", action.Method)
	require.Len(t, action.Examples, 1)
	require.Len(t, action.Examples[0].Responses, 1)

	response := action.Examples[0].Responses[0]
	assert.Equal(t, "200", response.Status)
	assert.Equal(t, []byte("OK.\n"), response.Body)
	require.NotNil(t, response.MediaType)
	assert.Equal(t, "text", response.MediaType.Type)
	assert.Equal(t, "plain", response.MediaType.Subtype)
}

// A Request body that isn't indented enough to nest under its `+
// Request` list item is recovered from the following sibling prose,
// with exactly one IndentationWarning, and the action still warns that
// it has no response.
func TestParse_RequestIndentationRecovery(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, "/1"),
		header(2, "GET"),
		listItem("Request"),
		para("p1"),
	)

	bp, rpt := blueprint.Parse(root, blueprint.Options{})

	require.Nil(t, rpt.Err)
	assert.Equal(t, []diagnostic.WarningCode{
		diagnostic.IndentationWarning,
		diagnostic.EmptyDefinitionWarning,
	}, warningCodes(rpt))

	resource := bp.ResourceGroups[0].Resources[0]
	require.Len(t, resource.Actions, 1)
	require.Len(t, resource.Actions[0].Examples, 1)
	require.Len(t, resource.Actions[0].Examples[0].Requests, 1)
	assert.Equal(t, []byte("p1\n\n"), resource.Actions[0].Examples[0].Requests[0].Body)
}

// A Parameter absent from its Resource's URI template warns once at
// resource level and once per Action, in declaration order; a
// Parameter the template does name is silent.
func TestParse_ParametersNotInURITemplateWarnPerLevel(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, "/resource/{id}"),
		listItem("Parameters", listItem("olive")),
		header(2, "GET"),
		listItem("Parameters", listItem("cheese"), listItem("id")),
		listItem("Response 204"),
	)

	bp, rpt := blueprint.Parse(root, blueprint.Options{})

	require.Nil(t, rpt.Err)
	require.Len(t, rpt.Warnings, 2)

	for _, w := range rpt.Warnings {
		assert.Equal(t, diagnostic.LogicalErrorWarning, w.Code)
	}

	assert.Contains(t, rpt.Warnings[0].Message, "olive")
	assert.Contains(t, rpt.Warnings[1].Message, "cheese")

	resource := bp.ResourceGroups[0].Resources[0]
	assert.Equal(t, []blueprint.Parameter{{Name: "olive", Usage: blueprint.ParameterOptional}}, resource.Parameters)

	require.Len(t, resource.Actions, 1)
	assert.Equal(t, []blueprint.Parameter{
		{Name: "cheese", Usage: blueprint.ParameterOptional},
		{Name: "id", Usage: blueprint.ParameterOptional},
	}, resource.Actions[0].Parameters)
}

// A Response's `[Name][]` reference resolves against a Model defined
// on another Resource, copying its body across with no warnings.
func TestParse_ModelReferenceResolves(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, "Message [/message]"),
		listItem("Model", code("AAA\n")),
		header(1, "Widget [/w]"),
		header(2, "GET"),
		listItem("Response 200", para("[Message][]")),
	)

	bp, rpt := blueprint.Parse(root, blueprint.Options{})

	require.Nil(t, rpt.Err)
	assert.Empty(t, rpt.Warnings)

	require.Len(t, bp.ResourceGroups[0].Resources, 2)
	widget := bp.ResourceGroups[0].Resources[1]
	assert.Equal(t, "Widget", widget.Name)

	require.Len(t, widget.Actions, 1)
	require.Len(t, widget.Actions[0].Examples, 1)
	require.Len(t, widget.Actions[0].Examples[0].Responses, 1)

	response := widget.Actions[0].Examples[0].Responses[0]
	assert.Equal(t, "Message", response.Reference)
	require.NotNil(t, response.Resolved)
	assert.Equal(t, []byte("AAA\n"), response.Body)
}

// A Response referencing a Model name that was never registered is a
// fatal SymbolError, but the rest of the tree is still populated.
func TestParse_UnresolvedModelReferenceIsFatal(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, "Posts [/posts]"),
		listItem("Model", code("BBB\n")),
		header(1, "Widget [/w]"),
		header(2, "GET"),
		listItem("Response 200", para("[Post][]")),
	)

	bp, rpt := blueprint.Parse(root, blueprint.Options{})

	require.NotNil(t, rpt.Err)
	assert.Equal(t, diagnostic.SymbolError, rpt.Err.Code)

	require.Len(t, bp.ResourceGroups[0].Resources, 2)
	widget := bp.ResourceGroups[0].Resources[1]
	require.Len(t, widget.Actions[0].Examples[0].Responses, 1)

	response := widget.Actions[0].Examples[0].Responses[0]
	assert.Equal(t, "Post", response.Reference)
	assert.Nil(t, response.Resolved)
}

// Two Actions at the same nominal header level are parsed as distinct
// siblings, each keeping its own description and each independently
// warning that it has no response.
func TestParse_SiblingActionsAtSameHeaderLevel(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, "/1"),
		header(1, "GET"),
		para("p1"),
		header(1, "POST"),
		para("p2"),
	)

	bp, rpt := blueprint.Parse(root, blueprint.Options{})

	require.Nil(t, rpt.Err)
	assert.Equal(t, []diagnostic.WarningCode{
		diagnostic.EmptyDefinitionWarning,
		diagnostic.EmptyDefinitionWarning,
	}, warningCodes(rpt))

	resource := bp.ResourceGroups[0].Resources[0]
	require.Len(t, resource.Actions, 2)

	assert.Equal(t, "GET", resource.Actions[0].Method)
	assert.Equal(t, "p1", resource.Actions[0].Description)
	assert.Equal(t, "POST", resource.Actions[1].Method)
	assert.Equal(t, "p2", resource.Actions[1].Description)
}
