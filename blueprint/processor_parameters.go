package blueprint

import (
	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
)

// parametersProcessor implements section.Processor[ParametersResult] for
// a `+ Parameters` wrapper list item, whose children are each driven
// through [parameterProcessor].
type parametersProcessor struct{}

func (parametersProcessor) SectionType() classify.SectionType { return classify.ParametersSection }

func (parametersProcessor) SignatureTraits() signature.Trait { return signature.Identifier }

func (parametersProcessor) ParseSignature(mdast.Node, *section.Data, signature.Signature, *ParametersResult, *diagnostic.Report) bool {
	return true
}

func (parametersProcessor) AcceptsDescription() bool { return false }

func (parametersProcessor) NestedSectionTypes() []classify.SectionType {
	return []classify.SectionType{classify.ParameterSection}
}

// ProcessNested drives the individual `+ id (...)` node through
// [parameterProcessor] scoped to that node's own children: a Parameter's
// own nested Default/Members live there, not as further entries of cur,
// which belongs to the enclosing Parameters list and must advance past
// exactly one Parameter regardless of what the inner Drive consumed.
func (parametersProcessor) ProcessNested(cur section.Cursor, typ classify.SectionType, pd *section.Data, out *ParametersResult, rpt *diagnostic.Report) section.Cursor {
	node := cur.Node()

	_, param, paramReport, ok := section.Drive(section.Cursor{Nodes: node.Children()}, pd, parameterProcessor{})
	rpt.Merge(paramReport)

	if ok {
		out.Parameters = append(out.Parameters, param)
	}

	return cur.Advance(1)
}

func (parametersProcessor) Finalize(*section.Data, *ParametersResult, *diagnostic.Report) {}

// ParseParameters drives a classified `+ Parameters` node's children into
// an ordered slice of [Parameter].
func ParseParameters(node mdast.Node, pd *section.Data) ([]Parameter, diagnostic.Report) {
	cur := section.Cursor{Nodes: node.Children()}

	_, result, rpt, _ := section.Drive(cur, pd, parametersProcessor{})

	return result.Parameters, rpt
}
