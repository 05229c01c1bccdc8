package blueprint

import (
	"strings"

	"github.com/SMillerDev/drafter/internal/classify"
	"github.com/SMillerDev/drafter/internal/diagnostic"
	"github.com/SMillerDev/drafter/internal/section"
	"github.com/SMillerDev/drafter/internal/signature"
	"github.com/SMillerDev/drafter/mdast"
)

// resourceGroupProcessor implements section.Processor[ResourceGroup].
type resourceGroupProcessor struct{}

func (resourceGroupProcessor) SectionType() classify.SectionType { return classify.ResourceGroupSection }

func (resourceGroupProcessor) SignatureTraits() signature.Trait { return signature.Identifier }

func (resourceGroupProcessor) ParseSignature(_ mdast.Node, _ *section.Data, sig signature.Signature, out *ResourceGroup, _ *diagnostic.Report) bool {
	text := strings.TrimSpace(sig.Identifier)
	text = strings.TrimPrefix(text, "Group")
	text = strings.TrimPrefix(text, "group")

	out.Name = strings.TrimSpace(text)

	return true
}

func (resourceGroupProcessor) AcceptsDescription() bool { return true }

func (resourceGroupProcessor) NestedSectionTypes() []classify.SectionType {
	return []classify.SectionType{classify.ResourceSection}
}

func (resourceGroupProcessor) ProcessNested(cur section.Cursor, _ classify.SectionType, pd *section.Data, out *ResourceGroup, rpt *diagnostic.Report) section.Cursor {
	next, resource, resourceReport, ok := section.Drive(cur, pd, resourceProcessor{})
	rpt.Merge(resourceReport)

	if !ok {
		return cur.Advance(1)
	}

	for _, existing := range out.Resources {
		if existing.URITemplate != "" && existing.URITemplate == resource.URITemplate {
			rpt.Warn(diagnostic.RedefinitionWarning, "resource URI template \""+resource.URITemplate+"\" is redefined", nil)

			break
		}
	}

	out.Resources = append(out.Resources, resource)

	return next
}

func (resourceGroupProcessor) Finalize(*section.Data, *ResourceGroup, *diagnostic.Report) {}
