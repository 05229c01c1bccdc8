// Package blueprint is the core of drafter: the data model for a parsed
// API Blueprint document (spec §3), the generic section driver that
// walks a Markdown AST into it (spec §4.3), and the per-section
// processors (spec §4.4-§4.7) built on that driver. [Parse] is the
// module's external entry point (spec §6).
package blueprint

import "github.com/SMillerDev/drafter/mson"

// Metadata is one `key: value` line from the Blueprint's leading
// metadata block.
type Metadata struct {
	Key   string
	Value string
}

// Blueprint is the full parsed document (spec §3).
type Blueprint struct {
	Metadata       []Metadata
	Name           string
	Description    string
	ResourceGroups []ResourceGroup
	Symbols        *SymbolTable
}

// ResourceGroup is a named or implicit grouping of Resources.
type ResourceGroup struct {
	Name        string
	Description string
	Resources   []Resource
}

// Resource is an HTTP endpoint identified by a URI template.
type Resource struct {
	URITemplate string
	Name        string
	Description string
	Headers     Headers
	Parameters  []Parameter
	Model       *Payload
	Actions     []Action
	Attributes  *mson.TypeSection
}

// Action is a single HTTP method on a Resource.
type Action struct {
	Method      string
	Name        string
	Description string
	Parameters  []Parameter
	Headers     Headers
	Examples    []TransactionExample
	Relation    string
	Attributes  *mson.TypeSection
}

// TransactionExample groups one or more Requests and Responses
// representing one request/response interaction.
type TransactionExample struct {
	Name        string
	Description string
	Requests    []Payload
	Responses   []Payload
}

// Payload is the body-bearing part of a Request, Response, or Model.
type Payload struct {
	Name        string
	Description string
	Status      string // HTTP status for a Response; method-specific usage otherwise.
	Headers     Headers
	Body        []byte
	Schema      []byte
	Attributes  *mson.TypeSection
	Reference   string   // the `[Name][]` this payload referenced, if any.
	Resolved    *Payload // the Model this payload's reference resolved to, once resolved.
	MediaType   *MediaType
}

// MediaType is a parsed `(type/subtype+suffix; params)` media type, per
// RFC 6838.
type MediaType struct {
	Type       string
	Subtype    string
	Suffix     string
	Parameters map[string]string
}

// Empty reports whether mt carries neither a type nor a subtype.
func (mt *MediaType) Empty() bool {
	return mt == nil || (mt.Type == "" && mt.Subtype == "")
}

// ParameterUsage is whether a Parameter is required or optional.
type ParameterUsage int

const (
	ParameterOptional ParameterUsage = iota
	ParameterRequired
)

// Parameter is one entry of a Parameters section.
type Parameter struct {
	Name        string
	Description string
	Type        string
	Usage       ParameterUsage
	Default     string
	Example     string
	Values      []string
	OldStyle    bool // true if parsed via the deprecated "name = value" syntax.
}

// Header is one name/value pair of a Headers section. Names preserve
// case; comparison for uniqueness is case-insensitive (spec §3).
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered sequence of [Header].
type Headers []Header

// SetDescription implements the section driver's descriptionSetter
// contract (internal/section.Drive), letting the generic driver
// accumulate a node's Markdown description without every product type
// needing a shared base type.
func (b *Blueprint) SetDescription(d string) { b.Description = d }

// SetDescription implements the section driver's descriptionSetter contract.
func (g *ResourceGroup) SetDescription(d string) { g.Description = d }

// SetDescription implements the section driver's descriptionSetter contract.
func (r *Resource) SetDescription(d string) { r.Description = d }

// SetDescription implements the section driver's descriptionSetter contract.
func (a *Action) SetDescription(d string) { a.Description = d }

// SetDescription implements the section driver's descriptionSetter contract.
func (p *Payload) SetDescription(d string) { p.Description = d }

// ParametersResult wraps the product of a Parameters section so it can
// be driven by the generic section driver, which always returns a
// single value by pointer.
type ParametersResult struct {
	Parameters []Parameter
}

// HeadersResult wraps the product of a Headers section for the same
// reason as [ParametersResult].
type HeadersResult struct {
	Headers Headers
}
