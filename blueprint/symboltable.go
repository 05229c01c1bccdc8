package blueprint

// SymbolTable holds named models (registered from `+ Model` sections)
// and nameless resource-level models (keyed by resource name), for the
// two-pass forward-reference resolution spec §4.4 describes: every
// Payload collects its `[Name][]` reference during the first pass, and
// resolveModelReferences (blueprint/parse.go) resolves them after the
// whole document tree is built.
//
// Grounded on the teacher's two-pass anchor resolution
// (magicschema/generator.go's buildAnchorMap/resolveAliases): there, a
// map of YAML anchor name -> node is built before the tree is walked so
// aliases can resolve regardless of declaration order; here Data
// Structures entries are registered during the walk and resource Models
// right after it, and references are resolved only then, so a reference
// may name a model declared later in the document.
type SymbolTable struct {
	models         map[string]*Payload
	resourceModels map[string]*Payload
}

// NewSymbolTable returns an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		models:         make(map[string]*Payload),
		resourceModels: make(map[string]*Payload),
	}
}

// Register records a named model payload for later lookup. A name
// re-registered under the same key overwrites the earlier lookup entry,
// but both Payload values remain reachable through their owning product
// nodes (symbol-table entries are non-owning, per spec §3's lifecycle
// note).
func (st *SymbolTable) Register(name string, payload *Payload) {
	if name == "" {
		return
	}

	st.models[name] = payload
}

// RegisterResourceModel records a nameless resource-level model under
// the owning resource's name. [SymbolTable.Lookup] does not consult
// these entries, so a `[Name][]` reference never resolves to one.
func (st *SymbolTable) RegisterResourceModel(resourceName string, payload *Payload) {
	st.resourceModels[resourceName] = payload
}

// Lookup returns the named model payload, if any.
func (st *SymbolTable) Lookup(name string) (*Payload, bool) {
	p, ok := st.models[name]

	return p, ok
}
