package mson

import "github.com/google/jsonschema-go/jsonschema"

// ToJSONSchema exports a resolved Attributes/Data-Structures TypeSection
// tree as a JSON Schema document. Only the MSON inheritance/resolution
// pass (external per spec §1) is assumed to have already run: mixins
// and `One Of` groups here are taken as already-flattened when present,
// and are rendered with allOf/oneOf as a best-effort projection.
//
// Grounded on the teacher's TrueSchema/FalseSchema/ToSubSchema family
// (magicschema/helpers.go): this module reuses the same "degenerate
// schema" constants and the same json-schema-go types, generalized from
// YAML-node inference to MSON-tree export.
func ToJSONSchema(ts *TypeSection) *jsonschema.Schema {
	if ts == nil {
		return TrueSchema()
	}

	switch ts.Tag {
	case SampleTag, DefaultTag:
		return sampleDefaultSchema(ts)
	case MemberTypeTag:
		return membersSchema(ts)
	default:
		return TrueSchema()
	}
}

func sampleDefaultSchema(ts *TypeSection) *jsonschema.Schema {
	if ts.BaseType == PrimitiveBaseType {
		return &jsonschema.Schema{
			Examples: []any{ts.Value},
		}
	}

	return membersSchema(ts)
}

func membersSchema(ts *TypeSection) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:                 "object",
		Properties:           make(map[string]*jsonschema.Schema),
		AdditionalProperties: TrueSchema(),
	}

	var required []string

	for _, m := range ts.Members {
		memberSchema(schema, &required, m)
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}

	schema.Required = required

	return schema
}

func memberSchema(parent *jsonschema.Schema, required *[]string, m MemberType) {
	switch m.Variant {
	case PropertyMember:
		child := memberTypeSchema(m)
		parent.Properties[m.Name] = child

		if m.Type.Required {
			*required = append(*required, m.Name)
		}
	case ValueMember:
		// A bare value member in an Array/Enum's Items/Members list
		// contributes to the parent's "items" schema, not its
		// properties; callers building an array schema should use
		// [ItemsSchema] instead of this path for that case. When
		// nested directly under an object's Properties (malformed
		// input), fall back to treating it as an anonymous property.
		if m.Name != "" {
			parent.Properties[m.Name] = memberTypeSchema(m)
		}
	case MixinMember:
		parent.AllOf = append(parent.AllOf, &jsonschema.Schema{Ref: "#/$defs/" + m.MixinReference})
	case OneOfMember:
		for _, branch := range m.OneOfBranches {
			branchSchema := &jsonschema.Schema{
				Type:       "object",
				Properties: make(map[string]*jsonschema.Schema),
			}

			var branchRequired []string

			for _, bm := range branch {
				memberSchema(branchSchema, &branchRequired, bm)
			}

			branchSchema.Required = branchRequired
			parent.OneOf = append(parent.OneOf, branchSchema)
		}
	case GroupMember:
		// A bare Group member (spec §3's MemberVariant.Group) has no
		// direct JSON Schema projection; its own NestedSections are
		// folded into the parent via memberTypeSchema's recursion.
		child := memberTypeSchema(m)
		if len(child.Properties) > 0 {
			for k, v := range child.Properties {
				parent.Properties[k] = v
			}
		}
	}
}

// ItemsSchema projects an Array/Enum TypeSection's Items/Members into an
// `items` schema, widening across heterogeneous value members.
func ItemsSchema(ts *TypeSection) *jsonschema.Schema {
	if ts == nil || len(ts.Members) == 0 {
		return TrueSchema()
	}

	var schemas []*jsonschema.Schema

	for _, m := range ts.Members {
		schemas = append(schemas, memberTypeSchema(m))
	}

	if len(schemas) == 1 {
		return schemas[0]
	}

	return &jsonschema.Schema{AnyOf: schemas}
}

func memberTypeSchema(m MemberType) *jsonschema.Schema {
	schema := &jsonschema.Schema{}

	if m.Type.TypeName != "" {
		schema.Type = jsonType(m.Type.TypeName)
	}

	if m.Description != "" {
		schema.Description = m.Description
	}

	for _, ns := range m.NestedSections {
		switch ns.Tag {
		case BlockDescriptionTag:
			if schema.Description == "" {
				schema.Description = ns.Description
			}
		case SampleTag:
			schema.Examples = append(schema.Examples, ToJSONSchema(&ns).Examples...)
		case DefaultTag:
			if ns.BaseType == PrimitiveBaseType {
				schema.Default = []byte(`"` + ns.Value + `"`)
			}
		case MemberTypeTag:
			switch schema.Type {
			case "array":
				schema.Items = ItemsSchema(&ns)
			default:
				nested := membersSchema(&ns)
				schema.Properties = nested.Properties
				schema.Required = nested.Required

				if schema.Type == "" {
					schema.Type = "object"
				}
			}
		}
	}

	return schema
}

func jsonType(msonType string) string {
	switch msonType {
	case "boolean", "number", "string", "array", "object":
		return msonType
	case "enum":
		return ""
	default:
		return ""
	}
}
