// Package mson implements the MSON (Markdown Schema Object Notation)
// core (spec §4.8): a recursive tree of [TypeSection] and [MemberType]
// nodes parsed from Attributes/Data Structures sections, plus
// [ToJSONSchema] to export a resolved tree as a JSON Schema document.
package mson

import "github.com/google/jsonschema-go/jsonschema"

// TypeSectionTag distinguishes the four shapes a TypeSection's content
// can take.
type TypeSectionTag int

const (
	BlockDescriptionTag TypeSectionTag = iota
	MemberTypeTag
	SampleTag
	DefaultTag
)

// BaseType is the base type underlying a TypeSection or MemberType's
// type definition.
type BaseType int

const (
	ImplicitBaseType BaseType = iota
	PrimitiveBaseType
	ValueBaseType
	ObjectBaseType
)

// TypeSection is one nested section of a MemberType: a block
// description, a Default/Sample leaf value (or, for Value base types, a
// list of synthesized members), or a nested member list (Properties /
// Items / Members).
type TypeSection struct {
	Tag      TypeSectionTag
	BaseType BaseType

	// Description is the raw text of a BlockDescriptionTag section.
	Description string

	// Value is the scalar leaf value of a Sample/Default section whose
	// BaseType is Primitive.
	Value string

	// Members holds either the synthesized members of a Sample/Default
	// section whose BaseType is Value, or the nested elements of a
	// Properties/Items/Members section.
	Members []MemberType
}

// MemberVariant distinguishes the five MemberType shapes spec §3 names.
type MemberVariant int

const (
	PropertyMember MemberVariant = iota
	ValueMember
	MixinMember
	OneOfMember
	GroupMember
)

// TypeDefinition is a member's type name, attribute flags, and value
// restrictions, as parsed from its signature (spec §4.1, §4.8).
type TypeDefinition struct {
	TypeName    string
	NestedNames []string // populated for Array[T] / Enum[T].
	Required    bool
	Optional    bool
	HasDefault  bool
	HasSample   bool
	Nullable    bool
	FixedValue  bool
}

// MemberType is one property, value, mixin, or group element of an
// Object, Array, or Enum's members.
type MemberType struct {
	Variant        MemberVariant
	Name           string
	Description    string
	Type           TypeDefinition
	NestedSections []TypeSection

	// MixinReference is the type name an `Include X` mixin member
	// refers to; populated only when Variant == MixinMember.
	MixinReference string

	// OneOfBranches holds the alternative MemberType lists of a
	// `One Of` group; populated only when Variant == OneOfMember.
	OneOfBranches [][]MemberType
}

// TrueSchema returns a schema that validates everything.
func TrueSchema() *jsonschema.Schema { return &jsonschema.Schema{} }

// FalseSchema returns a schema that validates nothing.
func FalseSchema() *jsonschema.Schema { return &jsonschema.Schema{Not: &jsonschema.Schema{}} }
