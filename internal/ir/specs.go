package ir

import (
	"slices"

	"dslbuilder-generator/internal/common"
)

// Spec kinds used in errors.
const (
	specProperty  = "property"
	specParameter = "parameter"
	specFunction  = "function"
	specType      = "type"
	specTypeAlias = "type alias"
	specFile      = "file"
)

// PropertySpec declares a property of a type.
type PropertySpec struct {
	Name        string
	Type        TypeName
	Mutable     bool
	Modifiers   []Modifier
	Initializer *CodeBlock
	Doc         string
}

// Access returns the access modifier, public when none was set.
func (p PropertySpec) Access() Modifier { return accessOf(p.Modifiers) }

// ParameterSpec declares a function parameter.
type ParameterSpec struct {
	Name    string
	Type    TypeName
	Default *CodeBlock
	Vararg  bool
}

// FunctionSpec declares a function, or a method when owned by a TypeSpec.
type FunctionSpec struct {
	Name          string
	TypeVariables []TypeName
	Params        []ParameterSpec
	Returns       *TypeName
	Overridden    bool
	Modifiers     []Modifier
	Doc           string
	Annotations   []AnnotationSpec
	Statements    []Statement
}

// Access returns the access modifier, public when none was set.
func (f FunctionSpec) Access() Modifier { return accessOf(f.Modifiers) }

// TypeSpec declares a type.
type TypeSpec struct {
	Name          string
	SuperTypes    []TypeName
	TypeVariables []TypeName
	Modifiers     []Modifier
	Annotations   []AnnotationSpec
	Doc           string
	Properties    []PropertySpec
	Functions     []FunctionSpec
	Nested        []TypeSpec
}

// Function returns the function named name.
func (t TypeSpec) Function(name string) (FunctionSpec, bool) {
	for _, f := range t.Functions {
		if f.Name == name {
			return f, true
		}
	}

	return FunctionSpec{}, false
}

// Property returns the property named name.
func (t TypeSpec) Property(name string) (PropertySpec, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}

	return PropertySpec{}, false
}

// NestedType returns the nested type named name.
func (t TypeSpec) NestedType(name string) (TypeSpec, bool) {
	for _, n := range t.Nested {
		if n.Name == name {
			return n, true
		}
	}

	return TypeSpec{}, false
}

// TypeAliasSpec declares an alias of Type.
type TypeAliasSpec struct {
	Name          string
	Type          TypeName
	TypeVariables []TypeName
}

// Import is one (package, symbol) pair a file depends on.
type Import struct {
	Package string
	Symbol  string
}

// FileSpec is one generated source file.
type FileSpec struct {
	Package     string
	PackageName string
	Name        string
	Imports     []Import
	TypeAliases []TypeAliasSpec
	Types       []TypeSpec
	Functions   []FunctionSpec
}

// QualifiedName returns package.Name.
func (f FileSpec) QualifiedName() string {
	return ClassName(f.Package, f.Name).QualifiedName()
}

// ImportsPackage reports whether any import comes from pkg.
func (f FileSpec) ImportsPackage(pkg string) bool {
	return slices.ContainsFunc(f.Imports, func(i Import) bool { return i.Package == pkg })
}

// Imported reports whether symbol of pkg is imported.
func (f FileSpec) Imported(pkg, symbol string) bool {
	return slices.Contains(f.Imports, Import{Package: pkg, Symbol: symbol})
}

// --- builders ---

type stickyErr struct {
	err error
}

func (s *stickyErr) keep(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

type typedSpec struct {
	typ TypeName
	set bool
}

func (t *typedSpec) setType(spec, name string, typ TypeName) error {
	if t.set {
		return &AlreadySetError{Spec: spec, Name: name, Field: "type"}
	}

	t.typ = typ
	t.set = true

	return nil
}

// PropertyBuilder builds a PropertySpec.
type PropertyBuilder struct {
	stickyErr
	typedSpec
	modifierSet
	spec PropertySpec
}

// NewPropertyBuilder returns an empty PropertyBuilder.
func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{}
}

// Name sets the property name.
func (b *PropertyBuilder) Name(name string) *PropertyBuilder {
	b.spec.Name = name
	return b
}

// SetType assigns the property type. A second assignment fails with
// *AlreadySetError.
func (b *PropertyBuilder) SetType(t TypeName) error {
	return b.setType(specProperty, b.spec.Name, t)
}

// Type assigns the property type, keeping any error for Build.
func (b *PropertyBuilder) Type(t TypeName) *PropertyBuilder {
	b.keep(b.SetType(t))
	return b
}

// AddModifier adds m. A second access modifier fails with
// *DuplicateAccessModifierError.
func (b *PropertyBuilder) AddModifier(m Modifier) error {
	return b.add(specProperty, b.spec.Name, m)
}

// Modifier adds m, keeping any error for Build.
func (b *PropertyBuilder) Modifier(m Modifier) *PropertyBuilder {
	b.keep(b.AddModifier(m))
	return b
}

// Mutable marks the property as reassignable.
func (b *PropertyBuilder) Mutable() *PropertyBuilder {
	b.spec.Mutable = true
	return b
}

// Initializer sets the initial value.
func (b *PropertyBuilder) Initializer(c CodeBlock) *PropertyBuilder {
	b.keep(c.Validate())
	b.spec.Initializer = &c

	return b
}

// Doc sets the documentation.
func (b *PropertyBuilder) Doc(doc string) *PropertyBuilder {
	b.spec.Doc = doc
	return b
}

// Build validates and returns the spec.
func (b *PropertyBuilder) Build() (PropertySpec, error) {
	if b.err != nil {
		return PropertySpec{}, b.err
	}

	if b.spec.Name == "" {
		return PropertySpec{}, &MissingRequiredFieldError{Spec: specProperty, Field: "name"}
	}

	if !b.set {
		return PropertySpec{}, &MissingRequiredFieldError{Spec: specProperty, Name: b.spec.Name, Field: "type"}
	}

	spec := b.spec
	spec.Type = b.typ
	spec.Modifiers = slices.Clone(b.mods)

	return spec, nil
}

// ParameterBuilder builds a ParameterSpec.
type ParameterBuilder struct {
	stickyErr
	typedSpec
	spec ParameterSpec
}

// NewParameterBuilder returns an empty ParameterBuilder.
func NewParameterBuilder() *ParameterBuilder {
	return &ParameterBuilder{}
}

// Name sets the parameter name.
func (b *ParameterBuilder) Name(name string) *ParameterBuilder {
	b.spec.Name = name
	return b
}

// SetType assigns the parameter type. A second assignment fails with
// *AlreadySetError.
func (b *ParameterBuilder) SetType(t TypeName) error {
	return b.setType(specParameter, b.spec.Name, t)
}

// Type assigns the parameter type, keeping any error for Build.
func (b *ParameterBuilder) Type(t TypeName) *ParameterBuilder {
	b.keep(b.SetType(t))
	return b
}

// Default sets the value used when the caller omits the argument.
func (b *ParameterBuilder) Default(c CodeBlock) *ParameterBuilder {
	b.keep(c.Validate())
	b.spec.Default = &c

	return b
}

// Vararg makes the parameter accept any number of arguments of its type.
func (b *ParameterBuilder) Vararg() *ParameterBuilder {
	b.spec.Vararg = true
	return b
}

// Build validates and returns the spec.
func (b *ParameterBuilder) Build() (ParameterSpec, error) {
	if b.err != nil {
		return ParameterSpec{}, b.err
	}

	if b.spec.Name == "" {
		return ParameterSpec{}, &MissingRequiredFieldError{Spec: specParameter, Field: "name"}
	}

	if !b.set {
		return ParameterSpec{}, &MissingRequiredFieldError{Spec: specParameter, Name: b.spec.Name, Field: "type"}
	}

	spec := b.spec
	spec.Type = b.typ

	return spec, nil
}

// FunctionBuilder builds a FunctionSpec.
type FunctionBuilder struct {
	stickyErr
	modifierSet
	spec FunctionSpec
}

// NewFunctionBuilder returns an empty FunctionBuilder.
func NewFunctionBuilder() *FunctionBuilder {
	return &FunctionBuilder{}
}

// Name sets the function name.
func (b *FunctionBuilder) Name(name string) *FunctionBuilder {
	b.spec.Name = name
	return b
}

// TypeVariable declares a type parameter.
func (b *FunctionBuilder) TypeVariable(v TypeName) *FunctionBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, v)
	return b
}

// Param appends a built parameter.
func (b *FunctionBuilder) Param(p ParameterSpec) *FunctionBuilder {
	b.spec.Params = append(b.spec.Params, p)
	return b
}

// ParamBuilder builds p and appends it, keeping any error for Build.
func (b *FunctionBuilder) ParamBuilder(p *ParameterBuilder) *FunctionBuilder {
	spec, err := p.Build()
	if err != nil {
		b.keep(err)
		return b
	}

	return b.Param(spec)
}

// Returns sets the return type.
func (b *FunctionBuilder) Returns(t TypeName) *FunctionBuilder {
	if b.spec.Returns != nil {
		b.keep(&AlreadySetError{Spec: specFunction, Name: b.spec.Name, Field: "return type"})
		return b
	}

	b.spec.Returns = &t

	return b
}

// AddModifier adds m. A second access modifier fails with
// *DuplicateAccessModifierError.
func (b *FunctionBuilder) AddModifier(m Modifier) error {
	return b.add(specFunction, b.spec.Name, m)
}

// Modifier adds m, keeping any error for Build.
func (b *FunctionBuilder) Modifier(m Modifier) *FunctionBuilder {
	b.keep(b.AddModifier(m))
	return b
}

// Override marks the function as implementing a contract member.
func (b *FunctionBuilder) Override() *FunctionBuilder {
	b.spec.Overridden = true
	return b.Modifier(ModifierOverride)
}

// Doc sets the documentation.
func (b *FunctionBuilder) Doc(doc string) *FunctionBuilder {
	b.spec.Doc = doc
	return b
}

// Annotation appends an annotation.
func (b *FunctionBuilder) Annotation(a AnnotationSpec) *FunctionBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// Statement appends s after validating its code.
func (b *FunctionBuilder) Statement(s Statement) *FunctionBuilder {
	for _, c := range s.Codes() {
		b.keep(c.Validate())
	}

	b.spec.Statements = append(b.spec.Statements, s)

	return b
}

// Line appends a Line statement.
func (b *FunctionBuilder) Line(format string, args ...any) *FunctionBuilder {
	return b.Statement(Line{Code: Code(format, args...)})
}

// Return appends a Return statement.
func (b *FunctionBuilder) Return(format string, args ...any) *FunctionBuilder {
	return b.Statement(Return{Value: Code(format, args...)})
}

// Build validates and returns the spec.
func (b *FunctionBuilder) Build() (FunctionSpec, error) {
	if b.err != nil {
		return FunctionSpec{}, b.err
	}

	if b.spec.Name == "" {
		return FunctionSpec{}, &MissingRequiredFieldError{Spec: specFunction, Field: "name"}
	}

	spec := b.spec
	spec.Modifiers = slices.Clone(b.mods)
	spec.TypeVariables = slices.Clone(spec.TypeVariables)
	spec.Params = slices.Clone(spec.Params)
	spec.Annotations = slices.Clone(spec.Annotations)
	spec.Statements = slices.Clone(spec.Statements)

	return spec, nil
}

// TypeBuilder builds a TypeSpec.
type TypeBuilder struct {
	stickyErr
	modifierSet
	spec TypeSpec
}

// NewTypeBuilder returns an empty TypeBuilder.
func NewTypeBuilder() *TypeBuilder {
	return &TypeBuilder{}
}

// Name sets the type name.
func (b *TypeBuilder) Name(name string) *TypeBuilder {
	b.spec.Name = name
	return b
}

// SuperType declares a contract implemented by the type.
func (b *TypeBuilder) SuperType(t TypeName) *TypeBuilder {
	b.spec.SuperTypes = append(b.spec.SuperTypes, t)
	return b
}

// TypeVariable declares a type parameter.
func (b *TypeBuilder) TypeVariable(v TypeName) *TypeBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, v)
	return b
}

// AddModifier adds m. A second access modifier fails with
// *DuplicateAccessModifierError.
func (b *TypeBuilder) AddModifier(m Modifier) error {
	return b.add(specType, b.spec.Name, m)
}

// Modifier adds m, keeping any error for Build.
func (b *TypeBuilder) Modifier(m Modifier) *TypeBuilder {
	b.keep(b.AddModifier(m))
	return b
}

// Annotation appends an annotation.
func (b *TypeBuilder) Annotation(a AnnotationSpec) *TypeBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// Doc sets the documentation.
func (b *TypeBuilder) Doc(doc string) *TypeBuilder {
	b.spec.Doc = doc
	return b
}

// Property appends a property.
func (b *TypeBuilder) Property(p PropertySpec) *TypeBuilder {
	b.spec.Properties = append(b.spec.Properties, p)
	return b
}

// Function appends a function.
func (b *TypeBuilder) Function(f FunctionSpec) *TypeBuilder {
	b.spec.Functions = append(b.spec.Functions, f)
	return b
}

// Nested appends a nested type.
func (b *TypeBuilder) Nested(t TypeSpec) *TypeBuilder {
	b.spec.Nested = append(b.spec.Nested, t)
	return b
}

// Build validates and returns the spec.
func (b *TypeBuilder) Build() (TypeSpec, error) {
	if b.err != nil {
		return TypeSpec{}, b.err
	}

	if b.spec.Name == "" {
		return TypeSpec{}, &MissingRequiredFieldError{Spec: specType, Field: "name"}
	}

	spec := b.spec
	spec.Modifiers = slices.Clone(b.mods)
	spec.SuperTypes = slices.Clone(spec.SuperTypes)
	spec.TypeVariables = slices.Clone(spec.TypeVariables)
	spec.Annotations = slices.Clone(spec.Annotations)
	spec.Properties = slices.Clone(spec.Properties)
	spec.Functions = slices.Clone(spec.Functions)
	spec.Nested = slices.Clone(spec.Nested)

	return spec, nil
}

// TypeAliasBuilder builds a TypeAliasSpec.
type TypeAliasBuilder struct {
	stickyErr
	typedSpec
	spec TypeAliasSpec
}

// NewTypeAliasBuilder returns an empty TypeAliasBuilder.
func NewTypeAliasBuilder() *TypeAliasBuilder {
	return &TypeAliasBuilder{}
}

// Name sets the alias name.
func (b *TypeAliasBuilder) Name(name string) *TypeAliasBuilder {
	b.spec.Name = name
	return b
}

// SetType assigns the aliased type. A second assignment fails with
// *AlreadySetError.
func (b *TypeAliasBuilder) SetType(t TypeName) error {
	return b.setType(specTypeAlias, b.spec.Name, t)
}

// Type assigns the aliased type, keeping any error for Build.
func (b *TypeAliasBuilder) Type(t TypeName) *TypeAliasBuilder {
	b.keep(b.SetType(t))
	return b
}

// TypeVariable declares a type parameter.
func (b *TypeAliasBuilder) TypeVariable(v TypeName) *TypeAliasBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, v)
	return b
}

// Build validates and returns the spec.
func (b *TypeAliasBuilder) Build() (TypeAliasSpec, error) {
	if b.err != nil {
		return TypeAliasSpec{}, b.err
	}

	if b.spec.Name == "" {
		return TypeAliasSpec{}, &MissingRequiredFieldError{Spec: specTypeAlias, Field: "name"}
	}

	if !b.set {
		return TypeAliasSpec{}, &MissingRequiredFieldError{Spec: specTypeAlias, Name: b.spec.Name, Field: "type"}
	}

	spec := b.spec
	spec.Type = b.typ
	spec.TypeVariables = slices.Clone(spec.TypeVariables)

	return spec, nil
}

// FileBuilder builds a FileSpec.
type FileBuilder struct {
	stickyErr
	spec    FileSpec
	nameSet bool
}

// NewFileBuilder returns an empty FileBuilder.
func NewFileBuilder() *FileBuilder {
	return &FileBuilder{}
}

// ClassName sets the qualified name of the file. It may be set once.
func (b *FileBuilder) ClassName(pkg, name string) *FileBuilder {
	if b.nameSet {
		b.keep(&AlreadySetError{Spec: specFile, Name: b.spec.Name, Field: "qualified name"})
		return b
	}

	b.spec.Package = pkg
	b.spec.Name = name
	b.nameSet = true

	return b
}

// PackageName overrides the package clause, which defaults to the last
// element of the package path.
func (b *FileBuilder) PackageName(name string) *FileBuilder {
	b.spec.PackageName = name
	return b
}

// TypeAlias appends a type alias.
func (b *FileBuilder) TypeAlias(a TypeAliasSpec) *FileBuilder {
	b.spec.TypeAliases = append(b.spec.TypeAliases, a)
	return b
}

// Type appends a type.
func (b *FileBuilder) Type(t TypeSpec) *FileBuilder {
	b.spec.Types = append(b.spec.Types, t)
	return b
}

// Function appends a top-level function.
func (b *FileBuilder) Function(f FunctionSpec) *FileBuilder {
	b.spec.Functions = append(b.spec.Functions, f)
	return b
}

// Build validates the spec and computes its imports.
func (b *FileBuilder) Build() (FileSpec, error) {
	if b.err != nil {
		return FileSpec{}, b.err
	}

	if !b.nameSet || b.spec.Name == "" || b.spec.Package == "" {
		return FileSpec{}, &MissingRequiredFieldError{Spec: specFile, Name: b.spec.Name, Field: "qualified name"}
	}

	spec := b.spec
	if spec.PackageName == "" {
		spec.PackageName = common.PackageName(spec.Package)
	}

	spec.TypeAliases = slices.Clone(spec.TypeAliases)
	spec.Types = slices.Clone(spec.Types)
	spec.Functions = slices.Clone(spec.Functions)
	spec.Imports = collectImports(spec)

	return spec, nil
}
