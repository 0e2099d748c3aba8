package gen

import (
	"go/token"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"derive-generator/internal/schema"
)

// DefaultRuntimePath is the import path of the runtime helper package.
const DefaultRuntimePath = "derive-generator/derive"

// Identifiers used inside generated function bodies.
const (
	selfParam  = "v"
	otherParam = "other"
	hashParam  = "h"
	kindField  = schema.KindFieldName
)

// Target names the Go identifiers generated code refers to for one type.
type Target struct {
	Schema *schema.TypeSchema
	// Runtime is the import path of the runtime helper package.
	Runtime string
}

// NewTarget returns a Target using the default runtime path when runtime is
// empty.
func NewTarget(t *schema.TypeSchema, runtime string) Target {
	if runtime == "" {
		runtime = DefaultRuntimePath
	}

	return Target{Schema: t, Runtime: runtime}
}

// Name is the type name.
func (t Target) Name() string {
	return t.Schema.Name
}

// Type renders the instantiated type, e.g. Test[T].
func (t Target) Type() *jen.Statement {
	return jen.Id(t.Schema.Name).Add(t.typeArgs())
}

// Literal renders a composite literal of the type.
func (t Target) Literal(values ...jen.Code) *jen.Statement {
	return t.Type().Values(values...)
}

func (t Target) typeArgs() *jen.Statement {
	if !t.Schema.HasGenerics() {
		return jen.Null()
	}

	args := make([]jen.Code, len(t.Schema.Generics))
	for i, g := range t.Schema.Generics {
		args[i] = jen.Id(g.Name)
	}

	return jen.Types(args...)
}

// KindType is the name of the enum's discriminant type.
func (t Target) KindType() string {
	return t.Schema.Name + kindField
}

// KindConst is the name of the discriminant constant of a variant.
func (t Target) KindConst(variant string) string {
	return t.KindType() + inflect.Camelize(variant)
}

// PayloadType is the name of a variant's payload struct.
func (t Target) PayloadType(variant string) string {
	return t.Schema.Name + inflect.Camelize(variant)
}

// Payload renders the instantiated payload type of a variant.
func (t Target) Payload(variant string) *jen.Statement {
	return jen.Id(t.PayloadType(variant)).Add(t.typeArgs())
}

// FuncName returns the free function name for prefix, keeping the type's
// exportedness: CompareTest for Test, compareTest for test.
func (t Target) FuncName(prefix string) string {
	name := prefix + inflect.Camelize(t.Schema.Name)
	if token.IsExported(t.Schema.Name) {
		return name
	}

	return inflect.CamelizeDownFirst(name)
}

// Qual renders a reference to a runtime helper.
func (t Target) Qual(name string) *jen.Statement {
	return jen.Qual(t.Runtime, name)
}

// access renders the selector of a field in an arm, rooted at the receiver
// or the other operand.
func (t Target) access(root string, arm schema.Arm, f schema.FieldRef) *jen.Statement {
	s := jen.Id(root)
	if arm.IsVariant() {
		s = s.Dot(arm.Variant)
	}

	return s.Dot(f.Accessor)
}

// selfAlias and otherAlias name the per-field locals of a body.
func selfAlias(f schema.FieldRef) string {
	return "self" + inflect.Camelize(f.Key)
}

func otherAlias(f schema.FieldRef) string {
	return "other" + inflect.Camelize(f.Key)
}
