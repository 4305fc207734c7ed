// Package types implements the type domain of spec.md §4.5: the six
// value kinds the checker reasons about, and the compatibility rule
// between them.
package types

import "strings"

// Kind is one of the six value kinds in the type domain.
type Kind int

const (
	Void Kind = iota
	Int
	Float
	String
	Func
	Instance
)

// Type is Void|Int|Float|String|Func or Instance(ClassName). Class carries
// the declaring class identifier (as spelled in source) for Instance; it
// is empty for every other kind.
type Type struct {
	Kind  Kind
	Class string
}

var (
	TVoid   = Type{Kind: Void}
	TInt    = Type{Kind: Int}
	TFloat  = Type{Kind: Float}
	TString = Type{Kind: String}
	TFunc   = Type{Kind: Func}
)

// NewInstance returns the Instance(className) type.
func NewInstance(className string) Type { return Type{Kind: Instance, Class: className} }

func (t Type) String() string {
	switch t.Kind {
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Func:
		return "func"
	case Instance:
		return "instance<" + t.Class + ">"
	default:
		return "?"
	}
}

// Compatible implements spec.md §4.5's compatibility rule: equal-type,
// except both-Instance, which is always compatible regardless of class.
func Compatible(a, b Type) bool {
	if a.Kind == Instance && b.Kind == Instance {
		return true
	}
	return a.Kind == b.Kind
}

// LookupPrimitive resolves a case-insensitive primitive type name, per
// spec.md §4.5 "Primitive type identifiers": int, float, string, void.
func LookupPrimitive(name string) (Type, bool) {
	switch strings.ToLower(name) {
	case "int":
		return TInt, true
	case "float":
		return TFloat, true
	case "string":
		return TString, true
	case "void":
		return TVoid, true
	default:
		return Type{}, false
	}
}
