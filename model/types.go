// Package model is the structural description of a class consumed by the
// generator: constants, methods, parameter and return types, generics and
// documentation. Models are produced by an external extraction stage and are
// never mutated during generation.
package model

import (
	"strings"

	"github.com/teranos/mutigen/errors"
)

// Kind tags the category of a TypeInfo
type Kind int

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindBoxed
	KindString
	KindEnum
	KindClass
	KindTypeVar
	KindParameterized
	KindHandler      // callback receiving a single value
	KindErrorHandler // callback receiving a failure
	KindFuture
	KindStream
	KindVoid
)

var kindNames = map[Kind]string{
	KindPrimitive:     "primitive",
	KindBoxed:         "boxed",
	KindString:        "string",
	KindEnum:          "enum",
	KindClass:         "class",
	KindTypeVar:       "typevar",
	KindParameterized: "parameterized",
	KindHandler:       "handler",
	KindErrorHandler:  "error_handler",
	KindFuture:        "future",
	KindStream:        "stream",
	KindVoid:          "void",
}

// Kinds lists every valid kind in declaration order
func Kinds() []Kind {
	return []Kind{
		KindPrimitive, KindBoxed, KindString, KindEnum, KindClass, KindTypeVar,
		KindParameterized, KindHandler, KindErrorHandler, KindFuture, KindStream, KindVoid,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// MarshalText implements encoding.TextMarshaler (used by YAML, TOML and JSON)
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.InvalidModelf("cannot marshal invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return errors.InvalidModelf("unknown type kind %q", string(text))
}

// TypeInfo describes one type occurring in a signature
type TypeInfo struct {
	Kind Kind `yaml:"kind" toml:"kind" json:"kind"`

	// Name is the simple name: "int", "Integer", "Buffer", "T", "List"
	Name string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`

	// Package qualifies enums, classes and parameterized raw types
	Package string `yaml:"package,omitempty" toml:"package,omitempty" json:"package,omitempty"`

	// API marks a class (or raw parameterized type) that is itself under
	// generation; references are rewritten to the generated counterpart.
	API bool `yaml:"api,omitempty" toml:"api,omitempty" json:"api,omitempty"`

	// Args are the type arguments of parameterized, handler, future and stream kinds
	Args []TypeInfo `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`
}

// QualifiedName returns Package.Name, or Name when there is no package
func (t TypeInfo) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Arg returns the i-th type argument, or the zero TypeInfo when absent
func (t TypeInfo) Arg(i int) TypeInfo {
	if i < 0 || i >= len(t.Args) {
		return TypeInfo{}
	}
	return t.Args[i]
}

// Raw is the qualified raw name in the original API, with defaults for the
// callback, future and stream kinds when the extractor left them unnamed
func (t TypeInfo) Raw() string {
	switch t.Kind {
	case KindHandler, KindErrorHandler:
		return orDefault(t.QualifiedName(), "io.vertx.core.Handler")
	case KindFuture:
		return orDefault(t.QualifiedName(), "io.vertx.core.Future")
	case KindStream:
		return orDefault(t.QualifiedName(), "io.vertx.core.streams.ReadStream")
	case KindString:
		return "java.lang.String"
	case KindVoid:
		return "void"
	default:
		return t.QualifiedName()
	}
}

// String renders the original type in source form, e.g.
// io.vertx.core.Handler<io.vertx.core.buffer.Buffer>
func (t TypeInfo) String() string {
	switch t.Kind {
	case KindErrorHandler:
		return t.Raw() + "<java.lang.Throwable>"
	case KindParameterized, KindHandler, KindFuture, KindStream:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		return t.Raw() + "<" + strings.Join(args, ",") + ">"
	default:
		return t.Raw()
	}
}

// Erasure renders the erased original type, used for overload keys. Type
// variables erase to java.lang.Object; use ErasureIn when bounds are known.
func (t TypeInfo) Erasure() string {
	return t.ErasureIn()
}

// ErasureIn erases t with type variables resolved against scopes, innermost
// first. A bounded variable erases to the erasure of its first bound.
func (t TypeInfo) ErasureIn(scopes ...[]TypeParam) string {
	if t.Kind != KindTypeVar {
		return t.Raw()
	}
	return eraseVar(t.Name, scopes, make(map[string]bool))
}

func eraseVar(name string, scopes [][]TypeParam, seen map[string]bool) string {
	if seen[name] {
		return "java.lang.Object"
	}
	seen[name] = true
	tp, ok := LookupTypeParam(name, scopes...)
	if !ok || len(tp.Bounds) == 0 {
		return "java.lang.Object"
	}
	if b := tp.Bounds[0]; b.Kind == KindTypeVar {
		return eraseVar(b.Name, scopes, seen)
	}
	return tp.Bounds[0].Raw()
}

// LookupTypeParam finds the declaration of a type variable, searching scopes
// innermost first
func LookupTypeParam(name string, scopes ...[]TypeParam) (TypeParam, bool) {
	for _, scope := range scopes {
		for _, tp := range scope {
			if tp.Name == name {
				return tp, true
			}
		}
	}
	return TypeParam{}, false
}

// IsCallback reports whether the type is a handler of either flavour
func (t TypeInfo) IsCallback() bool {
	return t.Kind == KindHandler || t.Kind == KindErrorHandler
}

// TypeParam is a generic type variable with optional bounds
type TypeParam struct {
	Name   string     `yaml:"name" toml:"name" json:"name"`
	Bounds []TypeInfo `yaml:"bounds,omitempty" toml:"bounds,omitempty" json:"bounds,omitempty"`
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
