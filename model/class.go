package model

import (
	"strings"
)

// ClassModel is one class under generation
type ClassModel struct {
	// Name is the qualified name of the original class (io.vertx.core.Vertx)
	Name       string         `yaml:"name" toml:"name" json:"name"`
	TypeParams []TypeParam    `yaml:"type_params,omitempty" toml:"type_params,omitempty" json:"type_params,omitempty"`
	Constants  []ConstantInfo `yaml:"constants,omitempty" toml:"constants,omitempty" json:"constants,omitempty"`
	// Methods is the complete ordered method list, inherited methods included
	Methods    []MethodInfo `yaml:"methods,omitempty" toml:"methods,omitempty" json:"methods,omitempty"`
	Supertypes []TypeInfo   `yaml:"supertypes,omitempty" toml:"supertypes,omitempty" json:"supertypes,omitempty"`
	// Concrete is false for interfaces and abstract classes
	Concrete bool `yaml:"concrete" toml:"concrete" json:"concrete"`
	Doc      *Doc `yaml:"doc,omitempty" toml:"doc,omitempty" json:"doc,omitempty"`
}

// Package returns the package part of the qualified name
func (c ClassModel) Package() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[:i]
	}
	return ""
}

// SimpleName returns the unqualified class name
func (c ClassModel) SimpleName() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// Type returns the TypeInfo referring to this class as an API type,
// parameterized over its own type variables when generic.
func (c ClassModel) Type() TypeInfo {
	t := TypeInfo{Kind: KindClass, Name: c.SimpleName(), Package: c.Package(), API: true}
	if len(c.TypeParams) == 0 {
		return t
	}
	t.Kind = KindParameterized
	for _, tp := range c.TypeParams {
		t.Args = append(t.Args, TypeVar(tp.Name))
	}
	return t
}

// ConstantInfo is a static constant of the class
type ConstantInfo struct {
	Name string   `yaml:"name" toml:"name" json:"name"`
	Type TypeInfo `yaml:"type" toml:"type" json:"type"`
	// Accessor is the path to the original value; empty means <Owner>.<Name>
	Accessor string `yaml:"accessor,omitempty" toml:"accessor,omitempty" json:"accessor,omitempty"`
	Doc      *Doc   `yaml:"doc,omitempty" toml:"doc,omitempty" json:"doc,omitempty"`
}

// AccessorPath returns the qualified accessor path into the original type
func (c ConstantInfo) AccessorPath(owner ClassModel) string {
	if c.Accessor != "" {
		return c.Accessor
	}
	return owner.Name + "." + c.Name
}

// ParamInfo is one method parameter
type ParamInfo struct {
	Name string   `yaml:"name" toml:"name" json:"name"`
	Type TypeInfo `yaml:"type" toml:"type" json:"type"`
}

// MethodInfo is one method (overloads are separate entries)
type MethodInfo struct {
	Name       string      `yaml:"name" toml:"name" json:"name"`
	Params     []ParamInfo `yaml:"params,omitempty" toml:"params,omitempty" json:"params,omitempty"`
	Return     TypeInfo    `yaml:"return" toml:"return" json:"return"`
	TypeParams []TypeParam `yaml:"type_params,omitempty" toml:"type_params,omitempty" json:"type_params,omitempty"`
	Static     bool        `yaml:"static,omitempty" toml:"static,omitempty" json:"static,omitempty"`
	Doc        *Doc        `yaml:"doc,omitempty" toml:"doc,omitempty" json:"doc,omitempty"`
}

// SignatureKey is the overload-disambiguating key: name plus erased original
// parameter types, e.g. connect(java.lang.String,int,io.vertx.core.Handler,io.vertx.core.Handler)
func (m MethodInfo) SignatureKey() string {
	return m.SignatureKeyIn(nil)
}

// SignatureKeyIn is SignatureKey with type variables of the owning class in
// scope, so bounded variables erase to their bound
func (m MethodInfo) SignatureKeyIn(classParams []TypeParam) string {
	erased := make([]string, len(m.Params))
	for i, p := range m.Params {
		erased[i] = p.Type.ErasureIn(m.TypeParams, classParams)
	}
	return m.Name + "(" + strings.Join(erased, ",") + ")"
}

// Batch is an ordered set of class models loaded from one or more files
type Batch struct {
	// Requires is an optional semver constraint on the generator version
	Requires string       `yaml:"requires,omitempty" toml:"requires,omitempty" json:"requires,omitempty"`
	Classes  []ClassModel `yaml:"classes" toml:"classes" json:"classes"`
}
