package model

import (
	"github.com/Masterminds/semver/v3"
	"github.com/teranos/mutigen/errors"
)

// Validate checks the structural invariants of a class model: names are
// present, every type is well-formed for its kind, parameter names are
// unique within a method and no two methods share a signature key.
func Validate(c ClassModel) error {
	if c.Name == "" {
		return errors.InvalidModelf("class has no name")
	}
	if err := validateTypeParams(c.TypeParams); err != nil {
		return errors.Wrapf(err, "class %s", c.Name)
	}
	for _, st := range c.Supertypes {
		if err := validateType(st); err != nil {
			return errors.Wrapf(err, "class %s supertype", c.Name)
		}
	}

	constants := make(map[string]bool, len(c.Constants))
	for _, k := range c.Constants {
		if k.Name == "" {
			return errors.InvalidModelf("class %s: constant has no name", c.Name)
		}
		if constants[k.Name] {
			return errors.InvalidModelf("class %s: duplicate constant %s", c.Name, k.Name)
		}
		constants[k.Name] = true
		if k.Type.Kind == KindVoid {
			return errors.InvalidModelf("class %s: constant %s has void type", c.Name, k.Name)
		}
		if err := validateType(k.Type); err != nil {
			return errors.Wrapf(err, "class %s constant %s", c.Name, k.Name)
		}
	}

	seen := make(map[string]bool, len(c.Methods))
	for _, m := range c.Methods {
		if err := validateMethod(m); err != nil {
			return errors.Wrapf(err, "class %s", c.Name)
		}
		key := m.SignatureKeyIn(c.TypeParams)
		if seen[key] {
			return errors.AmbiguousOverloadf("class %s: duplicate method signature %s", c.Name, key)
		}
		seen[key] = true
	}
	return nil
}

func validateMethod(m MethodInfo) error {
	if m.Name == "" {
		return errors.InvalidModelf("method has no name")
	}
	if err := validateTypeParams(m.TypeParams); err != nil {
		return errors.Wrapf(err, "method %s", m.Name)
	}
	names := make(map[string]bool, len(m.Params))
	for i, p := range m.Params {
		if p.Name == "" {
			return errors.InvalidModelf("method %s: parameter %d has no name", m.Name, i)
		}
		if names[p.Name] {
			return errors.InvalidModelf("method %s: duplicate parameter %s", m.Name, p.Name)
		}
		names[p.Name] = true
		if p.Type.Kind == KindVoid {
			return errors.InvalidModelf("method %s: parameter %s has void type", m.Name, p.Name)
		}
		if err := validateType(p.Type); err != nil {
			return errors.Wrapf(err, "method %s parameter %s", m.Name, p.Name)
		}
	}
	if err := validateType(m.Return); err != nil {
		return errors.Wrapf(err, "method %s return", m.Name)
	}
	return nil
}

func validateTypeParams(params []TypeParam) error {
	seen := make(map[string]bool, len(params))
	for _, tp := range params {
		if tp.Name == "" {
			return errors.InvalidModelf("type parameter has no name")
		}
		if seen[tp.Name] {
			return errors.InvalidModelf("duplicate type parameter %s", tp.Name)
		}
		seen[tp.Name] = true
		for _, b := range tp.Bounds {
			if err := validateType(b); err != nil {
				return errors.Wrapf(err, "bound of %s", tp.Name)
			}
		}
	}
	return nil
}

func validateType(t TypeInfo) error {
	if !t.Kind.Valid() {
		return errors.InvalidModelf("type %q has no valid kind", t.Name)
	}
	switch t.Kind {
	case KindPrimitive, KindBoxed, KindEnum, KindClass, KindTypeVar:
		if t.Name == "" {
			return errors.InvalidModelf("%s type has no name", t.Kind)
		}
		if len(t.Args) > 0 {
			return errors.InvalidModelf("%s type %s cannot take type arguments", t.Kind, t.Name)
		}
	case KindParameterized:
		if t.Name == "" {
			return errors.InvalidModelf("parameterized type has no raw name")
		}
		if len(t.Args) == 0 {
			return errors.InvalidModelf("parameterized type %s has no type arguments", t.Name)
		}
	case KindHandler, KindFuture, KindStream:
		if len(t.Args) != 1 {
			return errors.InvalidModelf("%s type takes exactly one type argument, got %d", t.Kind, len(t.Args))
		}
		if t.Args[0].IsCallback() {
			return errors.InvalidModelf("%s of a callback is not supported", t.Kind)
		}
	case KindErrorHandler, KindVoid, KindString:
		if len(t.Args) > 0 {
			return errors.InvalidModelf("%s type cannot take type arguments", t.Kind)
		}
	}
	for _, a := range t.Args {
		if a.Kind == KindPrimitive {
			return errors.InvalidModelf("primitive %s used as a type argument", a.Name)
		}
		if err := validateType(a); err != nil {
			return err
		}
	}
	return nil
}

// CheckRequires verifies a batch's semver constraint against the generator
// version. An empty constraint always holds, and so does an empty version,
// which is what development builds report.
func CheckRequires(constraint, version string) error {
	if constraint == "" || version == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "invalid requires constraint %q", constraint),
			errors.ErrIncompatibleGenerator)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "invalid generator version %q", version),
			errors.ErrIncompatibleGenerator)
	}
	if !c.Check(v) {
		return errors.WithHintf(
			errors.Mark(errors.Newf("generator %s does not satisfy %q", version, constraint), errors.ErrIncompatibleGenerator),
			"install a mutigen release matching %s", constraint)
	}
	return nil
}
