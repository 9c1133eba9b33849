package gen

import (
	"fmt"
	"strings"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

// Template rewrites a value expression from one representation to the other.
// A nil Template is the identity.
type Template func(expr string) string

// Conversion is the table's answer for one TypeInfo
type Conversion struct {
	// Decl is the declared target type as spelled in the generated unit
	Decl string
	// Erasure is the qualified erased target type, used for overload keys
	Erasure string
	// ToTarget converts an original value into the target representation
	ToTarget Template
	// ToOriginal converts a target value back into the original representation
	ToOriginal Template
}

// Target applies ToTarget to expr
func (cv Conversion) Target(expr string) string {
	if cv.ToTarget == nil {
		return expr
	}
	return cv.ToTarget(expr)
}

// Original applies ToOriginal to expr
func (cv Conversion) Original(expr string) string {
	if cv.ToOriginal == nil {
		return expr
	}
	return cv.ToOriginal(expr)
}

// Identity reports whether values pass through unchanged in both directions
func (cv Conversion) Identity() bool {
	return cv.ToTarget == nil && cv.ToOriginal == nil
}

// Rule produces the conversion of t given the already resolved conversions
// of its type arguments.
type Rule func(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error)

// Table is the type conversion registry. Kinds map to rules; parameterized
// types additionally dispatch on their qualified raw name.
type Table struct {
	kinds      map[model.Kind]Rule
	containers map[string]Rule
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{
		kinds:      make(map[model.Kind]Rule),
		containers: make(map[string]Rule),
	}
}

// DefaultTable returns the table covering every kind of the model
func DefaultTable() *Table {
	tb := NewTable()
	tb.Register(model.KindPrimitive, primitiveRule)
	tb.Register(model.KindBoxed, boxedRule)
	tb.Register(model.KindString, stringRule)
	tb.Register(model.KindEnum, passthroughRule)
	tb.Register(model.KindClass, classRule)
	tb.Register(model.KindTypeVar, typeVarRule)
	tb.Register(model.KindParameterized, tb.parameterizedRule)
	tb.Register(model.KindHandler, handlerRule)
	tb.Register(model.KindErrorHandler, errorHandlerRule)
	tb.Register(model.KindFuture, futureRule)
	tb.Register(model.KindStream, streamRule)
	tb.Register(model.KindVoid, voidRule)

	tb.RegisterContainer("java.util.List", collectionRule("java.util.List", "toList"))
	tb.RegisterContainer("java.util.Set", collectionRule("java.util.Set", "toSet"))
	tb.RegisterContainer("java.util.Map", mapRule)
	return tb
}

// Register binds a rule to a kind, replacing any previous rule
func (tb *Table) Register(k model.Kind, r Rule) {
	tb.kinds[k] = r
}

// RegisterContainer binds a rule to a parameterized raw type
func (tb *Table) RegisterContainer(raw string, r Rule) {
	tb.containers[raw] = r
}

// Lookup resolves t, recursing into its type arguments first
func (tb *Table) Lookup(c *Context, t model.TypeInfo) (Conversion, error) {
	rule, ok := tb.kinds[t.Kind]
	if !ok {
		return Conversion{}, errors.UnresolvedTypef("no conversion for %s type %s", t.Kind, t)
	}
	args := make([]Conversion, len(t.Args))
	for i, a := range t.Args {
		cv, err := tb.Lookup(c, a)
		if err != nil {
			return Conversion{}, errors.Wrapf(err, "type argument %d of %s", i, t.QualifiedName())
		}
		args[i] = cv
	}
	return rule(c, t, args)
}

func primitiveRule(_ *Context, t model.TypeInfo, _ []Conversion) (Conversion, error) {
	if !primitives[t.Name] || t.Name == "void" {
		return Conversion{}, errors.UnresolvedTypef("unknown primitive %q", t.Name)
	}
	return Conversion{Decl: t.Name, Erasure: t.Name}, nil
}

func boxedRule(c *Context, t model.TypeInfo, _ []Conversion) (Conversion, error) {
	q := "java.lang." + t.Name
	return Conversion{Decl: c.Use(q), Erasure: q}, nil
}

func stringRule(c *Context, _ model.TypeInfo, _ []Conversion) (Conversion, error) {
	return Conversion{Decl: c.Use("java.lang.String"), Erasure: "java.lang.String"}, nil
}

func passthroughRule(c *Context, t model.TypeInfo, _ []Conversion) (Conversion, error) {
	q := t.QualifiedName()
	return Conversion{Decl: c.Use(q), Erasure: q}, nil
}

func voidRule(_ *Context, _ model.TypeInfo, _ []Conversion) (Conversion, error) {
	return Conversion{Decl: "void", Erasure: "void"}, nil
}

// Type variables are declared as-is and never converted. They erase to
// their first bound.
func typeVarRule(c *Context, t model.TypeInfo, _ []Conversion) (Conversion, error) {
	return Conversion{Decl: t.Name, Erasure: c.typeVarErasure(t.Name)}, nil
}

func classRule(c *Context, t model.TypeInfo, _ []Conversion) (Conversion, error) {
	if !t.API {
		return passthroughRule(c, t, nil)
	}
	return apiConversion(c, t, nil), nil
}

// apiConversion wraps and unwraps a type under generation
func apiConversion(c *Context, t model.TypeInfo, args []Conversion) Conversion {
	original := t.QualifiedName()
	target := c.Options.TargetName(original)
	raw := c.Use(target)
	return Conversion{
		Decl:    raw + typeArgs(args),
		Erasure: target,
		ToTarget: func(expr string) string {
			return fmt.Sprintf("%s.newInstance((%s)%s)", raw, original, expr)
		},
		ToOriginal: func(expr string) string {
			return expr + ".getDelegate()"
		},
	}
}

func (tb *Table) parameterizedRule(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error) {
	if t.API {
		return apiConversion(c, t, args), nil
	}
	raw := t.QualifiedName()
	if rule, ok := tb.containers[raw]; ok {
		return rule(c, t, args)
	}
	for i, a := range args {
		if !a.Identity() {
			return Conversion{}, errors.UnresolvedTypef(
				"no container rule for %s and its type argument %d needs conversion", raw, i)
		}
	}
	return Conversion{Decl: c.Use(raw) + typeArgs(args), Erasure: raw}, nil
}

func collectionRule(raw, collector string) Rule {
	return func(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error) {
		if len(args) != 1 {
			return Conversion{}, errors.UnresolvedTypef("%s takes one type argument, got %d", raw, len(args))
		}
		cv := Conversion{Decl: c.Use(raw) + typeArgs(args), Erasure: raw}
		elem := args[0]
		if elem.Identity() {
			return cv, nil
		}
		collectors := c.Use(collectorsType)
		item := c.local("item")
		mapped := func(expr string, conv Template) string {
			return fmt.Sprintf("%s.stream().map(%s -> %s).collect(%s.%s())", expr, item, conv(item), collectors, collector)
		}
		cv.ToTarget = func(expr string) string { return mapped(expr, elem.Target) }
		cv.ToOriginal = func(expr string) string { return mapped(expr, elem.Original) }
		return cv, nil
	}
}

func mapRule(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error) {
	if len(args) != 2 {
		return Conversion{}, errors.UnresolvedTypef("java.util.Map takes two type arguments, got %d", len(args))
	}
	cv := Conversion{Decl: c.Use("java.util.Map") + typeArgs(args), Erasure: "java.util.Map"}
	key, value := args[0], args[1]
	if key.Identity() && value.Identity() {
		return cv, nil
	}
	collectors := c.Use(collectorsType)
	entry := c.local("entry")
	mapped := func(expr string, k, v Template) string {
		return fmt.Sprintf("%s.entrySet().stream().collect(%s.toMap(%s -> %s, %s -> %s))",
			expr, collectors, entry, k(entry+".getKey()"), entry, v(entry+".getValue()"))
	}
	cv.ToTarget = func(expr string) string { return mapped(expr, key.Target, value.Target) }
	cv.ToOriginal = func(expr string) string { return mapped(expr, key.Original, value.Original) }
	return cv, nil
}

// A standalone callback parameter is declared as a Consumer of the converted value.
func handlerRule(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error) {
	if len(args) != 1 {
		return Conversion{}, errors.UnresolvedTypef("handler takes one type argument, got %d", len(args))
	}
	elem := args[0]
	cv := Conversion{Decl: c.Use(consumerType) + typeArgs(args), Erasure: consumerType}
	if elem.Identity() {
		cv.ToOriginal = func(expr string) string { return expr + "::accept" }
		cv.ToTarget = func(expr string) string { return expr + "::handle" }
		return cv, nil
	}
	v := c.local("value")
	cv.ToOriginal = func(expr string) string {
		return fmt.Sprintf("%s -> %s.accept(%s)", v, expr, elem.Target(v))
	}
	cv.ToTarget = func(expr string) string {
		return fmt.Sprintf("%s -> %s.handle(%s)", v, expr, elem.Original(v))
	}
	return cv, nil
}

func errorHandlerRule(c *Context, _ model.TypeInfo, _ []Conversion) (Conversion, error) {
	return Conversion{
		Decl:       c.Use(consumerType) + "<" + c.Use("java.lang.Throwable") + ">",
		Erasure:    consumerType,
		ToOriginal: func(expr string) string { return expr + "::accept" },
		ToTarget:   func(expr string) string { return expr + "::handle" },
	}, nil
}

func futureRule(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error) {
	return reactiveConversion(c, args, c.Options.SingleType, uniHelper, "toUni", "toFuture")
}

func streamRule(c *Context, t model.TypeInfo, args []Conversion) (Conversion, error) {
	return reactiveConversion(c, args, c.Options.MultiType, multiHelper, "toMulti", "toReadStream")
}

func reactiveConversion(c *Context, args []Conversion, reactive, helper, to, from string) (Conversion, error) {
	if len(args) != 1 {
		return Conversion{}, errors.UnresolvedTypef("%s takes one type argument, got %d", simpleOf(reactive), len(args))
	}
	elem := args[0]
	h := c.Use(helper)
	cv := Conversion{Decl: c.Use(reactive) + typeArgs(args), Erasure: reactive}
	if elem.Identity() {
		cv.ToTarget = func(expr string) string { return fmt.Sprintf("%s.%s(%s)", h, to, expr) }
		cv.ToOriginal = func(expr string) string { return fmt.Sprintf("%s.%s(%s)", h, from, expr) }
		return cv, nil
	}
	item := c.local("item")
	cv.ToTarget = func(expr string) string {
		return fmt.Sprintf("%s.%s(%s).map(%s -> %s)", h, to, expr, item, elem.Target(item))
	}
	cv.ToOriginal = func(expr string) string {
		return fmt.Sprintf("%s.%s(%s.map(%s -> %s))", h, from, expr, item, elem.Original(item))
	}
	return cv, nil
}

func typeArgs(args []Conversion) string {
	if len(args) == 0 {
		return ""
	}
	decls := make([]string, len(args))
	for i, a := range args {
		decls[i] = a.Decl
	}
	return "<" + strings.Join(decls, ", ") + ">"
}
