package gen

import (
	"fmt"
	"strings"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

type variantKind int

const (
	variantPrimary variantKind = iota
	variantBlocking
	variantForget
)

// declParam is a parameter as declared on an emitted variant
type declParam struct {
	name    string
	decl    string
	erasure string
}

// variant is one emitted method declaration. Bodies are written against the
// "delegate" field that classes and interface Impls both provide.
type variant struct {
	kind       variantKind
	doc        string
	static     bool
	typeParams string
	ret        string
	name       string
	params     []declParam
	body       []string
}

// signature is the erased overload key of the variant
func (v variant) signature() string {
	erased := make([]string, len(v.params))
	for i, p := range v.params {
		erased[i] = p.erasure
	}
	return v.name + "(" + strings.Join(erased, ",") + ")"
}

func (v variant) declaration() string {
	params := make([]string, len(v.params))
	for i, p := range v.params {
		params[i] = p.decl + " " + p.name
	}
	return fmt.Sprintf("%s%s %s(%s)", v.typeParams, v.ret, v.name, strings.Join(params, ", "))
}

func (v variant) argNames() string {
	names := make([]string, len(v.params))
	for i, p := range v.params {
		names[i] = p.name
	}
	return strings.Join(names, ", ")
}

// emitMethod classifies m and builds its primary, blocking and
// fire-and-forget variants.
func emitMethod(c *Context, m model.MethodInfo) ([]variant, error) {
	c.enter(m.Name, m.Params)
	c.scope = m.TypeParams

	shape := Classify(m)
	primary, result, err := emitPrimary(c, m, shape)
	if err != nil {
		return nil, errors.Wrapf(err, "method %s (%s shape)", m.SignatureKey(), shape)
	}
	primary.doc = c.renderDoc(m.Doc, "  ")
	variants := []variant{primary}

	switch shape {
	case ShapeCompletion:
		variants = append(variants, blockingVariant(c, m, primary, result))
		if c.Options.IncludeFireAndForget {
			variants = append(variants, forgetVariant(c, m, primary))
		}
	case ShapeFuture:
		variants = append(variants, blockingVariant(c, m, primary, result))
	}
	return variants, nil
}

// emitPrimary builds the reactive (or passthrough) variant. result is the
// conversion of the value the operation resolves to, for shapes that have one.
func emitPrimary(c *Context, m model.MethodInfo, shape Shape) (variant, *Conversion, error) {
	v := variant{kind: variantPrimary, static: m.Static, name: m.Name}

	tps, err := typeParams(c, m.TypeParams)
	if err != nil {
		return v, nil, err
	}
	v.typeParams = tps

	declared := m.Params
	switch shape {
	case ShapeCompletion:
		declared = m.Params[:len(m.Params)-2]
	case ShapeStream:
		if hasEmissionChannel(m) {
			declared = m.Params[:len(m.Params)-1]
		}
	}

	args := make([]string, 0, len(m.Params))
	for _, p := range declared {
		cv, err := c.Table.Lookup(c, p.Type)
		if err != nil {
			return v, nil, errors.Wrapf(err, "parameter %s", p.Name)
		}
		v.params = append(v.params, declParam{name: p.Name, decl: cv.Decl, erasure: cv.Erasure})
		args = append(args, cv.Original(p.Name))
	}

	receiver := "delegate"
	switch {
	case m.Static:
		receiver = c.Class.Name
	case c.locals["delegate"]:
		receiver = "this.delegate"
	}
	call := func(extra ...string) string {
		all := append(append([]string{}, args...), extra...)
		return fmt.Sprintf("%s.%s(%s)", receiver, m.Name, strings.Join(all, ", "))
	}

	switch shape {
	case ShapeCompletion:
		handler := m.Params[len(m.Params)-2]
		result, err := c.Table.Lookup(c, handler.Type.Arg(0))
		if err != nil {
			return v, nil, errors.Wrapf(err, "parameter %s", handler.Name)
		}
		single := c.Use(c.Options.SingleType)
		v.ret = single + "<" + result.Decl + ">"
		emitter := c.local("emitter")
		value := c.local("result")
		onResult := fmt.Sprintf("%s -> %s.complete(%s)", value, emitter, result.Target(value))
		v.body = []string{fmt.Sprintf("return %s.createFrom().emitter(%s -> %s);",
			single, emitter, call(onResult, emitter+"::fail"))}
		return v, &result, nil

	case ShapeFuture:
		ret, err := c.Table.Lookup(c, m.Return)
		if err != nil {
			return v, nil, errors.Wrap(err, "return type")
		}
		result, err := c.Table.Lookup(c, m.Return.Arg(0))
		if err != nil {
			return v, nil, errors.Wrap(err, "return type")
		}
		v.ret = ret.Decl
		v.body = []string{"return " + ret.Target(call()) + ";"}
		return v, &result, nil

	case ShapeStream:
		if !hasEmissionChannel(m) {
			ret, err := c.Table.Lookup(c, m.Return)
			if err != nil {
				return v, nil, errors.Wrap(err, "return type")
			}
			v.ret = ret.Decl
			v.body = []string{"return " + ret.Target(call()) + ";"}
			return v, nil, nil
		}
		channel := m.Params[len(m.Params)-1]
		elem, err := c.Table.Lookup(c, channel.Type.Arg(0))
		if err != nil {
			return v, nil, errors.Wrapf(err, "parameter %s", channel.Name)
		}
		multi := c.Use(c.Options.MultiType)
		helper := c.Use(multiHelper)
		emitter := c.local("emitter")
		v.ret = multi + "<" + elem.Decl + ">"
		if elem.ToTarget == nil {
			v.body = []string{fmt.Sprintf("return %s.createFrom().emitter(%s -> %s);",
				multi, emitter, call(fmt.Sprintf("%s.toChannel(%s)", helper, emitter)))}
			return v, nil, nil
		}
		item := c.local("item")
		v.body = []string{fmt.Sprintf("return %s.createFrom().<%s>emitter(%s -> %s).map(%s -> %s);",
			multi, channel.Type.Arg(0), emitter, call(fmt.Sprintf("%s.toChannel(%s)", helper, emitter)),
			item, elem.Target(item))}
		return v, nil, nil
	}

	ret, err := c.Table.Lookup(c, m.Return)
	if err != nil {
		return v, nil, errors.Wrap(err, "return type")
	}
	v.ret = ret.Decl
	switch {
	case m.Return.Kind == model.KindVoid:
		v.body = []string{call() + ";"}
	case !m.Static && isSelf(c, m.Return):
		// fluent
		v.body = []string{call() + ";", "return this;"}
	default:
		v.body = []string{"return " + ret.Target(call()) + ";"}
	}
	return v, nil, nil
}

func blockingVariant(c *Context, m model.MethodInfo, primary variant, result *Conversion) variant {
	v := variant{
		kind:       variantBlocking,
		static:     primary.static,
		typeParams: primary.typeParams,
		ret:        result.Decl,
		name:       m.Name + c.Options.BlockingSuffix,
		params:     primary.params,
	}
	await := fmt.Sprintf("%s(%s).await().indefinitely();", m.Name, primary.argNames())
	if result.Erasure == "java.lang.Void" {
		v.ret = "void"
		v.body = []string{await}
	} else {
		v.body = []string{"return " + await}
	}
	v.doc = variantDoc(c, m, primary,
		"Blocking variant of {@link #%s}.",
		"",
		"This method waits for the completion of the underlying asynchronous operation.",
		"If the operation completes successfully, the result is returned, otherwise the failure is thrown.")
	return v
}

func forgetVariant(c *Context, m model.MethodInfo, primary variant) variant {
	ignored := c.local("ignored")
	v := variant{
		kind:       variantForget,
		static:     primary.static,
		typeParams: primary.typeParams,
		ret:        "void",
		name:       m.Name + c.Options.ForgetSuffix,
		params:     primary.params,
		body: []string{fmt.Sprintf("%s(%s).subscribe().with(%s -> {}, %s);",
			m.Name, primary.argNames(), ignored, c.Options.FailureSink)},
	}
	v.doc = variantDoc(c, m, primary,
		"Variant of {@link #%s} that ignores the result of the operation.",
		"",
		"The operation is triggered and its outcome discarded; failures are reported to the default failure sink.")
	return v
}

// variantDoc documents a derived variant by linking back to its primary.
// Variants of undocumented methods stay undocumented.
func variantDoc(c *Context, m model.MethodInfo, primary variant, first string, rest ...string) string {
	if !c.Options.IncludeDocs || m.Doc.Empty() {
		return ""
	}
	erased := make([]string, len(primary.params))
	for i, p := range primary.params {
		erased[i] = p.erasure
	}
	lines := append([]string{fmt.Sprintf(first, m.Name+"("+strings.Join(erased, ",")+")")}, rest...)
	for i, line := range lines {
		if line == "" {
			lines[i] = "<p>"
		}
	}
	r := DocRenderer{Indent: "  "}
	return r.Render(model.NewDoc(model.Text(strings.Join(lines, "\n"))))
}

// typeParams renders a generic parameter list with converted bounds
func typeParams(c *Context, params []model.TypeParam) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	parts := make([]string, len(params))
	for i, tp := range params {
		parts[i] = tp.Name
		if len(tp.Bounds) == 0 {
			continue
		}
		bounds := make([]string, len(tp.Bounds))
		for j, b := range tp.Bounds {
			cv, err := c.Table.Lookup(c, b)
			if err != nil {
				return "", errors.Wrapf(err, "bound of type parameter %s", tp.Name)
			}
			bounds[j] = cv.Decl
		}
		parts[i] += " extends " + strings.Join(bounds, " & ")
	}
	return "<" + strings.Join(parts, ", ") + "> ", nil
}

func isSelf(c *Context, t model.TypeInfo) bool {
	return t.API && t.QualifiedName() == c.Class.Name &&
		(t.Kind == model.KindClass || t.Kind == model.KindParameterized)
}
