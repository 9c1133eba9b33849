package gen

import (
	"fmt"
	"strings"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

const implName = "Impl"

// classPlan is everything emitted for one class, before rendering
type classPlan struct {
	typeParams string // "<T extends X>" or ""
	typeArgs   string // "<T>" or ""
	supertypes []string
	constants  []string
	variants   []variant
}

// emitClass produces the class (or interface) declaration. Imports are
// registered on c as a side effect and written by the caller afterwards.
func emitClass(c *Context) (string, error) {
	c.enter("", nil)
	doc := c.renderDoc(c.Class.Doc, "")

	p, err := planClass(c)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(doc)
	sb.WriteString(fmt.Sprintf("@%s(%s.class)\n", genAnnotation, c.Class.Name))
	if c.Class.Concrete {
		writeConcrete(&sb, c, p)
	} else {
		writeInterface(&sb, c, p)
	}
	return sb.String(), nil
}

func planClass(c *Context) (*classPlan, error) {
	p := &classPlan{}

	tps, err := typeParams(c, c.Class.TypeParams)
	if err != nil {
		return nil, err
	}
	p.typeParams = strings.TrimSuffix(tps, " ")
	if len(c.Class.TypeParams) > 0 {
		names := make([]string, len(c.Class.TypeParams))
		for i, tp := range c.Class.TypeParams {
			names[i] = tp.Name
		}
		p.typeArgs = "<" + strings.Join(names, ", ") + ">"
	}

	p.supertypes = []string{c.Use(delegateInterface)}
	var streamOf *model.TypeInfo
	for i, st := range c.Class.Supertypes {
		decl, err := supertypeDecl(c, st)
		if err != nil {
			return nil, errors.Wrapf(err, "supertype %s", st.QualifiedName())
		}
		p.supertypes = append(p.supertypes, decl)
		if st.Kind == model.KindStream && streamOf == nil {
			streamOf = &c.Class.Supertypes[i]
		}
	}

	for _, k := range c.Class.Constants {
		text, err := emitConstant(c, k)
		if err != nil {
			return nil, err
		}
		p.constants = append(p.constants, text)
	}

	seen := map[string]string{
		"getDelegate()": "getDelegate",
		"newInstance(" + c.Class.Name + ")": "newInstance",
	}
	seen["toString()"] = "toString"
	seen["equals("+objectType+")"] = "equals"
	seen["hashCode()"] = "hashCode"
	add := func(owner string, vs []variant) error {
		for _, v := range vs {
			sig := v.signature()
			if prev, ok := seen[sig]; ok {
				return errors.AmbiguousOverloadf("%s emitted for %s collides with %s", sig, owner, prev)
			}
			seen[sig] = owner
			p.variants = append(p.variants, v)
		}
		return nil
	}

	for _, m := range c.Class.Methods {
		if isObjectMethod(c, m) {
			// already forwarded to the delegate by writeObjectMethods
			continue
		}
		vs, err := emitMethod(c, m)
		if err != nil {
			return nil, err
		}
		if err := add(m.SignatureKey(), vs); err != nil {
			return nil, err
		}
	}

	if streamOf != nil {
		vs, err := streamAdapters(c, *streamOf)
		if err != nil {
			return nil, errors.Wrap(err, "stream adapters")
		}
		if err := add(streamOf.String(), vs); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// isObjectMethod reports whether m redeclares one of the java.lang.Object
// methods every generated class forwards to its delegate
func isObjectMethod(c *Context, m model.MethodInfo) bool {
	if m.Static {
		return false
	}
	switch m.Name {
	case "toString", "hashCode":
		return len(m.Params) == 0
	case "equals":
		return len(m.Params) == 1 &&
			m.Params[0].Type.ErasureIn(m.TypeParams, c.Class.TypeParams) == objectType
	}
	return false
}

func supertypeDecl(c *Context, st model.TypeInfo) (string, error) {
	switch st.Kind {
	case model.KindStream:
		args := make([]Conversion, len(st.Args))
		for i, a := range st.Args {
			cv, err := c.Table.Lookup(c, a)
			if err != nil {
				return "", err
			}
			args[i] = cv
		}
		return c.Use(c.Options.TargetName(st.Raw())) + typeArgs(args), nil
	case model.KindClass, model.KindParameterized:
		cv, err := c.Table.Lookup(c, st)
		if err != nil {
			return "", err
		}
		return cv.Decl, nil
	default:
		return "", errors.UnresolvedTypef("%s type cannot be a supertype", st.Kind)
	}
}

// streamAdapters gives classes that are themselves streams a reactive view
// and blocking iteration.
func streamAdapters(c *Context, st model.TypeInfo) ([]variant, error) {
	c.enter("toMulti", nil)
	multi, err := c.Table.Lookup(c, model.StreamOf(st.Arg(0)))
	if err != nil {
		return nil, err
	}
	elem, err := c.Table.Lookup(c, st.Arg(0))
	if err != nil {
		return nil, err
	}
	return []variant{
		{
			kind: variantPrimary,
			ret:  multi.Decl,
			name: "toMulti",
			body: []string{"return " + multi.Target("delegate") + ";"},
		},
		{
			kind: variantBlocking,
			ret:  c.Use(iterableType) + "<" + elem.Decl + ">",
			name: "toBlockingIterable",
			body: []string{"return toMulti().subscribe().asIterable();"},
		},
		{
			kind: variantBlocking,
			ret:  c.Use(javaStreamType) + "<" + elem.Decl + ">",
			name: "toBlockingStream",
			body: []string{"return toMulti().subscribe().asStream();"},
		},
	}, nil
}

func writeBody(sb *strings.Builder, indent string, body []string) {
	for _, stmt := range body {
		sb.WriteString(indent + stmt + "\n")
	}
}

func writeConcrete(sb *strings.Builder, c *Context, p *classPlan) {
	name := c.SimpleName()
	self := name + p.typeArgs
	orig := c.Class.Name + p.typeArgs

	sb.WriteString(fmt.Sprintf("public class %s%s implements %s {\n\n", name, p.typeParams, strings.Join(p.supertypes, ", ")))

	for _, k := range p.constants {
		sb.WriteString(k)
	}
	if len(p.constants) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("  private final %s delegate;\n\n", orig))
	sb.WriteString(fmt.Sprintf("  public %s(%s delegate) {\n    this.delegate = delegate;\n  }\n\n", name, orig))
	sb.WriteString(fmt.Sprintf("  public %s getDelegate() {\n    return delegate;\n  }\n\n", orig))

	for _, v := range p.variants {
		sb.WriteString(v.doc)
		static := ""
		if v.static {
			static = "static "
		}
		sb.WriteString(fmt.Sprintf("  public %s%s {\n", static, v.declaration()))
		writeBody(sb, "    ", v.body)
		sb.WriteString("  }\n\n")
	}

	writeObjectMethods(sb, c, "  ", name+wildcards(len(c.Class.TypeParams)))
	sb.WriteString("\n")

	newInstance := "public static "
	if p.typeParams != "" {
		newInstance += p.typeParams + " "
	}
	sb.WriteString(fmt.Sprintf("  %s%s newInstance(%s arg) {\n", newInstance, self, orig))
	sb.WriteString(fmt.Sprintf("    return arg != null ? new %s(arg) : null;\n  }\n", self))
	sb.WriteString("}\n")
}

func writeInterface(sb *strings.Builder, c *Context, p *classPlan) {
	name := c.SimpleName()
	self := name + p.typeArgs
	orig := c.Class.Name + p.typeArgs
	impl := implName + p.typeArgs

	sb.WriteString(fmt.Sprintf("public interface %s%s extends %s {\n\n", name, p.typeParams, strings.Join(p.supertypes, ", ")))

	for _, k := range p.constants {
		sb.WriteString(k)
	}
	if len(p.constants) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("  %s getDelegate();\n\n", orig))

	var implemented []variant
	for _, v := range p.variants {
		sb.WriteString(v.doc)
		switch {
		case v.static:
			sb.WriteString(fmt.Sprintf("  static %s {\n", v.declaration()))
			writeBody(sb, "    ", v.body)
			sb.WriteString("  }\n\n")
		case v.kind == variantPrimary:
			sb.WriteString(fmt.Sprintf("  %s;\n\n", v.declaration()))
			implemented = append(implemented, v)
		default:
			sb.WriteString(fmt.Sprintf("  default %s {\n", v.declaration()))
			writeBody(sb, "    ", v.body)
			sb.WriteString("  }\n\n")
		}
	}

	newInstance := "static "
	if p.typeParams != "" {
		newInstance += p.typeParams + " "
	}
	sb.WriteString(fmt.Sprintf("  %s%s newInstance(%s arg) {\n", newInstance, self, orig))
	sb.WriteString(fmt.Sprintf("    return arg != null ? new %s(arg) : null;\n  }\n\n", impl))

	sb.WriteString(fmt.Sprintf("  class %s%s implements %s {\n\n", implName, p.typeParams, self))
	sb.WriteString(fmt.Sprintf("    private final %s delegate;\n\n", orig))
	sb.WriteString(fmt.Sprintf("    public %s(%s delegate) {\n      this.delegate = delegate;\n    }\n\n", implName, orig))
	sb.WriteString(fmt.Sprintf("    @Override\n    public %s getDelegate() {\n      return delegate;\n    }\n\n", orig))
	for _, v := range implemented {
		sb.WriteString(fmt.Sprintf("    @Override\n    public %s {\n", v.declaration()))
		writeBody(sb, "      ", v.body)
		sb.WriteString("    }\n\n")
	}
	writeObjectMethods(sb, c, "    ", implName+wildcards(len(c.Class.TypeParams)))
	sb.WriteString("  }\n}\n")
}

// writeObjectMethods delegates identity to the wrapped object
func writeObjectMethods(sb *strings.Builder, c *Context, indent, castType string) {
	str := c.Use("java.lang.String")
	obj := c.Use(objectType)
	lines := []string{
		"@Override",
		"public " + str + " toString() {",
		"  return delegate.toString();",
		"}",
		"",
		"@Override",
		"public boolean equals(" + obj + " o) {",
		"  if (this == o) return true;",
		"  if (o == null || getClass() != o.getClass()) return false;",
		"  " + castType + " that = (" + castType + ") o;",
		"  return delegate.equals(that.delegate);",
		"}",
		"",
		"@Override",
		"public int hashCode() {",
		"  return delegate.hashCode();",
		"}",
	}
	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(indent + line + "\n")
	}
}

func wildcards(n int) string {
	if n == 0 {
		return ""
	}
	return "<" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ">"
}
