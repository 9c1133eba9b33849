package gen

import (
	"strings"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

// LinkResolver maps a cross-reference to the Javadoc link target
// ("pkg.Type" or "pkg.Type#member")
type LinkResolver func(l model.Link) (string, error)

// DocRenderer turns documentation tokens into a comment block
type DocRenderer struct {
	// Indent prefixes every line of the block
	Indent string
	// Resolve rewrites cross-references; unresolvable links fall back to plain text
	Resolve LinkResolver
	// Warn receives MalformedDoc errors; may be nil
	Warn func(error)
}

// Render returns the comment block for doc, or "" when doc has no content
func (r DocRenderer) Render(doc *model.Doc) string {
	if doc.Empty() {
		return ""
	}

	var text strings.Builder
	for i, tok := range doc.Tokens {
		switch tok.Kind {
		case model.TokenText:
			text.WriteString(tok.Text)
		case model.TokenCode:
			text.WriteString("<code>" + tok.Text + "</code>")
		case model.TokenLink:
			text.WriteString(r.link(tok.Link))
		default:
			r.warn(errors.MalformedDocf("token %d has unknown kind %q", i, tok.Kind))
			text.WriteString(tok.Text)
		}
	}

	lines := strings.Split(strings.ReplaceAll(text.String(), "*/", "*&#47;"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(r.Indent + "/**\n")
	for _, line := range lines {
		if line == "" {
			sb.WriteString(r.Indent + " *\n")
			continue
		}
		sb.WriteString(r.Indent + " * " + line + "\n")
	}
	sb.WriteString(r.Indent + " */\n")
	return sb.String()
}

func (r DocRenderer) link(l *model.Link) string {
	if l == nil {
		r.warn(errors.MalformedDocf("link token without a reference"))
		return ""
	}
	if r.Resolve == nil {
		return plainLabel(*l)
	}
	target, err := r.Resolve(*l)
	if err != nil {
		if !errors.Is(err, errors.ErrMalformedDoc) {
			err = errors.Mark(err, errors.ErrMalformedDoc)
		}
		r.warn(err)
		return plainLabel(*l)
	}
	if l.Label == "" {
		return "{@link " + target + "}"
	}
	return "{@link " + target + " " + l.Label + "}"
}

func (r DocRenderer) warn(err error) {
	if r.Warn != nil {
		r.Warn(err)
	}
}

// plainLabel is the text a broken reference degrades to
func plainLabel(l model.Link) string {
	switch {
	case l.Label != "":
		return l.Label
	case l.Member != "":
		return l.Member
	case l.Type != nil:
		return l.Type.Name
	default:
		return ""
	}
}

// resolveLink points references at the converted names. The lookup runs on
// a scratch context so links never add imports.
func (c *Context) resolveLink(l model.Link) (string, error) {
	var target string
	if l.Type == nil {
		if l.Member == "" {
			return "", errors.MalformedDocf("empty link")
		}
		target = c.TargetClass()
	} else {
		switch l.Type.Kind {
		case model.KindPrimitive, model.KindVoid, model.KindTypeVar:
			return "", errors.MalformedDocf("cannot link to %s type %s", l.Type.Kind, l.Type.Name)
		}
		cv, err := c.Table.Lookup(c.scratch(), *l.Type)
		if err != nil {
			return "", errors.MalformedDocf("unresolvable link to %s: %v", l.Type.QualifiedName(), err)
		}
		target = cv.Erasure
	}
	if l.Member != "" {
		target += "#" + l.Member
	}
	return target, nil
}

func (c *Context) scratch() *Context {
	return &Context{
		Options: c.Options,
		Class:   c.Class,
		Imports: NewImports(""),
		Table:   c.Table,
		scope:   c.scope,
		erasing: c.erasing,
	}
}

// renderDoc renders member or class documentation when docs are enabled
func (c *Context) renderDoc(doc *model.Doc, indent string) string {
	if !c.Options.IncludeDocs {
		return ""
	}
	r := DocRenderer{Indent: indent, Resolve: c.resolveLink, Warn: c.warn}
	return r.Render(doc)
}
