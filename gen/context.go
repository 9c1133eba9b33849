package gen

import (
	"fmt"

	"github.com/teranos/mutigen/model"
)

// Warning is a non-fatal problem found while emitting a class
type Warning struct {
	Class  string
	Member string
	Err    error
}

func (w Warning) String() string {
	if w.Member == "" {
		return fmt.Sprintf("%s: %v", w.Class, w.Err)
	}
	return fmt.Sprintf("%s#%s: %v", w.Class, w.Member, w.Err)
}

// Context carries everything an emitter needs for one class. It is built
// per class and never shared between goroutines.
type Context struct {
	Options Options
	Class   model.ClassModel
	Imports *Imports
	Table   *Table

	// Warn receives MalformedDoc warnings; may be nil
	Warn func(Warning)

	member string
	locals map[string]bool
	// scope holds the type parameters of the member being emitted
	scope []model.TypeParam
	// erasing guards against bounds that mention their own variable
	erasing map[string]bool
}

// NewContext builds the emission context for one class
func NewContext(c model.ClassModel, opts Options, table *Table, warn func(Warning)) *Context {
	target := opts.TargetName(c.Name)
	imports := NewImports(packageOf(target))
	imports.Own(target)
	for _, tp := range c.TypeParams {
		imports.Reserve(tp.Name)
	}
	if !c.Concrete {
		imports.Reserve(implName)
	}
	return &Context{
		Options: opts,
		Class:   c,
		Imports: imports,
		Table:   table,
		Warn:    warn,
	}
}

// TargetClass is the qualified name of the class being generated
func (c *Context) TargetClass() string {
	return c.Options.TargetName(c.Class.Name)
}

// SimpleName is the simple name of the class being generated
func (c *Context) SimpleName() string {
	return simpleOf(c.TargetClass())
}

// Use registers a qualified type name and returns how to spell it
func (c *Context) Use(qualified string) string {
	return c.Imports.Use(qualified)
}

func (c *Context) warn(err error) {
	if c.Warn == nil {
		return
	}
	c.Warn(Warning{Class: c.Class.Name, Member: c.member, Err: err})
}

// enter starts emission of a member; params are reserved as local names so
// generated lambdas never shadow them.
func (c *Context) enter(member string, params []model.ParamInfo) {
	c.member = member
	c.scope = nil
	c.locals = make(map[string]bool, len(params))
	for _, p := range params {
		c.locals[p.Name] = true
	}
}

// local returns an identifier based on name that is unused in the current member
func (c *Context) local(name string) string {
	if c.locals == nil {
		c.locals = make(map[string]bool)
	}
	candidate := name
	for i := 2; c.locals[candidate]; i++ {
		candidate = fmt.Sprintf("%s%d", name, i)
	}
	c.locals[candidate] = true
	return candidate
}

// typeVarErasure is the qualified target erasure of a type variable: the
// erasure of its first bound, or java.lang.Object when unbounded. Member type
// parameters shadow the class's.
func (c *Context) typeVarErasure(name string) string {
	tp, ok := model.LookupTypeParam(name, c.scope, c.Class.TypeParams)
	if !ok || len(tp.Bounds) == 0 || c.erasing[name] {
		return objectType
	}
	if c.erasing == nil {
		c.erasing = make(map[string]bool)
	}
	c.erasing[name] = true
	defer delete(c.erasing, name)

	cv, err := c.Table.Lookup(c.scratch(), tp.Bounds[0])
	if err != nil {
		return objectType
	}
	return cv.Erasure
}
