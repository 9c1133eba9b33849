package gen

import (
	"sort"
	"strings"
)

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// Imports resolves qualified type names to the spelling used in generated
// text. The first qualified name to claim a simple name wins; later names
// with the same simple name are written fully qualified.
type Imports struct {
	pkg     string
	claimed map[string]string // simple name -> qualified name ("" when reserved)
	used    map[string]bool   // qualified names that need an import line
}

// NewImports creates a resolver for a compilation unit in pkg
func NewImports(pkg string) *Imports {
	return &Imports{
		pkg:     pkg,
		claimed: make(map[string]string),
		used:    make(map[string]bool),
	}
}

// Reserve blocks a simple name from being imported
func (im *Imports) Reserve(simple string) {
	if _, ok := im.claimed[simple]; !ok {
		im.claimed[simple] = ""
	}
}

// Own claims the simple name of the unit's own type; it never needs an import
func (im *Imports) Own(qualified string) {
	im.claimed[simpleOf(qualified)] = qualified
}

// Use registers a qualified name and returns the spelling to emit
func (im *Imports) Use(qualified string) string {
	if primitives[qualified] || !strings.Contains(qualified, ".") {
		return qualified
	}
	simple := simpleOf(qualified)
	owner, ok := im.claimed[simple]
	if ok {
		if owner == qualified {
			return simple
		}
		return qualified
	}
	im.claimed[simple] = qualified
	if !im.implicit(qualified) {
		im.used[qualified] = true
	}
	return simple
}

func (im *Imports) implicit(qualified string) bool {
	pkg := packageOf(qualified)
	return pkg == "java.lang" || pkg == im.pkg
}

// List returns the import lines' names in sorted order
func (im *Imports) List() []string {
	names := make([]string, 0, len(im.used))
	for name := range im.used {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func simpleOf(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func packageOf(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i]
	}
	return ""
}
