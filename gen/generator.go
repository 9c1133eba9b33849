// Package gen is the generation engine: it turns one class model into the
// source text of its reactive counterpart.
package gen

import (
	"fmt"
	"strings"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

// HeaderPrefix starts the first line of every generated unit
const HeaderPrefix = "// Code generated by mutigen from "

// StampPrefix starts the optional source version line
const StampPrefix = "// Source version: "

// Unit is the generated text of one class
type Unit struct {
	// Class is the qualified name of the original class
	Class string
	// Name is the qualified name of the generated type
	Name     string
	Text     []byte
	Warnings []Warning
	// Index is the class's position in its batch; set by the driver
	Index int
}

// Generator emits classes with a fixed set of options and conversion table.
// It holds no per-class state and may be shared between goroutines.
type Generator struct {
	Options Options
	Table   *Table
}

// New creates a generator using the default conversion table
func New(opts Options) *Generator {
	return &Generator{Options: opts, Table: DefaultTable()}
}

// Generate emits one class. Identical models produce byte-identical units.
func (g *Generator) Generate(cm model.ClassModel) (*Unit, error) {
	if err := model.Validate(cm); err != nil {
		return nil, err
	}

	unit := &Unit{Class: cm.Name, Name: g.Options.TargetName(cm.Name)}
	c := NewContext(cm, g.Options, g.Table, func(w Warning) {
		unit.Warnings = append(unit.Warnings, w)
	})

	// Body first so every referenced type is registered before imports are written.
	body, err := emitClass(c)
	if err != nil {
		return nil, errors.Wrapf(err, "class %s", cm.Name)
	}

	var sb strings.Builder
	sb.WriteString(HeaderPrefix + cm.Name + ". DO NOT EDIT.\n")
	if g.Options.Stamp != "" {
		sb.WriteString(StampPrefix + g.Options.Stamp + "\n")
	}
	sb.WriteString("\n")
	if pkg := packageOf(unit.Name); pkg != "" {
		sb.WriteString(fmt.Sprintf("package %s;\n\n", pkg))
	}
	if imports := c.Imports.List(); len(imports) > 0 {
		for _, imp := range imports {
			sb.WriteString(fmt.Sprintf("import %s;\n", imp))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(body)

	unit.Text = []byte(sb.String())
	return unit, nil
}

// Generate emits one class with the default table
func Generate(cm model.ClassModel, opts Options) (*Unit, error) {
	return New(opts).Generate(cm)
}
