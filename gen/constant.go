package gen

import (
	"fmt"
	"strings"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

// emitConstant writes the declaration of one constant. Interfaces drop the
// qualifiers, which are implicit there.
func emitConstant(c *Context, k model.ConstantInfo) (string, error) {
	c.enter(k.Name, nil)

	cv, err := c.Table.Lookup(c, k.Type)
	if err != nil {
		return "", errors.Wrapf(err, "constant %s", k.Name)
	}

	qualifiers := "public static final "
	if !c.Class.Concrete {
		qualifiers = ""
	}

	var sb strings.Builder
	sb.WriteString(c.renderDoc(k.Doc, "  "))
	sb.WriteString(fmt.Sprintf("  %s%s %s = %s;\n", qualifiers, cv.Decl, k.Name, cv.Target(k.AccessorPath(c.Class))))
	return sb.String(), nil
}
