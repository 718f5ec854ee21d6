package compiler

import (
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompileGroups extracts included and excluded group names in document
// order. Duplicates are kept.
func CompileGroups(doc *document.Document) ir.GroupConfiguration {
	return ir.GroupConfiguration{
		Include: texts(doc, "groups/include/group"),
		Exclude: texts(doc, "groups/exclude/group"),
	}
}
