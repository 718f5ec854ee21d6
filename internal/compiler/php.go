package compiler

import (
	"golang.org/x/text/cases"

	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompilePHP extracts the ini, const and var entries of the php section.
// A repeated name keeps its first position and takes the last value.
func CompilePHP(doc *document.Document) ir.PHPSettings {
	var cfg ir.PHPSettings

	for _, el := range doc.Find("php/ini") {
		cfg.Ini.Set(document.Attr(el, "name"), ir.String(document.Attr(el, "value")))
	}
	for _, el := range doc.Find("php/const") {
		cfg.Const.Set(document.Attr(el, "name"), literal(document.Attr(el, "value")))
	}
	for _, el := range doc.Find("php/var") {
		cfg.Var.Set(document.Attr(el, "name"), literal(document.Attr(el, "value")))
	}

	return cfg
}

// literal maps "true"/"false" in any case to Bool and keeps other text.
func literal(text string) ir.Value {
	switch cases.Fold().String(text) {
	case "true":
		return ir.Bool(true)
	case "false":
		return ir.Bool(false)
	default:
		return ir.String(text)
	}
}
