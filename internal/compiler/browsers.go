package compiler

import (
	"github.com/beevik/etree"

	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompileBrowsers extracts the remote-browser profiles in document order.
func CompileBrowsers(doc *document.Document) []ir.Browser {
	out := []ir.Browser{}
	for _, el := range doc.Find("selenium/browser") {
		out = append(out, ir.Browser{
			Name:    document.Attr(el, "name"),
			Browser: document.Attr(el, "browser"),
			Host:    document.AttrOr(el, "host", ir.DefaultBrowserHost),
			Port:    intAttr(el, "port", ir.DefaultBrowserPort),
			Timeout: intAttr(el, "timeout", ir.DefaultBrowserTimeout),
		})
	}
	return out
}

func intAttr(el *etree.Element, key string, def int) int {
	if !document.HasAttr(el, key) {
		return def
	}
	return int(leadingInt(document.Attr(el, key)))
}
