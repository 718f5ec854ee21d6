package compiler

import (
	"github.com/beevik/etree"

	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompileLogging extracts the log targets and the coverage-html and junit
// extras. Every <log> sets Targets[type]; extras are only written when the
// attribute is present, so a later <log> without them keeps earlier values.
func CompileLogging(doc *document.Document) ir.LoggingConfiguration {
	cfg := ir.LoggingConfiguration{Targets: map[string]string{}}

	for _, el := range doc.Find("logging/log") {
		typ := document.Attr(el, "type")

		switch typ {
		case ir.LogCoverageHTML:
			setString(&cfg.Title, el, "title")
			setString(&cfg.Charset, el, "charset")
			setString(&cfg.LowUpperBound, el, "lowUpperBound")
			setString(&cfg.HighLowerBound, el, "highLowerBound")
			setBool(&cfg.YUI, el, "yui", false)
			setBool(&cfg.Highlight, el, "highlight", false)
		case ir.LogJUnit:
			setBool(&cfg.LogIncompleteSkipped, el, "logIncompleteSkipped", false)
		}

		cfg.Targets[typ] = document.Attr(el, "target")
	}

	return cfg
}

func setString(dst **string, el *etree.Element, key string) {
	if document.HasAttr(el, key) {
		*dst = ir.StringPtr(document.Attr(el, key))
	}
}

func setBool(dst **bool, el *etree.Element, key string, def bool) {
	if document.HasAttr(el, key) {
		*dst = ir.BoolPtr(Boolean(document.Attr(el, key), def))
	}
}
