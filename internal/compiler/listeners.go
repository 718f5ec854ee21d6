package compiler

import (
	"log/slog"

	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompileListeners extracts listener declarations in document order.
//
// Arguments are read when the listener's first child element is
// <arguments>; each of its child elements is decoded with dec (nil means
// XMLValueDecoder). An argument that fails to decode is recorded as Null.
func CompileListeners(doc *document.Document, dec ValueDecoder) []ir.Listener {
	if dec == nil {
		dec = XMLValueDecoder{}
	}

	out := []ir.Listener{}
	for _, el := range doc.Find("listeners/listener") {
		l := ir.Listener{
			Class:     document.Attr(el, "class"),
			File:      document.Attr(el, "file"),
			Arguments: []ir.Value{},
		}

		if args := document.FirstChildElement(el); args != nil && args.Tag == "arguments" {
			for i, arg := range args.ChildElements() {
				v, err := dec.Decode(arg)
				if err != nil {
					slog.Warn("listener argument not decodable",
						"class", l.Class,
						"index", i,
						"element", arg.Tag,
						"error", err,
					)
					v = ir.Null{}
				}
				l.Arguments = append(l.Arguments, v)
			}
		}

		out = append(out, l)
	}
	return out
}
