package compiler

import (
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompileFilter extracts the blacklist and whitelist filter section.
// Missing lists yield empty slices.
func CompileFilter(doc *document.Document) ir.FilterConfiguration {
	cfg := ir.FilterConfiguration{
		Blacklist: readFilterList(doc, "filter/blacklist"),
		Whitelist: ir.Whitelist{
			AddUncoveredFilesFromWhitelist: true,
			FilterList:                     readFilterList(doc, "filter/whitelist"),
		},
	}

	// The switch is only honored on a single, unambiguous whitelist.
	if wl := doc.Find("filter/whitelist"); len(wl) == 1 && document.HasAttr(wl[0], "addUncoveredFilesFromWhitelist") {
		cfg.Whitelist.AddUncoveredFilesFromWhitelist = Boolean(
			document.Attr(wl[0], "addUncoveredFilesFromWhitelist"), true)
	}

	return cfg
}

func readFilterList(doc *document.Document, base string) ir.FilterList {
	return ir.FilterList{
		Include: ir.FilterSet{
			Directories: readDirectoryFilters(doc, base+"/directory"),
			Files:       readFileFilters(doc, base+"/file"),
		},
		Exclude: ir.FilterSet{
			Directories: readDirectoryFilters(doc, base+"/exclude/directory"),
			Files:       readFileFilters(doc, base+"/exclude/file"),
		},
	}
}

// readDirectoryFilters reads every <directory> matched by query in document
// order. Attributes that are present are taken verbatim, even when empty.
func readDirectoryFilters(doc *document.Document, query string) []ir.DirectoryFilter {
	out := []ir.DirectoryFilter{}
	for _, el := range doc.Find(query) {
		out = append(out, ir.DirectoryFilter{
			Path:   document.Text(el),
			Prefix: document.AttrOr(el, "prefix", ir.DefaultFilterPrefix),
			Suffix: document.AttrOr(el, "suffix", ir.DefaultFilterSuffix),
			Group:  document.AttrOr(el, "group", ir.DefaultFilterGroup),
		})
	}
	return out
}

// readFileFilters returns the text of every element matched by query.
func readFileFilters(doc *document.Document, query string) []string {
	return texts(doc, query)
}

func texts(doc *document.Document, query string) []string {
	out := []string{}
	for _, el := range doc.Find(query) {
		out = append(out, document.Text(el))
	}
	return out
}
