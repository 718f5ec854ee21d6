package compiler

import (
	"fmt"

	"github.com/roach88/phpunitxml/internal/collector"
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// Options configures Compile.
type Options struct {
	// Collector expands suite directories. Nil means a collector.Local
	// rooted at the document's directory.
	Collector collector.Collector

	// Decoder decodes listener arguments. Nil means XMLValueDecoder.
	Decoder ValueDecoder

	Suite SuiteOptions
}

// Compile resolves every section of doc into one Configuration.
// Only suite expansion can fail.
func Compile(doc *document.Document, opts Options) (*ir.Configuration, error) {
	c := opts.Collector
	if c == nil {
		c = collector.NewLocal(doc.Dir())
	}

	suite, err := CompileSuite(doc, c, opts.Suite)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", doc.Path(), err)
	}

	return &ir.Configuration{
		Path:      doc.Path(),
		Digest:    doc.Digest(),
		Options:   CompileOptions(doc),
		Filter:    CompileFilter(doc),
		Groups:    CompileGroups(doc),
		Listeners: CompileListeners(doc, opts.Decoder),
		Logging:   CompileLogging(doc),
		PHP:       CompilePHP(doc),
		Browsers:  CompileBrowsers(doc),
		Suite:     suite,
	}, nil
}
