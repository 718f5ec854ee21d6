package compiler

import (
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// CompileOptions extracts the framework options carried as attributes of
// the root element. Absent attributes stay nil. An unparseable boolean
// falls back to true for the convert*ToExceptions switches and to false
// for everything else.
func CompileOptions(doc *document.Document) ir.FrameworkOptions {
	root := doc.Root()
	var o ir.FrameworkOptions

	setBool(&o.BackupGlobals, root, "backupGlobals", false)
	setBool(&o.BackupStaticAttributes, root, "backupStaticAttributes", false)
	setString(&o.Bootstrap, root, "bootstrap")
	setBool(&o.Colors, root, "colors", false)
	setBool(&o.ConvertErrorsToExceptions, root, "convertErrorsToExceptions", true)
	setBool(&o.ConvertNoticesToExceptions, root, "convertNoticesToExceptions", true)
	setBool(&o.ConvertWarningsToExceptions, root, "convertWarningsToExceptions", true)
	setBool(&o.ProcessIsolation, root, "processIsolation", false)
	setBool(&o.StopOnFailure, root, "stopOnFailure", false)
	setString(&o.TestSuiteLoaderClass, root, "testSuiteLoaderClass")
	setString(&o.TestSuiteLoaderFile, root, "testSuiteLoaderFile")
	setBool(&o.Verbose, root, "verbose", false)

	return o
}
