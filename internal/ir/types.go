package ir

import "strings"

// Filter defaults applied when a directory entry omits the attribute.
const (
	DefaultFilterSuffix = ".php"
	DefaultFilterPrefix = ""
	DefaultFilterGroup  = "DEFAULT"
)

// DirectoryFilter is one <directory> entry of a filter list.
type DirectoryFilter struct {
	Path   string `json:"path" yaml:"path"`
	Prefix string `json:"prefix" yaml:"prefix"`
	Suffix string `json:"suffix" yaml:"suffix"`
	Group  string `json:"group" yaml:"group"`
}

// FilterSet holds the directory and file entries of one include or exclude list.
type FilterSet struct {
	Directories []DirectoryFilter `json:"directories" yaml:"directories"`
	Files       []string          `json:"files" yaml:"files"`
}

// Empty reports whether the set has no entries.
func (s FilterSet) Empty() bool {
	return len(s.Directories) == 0 && len(s.Files) == 0
}

// FilterList is the include/exclude pair shared by blacklist and whitelist.
type FilterList struct {
	Include FilterSet `json:"include" yaml:"include"`
	Exclude FilterSet `json:"exclude" yaml:"exclude"`
}

// Whitelist is a FilterList with the uncovered-files switch.
type Whitelist struct {
	AddUncoveredFilesFromWhitelist bool `json:"addUncoveredFilesFromWhitelist" yaml:"addUncoveredFilesFromWhitelist"`
	FilterList                     `yaml:",inline"`
}

// FilterConfiguration is the system-under-test filter section.
type FilterConfiguration struct {
	Blacklist FilterList `json:"blacklist" yaml:"blacklist"`
	Whitelist Whitelist  `json:"whitelist" yaml:"whitelist"`
}

// GroupConfiguration lists included and excluded group names as declared.
type GroupConfiguration struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// Listener describes an observer attached to test execution.
type Listener struct {
	Class     string  `json:"class" yaml:"class"`
	File      string  `json:"file" yaml:"file"`
	Arguments []Value `json:"arguments" yaml:"arguments"`
}

// Log types with extra attributes.
const (
	LogCoverageHTML = "coverage-html"
	LogJUnit        = "junit"
)

// LoggingConfiguration maps log types to targets.
//
// The layout is flat: the coverage-html and junit extras live next to the
// target map, not under their log type. A later <log> of the same type
// replaces the target; extras are only ever set, never cleared.
type LoggingConfiguration struct {
	Targets map[string]string `json:"targets" yaml:"targets"`

	Title          *string `json:"title,omitempty" yaml:"title,omitempty"`
	Charset        *string `json:"charset,omitempty" yaml:"charset,omitempty"`
	LowUpperBound  *string `json:"lowUpperBound,omitempty" yaml:"lowUpperBound,omitempty"`
	HighLowerBound *string `json:"highLowerBound,omitempty" yaml:"highLowerBound,omitempty"`
	YUI            *bool   `json:"yui,omitempty" yaml:"yui,omitempty"`
	Highlight      *bool   `json:"highlight,omitempty" yaml:"highlight,omitempty"`

	LogIncompleteSkipped *bool `json:"logIncompleteSkipped,omitempty" yaml:"logIncompleteSkipped,omitempty"`
}

// Map returns the flat mapping: every target under its log type plus every
// extra attribute that was set.
func (l LoggingConfiguration) Map() map[string]any {
	out := make(map[string]any, len(l.Targets)+7)
	for k, v := range l.Targets {
		out[k] = v
	}
	putString(out, "title", l.Title)
	putString(out, "charset", l.Charset)
	putString(out, "lowUpperBound", l.LowUpperBound)
	putString(out, "highLowerBound", l.HighLowerBound)
	putBool(out, "yui", l.YUI)
	putBool(out, "highlight", l.Highlight)
	putBool(out, "logIncompleteSkipped", l.LogIncompleteSkipped)
	return out
}

// PHPSettings holds the ini, const and var entries of the php section.
type PHPSettings struct {
	Ini   Settings `json:"ini" yaml:"ini"`
	Const Settings `json:"const" yaml:"const"`
	Var   Settings `json:"var" yaml:"var"`
}

// Empty reports whether no settings are declared.
func (p PHPSettings) Empty() bool {
	return p.Ini.Len() == 0 && p.Const.Len() == 0 && p.Var.Len() == 0
}

// FrameworkOptions holds the root element attributes that were present.
// Nil fields were absent from the document.
type FrameworkOptions struct {
	BackupGlobals               *bool   `json:"backupGlobals,omitempty" yaml:"backupGlobals,omitempty"`
	BackupStaticAttributes      *bool   `json:"backupStaticAttributes,omitempty" yaml:"backupStaticAttributes,omitempty"`
	Bootstrap                   *string `json:"bootstrap,omitempty" yaml:"bootstrap,omitempty"`
	Colors                      *bool   `json:"colors,omitempty" yaml:"colors,omitempty"`
	ConvertErrorsToExceptions   *bool   `json:"convertErrorsToExceptions,omitempty" yaml:"convertErrorsToExceptions,omitempty"`
	ConvertNoticesToExceptions  *bool   `json:"convertNoticesToExceptions,omitempty" yaml:"convertNoticesToExceptions,omitempty"`
	ConvertWarningsToExceptions *bool   `json:"convertWarningsToExceptions,omitempty" yaml:"convertWarningsToExceptions,omitempty"`
	ProcessIsolation            *bool   `json:"processIsolation,omitempty" yaml:"processIsolation,omitempty"`
	StopOnFailure               *bool   `json:"stopOnFailure,omitempty" yaml:"stopOnFailure,omitempty"`
	TestSuiteLoaderClass        *string `json:"testSuiteLoaderClass,omitempty" yaml:"testSuiteLoaderClass,omitempty"`
	TestSuiteLoaderFile         *string `json:"testSuiteLoaderFile,omitempty" yaml:"testSuiteLoaderFile,omitempty"`
	Verbose                     *bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Map returns only the options that were present, keyed by attribute name.
func (o FrameworkOptions) Map() map[string]any {
	out := make(map[string]any)
	putBool(out, "backupGlobals", o.BackupGlobals)
	putBool(out, "backupStaticAttributes", o.BackupStaticAttributes)
	putString(out, "bootstrap", o.Bootstrap)
	putBool(out, "colors", o.Colors)
	putBool(out, "convertErrorsToExceptions", o.ConvertErrorsToExceptions)
	putBool(out, "convertNoticesToExceptions", o.ConvertNoticesToExceptions)
	putBool(out, "convertWarningsToExceptions", o.ConvertWarningsToExceptions)
	putBool(out, "processIsolation", o.ProcessIsolation)
	putBool(out, "stopOnFailure", o.StopOnFailure)
	putString(out, "testSuiteLoaderClass", o.TestSuiteLoaderClass)
	putString(out, "testSuiteLoaderFile", o.TestSuiteLoaderFile)
	putBool(out, "verbose", o.Verbose)
	return out
}

// Empty reports whether no option was present.
func (o FrameworkOptions) Empty() bool {
	return len(o.Map()) == 0
}

// Browser defaults applied when a <browser> omits the attribute.
const (
	DefaultBrowserHost    = "localhost"
	DefaultBrowserPort    = 4444
	DefaultBrowserTimeout = 30000
)

// Browser is one remote-browser profile.
type Browser struct {
	Name    string `json:"name" yaml:"name"`
	Browser string `json:"browser" yaml:"browser"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
	Timeout int    `json:"timeout" yaml:"timeout"`
}

// Configuration is a fully resolved configuration document.
type Configuration struct {
	Path      string               `json:"path" yaml:"path"`
	Digest    string               `json:"digest" yaml:"digest"`
	Options   FrameworkOptions     `json:"options" yaml:"options"`
	Filter    FilterConfiguration  `json:"filter" yaml:"filter"`
	Groups    GroupConfiguration   `json:"groups" yaml:"groups"`
	Listeners []Listener           `json:"listeners" yaml:"listeners"`
	Logging   LoggingConfiguration `json:"logging" yaml:"logging"`
	PHP       PHPSettings          `json:"php" yaml:"php"`
	Browsers  []Browser            `json:"browsers" yaml:"browsers"`
	Suite     *Suite               `json:"suite" yaml:"suite"`
}

// Sections lists the section names accepted by Configuration.Section.
var Sections = []string{"options", "filter", "groups", "listeners", "logging", "php", "browsers", "suite"}

// Section returns one section by name, or false for unknown names.
func (c *Configuration) Section(name string) (any, bool) {
	switch strings.ToLower(name) {
	case "options":
		return c.Options, true
	case "filter":
		return c.Filter, true
	case "groups":
		return c.Groups, true
	case "listeners":
		return c.Listeners, true
	case "logging":
		return c.Logging, true
	case "php":
		return c.PHP, true
	case "browsers", "selenium":
		return c.Browsers, true
	case "suite", "testsuites":
		return c.Suite, true
	default:
		return nil, false
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}
