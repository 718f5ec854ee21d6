package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/roach88/phpunitxml/internal/ir"
)

// renderConfiguration prints every section in ir.Sections order.
func renderConfiguration(w io.Writer, cfg *ir.Configuration) error {
	fmt.Fprintf(w, "Configuration: %s\n", cfg.Path)
	fmt.Fprintf(w, "Digest: %s\n", cfg.Digest)
	for _, name := range ir.Sections {
		fmt.Fprintln(w)
		if err := renderSection(w, name, cfg); err != nil {
			return err
		}
	}
	return nil
}

// renderSection prints one section as text. name must be accepted by
// Configuration.Section.
func renderSection(w io.Writer, name string, cfg *ir.Configuration) error {
	switch name {
	case "options":
		fmt.Fprintln(w, "Options:")
		renderMap(w, cfg.Options.Map())
	case "filter":
		fmt.Fprintln(w, "Filter:")
		renderFilter(w, cfg.Filter)
	case "groups":
		fmt.Fprintln(w, "Groups:")
		fmt.Fprintf(w, "  include: %s\n", listOrNone(cfg.Groups.Include))
		fmt.Fprintf(w, "  exclude: %s\n", listOrNone(cfg.Groups.Exclude))
	case "listeners":
		fmt.Fprintln(w, "Listeners:")
		renderListeners(w, cfg.Listeners)
	case "logging":
		fmt.Fprintln(w, "Logging:")
		renderMap(w, cfg.Logging.Map())
	case "php":
		fmt.Fprintln(w, "PHP:")
		renderSettings(w, "ini", cfg.PHP.Ini)
		renderSettings(w, "const", cfg.PHP.Const)
		renderSettings(w, "var", cfg.PHP.Var)
	case "browsers", "selenium":
		fmt.Fprintln(w, "Browsers:")
		renderBrowsers(w, cfg.Browsers)
	case "suite", "testsuites":
		fmt.Fprintln(w, "Suites:")
		renderSuite(w, cfg.Suite)
	default:
		return fmt.Errorf("unknown section %q", name)
	}
	return nil
}

func renderMap(w io.Writer, m map[string]any) {
	if len(m) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	table := newTable(w, []string{"Name", "Value"})
	for _, k := range keys {
		table.Append([]string{k, fmt.Sprint(m[k])})
	}
	table.Render()
}

func renderFilter(w io.Writer, f ir.FilterConfiguration) {
	fmt.Fprintf(w, "  addUncoveredFilesFromWhitelist: %t\n", f.Whitelist.AddUncoveredFilesFromWhitelist)

	type row struct {
		list string
		set  ir.FilterSet
	}
	rows := []row{
		{"blacklist include", f.Blacklist.Include},
		{"blacklist exclude", f.Blacklist.Exclude},
		{"whitelist include", f.Whitelist.Include},
		{"whitelist exclude", f.Whitelist.Exclude},
	}

	var entries [][]string
	for _, r := range rows {
		for _, d := range r.set.Directories {
			entries = append(entries, []string{r.list, "directory", d.Path, d.Prefix, d.Suffix, d.Group})
		}
		for _, file := range r.set.Files {
			entries = append(entries, []string{r.list, "file", file, "", "", ""})
		}
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (no entries)")
		return
	}

	table := newTable(w, []string{"List", "Kind", "Path", "Prefix", "Suffix", "Group"})
	table.AppendBulk(entries)
	table.Render()
}

func renderListeners(w io.Writer, listeners []ir.Listener) {
	if len(listeners) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	table := newTable(w, []string{"Class", "File", "Arguments"})
	for _, l := range listeners {
		args := make([]string, len(l.Arguments))
		for i, a := range l.Arguments {
			args[i] = describeValue(a)
		}
		table.Append([]string{l.Class, l.File, strings.Join(args, ", ")})
	}
	table.Render()
}

func renderSettings(w io.Writer, kind string, s ir.Settings) {
	fmt.Fprintf(w, "  %s:", kind)
	if s.Len() == 0 {
		fmt.Fprintln(w, " (none)")
		return
	}
	fmt.Fprintln(w)
	for name, v := range s.All() {
		fmt.Fprintf(w, "    %s = %s\n", name, describeValue(v))
	}
}

func renderBrowsers(w io.Writer, browsers []ir.Browser) {
	if len(browsers) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	table := newTable(w, []string{"Name", "Browser", "Host", "Port", "Timeout"})
	for _, b := range browsers {
		table.Append([]string{b.Name, b.Browser, b.Host, strconv.Itoa(b.Port), strconv.Itoa(b.Timeout)})
	}
	table.Render()
}

// renderSuite prints the suite tree, one indented line per node followed by
// its files.
func renderSuite(w io.Writer, root *ir.Suite) {
	if root == nil {
		fmt.Fprintln(w, "  (none)")
		return
	}
	root.Walk(func(s *ir.Suite, depth int) bool {
		indent := strings.Repeat("  ", depth+1)
		name := s.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "%s%s [%d]\n", indent, name, s.Count())
		for _, f := range s.Files {
			fmt.Fprintf(w, "%s  %s\n", indent, f)
		}
		for _, d := range s.Skipped {
			fmt.Fprintf(w, "%s  skipped: %s\n", indent, d)
		}
		return true
	})
}

// describeValue prints a decoded value with its kind.
func describeValue(v ir.Value) string {
	switch val := v.(type) {
	case ir.Null:
		return "null"
	case ir.String:
		return strconv.Quote(string(val))
	case ir.Bool:
		return strconv.FormatBool(bool(val))
	case ir.Int, ir.Float:
		return ir.PHPString(val)
	case ir.Array:
		parts := make([]string, len(val))
		for i, e := range val {
			if e.Key != nil {
				parts[i] = strconv.Quote(*e.Key) + " => " + describeValue(e.Value)
			} else {
				parts[i] = describeValue(e.Value)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.Object:
		args := make([]string, len(val.Args))
		for i, a := range val.Args {
			args[i] = describeValue(a)
		}
		return "new " + val.Class + "(" + strings.Join(args, ", ") + ")"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	return table
}
