package ir

// DefaultSuiteSuffix is the test file suffix used when a suite <directory>
// omits the attribute.
const DefaultSuiteSuffix = "Test.php"

// Suite is a named or unnamed collection of test files.
//
// Children come from sibling <testsuite> declarations; Files are the leaf
// test files of this collection in declaration order (directory expansions
// first, then explicit files).
type Suite struct {
	Name     string   `json:"name" yaml:"name"`
	Files    []string `json:"files" yaml:"files"`
	Children []*Suite `json:"children,omitempty" yaml:"children,omitempty"`

	// Skipped lists declared directories that did not exist when the suite
	// was built in skip-missing mode.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewSuite creates an empty collection.
func NewSuite(name string) *Suite {
	return &Suite{Name: name, Files: []string{}}
}

// AddFile adds one leaf test file.
func (s *Suite) AddFile(path string) {
	s.Files = append(s.Files, path)
}

// AddFiles adds leaf test files in order.
func (s *Suite) AddFiles(paths []string) {
	s.Files = append(s.Files, paths...)
}

// AddSuite adds a child collection.
func (s *Suite) AddSuite(child *Suite) {
	s.Children = append(s.Children, child)
}

// Child returns the first direct child with the given name.
func (s *Suite) Child(name string) *Suite {
	if s == nil {
		return nil
	}
	for _, c := range s.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AllFiles returns this collection's files followed by every descendant's
// files, depth first.
func (s *Suite) AllFiles() []string {
	if s == nil {
		return nil
	}
	out := append([]string{}, s.Files...)
	for _, c := range s.Children {
		out = append(out, c.AllFiles()...)
	}
	return out
}

// Count returns the number of leaf files in the tree.
func (s *Suite) Count() int {
	if s == nil {
		return 0
	}
	n := len(s.Files)
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}

// Walk visits every node depth first with its depth (root is 0).
// Returning false from fn stops descent into that node's children.
func (s *Suite) Walk(fn func(node *Suite, depth int) bool) {
	s.walk(fn, 0)
}

func (s *Suite) walk(fn func(node *Suite, depth int) bool, depth int) {
	if s == nil {
		return
	}
	if !fn(s, depth) {
		return
	}
	for _, c := range s.Children {
		c.walk(fn, depth+1)
	}
}
