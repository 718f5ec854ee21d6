// Package document locates, parses and caches configuration documents.
//
// A Document is immutable once loaded and safe for concurrent reads. The
// Cache hands out exactly one Document per canonical path.
package document

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Well-formedness violations etree tolerates. Each is returned wrapped in a
// malformed Error.
var (
	ErrNoRootElement      = errors.New("document has no root element")
	ErrMultipleRoots      = errors.New("document has more than one root element")
	ErrTextOutsideRoot    = errors.New("text outside the root element")
	ErrDuplicateAttribute = errors.New("duplicate attribute")
)

// Document is a parsed configuration document.
type Document struct {
	path   string
	root   *etree.Element
	digest string
}

// Canonicalize resolves path to its absolute, symlink-free form.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", notFound(path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", notFound(path, err)
	}
	return resolved, nil
}

// Load canonicalizes path, reads it and parses it. It does not consult any
// cache; use Cache.GetOrLoad to share documents.
func Load(path string) (*Document, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return nil, err
	}
	return load(canonical)
}

func load(canonical string) (*Document, error) {
	data, err := os.ReadFile(canonical)
	if err != nil {
		return nil, notFound(canonical, err)
	}

	d, err := Parse(canonical, data)
	if err != nil {
		return nil, err
	}

	slog.Debug("configuration loaded",
		"path", canonical,
		"digest", d.digest,
		"bytes", len(data),
	)
	return d, nil
}

// Parse builds a Document from raw bytes. path is recorded as the
// document's location and is not read.
func Parse(path string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveDuplicateAttrs = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, malformed(path, err)
	}

	root, err := checkWellFormed(doc)
	if err != nil {
		return nil, malformed(path, err)
	}

	return &Document{
		path:   path,
		root:   root,
		digest: ir.DocumentDigest(data),
	}, nil
}

// checkWellFormed rejects what encoding/xml accepts but XML forbids: zero or
// several top-level elements, character data outside the root and repeated
// attribute names. It returns the single root element.
func checkWellFormed(doc *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("%w: <%s> after <%s>", ErrMultipleRoots, t.FullTag(), root.FullTag())
			}
			root = t
		case *etree.CharData:
			if !t.IsWhitespace() {
				return nil, fmt.Errorf("%w: %q", ErrTextOutsideRoot, strings.TrimSpace(t.Data))
			}
		}
	}
	if root == nil {
		return nil, ErrNoRootElement
	}
	if err := checkAttributes(root); err != nil {
		return nil, err
	}
	return root, nil
}

func checkAttributes(el *etree.Element) error {
	if len(el.Attr) > 1 {
		seen := make(map[string]bool, len(el.Attr))
		for _, a := range el.Attr {
			key := a.FullKey()
			if seen[key] {
				return fmt.Errorf("%w %q on <%s>", ErrDuplicateAttribute, key, el.FullTag())
			}
			seen[key] = true
		}
	}
	for _, c := range el.ChildElements() {
		if err := checkAttributes(c); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the canonical path the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Dir returns the directory containing the document.
func (d *Document) Dir() string {
	return filepath.Dir(d.path)
}

// Digest returns the content digest of the raw document bytes.
func (d *Document) Digest() string {
	return d.digest
}

// Root returns the document element.
func (d *Document) Root() *etree.Element {
	return d.root
}

// Find returns the elements matching an etree path evaluated relative to
// the root element, in document order. An invalid path matches nothing.
func (d *Document) Find(query string) []*etree.Element {
	p, err := etree.CompilePath(query)
	if err != nil {
		slog.Warn("invalid document query", "query", query, "error", err)
		return nil
	}
	return d.root.FindElementsPath(p)
}

// HasAttr reports whether el carries the attribute key.
func HasAttr(el *etree.Element, key string) bool {
	return el.SelectAttr(key) != nil
}

// Attr returns the value of attribute key, or "" when absent.
func Attr(el *etree.Element, key string) string {
	return el.SelectAttrValue(key, "")
}

// AttrOr returns the value of attribute key, or def when absent.
func AttrOr(el *etree.Element, key, def string) string {
	return el.SelectAttrValue(key, def)
}

// Text returns the concatenated character data of el and all of its
// descendants with surrounding whitespace removed. Whitespace-only or
// empty content yields "".
func Text(el *etree.Element) string {
	var b strings.Builder
	collectText(&b, el)
	return strings.TrimSpace(b.String())
}

func collectText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(b, t)
		}
	}
}

// FirstChildElement returns the first element child of el, skipping
// whitespace and comments, or nil.
func FirstChildElement(el *etree.Element) *etree.Element {
	for _, tok := range el.Child {
		if c, ok := tok.(*etree.Element); ok {
			return c
		}
	}
	return nil
}

// Descendants returns every element below el with the given tag, in
// document order (depth-first, pre-order). el itself is not included.
func Descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if c.Tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(el)
	return out
}
