package compiler

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// ValueDecoder turns one XML element into a configuration value.
// CompileListeners calls it once per listener argument.
type ValueDecoder interface {
	Decode(el *etree.Element) (ir.Value, error)
}

// ValueDecoderFunc adapts a function to ValueDecoder.
type ValueDecoderFunc func(el *etree.Element) (ir.Value, error)

// Decode implements ValueDecoder.
func (f ValueDecoderFunc) Decode(el *etree.Element) (ir.Value, error) {
	return f(el)
}

// XMLValueDecoder decodes the typed value vocabulary:
//
//	<string>text</string>
//	<integer>42</integer>
//	<double>1.5</double>
//	<boolean>true</boolean>
//	<array><element key="k"><string>v</string></element></array>
//	<object class="Name"><arguments>...</arguments></object>
//
// Unknown tags decode to Null. Nesting depth is bounded by MaxDepth.
type XMLValueDecoder struct {
	// MaxDepth limits array/object nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth is the nesting limit used by a zero XMLValueDecoder.
const DefaultMaxDepth = 64

// ErrTooDeep is returned when a value nests beyond MaxDepth.
var ErrTooDeep = errors.New("value nesting exceeds limit")

// Decode implements ValueDecoder.
func (d XMLValueDecoder) Decode(el *etree.Element) (ir.Value, error) {
	limit := d.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return d.decode(el, limit)
}

func (d XMLValueDecoder) decode(el *etree.Element, remaining int) (ir.Value, error) {
	if remaining == 0 {
		return nil, fmt.Errorf("<%s>: %w", el.Tag, ErrTooDeep)
	}

	switch el.Tag {
	case "string":
		return ir.String(document.Text(el)), nil
	case "integer":
		return ir.Int(leadingInt(document.Text(el))), nil
	case "double":
		return ir.Float(leadingFloat(document.Text(el))), nil
	case "boolean":
		return ir.Bool(document.Text(el) == "true"), nil
	case "array":
		return d.decodeArray(el, remaining)
	case "object":
		return d.decodeObject(el, remaining)
	default:
		return ir.Null{}, nil
	}
}

func (d XMLValueDecoder) decodeArray(el *etree.Element, remaining int) (ir.Value, error) {
	arr := ir.Array{}
	for _, entry := range el.SelectElements("element") {
		var v ir.Value = ir.Null{}
		if child := document.FirstChildElement(entry); child != nil {
			decoded, err := d.decode(child, remaining-1)
			if err != nil {
				return nil, err
			}
			v = decoded
		}

		if document.HasAttr(entry, "key") {
			arr = append(arr, ir.Keyed(document.Attr(entry, "key"), v))
		} else {
			arr = append(arr, ir.Positional(v))
		}
	}
	return arr, nil
}

func (d XMLValueDecoder) decodeObject(el *etree.Element, remaining int) (ir.Value, error) {
	obj := ir.Object{Class: document.Attr(el, "class"), Args: []ir.Value{}}

	args := document.FirstChildElement(el)
	if args == nil {
		return obj, nil
	}
	for _, child := range args.ChildElements() {
		v, err := d.decode(child, remaining-1)
		if err != nil {
			return nil, err
		}
		obj.Args = append(obj.Args, v)
	}
	return obj, nil
}
