package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Value kinds in the stored encoding.
const (
	kindNull   = "null"
	kindString = "string"
	kindInt    = "int"
	kindFloat  = "float"
	kindBool   = "bool"
	kindArray  = "array"
	kindObject = "object"
)

// storedValue is the tagged JSON form of an ir.Value. Plain JSON cannot
// tell Int(1) from Float(1) or an Object from a keyed Array.
type storedValue struct {
	Kind   string        `json:"kind"`
	String string        `json:"string,omitempty"`
	Int    int64         `json:"int,omitempty"`
	Float  float64       `json:"float,omitempty"`
	Bool   bool          `json:"bool,omitempty"`
	Items  []storedItem  `json:"items,omitempty"`
	Class  string        `json:"class,omitempty"`
	Args   []storedValue `json:"args,omitempty"`
}

type storedItem struct {
	Key   *string     `json:"key,omitempty"`
	Value storedValue `json:"value"`
}

// marshalValue converts a Value to canonical JSON TEXT for storage.
func marshalValue(v ir.Value) (string, error) {
	sv, err := toStored(v)
	if err != nil {
		return "", err
	}
	data, err := ir.MarshalCanonical(sv)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}
	return string(data), nil
}

// unmarshalValue parses TEXT written by marshalValue.
func unmarshalValue(data string) (ir.Value, error) {
	var sv storedValue
	if err := json.Unmarshal([]byte(data), &sv); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	return fromStored(sv)
}

func toStored(v ir.Value) (storedValue, error) {
	switch val := v.(type) {
	case nil, ir.Null:
		return storedValue{Kind: kindNull}, nil
	case ir.String:
		return storedValue{Kind: kindString, String: string(val)}, nil
	case ir.Int:
		return storedValue{Kind: kindInt, Int: int64(val)}, nil
	case ir.Float:
		return storedValue{Kind: kindFloat, Float: float64(val)}, nil
	case ir.Bool:
		return storedValue{Kind: kindBool, Bool: bool(val)}, nil
	case ir.Array:
		items := make([]storedItem, 0, len(val))
		for i, el := range val {
			inner, err := toStored(el.Value)
			if err != nil {
				return storedValue{}, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, storedItem{Key: el.Key, Value: inner})
		}
		return storedValue{Kind: kindArray, Items: items}, nil
	case ir.Object:
		args := make([]storedValue, 0, len(val.Args))
		for i, a := range val.Args {
			inner, err := toStored(a)
			if err != nil {
				return storedValue{}, fmt.Errorf("object %s arg[%d]: %w", val.Class, i, err)
			}
			args = append(args, inner)
		}
		return storedValue{Kind: kindObject, Class: val.Class, Args: args}, nil
	default:
		return storedValue{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromStored(sv storedValue) (ir.Value, error) {
	switch sv.Kind {
	case kindNull:
		return ir.Null{}, nil
	case kindString:
		return ir.String(sv.String), nil
	case kindInt:
		return ir.Int(sv.Int), nil
	case kindFloat:
		return ir.Float(sv.Float), nil
	case kindBool:
		return ir.Bool(sv.Bool), nil
	case kindArray:
		arr := make(ir.Array, 0, len(sv.Items))
		for i, item := range sv.Items {
			inner, err := fromStored(item.Value)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr = append(arr, ir.ArrayElement{Key: item.Key, Value: inner})
		}
		return arr, nil
	case kindObject:
		obj := ir.Object{Class: sv.Class, Args: make([]ir.Value, 0, len(sv.Args))}
		for i, a := range sv.Args {
			inner, err := fromStored(a)
			if err != nil {
				return nil, fmt.Errorf("object %s arg[%d]: %w", sv.Class, i, err)
			}
			obj.Args = append(obj.Args, inner)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", sv.Kind)
	}
}
