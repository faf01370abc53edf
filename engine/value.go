package engine

import (
	"reflect"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/vmihailenco/msgpack/v5"
)

type fieldFunc func(name string) any

func noFields(string) any {
	return nil
}

// itemsOf flattens any slice or array value for Sequence and Array nodes.
func itemsOf(v any, path string) ([]any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	default:
		return nil, errs.Value(path, "expected a sequence, got %T", v)
	}
}

// fieldsOf looks up Mapping fields by name in maps keyed by strings, ordered
// maps and structs.
func fieldsOf(v any, path string) (fieldFunc, error) {
	switch x := v.(type) {
	case nil:
		return noFields, nil
	case map[string]any:
		return func(name string) any { return x[name] }, nil
	case *orderedmap.OrderedMap[string, any]:
		return func(name string) any {
			v, _ := x.Get(name)
			return v
		}, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return noFields, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, errs.Value(path, "expected a mapping keyed by strings, got %T", v)
		}
		return func(name string) any {
			e := rv.MapIndex(reflect.ValueOf(name).Convert(keyType))
			if !e.IsValid() {
				return nil
			}
			return e.Interface()
		}, nil
	case reflect.Struct:
		m, err := Normalize(v)
		if err != nil {
			return nil, errs.WrapValue(path, err, "cannot read fields of %T", v)
		}
		return func(name string) any { return m[name] }, nil
	default:
		return nil, errs.Value(path, "expected a mapping, got %T", v)
	}
}

// Normalize turns a struct into a value tree keyed by its msgpack field names.
func Normalize(v any) (map[string]any, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bind copies a decoded value tree into out, a pointer, matching msgpack
// field names.
func Bind(v any, out any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(data, out)
}
