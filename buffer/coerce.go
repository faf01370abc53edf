package buffer

import (
	"math"
	"reflect"

	"github.com/ccoveille/go-safecast"
	"github.com/pwnedgod/cstruct/errs"
	"github.com/pwnedgod/cstruct/token"
)

// Coerce converts an arbitrary Go numeric value to the exact Go type of the
// numeric kind k. A nil value is the zero of the kind. Floats feeding an
// integer kind must be integral.
func Coerce(k token.Kind, v any) (any, error) {
	if v == nil {
		return zero(k), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromNumber(k, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromNumber(k, rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if k.IsInteger() && (math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f) {
			return nil, errs.Value("", "%v is not an integer for %s", v, k)
		}
		return fromNumber(k, f)
	default:
		return nil, errs.Value("", "%T can not be written as %s", v, k)
	}
}

// CountOf converts a decoded count to int. Negative counts are size errors.
func CountOf(v any) (int, error) {
	n, err := Coerce(token.Int64, v)
	if err != nil {
		return 0, errs.Size("", "invalid count %v", v)
	}
	count, err := safecast.ToInt(n.(int64))
	if err != nil || count < 0 {
		return 0, errs.Size("", "invalid count %v", v)
	}
	return count, nil
}

// CountFits reports whether n can be carried by the count kind k.
func CountFits(k token.Kind, n int) bool {
	_, err := Coerce(k, n)
	return err == nil
}

func fromNumber[T int64 | uint64 | float64](k token.Kind, n T) (any, error) {
	var (
		v   any
		err error
	)
	switch k {
	case token.Uint8:
		v, err = box(safecast.ToUint8(n))
	case token.Uint16:
		v, err = box(safecast.ToUint16(n))
	case token.Uint32:
		v, err = box(safecast.ToUint32(n))
	case token.Uint64:
		v, err = box(safecast.ToUint64(n))
	case token.Int8:
		v, err = box(safecast.ToInt8(n))
	case token.Int16:
		v, err = box(safecast.ToInt16(n))
	case token.Int32:
		v, err = box(safecast.ToInt32(n))
	case token.Int64:
		v, err = box(safecast.ToInt64(n))
	case token.Float32:
		f := float64(n)
		if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
			return nil, errs.Value("", "%v overflows %s", n, k)
		}
		return float32(f), nil
	case token.Float64:
		return float64(n), nil
	default:
		return nil, errs.Value("", "%s is not a numeric kind", k)
	}
	if err != nil {
		return nil, errs.Value("", "%v out of range for %s", n, k)
	}
	return v, nil
}

func box[V any](v V, err error) (any, error) {
	return v, err
}

func zero(k token.Kind) any {
	switch k {
	case token.Uint8:
		return uint8(0)
	case token.Uint16:
		return uint16(0)
	case token.Uint32:
		return uint32(0)
	case token.Uint64:
		return uint64(0)
	case token.Int8:
		return int8(0)
	case token.Int16:
		return int16(0)
	case token.Int32:
		return int32(0)
	case token.Int64:
		return int64(0)
	case token.Float32:
		return float32(0)
	default:
		return float64(0)
	}
}

// BytesOf returns the raw bytes of a text or region value.
func BytesOf(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return nil, errs.Value("", "%T can not be written as a byte region", v)
	}
}
