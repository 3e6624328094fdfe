package starlark

import (
	"strconv"

	"go.starlark.net/starlark"
	"go.trai.ch/zerr"
)

// ToGo converts a Starlark value to the Go value stored in a configuration map:
// string, int64, float64, bool, []any, map[string]any or nil.
// Integers outside the int64 range are kept as their decimal string.
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return val.String(), nil
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case *starlark.List:
		return sequenceToGo(val)

	case starlark.Tuple:
		return sequenceToGo(val)

	case *starlark.Dict:
		result := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, zerr.With(zerr.New("dict key must be a string"), "type", item[0].Type())
			}
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, zerr.With(err, "key", string(key))
			}
			result[string(key)] = gv
		}
		return result, nil

	default:
		return nil, zerr.With(zerr.New("unsupported value"), "type", v.Type())
	}
}

func sequenceToGo(seq starlark.Indexable) ([]any, error) {
	result := make([]any, seq.Len())
	for i := range seq.Len() {
		gv, err := ToGo(seq.Index(i))
		if err != nil {
			return nil, zerr.With(err, "index", strconv.Itoa(i))
		}
		result[i] = gv
	}
	return result, nil
}
