package store

import (
	"encoding/json"
	"io"
)

// DecodeJSON reads a JSON object body into a Document, preserving the
// integer/float distinction. Plain json.Unmarshal folds every number into
// float64; decoding with json.Number and normalizing keeps integral values
// as int64 so they stay integers on the wire.
func DecodeJSON(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return Normalize(raw).(map[string]interface{}), nil
}

// DecodeJSONValue is DecodeJSON for bodies that may be any JSON value
// (handlers accept either an object or an array for collection updates).
func DecodeJSONValue(r io.Reader) (interface{}, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

// Normalize walks a decoded JSON value and converts json.Number to int64 when
// the literal is integral, float64 otherwise. It also widens the int32 values
// bson decoding produces, so values read back compare equal to what was
// written.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}
