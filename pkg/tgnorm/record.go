package tgnorm

import (
	"encoding/json"
	"math"
)

// Record is a raw, already-decoded message record keyed by protocol field name.
//
// A key that is missing or holds nil is absent. Peer references and reply
// markup are opaque values forwarded to the PeerResolver and KeyboardBuilder.
type Record map[string]any

// Lookup returns the raw value for key and whether it is present.
func (r Record) Lookup(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	value, ok := r[key]
	if !ok || value == nil {
		return nil, false
	}

	return value, true
}

// fieldReader reads typed fields from one record, prefixing error paths for nested records.
type fieldReader struct {
	record Record
	prefix string
}

func newFieldReader(record Record, prefix string) fieldReader {
	return fieldReader{record: record, prefix: prefix}
}

func (f fieldReader) path(key string) string {
	if f.prefix == "" {
		return key
	}
	return f.prefix + "." + key
}

func (f fieldReader) requiredInt(key string) (int, error) {
	value, ok, err := f.optionalInt(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, missingField(f.path(key))
	}

	return value, nil
}

func (f fieldReader) optionalInt(key string) (int, bool, error) {
	value, ok, err := f.optionalInt64(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if value < math.MinInt || value > math.MaxInt {
		return 0, false, &FieldError{Field: f.path(key), Reason: "integer overflows int"}
	}

	return int(value), true, nil
}

func (f fieldReader) optionalInt64(key string) (int64, bool, error) {
	raw, ok := f.record.Lookup(key)
	if !ok {
		return 0, false, nil
	}

	value, ok := asInt64(raw)
	if !ok {
		return 0, false, wrongShape(f.path(key), "integer", raw)
	}

	return value, true, nil
}

func (f fieldReader) requiredBool(key string) (bool, error) {
	value, ok, err := f.optionalBool(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, missingField(f.path(key))
	}

	return value, nil
}

func (f fieldReader) optionalBool(key string) (bool, bool, error) {
	raw, ok := f.record.Lookup(key)
	if !ok {
		return false, false, nil
	}

	value, ok := raw.(bool)
	if !ok {
		return false, false, wrongShape(f.path(key), "bool", raw)
	}

	return value, true, nil
}

func (f fieldReader) optionalString(key string) (string, bool, error) {
	raw, ok := f.record.Lookup(key)
	if !ok {
		return "", false, nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", false, wrongShape(f.path(key), "string", raw)
	}

	return value, true, nil
}

func (f fieldReader) optionalRecord(key string) (Record, bool, error) {
	raw, ok := f.record.Lookup(key)
	if !ok {
		return nil, false, nil
	}

	switch typed := raw.(type) {
	case Record:
		return typed, true, nil
	case map[string]any:
		return Record(typed), true, nil
	default:
		return nil, false, wrongShape(f.path(key), "record", raw)
	}
}

func asInt64(raw any) (int64, bool) {
	switch typed := raw.(type) {
	case int:
		return int64(typed), true
	case int8:
		return int64(typed), true
	case int16:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint8:
		return int64(typed), true
	case uint16:
		return int64(typed), true
	case uint32:
		return int64(typed), true
	case uint:
		if uint64(typed) > math.MaxInt64 {
			return 0, false
		}
		return int64(typed), true
	case uint64:
		if typed > math.MaxInt64 {
			return 0, false
		}
		return int64(typed), true
	case float64:
		return floatToInt64(typed)
	case float32:
		return floatToInt64(float64(typed))
	case json.Number:
		value, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}

// floatToInt64 accepts integral floats as produced by encoding/json into any.
func floatToInt64(value float64) (int64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, false
	}
	if value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, false
	}

	return int64(value), true
}
