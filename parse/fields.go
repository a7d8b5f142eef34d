package parse

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/teranos/visualgenome/errors"
)

// Bytes validates raw JSON and returns it as a document for the parsers.
func Bytes(b []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, errors.New("invalid JSON document")
	}
	return gjson.ParseBytes(b), nil
}

// fields reads typed values out of one JSON object, reporting failures
// against the entity being parsed.
type fields struct {
	entity string
	r      gjson.Result
}

func objectFields(entity string, r gjson.Result) (fields, error) {
	if !r.IsObject() {
		return fields{}, errors.NewFieldTypeError(entity, "$", "object", typeName(r))
	}
	return fields{entity: entity, r: r}, nil
}

func (f fields) has(key string) bool {
	return f.r.Get(key).Exists()
}

func (f fields) get(key string) (gjson.Result, error) {
	v := f.r.Get(key)
	if !v.Exists() {
		return v, errors.NewMissingFieldError(f.entity, key)
	}
	return v, nil
}

func (f fields) int(key string) (int64, error) {
	v, err := f.get(key)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, errors.NewFieldTypeError(f.entity, key, "integer", typeName(v))
	}
	if !integral(v) {
		return 0, errors.NewFieldTypeError(f.entity, key, "integer", "fractional number "+v.Raw)
	}
	return v.Int(), nil
}

// optionalInt requires the key but accepts null.
func (f fields) optionalInt(key string) (*int64, error) {
	v, err := f.get(key)
	if err != nil {
		return nil, err
	}
	switch v.Type {
	case gjson.Null:
		return nil, nil
	case gjson.Number:
		if !integral(v) {
			return nil, errors.NewFieldTypeError(f.entity, key, "integer or null", "fractional number "+v.Raw)
		}
		n := v.Int()
		return &n, nil
	default:
		return nil, errors.NewFieldTypeError(f.entity, key, "integer or null", typeName(v))
	}
}

func (f fields) string(key string) (string, error) {
	v, err := f.get(key)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", errors.NewFieldTypeError(f.entity, key, "string", typeName(v))
	}
	return v.Str, nil
}

func (f fields) array(key string) ([]gjson.Result, error) {
	v, err := f.get(key)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, errors.NewFieldTypeError(f.entity, key, "array", typeName(v))
	}
	return v.Array(), nil
}

// stringList accepts either a single string or an array of strings.
func (f fields) stringList(key string) ([]string, error) {
	v, err := f.get(key)
	if err != nil {
		return nil, err
	}
	if v.Type == gjson.String {
		return []string{v.Str}, nil
	}
	if !v.IsArray() {
		return nil, errors.NewFieldTypeError(f.entity, key, "string or array of strings", typeName(v))
	}
	elems := v.Array()
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.Type != gjson.String {
			return nil, errors.NewFieldTypeError(f.entity, key, "array of strings", "array containing "+typeName(e))
		}
		out = append(out, e.Str)
	}
	return out, nil
}

func (f fields) box(xKey, yKey, wKey, hKey string) (x, y, w, h int, err error) {
	var vals [4]int64
	for i, key := range [4]string{xKey, yKey, wKey, hKey} {
		if vals[i], err = f.int(key); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return int(vals[0]), int(vals[1]), int(vals[2]), int(vals[3]), nil
}

func integral(v gjson.Result) bool {
	return v.Num == math.Trunc(v.Num)
}

func typeName(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	case r.Type == gjson.True || r.Type == gjson.False:
		return "boolean"
	default:
		return strings.ToLower(r.Type.String())
	}
}
