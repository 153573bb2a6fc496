package jsondoc

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Query evaluates a gjson path expression against the document. The
// document's cached compact serialization is the query input, so the
// first query on a value pays the serialization cost and later ones do
// not.
func (v *Value) Query(path string) (gjson.Result, error) {
	data, err := v.ToJSON(Compact)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.GetBytes(data, path), nil
}

// QueryMany evaluates several paths in one pass over the document.
func (v *Value) QueryMany(paths ...string) ([]gjson.Result, error) {
	data, err := v.ToJSON(Compact)
	if err != nil {
		return nil, err
	}
	return gjson.GetManyBytes(data, paths...), nil
}

// SetPath returns a new document with the raw JSON value spliced in at
// path. Values are immutable, so updates are functional: the receiver is
// untouched and the caller owns the returned root.
func SetPath(v *Value, path string, rawValue []byte) (*Value, error) {
	if len(rawValue) == 0 {
		return nil, ErrInvalidArgument
	}
	data, err := v.ToJSON(Compact)
	if err != nil {
		return nil, err
	}
	updated, err := sjson.SetRawBytes(data, path, rawValue)
	if err != nil {
		return nil, err
	}
	return Parse(updated)
}

// DeletePath returns a new document with the value at path removed.
func DeletePath(v *Value, path string) (*Value, error) {
	data, err := v.ToJSON(Compact)
	if err != nil {
		return nil, err
	}
	updated, err := sjson.DeleteBytes(data, path)
	if err != nil {
		return nil, err
	}
	return Parse(updated)
}
