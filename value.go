package jsondoc

import (
	"bytes"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// number carries the three simultaneously parsed interpretations of one
// numeric literal. The isReal / isNegative flags record what the literal
// looked like and disambiguate which interpretation is authoritative, so
// a single parsed number can be read losslessly through whichever
// accessor the caller needs.
type number struct {
	uintVal    uint64
	intVal     int64
	floatVal   float64
	isReal     bool
	isNegative bool
}

// Value is one JSON document node. Values are immutable once built
// (by Parse or by re-parsing writer output); serialized text is computed
// lazily, once per format, and cached for the value's lifetime.
type Value struct {
	object
	kind    Kind
	boolean bool
	num     number
	str     *Buffer
	arr     *Array[*Value]
	obj     *Array[*Pair]
	cached  [2]*Buffer // serialized text, indexed by Format
}

// Pair is one object member: an owned key buffer and an owned child
// value. Pairs live only inside object-variant arrays.
type Pair struct {
	object
	key *Buffer
	val *Value
}

// newPair takes ownership of both the key buffer and the value.
func newPair(key *Buffer, val *Value) *Pair {
	return &Pair{object: newObject(), key: key, val: val}
}

// Unref releases one reference; the final release releases the key and
// the child value.
func (p *Pair) Unref() {
	if p == nil {
		return
	}
	if p.release() {
		p.key.Unref()
		p.val.Unref()
		p.key = nil
		p.val = nil
	}
}

// Key returns the member name.
func (p *Pair) Key() string {
	if p == nil {
		return ""
	}
	return p.key.String()
}

// Value returns a new reference to the member value.
func (p *Pair) Value() *Value {
	if p == nil {
		return nil
	}
	p.val.Ref()
	return p.val
}

//------------------------------------------------------------------------------
// Constructors. Parser-internal; the public way to build a Value is Parse.
//------------------------------------------------------------------------------

func newNullValue() *Value {
	return &Value{object: newObject(), kind: KindNull}
}

func newBoolValue(b bool) *Value {
	return &Value{object: newObject(), kind: KindBool, boolean: b}
}

func newNumberValue(n number) *Value {
	return &Value{object: newObject(), kind: KindNumber, num: n}
}

// newStringValue takes ownership of the buffer.
func newStringValue(b *Buffer) *Value {
	return &Value{object: newObject(), kind: KindString, str: b}
}

func newArrayValue() (*Value, error) {
	arr, err := NewArray[*Value](4)
	if err != nil {
		return nil, err
	}
	return &Value{object: newObject(), kind: KindArray, arr: arr}, nil
}

func newObjectValue() (*Value, error) {
	obj, err := NewArray[*Pair](4)
	if err != nil {
		return nil, err
	}
	return &Value{object: newObject(), kind: KindObject, obj: obj}, nil
}

// Unref releases one reference. Releasing the root transitively releases
// all children: array and object variants drop their element arrays,
// string variants drop their buffer, and any cached serialized text is
// dropped with the value.
func (v *Value) Unref() {
	if v == nil {
		return
	}
	if !v.release() {
		return
	}
	v.str.Unref()
	v.arr.Unref()
	v.obj.Unref()
	v.cached[Compact].Unref()
	v.cached[Pretty].Unref()
	v.str = nil
	v.arr = nil
	v.obj = nil
	v.cached[Compact] = nil
	v.cached[Pretty] = nil
}

// Kind returns the variant this value holds. A nil value reads as null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Bool returns the boolean payload.
func (v *Value) Bool() (bool, error) {
	if v == nil {
		return false, ErrPointerIsNull
	}
	if v.kind != KindBool {
		return false, ErrJSONTypeMismatch
	}
	return v.boolean, nil
}

// IsReal reports whether a number literal contained '.', 'e' or 'E'.
func (v *Value) IsReal() bool {
	return v != nil && v.kind == KindNumber && v.num.isReal
}

// IsNegative reports whether a number literal began with '-'.
func (v *Value) IsNegative() bool {
	return v != nil && v.kind == KindNumber && v.num.isNegative
}

// Uint returns the unsigned interpretation of a number. Invoked on a
// string value it parses the text as an unsigned integer instead, the
// common "number encoded as a JSON string" convention.
func (v *Value) Uint() (uint64, error) {
	if v == nil {
		return 0, ErrPointerIsNull
	}
	switch v.kind {
	case KindNumber:
		return v.num.uintVal, nil
	case KindString:
		u, err := strconv.ParseUint(v.str.String(), 10, 64)
		if err != nil {
			return 0, ErrJSONTypeMismatch
		}
		return u, nil
	default:
		return 0, ErrJSONTypeMismatch
	}
}

// Int returns the signed interpretation of a number, or parses a string
// value's text as a signed integer.
func (v *Value) Int() (int64, error) {
	if v == nil {
		return 0, ErrPointerIsNull
	}
	switch v.kind {
	case KindNumber:
		return v.num.intVal, nil
	case KindString:
		i, err := strconv.ParseInt(v.str.String(), 10, 64)
		if err != nil {
			return 0, ErrJSONTypeMismatch
		}
		return i, nil
	default:
		return 0, ErrJSONTypeMismatch
	}
}

// Float returns the floating-point interpretation of a number, or parses
// a string value's text as a float.
func (v *Value) Float() (float64, error) {
	if v == nil {
		return 0, ErrPointerIsNull
	}
	switch v.kind {
	case KindNumber:
		return v.num.floatVal, nil
	case KindString:
		f, err := strconv.ParseFloat(v.str.String(), 64)
		if err != nil {
			return 0, ErrJSONTypeMismatch
		}
		return f, nil
	default:
		return 0, ErrJSONTypeMismatch
	}
}

// StringBytes returns the string payload's bytes. The slice is valid
// until the value's last reference is released.
func (v *Value) StringBytes() ([]byte, error) {
	if v == nil {
		return nil, ErrPointerIsNull
	}
	if v.kind != KindString {
		return nil, ErrJSONTypeMismatch
	}
	return v.str.Bytes(), nil
}

// StringValue returns the string payload.
func (v *Value) StringValue() (string, error) {
	b, err := v.StringBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

//------------------------------------------------------------------------------
// Object access. Insertion order is preserved.
//------------------------------------------------------------------------------

// HasProperty reports whether an object value has the given member.
// Lookup is a case-sensitive exact byte match.
func (v *Value) HasProperty(key string) bool {
	if v == nil || v.kind != KindObject {
		return false
	}
	return v.findPair(key) != nil
}

// GetProperty returns a new reference to the member value for key.
func (v *Value) GetProperty(key string) (*Value, error) {
	if v == nil {
		return nil, ErrPointerIsNull
	}
	if v.kind != KindObject {
		return nil, ErrJSONTypeMismatch
	}
	p := v.findPair(key)
	if p == nil {
		return nil, ErrElementNotFound
	}
	p.val.Ref()
	return p.val, nil
}

// findPair scans members linearly in insertion order.
func (v *Value) findPair(key string) *Pair {
	for i := 0; i < v.obj.Size(); i++ {
		p, _ := v.obj.peek(i)
		if bytes.Equal(p.key.Bytes(), []byte(key)) {
			return p
		}
	}
	return nil
}

// PropertyCount returns the number of members of an object value.
func (v *Value) PropertyCount() (int, error) {
	if v == nil {
		return 0, ErrPointerIsNull
	}
	if v.kind != KindObject {
		return 0, ErrJSONTypeMismatch
	}
	return v.obj.Size(), nil
}

// KeyAt returns the member name at position index, in insertion order.
func (v *Value) KeyAt(index int) (string, error) {
	if v == nil {
		return "", ErrPointerIsNull
	}
	if v.kind != KindObject {
		return "", ErrJSONTypeMismatch
	}
	p, ok := v.obj.peek(index)
	if !ok {
		return "", ErrIndexOutOfBounds
	}
	return p.key.String(), nil
}

// ValueAt returns a new reference to the member value at position index,
// in insertion order.
func (v *Value) ValueAt(index int) (*Value, error) {
	if v == nil {
		return nil, ErrPointerIsNull
	}
	if v.kind != KindObject {
		return nil, ErrJSONTypeMismatch
	}
	p, ok := v.obj.peek(index)
	if !ok {
		return nil, ErrIndexOutOfBounds
	}
	p.val.Ref()
	return p.val, nil
}

//------------------------------------------------------------------------------
// Array access
//------------------------------------------------------------------------------

// Len returns the element count of an array value.
func (v *Value) Len() (int, error) {
	if v == nil {
		return 0, ErrPointerIsNull
	}
	if v.kind != KindArray {
		return 0, ErrJSONTypeMismatch
	}
	return v.arr.Size(), nil
}

// At returns a new reference to the array element at index.
func (v *Value) At(index int) (*Value, error) {
	if v == nil {
		return nil, ErrPointerIsNull
	}
	if v.kind != KindArray {
		return nil, ErrJSONTypeMismatch
	}
	return v.arr.Get(index)
}

//------------------------------------------------------------------------------
// Serialization
//------------------------------------------------------------------------------

// ToJSON serializes the value in the requested format. The text is
// produced through the streaming writer on the first call and cached for
// every call after; there is no invalidation path because the model has
// no mutation API.
func (v *Value) ToJSON(format Format) ([]byte, error) {
	if v == nil {
		return nil, ErrPointerIsNull
	}
	if format != Compact && format != Pretty {
		return nil, ErrInvalidArgument
	}
	if v.cached[format] != nil {
		return v.cached[format].Bytes(), nil
	}
	w := NewWriter(format)
	writeValue(w, v)
	buf, err := w.EncodeInBuffer()
	if err != nil {
		v.setLastError(err.Error())
		return nil, err
	}
	v.cached[format] = buf
	return buf.Bytes(), nil
}

// ToJSONString serializes the value in the requested format as a string.
func (v *Value) ToJSONString(format Format) (string, error) {
	b, err := v.ToJSON(format)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
