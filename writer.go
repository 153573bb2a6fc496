package jsondoc

import (
	"math"
	"math/big"
	"strconv"
)

// WriterContext identifies the scope the writer is currently inside.
type WriterContext uint8

const (
	WriterContextRoot WriterContext = iota
	WriterContextArray
	WriterContextObject
)

// String returns the context name.
func (c WriterContext) String() string {
	switch c {
	case WriterContextRoot:
		return "root"
	case WriterContextArray:
		return "array"
	case WriterContextObject:
		return "object"
	default:
		return "unknown"
	}
}

// writerFrame is one entry in the writer's context stack.
type writerFrame struct {
	kind        WriterContext
	items       int
	expectValue bool
}

// Writer streams well-formed JSON text from a sequence of write calls,
// without building an intermediate tree. Structural correctness is
// enforced incrementally by an explicit frame stack bounded at MaxDepth.
//
// The first error latches: every later call is a no-op, so callers may
// chain arbitrarily many writes and check the result exactly once, at
// Encode time. Reset clears the latch for reuse.
type Writer struct {
	out    *Buffer
	frames []writerFrame
	format Format
	err    error
}

// NewWriter creates a writer producing the given output format.
func NewWriter(format Format) *Writer {
	out, _ := NewBuffer(256)
	w := &Writer{
		out:    out,
		frames: make([]writerFrame, 1, 8),
		format: format,
	}
	w.frames[0] = writerFrame{kind: WriterContextRoot, expectValue: true}
	return w
}

// Reset reinitializes all state for reuse without reallocating.
func (w *Writer) Reset() {
	w.out.reset()
	w.frames = w.frames[:1]
	w.frames[0] = writerFrame{kind: WriterContextRoot, expectValue: true}
	w.err = nil
}

// Err returns the latched error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Context returns the scope the writer is currently inside.
func (w *Writer) Context() WriterContext {
	return w.top().kind
}

// EncodedSize returns the number of bytes accumulated so far.
func (w *Writer) EncodedSize() int {
	return w.out.Len()
}

func (w *Writer) top() *writerFrame {
	return &w.frames[len(w.frames)-1]
}

// latch records the first error; later calls keep it.
func (w *Writer) latch(err error) {
	if w.err == nil {
		w.err = err
	}
}

// beginValue runs the pre-value checks and emits any separator owed
// before a value in the current scope. Object scopes get their separator
// from WritePropertyName instead. Returns false when the write must be
// dropped.
func (w *Writer) beginValue() bool {
	if w.err != nil {
		return false
	}
	top := w.top()
	switch top.kind {
	case WriterContextRoot:
		if top.items > 0 {
			w.latch(ErrEncoding)
			return false
		}
	case WriterContextArray:
		if top.items > 0 {
			w.out.WriteByte(',')
		}
		if w.format == Pretty {
			w.newlineIndent(len(w.frames) - 1)
		}
	case WriterContextObject:
		if !top.expectValue {
			w.latch(ErrEncoding)
			return false
		}
	}
	return true
}

// endValue advances the current frame past a completed value.
func (w *Writer) endValue() {
	top := w.top()
	top.items++
	if top.kind == WriterContextObject {
		top.expectValue = false
	}
}

func (w *Writer) newlineIndent(depth int) {
	w.out.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.out.WriteString("  ")
	}
}

//------------------------------------------------------------------------------
// Scalar writes
//------------------------------------------------------------------------------

// WriteNull writes the null literal.
func (w *Writer) WriteNull() {
	if !w.beginValue() {
		return
	}
	w.out.WriteString("null")
	w.endValue()
}

// WriteBool writes true or false.
func (w *Writer) WriteBool(b bool) {
	if !w.beginValue() {
		return
	}
	if b {
		w.out.WriteString("true")
	} else {
		w.out.WriteString("false")
	}
	w.endValue()
}

// WriteUint writes an unsigned integer in decimal.
func (w *Writer) WriteUint(u uint64) {
	if !w.beginValue() {
		return
	}
	w.out.data = strconv.AppendUint(w.out.data, u, 10)
	w.endValue()
}

// WriteInt writes a signed integer in decimal.
func (w *Writer) WriteInt(i int64) {
	if !w.beginValue() {
		return
	}
	w.out.data = strconv.AppendInt(w.out.data, i, 10)
	w.endValue()
}

// WriteDouble writes a floating-point value in locale-independent,
// round-trip-faithful decimal or exponential form. NaN and infinities
// have no JSON rendering and latch an error.
func (w *Writer) WriteDouble(f float64) {
	if w.err != nil {
		return
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.latch(ErrInvalidArgument)
		return
	}
	if !w.beginValue() {
		return
	}
	w.out.data = strconv.AppendFloat(w.out.data, f, 'g', -1, 64)
	w.endValue()
}

// WriteString writes a quoted string, escaping quotes, backslashes and
// control characters.
func (w *Writer) WriteString(s string) {
	if !w.beginValue() {
		return
	}
	w.writeQuoted(s)
	w.endValue()
}

// WriteBigint writes an arbitrary-precision integer as a quoted decimal
// string, the interchange convention for values beyond double precision.
func (w *Writer) WriteBigint(b *big.Int) {
	if w.err != nil {
		return
	}
	if b == nil {
		w.latch(ErrPointerIsNull)
		return
	}
	if !w.beginValue() {
		return
	}
	w.out.WriteByte('"')
	w.out.WriteString(b.String())
	w.out.WriteByte('"')
	w.endValue()
}

// WriteRawValue splices pre-encoded JSON text in as one value. The
// caller vouches for its well-formedness; empty input is rejected.
func (w *Writer) WriteRawValue(raw []byte) {
	if w.err != nil {
		return
	}
	if len(raw) == 0 {
		w.latch(ErrInvalidArgument)
		return
	}
	if !w.beginValue() {
		return
	}
	w.out.Write(raw)
	w.endValue()
}

//------------------------------------------------------------------------------
// Compound writes
//------------------------------------------------------------------------------

// WriteStartObject opens an object scope.
func (w *Writer) WriteStartObject() {
	w.startScope(WriterContextObject, '{')
}

// WriteStartArray opens an array scope.
func (w *Writer) WriteStartArray() {
	w.startScope(WriterContextArray, '[')
}

func (w *Writer) startScope(kind WriterContext, open byte) {
	if w.err != nil {
		return
	}
	// The root frame is not a nesting level; opening scope MaxDepth+1 fails.
	if len(w.frames) > MaxDepth {
		w.latch(ErrMaxDepthExceeded)
		return
	}
	if !w.beginValue() {
		return
	}
	w.out.WriteByte(open)
	w.endValue()
	w.frames = append(w.frames, writerFrame{kind: kind, expectValue: kind == WriterContextArray})
}

// WriteEndObject closes the current object scope.
func (w *Writer) WriteEndObject() {
	w.endScope(WriterContextObject, '}')
}

// WriteEndArray closes the current array scope.
func (w *Writer) WriteEndArray() {
	w.endScope(WriterContextArray, ']')
}

func (w *Writer) endScope(kind WriterContext, closer byte) {
	if w.err != nil {
		return
	}
	top := w.top()
	if top.kind != kind {
		w.latch(ErrEncoding)
		return
	}
	if top.kind == WriterContextObject && top.expectValue {
		// property name written with no value
		w.latch(ErrEncoding)
		return
	}
	nonEmpty := top.items > 0
	w.frames = w.frames[:len(w.frames)-1]
	if w.format == Pretty && nonEmpty {
		w.newlineIndent(len(w.frames) - 1)
	}
	w.out.WriteByte(closer)
}

// WritePropertyName writes a member name and its separator; only valid
// inside an object scope with no value outstanding.
func (w *Writer) WritePropertyName(name string) {
	if w.err != nil {
		return
	}
	top := w.top()
	if top.kind != WriterContextObject || top.expectValue {
		w.latch(ErrEncoding)
		return
	}
	if top.items > 0 {
		w.out.WriteByte(',')
	}
	if w.format == Pretty {
		w.newlineIndent(len(w.frames) - 1)
	}
	w.writeQuoted(name)
	w.out.WriteByte(':')
	if w.format == Pretty {
		w.out.WriteByte(' ')
	}
	top.expectValue = true
}

//------------------------------------------------------------------------------
// Encoding
//------------------------------------------------------------------------------

// complete reports whether exactly one full top-level value has been
// produced.
func (w *Writer) complete() bool {
	return len(w.frames) == 1 && w.frames[0].items == 1
}

// Encode copies the accumulated text into dst and returns the number of
// bytes written. The writer must be back at the root context with one
// complete value.
func (w *Writer) Encode(dst []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if !w.complete() {
		return 0, ErrEncoding
	}
	if len(dst) < w.out.Len() {
		return 0, ErrInsufficientBufferSize
	}
	return copy(dst, w.out.Bytes()), nil
}

// EncodeInBuffer returns the accumulated text in a new owned buffer.
func (w *Writer) EncodeInBuffer() (*Buffer, error) {
	if w.err != nil {
		return nil, w.err
	}
	if !w.complete() {
		return nil, ErrEncoding
	}
	return newBufferFrom(w.out.Bytes()), nil
}

// writeQuoted emits a quoted, escaped JSON string.
func (w *Writer) writeQuoted(s string) {
	w.out.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			w.out.WriteString(`\"`)
		case c == '\\':
			w.out.WriteString(`\\`)
		case c == '\b':
			w.out.WriteString(`\b`)
		case c == '\f':
			w.out.WriteString(`\f`)
		case c == '\n':
			w.out.WriteString(`\n`)
		case c == '\r':
			w.out.WriteString(`\r`)
		case c == '\t':
			w.out.WriteString(`\t`)
		case c < 0x20:
			w.out.WriteString(`\u00`)
			w.out.WriteByte(hexDigits[c>>4])
			w.out.WriteByte(hexDigits[c&0xF])
		default:
			w.out.WriteByte(c)
		}
	}
	w.out.WriteByte('"')
}

var hexDigits = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
