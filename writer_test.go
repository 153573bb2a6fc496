package jsondoc

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func encodeString(t *testing.T, w *Writer) string {
	t.Helper()
	buf, err := w.EncodeInBuffer()
	if err != nil {
		t.Fatalf("EncodeInBuffer failed: %v", err)
	}
	defer buf.Unref()
	return buf.String()
}

// TestWriterCompactObject tests a full compact document
func TestWriterCompactObject(t *testing.T) {
	w := NewWriter(Compact)
	w.WriteStartObject()
	w.WritePropertyName("name")
	w.WriteString("ada")
	w.WritePropertyName("age")
	w.WriteUint(36)
	w.WritePropertyName("score")
	w.WriteDouble(2.5)
	w.WritePropertyName("delta")
	w.WriteInt(-3)
	w.WritePropertyName("ok")
	w.WriteBool(true)
	w.WritePropertyName("meta")
	w.WriteNull()
	w.WriteEndObject()

	want := `{"name":"ada","age":36,"score":2.5,"delta":-3,"ok":true,"meta":null}`
	if got := encodeString(t, w); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

// TestWriterPrettyScenario tests the canonical pretty layout:
// start_object, property "a", start_array, end_array, end_object
func TestWriterPrettyScenario(t *testing.T) {
	w := NewWriter(Pretty)
	w.WriteStartObject()
	w.WritePropertyName("a")
	w.WriteStartArray()
	w.WriteEndArray()
	w.WriteEndObject()

	want := "{\n  \"a\": []\n}"
	if got := encodeString(t, w); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// TestWriterPrettyNesting tests indentation proportional to depth
func TestWriterPrettyNesting(t *testing.T) {
	w := NewWriter(Pretty)
	w.WriteStartObject()
	w.WritePropertyName("list")
	w.WriteStartArray()
	w.WriteUint(1)
	w.WriteStartObject()
	w.WritePropertyName("x")
	w.WriteBool(false)
	w.WriteEndObject()
	w.WriteEndArray()
	w.WriteEndObject()

	want := "{\n  \"list\": [\n    1,\n    {\n      \"x\": false\n    }\n  ]\n}"
	if got := encodeString(t, w); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// TestWriterEmptyScopes tests that empty scopes stay inline in both formats
func TestWriterEmptyScopes(t *testing.T) {
	for _, format := range []Format{Compact, Pretty} {
		w := NewWriter(format)
		w.WriteStartObject()
		w.WriteEndObject()
		if got := encodeString(t, w); got != "{}" {
			t.Errorf("%v: expected {}, got %q", format, got)
		}

		w.Reset()
		w.WriteStartArray()
		w.WriteEndArray()
		if got := encodeString(t, w); got != "[]" {
			t.Errorf("%v: expected [], got %q", format, got)
		}
	}
}

// TestWriterStickyError tests that the first grammar violation latches
// and every later call is a no-op until Reset
func TestWriterStickyError(t *testing.T) {
	w := NewWriter(Compact)
	w.WriteStartObject()
	w.WriteBool(true) // scalar in object context with no property name
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Fatalf("Expected ErrEncoding latched, got %v", w.Err())
	}
	sizeAfter := w.EncodedSize()

	// Everything after the latch is ignored.
	w.WritePropertyName("a")
	w.WriteUint(1)
	w.WriteEndObject()
	if w.EncodedSize() != sizeAfter {
		t.Error("Expected no output after the latch")
	}
	if _, err := w.EncodeInBuffer(); !errors.Is(err, ErrEncoding) {
		t.Errorf("Expected the latched error at encode time, got %v", err)
	}

	// Reset clears the latch.
	w.Reset()
	w.WriteBool(true)
	if got := encodeString(t, w); got != "true" {
		t.Errorf("Expected true after reset, got %q", got)
	}
}

// TestWriterGrammarViolations tests the state machine's rejection cases
func TestWriterGrammarViolations(t *testing.T) {
	// end_array while in object context
	w := NewWriter(Compact)
	w.WriteStartObject()
	w.WriteEndArray()
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected ErrEncoding for end_array in object, got %v", w.Err())
	}

	// property name while in array context
	w = NewWriter(Compact)
	w.WriteStartArray()
	w.WritePropertyName("a")
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected ErrEncoding for property name in array, got %v", w.Err())
	}

	// property name at root
	w = NewWriter(Compact)
	w.WritePropertyName("a")
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected ErrEncoding for property name at root, got %v", w.Err())
	}

	// second root value
	w = NewWriter(Compact)
	w.WriteBool(true)
	w.WriteBool(false)
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected ErrEncoding for second root value, got %v", w.Err())
	}

	// closing an object with a property name outstanding
	w = NewWriter(Compact)
	w.WriteStartObject()
	w.WritePropertyName("a")
	w.WriteEndObject()
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected ErrEncoding for dangling property name, got %v", w.Err())
	}

	// closing the root
	w = NewWriter(Compact)
	w.WriteEndObject()
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected ErrEncoding for closing the root, got %v", w.Err())
	}
}

// TestWriterDepthBound tests the writer's explicit nesting ceiling
func TestWriterDepthBound(t *testing.T) {
	// MaxDepth open scopes succeed; the next one latches.
	w := NewWriter(Compact)
	for i := 0; i < MaxDepth; i++ {
		w.WriteStartArray()
	}
	if w.Err() != nil {
		t.Fatalf("Expected nesting at the bound to be accepted, got %v", w.Err())
	}
	w.WriteStartArray()
	if !errors.Is(w.Err(), ErrMaxDepthExceeded) {
		t.Errorf("Expected ErrMaxDepthExceeded, got %v", w.Err())
	}
	// Depth-exceeded is an encoding-state error.
	if !errors.Is(w.Err(), ErrEncoding) {
		t.Errorf("Expected depth error to match ErrEncoding, got %v", w.Err())
	}
}

// TestWriterIncomplete tests that encode requires one complete root value
func TestWriterIncomplete(t *testing.T) {
	w := NewWriter(Compact)
	if _, err := w.EncodeInBuffer(); !errors.Is(err, ErrEncoding) {
		t.Errorf("Expected ErrEncoding for empty writer, got %v", err)
	}

	w.WriteStartArray()
	if _, err := w.EncodeInBuffer(); !errors.Is(err, ErrEncoding) {
		t.Errorf("Expected ErrEncoding for unclosed scope, got %v", err)
	}
}

// TestWriterEncode tests the copy-into-buffer surface
func TestWriterEncode(t *testing.T) {
	w := NewWriter(Compact)
	w.WriteStartArray()
	w.WriteUint(1)
	w.WriteUint(2)
	w.WriteEndArray()

	size := w.EncodedSize()
	if size != len("[1,2]") {
		t.Fatalf("Expected encoded size %d, got %d", len("[1,2]"), size)
	}

	small := make([]byte, size-1)
	if _, err := w.Encode(small); !errors.Is(err, ErrInsufficientBufferSize) {
		t.Errorf("Expected ErrInsufficientBufferSize, got %v", err)
	}

	dst := make([]byte, size)
	n, err := w.Encode(dst)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(dst[:n]) != "[1,2]" {
		t.Errorf("Expected [1,2], got %q", dst[:n])
	}
}

// TestWriterContext tests scope reporting
func TestWriterContext(t *testing.T) {
	w := NewWriter(Compact)
	if w.Context() != WriterContextRoot {
		t.Errorf("Expected root context, got %v", w.Context())
	}
	w.WriteStartArray()
	if w.Context() != WriterContextArray {
		t.Errorf("Expected array context, got %v", w.Context())
	}
	w.WriteStartObject()
	if w.Context() != WriterContextObject {
		t.Errorf("Expected object context, got %v", w.Context())
	}
	w.WriteEndObject()
	w.WriteEndArray()
	if w.Context() != WriterContextRoot {
		t.Errorf("Expected root context after closing, got %v", w.Context())
	}
}

// TestWriterEscaping tests string escaping of quotes and control bytes
func TestWriterEscaping(t *testing.T) {
	w := NewWriter(Compact)
	w.WriteString("a\"b\\c\nd\x01e")
	want := `"a\"b\\c\nd\u0001e"`
	if got := encodeString(t, w); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

// TestWriterBigint tests quoted-decimal rendering of big integers
func TestWriterBigint(t *testing.T) {
	b, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	w := NewWriter(Compact)
	w.WriteStartArray()
	w.WriteBigint(b)
	w.WriteEndArray()
	want := `["340282366920938463463374607431768211455"]`
	if got := encodeString(t, w); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	w.Reset()
	w.WriteBigint(nil)
	if !errors.Is(w.Err(), ErrPointerIsNull) {
		t.Errorf("Expected ErrPointerIsNull, got %v", w.Err())
	}
}

// TestWriterRawValue tests pre-encoded splicing and the empty-raw reject
func TestWriterRawValue(t *testing.T) {
	w := NewWriter(Compact)
	w.WriteStartArray()
	w.WriteRawValue([]byte(`{"pre":"encoded"}`))
	w.WriteUint(7)
	w.WriteEndArray()
	want := `[{"pre":"encoded"},7]`
	if got := encodeString(t, w); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	w.Reset()
	w.WriteRawValue(nil)
	if !errors.Is(w.Err(), ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for empty raw value, got %v", w.Err())
	}
}

// TestWriterDouble tests locale-independent round-trip float text
func TestWriterDouble(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{2.5, "2.5"},
		{-0.5, "-0.5"},
		{3.4028234663852886e+38, "3.4028234663852886e+38"},
		{1e100, "1e+100"},
	}
	for _, tt := range tests {
		w := NewWriter(Compact)
		w.WriteDouble(tt.f)
		if got := encodeString(t, w); got != tt.want {
			t.Errorf("WriteDouble(%v): expected %s, got %s", tt.f, tt.want, got)
		}
	}

	w := NewWriter(Compact)
	w.WriteDouble(math.NaN())
	if !errors.Is(w.Err(), ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for NaN, got %v", w.Err())
	}
	w.Reset()
	w.WriteDouble(math.Inf(1))
	if !errors.Is(w.Err(), ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for +Inf, got %v", w.Err())
	}
}
