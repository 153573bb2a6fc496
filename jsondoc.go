// Package jsondoc implements an in-memory JSON document engine: a
// reference-counted value model, a recursive-descent parser and a
// stack-based streaming writer.
//
// The engine is built for hostile input. Both the parser and the writer
// enforce an explicit nesting-depth counter instead of leaning on the
// native call stack, so deeply nested or fuzzed documents fail with a
// reported error rather than exhausting the process stack. Parsed values
// are immutable; serialized text is computed once per format and cached.
//
// Usage:
//
//	v, err := jsondoc.Parse([]byte(`{"name":"ada","version":1}`))
//	if err != nil {
//		return err
//	}
//	defer v.Unref()
//	name, _ := v.GetProperty("name")
//	text, _ := v.ToJSON(jsondoc.Pretty)
//
// None of the types in this package are safe for concurrent mutation;
// an Array, Value or Writer instance belongs to one call chain at a time.
package jsondoc

// MaxDepth is the maximum JSON nesting depth accepted by the parser and
// producible by the writer. Exceeding it is an error, never a stack
// overflow.
const MaxDepth = 512

// maxNumberLiteral bounds the scratch buffer a numeric literal is copied
// into before conversion. Longer literals are truncated; no legitimate
// JSON number comes close.
const maxNumberLiteral = 64

// Format selects the output style of serialized JSON text.
type Format uint8

const (
	// Compact emits no insignificant whitespace.
	Compact Format = iota
	// Pretty indents two spaces per nesting level and breaks every
	// element onto its own line.
	Pretty
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case Compact:
		return "compact"
	case Pretty:
		return "pretty"
	default:
		return "unknown"
	}
}
