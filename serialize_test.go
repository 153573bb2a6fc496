package jsondoc

import (
	"strings"
	"testing"
)

// TestRoundTripCompact tests that compact serialization reproduces
// whitespace-free input
func TestRoundTripCompact(t *testing.T) {
	inputs := []string{
		`{}`,
		`[]`,
		`null`,
		`true`,
		`false`,
		`0`,
		`-17`,
		`2.5`,
		`"hello"`,
		`[1,2,3]`,
		`{"a":1,"b":[true,null,"x"],"c":{"d":2.5}}`,
		`{"nested":{"deep":{"deeper":[{"k":"v"}]}}}`,
	}
	for _, in := range inputs {
		v := mustParse(t, in)
		out, err := v.ToJSONString(Compact)
		if err != nil {
			t.Fatalf("ToJSONString(%q) failed: %v", in, err)
		}
		if out != in {
			t.Errorf("Round trip of %s produced %s", in, out)
		}
		v.Unref()
	}
}

// TestRoundTripEscapedQuotes tests that escaped quotes survive
// re-serialization byte for byte
func TestRoundTripEscapedQuotes(t *testing.T) {
	in := `"Hello, \"World\"!"`
	v := mustParse(t, in)
	defer v.Unref()
	out, err := v.ToJSONString(Compact)
	if err != nil {
		t.Fatalf("ToJSONString failed: %v", err)
	}
	if out != in {
		t.Errorf("Expected %s, got %s", in, out)
	}
}

// TestEmptyObjectBothFormats tests {} under compact and pretty output
func TestEmptyObjectBothFormats(t *testing.T) {
	v := mustParse(t, `{}`)
	defer v.Unref()
	for _, format := range []Format{Compact, Pretty} {
		out, err := v.ToJSONString(format)
		if err != nil {
			t.Fatalf("ToJSONString(%v) failed: %v", format, err)
		}
		if out != "{}" {
			t.Errorf("%v: expected {}, got %q", format, out)
		}
	}
}

// TestSerializePretty tests the pretty layout produced through the
// writer mirror
func TestSerializePretty(t *testing.T) {
	v := mustParse(t, `{"a":[],"b":[1,2],"c":{"d":null}}`)
	defer v.Unref()
	out, err := v.ToJSONString(Pretty)
	if err != nil {
		t.Fatalf("ToJSONString failed: %v", err)
	}
	want := "{\n  \"a\": [],\n  \"b\": [\n    1,\n    2\n  ],\n  \"c\": {\n    \"d\": null\n  }\n}"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

// TestSerializeNumberVariants tests that the authoritative interpretation
// drives the rendered text
func TestSerializeNumberVariants(t *testing.T) {
	tests := []struct{ in, want string }{
		{`18446744073709551615`, `18446744073709551615`},
		{`-9223372036854775808`, `-9223372036854775808`},
		{`2.5`, `2.5`},
		{`1e+100`, `1e+100`},
		{`-0`, `0`}, // negative zero has no distinct integer rendering
	}
	for _, tt := range tests {
		v := mustParse(t, tt.in)
		out, err := v.ToJSONString(Compact)
		if err != nil {
			t.Fatalf("ToJSONString(%q) failed: %v", tt.in, err)
		}
		if out != tt.want {
			t.Errorf("%s rendered as %s, expected %s", tt.in, out, tt.want)
		}
		v.Unref()
	}
}

// TestRoundTripMaxDepth tests that a document nested to the shared depth
// ceiling both parses and re-serializes
func TestRoundTripMaxDepth(t *testing.T) {
	in := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	v := mustParse(t, in)
	defer v.Unref()
	out, err := v.ToJSONString(Compact)
	if err != nil {
		t.Fatalf("ToJSONString at the depth bound failed: %v", err)
	}
	if out != in {
		t.Error("Round trip at the depth bound altered the document")
	}
}

// TestReformat tests whitespace canonicalization in both directions
func TestReformat(t *testing.T) {
	in := []byte(" {\n  \"a\" : [ 1 , 2 ]\n} ")
	compact, err := Reformat(in, Compact)
	if err != nil {
		t.Fatalf("Reformat failed: %v", err)
	}
	if string(compact) != `{"a":[1,2]}` {
		t.Errorf("Expected compact form, got %s", compact)
	}

	pretty, err := Reformat(compact, Pretty)
	if err != nil {
		t.Fatalf("Reformat failed: %v", err)
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if string(pretty) != want {
		t.Errorf("Expected %q, got %q", want, pretty)
	}

	if _, err := Reformat([]byte(`{"a":`), Compact); err == nil {
		t.Error("Expected reformat of invalid input to fail")
	}
}

// TestSerializePreservesMemberOrder tests that objects serialize in
// insertion order
func TestSerializePreservesMemberOrder(t *testing.T) {
	in := `{"z":1,"a":2,"m":3}`
	v := mustParse(t, in)
	defer v.Unref()
	out, err := v.ToJSONString(Compact)
	if err != nil {
		t.Fatalf("ToJSONString failed: %v", err)
	}
	if out != in {
		t.Errorf("Expected member order preserved: %s, got %s", in, out)
	}
}
