package jsondoc

// writeValue mirrors a value tree onto the streaming writer. Structural
// correctness comes from the writer's frame stack, and any error latched
// along the way surfaces at encode time.
func writeValue(w *Writer, v *Value) {
	switch v.Kind() {
	case KindNull:
		w.WriteNull()
	case KindBool:
		w.WriteBool(v.boolean)
	case KindNumber:
		switch {
		case v.num.isReal:
			w.WriteDouble(v.num.floatVal)
		case v.num.isNegative:
			w.WriteInt(v.num.intVal)
		default:
			w.WriteUint(v.num.uintVal)
		}
	case KindString:
		w.WriteString(v.str.String())
	case KindArray:
		w.WriteStartArray()
		for i := 0; i < v.arr.Size(); i++ {
			elem, _ := v.arr.peek(i)
			writeValue(w, elem)
		}
		w.WriteEndArray()
	case KindObject:
		w.WriteStartObject()
		for i := 0; i < v.obj.Size(); i++ {
			p, _ := v.obj.peek(i)
			w.WritePropertyName(p.key.String())
			writeValue(w, p.val)
		}
		w.WriteEndObject()
	}
}

// Reformat parses data and re-serializes it in the requested format,
// canonicalizing whitespace, escapes and number text.
func Reformat(data []byte, format Format) ([]byte, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	defer v.Unref()
	out, err := v.ToJSON(format)
	if err != nil {
		return nil, err
	}
	// Copy out: the cached buffer is released with the value.
	text := make([]byte, len(out))
	copy(text, out)
	return text, nil
}
