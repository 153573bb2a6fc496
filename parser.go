package jsondoc

import (
	"bytes"
	"strconv"
)

// parseContext is the ephemeral state of one Parse call: the input
// slice, a cursor, and the explicit nesting-depth counter that bounds
// recursion independently of the native call stack.
type parseContext struct {
	data  []byte
	off   int
	depth int
}

// Parse builds a Value tree from UTF-8 JSON text. The first error
// anywhere aborts the whole parse and releases every partially built
// value; no partial tree is ever returned. Trailing non-whitespace after
// the root value is rejected.
func Parse(data []byte) (*Value, error) {
	ctx := &parseContext{data: data}
	ctx.skipWhitespace()
	if ctx.off >= len(ctx.data) {
		return nil, parseErrorf(ctx.off, "unexpected end of input")
	}
	v, err := ctx.parseValue()
	if err != nil {
		return nil, err
	}
	ctx.skipWhitespace()
	if ctx.off < len(ctx.data) {
		off := ctx.off
		v.Unref()
		return nil, parseErrorf(off, "unexpected trailing data after root value")
	}
	return v, nil
}

// Valid reports whether data is well-formed JSON.
func Valid(data []byte) bool {
	v, err := Parse(data)
	if err != nil {
		return false
	}
	v.Unref()
	return true
}

// skipWhitespace advances past the four JSON whitespace characters.
func (ctx *parseContext) skipWhitespace() {
	for ctx.off < len(ctx.data) {
		switch ctx.data[ctx.off] {
		case ' ', '\n', '\r', '\t':
			ctx.off++
		default:
			return
		}
	}
}

// parseValue dispatches on the next significant character.
func (ctx *parseContext) parseValue() (*Value, error) {
	if ctx.off >= len(ctx.data) {
		return nil, parseErrorf(ctx.off, "unexpected end of input")
	}
	switch c := ctx.data[ctx.off]; {
	case c == '{':
		return ctx.parseObject()
	case c == '[':
		return ctx.parseArray()
	case c == '"':
		buf, err := ctx.parseStringBuffer()
		if err != nil {
			return nil, err
		}
		return newStringValue(buf), nil
	case c == 't':
		return ctx.parseLiteral("true", newBoolValue(true))
	case c == 'f':
		return ctx.parseLiteral("false", newBoolValue(false))
	case c == 'n':
		return ctx.parseLiteral("null", newNullValue())
	case c == '-' || (c >= '0' && c <= '9'):
		return ctx.parseNumber()
	default:
		return nil, parseErrorf(ctx.off, "unexpected character %q", c)
	}
}

func (ctx *parseContext) parseLiteral(lit string, v *Value) (*Value, error) {
	if len(ctx.data)-ctx.off < len(lit) || !bytes.Equal(ctx.data[ctx.off:ctx.off+len(lit)], []byte(lit)) {
		v.Unref()
		return nil, parseErrorf(ctx.off, "invalid literal, expected %q", lit)
	}
	ctx.off += len(lit)
	return v, nil
}

// parseObject parses '{' members '}'. Member order is preserved.
func (ctx *parseContext) parseObject() (*Value, error) {
	ctx.depth++
	if ctx.depth > MaxDepth {
		return nil, parseErrorf(ctx.off, "maximum nesting depth %d exceeded", MaxDepth)
	}
	ctx.off++ // '{'
	v, err := newObjectValue()
	if err != nil {
		return nil, err
	}
	ctx.skipWhitespace()
	if ctx.off >= len(ctx.data) {
		v.Unref()
		return nil, parseErrorf(ctx.off, "unterminated object")
	}
	if ctx.data[ctx.off] == '}' {
		ctx.off++
		ctx.depth--
		return v, nil
	}
	for {
		ctx.skipWhitespace()
		if ctx.off >= len(ctx.data) || ctx.data[ctx.off] != '"' {
			v.Unref()
			return nil, parseErrorf(ctx.off, "object member name must be a string")
		}
		key, err := ctx.parseStringBuffer()
		if err != nil {
			v.Unref()
			return nil, err
		}
		ctx.skipWhitespace()
		if ctx.off >= len(ctx.data) || ctx.data[ctx.off] != ':' {
			off := ctx.off
			key.Unref()
			v.Unref()
			return nil, parseErrorf(off, "expected ':' after object member name")
		}
		ctx.off++
		ctx.skipWhitespace()
		child, err := ctx.parseValue()
		if err != nil {
			key.Unref()
			v.Unref()
			return nil, err
		}
		v.obj.pushOwned(newPair(key, child))
		ctx.skipWhitespace()
		if ctx.off >= len(ctx.data) {
			v.Unref()
			return nil, parseErrorf(ctx.off, "unterminated object")
		}
		switch ctx.data[ctx.off] {
		case ',':
			ctx.off++
		case '}':
			ctx.off++
			ctx.depth--
			return v, nil
		default:
			off := ctx.off
			c := ctx.data[off]
			v.Unref()
			return nil, parseErrorf(off, "expected ',' or '}' in object, got %q", c)
		}
	}
}

// parseArray parses '[' elements ']'.
func (ctx *parseContext) parseArray() (*Value, error) {
	ctx.depth++
	if ctx.depth > MaxDepth {
		return nil, parseErrorf(ctx.off, "maximum nesting depth %d exceeded", MaxDepth)
	}
	ctx.off++ // '['
	v, err := newArrayValue()
	if err != nil {
		return nil, err
	}
	ctx.skipWhitespace()
	if ctx.off >= len(ctx.data) {
		v.Unref()
		return nil, parseErrorf(ctx.off, "unterminated array")
	}
	if ctx.data[ctx.off] == ']' {
		ctx.off++
		ctx.depth--
		return v, nil
	}
	for {
		ctx.skipWhitespace()
		elem, err := ctx.parseValue()
		if err != nil {
			v.Unref()
			return nil, err
		}
		v.arr.pushOwned(elem)
		ctx.skipWhitespace()
		if ctx.off >= len(ctx.data) {
			v.Unref()
			return nil, parseErrorf(ctx.off, "unterminated array")
		}
		switch ctx.data[ctx.off] {
		case ',':
			ctx.off++
		case ']':
			ctx.off++
			ctx.depth--
			return v, nil
		default:
			off := ctx.off
			c := ctx.data[off]
			v.Unref()
			return nil, parseErrorf(off, "expected ',' or ']' in array, got %q", c)
		}
	}
}

// parseStringBuffer parses a quoted string into a new owned buffer,
// decoding escapes and validating raw UTF-8 as it copies.
func (ctx *parseContext) parseStringBuffer() (*Buffer, error) {
	start := ctx.off
	ctx.off++ // '"'
	buf, err := NewBuffer(16)
	if err != nil {
		return nil, err
	}
	for ctx.off < len(ctx.data) {
		c := ctx.data[ctx.off]
		switch {
		case c == '"':
			ctx.off++
			return buf, nil
		case c == '\\':
			if err := ctx.parseEscape(buf); err != nil {
				buf.Unref()
				return nil, err
			}
		case c < 0x20:
			off := ctx.off
			buf.Unref()
			return nil, parseErrorf(off, "invalid control character 0x%02x in string", c)
		case c < 0x80:
			buf.WriteByte(c)
			ctx.off++
		default:
			if err := ctx.copyUTF8(buf); err != nil {
				buf.Unref()
				return nil, err
			}
		}
	}
	buf.Unref()
	return nil, parseErrorf(start, "unterminated string")
}

// copyUTF8 validates one multi-byte sequence by lead-byte length and
// continuation-byte mask, then copies it verbatim.
func (ctx *parseContext) copyUTF8(buf *Buffer) error {
	c := ctx.data[ctx.off]
	var n int
	switch {
	case c&0xE0 == 0xC0:
		n = 2
	case c&0xF0 == 0xE0:
		n = 3
	case c&0xF8 == 0xF0:
		n = 4
	default:
		return parseErrorf(ctx.off, "invalid utf-8 lead byte 0x%02x", c)
	}
	if ctx.off+n > len(ctx.data) {
		return parseErrorf(ctx.off, "truncated utf-8 sequence")
	}
	for i := 1; i < n; i++ {
		if ctx.data[ctx.off+i]&0xC0 != 0x80 {
			return parseErrorf(ctx.off+i, "invalid utf-8 continuation byte 0x%02x", ctx.data[ctx.off+i])
		}
	}
	buf.Write(ctx.data[ctx.off : ctx.off+n])
	ctx.off += n
	return nil
}

// parseEscape decodes one backslash escape, including \uXXXX with
// surrogate-pair combination.
func (ctx *parseContext) parseEscape(buf *Buffer) error {
	ctx.off++ // '\\'
	if ctx.off >= len(ctx.data) {
		return parseErrorf(ctx.off, "unterminated escape sequence")
	}
	c := ctx.data[ctx.off]
	switch c {
	case '"', '\\', '/':
		buf.WriteByte(c)
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'u':
		return ctx.parseUnicodeEscape(buf)
	default:
		return parseErrorf(ctx.off, "invalid escape character %q", c)
	}
	ctx.off++
	return nil
}

// parseUnicodeEscape decodes \uXXXX at ctx.off (pointing at 'u'). A high
// surrogate must be followed by a \uXXXX low surrogate; the pair is
// merged with shift/mask arithmetic into a single encoded rune.
func (ctx *parseContext) parseUnicodeEscape(buf *Buffer) error {
	r1, err := ctx.hex4(ctx.off + 1)
	if err != nil {
		return err
	}
	ctx.off += 5
	r := r1
	switch {
	case r1 >= 0xDC00 && r1 <= 0xDFFF:
		return parseErrorf(ctx.off-5, "unexpected low surrogate \\u%04X", r1)
	case r1 >= 0xD800 && r1 <= 0xDBFF:
		if len(ctx.data)-ctx.off < 6 || ctx.data[ctx.off] != '\\' || ctx.data[ctx.off+1] != 'u' {
			return parseErrorf(ctx.off, "missing low surrogate after \\u%04X", r1)
		}
		r2, err := ctx.hex4(ctx.off + 2)
		if err != nil {
			return err
		}
		if r2 < 0xDC00 || r2 > 0xDFFF {
			return parseErrorf(ctx.off+2, "invalid low surrogate \\u%04X", r2)
		}
		r = 0x10000 + ((r1 - 0xD800) << 10) + (r2 - 0xDC00)
		ctx.off += 6
	}
	var enc [4]byte
	buf.Write(enc[:encodeRune(enc[:], r)])
	return nil
}

// hex4 reads four hex digits starting at off.
func (ctx *parseContext) hex4(off int) (rune, error) {
	if off+4 > len(ctx.data) {
		return 0, parseErrorf(off, "truncated unicode escape")
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := ctx.data[off+i]
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, parseErrorf(off, "invalid unicode escape \\u%s", ctx.data[off:off+4])
		}
	}
	return r, nil
}

// encodeRune writes the UTF-8 encoding of r into buf and returns its
// length.
func encodeRune(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = byte(0xC0 | (r >> 6))
		buf[1] = byte(0x80 | (r & 0x3F))
		return 2
	case r < 0x10000:
		buf[0] = byte(0xE0 | (r >> 12))
		buf[1] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[2] = byte(0x80 | (r & 0x3F))
		return 3
	default:
		buf[0] = byte(0xF0 | (r >> 18))
		buf[1] = byte(0x80 | ((r >> 12) & 0x3F))
		buf[2] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[3] = byte(0x80 | (r & 0x3F))
		return 4
	}
}

// parseNumber captures the maximal run of number characters, copies it
// into a bounded scratch buffer, and converts the literal as unsigned,
// signed and floating-point simultaneously.
func (ctx *parseContext) parseNumber() (*Value, error) {
	start := ctx.off
	for ctx.off < len(ctx.data) && isNumberChar(ctx.data[ctx.off]) {
		ctx.off++
	}
	// Never trust unbounded input length for a stack buffer.
	var scratch [maxNumberLiteral]byte
	n := copy(scratch[:], ctx.data[start:ctx.off])
	num, err := convertNumber(scratch[:n], start)
	if err != nil {
		return nil, err
	}
	return newNumberValue(num), nil
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

// convertNumber validates lit against the JSON number grammar and
// computes all three interpretations. Conversion overflow saturates the
// affected interpretation and is surfaced lazily by the accessors, never
// here.
func convertNumber(lit []byte, offset int) (number, error) {
	var num number
	i := 0
	if i < len(lit) && lit[i] == '-' {
		num.isNegative = true
		i++
	}
	if i >= len(lit) || lit[i] < '0' || lit[i] > '9' {
		return num, parseErrorf(offset, "invalid number literal %q", lit)
	}
	if lit[i] == '0' {
		i++
	} else {
		for i < len(lit) && lit[i] >= '0' && lit[i] <= '9' {
			i++
		}
	}
	intEnd := i
	if i < len(lit) && lit[i] == '.' {
		num.isReal = true
		i++
		if i >= len(lit) || lit[i] < '0' || lit[i] > '9' {
			return num, parseErrorf(offset, "missing digit after '.' in number %q", lit)
		}
		for i < len(lit) && lit[i] >= '0' && lit[i] <= '9' {
			i++
		}
	}
	if i < len(lit) && (lit[i] == 'e' || lit[i] == 'E') {
		num.isReal = true
		i++
		if i < len(lit) && (lit[i] == '+' || lit[i] == '-') {
			i++
		}
		if i >= len(lit) || lit[i] < '0' || lit[i] > '9' {
			return num, parseErrorf(offset, "missing digit in exponent of number %q", lit)
		}
		for i < len(lit) && lit[i] >= '0' && lit[i] <= '9' {
			i++
		}
	}
	if i != len(lit) {
		return num, parseErrorf(offset, "invalid number literal %q", lit)
	}

	s := string(lit)
	num.floatVal, _ = strconv.ParseFloat(s, 64)
	num.intVal, _ = strconv.ParseInt(s[:intEnd], 10, 64)
	if num.isNegative {
		num.uintVal = uint64(num.intVal)
	} else {
		num.uintVal, _ = strconv.ParseUint(s[:intEnd], 10, 64)
	}
	return num, nil
}
