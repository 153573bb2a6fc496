package jsondoc

// Buffer is an owned, exponentially growing byte buffer. The value model
// uses it for string payloads and cached serialized text; the writer uses
// it for accumulated output.
type Buffer struct {
	object
	data []byte
}

// NewBuffer creates an empty buffer with the given initial capacity.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	return &Buffer{object: newObject(), data: make([]byte, 0, capacity)}, nil
}

// newBufferFrom creates a buffer owning a copy of b.
func newBufferFrom(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{object: newObject(), data: data}
}

// Unref releases one reference; the final release drops the backing
// storage.
func (b *Buffer) Unref() {
	if b == nil {
		return
	}
	if b.release() {
		b.data = nil
	}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	if b == nil {
		return 0
	}
	return cap(b.data)
}

// Bytes returns the accumulated contents. The slice is valid until the
// buffer's last reference is released.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// String returns the accumulated contents as a string.
func (b *Buffer) String() string {
	if b == nil {
		return ""
	}
	return string(b.data)
}

// Write appends p to the buffer.
func (b *Buffer) Write(p []byte) {
	b.grow(len(p))
	b.data = append(b.data, p...)
}

// WriteByte appends a single byte. The error is always nil; the
// signature matches io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.grow(1)
	b.data = append(b.data, c)
	return nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) {
	b.grow(len(s))
	b.data = append(b.data, s...)
}

// reset truncates the buffer for reuse, keeping the backing storage.
func (b *Buffer) reset() {
	b.data = b.data[:0]
}

// grow ensures room for n more bytes, expanding by the engine's ~1.5x
// factor until the requirement is met.
func (b *Buffer) grow(n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}
	newCap := cap(b.data)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		newCap = growCapacity(newCap)
	}
	data := make([]byte, len(b.data), newCap)
	copy(data, b.data)
	b.data = data
}

// growCapacity steps a capacity up by the shared growth factor: ~1.5x,
// kept below the golden ratio so freed blocks remain reusable.
func growCapacity(c int) int {
	return (c*3 + 1) / 2
}
