package jsondoc

// Owned is the shared-ownership capability every engine payload exposes.
// A holder of an owned reference is responsible for eventually releasing
// it with Unref; releasing the last reference to a compound payload
// transitively releases its children.
//
// Reference counts are deliberately not atomic: the engine is
// single-threaded by contract, and callers that share an instance across
// goroutines must serialize every mutating call themselves.
type Owned interface {
	Ref()
	Unref()
	RefCount() int
}

// maxLastError bounds the stored last-error message.
const maxLastError = 1024

// object is the embeddable ownership header. Concrete payloads embed it
// and implement Unref themselves so the final release can free their
// children.
type object struct {
	refs    int
	lastErr string
}

func newObject() object {
	return object{refs: 1}
}

// Ref acquires an additional shared reference.
func (o *object) Ref() {
	o.refs++
}

// RefCount reports the current number of shared references.
func (o *object) RefCount() int {
	return o.refs
}

// release drops one reference and reports whether the payload should be
// finalized. Unref on a payload already at zero is a caller bug; the
// count simply stays at zero.
func (o *object) release() bool {
	if o.refs <= 0 {
		return false
	}
	o.refs--
	return o.refs == 0
}

// setLastError records a bounded diagnostic message on the payload.
func (o *object) setLastError(msg string) {
	if len(msg) > maxLastError {
		msg = msg[:maxLastError]
	}
	o.lastErr = msg
}

// LastError returns the most recent diagnostic recorded on the payload.
func (o *object) LastError() string {
	return o.lastErr
}
