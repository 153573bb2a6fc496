package jsondoc

// Array is a generic, exponentially growing sequence of owned references.
// Every list and map in the engine is built on it: JSON arrays hold
// *Value elements, JSON objects hold *Pair elements in insertion order.
//
// Slots [0,size) hold live references. Push acquires a reference on the
// stored item; Unref on the array releases every element it still holds.
type Array[T Owned] struct {
	object
	items []T
	size  int
}

// NewArray creates an empty array with the given initial capacity.
func NewArray[T Owned](capacity int) (*Array[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	return &Array[T]{object: newObject(), items: make([]T, capacity)}, nil
}

// Unref releases one reference; the final release releases every element.
func (a *Array[T]) Unref() {
	if a == nil {
		return
	}
	if !a.release() {
		return
	}
	var zero T
	for i := 0; i < a.size; i++ {
		a.items[i].Unref()
		a.items[i] = zero
	}
	a.items = nil
	a.size = 0
}

// Size returns the number of live elements.
func (a *Array[T]) Size() int {
	if a == nil {
		return 0
	}
	return a.size
}

// Capacity returns the number of allocated slots.
func (a *Array[T]) Capacity() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// Push appends item, acquiring a shared reference on it, and returns the
// new size. The array grows by the ~1.5x factor whenever a push would
// reach the current capacity.
func (a *Array[T]) Push(item T) int {
	if a == nil {
		return 0
	}
	item.Ref()
	return a.pushOwned(item)
}

// pushOwned appends item, taking over the caller's reference.
func (a *Array[T]) pushOwned(item T) int {
	if a.size+1 >= len(a.items) {
		grown := make([]T, growCapacity(len(a.items)))
		copy(grown, a.items[:a.size])
		a.items = grown
	}
	a.items[a.size] = item
	a.size++
	return a.size
}

// Pop removes and returns the last element. The element's reference
// transfers to the caller, who becomes responsible for releasing it.
func (a *Array[T]) Pop() (T, error) {
	var zero T
	if a == nil {
		return zero, ErrPointerIsNull
	}
	if a.size == 0 {
		return zero, ErrElementNotFound
	}
	a.size--
	item := a.items[a.size]
	a.items[a.size] = zero
	return item, nil
}

// Get returns a new reference to the element at index. The caller owns
// the returned reference.
func (a *Array[T]) Get(index int) (T, error) {
	var zero T
	if a == nil {
		return zero, ErrPointerIsNull
	}
	if index < 0 || index >= a.size {
		return zero, ErrIndexOutOfBounds
	}
	item := a.items[index]
	item.Ref()
	return item, nil
}

// peek returns the element at index without acquiring a reference.
func (a *Array[T]) peek(index int) (T, bool) {
	var zero T
	if a == nil || index < 0 || index >= a.size {
		return zero, false
	}
	return a.items[index], true
}

// SliceOf returns a new array holding new references to [start,end).
// Empty ranges and out-of-bounds ranges are rejected.
func (a *Array[T]) SliceOf(start, end int) (*Array[T], error) {
	if a == nil {
		return nil, ErrPointerIsNull
	}
	if start < 0 || start > end || end > a.size {
		return nil, ErrIndexOutOfBounds
	}
	if start == end {
		return nil, ErrInvalidArgument
	}
	out, err := NewArray[T](end - start)
	if err != nil {
		return nil, err
	}
	for i := start; i < end; i++ {
		out.Push(a.items[i])
	}
	return out, nil
}

// Concat returns a new array referencing lhs's elements followed by
// rhs's elements in order.
func Concat[T Owned](lhs, rhs *Array[T]) (*Array[T], error) {
	if lhs == nil || rhs == nil {
		return nil, ErrPointerIsNull
	}
	capacity := lhs.size + rhs.size
	if capacity == 0 {
		capacity = 1
	}
	out, err := NewArray[T](capacity)
	if err != nil {
		return nil, err
	}
	for i := 0; i < lhs.size; i++ {
		out.Push(lhs.items[i])
	}
	for i := 0; i < rhs.size; i++ {
		out.Push(rhs.items[i])
	}
	return out, nil
}

// Erase removes count elements beginning at start, shifting trailing
// elements left. A negative start counts from the end, so Erase(-1, 1)
// removes the last element. The removed references transfer into the
// returned array; the receiver no longer owns them. count == 0 yields an
// empty array without touching the receiver.
func (a *Array[T]) Erase(start, count int) (*Array[T], error) {
	if a == nil {
		return nil, ErrPointerIsNull
	}
	if count < 0 {
		return nil, ErrInvalidArgument
	}
	if count == 0 {
		return NewArray[T](1)
	}
	if start < 0 {
		start += a.size
	}
	if start < 0 || start >= a.size || start+count > a.size {
		return nil, ErrIndexOutOfBounds
	}
	removed, err := NewArray[T](count)
	if err != nil {
		return nil, err
	}
	for i := start; i < start+count; i++ {
		removed.pushOwned(a.items[i])
	}
	var zero T
	copy(a.items[start:], a.items[start+count:a.size])
	for i := a.size - count; i < a.size; i++ {
		a.items[i] = zero
	}
	a.size -= count
	return removed, nil
}

// Sort orders the elements in place using a stable insertion sort.
// Elements that compare equal keep their relative order.
func (a *Array[T]) Sort(cmp func(x, y T, ctx interface{}) int, ctx interface{}) {
	if a == nil || cmp == nil {
		return
	}
	for i := 1; i < a.size; i++ {
		item := a.items[i]
		j := i - 1
		for j >= 0 && cmp(a.items[j], item, ctx) > 0 {
			a.items[j+1] = a.items[j]
			j--
		}
		a.items[j+1] = item
	}
}

// Find returns a new reference to the first element matching pred.
func (a *Array[T]) Find(pred func(item T, ctx interface{}) bool, ctx interface{}) (T, error) {
	var zero T
	if a == nil {
		return zero, ErrPointerIsNull
	}
	if pred == nil {
		return zero, ErrInvalidArgument
	}
	for i := 0; i < a.size; i++ {
		if pred(a.items[i], ctx) {
			a.items[i].Ref()
			return a.items[i], nil
		}
	}
	return zero, ErrElementNotFound
}

// Filter returns a new array of new references to every element matching
// pred, in original order.
func (a *Array[T]) Filter(pred func(item T, ctx interface{}) bool, ctx interface{}) (*Array[T], error) {
	if a == nil {
		return nil, ErrPointerIsNull
	}
	if pred == nil {
		return nil, ErrInvalidArgument
	}
	capacity := a.size
	if capacity == 0 {
		capacity = 1
	}
	out, err := NewArray[T](capacity)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.size; i++ {
		if pred(a.items[i], ctx) {
			out.Push(a.items[i])
		}
	}
	return out, nil
}
