package router

// Stack holds the pages left behind when the frontend opens a new one.
// The zero value is an empty stack.
type Stack[T any] struct {
	entries []T
}

// Push adds v on top of the stack.
// Called when a page is replaced by the next one.
func (s *Stack[T]) Push(v T) {
	s.entries = append(s.entries, v)
}

// Pop removes and returns the top entry.
// The second result is false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.entries) == 0 {
		return zero, false
	}
	v := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = zero
	s.entries = s.entries[:len(s.entries)-1]
	return v, true
}

// Peek returns the top entry without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.entries) == 0 {
		var zero T
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack[T]) Len() int {
	return len(s.entries)
}

// Drain pops every entry, calling fn on each from the top down.
func (s *Stack[T]) Drain(fn func(T)) {
	for {
		v, ok := s.Pop()
		if !ok {
			return
		}
		fn(v)
	}
}
