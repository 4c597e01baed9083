package permute

import "iter"

// Stack is an immutable LIFO sequence. Push and Pop return new stacks and
// leave the receiver untouched; stacks derived from a common history share
// their tail nodes. The zero value is an empty stack.
type Stack[T any] struct {
	head *node[T]
	size int
}

type node[T any] struct {
	value T
	next  *node[T]
}

// New returns the empty stack.
func New[T any]() Stack[T] {
	return Stack[T]{}
}

// Size is the number of elements on the stack.
func (s Stack[T]) Size() int {
	return s.size
}

func (s Stack[T]) Empty() bool {
	return s.head == nil
}

// Push returns a stack with v on top of s. Only one node is allocated; the
// rest of the chain is shared with s.
func (s Stack[T]) Push(v T) Stack[T] {
	return Stack[T]{
		head: &node[T]{value: v, next: s.head},
		size: s.size + 1,
	}
}

// Pop returns the top value and the stack below it. Popping an empty stack
// returns the zero value, false and an empty stack.
func (s Stack[T]) Pop() (T, bool, Stack[T]) {
	if s.head == nil {
		var zero T
		return zero, false, Stack[T]{}
	}
	return s.head.value, true, Stack[T]{head: s.head.next, size: s.size - 1}
}

// Peek returns a copy of the top value.
func (s Stack[T]) Peek() (T, bool) {
	v, ok, _ := s.Pop()
	return v, ok
}

// All yields the values from top to bottom, i.e. in reverse push order.
// Each call starts a fresh traversal.
func (s Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := s.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Values returns the elements bottom to top (push order).
func (s Stack[T]) Values() []T {
	out := make([]T, s.size)
	i := s.size
	for v := range s.All() {
		i--
		out[i] = v
	}
	return out
}
