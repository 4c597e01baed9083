package permute

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidConfiguration is returned by NewRule for tables that can never
// produce a sequence of the table's length.
var ErrInvalidConfiguration = errors.New("invalid rule configuration")

// Choice is one legal value at a position and the cost of picking it.
type Choice[T any] struct {
	Value T
	Cost  uint
}

// Step is a stack element: the chosen value and the cumulative cost of the
// sequence up to and including it.
type Step[T any] struct {
	Value T
	Total uint
}

// Rule is a position-indexed table of choices bounded by a cost ceiling.
// A sequence is admissible while its cumulative cost is strictly below the
// ceiling. Rules are immutable and safe for concurrent use.
type Rule[T any] struct {
	table   [][]Choice[T]
	ceiling uint
}

// NewRule builds a rule from table and ceiling. The table is copied.
func NewRule[T any](table [][]Choice[T], ceiling uint) (*Rule[T], error) {
	if ceiling == 0 {
		return nil, fmt.Errorf("%w: ceiling must be positive", ErrInvalidConfiguration)
	}
	cp := make([][]Choice[T], len(table))
	for i, choices := range table {
		if len(choices) == 0 {
			return nil, fmt.Errorf("%w: no choices at position %d", ErrInvalidConfiguration, i)
		}
		cp[i] = append([]Choice[T](nil), choices...)
	}
	return &Rule[T]{table: cp, ceiling: ceiling}, nil
}

// Len is the length of every complete sequence.
func (r *Rule[T]) Len() int {
	return len(r.table)
}

func (r *Rule[T]) Ceiling() uint {
	return r.ceiling
}

// Expand returns every admissible one-step extension of s, in table order.
// A stack that is already complete has no extensions.
func (r *Rule[T]) Expand(s Stack[Step[T]]) []Stack[Step[T]] {
	return r.AppendExpand(nil, s)
}

// AppendExpand appends the extensions of s to dst and returns the result.
func (r *Rule[T]) AppendExpand(dst []Stack[Step[T]], s Stack[Step[T]]) []Stack[Step[T]] {
	if s.Size() >= len(r.table) {
		return dst
	}
	var base uint
	if top, ok := s.Peek(); ok {
		base = top.Total
	}
	for _, c := range r.table[s.Size()] {
		total := addSaturating(base, c.Cost)
		if total >= r.ceiling {
			continue
		}
		dst = append(dst, s.Push(Step[T]{Value: c.Value, Total: total}))
	}
	return dst
}

func addSaturating(a, b uint) uint {
	sum, carry := bits.Add(a, b, 0)
	if carry != 0 {
		return ^uint(0)
	}
	return sum
}
