package ast

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Handle is any dense 32-bit node handle.
type Handle interface {
	~uint32
}

// List is a contiguous run of handles stored in an arena's list pool.
// The zero List is empty.
type List[H Handle] struct {
	start uint32
	len   uint32
}

func (l List[H]) Len() int {
	return int(l.len)
}

func (l List[H]) Empty() bool {
	return l.len == 0
}

// Arena is an append-only store of T addressed by H. Handles start at 1;
// 0 is reserved for "no node".
type Arena[H Handle, T any] struct {
	data []T
	pool []H
}

func NewArena[H Handle, T any](capHint uint) *Arena[H, T] {
	return &Arena[H, T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its handle.
func (a *Arena[H, T]) Allocate(value T) H {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	return H(n)
}

// Get returns a pointer to the node behind h. A zero or foreign handle is
// a logic error and panics.
func (a *Arena[H, T]) Get(h H) *T {
	if h == 0 || int(h) > len(a.data) {
		panic(fmt.Sprintf("ast: handle %d out of range (len %d)", uint32(h), len(a.data)))
	}
	return &a.data[h-1]
}

func (a *Arena[H, T]) Len() uint32 {
	// переполнение невозможно: Allocate уже проверил
	return uint32(len(a.data)) // #nosec G115
}

// Slice is a read-only view of every node in allocation order.
func (a *Arena[H, T]) Slice() []T {
	return a.data[:len(a.data):len(a.data)]
}

// Entries yields every handle with its node in allocation order.
func (a *Arena[H, T]) Entries() iter.Seq2[H, *T] {
	return func(yield func(H, *T) bool) {
		for i := range a.data {
			if !yield(H(i+1), &a.data[i]) { // #nosec G115
				return
			}
		}
	}
}

// NewList copies handles into the pool.
func (a *Arena[H, T]) NewList(handles ...H) List[H] {
	if len(handles) == 0 {
		return List[H]{}
	}
	start := a.poolLen()
	a.pool = append(a.pool, handles...)
	return List[H]{start: start, len: a.poolLen() - start}
}

// NewListSeq drains seq into the pool. seq must not allocate lists in the
// same arena while it runs.
func (a *Arena[H, T]) NewListSeq(seq iter.Seq[H]) List[H] {
	start := a.poolLen()
	for h := range seq {
		a.pool = append(a.pool, h)
	}
	n := a.poolLen() - start
	if n == 0 {
		return List[H]{}
	}
	return List[H]{start: start, len: n}
}

// Items returns the list as an ordered slice backed by the pool.
// The slice is clipped, so appending to it never clobbers other lists.
func (a *Arena[H, T]) Items(l List[H]) []H {
	if l.len == 0 {
		return nil
	}
	end := l.start + l.len
	return a.pool[l.start:end:end]
}

// All iterates the list; every call starts from the first element.
func (a *Arena[H, T]) All(l List[H]) iter.Seq[H] {
	items := a.Items(l)
	return func(yield func(H) bool) {
		for _, h := range items {
			if !yield(h) {
				return
			}
		}
	}
}

func (a *Arena[H, T]) poolLen() uint32 {
	n, err := safecast.Conv[uint32](len(a.pool))
	if err != nil {
		panic(fmt.Errorf("ast: list pool overflow: %w", err))
	}
	return n
}
