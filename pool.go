package poseoverlay

import (
	"errors"
	"fmt"
)

// ErrStaleSlotIndex is the panic value (wrapped) raised when a pool slot is
// accessed beyond the size of the pool
var ErrStaleSlotIndex = errors.New("stale slot index")

// Activator is a visual element that can be shown or hidden
type Activator interface {
	SetActive(active bool)
}

// Pool is a grow only pool of reusable visual elements.  Slots are never
// removed, unused slots are deactivated and handed out again when the pool
// needs to be that size again.
type Pool[T Activator] struct {
	// elements in slot order
	elements []T
	// active state of each slot
	active []bool
	// factory creates the element for a new slot
	factory func(slot int) T
}

// NewPool creates a new empty pool that creates elements with factory
func NewPool[T Activator](factory func(slot int) T) *Pool[T] {
	return &Pool[T]{
		factory: factory,
	}
}

// EnsureSize creates new elements until the pool holds at least n and returns
// the number of elements created.  New elements start deactivated.
func (p *Pool[T]) EnsureSize(n int) int {

	created := 0

	for len(p.elements) < n {
		e := p.factory(len(p.elements))
		e.SetActive(false)

		p.elements = append(p.elements, e)
		p.active = append(p.active, false)
		created++
	}

	return created
}

// Get returns the element in slot i
func (p *Pool[T]) Get(i int) T {
	p.check(i)
	return p.elements[i]
}

// SetActive shows or hides the element in slot i
func (p *Pool[T]) SetActive(i int, active bool) {
	p.check(i)
	p.active[i] = active
	p.elements[i].SetActive(active)
}

// Active returns true if the element in slot i is shown.  Slots beyond the
// pool size are reported as inactive.
func (p *Pool[T]) Active(i int) bool {
	if i < 0 || i >= len(p.active) {
		return false
	}
	return p.active[i]
}

// Len returns the number of elements created
func (p *Pool[T]) Len() int {
	return len(p.elements)
}

// ActiveCount returns the number of shown elements
func (p *Pool[T]) ActiveCount() int {
	n := 0
	for _, a := range p.active {
		if a {
			n++
		}
	}
	return n
}

// check panics if slot i has not been created
func (p *Pool[T]) check(i int) {
	if i < 0 || i >= len(p.elements) {
		panic(fmt.Errorf("%w: slot %d, pool size %d", ErrStaleSlotIndex, i,
			len(p.elements)))
	}
}
