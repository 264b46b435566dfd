package poseoverlay

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type fakeElement struct {
	slot   int
	active bool
	calls  int
}

func (e *fakeElement) SetActive(active bool) {
	e.active = active
	e.calls++
}

func TestPoolEnsureSize(t *testing.T) {

	var created []*fakeElement

	p := NewPool(func(slot int) *fakeElement {
		e := &fakeElement{slot: slot, active: true}
		created = append(created, e)
		return e
	})

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 3, p.EnsureSize(3))
	assert.Equal(t, 3, p.Len())

	// never shrinks
	assert.Equal(t, 0, p.EnsureSize(1))
	assert.Equal(t, 3, p.Len())

	assert.Equal(t, 2, p.EnsureSize(5))
	assert.Len(t, created, 5)

	for i, e := range created {
		assert.Equal(t, i, e.slot)
		assert.Same(t, e, p.Get(i))
		// new elements start hidden
		assert.False(t, e.active)
		assert.False(t, p.Active(i))
	}
}

func TestPoolSetActive(t *testing.T) {

	p := NewPool(func(slot int) *fakeElement {
		return &fakeElement{slot: slot}
	})
	p.EnsureSize(3)

	p.SetActive(1, true)
	p.SetActive(2, true)
	p.SetActive(2, false)

	assert.False(t, p.Active(0))
	assert.True(t, p.Active(1))
	assert.False(t, p.Active(2))
	assert.True(t, p.Get(1).active)
	assert.Equal(t, 1, p.ActiveCount())

	// out of range slots are never active
	assert.False(t, p.Active(-1))
	assert.False(t, p.Active(3))
}

func TestPoolStaleSlotIndex(t *testing.T) {

	p := NewPool(func(slot int) *fakeElement {
		return &fakeElement{slot: slot}
	})
	p.EnsureSize(2)

	defer func() {
		r := recover()
		require.NotNil(t, r)

		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrStaleSlotIndex)
	}()

	p.Get(2)
}
