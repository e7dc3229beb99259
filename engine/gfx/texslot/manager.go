// Package texslot assigns textures to a fixed set of texture units.
//
// A texture that is already resident is promoted one step in the priority
// order each time it is requested. A texture that is not resident takes the
// slot at the back of the order and jumps straight to the front, so a freshly
// bound texture cannot be evicted by the very next new texture.
package texslot

import (
	"errors"
	"fmt"

	"github.com/hubastard/lumen/engine/gfx"
)

var ErrNoSlots = errors.New("texture slot count must be positive")

// Binder realizes a binding on the GPU.
type Binder interface {
	BindTexture(unit int, h gfx.TextureHandle)
}

type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	StaleDrops  uint64
	DriverBinds uint64
}

type occupant struct {
	handle     gfx.TextureHandle
	generation uint64
}

// Manager is not safe for concurrent use; it lives on the render thread.
type Manager struct {
	binder Binder
	order  *priorityList

	slotOf    map[gfx.TextureHandle]int
	textureOf []occupant // zero handle = empty

	stats Stats
}

func New(slots int, b Binder) (*Manager, error) {
	if slots < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoSlots, slots)
	}
	return &Manager{
		binder:    b,
		order:     newPriorityList(slots),
		slotOf:    make(map[gfx.TextureHandle]int, slots),
		textureOf: make([]occupant, slots),
	}, nil
}

// Bind returns the texture unit holding t, binding it first if needed.
// A nil texture or one without a driver handle gets -1 and changes nothing.
func (m *Manager) Bind(t *gfx.Texture) int {
	if t == nil || t.Handle == 0 {
		return -1
	}
	if s, ok := m.slotOf[t.Handle]; ok {
		if m.textureOf[s].generation == t.Generation {
			m.stats.Hits++
			m.order.moveUp(s)
			return s
		}
		// the handle was recycled by the driver for a new texture
		m.clear(s)
		m.stats.StaleDrops++
	}

	m.stats.Misses++
	s := m.freeSlot()
	m.slotOf[t.Handle] = s
	m.textureOf[s] = occupant{handle: t.Handle, generation: t.Generation}
	m.order.moveToFront(s)

	m.stats.DriverBinds++
	m.binder.BindTexture(s, t.Handle)
	return s
}

// freeSlot empties the slot at the back of the order without moving it.
func (m *Manager) freeSlot() int {
	s := m.order.back()
	if m.textureOf[s].handle != 0 {
		m.clear(s)
		m.stats.Evictions++
	}
	return s
}

func (m *Manager) clear(s int) {
	delete(m.slotOf, m.textureOf[s].handle)
	m.textureOf[s] = occupant{}
}

// Forget drops t's binding, if any. The slot keeps its position.
func (m *Manager) Forget(t *gfx.Texture) {
	s, ok := m.slotOf[t.Handle]
	if !ok || m.textureOf[s].generation != t.Generation {
		return
	}
	m.clear(s)
}

// SlotOf reports the slot holding t.
func (m *Manager) SlotOf(t *gfx.Texture) (int, bool) {
	s, ok := m.slotOf[t.Handle]
	if !ok || m.textureOf[s].generation != t.Generation {
		return 0, false
	}
	return s, true
}

// TextureIn returns the handle resident in slot, or 0.
func (m *Manager) TextureIn(slot int) gfx.TextureHandle {
	if slot < 0 || slot >= len(m.textureOf) {
		return 0
	}
	return m.textureOf[slot].handle
}

// Order returns the slots from highest to lowest priority.
func (m *Manager) Order() []int { return m.order.slice() }

func (m *Manager) Len() int { return len(m.textureOf) }

// Bound counts occupied slots.
func (m *Manager) Bound() int { return len(m.slotOf) }

func (m *Manager) Stats() Stats { return m.stats }
