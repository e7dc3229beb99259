package texslot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/lumen/engine/gfx"
)

type bindCall struct {
	unit   int
	handle gfx.TextureHandle
}

type recordingBinder struct {
	calls []bindCall
}

func (r *recordingBinder) BindTexture(unit int, h gfx.TextureHandle) {
	r.calls = append(r.calls, bindCall{unit, h})
}

var nextGen uint64

func tex(h gfx.TextureHandle) *gfx.Texture {
	nextGen++
	return &gfx.Texture{Handle: h, Generation: nextGen}
}

func newManager(t *testing.T, n int) (*Manager, *recordingBinder) {
	t.Helper()
	b := &recordingBinder{}
	m, err := New(n, b)
	require.NoError(t, err)
	return m, b
}

// checkInvariants asserts the binding is a partial bijection and the order a
// permutation of every slot.
func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()
	order := m.Order()
	require.Len(t, order, m.Len())
	seen := make(map[int]bool)
	for _, s := range order {
		require.False(t, seen[s], "slot %d twice in order %v", s, order)
		require.True(t, s >= 0 && s < m.Len())
		seen[s] = true
	}
	for h, s := range m.slotOf {
		require.Equal(t, h, m.textureOf[s].handle, "slotOf/textureOf disagree for %d", h)
	}
	bound := 0
	for s, occ := range m.textureOf {
		if occ.handle == 0 {
			continue
		}
		bound++
		require.Equal(t, s, m.slotOf[occ.handle])
	}
	require.Equal(t, bound, len(m.slotOf))
	require.LessOrEqual(t, bound, m.Len())
}

func TestNewRejectsNoSlots(t *testing.T) {
	_, err := New(0, &recordingBinder{})
	assert.ErrorIs(t, err, ErrNoSlots)
}

func TestScenarioAPromotesOnReuse(t *testing.T) {
	m, b := newManager(t, 2)
	a, bt := tex(1), tex(2)

	sa := m.Bind(a)
	assert.Equal(t, sa, m.Order()[0])
	sb := m.Bind(bt)
	assert.NotEqual(t, sa, sb)
	assert.Equal(t, []int{sb, sa}, m.Order())

	assert.Equal(t, sa, m.Bind(a))
	assert.Equal(t, []int{sa, sb}, m.Order())
	assert.Len(t, b.calls, 2, "reuse must not reach the driver")
	checkInvariants(t, m)
}

func TestScenarioBEvictsBack(t *testing.T) {
	m, b := newManager(t, 2)
	a, bt, c := tex(1), tex(2), tex(3)

	sa := m.Bind(a)
	sb := m.Bind(bt)
	sc := m.Bind(c)

	assert.Equal(t, sa, sc)
	assert.Equal(t, []int{sc, sb}, m.Order())
	_, ok := m.SlotOf(a)
	assert.False(t, ok)
	s, ok := m.SlotOf(bt)
	require.True(t, ok)
	assert.Equal(t, sb, s)
	assert.Equal(t, c.Handle, m.TextureIn(sc))
	assert.Equal(t, bindCall{sc, c.Handle}, b.calls[2])
	assert.Equal(t, uint64(1), m.Stats().Evictions)
	checkInvariants(t, m)
}

func TestScenarioCAlternatingPairStaysResident(t *testing.T) {
	for _, n := range []int{2, 3, 8} {
		m, b := newManager(t, n)
		a, bt := tex(1), tex(2)
		sa, sb := m.Bind(a), m.Bind(bt)
		for i := 0; i < 100; i++ {
			assert.Equal(t, sa, m.Bind(a))
			assert.Equal(t, sb, m.Bind(bt))
		}
		assert.Len(t, b.calls, 2)
		assert.Zero(t, m.Stats().Evictions)
		checkInvariants(t, m)
	}
}

func TestPromotionMovesOneStep(t *testing.T) {
	m, b := newManager(t, 4)
	ts := []*gfx.Texture{tex(1), tex(2), tex(3), tex(4)}
	for _, x := range ts {
		m.Bind(x)
	}
	before := m.Order()
	calls := len(b.calls)

	s := m.Bind(ts[0]) // at the back after three newer binds
	require.Equal(t, before[3], s)
	assert.Equal(t, []int{before[0], before[1], s, before[2]}, m.Order())
	assert.Len(t, b.calls, calls)

	m.Bind(ts[3]) // already at the front
	assert.Equal(t, []int{before[0], before[1], s, before[2]}, m.Order())
}

func TestNewBindingEvictsExactlyBack(t *testing.T) {
	m, _ := newManager(t, 3)
	for h := gfx.TextureHandle(1); h <= 3; h++ {
		m.Bind(tex(h))
	}
	back := m.Order()[2]
	victim := m.TextureIn(back)

	fresh := tex(9)
	s := m.Bind(fresh)
	assert.Equal(t, back, s)
	assert.Equal(t, s, m.Order()[0])
	_, stillBound := m.slotOf[victim]
	assert.False(t, stillBound)
	assert.Equal(t, 3, m.Bound())
}

func TestStaleEntryTreatedAsUnbound(t *testing.T) {
	m, b := newManager(t, 2)
	old := tex(5)
	m.Bind(old)
	m.Bind(tex(6))
	order := m.Order()

	// same driver name, new texture
	recycled := tex(5)
	_, ok := m.SlotOf(recycled)
	assert.False(t, ok)

	got := m.Bind(recycled)
	assert.Equal(t, uint64(1), m.Stats().StaleDrops)
	assert.Equal(t, bindCall{got, 5}, b.calls[len(b.calls)-1])
	assert.Equal(t, order[1], got, "stale miss takes the back slot like any miss")
	checkInvariants(t, m)
}

func TestBindIgnoresUnloadedTexture(t *testing.T) {
	m, b := newManager(t, 1)
	order := m.Order()

	assert.Equal(t, -1, m.Bind(&gfx.Texture{Handle: 0, Generation: 99}))
	assert.Equal(t, -1, m.Bind(nil))
	assert.Empty(t, b.calls)
	assert.Equal(t, Stats{}, m.Stats())
	assert.Equal(t, order, m.Order())
	assert.Zero(t, m.Bound())

	s := m.Bind(tex(7))
	assert.Equal(t, 0, s)
	assert.Equal(t, []bindCall{{0, 7}}, b.calls)
	checkInvariants(t, m)
}

func TestForgetKeepsOrder(t *testing.T) {
	m, _ := newManager(t, 3)
	a := tex(1)
	s := m.Bind(a)
	m.Bind(tex(2))
	order := m.Order()

	m.Forget(a)
	assert.Equal(t, order, m.Order())
	assert.Zero(t, m.TextureIn(s))
	_, ok := m.SlotOf(a)
	assert.False(t, ok)

	m.Forget(a)
	checkInvariants(t, m)
}

func TestRandomBindsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := make([]*gfx.Texture, 12)
	for i := range pool {
		pool[i] = tex(gfx.TextureHandle(i + 1))
	}
	for _, n := range []int{1, 2, 5, 16} {
		m, b := newManager(t, n)
		for i := 0; i < 2000; i++ {
			x := pool[rng.Intn(len(pool))]
			s := m.Bind(x)
			got, ok := m.SlotOf(x)
			require.True(t, ok)
			require.Equal(t, s, got)
			checkInvariants(t, m)
		}
		st := m.Stats()
		assert.Equal(t, uint64(2000), st.Hits+st.Misses)
		assert.Equal(t, st.Misses, st.DriverBinds)
		assert.Len(t, b.calls, int(st.DriverBinds))
	}
}
