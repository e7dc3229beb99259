package texslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityListInitialOrder(t *testing.T) {
	l := newPriorityList(4)
	assert.Equal(t, []int{0, 1, 2, 3}, l.slice())
	assert.Equal(t, 0, l.front())
	assert.Equal(t, 3, l.back())
}

func TestPriorityListMoveToFront(t *testing.T) {
	l := newPriorityList(4)
	l.moveToFront(2)
	assert.Equal(t, []int{2, 0, 1, 3}, l.slice())
	l.moveToFront(3)
	assert.Equal(t, []int{3, 2, 0, 1}, l.slice())
	assert.Equal(t, 1, l.back())
	l.moveToFront(3)
	assert.Equal(t, []int{3, 2, 0, 1}, l.slice())
}

func TestPriorityListMoveUp(t *testing.T) {
	l := newPriorityList(4)
	l.moveUp(3)
	assert.Equal(t, []int{0, 1, 3, 2}, l.slice())
	assert.Equal(t, 2, l.back())
	l.moveUp(1)
	assert.Equal(t, []int{1, 0, 3, 2}, l.slice())
	l.moveUp(1)
	assert.Equal(t, []int{1, 0, 3, 2}, l.slice())
}

func TestPriorityListSingleSlot(t *testing.T) {
	l := newPriorityList(1)
	l.moveUp(0)
	l.moveToFront(0)
	assert.Equal(t, []int{0}, l.slice())
	assert.Equal(t, 0, l.back())
}
