package texslot

// priorityList orders slot ids front (keep) to back (evict next). It is a
// doubly linked list threaded through two arrays indexed by slot id, so every
// slot is always present exactly once.
type priorityList struct {
	prev, next []int
	head, tail int
}

const none = -1

func newPriorityList(n int) *priorityList {
	l := &priorityList{prev: make([]int, n), next: make([]int, n), head: 0, tail: n - 1}
	for i := 0; i < n; i++ {
		l.prev[i] = i - 1
		l.next[i] = i + 1
	}
	l.next[n-1] = none
	return l
}

func (l *priorityList) front() int { return l.head }
func (l *priorityList) back() int  { return l.tail }

func (l *priorityList) unlink(s int) {
	p, n := l.prev[s], l.next[s]
	if p != none {
		l.next[p] = n
	} else {
		l.head = n
	}
	if n != none {
		l.prev[n] = p
	} else {
		l.tail = p
	}
}

// insertBefore links s immediately ahead of at.
func (l *priorityList) insertBefore(s, at int) {
	p := l.prev[at]
	l.prev[s] = p
	l.next[s] = at
	l.prev[at] = s
	if p != none {
		l.next[p] = s
	} else {
		l.head = s
	}
}

func (l *priorityList) moveToFront(s int) {
	if s == l.head {
		return
	}
	l.unlink(s)
	l.insertBefore(s, l.head)
}

// moveUp swaps s with its predecessor.
func (l *priorityList) moveUp(s int) {
	p := l.prev[s]
	if p == none {
		return
	}
	l.unlink(s)
	l.insertBefore(s, p)
}

// slice returns the order front to back.
func (l *priorityList) slice() []int {
	out := make([]int, 0, len(l.next))
	for s := l.head; s != none; s = l.next[s] {
		out = append(out, s)
	}
	return out
}
