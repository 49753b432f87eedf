package ui

import "sync"

// frameSeq orders preview renders that run outside the editor lock, so an
// older frame never replaces a newer one.
type frameSeq struct {
	mu     sync.Mutex
	issued uint64
	shown  uint64
}

// next reserves the sequence number of a new frame.
func (q *frameSeq) next() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.issued++
	return q.issued
}

// publish calls show, under the lock, if frame seq is newer than every frame
// shown so far. It reports whether show ran.
func (q *frameSeq) publish(seq uint64, show func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if seq <= q.shown {
		return false
	}
	q.shown = seq
	show()
	return true
}
