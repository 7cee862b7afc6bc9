package ledger

import "sync"

// refLocks serializes in-process work per reference number so two payments
// against the same installment never interleave. Entries are reference
// counted and dropped once the last holder releases.
type refLocks struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	mu      sync.Mutex
	holders int
}

func newRefLocks() *refLocks {
	return &refLocks{locks: make(map[string]*refLock)}
}

// lock blocks until the reference number is exclusively held and returns
// the release function.
func (r *refLocks) lock(ref string) func() {
	r.mu.Lock()
	l, ok := r.locks[ref]
	if !ok {
		l = &refLock{}
		r.locks[ref] = l
	}
	l.holders++
	r.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		r.mu.Lock()
		l.holders--
		if l.holders == 0 {
			delete(r.locks, ref)
		}
		r.mu.Unlock()
	}
}
