// Package idpool allocates unique, reusable 64-bit integers.
//
// It backs qid path allocation in the example backends: every new file
// needs a path value that no live file shares, and paths should be
// reused once a file is gone so a long-running server doesn't exhaust
// its id space.
package idpool

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Pool maintains a pool of free identifiers starting at 1 (0 is
// reserved so callers can use it as a "no id assigned" sentinel). It is
// safe for concurrent use. The zero value is an empty, ready-to-use
// Pool.
type Pool struct {
	next uint64

	mu    sync.Mutex
	freed []uint64
}

type uint64slice []uint64

func (s uint64slice) Less(i, j int) bool { return s[i] < s[j] }
func (s uint64slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s uint64slice) Len() int           { return len(s) }

// BUG(idpool): allocation is a contiguous sequence from [1, max). When
// an id X is Free'd but is not at the end of the sequence, it cannot be
// reused until every id greater than X has also been freed. This keeps
// Get lock-free at the cost of pathological fragmentation under unlucky
// free orders.

// Get returns a fresh, unique identifier.
func (p *Pool) Get() uint64 {
	return atomic.AddUint64(&p.next, 1)
}

// Free releases id for reuse by a later Get. Free must only be called
// once per id returned by Get.
func (p *Pool) Free(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !atomic.CompareAndSwapUint64(&p.next, id, id-1) {
		p.freed = append(p.freed, id)
		sort.Sort(uint64slice(p.freed))
	}
	for i := len(p.freed); i > 0; i-- {
		if atomic.CompareAndSwapUint64(&p.next, p.freed[i-1], p.freed[i-1]-1) {
			p.freed = p.freed[:i-1]
		} else {
			break
		}
	}
}
