package styx9p

import (
	"fmt"
	"syscall"

	"styx9p/proto"
)

// Fid is the server-side state a connection keeps for one client fid:
// the identifying qid the last successful operation on it produced,
// and whatever a Filesystem wants to remember between calls.
//
// Aux is an untyped pointer rather than a generic type parameter: the
// library targets a Go toolchain and a surrounding ecosystem that
// predate generics, and every backend in this repository tags its own
// concrete aux type behind the interface, the same way os.File-style
// APIs tag a platform-specific handle.
type Fid struct {
	Num uint32
	Qid proto.Qid
	Aux interface{}
}

// errFidNotFound is reported to the client as ENOENT; it never
// escapes the dispatcher.
type errFidNotFound uint32

func (e errFidNotFound) Error() string { return fmt.Sprintf("fid %d not found", uint32(e)) }
func (e errFidNotFound) Unwrap() error { return syscall.ENOENT }

// fidTable is the per-connection fid → Fid mapping. Conn.serve reads,
// dispatches, and replies to one request at a time, so the table is
// only ever touched by that single goroutine and needs no lock of its
// own — the same invariant the dispatcher's request ordering gives the
// fid table in the reference implementation.
type fidTable struct {
	m map[uint32]*Fid
}

func newFidTable() *fidTable {
	return &fidTable{m: make(map[uint32]*Fid)}
}

// newFid constructs a Fid with no aux state, not yet installed in the
// table. The dispatcher inserts it once the backend callback that
// produces it succeeds.
func (t *fidTable) newFid(num uint32) *Fid {
	return &Fid{Num: num}
}

// take removes and returns the Fid for num, or reports errFidNotFound.
func (t *fidTable) take(num uint32) (*Fid, error) {
	f, ok := t.m[num]
	if !ok {
		return nil, errFidNotFound(num)
	}
	delete(t.m, num)
	return f, nil
}

// takeMany takes every fid in nums, in order. On the first miss it
// stops and returns both the error and the fids already taken, so the
// caller can reinsert them before reporting failure — the table must
// never lose an entry because a later fid in the same request was
// unknown.
func (t *fidTable) takeMany(nums ...uint32) ([]*Fid, error) {
	taken := make([]*Fid, 0, len(nums))
	for _, n := range nums {
		f, err := t.take(n)
		if err != nil {
			return taken, err
		}
		taken = append(taken, f)
	}
	return taken, nil
}

// insert installs f under f.Num, overwriting any previous entry. The
// dispatcher only ever calls this for fids it just took or freshly
// allocated, so overwriting is never observable as data loss.
func (t *fidTable) insert(f *Fid) {
	t.m[f.Num] = f
}

// insertAll reinserts every fid in fs, used after a failed dispatch to
// restore the table to its pre-take state.
func (t *fidTable) insertAll(fs []*Fid) {
	for _, f := range fs {
		t.insert(f)
	}
}

// remove drops num from the table without returning it, used by
// clunk and remove on success.
func (t *fidTable) remove(num uint32) {
	delete(t.m, num)
}

// reset clears every live fid, called when a Tversion restarts the
// session.
func (t *fidTable) reset() {
	t.m = make(map[uint32]*Fid)
}

// len reports the number of live fids, used by tests asserting fid
// closure after a sequence of operations.
func (t *fidTable) len() int {
	return len(t.m)
}
