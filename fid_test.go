package styx9p

import (
	"testing"

	"styx9p/proto"
)

func TestFidTableTakeInsert(t *testing.T) {
	tbl := newFidTable()
	f := tbl.newFid(1)
	f.Qid = proto.Qid{Path: 1}
	tbl.insert(f)

	if tbl.len() != 1 {
		t.Fatalf("len = %d, want 1", tbl.len())
	}

	got, err := tbl.take(1)
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got != f {
		t.Fatalf("take returned a different *Fid")
	}
	if tbl.len() != 0 {
		t.Fatalf("len after take = %d, want 0", tbl.len())
	}

	if _, err := tbl.take(1); err == nil {
		t.Fatal("take of an already-taken fid should fail")
	}
}

func TestFidTableTakeManyPartialFailure(t *testing.T) {
	tbl := newFidTable()
	tbl.insert(&Fid{Num: 1})
	tbl.insert(&Fid{Num: 2})

	taken, err := tbl.takeMany(1, 2, 3)
	if err == nil {
		t.Fatal("takeMany with an unknown fid should fail")
	}
	if len(taken) != 2 {
		t.Fatalf("taken = %d fids, want 2 already-taken fids returned alongside the error", len(taken))
	}
	tbl.insertAll(taken)
	if tbl.len() != 2 {
		t.Fatalf("len after insertAll = %d, want 2", tbl.len())
	}
}

func TestFidTableReset(t *testing.T) {
	tbl := newFidTable()
	tbl.insert(&Fid{Num: 1})
	tbl.insert(&Fid{Num: 2})
	tbl.reset()
	if tbl.len() != 0 {
		t.Fatalf("len after reset = %d, want 0", tbl.len())
	}
}

// TestFidTableSequentialAccess exercises the table the way Conn.serve
// actually does: one goroutine taking and reinserting many fids in
// sequence, never two requests touching it at once.
func TestFidTableSequentialAccess(t *testing.T) {
	tbl := newFidTable()
	const n = 64
	for i := uint32(0); i < n; i++ {
		tbl.insert(&Fid{Num: i})
	}

	for i := uint32(0); i < n; i++ {
		f, err := tbl.take(i)
		if err != nil {
			t.Fatalf("take(%d): %v", i, err)
		}
		f.Qid.Version++
		tbl.insert(f)
	}

	if got := tbl.len(); got != n {
		t.Fatalf("len = %d, want %d", got, n)
	}
}
