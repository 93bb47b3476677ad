package styx9p

import (
	"context"
	"net"
	"testing"
	"time"

	"styx9p/proto"
)

// orderedFS answers Rattach immediately and records the sequence in
// which Rread calls arrive, so a test can confirm the dispatch loop
// never starts one request before the previous one's reply was
// written.
type orderedFS struct {
	UnimplementedFilesystem
	seen chan uint64
}

func newOrderedFS() *orderedFS {
	return &orderedFS{seen: make(chan uint64, 8)}
}

func (fs *orderedFS) Rversion(ctx context.Context, msize uint32, version string) (proto.Rversion, error) {
	return proto.Rversion{Msize: msize, Version: version}, nil
}

func (fs *orderedFS) Rattach(ctx context.Context, fid, afid *Fid, uname, aname string, nuname uint32) (proto.Rattach, error) {
	return proto.Rattach{Qid: proto.Qid{Type: proto.QTDIR, Path: 1}}, nil
}

func (fs *orderedFS) Rread(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rread, error) {
	fs.seen <- offset
	return proto.Rread{}, nil
}

// TestConnRepliesInRequestOrder exercises the dispatch loop's central
// guarantee: requests are read, dispatched, and replied to strictly
// one at a time, so two requests sent back to back are answered (and
// observed by the backend) in the order they were sent, never
// interleaved.
func TestConnRepliesInRequestOrder(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	fs := newOrderedFS()
	conn := newConn(server, fs, defaultOptions())

	serveErr := make(chan error, 1)
	go func() { serveErr <- conn.serve(context.Background()) }()

	enc := proto.NewEncoder(client)
	dec := proto.NewDecoder(client, proto.DefaultMsize)

	if err := enc.Encode(0, proto.Tversion{Msize: proto.DefaultMsize, Version: proto.VersionL}); err != nil {
		t.Fatalf("encode Tversion: %v", err)
	}
	if _, err := expect(t, dec, 0); err != nil {
		t.Fatalf("Rversion: %v", err)
	}

	if err := enc.Encode(1, proto.Tattach{Fid: 1, Afid: proto.NOFID, Uname: "glenda", Aname: ""}); err != nil {
		t.Fatalf("encode Tattach: %v", err)
	}
	if _, err := expect(t, dec, 1); err != nil {
		t.Fatalf("Rattach: %v", err)
	}

	// net.Pipe is unbuffered and the server writes each reply before
	// reading the next frame, so the requests are sent from their own
	// goroutine while this one reads the replies.
	const n = 5
	encErr := make(chan error, 1)
	go func() {
		for i := uint64(0); i < n; i++ {
			if err := enc.Encode(uint16(2+i), proto.Tread{Fid: 1, Offset: i, Count: 1}); err != nil {
				encErr <- err
				return
			}
		}
		encErr <- nil
	}()

	for i := uint64(0); i < n; i++ {
		msg, err := dec.Next()
		if err != nil {
			t.Fatalf("decode reply %d: %v", i, err)
		}
		if msg.Tag != uint16(2+i) {
			t.Fatalf("reply %d came back as tag %d, want %d — replies arrived out of request order", i, msg.Tag, 2+i)
		}
		select {
		case off := <-fs.seen:
			if off != i {
				t.Fatalf("backend observed offset %d at position %d, want %d — requests dispatched out of order", off, i, i)
			}
		default:
			t.Fatalf("reply for tag %d arrived before its backend callback ran", msg.Tag)
		}
	}
	if err := <-encErr; err != nil {
		t.Fatalf("encode Tread: %v", err)
	}

	client.Close()
	select {
	case <-serveErr:
	case <-time.After(2 * time.Second):
		t.Fatal("conn.serve never returned after the transport closed")
	}
}

// TestConnFlushIsNoOpAfterReply exercises Tflush's documented behavior
// under the library's single-threaded dispatch path: by the time a
// Tflush frame can be read, the request it names has already been
// replied to (no pipelining means nothing is ever still running), so
// the only contract left is that Rflush always comes back.
func TestConnFlushIsNoOpAfterReply(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	fs := newOrderedFS()
	conn := newConn(server, fs, defaultOptions())

	serveErr := make(chan error, 1)
	go func() { serveErr <- conn.serve(context.Background()) }()

	enc := proto.NewEncoder(client)
	dec := proto.NewDecoder(client, proto.DefaultMsize)

	if err := enc.Encode(0, proto.Tversion{Msize: proto.DefaultMsize, Version: proto.VersionL}); err != nil {
		t.Fatalf("encode Tversion: %v", err)
	}
	if _, err := expect(t, dec, 0); err != nil {
		t.Fatalf("Rversion: %v", err)
	}

	if err := enc.Encode(1, proto.Tattach{Fid: 1, Afid: proto.NOFID, Uname: "glenda", Aname: ""}); err != nil {
		t.Fatalf("encode Tattach: %v", err)
	}
	if _, err := expect(t, dec, 1); err != nil {
		t.Fatalf("Rattach: %v", err)
	}

	readTag := uint16(2)
	if err := enc.Encode(readTag, proto.Tread{Fid: 1, Offset: 0, Count: 1}); err != nil {
		t.Fatalf("encode Tread: %v", err)
	}
	if _, err := expect(t, dec, readTag); err != nil {
		t.Fatalf("Rread: %v", err)
	}

	if err := enc.Encode(3, proto.Tflush{Oldtag: readTag}); err != nil {
		t.Fatalf("encode Tflush: %v", err)
	}
	msg, err := dec.Next()
	if err != nil {
		t.Fatalf("decode Rflush: %v", err)
	}
	if msg.Tag != 3 {
		t.Fatalf("reply tag = %d, want 3", msg.Tag)
	}
	if _, ok := msg.Body.(proto.Rflush); !ok {
		t.Fatalf("expected Rflush, got %T", msg.Body)
	}

	client.Close()
	select {
	case <-serveErr:
	case <-time.After(2 * time.Second):
		t.Fatal("conn.serve never returned after the transport closed")
	}
}

func expect(t *testing.T, dec *proto.Decoder, wantTag uint16) (proto.Body, error) {
	t.Helper()
	msg, err := dec.Next()
	if err != nil {
		return nil, err
	}
	if msg.Tag != wantTag {
		t.Fatalf("reply tag = %d, want %d", msg.Tag, wantTag)
	}
	if rerr, ok := msg.Body.(proto.Rlerror); ok {
		t.Fatalf("unexpected Rlerror: ecode %d", rerr.Ecode)
	}
	return msg.Body, nil
}
