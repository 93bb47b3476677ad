package proto

import (
	"bytes"
	"reflect"
	"testing"
)

// roundtrip encodes m under tag, decodes it back, and fails unless the
// result matches both the tag and the original body exactly.
func roundtrip(t *testing.T, tag uint16, body Body) Msg {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(tag, body); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(&buf, 0)
	got, err := dec.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.Tag != tag {
		t.Fatalf("tag = %d, want %d", got.Tag, tag)
	}
	if got.Body.MsgType() != body.MsgType() {
		t.Fatalf("MsgType = %v, want %v", got.Body.MsgType(), body.MsgType())
	}
	if !reflect.DeepEqual(got.Body, body) {
		t.Fatalf("body = %#v, want %#v", got.Body, body)
	}
	return got
}

func TestRoundtripSessionMessages(t *testing.T) {
	roundtrip(t, 0, Tversion{Msize: DefaultMsize, Version: VersionL})
	roundtrip(t, NOTAG, Rversion{Msize: DefaultMsize, Version: VersionL})
	roundtrip(t, 1, Tattach{Fid: 1, Afid: NOFID, Uname: "glenda", Aname: "", NUname: NOUID})
	roundtrip(t, 1, Rattach{Qid: Qid{Type: QTDIR, Version: 1, Path: 1}})
	roundtrip(t, 2, Tflush{Oldtag: 1})
	roundtrip(t, 2, Rflush{})
}

func TestRoundtripWalk(t *testing.T) {
	roundtrip(t, 3, Twalk{Fid: 1, Newfid: 2, Wname: []string{"a", "bb", "ccc"}})
	roundtrip(t, 3, Twalk{Fid: 1, Newfid: 2, Wname: nil})
	roundtrip(t, 3, Rwalk{Wqid: []Qid{{Type: QTDIR, Path: 1}, {Type: QTFILE, Path: 2}}})
	roundtrip(t, 3, Rwalk{Wqid: nil})
}

func TestRoundtripReadWrite(t *testing.T) {
	roundtrip(t, 4, Tread{Fid: 1, Offset: 0, Count: 4096})
	roundtrip(t, 4, Rread{Data: Data{Bytes: []byte("hello world")}})
	roundtrip(t, 4, Rread{Data: Data{Bytes: []byte{}}})
	roundtrip(t, 5, Twrite{Fid: 1, Offset: 100, Data: Data{Bytes: []byte("payload")}})
	roundtrip(t, 5, Rwrite{Count: 7})
}

func TestRoundtripGetattrReservedFields(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	want := Rgetattr{
		Valid: GetattrBasic,
		Qid:   Qid{Type: QTFILE, Version: 3, Path: 42},
		Stat: Stat{
			Mode: 0644, UID: 1000, GID: 1000,
			Nlink: 1, Size: 1024, Blksize: 4096, Blocks: 2,
		},
	}
	if err := enc.Encode(9, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(&buf, 0)
	got, err := dec.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !reflect.DeepEqual(got.Body, want) {
		t.Fatalf("body = %#v, want %#v", got.Body, want)
	}
}

func TestRoundtripLockAndGetlock(t *testing.T) {
	roundtrip(t, 6, Tlock{Fid: 1, Flock: Flock{
		Type: LockTypeWrlock, Flags: LockFlagBlock, Start: 0, Length: 100,
		ProcID: 1234, ClientID: "host1",
	}})
	roundtrip(t, 6, Rlock{Status: LockStatusSuccess})
	roundtrip(t, 7, Tgetlock{Fid: 1, Getlock: Getlock{
		Type: LockTypeRdlock, Start: 0, Length: 0, ProcID: 1234, ClientID: "host1",
	}})
	roundtrip(t, 7, Rgetlock{Getlock: Getlock{Type: LockTypeUnlock, ProcID: 1234, ClientID: "host1"}})
}

func TestRoundtripDirEntryData(t *testing.T) {
	data := DirEntryData{Entries: []DirEntry{
		{Qid: Qid{Type: QTDIR, Path: 1}, Offset: 1, Type: 4, Name: "."},
		{Qid: Qid{Type: QTDIR, Path: 0}, Offset: 2, Type: 4, Name: ".."},
		{Qid: Qid{Type: QTFILE, Path: 2}, Offset: 3, Type: 8, Name: "file.txt"},
	}}
	roundtrip(t, 8, Treaddir{Fid: 1, Offset: 0, Count: 4096})
	roundtrip(t, 8, Rreaddir{Data: data})
}

func TestDirEntryDataFitTruncates(t *testing.T) {
	data := DirEntryData{Entries: []DirEntry{
		{Name: "a"}, {Name: "bb"}, {Name: "ccc"},
	}}
	budget := data.Entries[0].EncodedLen() + data.Entries[1].EncodedLen()
	got := data.Fit(budget)
	if len(got.Entries) != 2 {
		t.Fatalf("Fit truncated to %d entries, want 2", len(got.Entries))
	}

	none := data.Fit(0)
	if len(none.Entries) != 0 {
		t.Fatalf("Fit(0) kept %d entries, want 0", len(none.Entries))
	}

	all := data.Fit(1 << 20)
	if len(all.Entries) != 3 {
		t.Fatalf("Fit with ample budget kept %d entries, want 3", len(all.Entries))
	}
}

func TestRoundtripRlerror(t *testing.T) {
	roundtrip(t, 10, Rlerror{Ecode: 2}) // ENOENT
}

func TestDecodeUnknownMsgType(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(1, Tversion{Msize: DefaultMsize, Version: VersionL}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := buf.Bytes()
	raw[4] = 0xFE // not a recognized MsgType

	dec := NewDecoder(bytes.NewReader(raw), 0)
	_, err := dec.Next()
	if err == nil {
		t.Fatal("Next succeeded on an unknown message type")
	}
	if !IsProtocolError(err) {
		t.Fatalf("err = %v, want a protocol error", err)
	}
}

func TestDecodeTlerrorIsProtocolError(t *testing.T) {
	var buf bytes.Buffer
	var hdr [headerLen]byte
	hdr[0] = headerLen
	hdr[4] = byte(tlerror)
	buf.Write(hdr[:])

	dec := NewDecoder(&buf, 0)
	_, err := dec.Next()
	if err == nil || !IsProtocolError(err) {
		t.Fatalf("err = %v, want a protocol error", err)
	}
}

func TestDecodeTruncatedFrameIsError(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(1, Rattach{Qid: Qid{Path: 1}}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-4]

	dec := NewDecoder(bytes.NewReader(truncated), 0)
	if _, err := dec.Next(); err == nil {
		t.Fatal("Next succeeded on a truncated frame")
	}
}

func TestDecodeOversizeFrameRejected(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	big := make([]byte, 1024)
	if err := enc.Encode(1, Rread{Data: Data{Bytes: big}}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(&buf, 512) // msize smaller than the frame just written
	_, err := dec.Next()
	if err == nil || !IsProtocolError(err) {
		t.Fatalf("err = %v, want a protocol error for oversize frame", err)
	}
}

func TestDecodeInvalidUTF8StringIsProtocolError(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(1, Tattach{Fid: 1, Afid: NOFID, Uname: "glenda", Aname: "", NUname: NOUID}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := buf.Bytes()
	// Uname starts right after the 7-byte header plus the 8 bytes of
	// Fid+Afid, preceded by its 2-byte length prefix.
	nameStart := headerLen + 4 + 4 + 2
	raw[nameStart] = 0xFF

	dec := NewDecoder(bytes.NewReader(raw), 0)
	_, err := dec.Next()
	if err == nil || !IsProtocolError(err) {
		t.Fatalf("err = %v, want a protocol error for invalid UTF-8", err)
	}
}

func TestEncodeMsgTypeDerivedFromBody(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode(5, Rstatfs{Statfs: Statfs{Bsize: 4096}}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := buf.Bytes()
	if MsgType(raw[4]) != rstatfs {
		t.Fatalf("wire type = %d, want %d (rstatfs)", raw[4], rstatfs)
	}
}
