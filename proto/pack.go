package proto

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// errProtocol marks a malformed frame: it is fatal for the connection
// that produced it, never turned into an Rlerror reply.
type errProtocol struct {
	msg string
}

func (e *errProtocol) Error() string { return "9p: protocol error: " + e.msg }

func protoErrorf(format string, args ...interface{}) error {
	return &errProtocol{msg: fmt.Sprintf(format, args...)}
}

// IsProtocolError reports whether err represents a malformed frame
// rather than a backend-reported failure.
func IsProtocolError(err error) bool {
	_, ok := err.(*errProtocol)
	return ok
}

// writer accumulates an encoded message body. Once w.err is set, every
// subsequent write is a no-op; callers check err once at the end
// instead of after every field. Mirrors the sticky-error writer used
// throughout the example pack's own wire codecs.
type writer struct {
	buf []byte
	err error
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) u8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	if w.err != nil {
		return
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) u32(v uint32) {
	if w.err != nil {
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) u64(v uint64) {
	if w.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) raw(p []byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, p...)
}

func (w *writer) str(s string) {
	if w.err != nil {
		return
	}
	if len(s) > 1<<16-1 {
		w.fail(protoErrorf("string of %d bytes exceeds 65535-byte limit", len(s)))
		return
	}
	w.u16(uint16(len(s)))
	w.raw([]byte(s))
}

func (w *writer) qid(q Qid) {
	q.encode(w)
}

func (w *writer) time(t Time) {
	t.encode(w)
}

// reader consumes an already-framed message body. It is never asked to
// read past the bytes handed to it by the Decoder, which have already
// been sized by the frame's length prefix.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.pos = len(r.buf)
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.pos+n > len(r.buf) {
		r.fail(protoErrorf("message body too short"))
		return make([]byte, n)
	}
	p := r.buf[r.pos : r.pos+n]
	r.pos += n
	return p
}

func (r *reader) u8() uint8     { return r.take(1)[0] }
func (r *reader) u16() uint16   { return binary.LittleEndian.Uint16(r.take(2)) }
func (r *reader) u32() uint32   { return binary.LittleEndian.Uint32(r.take(4)) }
func (r *reader) u64() uint64   { return binary.LittleEndian.Uint64(r.take(8)) }
func (r *reader) raw(n int) []byte {
	p := r.take(n)
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

func (r *reader) str() string {
	n := int(r.u16())
	if r.err != nil {
		return ""
	}
	p := r.take(n)
	if !utf8.Valid(p) {
		r.fail(protoErrorf("invalid UTF-8 in string field"))
		return ""
	}
	return string(p)
}

func (r *reader) qid() Qid {
	var q Qid
	q.decode(r)
	return q
}

func (r *reader) time() Time {
	var t Time
	t.decode(r)
	return t
}

func (r *reader) strvec() []string {
	n := int(r.u16())
	if r.err != nil {
		return nil
	}
	if n > MAXWELEM {
		r.fail(protoErrorf("walk of %d elements exceeds limit of %d", n, MAXWELEM))
		return nil
	}
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = r.str()
	}
	return out
}

func (r *reader) qidvec() []Qid {
	n := int(r.u16())
	if r.err != nil || n == 0 {
		return nil
	}
	out := make([]Qid, n)
	for i := range out {
		out[i] = r.qid()
	}
	return out
}

func (r *reader) atEnd() bool {
	return r.pos >= len(r.buf)
}
