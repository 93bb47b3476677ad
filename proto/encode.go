package proto

import (
	"bufio"
	"encoding/binary"
	"io"
	"sync"

	"styx9p/internal/util"
)

// headerLen is the fixed portion of every frame: a 4-byte size prefix,
// a 1-byte message type, and a 2-byte tag.
const headerLen = 4 + 1 + 2

// maxMsgLen bounds a single frame's advertised size, guarding against a
// corrupt or hostile length prefix forcing an enormous allocation
// before the real msize negotiation has even happened.
const maxMsgLen = 1 << 24

// Encoder writes framed 9P2000.L messages to an underlying stream. It
// is safe for concurrent use: Encode takes an internal lock for the
// duration of a single frame, so replies from multiple in-flight
// requests never interleave on the wire.
type Encoder struct {
	mu sync.Mutex
	ew *util.ErrWriter
	w  *bufio.Writer
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	ew := &util.ErrWriter{W: w}
	return &Encoder{ew: ew, w: bufio.NewWriter(ew)}
}

// Encode writes a single message: tag paired with body. The wire type
// byte comes from body.MsgType(), never from a separate argument, so
// it can never disagree with the body's actual shape.
func (e *Encoder) Encode(tag uint16, body Body) error {
	bw := &writer{}
	body.encode(bw)
	if bw.err != nil {
		return bw.err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ew.Err != nil {
		return e.ew.Err
	}

	var hdr [headerLen]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(headerLen+len(bw.buf)))
	hdr[4] = byte(body.MsgType())
	binary.LittleEndian.PutUint16(hdr[5:7], tag)

	e.w.Write(hdr[:])
	e.w.Write(bw.buf)
	if err := e.w.Flush(); err != nil {
		return err
	}
	return e.ew.Err
}
