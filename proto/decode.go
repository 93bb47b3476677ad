package proto

import (
	"bufio"
	"encoding/binary"
	"io"
	"sync/atomic"
)

// Decoder reads framed 9P2000.L messages from an underlying stream.
// Next is not safe for concurrent use: a connection has exactly one
// reader goroutine, matching the one-frame-read-at-a-time structure
// each Conn runs. msize is stored atomically, so SetMsize may also be
// called from a goroutine other than the one running Next.
type Decoder struct {
	r     *bufio.Reader
	msize uint32
}

// NewDecoder returns a Decoder that reads from r, rejecting any frame
// larger than msize. Pass DefaultMsize before version negotiation has
// fixed the connection's actual size; Decoder.SetMsize narrows it
// after a successful Tversion/Rversion exchange.
func NewDecoder(r io.Reader, msize uint32) *Decoder {
	return &Decoder{r: bufio.NewReader(r), msize: msize}
}

// SetMsize updates the frame size ceiling, normally called once after
// version negotiation agrees on a size smaller than the initial
// default.
func (d *Decoder) SetMsize(msize uint32) {
	atomic.StoreUint32(&d.msize, msize)
}

// Next reads and decodes the next message from the stream. A non-nil
// error from Next is always fatal to the connection: a malformed
// frame can't be recovered from mid-stream, unlike a backend error,
// which is reported as an Rlerror body instead.
func (d *Decoder) Next() (Msg, error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(d.r, hdr[:]); err != nil {
		return Msg{}, err
	}

	size := binary.LittleEndian.Uint32(hdr[0:4])
	if size < headerLen {
		return Msg{}, protoErrorf("frame size %d shorter than header", size)
	}
	msize := atomic.LoadUint32(&d.msize)
	if size > maxMsgLen || (msize != 0 && size > msize) {
		return Msg{}, protoErrorf("frame size %d exceeds msize %d", size, msize)
	}
	typ := MsgType(hdr[4])
	tag := binary.LittleEndian.Uint16(hdr[5:7])

	body := make([]byte, size-headerLen)
	if _, err := io.ReadFull(d.r, body); err != nil {
		return Msg{}, err
	}

	rd := &reader{buf: body}
	m, err := decodeBody(typ, rd)
	if err != nil {
		return Msg{}, err
	}
	if rd.err != nil {
		return Msg{}, rd.err
	}
	if !rd.atEnd() {
		return Msg{}, protoErrorf("%v: %d trailing bytes in frame", typ, len(body)-rd.pos)
	}
	return Msg{Tag: tag, Body: m}, nil
}

func decodeBody(typ MsgType, r *reader) (Body, error) {
	switch typ {
	case tversion:
		return decodeTversion(r), nil
	case rversion:
		return decodeRversion(r), nil
	case tauth:
		return decodeTauth(r), nil
	case rauth:
		return decodeRauth(r), nil
	case tattach:
		return decodeTattach(r), nil
	case rattach:
		return decodeRattach(r), nil
	case rlerror:
		return decodeRlerror(r), nil
	case tflush:
		return decodeTflush(r), nil
	case rflush:
		return decodeRflush(r), nil
	case twalk:
		return decodeTwalk(r), nil
	case rwalk:
		return decodeRwalk(r), nil
	case tread:
		return decodeTread(r), nil
	case rread:
		return decodeRread(r), nil
	case twrite:
		return decodeTwrite(r), nil
	case rwrite:
		return decodeRwrite(r), nil
	case tclunk:
		return decodeTclunk(r), nil
	case rclunk:
		return decodeRclunk(r), nil
	case tremove:
		return decodeTremove(r), nil
	case rremove:
		return decodeRremove(r), nil
	case tstatfs:
		return decodeTstatfs(r), nil
	case rstatfs:
		return decodeRstatfs(r), nil
	case tlopen:
		return decodeTlopen(r), nil
	case rlopen:
		return decodeRlopen(r), nil
	case tlcreate:
		return decodeTlcreate(r), nil
	case rlcreate:
		return decodeRlcreate(r), nil
	case tsymlink:
		return decodeTsymlink(r), nil
	case rsymlink:
		return decodeRsymlink(r), nil
	case tmknod:
		return decodeTmknod(r), nil
	case rmknod:
		return decodeRmknod(r), nil
	case trename:
		return decodeTrename(r), nil
	case rrename:
		return decodeRrename(r), nil
	case treadlink:
		return decodeTreadlink(r), nil
	case rreadlink:
		return decodeRreadlink(r), nil
	case tgetattr:
		return decodeTgetattr(r), nil
	case rgetattr:
		return decodeRgetattr(r), nil
	case tsetattr:
		return decodeTsetattr(r), nil
	case rsetattr:
		return decodeRsetattr(r), nil
	case txattrwalk:
		return decodeTxattrwalk(r), nil
	case rxattrwalk:
		return decodeRxattrwalk(r), nil
	case txattrcreate:
		return decodeTxattrcreate(r), nil
	case rxattrcreate:
		return decodeRxattrcreate(r), nil
	case treaddir:
		return decodeTreaddir(r), nil
	case rreaddir:
		return decodeRreaddir(r), nil
	case tfsync:
		return decodeTfsync(r), nil
	case rfsync:
		return decodeRfsync(r), nil
	case tlock:
		return decodeTlock(r), nil
	case rlock:
		return decodeRlock(r), nil
	case tgetlock:
		return decodeTgetlock(r), nil
	case rgetlock:
		return decodeRgetlock(r), nil
	case tlink:
		return decodeTlink(r), nil
	case rlink:
		return decodeRlink(r), nil
	case tmkdir:
		return decodeTmkdir(r), nil
	case rmkdir:
		return decodeRmkdir(r), nil
	case trenameat:
		return decodeTrenameat(r), nil
	case rrenameat:
		return decodeRrenameat(r), nil
	case tunlinkat:
		return decodeTunlinkat(r), nil
	case runlinkat:
		return decodeRunlinkat(r), nil
	case tlerror:
		return nil, protoErrorf("Tlerror is not a valid request type")
	default:
		return nil, protoErrorf("unknown message type %d", byte(typ))
	}
}
