package styx9p

import (
	"context"
	"io"
	"runtime"

	"styx9p/proto"
)

// Conn serves 9P2000.L traffic over a single transport. Requests are
// read, dispatched, and replied to one at a time, in arrival order:
// the dispatcher never starts a second request before the first one's
// reply has been written. This is what makes tag uniqueness and
// fid-table access single-threaded per connection without any locking
// of its own (see SPEC_FULL.md's scheduling model).
type Conn struct {
	rwc  io.ReadWriteCloser
	fs   Filesystem
	fids *fidTable
	enc  *proto.Encoder
	dec  *proto.Decoder
	opts *options
}

func newConn(rwc io.ReadWriteCloser, fs Filesystem, opts *options) *Conn {
	return &Conn{
		rwc:  rwc,
		fs:   fs,
		fids: newFidTable(),
		enc:  proto.NewEncoder(rwc),
		dec:  proto.NewDecoder(rwc, opts.msize),
		opts: opts,
	}
}

// setMsize narrows the decoder's frame size ceiling after a successful
// Tversion exchange settles on a value smaller than the connection's
// initial default.
func (c *Conn) setMsize(msize uint32) {
	c.dec.SetMsize(msize)
}

// serve reads frames until the transport closes or a framing error
// occurs, dispatching each to a backend callback and writing its
// reply before reading the next frame. It returns the fatal error
// that ended the connection, or nil if the client simply closed the
// transport.
func (c *Conn) serve(ctx context.Context) error {
	if c.opts.metrics != nil {
		c.opts.metrics.ConnOpened()
		defer c.opts.metrics.ConnClosed()
	}
	defer c.rwc.Close()

	var retErr error
	for {
		msg, err := c.dec.Next()
		if err != nil {
			if err != io.EOF {
				retErr = err
				c.opts.logf("styx9p: %v", err)
			}
			break
		}

		if flush, ok := msg.Body.(proto.Tflush); ok {
			c.handleFlush(msg.Tag, flush)
			continue
		}

		c.dispatchAndReply(ctx, msg)
	}
	return retErr
}

// handleFlush answers Tflush. Because the dispatch loop never starts
// a request before the previous one has replied, there is never a
// second request still running by the time a Tflush frame is read;
// replying Rflush unconditionally is the compliant no-op this library
// documents for its single-threaded dispatch path.
func (c *Conn) handleFlush(tag uint16, req proto.Tflush) {
	c.reply(tag, proto.Rflush{})
}

// dispatchAndReply runs one request to completion and writes its
// reply. The library never cancels a running callback; ctx carries
// only the connection's own lifetime, not a per-request deadline.
func (c *Conn) dispatchAndReply(ctx context.Context, msg proto.Msg) {
	defer c.recoverPanic()

	resp := c.dispatch(ctx, msg.Body)
	if c.opts.metrics != nil {
		_, failed := resp.(proto.Rlerror)
		c.opts.metrics.Request(msg.Body.MsgType(), failed)
	}
	c.reply(msg.Tag, resp)
}

func (c *Conn) reply(tag uint16, body proto.Body) {
	if err := c.enc.Encode(tag, body); err != nil {
		c.opts.logf("styx9p: error writing reply: %v", err)
	}
}

// recoverPanic stops a panicking backend callback from taking down the
// whole process, logs it with a stack trace, and closes the
// connection — per SPEC_FULL.md §5, a panic is fatal to its
// connection but must not affect any other.
func (c *Conn) recoverPanic() {
	if r := recover(); r != nil {
		const size = 64 << 10
		buf := make([]byte, size)
		buf = buf[:runtime.Stack(buf, false)]
		c.opts.logf("styx9p: panic serving %v: %v\n%s", c.rwc, r, buf)
		c.rwc.Close()
	}
}
