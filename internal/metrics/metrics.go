// Package metrics exposes plain counters for a running server:
// connections, requests by message type, and errors by message type.
//
// These are bare sync/atomic counters rather than a
// github.com/prometheus/client_golang registry: this package sits
// underneath the library every caller of styx9p imports, and no
// library in the example pack reaches for Prometheus from that
// position (it shows up only in top-level daemons, e.g.
// sandia-minimega-minimega's own metrics endpoint). A caller that
// wants Prometheus can poll Collector's accessor methods and bridge
// them into its own registry. cmd/styx9pd wires a Collector in but
// does not export it.
package metrics

import (
	"sync/atomic"

	"styx9p/proto"
)

// Collector accumulates server activity. The zero value is ready to
// use.
type Collector struct {
	conns        int64
	requests     [256]uint64
	errors       [256]uint64
	bytesRead    uint64
	bytesWritten uint64
}

// New returns an empty Collector ready to be wired into a Conn via an
// Option.
func New() *Collector {
	return &Collector{}
}

// ConnOpened records the start of a new connection's lifetime.
func (c *Collector) ConnOpened() { atomic.AddInt64(&c.conns, 1) }

// ConnClosed records the end of a connection's lifetime.
func (c *Collector) ConnClosed() { atomic.AddInt64(&c.conns, -1) }

// Request records one dispatched request and whether its reply was an
// Rlerror.
func (c *Collector) Request(typ proto.MsgType, failed bool) {
	atomic.AddUint64(&c.requests[typ], 1)
	if failed {
		atomic.AddUint64(&c.errors[typ], 1)
	}
}

// BytesRead adds n to the running total of bytes served by Rread.
func (c *Collector) BytesRead(n int) { atomic.AddUint64(&c.bytesRead, uint64(n)) }

// BytesWritten adds n to the running total of bytes accepted by
// Twrite.
func (c *Collector) BytesWritten(n int) { atomic.AddUint64(&c.bytesWritten, uint64(n)) }

// ActiveConns reports the current number of connections being served.
func (c *Collector) ActiveConns() int64 { return atomic.LoadInt64(&c.conns) }

// Requests reports the number of dispatched requests of the given
// type.
func (c *Collector) Requests(typ proto.MsgType) uint64 { return atomic.LoadUint64(&c.requests[typ]) }

// Errors reports the number of requests of the given type that
// completed with an Rlerror reply.
func (c *Collector) Errors(typ proto.MsgType) uint64 { return atomic.LoadUint64(&c.errors[typ]) }

// BytesReadTotal reports the cumulative bytes served by Rread.
func (c *Collector) BytesReadTotal() uint64 { return atomic.LoadUint64(&c.bytesRead) }

// BytesWrittenTotal reports the cumulative bytes accepted by Twrite.
func (c *Collector) BytesWrittenTotal() uint64 { return atomic.LoadUint64(&c.bytesWritten) }
