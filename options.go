package styx9p

import (
	"styx9p/internal/log"
	"styx9p/internal/metrics"
	"styx9p/proto"
)

// Mode selects how the accept loop isolates connections from each
// other.
type Mode int

const (
	// ModeThread serves every connection on its own goroutine, sharing
	// a single backend instance behind a mutex.
	ModeThread Mode = iota
	// ModeProcess re-executes the server binary once per accepted
	// connection, handing it the connection's file descriptor; each
	// connection gets an independent backend process. See SPEC_FULL.md
	// §4.6 and DESIGN.md for why this, not fork(2), is how the library
	// expresses "process per connection" in Go.
	ModeProcess
)

// Option configures a server constructed by ListenAndServe, Serve or
// ServeConn. The zero value of every option's underlying field is a
// sensible default, so nil opts is always valid.
type Option func(*options)

type options struct {
	msize   uint32
	mode    Mode
	logger  log.Logger
	metrics *metrics.Collector
}

func defaultOptions() *options {
	return &options{
		msize:  proto.DefaultMsize,
		mode:   ModeThread,
		logger: log.New(),
	}
}

// WithMsize sets the maximum message size the server will advertise
// during Tversion negotiation. The negotiated value is always the
// smaller of this and the client's requested msize.
func WithMsize(msize uint32) Option {
	return func(o *options) { o.msize = msize }
}

// WithMode selects the accept loop's connection isolation strategy.
func WithMode(mode Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithLogger directs diagnostic output at logger instead of the
// library's logrus-backed default.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records connection and request counters into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *options) logf(format string, v ...interface{}) {
	if o.logger != nil {
		o.logger.Printf(format, v...)
	}
}
