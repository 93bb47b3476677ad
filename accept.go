package styx9p

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"aqwari.net/retry"
	"golang.org/x/sys/unix"

	"styx9p/internal/threadsafe"
)

// addrKind distinguishes the three transports an address string can
// name.
type addrKind int

const (
	addrTCP addrKind = iota
	addrUnix
	addrFd
)

// addrSpec is the parsed form of a "proto!..." address string.
type addrSpec struct {
	kind            addrKind
	addr            string
	readFd, writeFd int
}

// parseAddr parses "tcp!HOST!PORT", "unix!PATH!PORT" or
// "fd!READFD!WRITEFD". The unix form's PORT segment is a required but
// otherwise unused discriminator: it is appended verbatim to PATH with
// a colon, the same way original_source/src/utils.rs's AddrSpec::Unix
// builds its address string despite a Unix socket path having no port
// to speak of.
func parseAddr(s string) (addrSpec, error) {
	parts := strings.Split(s, "!")
	if len(parts) == 0 || parts[0] == "" {
		return addrSpec{}, fmt.Errorf("styx9p: no protocol specified in address %q", s)
	}

	switch parts[0] {
	case "tcp":
		if len(parts) != 3 {
			return addrSpec{}, fmt.Errorf("styx9p: tcp address needs host and port: %q", s)
		}
		return addrSpec{kind: addrTCP, addr: parts[1] + ":" + parts[2]}, nil

	case "unix":
		if len(parts) != 3 {
			return addrSpec{}, fmt.Errorf("styx9p: unix address needs path and port: %q", s)
		}
		return addrSpec{kind: addrUnix, addr: parts[1] + ":" + parts[2]}, nil

	case "fd":
		if len(parts) != 3 {
			return addrSpec{}, fmt.Errorf("styx9p: fd address needs read and write descriptors: %q", s)
		}
		rfd, err := strconv.Atoi(parts[1])
		if err != nil {
			return addrSpec{}, fmt.Errorf("styx9p: invalid read file descriptor in %q: %w", s, err)
		}
		wfd, err := strconv.Atoi(parts[2])
		if err != nil {
			return addrSpec{}, fmt.Errorf("styx9p: invalid write file descriptor in %q: %w", s, err)
		}
		return addrSpec{kind: addrFd, readFd: rfd, writeFd: wfd}, nil

	default:
		return addrSpec{}, fmt.Errorf("styx9p: unsupported protocol %q in address %q", parts[0], s)
	}
}

// fdConn adapts a pair of already-open file descriptors — as used by
// inetd/systemd-style socket activation and by this library's own
// process-per-connection mode — into the single io.ReadWriteCloser
// ServeConn wants.
type fdConn struct {
	r *os.File
	w *os.File
}

func (c *fdConn) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *fdConn) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *fdConn) Close() error {
	rerr := c.r.Close()
	werr := c.w.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}

// reuseAddrControl sets SO_REUSEADDR before bind so a restarted server
// can rebind a port still in TIME_WAIT, a knob net.ListenConfig has no
// direct field for. Grounded in rclone-rclone's own direct use of
// golang.org/x/sys/unix for raw socket/file-descriptor options
// (backend/local/fadvise_unix.go, lchtimes_unix.go) rather than
// reaching for a CGO-backed alternative.
func reuseAddrControl(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

// ListenAndServe parses addr, binds the transport it names, and serves
// incoming connections to fs until ctx is canceled or a fatal accept
// error occurs. For "fd!readfd!writefd" addresses there is no accept
// loop: the two descriptors are served as exactly one connection, and
// ListenAndServe returns when it closes.
func ListenAndServe(ctx context.Context, addr string, fs Filesystem, opts ...Option) error {
	spec, err := parseAddr(addr)
	if err != nil {
		return err
	}

	o := defaultOptions()
	o.apply(opts)

	switch spec.kind {
	case addrFd:
		rwc := &fdConn{
			r: os.NewFile(uintptr(spec.readFd), "styx9p-read"),
			w: os.NewFile(uintptr(spec.writeFd), "styx9p-write"),
		}
		return serveConn(ctx, rwc, fs, o)

	case addrTCP:
		lc := net.ListenConfig{Control: reuseAddrControl}
		l, err := lc.Listen(ctx, "tcp", spec.addr)
		if err != nil {
			return err
		}
		return serve(ctx, l, fs, o)

	case addrUnix:
		l, err := net.Listen("unix", spec.addr)
		if err != nil {
			return err
		}
		return serve(ctx, l, fs, o)

	default:
		return fmt.Errorf("styx9p: unreachable address kind for %q", addr)
	}
}

// Serve accepts connections on l and serves them to fs until ctx is
// canceled or a fatal accept error occurs, using an already-bound
// listener (for tests, or callers that want to control their own
// bind/listen split).
func Serve(ctx context.Context, l net.Listener, fs Filesystem, opts ...Option) error {
	o := defaultOptions()
	o.apply(opts)
	return serve(ctx, l, fs, o)
}

// ServeConn serves exactly one connection to completion, or until ctx
// is canceled. It is the building block ListenAndServe and Serve use
// per accepted connection, and the whole story for "fd" mode
// addresses.
func ServeConn(ctx context.Context, rwc io.ReadWriteCloser, fs Filesystem, opts ...Option) error {
	o := defaultOptions()
	o.apply(opts)
	return serveConn(ctx, rwc, fs, o)
}

func serveConn(ctx context.Context, rwc io.ReadWriteCloser, fs Filesystem, o *options) error {
	c := newConn(rwc, fs, o)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			rwc.Close()
		case <-done:
		}
	}()
	err := c.serve(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// tempErr is satisfied by net.Error and matches the teacher's own
// accept-loop retry check (droyo-styx/server.go).
type tempErr interface {
	Temporary() bool
}

// serve is the accept loop shared by Serve and ListenAndServe's
// tcp/unix cases: retry transient Accept errors with exponential
// backoff, hand every accepted connection off to its own goroutine
// (serveConn or serveProcess, depending on mode), track ModeThread
// connections in a registry so a canceled ctx can wait for them to
// drain, and return the first non-transient error (nil if ctx is what
// ended the loop).
func serve(ctx context.Context, l net.Listener, fs Filesystem, o *options) error {
	defer l.Close()

	if o.mode == ModeProcess {
		// Reap re-exec'd children without an explicit Wait call; see
		// DESIGN.md's resolution of the process-mode Open Question.
		signal.Ignore(syscall.SIGCHLD)
	}

	conns := threadsafe.NewMap()
	var wg sync.WaitGroup
	go func() {
		<-ctx.Done()
		l.Close()
		// Close every connection so its blocked read fails and its
		// serve loop exits, instead of waiting on a client that may
		// never send or disconnect again.
		conns.Do(func(key, _ interface{}) {
			key.(net.Conn).Close()
		})
	}()

	backoff := retry.Exponential(time.Millisecond).Max(time.Second)
	try := 0

	var shared *mutexFilesystem
	if o.mode == ModeThread {
		shared = &mutexFilesystem{fs: fs}
	}

	for {
		rwc, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				if n := conns.Len(); n > 0 {
					o.logf("styx9p: shutting down, waiting for %d connection(s) to drain", n)
				}
				wg.Wait()
				return nil
			}
			if te, ok := err.(tempErr); ok && te.Temporary() {
				try++
				d := backoff(try)
				o.logf("styx9p: accept error: %v; retrying in %v", err, d)
				time.Sleep(d)
				continue
			}
			wg.Wait()
			return err
		}
		try = 0

		if tc, ok := rwc.(*net.TCPConn); ok {
			tc.SetNoDelay(true)
		}

		switch o.mode {
		case ModeProcess:
			go serveProcess(rwc, o)
		default:
			conns.Put(rwc, struct{}{})
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer conns.Del(rwc)
				if err := serveConn(ctx, rwc, shared, o); err != nil {
					o.logf("styx9p: connection error: %v", err)
				}
			}()
		}
	}
}
