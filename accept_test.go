package styx9p

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"styx9p/internal/netutil"
)

func TestParseAddr(t *testing.T) {
	cases := []struct {
		in      string
		want    addrSpec
		wantErr bool
	}{
		{in: "tcp!127.0.0.1!5640", want: addrSpec{kind: addrTCP, addr: "127.0.0.1:5640"}},
		{in: "unix!/tmp/styx9p.sock!0", want: addrSpec{kind: addrUnix, addr: "/tmp/styx9p.sock:0"}},
		{in: "fd!3!4", want: addrSpec{kind: addrFd, readFd: 3, writeFd: 4}},
		{in: "", wantErr: true},
		{in: "tcp!onlyhost", wantErr: true},
		{in: "sctp!host!1", wantErr: true},
		{in: "fd!notanumber!4", wantErr: true},
	}
	for _, c := range cases {
		got, err := parseAddr(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseAddr(%q): expected error, got %+v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAddr(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseAddr(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

// tempAcceptErr implements net.Error with Temporary() == true, the
// shape serve's accept loop retries instead of giving up on.
type tempAcceptErr struct{}

func (tempAcceptErr) Error() string   { return "temporary accept error" }
func (tempAcceptErr) Timeout() bool   { return false }
func (tempAcceptErr) Temporary() bool { return true }

// flakyListener fails with a temporary error a fixed number of times
// before handing back a real connection on a PipeListener, exercising
// the accept loop's exponential-backoff retry path.
type flakyListener struct {
	*netutil.PipeListener
	failuresLeft int
}

func (l *flakyListener) Accept() (net.Conn, error) {
	if l.failuresLeft > 0 {
		l.failuresLeft--
		return nil, tempAcceptErr{}
	}
	return l.PipeListener.Accept()
}

func TestServeRetriesTemporaryAcceptErrors(t *testing.T) {
	pl := &netutil.PipeListener{}
	l := &flakyListener{PipeListener: pl, failuresLeft: 3}

	fs := UnimplementedFilesystem{}
	o := defaultOptions()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- serve(ctx, l, fs, o) }()

	conn, err := pl.Dial()
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	conn.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v, want nil after cancellation", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve never returned after the context was canceled")
	}
}

// abortListener fails Accept with a non-temporary, non-retryable error
// immediately, so serve must give up and return it rather than retry
// forever.
type abortListener struct {
	closed chan struct{}
}

func newAbortListener() *abortListener { return &abortListener{closed: make(chan struct{})} }

var errAbort = errors.New("listener aborted")

func (l *abortListener) Accept() (net.Conn, error) {
	<-l.closed
	return nil, errAbort
}

func (l *abortListener) Close() error {
	select {
	case <-l.closed:
	default:
		close(l.closed)
	}
	return nil
}

func (l *abortListener) Addr() net.Addr { return dummyAddr{} }

type dummyAddr struct{}

func (dummyAddr) Network() string { return "" }
func (dummyAddr) String() string  { return "" }

func TestServeReturnsFatalAcceptError(t *testing.T) {
	l := newAbortListener()
	fs := UnimplementedFilesystem{}
	o := defaultOptions()

	done := make(chan error, 1)
	go func() { done <- serve(context.Background(), l, fs, o) }()

	l.Close()

	select {
	case err := <-done:
		if !errors.Is(err, errAbort) {
			t.Fatalf("serve returned %v, want %v", err, errAbort)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve never returned after a fatal accept error")
	}
}
