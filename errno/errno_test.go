package errno

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
)

func TestFromPreservesRawErrno(t *testing.T) {
	err := &os.PathError{Op: "open", Path: "/tmp/x", Err: syscall.ENOSPC}
	e := From(err)
	if e.Errno() != syscall.ENOSPC {
		t.Fatalf("Errno() = %v, want ENOSPC", e.Errno())
	}
}

func TestFromSentinelTable(t *testing.T) {
	cases := []struct {
		err  error
		want syscall.Errno
	}{
		{os.ErrNotExist, syscall.ENOENT},
		{os.ErrExist, syscall.EALREADY},
		{os.ErrPermission, syscall.EPERM},
		{context.DeadlineExceeded, syscall.ETIMEDOUT},
		{context.Canceled, syscall.EINTR},
		{errors.New("anything else"), syscall.EIO},
	}
	for _, c := range cases {
		if got := From(c.err).Errno(); got != c.want {
			t.Errorf("From(%v).Errno() = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestFromWrapsFsPathError(t *testing.T) {
	err := &os.PathError{Op: "stat", Path: "/missing", Err: os.ErrNotExist}
	if got := From(err).Errno(); got != syscall.ENOENT {
		t.Fatalf("Errno() = %v, want ENOENT", got)
	}
}

func TestFromNetClosedError(t *testing.T) {
	if got := From(net.ErrClosed).Errno(); got != syscall.EPIPE {
		t.Fatalf("Errno() = %v, want EPIPE", got)
	}
}

func TestFromIdempotentOnErrnoError(t *testing.T) {
	e1 := Sys(syscall.EROFS)
	wrapped := fmt.Errorf("writing config: %w", e1)
	e2 := From(wrapped)
	if e2.Errno() != syscall.EROFS {
		t.Fatalf("Errno() = %v, want EROFS", e2.Errno())
	}
}

func TestFromNil(t *testing.T) {
	if From(nil) != nil {
		t.Fatal("From(nil) should return nil")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Io(cause)
	if !errors.Is(e, cause) {
		t.Fatal("errors.Is should see through Unwrap to the original cause")
	}
}
