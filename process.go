package styx9p

import (
	"fmt"
	"net"
	"os"
)

// ChildAddrEnv is the environment variable a re-exec'd child process
// finds its connection's address in, as "fd!3!3" — the accepted
// connection's duplicated file descriptor, always the fourth entry of
// os.ProcAttr.Files and so always fd 3 in the child. A program that
// wants ModeProcess checks this at startup and, when it is set, calls
// ListenAndServe(ctx, os.Getenv(ChildAddrEnv), fs, ...) instead of
// binding its configured listen address; cmd/styx9pd does exactly this.
const ChildAddrEnv = "STYX9P_CHILD_ADDR"

// serveProcess re-executes the running binary to serve one accepted
// connection in its own process, the substitute this library uses for
// fork-per-connection: Go cannot safely fork a multi-threaded process,
// but it can hand a freshly exec'd copy of itself the connection's
// file descriptor and let it rebuild an equivalent backend from the
// same argv/config. See DESIGN.md's resolution of this Open Question.
func serveProcess(rwc net.Conn, o *options) {
	defer rwc.Close()

	f, err := connFile(rwc)
	if err != nil {
		o.logf("styx9p: process mode: %v", err)
		return
	}
	defer f.Close()

	exe, err := os.Executable()
	if err != nil {
		o.logf("styx9p: process mode: %v", err)
		return
	}

	env := append(os.Environ(), ChildAddrEnv+"=fd!3!3")
	attr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr, f},
	}

	proc, err := os.StartProcess(exe, os.Args, attr)
	if err != nil {
		o.logf("styx9p: process mode: re-exec failed: %v", err)
		return
	}
	// SIGCHLD is ignored for the lifetime of the accept loop (see
	// serve), so the child is reaped automatically; nothing here waits
	// on it.
	proc.Release()
}

// connFile extracts the duplicated file descriptor backing rwc. Only
// *net.TCPConn and *net.UnixConn support this (both implement File),
// which is what the accept loop in serve hands to serveProcess.
func connFile(rwc net.Conn) (*os.File, error) {
	type filer interface {
		File() (*os.File, error)
	}
	fc, ok := rwc.(filer)
	if !ok {
		return nil, fmt.Errorf("process mode requires a connection with a File method, got %T", rwc)
	}
	return fc.File()
}
