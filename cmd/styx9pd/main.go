// Command styx9pd serves an in-memory 9P2000.L filesystem over a
// single configurable address. It exists to exercise the library end
// to end, not as a production file server: swap examples/memfs for a
// real backend to get one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"styx9p"
	"styx9p/examples/memfs"
	"styx9p/internal/log"
	"styx9p/internal/metrics"
	"styx9p/proto"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("styx9pd", flag.ContinueOnError)
	addr := fs.String("addr", "tcp!127.0.0.1!5640", "listen address: tcp!HOST!PORT, unix!PATH!PORT, or fd!READFD!WRITEFD")
	msize := fs.Uint("msize", proto.DefaultMsize, "maximum negotiated message size")
	mode := fs.String("mode", "thread", "concurrency mode: thread or process")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New()

	var listenMode styx9p.Mode
	switch *mode {
	case "thread":
		listenMode = styx9p.ModeThread
	case "process":
		listenMode = styx9p.ModeProcess
	default:
		logger.Printf("styx9pd: invalid -mode %q, want \"thread\" or \"process\"", *mode)
		return 2
	}

	// A re-exec'd ModeProcess child inherits its connection on fd 3
	// instead of binding -addr itself; see styx9p.ChildAddrEnv.
	listenAddr := *addr
	if childAddr := os.Getenv(styx9p.ChildAddrEnv); childAddr != "" {
		listenAddr = childAddr
		listenMode = styx9p.ModeThread
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backend := memfs.New()
	collector := metrics.New()

	opts := []styx9p.Option{
		styx9p.WithMsize(uint32(*msize)),
		styx9p.WithMode(listenMode),
		styx9p.WithLogger(logger),
		styx9p.WithMetrics(collector),
	}

	logger.Printf("styx9pd: listening on %s (mode=%s msize=%d)", listenAddr, *mode, *msize)
	if err := styx9p.ListenAndServe(ctx, listenAddr, backend, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "styx9pd: %v\n", err)
		return 1
	}
	return 0
}
