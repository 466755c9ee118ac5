package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
)

// ExecRunner spawns the child with the parent's standard streams. While it
// runs, interrupt and terminate signals are caught and forwarded to the
// child so the parent always outlives it and reports its exit code.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger hclog.Logger
}

// Run starts path with args and waits for it.
func (r ExecRunner) Run(ctx context.Context, path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, forwardedSignals...)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("starting %s: %w", path, err)
	}

	logger := r.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case s := <-sigs:
				logger.Debug("forwarding signal to core binary", "signal", s)
				if err := cmd.Process.Signal(s); err != nil {
					logger.Debug("signal not delivered", "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	return exitCode(cmd.ProcessState, err)
}

// exitCode mirrors the child's status: its own code when it exited, 128+n
// when signal n killed it, and 1 when the signal is unknown.
func exitCode(state *os.ProcessState, err error) (int, error) {
	if state == nil {
		if err == nil {
			err = errors.New("child process state unavailable")
		}
		return 1, err
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		if n := int(ws.Signal()); n > 0 {
			return 128 + n, nil
		}
		return 1, nil
	}
	if code := state.ExitCode(); code >= 0 {
		return code, nil
	}
	return 1, nil
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
