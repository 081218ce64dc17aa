package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultLaunchGrace is how long Start waits for the launcher process
const DefaultLaunchGrace = 5 * time.Second

// maxOutput caps the output kept from a launcher process
const maxOutput = 64 * 1024

// Executor issues a launch command line
type Executor interface {
	// Start runs cmdline and returns once it is known to have launched
	Start(ctx context.Context, cmdline string) error
}

// ExecError reports a launcher process that failed within the grace period
type ExecError struct {
	Cmdline  string
	ExitCode int
	Output   string
	Err      error
}

func (e *ExecError) Error() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, out)
	}
	return fmt.Sprintf("command failed: %v", e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ShellExecutor runs command lines through sh -c. A process still running
// after the grace period counts as launched and is reaped in the background;
// the game outlives the caller's context.
type ShellExecutor struct {
	clock clockwork.Clock
	grace time.Duration
	shell string
}

// NewShellExecutor creates a ShellExecutor; a zero grace uses DefaultLaunchGrace
func NewShellExecutor(clock clockwork.Clock, grace time.Duration) *ShellExecutor {
	if grace <= 0 {
		grace = DefaultLaunchGrace
	}
	return &ShellExecutor{clock: clock, grace: grace, shell: "sh"}
}

// Start implements Executor
func (e *ShellExecutor) Start(ctx context.Context, cmdline string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(e.shell, "-c", cmdline)
	out := &cappedBuffer{limit: maxOutput}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		return &ExecError{Cmdline: cmdline, ExitCode: -1, Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := e.clock.NewTimer(e.grace)
	defer timer.Stop()

	select {
	case err := <-done:
		if err == nil {
			return nil
		}
		var exitErr *exec.ExitError
		code := -1
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ExecError{Cmdline: cmdline, ExitCode: code, Output: out.String(), Err: err}
	case <-timer.Chan():
		log.Debug().Str("cmdline", cmdline).Dur("grace", e.grace).Msg("launcher still running, detaching")
	case <-ctx.Done():
		log.Debug().Str("cmdline", cmdline).Msg("stopped waiting for launcher")
	}

	go func() {
		err := <-done
		log.Debug().Err(err).Str("cmdline", cmdline).Msg("launcher exited")
	}()
	return nil
}

// cappedBuffer keeps the first limit bytes written to it
type cappedBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := b.limit - len(b.buf); room > 0 {
		if len(p) > room {
			b.buf = append(b.buf, p[:room]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
