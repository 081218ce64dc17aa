package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"

	"github.com/rs/zerolog/log"
)

// Hook names exported to scripts as LML_HOOK
const (
	HookBeforeLaunch = "before_launch"
	HookAfterLaunch  = "after_launch"
)

var (
	ErrHookNotFound      = errors.New("hook script not found")
	ErrHookNotExecutable = errors.New("hook script not executable")
	ErrHookTimeout       = errors.New("hook timed out")
)

// HookContext describes the launch a hook script runs for
type HookContext struct {
	GameID      string
	GamePath    string // Empty when the install directory is unknown
	ProfileName string // Empty for vanilla launches without a profile
	ProfilePath string
	Mode        domain.LaunchMode
	HookName    string
}

// Env returns the LML_* variables passed to the script
func (hc HookContext) Env() []string {
	return []string{
		"LML_GAME_ID=" + hc.GameID,
		"LML_GAME_PATH=" + hc.GamePath,
		"LML_PROFILE=" + hc.ProfileName,
		"LML_PROFILE_PATH=" + hc.ProfilePath,
		"LML_LAUNCH_MODE=" + hc.Mode.String(),
		"LML_HOOK=" + hc.HookName,
	}
}

// HookResult is the captured output of a finished hook
type HookResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// HookError is a hook that could not run or did not succeed
type HookError struct {
	Hook     string
	Script   string
	ExitCode int
	Err      error
}

func (e *HookError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("%s hook %s exited with code %d", e.Hook, e.Script, e.ExitCode)
	}
	return fmt.Sprintf("%s hook %s: %v", e.Hook, e.Script, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// HookRunner runs user scripts around a launch, bounded by a timeout
type HookRunner struct {
	timeout time.Duration
}

// NewHookRunner creates a runner that kills scripts after timeout
func NewHookRunner(timeout time.Duration) *HookRunner {
	return &HookRunner{timeout: timeout}
}

func checkScript(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrHookNotFound
	case err != nil:
		return err
	case info.IsDir() || info.Mode()&0111 == 0:
		return ErrHookNotExecutable
	}
	return nil
}

// Run executes script with the process environment plus hc.Env(). The result
// carries whatever output was captured, even on failure.
func (r *HookRunner) Run(ctx context.Context, script string, hc HookContext) (*HookResult, error) {
	result := &HookResult{}
	fail := func(err error) (*HookResult, error) {
		return result, &HookError{Hook: hc.HookName, Script: script, ExitCode: result.ExitCode, Err: err}
	}

	if err := checkScript(script); err != nil {
		return fail(err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = append(os.Environ(), hc.Env()...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 100 * time.Millisecond

	err := cmd.Run()
	result.Stdout, result.Stderr = stdout.String(), stderr.String()

	log.Debug().
		Str("hook", hc.HookName).
		Str("script", script).
		Str("stdout", result.Stdout).
		Str("stderr", result.Stderr).
		Err(err).
		Msg("hook finished")

	if err == nil {
		return result, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fail(fmt.Errorf("%w after %v", ErrHookTimeout, r.timeout))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}
	return fail(err)
}
