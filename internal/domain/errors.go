package domain

import (
	"errors"
	"fmt"
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileExists       = errors.New("profile already exists")
	ErrNoActiveProfile     = errors.New("no active profile")
	ErrNoPlatform          = errors.New("game has no platform configured")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrSteamNotFound       = errors.New("steam installation not found")
	ErrAppNotInstalled     = errors.New("app is not installed in any steam library")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// PlatformDetectionError reports that the launcher could not determine something
// about the platform a game runs on (Steam directory, Proton status, compatdata).
type PlatformDetectionError struct {
	Op  string // e.g. "steam directory", "proton status"
	Err error
}

func (e *PlatformDetectionError) Error() string {
	return fmt.Sprintf("detecting %s: %v", e.Op, e.Err)
}

func (e *PlatformDetectionError) Unwrap() error {
	return e.Err
}

// LaunchError is the single error shape surfaced to users when a launch fails.
// Title, Detail and Hint are meant to be displayed as-is.
type LaunchError struct {
	Title  string
	Detail string
	Hint   string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return e.Title + ": " + e.Detail
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// AsLaunchError converts any launch failure into a *LaunchError. Errors that
// already are (or wrap) a LaunchError are returned unchanged. Returns nil for nil.
func AsLaunchError(err error) *LaunchError {
	if err == nil {
		return nil
	}

	var le *LaunchError
	if errors.As(err, &le) {
		return le
	}

	var pde *PlatformDetectionError
	if errors.As(err, &pde) {
		return &LaunchError{
			Title:  "Unable to detect platform",
			Detail: err.Error(),
			Hint:   "Ensure the game is installed and the Steam directory is set correctly in the settings",
			Err:    err,
		}
	}

	switch {
	case errors.Is(err, ErrNoActiveProfile), errors.Is(err, ErrProfileNotFound):
		return &LaunchError{
			Title:  "No profile selected",
			Detail: err.Error(),
			Hint:   "Create or select a profile with 'lml profile use <name>'",
			Err:    err,
		}
	case errors.Is(err, ErrUnsupportedPlatform), errors.Is(err, ErrNoPlatform):
		return &LaunchError{
			Title:  "Platform not supported",
			Detail: err.Error(),
			Hint:   "Check the platforms configured for this game in games.yaml",
			Err:    err,
		}
	}

	return &LaunchError{
		Title:  "Failed to launch game",
		Detail: err.Error(),
		Hint:   "Run with --verbose and check the log file for details",
		Err:    err,
	}
}
