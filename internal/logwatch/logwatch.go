// Package logwatch polls for the mod loader's log file of the active profile.
// Its presence is how the launcher infers that the loader actually ran.
package logwatch

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultInterval is the polling interval used when none is configured
const DefaultInterval = time.Second

// Source returns the game and profile currently active. Either may be nil.
type Source func() (*domain.Game, *domain.Profile)

// LogPath returns the log file the game's mod loader writes inside profile.
// The second return is false for loaders without a known log layout.
func LogPath(game *domain.Game, profile *domain.Profile) (string, bool) {
	if game == nil || profile == nil || profile.Path == "" {
		return "", false
	}
	switch game.ModLoader {
	case domain.LoaderBepInEx:
		return filepath.Join(profile.Path, "BepInEx", "LogOutput.log"), true
	case domain.LoaderMelonLoader:
		return filepath.Join(profile.Path, "MelonLoader", "Latest.log"), true
	default:
		return "", false
	}
}

// Watcher tracks whether the active profile's log file exists. The flag may be
// read from any goroutine; readers see a value at most one interval old. Once
// started, only the loop goroutine polls, so transitions reach Changes in order.
type Watcher struct {
	fs       fsys.FS
	clock    clockwork.Clock
	source   Source
	interval time.Duration

	exists  atomic.Bool
	changes chan bool
	checks  chan chan bool

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Watcher. A nil clock uses the real clock; a non-positive
// interval uses DefaultInterval.
func New(fs fsys.FS, clock clockwork.Clock, source Source, interval time.Duration) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		fs:       fs,
		clock:    clock,
		source:   source,
		interval: interval,
		changes:  make(chan bool, 16),
		checks:   make(chan chan bool),
	}
}

// Start checks immediately, then polls every interval until Disconnect is
// called or ctx is cancelled. Calling Start more than once, or after
// Disconnect, does nothing.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	w.poll()
	ticker := w.clock.NewTicker(w.interval)
	go w.loop(ctx, ticker)
}

func (w *Watcher) loop(ctx context.Context, ticker clockwork.Ticker) {
	defer close(w.done)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			w.poll()
		case reply := <-w.checks:
			w.poll()
			reply <- w.Exists()
		case <-ctx.Done():
			return
		}
	}
}

// Check polls once and returns the refreshed flag. A running watcher does the
// poll on its loop goroutine. After Disconnect, or once the loop has exited, it
// only returns the last value.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return w.Exists()
	}
	if !w.started {
		// No loop yet; holding mu keeps Start from racing this poll
		w.poll()
		w.mu.Unlock()
		return w.Exists()
	}
	done := w.done
	w.mu.Unlock()

	reply := make(chan bool, 1)
	select {
	case w.checks <- reply:
		return <-reply
	case <-done:
		return w.Exists()
	}
}

func (w *Watcher) poll() {
	var game *domain.Game
	var profile *domain.Profile
	if w.source != nil {
		game, profile = w.source()
	}

	present := false
	if path, ok := LogPath(game, profile); ok {
		exists, err := w.fs.Exists(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("checking mod loader log")
		}
		present = exists
	}

	if w.exists.Swap(present) != present {
		log.Debug().Bool("exists", present).Msg("mod loader log availability changed")
		select {
		case w.changes <- present:
		default:
		}
	}
}

// Exists reports whether the log file existed at the last poll
func (w *Watcher) Exists() bool {
	return w.exists.Load()
}

// Changes delivers every transition of the flag. Transitions are dropped
// when the receiver falls behind. The channel is closed by Disconnect.
func (w *Watcher) Changes() <-chan bool {
	return w.changes
}

// Disconnect stops polling and waits for the loop to exit. It is safe to call
// more than once and before Start.
func (w *Watcher) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true

	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
	close(w.changes)
}
