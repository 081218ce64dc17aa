package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
)

// Registry manages available game detectors
type Registry struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *Registry {
	return &Registry{
		detectors: make(map[string]Detector),
	}
}

// Register adds a detector to the registry
func (r *Registry) Register(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors[d.ID()] = d
}

// Get retrieves a detector by ID
func (r *Registry) Get(id string) (Detector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.detectors[id]
	if !ok {
		return nil, fmt.Errorf("detector not found: %s", id)
	}
	return d, nil
}

// List returns all registered detectors sorted by ID
func (r *Registry) List() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	detectors := make([]Detector, 0, len(r.detectors))
	for _, d := range r.detectors {
		detectors = append(detectors, d)
	}
	sort.Slice(detectors, func(i, j int) bool { return detectors[i].ID() < detectors[j].ID() })
	return detectors
}

// DetectAll runs every detector and merges the results. The first detector to
// report a game wins.
func (r *Registry) DetectAll(ctx context.Context, games []domain.Game) ([]DetectedGame, error) {
	var found []DetectedGame
	seen := make(map[string]bool)
	for _, d := range r.List() {
		detected, err := d.Detect(ctx, games)
		if err != nil {
			return nil, fmt.Errorf("detecting %s games: %w", d.Name(), err)
		}
		for _, g := range detected {
			if seen[g.GameID] {
				continue
			}
			seen[g.GameID] = true
			found = append(found, g)
		}
	}
	return found, nil
}
