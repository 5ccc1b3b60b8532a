package animate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/philipparndt/goaxes/internal/log"
	"github.com/philipparndt/goaxes/internal/presets"
)

// DefaultShowcasePeriod is how long each preset is shown
const DefaultShowcasePeriod = 3 * time.Second

// Showcase cycles through presets, handing each one to apply
type Showcase struct {
	mu     sync.Mutex
	names  []string
	index  int
	apply  func(presets.Preset) error
	logger log.Logger
}

// NewShowcase validates names and applies the first preset. An empty list
// uses every preset.
func NewShowcase(names []string, apply func(presets.Preset) error, logger log.Logger) (*Showcase, error) {
	if len(names) == 0 {
		names = presets.Names()
	}
	for _, n := range names {
		if _, err := presets.Get(n); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = log.Nop()
	}

	s := &Showcase{
		names:  append([]string(nil), names...),
		apply:  apply,
		logger: logger,
	}
	if err := s.show(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the name of the preset being shown
func (s *Showcase) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.names[s.index]
}

// Advance moves to the next preset, wrapping around
func (s *Showcase) Advance() error {
	s.mu.Lock()
	s.index = (s.index + 1) % len(s.names)
	s.mu.Unlock()
	return s.show()
}

// Run advances once per period until ctx is cancelled
func (s *Showcase) Run(ctx context.Context, period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("showcase period must be positive, got %v", period)
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := s.Advance(); err != nil {
				return err
			}
		}
	}
}

func (s *Showcase) show() error {
	name := s.Current()
	p, err := presets.Get(name)
	if err != nil {
		return err
	}
	s.logger.WithField("preset", name).Debugf("showing %s", p.Description)
	if err := s.apply(p); err != nil {
		return fmt.Errorf("failed to apply preset %s: %w", name, err)
	}
	return nil
}
