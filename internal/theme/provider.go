package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/repository"
)

// Key is where the preference is stored, separately from the state blob.
const Key = "themeMode"

const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// Provider owns the dark-mode preference.
type Provider struct {
	mu   sync.RWMutex
	dark bool
	kv   repository.KVRepository
	log  *zap.Logger
}

// NewProvider starts in dark mode until Load is called.
func NewProvider(kv repository.KVRepository, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{dark: true, kv: kv, log: log.Named("theme")}
}

// Load reads the stored preference. Anything other than "light" keeps dark.
func (p *Provider) Load(ctx context.Context) error {
	v, err := p.kv.Get(ctx, Key)
	if errors.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	p.mu.Lock()
	p.dark = v != ModeLight
	p.mu.Unlock()
	return nil
}

// Toggle flips the mode and stores it. The in-memory mode changes even if
// the write fails.
func (p *Provider) Toggle(ctx context.Context) (Theme, error) {
	p.mu.Lock()
	p.dark = !p.dark
	t := For(p.dark)
	p.mu.Unlock()

	if err := p.kv.Set(ctx, Key, t.Mode()); err != nil {
		p.log.Error("save theme", zap.String("mode", t.Mode()), zap.Error(err))
		return t, fmt.Errorf("save theme: %w", err)
	}
	return t, nil
}

// Current returns the active theme.
func (p *Provider) Current() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return For(p.dark)
}

// Preference reports the stored mode as a model value.
func (p *Provider) Preference() model.ThemePreference {
	return model.ThemePreference{IsDarkMode: p.Current().IsDark}
}

// Styles returns styles for the active theme.
func (p *Provider) Styles() Styles { return NewStyles(p.Current()) }
