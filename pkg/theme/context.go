package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/arcivia/arcivia-explore/pkg/logging"
	"github.com/rs/zerolog"
)

// Context is the active theme, passed explicitly to whatever renders with
// it. It persists changes to its Store.
type Context struct {
	store  Store
	logger zerolog.Logger

	mu          sync.RWMutex
	name        Name
	subscribers map[int]func(Name)
	nextSubID   int
}

// Load builds a Context from the saved preference. A missing, invalid or
// unreadable value yields Default; only the read error is logged.
func Load(ctx context.Context, store Store) *Context {
	c := &Context{
		store:       store,
		logger:      logging.NewLogger("theme"),
		name:        Default,
		subscribers: make(map[int]func(Name)),
	}

	saved, err := store.Get(ctx, PreferenceKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		c.logger.Warn().Err(err).Msg("Failed to read theme preference")
	default:
		if n, ok := ParseName(saved); ok {
			c.name = n
		} else {
			c.logger.Debug().Str("saved", saved).Msg("Ignoring unknown theme preference")
		}
	}
	return c
}

// Name returns the active theme name.
func (c *Context) Name() Name {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Palette returns the active palette.
func (c *Context) Palette() Palette {
	return PaletteFor(c.Name())
}

// Classes resolves utility classes against the active theme.
func (c *Context) Classes(cls string) string {
	return ResolveClasses(c.Name(), cls)
}

// Set switches the theme, notifies subscribers and persists the choice.
// The in-memory switch stands even if persisting fails.
func (c *Context) Set(ctx context.Context, n Name) error {
	if _, ok := palettes[n]; !ok {
		return fmt.Errorf("unknown theme %q", n)
	}

	c.mu.Lock()
	c.name = n
	subs := make([]func(Name), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}

	if err := c.store.Set(ctx, PreferenceKey, string(n)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Subscribe registers fn for theme changes and returns a function that
// removes it.
func (c *Context) Subscribe(fn func(Name)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}
