// Package monitor holds the last known state of a receiver and turns
// successive polls into events.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/tessro/aiosctl/internal/aios"
)

// Client is the part of the device client the cache polls.
type Client interface {
	GetPowerState(ctx context.Context) (aios.PowerState, error)
	GetCurrentState(ctx context.Context) (aios.PlaybackState, error)
}

// Snapshot is the cached view of a device.
type Snapshot struct {
	Available bool               `json:"available"`
	Power     aios.PowerState    `json:"power,omitempty"`
	Playback  aios.PlaybackState `json:"playback"`
	// Muted is a local guess. The device cannot be asked.
	Muted     bool      `json:"muted"`
	LastError string    `json:"last_error,omitempty"`
	UpdatedAt time.Time `json:"updated_at" hash:"ignore"`
}

// Cache polls a device and keeps the last known state. A failed poll marks
// the device unavailable but never clears values read earlier.
type Cache struct {
	client Client
	logger *slog.Logger

	mu   sync.RWMutex
	snap Snapshot
	err  error
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger sets the logger for poll and command failures.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates a cache over client. The device starts unavailable
// until the first successful operation.
func NewCache(client Client, opts ...CacheOption) *Cache {
	c := &Cache{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the cached state.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// LastError returns the error of the most recent failed operation, or nil
// if the last operation succeeded.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Refresh reads power and then playback state. Values that were read are
// stored; a TRANSITIONING playback is discarded in favor of the previous
// one. It reports whether the snapshot changed.
func (c *Cache) Refresh(ctx context.Context) (bool, error) {
	before := c.hash()

	err := c.refresh(ctx)
	c.record("refresh", err)

	return c.hash() != before, err
}

func (c *Cache) refresh(ctx context.Context) error {
	power, err := c.client.GetPowerState(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.snap.Power = power
	c.mu.Unlock()

	playback, err := c.client.GetCurrentState(ctx)
	if err != nil {
		return err
	}
	if playback.TransportState == aios.TransportTransitioning {
		c.logger.Debug("monitor: keeping previous playback while transitioning")
		return nil
	}
	c.mu.Lock()
	c.snap.Playback = playback
	c.mu.Unlock()
	return nil
}

// Do runs a device command and updates availability from its outcome.
// The command's error is returned unchanged.
func (c *Cache) Do(ctx context.Context, name string, op func(context.Context) error) error {
	err := op(ctx)
	c.record(name, err)
	return err
}

// MarkMuteToggled flips the optimistic mute flag after a successful toggle.
func (c *Cache) MarkMuteToggled() {
	c.mu.Lock()
	c.snap.Muted = !c.snap.Muted
	c.mu.Unlock()
}

func (c *Cache) record(op string, err error) {
	c.mu.Lock()
	wasAvailable := c.snap.Available
	c.snap.UpdatedAt = time.Now()
	c.err = err
	if err != nil {
		c.snap.Available = false
		c.snap.LastError = err.Error()
	} else {
		c.snap.Available = true
		c.snap.LastError = ""
	}
	c.mu.Unlock()

	if err == nil {
		return
	}
	if wasAvailable {
		c.logger.Warn("monitor: device unavailable", "op", op, "err", err)
	} else {
		c.logger.Debug("monitor: operation failed", "op", op, "err", err)
	}
}

func (c *Cache) hash() uint64 {
	snap := c.Snapshot()
	h, err := hashstructure.Hash(snap, hashstructure.FormatV2, nil)
	if err != nil {
		c.logger.Debug("monitor: hash snapshot", "err", err)
		return 0
	}
	return h
}
