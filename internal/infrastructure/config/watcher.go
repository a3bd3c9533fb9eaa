package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/dtabridge/internal/logging"
)

// Watch reloads the config file when it changes and passes each valid
// revision to onChange. Transfers already running keep the options they
// started with; the log level and new transfers pick up the new values.
// An invalid revision is logged and ignored.
func (m *Manager) Watch(ctx context.Context, onChange func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if onChange != nil {
		m.callbacks = append(m.callbacks, onChange)
	}
	if m.watching {
		return
	}
	m.watching = true

	log := logging.FromContext(ctx)
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")

		next, subscribers, err := m.reload()
		if err != nil {
			log.Warn().Err(err).Msg("config reload rejected, keeping previous values")
			return
		}
		for _, fn := range subscribers {
			c := *next
			fn(&c)
		}
	})
	m.viper.WatchConfig()
}

// reload re-reads and validates the file, swapping it in on success. It
// returns a snapshot of the subscribers so they run without the lock held.
func (m *Manager) reload() (*Config, []func(*Config), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, nil, err
	}
	next, err := m.unmarshalConfig()
	if err != nil {
		return nil, nil, err
	}
	normalizeConfig(next)
	if err := validateConfig(next); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	m.config = next

	return next, append(([]func(*Config))(nil), m.callbacks...), nil
}

// Watch subscribes onChange to the global configuration.
func Watch(ctx context.Context, onChange func(*Config)) error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	globalManager.Watch(ctx, onChange)
	return nil
}
