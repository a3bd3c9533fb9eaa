// Package cli holds the state shared by the dtabridge commands.
package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/dtabridge/internal/cli/styles"
	"github.com/bnema/dtabridge/internal/domain/build"
	"github.com/bnema/dtabridge/internal/infrastructure/config"
	"github.com/bnema/dtabridge/internal/logging"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
)

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	// ConfigErr is set when the file could not be loaded and defaults are in use.
	ConfigErr error
	Theme     *styles.Theme
	BuildInfo build.Info

	ctx        context.Context
	logCleanup func()
}

// NewApp loads configuration and builds the logger. A broken config file
// does not stop the host: defaults are used and the error is logged.
func NewApp() (*App, error) {
	cfg, cfgFile, cfgErr := loadConfig()

	// The logger itself stays at trace so a config reload can lower the
	// global level without rebuilding it.
	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: zerolog.TraceLevel, Format: cfg.Logging.Format, TimeFormat: time.RFC3339},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			Dir:           cfg.Logging.LogDir,
			MaxSizeMB:     logMaxSizeMB,
			MaxBackups:    logMaxBackups,
			MaxAgeDays:    cfg.Logging.MaxAge,
			Compress:      true,
			WriteToStderr: true,
		},
	)
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		logger.Warn().Err(err).Str("dir", cfg.Logging.LogDir).Msg("file logging disabled")
	}
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("using default configuration")
	}

	return &App{
		Config:     cfg,
		ConfigFile: cfgFile,
		ConfigErr:  cfgErr,
		Theme:      styles.NewTheme(),
		ctx:        logging.WithContext(context.Background(), logger),
		logCleanup: logCleanup,
	}, nil
}

// WatchConfig reloads the log level whenever the config file changes.
func (a *App) WatchConfig() {
	log := logging.FromContext(a.ctx)
	err := config.Watch(a.ctx, func(c *config.Config) {
		level := logging.ParseLevel(c.Logging.Level)
		zerolog.SetGlobalLevel(level)
		log.Info().Str("level", level.String()).Msg("log level reloaded")
	})
	if err != nil {
		log.Debug().Err(err).Msg("config watching unavailable")
	}
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

func loadConfig() (*config.Config, string, error) {
	if err := config.Init(); err != nil {
		return config.DefaultConfig(), "", err
	}
	mgr := config.GetManager()
	return mgr.Get(), mgr.GetConfigFile(), nil
}
