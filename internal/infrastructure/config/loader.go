package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/dtabridge/internal/logging"
)

// Manager owns the viper instance behind the host configuration. Reads
// return copies so a reload never mutates a config a transfer holds.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// DTABRIDGE_DOWNLOADS_TEMP_DIR -> downloads.temp_dir
	v.SetEnvPrefix("DTABRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names kept for the log settings people reach for first.
	if err := v.BindEnv("logging.level", "DTABRIDGE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DTABRIDGE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DTABRIDGE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DTABRIDGE_LOG_FORMAT: %w", err)
	}

	return &Manager{viper: v}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf("failed to create default config at %s: %w", configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = "console"
	}

	config.Downloads.TempDir = strings.TrimSpace(config.Downloads.TempDir)
	if config.Downloads.TempDir == "" {
		config.Downloads.TempDir = os.TempDir()
	}
	config.Downloads.UserAgent = strings.TrimSpace(config.Downloads.UserAgent)
	config.Metrics.Listen = strings.TrimSpace(config.Metrics.Listen)
	config.Telemetry.OTLPEndpoint = strings.TrimSpace(config.Telemetry.OTLPEndpoint)

	if config.Journal.Path == "" {
		config.Journal.Path = getDefaultJournalPath()
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults to the config file on first run.
// It reports on stderr: stdout belongs to the framing protocol.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log := logging.NewFromEnv()
	log.Info().Str("path", configFile).Msg("created default configuration file")
	if err := GenerateSchemaFile(); err != nil {
		log.Warn().Err(err).Msg("failed to write config schema")
	}
	return nil
}

// defaultKeys flattens DefaultConfig into viper keys. Every key must be
// registered so env overrides and SafeWriteConfigAs see it.
func defaultKeys(d *Config) map[string]any {
	return map[string]any{
		"logging.level":           d.Logging.Level,
		"logging.format":          d.Logging.Format,
		"logging.max_age":         d.Logging.MaxAge,
		"logging.log_dir":         d.Logging.LogDir,
		"logging.enable_file_log": d.Logging.EnableFileLog,

		"downloads.temp_dir":                   d.Downloads.TempDir,
		"downloads.chunk_size":                 d.Downloads.ChunkSize,
		"downloads.poll_interval_ms":           d.Downloads.PollIntervalMs,
		"downloads.read_timeout_ms":            d.Downloads.ReadTimeoutMs,
		"downloads.response_header_timeout_ms": d.Downloads.ResponseHeaderTimeoutMs,
		"downloads.preroll_timeout_ms":         d.Downloads.PrerollTimeoutMs,
		"downloads.max_bytes_per_second":       d.Downloads.MaxBytesPerSecond,
		"downloads.max_concurrent":             d.Downloads.MaxConcurrent,
		"downloads.user_agent":                 d.Downloads.UserAgent,

		"protocol.max_frame_bytes": d.Protocol.MaxFrameBytes,

		"journal.enabled": d.Journal.Enabled,
		"journal.path":    d.Journal.Path,

		"metrics.listen": d.Metrics.Listen,

		"telemetry.otlp_endpoint": d.Telemetry.OTLPEndpoint,
		"telemetry.sample_rate":   d.Telemetry.SampleRate,
	}
}

func (m *Manager) setDefaults() {
	for key, value := range defaultKeys(DefaultConfig()) {
		m.viper.SetDefault(key, value)
	}
}

var (
	globalManager     *Manager
	globalManagerOnce sync.Once
)

// Init loads the process-wide configuration once.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// GetManager returns the process-wide manager, nil before Init.
func GetManager() *Manager {
	return globalManager
}
