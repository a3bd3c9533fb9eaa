package config

import "time"

// Config is the full dtabridge configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Downloads DownloadsConfig `mapstructure:"downloads" yaml:"downloads" toml:"downloads" json:"downloads"`
	Protocol  ProtocolConfig  `mapstructure:"protocol" yaml:"protocol" toml:"protocol" json:"protocol"`
	Journal   JournalConfig   `mapstructure:"journal" yaml:"journal" toml:"journal" json:"journal"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics" toml:"metrics" json:"metrics"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry" toml:"telemetry" json:"telemetry"`
}

// LoggingConfig controls where and how the host logs. stdout is never used.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	MaxAge int    `mapstructure:"max_age" yaml:"max_age" toml:"max_age" json:"max_age"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
}

// DownloadsConfig tunes the transfer loop.
type DownloadsConfig struct {
	// TempDir receives transfers started without a destination path. Empty means os.TempDir().
	TempDir   string `mapstructure:"temp_dir" yaml:"temp_dir" toml:"temp_dir" json:"temp_dir"`
	ChunkSize int    `mapstructure:"chunk_size" yaml:"chunk_size" toml:"chunk_size" json:"chunk_size"`
	// PollIntervalMs is how often a paused transfer checks for resume or cancel.
	PollIntervalMs          int    `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms" toml:"poll_interval_ms" json:"poll_interval_ms"`
	ReadTimeoutMs           int    `mapstructure:"read_timeout_ms" yaml:"read_timeout_ms" toml:"read_timeout_ms" json:"read_timeout_ms"`
	ResponseHeaderTimeoutMs int    `mapstructure:"response_header_timeout_ms" yaml:"response_header_timeout_ms" toml:"response_header_timeout_ms" json:"response_header_timeout_ms"`
	PrerollTimeoutMs        int    `mapstructure:"preroll_timeout_ms" yaml:"preroll_timeout_ms" toml:"preroll_timeout_ms" json:"preroll_timeout_ms"`
	MaxBytesPerSecond       int    `mapstructure:"max_bytes_per_second" yaml:"max_bytes_per_second" toml:"max_bytes_per_second" json:"max_bytes_per_second"`
	MaxConcurrent           int    `mapstructure:"max_concurrent" yaml:"max_concurrent" toml:"max_concurrent" json:"max_concurrent"`
	UserAgent               string `mapstructure:"user_agent" yaml:"user_agent" toml:"user_agent" json:"user_agent"`
}

// PollInterval returns the pause polling interval.
func (d DownloadsConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalMs) * time.Millisecond
}

// ReadTimeout returns the per-chunk stall limit.
func (d DownloadsConfig) ReadTimeout() time.Duration {
	return time.Duration(d.ReadTimeoutMs) * time.Millisecond
}

// ResponseHeaderTimeout returns how long to wait for response headers.
func (d DownloadsConfig) ResponseHeaderTimeout() time.Duration {
	return time.Duration(d.ResponseHeaderTimeoutMs) * time.Millisecond
}

// PrerollTimeout returns the header probe deadline.
func (d DownloadsConfig) PrerollTimeout() time.Duration {
	return time.Duration(d.PrerollTimeoutMs) * time.Millisecond
}

// ProtocolConfig bounds the framing layer.
type ProtocolConfig struct {
	MaxFrameBytes int `mapstructure:"max_frame_bytes" yaml:"max_frame_bytes" toml:"max_frame_bytes" json:"max_frame_bytes"`
}

// JournalConfig controls the SQLite transfer journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
}

// MetricsConfig exposes Prometheus metrics when Listen is set (e.g. "127.0.0.1:9464").
type MetricsConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen" toml:"listen" json:"listen"`
}

// TelemetryConfig enables OTLP trace export when OTLPEndpoint is set.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint" toml:"otlp_endpoint" json:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate" toml:"sample_rate" json:"sample_rate"`
}
