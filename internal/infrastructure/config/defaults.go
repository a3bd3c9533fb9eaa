package config

import (
	"os"
	"path/filepath"
)

const (
	defaultMaxLogAgeDays   = 7
	defaultChunkSize       = 8192
	defaultPollIntervalMs  = 100
	defaultReadTimeoutMs   = 30_000
	defaultHeaderTimeoutMs = 30_000
	defaultPrerollTimeout  = 10_000
	defaultMaxFrameBytes   = 64 << 20
	defaultSampleRate      = 1.0
	defaultUserAgent       = "dtabridge/1.0"

	// maxPollIntervalMs keeps pause/cancel reaction within 200ms.
	maxPollIntervalMs = 200
)

func getDefaultLogDir() string {
	if logDir, err := GetLogDir(); err == nil {
		return logDir
	}
	return filepath.Join(os.TempDir(), appName, "logs")
}

func getDefaultJournalPath() string {
	if path, err := GetJournalFile(); err == nil {
		return path
	}
	return filepath.Join(os.TempDir(), appName, journalName)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			MaxAge:        defaultMaxLogAgeDays,
			LogDir:        getDefaultLogDir(),
			EnableFileLog: true,
		},
		Downloads: DownloadsConfig{
			TempDir:                 "",
			ChunkSize:               defaultChunkSize,
			PollIntervalMs:          defaultPollIntervalMs,
			ReadTimeoutMs:           defaultReadTimeoutMs,
			ResponseHeaderTimeoutMs: defaultHeaderTimeoutMs,
			PrerollTimeoutMs:        defaultPrerollTimeout,
			MaxBytesPerSecond:       0,
			MaxConcurrent:           0,
			UserAgent:               defaultUserAgent,
		},
		Protocol: ProtocolConfig{
			MaxFrameBytes: defaultMaxFrameBytes,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    getDefaultJournalPath(),
		},
		Metrics: MetricsConfig{},
		Telemetry: TelemetryConfig{
			SampleRate: defaultSampleRate,
		},
	}
}
