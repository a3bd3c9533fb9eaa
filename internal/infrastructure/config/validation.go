package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "off"}

// validateConfig collects every invalid value so users can fix them in one pass.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDownloads(config)...)
	validationErrors = append(validationErrors, validateProtocol(config)...)
	validationErrors = append(validationErrors, validateMetrics(config)...)
	validationErrors = append(validationErrors, validateTelemetry(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.Level != "" && !slices.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a known level", config.Logging.Level))
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		validationErrors = append(validationErrors, "logging.log_dir is required when enable_file_log is true")
	}
	return validationErrors
}

func validateDownloads(config *Config) []string {
	d := config.Downloads
	var validationErrors []string
	if d.ChunkSize < 1 {
		validationErrors = append(validationErrors, "downloads.chunk_size must be positive")
	}
	if d.PollIntervalMs < 1 || d.PollIntervalMs > maxPollIntervalMs {
		validationErrors = append(validationErrors, fmt.Sprintf("downloads.poll_interval_ms must be between 1 and %d", maxPollIntervalMs))
	}
	if d.ReadTimeoutMs < 1 {
		validationErrors = append(validationErrors, "downloads.read_timeout_ms must be positive")
	}
	if d.ResponseHeaderTimeoutMs < 0 {
		validationErrors = append(validationErrors, "downloads.response_header_timeout_ms must be non-negative")
	}
	if d.PrerollTimeoutMs < 1 {
		validationErrors = append(validationErrors, "downloads.preroll_timeout_ms must be positive")
	}
	if d.MaxBytesPerSecond < 0 {
		validationErrors = append(validationErrors, "downloads.max_bytes_per_second must be non-negative")
	}
	if d.MaxConcurrent < 0 {
		validationErrors = append(validationErrors, "downloads.max_concurrent must be non-negative")
	}
	return validationErrors
}

func validateProtocol(config *Config) []string {
	if config.Protocol.MaxFrameBytes < 1024 {
		return []string{"protocol.max_frame_bytes must be at least 1024"}
	}
	return nil
}

func validateMetrics(config *Config) []string {
	if config.Metrics.Listen == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(config.Metrics.Listen); err != nil {
		return []string{fmt.Sprintf("metrics.listen %q must be host:port", config.Metrics.Listen)}
	}
	return nil
}

func validateTelemetry(config *Config) []string {
	if config.Telemetry.SampleRate < 0 || config.Telemetry.SampleRate > 1 {
		return []string{"telemetry.sample_rate must be between 0 and 1"}
	}
	return nil
}
