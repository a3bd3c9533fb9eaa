package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DownloadTuning(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8192, cfg.Downloads.ChunkSize)
	assert.Equal(t, 100*time.Millisecond, cfg.Downloads.PollInterval())
	assert.Equal(t, 30*time.Second, cfg.Downloads.ReadTimeout())
	assert.Equal(t, 10*time.Second, cfg.Downloads.PrerollTimeout())
	assert.Zero(t, cfg.Downloads.MaxConcurrent, "unlimited by default")
	assert.Empty(t, cfg.Metrics.Listen, "metrics listener is opt-in")
	assert.True(t, cfg.Journal.Enabled)
}
