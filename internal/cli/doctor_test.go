package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dtabridge/internal/cli/styles"
	"github.com/bnema/dtabridge/internal/infrastructure/config"
)

func findCheck(t *testing.T, report styles.DoctorReport, name string) styles.DoctorCheck {
	t.Helper()
	for _, s := range report.Sections {
		for _, c := range s.Checks {
			if c.Name == name {
				return c
			}
		}
	}
	require.Failf(t, "check not found", "%q", name)
	return styles.DoctorCheck{}
}

func newDiagnostics(t *testing.T) *Diagnostics {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Downloads.TempDir = t.TempDir()
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")
	return &Diagnostics{
		Config:     cfg,
		ConfigFile: "/home/u/.config/dtabridge/config.toml",
		GOOS:       "linux",
		LookPath: func(name string) (string, error) {
			if name == "zenity" {
				return "/usr/bin/zenity", nil
			}
			return "", errors.New("not found")
		},
	}
}

func TestDiagnostics_Healthy(t *testing.T) {
	d := newDiagnostics(t)
	report := d.Run(context.Background())

	assert.True(t, report.OK())
	assert.Equal(t, "zenity", findCheck(t, report, "Folder chooser").Detail)
	assert.Equal(t, styles.CheckOK, findCheck(t, report, "Temp directory").Status)
	assert.Equal(t, d.Config.Journal.Path, findCheck(t, report, "Transfer journal").Detail)
	assert.Equal(t, "1", findCheck(t, report, "Schema version").Detail)
	assert.Equal(t, "disabled", findCheck(t, report, "Metrics listener").Detail)
}

func TestDiagnostics_Problems(t *testing.T) {
	d := newDiagnostics(t)
	d.LookPath = func(string) (string, error) { return "", errors.New("not found") }
	d.ConfigErr = errors.New("bad toml")
	d.Config.Downloads.TempDir = filepath.Join(t.TempDir(), "missing")
	d.Config.Journal.Enabled = false
	d.Config.Metrics.Listen = "127.0.0.1:9464"

	report := d.Run(context.Background())

	assert.False(t, report.OK())
	assert.Equal(t, styles.CheckWarn, findCheck(t, report, "Folder chooser").Status)
	assert.Equal(t, styles.CheckWarn, findCheck(t, report, "Configuration").Status)
	assert.Equal(t, styles.CheckFail, findCheck(t, report, "Temp directory").Status)
	assert.Equal(t, "disabled", findCheck(t, report, "Transfer journal").Detail)
	assert.Equal(t, "http://127.0.0.1:9464/metrics", findCheck(t, report, "Metrics listener").Detail)
}
