package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/dtabridge/internal/cli/styles"
	"github.com/bnema/dtabridge/internal/infrastructure/chooser"
	"github.com/bnema/dtabridge/internal/infrastructure/config"
	"github.com/bnema/dtabridge/internal/infrastructure/filesystem"
	"github.com/bnema/dtabridge/internal/infrastructure/persistence/sqlite"
)

// Diagnostics gathers the doctor report. The probes are swappable for tests.
type Diagnostics struct {
	Config     *config.Config
	ConfigFile string
	ConfigErr  error
	GOOS       string
	LookPath   func(string) (string, error)
}

// NewDiagnostics checks the host as it would run from this App.
func (a *App) NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		Config:     a.Config,
		ConfigFile: a.ConfigFile,
		ConfigErr:  a.ConfigErr,
		GOOS:       runtime.GOOS,
		LookPath:   exec.LookPath,
	}
}

// Run executes the independent checks concurrently.
func (d *Diagnostics) Run(ctx context.Context) styles.DoctorReport {
	var hostChecks [3]styles.DoctorCheck
	var journalChecks []styles.DoctorCheck

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hostChecks[0] = d.checkConfig()
		return nil
	})
	g.Go(func() error {
		hostChecks[1] = d.checkChooser()
		return nil
	})
	g.Go(func() error {
		hostChecks[2] = d.checkTempDir(gctx)
		return nil
	})
	g.Go(func() error {
		journalChecks = d.checkJournal(gctx)
		return nil
	})
	_ = g.Wait()

	return styles.DoctorReport{Sections: []styles.DoctorSection{
		{Title: "Host", Icon: styles.IconConfig, Checks: hostChecks[:]},
		{Title: "Journal", Icon: styles.IconDatabase, Checks: journalChecks},
		{Title: "Observability", Icon: styles.IconClock, Checks: d.checkObservability()},
	}}
}

func (d *Diagnostics) checkConfig() styles.DoctorCheck {
	c := styles.DoctorCheck{Name: "Configuration", Detail: d.ConfigFile}
	if d.ConfigErr != nil {
		c.Status = styles.CheckWarn
		c.Detail = fmt.Sprintf("defaults in use: %v", d.ConfigErr)
	}
	return c
}

func (d *Diagnostics) checkChooser() styles.DoctorCheck {
	name := chooser.Detect(d.GOOS, d.LookPath).Name()
	c := styles.DoctorCheck{Name: "Folder chooser", Detail: name}
	if name == chooser.UnavailableName {
		c.Status = styles.CheckWarn
		c.Detail = "no dialog tool found; choose_folder answers with the home directory as fallback"
	}
	return c
}

func (d *Diagnostics) checkTempDir(ctx context.Context) styles.DoctorCheck {
	dir := d.Config.Downloads.TempDir
	c := styles.DoctorCheck{Name: "Temp directory", Detail: dir}
	if err := filesystem.New().ProbeWritable(ctx, dir); err != nil {
		c.Status = styles.CheckFail
		c.Detail = fmt.Sprintf("%s: %v", dir, err)
	}
	return c
}

func (d *Diagnostics) checkJournal(ctx context.Context) []styles.DoctorCheck {
	if !d.Config.Journal.Enabled {
		return []styles.DoctorCheck{{Name: "Transfer journal", Status: styles.CheckWarn, Detail: "disabled"}}
	}

	path := d.Config.Journal.Path
	db, err := sqlite.NewConnection(ctx, path)
	if err != nil {
		return []styles.DoctorCheck{{Name: "Transfer journal", Status: styles.CheckFail, Detail: err.Error()}}
	}
	defer func() { _ = db.Close() }()

	checks := []styles.DoctorCheck{{Name: "Transfer journal", Detail: path}}
	version, err := sqlite.SchemaVersion(ctx, db)
	if err != nil {
		return append(checks, styles.DoctorCheck{Name: "Schema version", Status: styles.CheckFail, Detail: err.Error()})
	}
	return append(checks, styles.DoctorCheck{Name: "Schema version", Detail: fmt.Sprintf("%d", version)})
}

func (d *Diagnostics) checkObservability() []styles.DoctorCheck {
	metrics := styles.DoctorCheck{Name: "Metrics listener", Detail: "disabled"}
	if d.Config.Metrics.Listen != "" {
		metrics.Detail = "http://" + d.Config.Metrics.Listen + "/metrics"
	}
	tracing := styles.DoctorCheck{Name: "Trace export", Detail: "disabled"}
	if d.Config.Telemetry.OTLPEndpoint != "" {
		tracing.Detail = fmt.Sprintf("%s (sample rate %.2f)", d.Config.Telemetry.OTLPEndpoint, d.Config.Telemetry.SampleRate)
	}
	return []styles.DoctorCheck{metrics, tracing}
}
