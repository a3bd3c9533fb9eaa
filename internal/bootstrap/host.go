package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dtabridge/internal/application/transfer"
	"github.com/bnema/dtabridge/internal/application/usecase"
	"github.com/bnema/dtabridge/internal/infrastructure/chooser"
	"github.com/bnema/dtabridge/internal/infrastructure/config"
	"github.com/bnema/dtabridge/internal/infrastructure/filesystem"
	"github.com/bnema/dtabridge/internal/infrastructure/httpclient"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg/handlers"
	"github.com/bnema/dtabridge/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dtabridge/internal/logging"
	"github.com/bnema/dtabridge/internal/metrics"
	"github.com/bnema/dtabridge/internal/telemetry"
)

const (
	shutdownTimeout  = 5 * time.Second
	journalRetention = 30 * 24 * time.Hour
)

// HostInput holds what RunHost needs from the process.
type HostInput struct {
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer

	// GOOS and LookPath select the folder chooser backend.
	// Zero values mean runtime.GOOS and exec.LookPath.
	GOOS     string
	LookPath func(string) (string, error)
}

// RunHost serves one browser connection until stdin closes, ctx is
// cancelled or the stream breaks. Transfers still running on exit are
// cancelled before it returns.
func RunHost(ctx context.Context, in HostInput) error {
	timer := newWiringTimer()
	cfg := in.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if in.GOOS == "" {
		in.GOOS = runtime.GOOS
	}
	if in.LookPath == nil {
		in.LookPath = exec.LookPath
	}

	ctx = logging.WithComponent(ctx, "host")
	log := logging.FromContext(ctx)

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.SampleRate)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("trace flush failed")
		}
	}()
	timer.mark("telemetry")

	out := bufio.NewWriter(in.Stdout)
	channel := nativemsg.NewChannel(in.Stdin, out, cfg.Protocol.MaxFrameBytes)
	client := httpclient.New(cfg.Downloads)

	var regOpts []transfer.RegistryOption
	var journalDB *sqlite.LazyDB
	if cfg.Journal.Enabled {
		journalDB = sqlite.NewLazyDB(cfg.Journal.Path)
		regOpts = append(regOpts, transfer.WithJournal(sqlite.NewLazyTransferRepository(journalDB)))
	}
	defer closeJournal(ctx, journalDB)

	registry := transfer.NewRegistry(ctx, client, nativemsg.NewEventWriter(channel), TransferOptions(cfg.Downloads), regOpts...)
	timer.mark("transfers")

	fs := filesystem.New()
	folderChooser := chooser.Detect(in.GOOS, in.LookPath)
	log.Debug().Str("chooser", folderChooser.Name()).Msg("folder chooser selected")

	router := nativemsg.NewMessageRouter(ctx, channel)
	err = handlers.RegisterAll(ctx, router, handlers.Config{
		Transfers:      registry,
		PrerollUC:      usecase.NewPrerollUseCase(client, cfg.Downloads.PrerollTimeout(), cfg.Downloads.UserAgent),
		MoveUC:         usecase.NewMoveFileUseCase(fs),
		ChooseFolderUC: usecase.NewChooseFolderUseCase(folderChooser),
		StatPathUC:     usecase.NewStatPathUseCase(fs),
	})
	if err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}
	timer.mark("handlers")
	timer.log(ctx)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		// The browser closing stdin ends the session for everything else.
		defer stop()
		return router.Serve(gctx)
	})

	if cfg.Metrics.Listen != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics.Register(reg)
		g.Go(func() error {
			log.Info().Str("addr", cfg.Metrics.Listen).Msg("serving metrics")
			if err := metrics.Serve(gctx, cfg.Metrics.Listen, reg); err != nil {
				// Metrics are optional; a taken port must not end the session.
				log.Warn().Err(err).Msg("metrics listener stopped")
			}
			return nil
		})
	}

	log.Info().Strs("types", router.Types()).Msg("native messaging host ready")
	serveErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := registry.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("transfers did not stop in time")
	}
	if err := out.Flush(); err != nil && serveErr == nil {
		serveErr = fmt.Errorf("flush stdout: %w", err)
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		log.Error().Err(serveErr).Msg("host stopped on error")
		return serveErr
	}
	log.Info().Dur("uptime", timer.uptime()).Msg("host stopped")
	return nil
}

// TransferOptions maps the downloads config section onto transfer.Options.
func TransferOptions(cfg config.DownloadsConfig) transfer.Options {
	return transfer.Options{
		ChunkSize:      cfg.ChunkSize,
		PollInterval:   cfg.PollInterval(),
		ReadTimeout:    cfg.ReadTimeout(),
		TempDir:        cfg.TempDir,
		UserAgent:      cfg.UserAgent,
		BytesPerSecond: cfg.MaxBytesPerSecond,
		MaxConcurrent:  cfg.MaxConcurrent,
	}
}

// closeJournal prunes old records when this session opened the journal, then closes it.
func closeJournal(ctx context.Context, db *sqlite.LazyDB) {
	if db == nil || !db.Opened() {
		return
	}
	log := logging.FromContext(ctx)

	pruneCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	cutoff := time.Now().Add(-journalRetention).UnixMilli()
	if n, err := sqlite.NewLazyTransferRepository(db).DeleteOlderThan(pruneCtx, cutoff); err != nil {
		log.Warn().Err(err).Msg("journal prune failed")
	} else if n > 0 {
		log.Debug().Int64("removed", n).Msg("journal pruned")
	}

	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close journal")
	}
}
