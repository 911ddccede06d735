package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/terraincognita07/doze/internal/api"
	"github.com/terraincognita07/doze/internal/cli"
	"github.com/terraincognita07/doze/internal/config"
	"github.com/terraincognita07/doze/internal/ids"
	"github.com/terraincognita07/doze/internal/logger"
	"github.com/terraincognita07/doze/internal/services"
	"github.com/terraincognita07/doze/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, cli.ErrClearAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "doze: %v\n", err)
		os.Exit(1)
	}
}

type runtimeDeps struct {
	cfg        config.Config
	log        *zap.Logger
	location   *time.Location
	entries    *services.EntryRepository
	closeStore func() error
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	command, rest := splitCommand(args)
	switch command {
	case "serve", "clear-data", "export":
	default:
		return fmt.Errorf("unknown command %q (expected serve, clear-data or export)", command)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	deps, err := setup(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.closeStore(); err != nil {
			deps.log.Warn("close storage", zap.Error(err))
		}
		logger.Sync(deps.log)
	}()

	switch command {
	case "clear-data":
		return runClearData(deps, rest, stdin, stdout)
	case "export":
		return runExport(deps, rest, stdout)
	default:
		return serve(deps)
	}
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "serve", nil
	}
	return args[0], args[1:]
}

func setup(ctx context.Context, cfg config.Config) (*runtimeDeps, error) {
	log := logger.New(logger.Options{Level: cfg.LoggerLevel, Format: cfg.LoggerFormat})

	location, ok := cfg.Location()
	if !ok {
		log.Warn("invalid TZ, falling back to UTC", zap.String("tz", cfg.Timezone))
	}
	time.Local = location

	generator, err := ids.NewGenerator(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("id generator init failed: %w", err)
	}

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &runtimeDeps{
		cfg:        cfg,
		log:        log,
		location:   location,
		entries:    services.NewEntryRepository(store, generator, location),
		closeStore: closeStore,
	}, nil
}

func serve(deps *runtimeDeps) error {
	handler, err := api.NewHandler(api.Dependencies{
		Entries:     deps.entries,
		Location:    deps.location,
		Logger:      deps.log,
		WindowSize:  deps.cfg.DashboardWindowSize,
		SummaryDays: deps.cfg.SummaryDays,
		StackTrace:  deps.cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			deps.log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	deps.log.Info("doze listening",
		zap.String("addr", "0.0.0.0:"+deps.cfg.Port),
		zap.String("storage", deps.cfg.StorageBackend),
		zap.String("tz", deps.location.String()),
	)
	if err := app.Listen(":" + deps.cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func runClearData(deps *runtimeDeps, args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("clear-data", flag.ContinueOnError)
	flags.SetOutput(stdout)
	yes := flags.Bool("yes", false, "skip the confirmation prompt")
	if err := flags.Parse(args); err != nil {
		return err
	}

	return cli.RunClearDataCommand(context.Background(), deps.entries, *yes, stdin, stdout)
}

func runExport(deps *runtimeDeps, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	flags.SetOutput(stdout)
	format := flags.String("format", cli.ExportFormatCSV, "csv or json")
	from := flags.String("from", "", "first date to include (YYYY-MM-DD)")
	to := flags.String("to", "", "last date to include (YYYY-MM-DD)")
	output := flags.String("output", "", "write to this file instead of stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	writer := stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create %s: %w", *output, err)
		}
		defer file.Close()
		writer = file
	}

	exports := services.NewExportService(deps.entries, deps.location)
	return cli.RunExportCommand(context.Background(), exports, cli.ExportOptions{
		Format:   *format,
		From:     *from,
		To:       *to,
		Location: deps.location,
	}, writer)
}
