package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/server"
	"github.com/theirongolddev/gigdash/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	flagServeAddr         string
	flagServeInterval     time.Duration
	flagServeEventsBuffer int
	flagServeLogFile      string
	flagServeNoViews      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dashboard views over HTTP with SSE updates and metrics",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().DurationVar(&flagServeInterval, "interval", 10*time.Second, "Snapshot reload check interval")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	serveCmd.Flags().StringVar(&flagServeLogFile, "log-file", "", "Rotated log file (default from config, else stderr)")
	serveCmd.Flags().BoolVar(&flagServeNoViews, "no-views", false, "Disable saved views")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	logFile := cfg.Server.LogFile
	if flagServeLogFile != "" {
		logFile = flagServeLogFile
	}

	out, err := serverLogOutput(logFile)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	logger := log.New(out, "", log.LstdFlags)

	var views *store.Store
	if !flagServeNoViews {
		views, err = store.Open(config.ViewsDBPath())
		if err != nil {
			return err
		}
		defer func() { _ = views.Close() }()
	}

	nowFn := time.Now
	if flagNow != "" {
		fixed, err := resolveNow()
		if err != nil {
			return err
		}
		nowFn = func() time.Time { return fixed }
	}

	svc, err := server.New(server.Config{
		SnapshotPath: snapshotPath(cfg),
		Addr:         addr,
		Interval:     flagServeInterval,
		EventsBuffer: flagServeEventsBuffer,
		DueSoonDays:  cfg.General.DueSoonDays,
		TopClients:   cfg.General.TopClients,
		DefaultSorts: defaultSorts(cfg),
		Views:        views,
		Logger:       logger,
		Now:          nowFn,
	})
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  gigdash listening on http://%s\n", addr)
		fmt.Printf("  Dashboard: http://%s/v1/dashboard\n", addr)
		fmt.Printf("  Metrics:   http://%s/metrics\n", addr)
		if logFile != "" {
			fmt.Printf("  Log: %s\n", logFile)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// serverLogOutput returns stderr, or a size-rotated file when path is set.
func serverLogOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stderr}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}, nil
}

func defaultSorts(cfg config.Config) map[model.Kind]query.SortKey {
	sorts := make(map[model.Kind]query.SortKey, len(model.AllKinds))
	for _, kind := range model.AllKinds {
		if key := cfg.Views.DefaultSort(kind); key != "" {
			sorts[kind] = query.SortKey(key)
		}
	}
	return sorts
}
