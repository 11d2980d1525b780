package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "nbacal/internal/log"
	calsync "nbacal/internal/sync"
	"nbacal/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve calendar feeds over HTTP and refresh them on a schedule",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	syncer := newSyncer(cfg)
	server := web.NewServer(cfg)

	runOnce := func() {
		reports, err := syncer.Run(ctx, selection(cfg), cfg.Season)
		if err != nil {
			appLog.Error("sync run failed", err)
			return
		}
		server.SetReports(reports)
		if calsync.Failed(reports) {
			appLog.Warn("sync run completed with failures", "teams", len(reports))
		}
	}
	runOnce()

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.RefreshCron, runOnce); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshCron, err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	appLog.Info("serving calendar feeds",
		"listen", "http://"+cfg.Listen,
		"calendars_dir", cfg.CalendarsDir,
		"refresh", cfg.RefreshCron,
	)

	select {
	case <-ctx.Done():
		appLog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
