package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-report/internal/api/http"
	"github.com/i474232898/weather-report/internal/log"
	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/scheduler"
)

func (cli *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the report over HTTP and refresh it periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.runServe(cmd.Context())
		},
	}
}

func (cli *CLI) runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := cli.cfg
	service := cli.newService()

	// Scheduled runs publish files without console output.
	pub := &report.Publisher{
		JSONPath:  cfg.OutputJSON,
		ChartPath: cfg.OutputChart,
		Chart:     report.DefaultChartOptions(cfg.City),
	}

	sched := scheduler.New(cfg.RefreshInterval, service, pub, cfg.ReportRange)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, cfg.ReportRange)

	listenErr := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal or listener failure
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("http server on port %s: %w", cfg.Port, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}
	return nil
}
