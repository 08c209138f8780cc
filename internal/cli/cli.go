// Package cli implements the weather-report command line.
package cli

import (
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-report/internal/config"
	"github.com/i474232898/weather-report/internal/log"
	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
	"github.com/i474232898/weather-report/internal/weather/providers"
)

// Options configure the CLI.
type Options struct {
	Output io.Writer
	// Source overrides the configured data source, mainly for tests.
	Source weather.DataSource
}

// CLI represents the command-line interface.
type CLI struct {
	out     io.Writer
	source  weather.DataSource
	cfgPath string
	debug   bool
	cfg     *config.AppConfig
	flags   reportFlags
	rootCmd *cobra.Command
}

// New creates a new CLI instance.
func New(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		out:    opts.Output,
		source: opts.Source,
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the command named by args.
func (cli *CLI) Execute(args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	reportCmd := cli.newReportCmd()

	cmd := &cobra.Command{
		Use:           "weather-report",
		Short:         "Daily temperature report for a fixed location",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cli.cfgPath)
			if err != nil {
				return err
			}
			cli.cfg = cfg
			return log.Init(cli.debug || cfg.Debug)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Sync()
		},
		RunE: reportCmd.RunE,
	}
	cmd.SetOut(cli.out)
	cli.bindReportFlags(cmd)

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "path to a config file (yaml, toml or json)")
	cmd.PersistentFlags().BoolVar(&cli.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(reportCmd)
	cmd.AddCommand(cli.newServeCmd())
	cmd.AddCommand(newExerciseCmd(cli.out))

	return cmd
}

// newService wires the archive client and the report history.
func (cli *CLI) newService() *weather.Service {
	source := cli.source
	if source == nil {
		// Shared HTTP client for outbound provider calls.
		client := &http.Client{Timeout: cli.cfg.HTTPTimeout}
		switch cli.cfg.DataSource {
		case "weatherapi":
			source = providers.NewWeatherAPIHistoryProvider(client, cli.cfg.WeatherAPIURL, cli.cfg.WeatherAPIKey, cli.cfg.FetchMaxRetries)
		default:
			source = providers.NewOpenMeteoArchiveProvider(client, cli.cfg.ArchiveURL, cli.cfg.FetchMaxRetries)
		}
	}
	memStore := store.NewMemoryStore(cli.cfg.StoreMaxHistory, cli.cfg.StoreMaxAge)
	return weather.NewService(source, memStore, cli.cfg.Location())
}
