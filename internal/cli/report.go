package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/weather"
)

type reportFlags struct {
	start     string
	end       string
	jsonPath  string
	chartPath string
	noChart   bool
}

func (cli *CLI) bindReportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cli.flags.start, "start", "", "first day of the report (YYYY-MM-DD)")
	f.StringVar(&cli.flags.end, "end", "", "last day of the report (YYYY-MM-DD)")
	f.StringVar(&cli.flags.jsonPath, "json", "", "output JSON document path (overrides OUTPUT_JSON)")
	f.StringVar(&cli.flags.chartPath, "chart", "", "output PNG chart path (overrides OUTPUT_CHART)")
	f.BoolVar(&cli.flags.noChart, "no-chart", false, "skip the chart")
}

func (cli *CLI) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch, aggregate and publish the temperature report once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.runReport(cmd)
		},
	}
	cli.bindReportFlags(cmd)
	return cmd
}

func (cli *CLI) reportRange() (weather.DateRange, error) {
	if cli.flags.start == "" && cli.flags.end == "" {
		return cli.cfg.ReportRange(time.Now())
	}
	if cli.flags.start == "" || cli.flags.end == "" {
		return weather.DateRange{}, fmt.Errorf("--start and --end must be given together")
	}
	return weather.ParseDateRange(cli.flags.start, cli.flags.end)
}

func (cli *CLI) runReport(cmd *cobra.Command) error {
	rng, err := cli.reportRange()
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, "🌤️  Récupération des données météo...")
	run, err := cli.newService().Generate(cmd.Context(), rng)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, "📊 Analyse des données...")
	console, err := report.NewConsole(cli.out, language.French)
	if err != nil {
		return err
	}

	pub := &report.Publisher{
		Console:   console,
		JSONPath:  firstNonEmpty(cli.flags.jsonPath, cli.cfg.OutputJSON),
		ChartPath: firstNonEmpty(cli.flags.chartPath, cli.cfg.OutputChart),
		Chart:     report.DefaultChartOptions(run.Location.City),
	}
	if cli.flags.noChart {
		pub.ChartPath = ""
	}
	if err := pub.Publish(run); err != nil {
		return err
	}

	if pub.JSONPath != "" {
		fmt.Fprintf(cli.out, "\n💾 Résultats sauvegardés dans %s\n", pub.JSONPath)
	}
	if pub.ChartPath != "" {
		fmt.Fprintf(cli.out, "📈 Graphique sauvegardé dans %s\n", pub.ChartPath)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
