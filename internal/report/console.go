package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/i474232898/weather-report/internal/weather"
)

const consoleTemplate = `
{{rule}}
📍 ANALYSE MÉTÉO {{upper .Location.City}} - {{.Report.Period.FirstDate}} au {{.Report.Period.LastDate}}
{{rule}}

📊 Résumé sur {{.Report.Period.DayCount}} jours:
   • Température moyenne: {{temp .Report.Period.Mean}}
   • Température min: {{temp .Report.Period.Min}}
   • Température max: {{temp .Report.Period.Max}}

📅 Détails par jour:
{{range .Report.Days}}
   {{.Date}}:
   • Moyenne: {{temp .Mean}}
   • Min: {{temp .Min}} / Max: {{temp .Max}}
{{end}}`

// Console writes a human-readable report.
type Console struct {
	writer io.Writer
	tmpl   *template.Template
}

// NewConsole creates a Console writing to w, formatting numbers for lang.
func NewConsole(w io.Writer, lang language.Tag) (*Console, error) {
	printer := message.NewPrinter(lang)
	upper := cases.Upper(lang)

	funcMap := template.FuncMap{
		"rule":  func() string { return strings.Repeat("=", 60) },
		"upper": upper.String,
		"temp": func(v float64) string {
			return printer.Sprintf("%.1f°C", v)
		},
	}

	tmpl, err := template.New("console").Funcs(funcMap).Parse(consoleTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Console{writer: w, tmpl: tmpl}, nil
}

// Render writes run to the console writer.
func (c *Console) Render(run weather.Run) error {
	return c.tmpl.Execute(c.writer, run)
}
