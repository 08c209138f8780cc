package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/i474232898/weather-report/internal/log"
	"github.com/i474232898/weather-report/internal/weather"
)

// Publisher sends a run to every configured sink. Empty paths and a nil
// console disable the corresponding sink.
type Publisher struct {
	Console   *Console
	JSONPath  string
	ChartPath string
	Chart     ChartOptions
}

// Publish renders run to the console, then writes the JSON document and the
// chart. Both files are rendered in memory first so that a failure leaves no
// partial output behind.
func (p *Publisher) Publish(run weather.Run) error {
	if p.Console != nil {
		if err := p.Console.Render(run); err != nil {
			return fmt.Errorf("console report: %w", err)
		}
	}

	var doc, chart []byte
	if p.JSONPath != "" {
		b, err := NewDocument(run).Encode()
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		doc = b
	}
	if p.ChartPath != "" {
		b, err := RenderChart(run.Report, p.Chart)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		chart = b
	}

	var files []stagedFile
	if doc != nil {
		files = append(files, stagedFile{path: p.JSONPath, data: doc})
	}
	if chart != nil {
		files = append(files, stagedFile{path: p.ChartPath, data: chart})
	}
	if err := writeFilesAtomic(files); err != nil {
		return err
	}

	if doc != nil {
		log.Infow("report document saved", "path", p.JSONPath, "id", run.ID)
	}
	if chart != nil {
		log.Infow("report chart saved", "path", p.ChartPath, "id", run.ID)
	}
	return nil
}

type stagedFile struct {
	path string
	data []byte
	tmp  string
}

// writeFilesAtomic writes every file to a temp file next to its destination and
// renames them into place only once all writes succeeded. If a rename fails,
// the files already renamed are removed.
func writeFilesAtomic(files []stagedFile) error {
	defer func() {
		for _, f := range files {
			if f.tmp != "" {
				os.Remove(f.tmp)
			}
		}
	}()

	for i := range files {
		tmp, err := writeTemp(files[i].path, files[i].data)
		if err != nil {
			return err
		}
		files[i].tmp = tmp
	}

	for i := range files {
		if err := os.Rename(files[i].tmp, files[i].path); err != nil {
			for _, done := range files[:i] {
				os.Remove(done.path)
			}
			return fmt.Errorf("write %s: %w", files[i].path, err)
		}
		files[i].tmp = ""
	}
	return nil
}

func writeTemp(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return tmp.Name(), nil
}
