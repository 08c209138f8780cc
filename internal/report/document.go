// Package report renders report runs to the console, a JSON document and a
// PNG chart.
package report

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
)

// Document is the persisted JSON shape of a run.
type Document struct {
	Timestamp string           `json:"timestamp"`
	Location  weather.Location `json:"localisation"`
	Results   weather.Report   `json:"resultats"`
}

// NewDocument builds the document for run.
func NewDocument(run weather.Run) Document {
	return Document{
		Timestamp: run.GeneratedAt.Format(time.RFC3339),
		Location:  run.Location,
		Results:   run.Report,
	}
}

// Encode returns the indented JSON for d. Non-ASCII characters are kept as is.
func (d Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeDocument parses a document produced by Encode.
func DecodeDocument(data []byte) (Document, error) {
	var d Document
	err := json.Unmarshal(data, &d)
	return d, err
}
