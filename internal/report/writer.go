package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"osu-score/internal/config"

	"gopkg.in/yaml.v3"
)

type Writer struct {
	format string
	path   string
	stdout io.Writer
}

func NewWriter(cfg *config.Config) *Writer {
	return &Writer{format: cfg.OutputFormat, path: cfg.OutputPath, stdout: os.Stdout}
}

// Write encodes r to the configured output file, or stdout when none is set.
func (w *Writer) Write(r *Report) error {
	if w.path == "" {
		return Encode(w.stdout, w.format, r)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}
	if err := Encode(f, w.format, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func Encode(out io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	e := json.NewEncoder(out)
	e.SetIndent("", "  ")
	if err := e.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
