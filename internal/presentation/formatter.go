package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatUnits writes units as indented JSON
func (f *Formatter) FormatUnits(units []UnitDTO) error {
	return f.encode(units)
}

// FormatRuns writes runs as indented JSON
func (f *Formatter) FormatRuns(runs []RunDTO) error {
	return f.encode(runs)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
