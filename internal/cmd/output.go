package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats for listing commands.
const (
	formatAuto  = "auto"
	formatTable = "table"
	formatYAML  = "yaml"
)

// outputFormat is a --format flag value. Unknown names are rejected while
// the flags are parsed.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch s {
	case formatAuto, formatTable, formatYAML:
		*f = outputFormat(s)
		return nil
	}
	return errors.NewValidationError("format must be auto, table or yaml").
		WithField("format").
		WithValue(s)
}

func (f *outputFormat) Type() string { return "format" }

// resolveFormat picks the output format. "auto" renders a table on a
// terminal and YAML when output is piped.
func resolveFormat(format outputFormat, out io.Writer) string {
	switch string(format) {
	case formatTable, formatYAML:
		return string(format)
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formatTable
	}
	return formatYAML
}

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(out, t.Render())
	return err
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
