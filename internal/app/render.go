package app

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/ui/style"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Output formats of Show.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

type yamlDocument struct {
	Project  string           `yaml:"project"`
	Location string           `yaml:"location"`
	Config   domain.ConfigMap `yaml:"config"`
}

func unknownFormat(format string) error {
	return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "cannot render configuration"), "format", format)
}

func renderYAML(out io.Writer, frame domain.Frame) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{
		Project:  frame.ID.String(),
		Location: frame.Location,
		Config:   frame.Config,
	}); err != nil {
		return zerr.Wrap(err, "failed to encode configuration")
	}
	return enc.Close()
}

func renderText(out io.Writer, frame domain.Frame, env string) error {
	r := lipgloss.NewRenderer(out)
	dim := r.NewStyle().Foreground(style.Slate)

	var b strings.Builder
	if frame.ID.IsZero() {
		b.WriteString(r.NewStyle().Foreground(style.Iris).Render(style.Dot))
		b.WriteString(" no project, using defaults\n")
	} else {
		fmt.Fprintf(&b, "%s %s %s\n",
			r.NewStyle().Foreground(style.Green).Render(style.Check),
			r.NewStyle().Bold(true).Render(frame.ID.String()),
			dim.Render(frame.Location),
		)
	}
	fmt.Fprintf(&b, "  %s %s\n\n", dim.Render("env"), env)

	keys := frame.Config.Keys()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}
	for _, key := range keys {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, key, formatValue(frame.Config[key]))
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func renderRows(out io.Writer, rows [][2]string) error {
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%-*s  %s\n", width, row[0], row[1])
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// formatValue renders a configuration value on one line.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		return formatMap(v)
	case domain.ConfigMap:
		return formatMap(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + ": " + formatValue(m[key])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
