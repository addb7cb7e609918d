package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/organize-desk/internal/domain"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// IsTerminal reports whether w is a TTY.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer styles text only when writing to a terminal.
type Printer struct {
	Out   io.Writer
	Color bool
}

// NewPrinter returns a Printer for w with color detected from the writer.
func NewPrinter(w io.Writer) Printer {
	return Printer{Out: w, Color: IsTerminal(w)}
}

func (p Printer) render(style lipgloss.Style, text string) string {
	if !p.Color {
		return text
	}
	return style.Render(text)
}

// Header renders a section title.
func (p Printer) Header(text string) string { return p.render(HeaderStyle, text) }

// Success renders a positive outcome.
func (p Printer) Success(text string) string { return p.render(SuccessStyle, text) }

// Error renders a failure.
func (p Printer) Error(text string) string { return p.render(ErrorStyle, text) }

// Warn renders a warning.
func (p Printer) Warn(text string) string { return p.render(WarnStyle, text) }

// Dim renders secondary text.
func (p Printer) Dim(text string) string { return p.render(DimStyle, text) }

// Println writes a line to Out.
func (p Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.Out, a...)
}

// Printf writes formatted text to Out.
func (p Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.Out, format, a...)
}

// Status renders a health status tag such as [OK].
func (p Printer) Status(status domain.HealthStatus) string {
	tag := "[" + strings.ToUpper(string(status)) + "]"
	switch status {
	case domain.HealthOK:
		return p.Success(tag)
	case domain.HealthWarn:
		return p.Warn(tag)
	default:
		return p.Error(tag)
	}
}

// Severity renders a diagnostic severity.
func (p Printer) Severity(sev domain.Severity) string {
	if sev == domain.SeverityError {
		return p.Error(string(sev))
	}
	return p.Warn(string(sev))
}

// FormatTable formats data as a simple aligned table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
