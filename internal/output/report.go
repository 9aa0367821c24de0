package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/pension-projector/internal/domain"
)

// Render formats a report with the named formatter.
func Render(report *domain.ProjectionReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport renders a report to a timestamped file in dir and returns its path.
func GenerateReport(report *domain.ProjectionReport, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", unsupported(format)
	}
	return WriteFormatted(f, report, dir)
}

// enrich error with available formatters and aliases
func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
