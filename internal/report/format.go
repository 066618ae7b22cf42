package report

import (
	"fmt"
	"strings"

	"github.com/tair/bekawave/internal/domain"
)

// Format is an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported encoding
var Formats = []Format{FormatCSV, FormatXLSX}

// ParseFormat accepts "csv" or "xlsx"; anything else is ErrUnsupportedFormat.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%q: %w", s, domain.ErrUnsupportedFormat)
}

// ContentType is the media type served for f
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// File is an encoded report ready to download
type File struct {
	Name        string
	ContentType string
	Body        []byte
}
