package export

import (
	"fmt"
	"strings"
	"time"
)

// Format names an export file type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// Renderer turns a dataset into file bytes.
type Renderer interface {
	Format() Format
	Render(data Dataset) ([]byte, error)
}

// Filename builds "<subject>_<timestamp>_<tag>.<format>" with a filesystem
// safe subject. The tag is omitted when empty.
func Filename(subject string, format Format, at time.Time, tag string) string {
	stamp := at.UTC().Format("20060102_150405")
	if tag != "" {
		stamp += "_" + sanitize(tag)
	}
	return fmt.Sprintf("%s_%s.%s", sanitize(subject), stamp, format)
}

func sanitize(raw string) string {
	if raw == "" {
		return "export"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := strings.ToLower(replacer.Replace(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
