package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// Format constants for output formats.
const (
	FormatJSON   = "json"
	FormatSVG    = "svg"
	FormatPDF    = "pdf"
	FormatXLSX   = "xlsx"
	FormatLabels = "labels"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatSVG, FormatPDF, FormatXLSX, FormatLabels}

// DefaultColumns is the width of a Kallax 4x4 unit.
const DefaultColumns = 4

// Options tunes the drawn formats.
type Options struct {
	// Columns is the number of cubes per shelf row in svg and pdf output.
	Columns int `json:"columns,omitempty"`

	// Title heads the pdf and svg output.
	Title string `json:"title,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.Title == "" {
		o.Title = "Kallax shelf"
	}
	return o
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return kerrors.New(kerrors.ErrCodeInvalidFormat,
			"unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format in the list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for format, without the dot.
func Extension(format string) string {
	if format == FormatLabels {
		return "labels.pdf"
	}
	return format
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF, FormatLabels:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Render produces res in one format.
func Render(res *pack.Result, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "nothing to render")
	}
	if format != FormatJSON && res.Halted() {
		return nil, kerrors.New(kerrors.ErrCodeMissingVersions,
			"cannot render %s: %d games have no version selected", format, len(res.Games))
	}

	opts = opts.withDefaults()
	switch format {
	case FormatJSON:
		return JSON(res)
	case FormatSVG:
		return SVG(res, opts), nil
	case FormatPDF:
		return PDF(res, opts)
	case FormatXLSX:
		return XLSX(res)
	case FormatLabels:
		return Labels(res)
	}
	return nil, fmt.Errorf("unreachable format %q", format)
}

// RenderAll produces res in every listed format, keyed by format.
func RenderAll(res *pack.Result, formats []string, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		data, err := Render(res, f, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		out[f] = data
	}
	return out, nil
}
