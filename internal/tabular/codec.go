// Package tabular decodes and encodes row-oriented tables in the delimited
// and spreadsheet formats the service accepts. Both directions are pure
// transforms; callers own all storage.
package tabular

import (
	"errors"
	"fmt"
	"io"

	"github.com/annotatr/remarks-service/constants"
)

// Format identifies the wire encoding of a table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned when a format hint is neither
// delimited-text nor spreadsheet.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FormatForExt maps a file extension to its codec format.
func FormatForExt(ext string) (Format, error) {
	switch constants.NormalizeExt(ext) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Decode reads a byte stream into a table. The first row is taken as the
// header; decode fails if the stream cannot be parsed as the hinted format.
func Decode(r io.Reader, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(r)
	case FormatXLSX:
		return decodeXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode writes a table back out in the given format. Decoding the output
// reproduces the same rows and columns (logical round-trip only).
func Encode(t *Table, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return encodeCSV(t)
	case FormatXLSX:
		return encodeXLSX(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
