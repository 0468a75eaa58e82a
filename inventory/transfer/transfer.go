// Package transfer converts between the equipment domain model and the two
// interchange encodings: a JSON array of records and a flat spreadsheet with
// one row per record. Imports are validated as a unit: any malformed record
// rejects the whole batch.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"equiptrack/inventory/schema"

	"github.com/go-playground/validator/v10"
)

// ExportFilename is the fixed name for exported spreadsheets.
const ExportFilename = "equipment-export.xlsx"

type Format string

const (
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

var ErrUnsupportedFormat = errors.New("unsupported file type: expected .json, .xlsx, or .xls")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DetectFormat infers the payload format from the file extension. This is the
// only format signal; there is no schema version field.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx", ".xls":
		return FormatExcel, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Import decodes and validates a full equipment batch from the reader,
// choosing the codec by filename extension.
func Import(filename string, r io.Reader) ([]schema.Equipment, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return ImportJSON(r)
	default:
		return ImportExcel(r)
	}
}

// ImportJSON decodes a JSON array of equipment records. The decode fails
// closed: unknown fields are rejected rather than dropped.
func ImportJSON(r io.Reader) ([]schema.Equipment, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []schema.Equipment
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("error parsing json import: %w", err)
	}

	if err := validateBatch(records); err != nil {
		return nil, err
	}
	return records, nil
}

// validateBatch applies the record schema to every imported record. A single
// failure rejects the batch so the caller's store is left untouched.
func validateBatch(records []schema.Equipment) error {
	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return fmt.Errorf("invalid record at position %d (id=%q name=%q): %w", i, record.Id, record.Name, err)
		}
	}
	return nil
}
