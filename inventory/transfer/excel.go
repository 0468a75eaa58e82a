package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"equiptrack/inventory/schema"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Equipment"

type columnKind int

const (
	kindString columnKind = iota
	kindBool
	kindNumber
	kindDate
	kindNested
)

// exportColumns is the canonical column order. Header names are the JSON
// field names so a round trip through a spreadsheet preserves the record
// shape.
var exportColumns = []string{
	"id", "name", "model", "serialNumber", "manufacturer", "room", "department",
	"poc", "notes", "imageUrl", "purchaseDate", "warrantyEndDate", "installedDate",
	"status", "node", "probe", "ups", "onNetwork", "computerAssociated",
	"transferred", "purchasingAmbisPoNumber", "hasServiceContract",
	"operationalHours", "failureRate", "lastCertificationDate",
	"contracts", "documents", "software", "serviceLogs", "propertyTags",
}

var columnKinds = map[string]columnKind{
	"id": kindString, "name": kindString, "model": kindString,
	"serialNumber": kindString, "manufacturer": kindString, "room": kindString,
	"department": kindString, "poc": kindString, "notes": kindString,
	"imageUrl": kindString, "status": kindString, "node": kindString,
	"probe": kindString, "ups": kindString, "computerAssociated": kindString,
	"purchasingAmbisPoNumber": kindString,
	"onNetwork":               kindBool, "transferred": kindBool, "hasServiceContract": kindBool,
	"operationalHours": kindNumber, "failureRate": kindNumber,
	"purchaseDate": kindDate, "warrantyEndDate": kindDate, "installedDate": kindDate,
	"lastCertificationDate": kindDate,
	"contracts":             kindNested, "documents": kindNested, "software": kindNested,
	"serviceLogs": kindNested, "propertyTags": kindNested,
}

// ImportExcel decodes the first sheet of a workbook. The header row must
// contain only recognized column names; rows are normalized (boolean
// coercion, nested collections deserialized from JSON text) and then pass
// through the same batch validation as a JSON import.
func ImportExcel(r io.Reader) ([]schema.Equipment, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	headers := rows[0]
	for _, header := range headers {
		if _, ok := columnKinds[header]; !ok {
			return nil, fmt.Errorf("unrecognized column %q", header)
		}
	}

	records := make([]schema.Equipment, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := decodeRow(headers, row)
		if err != nil {
			return nil, fmt.Errorf("error decoding row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	if err := validateBatch(records); err != nil {
		return nil, err
	}
	return records, nil
}

// decodeRow normalizes one spreadsheet row into a JSON object and decodes it
// through the record schema. Cells absent from the row (trailing blanks) are
// treated as empty.
func decodeRow(headers, row []string) (schema.Equipment, error) {
	fields := make(map[string]json.RawMessage, len(headers))

	for i, header := range headers {
		var cell string
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}

		value, err := cellToJson(columnKinds[header], cell)
		if err != nil {
			return schema.Equipment{}, fmt.Errorf("column %q: %w", header, err)
		}
		fields[header] = value
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return schema.Equipment{}, err
	}

	var record schema.Equipment
	if err := json.Unmarshal(encoded, &record); err != nil {
		return schema.Equipment{}, err
	}
	return record, nil
}

func cellToJson(kind columnKind, cell string) (json.RawMessage, error) {
	switch kind {
	case kindBool:
		return json.Marshal(coerceBool(cell))
	case kindNumber:
		if cell == "" {
			return json.RawMessage("null"), nil
		}
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", cell)
		}
		return json.Marshal(n)
	case kindDate:
		if cell == "" {
			return json.RawMessage("null"), nil
		}
		if _, err := schema.ParseDate(cell); err != nil {
			return nil, err
		}
		return json.Marshal(cell)
	case kindNested:
		if cell == "" {
			return json.RawMessage("[]"), nil
		}
		if !json.Valid([]byte(cell)) {
			return nil, fmt.Errorf("nested collection cell is not valid JSON")
		}
		return json.RawMessage(cell), nil
	default:
		return json.Marshal(cell)
	}
}

func coerceBool(cell string) bool {
	switch strings.ToLower(cell) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ExportExcel writes the collection as a workbook: one row per equipment
// record, nested collections serialized to JSON text cells.
func ExportExcel(w io.Writer, records []schema.Equipment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	for col, header := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, record := range records {
		values, err := recordCells(record)
		if err != nil {
			return fmt.Errorf("error flattening record %q: %w", record.Id, err)
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func recordCells(eq schema.Equipment) ([]interface{}, error) {
	nested := func(v interface{}) (string, error) {
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}

	contracts, err := nested(eq.Contracts)
	if err != nil {
		return nil, err
	}
	documents, err := nested(eq.Documents)
	if err != nil {
		return nil, err
	}
	software, err := nested(eq.Software)
	if err != nil {
		return nil, err
	}
	logs, err := nested(eq.ServiceLogs)
	if err != nil {
		return nil, err
	}
	tags, err := nested(eq.PropertyTags)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		eq.Id, eq.Name, eq.Model, eq.SerialNumber, eq.Manufacturer, eq.Room,
		eq.Department, eq.Poc, eq.Notes, eq.ImageUrl,
		eq.PurchaseDate.String(), eq.WarrantyEndDate.String(), eq.InstalledDate.String(),
		eq.Status, eq.Node, eq.Probe, eq.Ups,
		strconv.FormatBool(eq.OnNetwork), eq.ComputerAssociated,
		strconv.FormatBool(eq.Transferred), eq.PurchasingAmbisPoNumber,
		strconv.FormatBool(eq.HasServiceContract),
		floatCell(eq.OperationalHours), floatCell(eq.FailureRate),
		dateCell(eq.LastCertificationDate),
		contracts, documents, software, logs, tags,
	}, nil
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func dateCell(d *schema.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
