package tests

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"equiptrack/inventory/schema"
)

func TestImportJsonReplacesCollection(t *testing.T) {
	env := setupTestEnv(t)

	if _, err := env.client.CreateEquipment(schema.Equipment{Name: "pre-existing"}); err != nil {
		t.Fatal(err)
	}

	payload := `[
		{"id": "eq-1", "name": "Spectrometer",
		 "serviceLogs": [{"id": "l1", "date": "2024-03-01", "type": "Certification", "status": "Completed"}]},
		{"id": "eq-2", "name": "CNC Mill", "status": "In-Repair"}
	]`

	res, err := env.client.ImportFile("batch.json", strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported != 2 {
		t.Fatalf("expected 2 imported, got %d", res.Imported)
	}
	if res.Selected == nil || res.Selected.Id != "eq-1" {
		t.Fatal("expected the first imported record selected")
	}

	items, err := env.client.ListEquipment("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected import to replace the collection, got %d records", len(items))
	}

	imported, err := env.client.GetEquipment("eq-1")
	if err != nil {
		t.Fatal(err)
	}
	if imported.LastCertificationDate == nil || imported.LastCertificationDate.String() != "2024-03-01" {
		t.Fatal("expected derived certification date recomputed on import")
	}
}

func TestImportInvalidBatchLeavesStoreUntouched(t *testing.T) {
	env := setupTestEnv(t)

	existing, err := env.client.CreateEquipment(schema.Equipment{Name: "keeper"})
	if err != nil {
		t.Fatal(err)
	}

	payload := `[
		{"id": "eq-1", "name": "Spectrometer"},
		{"id": "eq-2", "name": ""}
	]`

	_, err = env.client.ImportFile("batch.json", strings.NewReader(payload))
	if statusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid batch, got %v", err)
	}

	items, err := env.client.ListEquipment("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Id != existing.Id {
		t.Fatal("a rejected import must not modify the collection")
	}
}

func TestImportUnsupportedExtension(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.client.ImportFile("batch.csv", strings.NewReader("id,name\n1,x"))
	if statusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported extension, got %v", err)
	}
}

func TestExportReimportRoundTrip(t *testing.T) {
	env := setupTestEnv(t)

	eq, err := env.client.CreateEquipment(schema.Equipment{
		Name:         "Industrial 3D Printer",
		Model:        "ProFab X1",
		SerialNumber: "PF-001",
		Status:       schema.StatusActive,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.client.AddServiceLog(eq.Id, schema.ServiceLog{
		Date:   schema.NewDate(2024, time.March, 1),
		Type:   schema.LogCertification,
		Status: schema.LogCompleted,
	}); err != nil {
		t.Fatal(err)
	}

	var workbook bytes.Buffer
	if err := env.client.Export(&workbook); err != nil {
		t.Fatal(err)
	}

	res, err := env.client.ImportFile("equipment-export.xlsx", &workbook)
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported != 1 {
		t.Fatalf("expected 1 record after round trip, got %d", res.Imported)
	}

	got, err := env.client.GetEquipment(eq.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Industrial 3D Printer" || got.Model != "ProFab X1" {
		t.Fatal("round trip lost record fields")
	}
	if len(got.ServiceLogs) != 1 || got.ServiceLogs[0].Type != schema.LogCertification {
		t.Fatal("round trip lost service logs")
	}
	if got.LastCertificationDate == nil || got.LastCertificationDate.String() != "2024-03-01" {
		t.Fatal("round trip lost derived certification date")
	}
}
