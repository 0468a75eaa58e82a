package tests

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"equiptrack/client"
	"equiptrack/inventory/schema"
	"equiptrack/inventory/services"
	"equiptrack/inventory/store"

	"github.com/go-chi/chi/v5"
)

func TestGenerationWithoutProvider(t *testing.T) {
	st := store.New(store.DemoEquipment()...)
	equipTrack := services.NewEquipTrack(st, nil)

	r := chi.NewRouter()
	r.Mount("/api/v1", equipTrack.Routes())
	server := httptest.NewServer(r)
	defer server.Close()

	c := client.NewEquipTrackClient(server.URL)

	items, err := c.ListEquipment("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) == 0 {
		t.Fatal("expected demo records")
	}

	_, err = c.SuggestMaintenanceSchedule(items[0].Id, "")
	if statusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with no provider configured, got %v", err)
	}
}

func TestMaintenanceScheduleSuggestion(t *testing.T) {
	env := setupTestEnv(t)
	env.completer.response = `{"suggestedMaintenanceSchedule": "Quarterly inspection", "reasoning": "High duty cycle"}`

	hours := 1250.5
	eq, err := env.client.CreateEquipment(schema.Equipment{
		Name: "Industrial 3D Printer", Model: "ProFab X1", OperationalHours: &hours,
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := env.client.SuggestMaintenanceSchedule(eq.Id, "dusty workshop")
	if err != nil {
		t.Fatal(err)
	}
	if res.SuggestedMaintenanceSchedule != "Quarterly inspection" || res.Reasoning != "High duty cycle" {
		t.Fatalf("unexpected suggestion %+v", res)
	}

	_, err = env.client.SuggestMaintenanceSchedule("no-such-id", "")
	if statusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown equipment, got %v", err)
	}
}

func TestMaintenanceScheduleProviderFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.completer.response = "this is not a json object"

	eq, err := env.client.CreateEquipment(schema.Equipment{Name: "Mill"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = env.client.SuggestMaintenanceSchedule(eq.Id, "")
	if statusCode(err) != http.StatusBadGateway {
		t.Fatalf("expected 502 for malformed completion, got %v", err)
	}
}

func TestServiceReportSummary(t *testing.T) {
	env := setupTestEnv(t)
	env.completer.response = `{"summary": "One certification, passed."}`

	eq, err := env.client.CreateEquipment(schema.Equipment{Name: "Spectrometer"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = env.client.SummarizeServiceReports(eq.Id)
	if statusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 when there are no service logs, got %v", err)
	}

	if _, err := env.client.AddServiceLog(eq.Id, schema.ServiceLog{
		Date:   schema.NewDate(2024, time.March, 1),
		Type:   schema.LogCertification,
		Status: schema.LogCompleted,
	}); err != nil {
		t.Fatal(err)
	}

	res, err := env.client.SummarizeServiceReports(eq.Id)
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary != "One certification, passed." {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
}

func TestGenerationRejectsConcurrentRequests(t *testing.T) {
	env := setupTestEnv(t)
	env.completer.response = `{"suggestedMaintenanceSchedule": "x", "reasoning": "y"}`
	env.completer.started = make(chan struct{})
	env.completer.release = make(chan struct{})

	eq, err := env.client.CreateEquipment(schema.Equipment{Name: "Mill"})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = env.client.SuggestMaintenanceSchedule(eq.Id, "")
	}()

	// wait until the first request is inside the provider call
	<-env.completer.started

	_, err = env.client.SuggestMaintenanceSchedule(eq.Id, "")
	if statusCode(err) != http.StatusConflict {
		t.Fatalf("expected 409 while a generation is in flight, got %v", err)
	}

	_, err = env.client.SummarizeServiceReports(eq.Id)
	if statusCode(err) != http.StatusConflict {
		t.Fatalf("expected the guard to span both operations, got %v", err)
	}

	close(env.completer.release)
	wg.Wait()
	if firstErr != nil {
		t.Fatal(firstErr)
	}

	// the slot frees once the outstanding request resolves
	env.completer.started = nil
	env.completer.release = nil
	if _, err := env.client.SuggestMaintenanceSchedule(eq.Id, ""); err != nil {
		t.Fatal(err)
	}
}
