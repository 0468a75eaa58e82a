package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equiptrack/client"
	"equiptrack/inventory/schema"
	"equiptrack/inventory/services"
	"equiptrack/inventory/store"

	"github.com/go-chi/chi/v5"
)

// mockCompleter returns a canned completion. The optional started/release
// channels let a test hold a generation request open to exercise the
// in-flight guard.
type mockCompleter struct {
	response string
	err      error

	started chan struct{}
	release chan struct{}
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.response, m.err
}

type testEnv struct {
	store     *store.EquipmentStore
	completer *mockCompleter
	client    client.EquipTrackClient
}

func setupTestEnv(t *testing.T, seed ...schema.Equipment) *testEnv {
	st := store.New(seed...)
	completer := &mockCompleter{}

	equipTrack := services.NewEquipTrack(st, completer)

	r := chi.NewRouter()
	r.Mount("/api/v1", equipTrack.Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testEnv{
		store:     st,
		completer: completer,
		client:    client.NewEquipTrackClient(server.URL),
	}
}

func datePtr(year int, month time.Month, day int) *schema.Date {
	d := schema.NewDate(year, month, day)
	return &d
}

func statusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return -1
}
