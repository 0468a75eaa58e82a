package services

import (
	"fmt"
	"log/slog"
	"net/http"

	"equiptrack/inventory/schema"
	"equiptrack/inventory/store"
	"equiptrack/inventory/transfer"
	"equiptrack/utils"

	"github.com/go-chi/chi/v5"
)

const maxImportSize = 32 << 20

type TransferService struct {
	store *store.EquipmentStore
}

func (s *TransferService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/import", s.Import)
	r.Get("/export", s.Export)

	return r
}

type importResponse struct {
	Imported int               `json:"imported"`
	Selected *schema.Equipment `json:"selected,omitempty"`
}

// Import replaces the whole collection with the uploaded batch. Validation is
// all-or-nothing: a single malformed record leaves the store untouched. The
// first imported record becomes the selected one.
func (s *TransferService) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, fmt.Sprintf("error parsing upload: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing 'file' field in upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := transfer.Import(header.Filename, file)
	if err != nil {
		slog.Error("import rejected", "filename", header.Filename, "error", err)
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusBadRequest)
		return
	}

	s.store.ReplaceAll(records)
	slog.Info("imported equipment collection", "filename", header.Filename, "records", len(records))

	resp := importResponse{Imported: len(records)}
	if items := s.store.List(); len(items) > 0 {
		resp.Selected = &items[0]
	}
	utils.WriteJsonResponse(w, resp)
}

// Export streams the collection as a spreadsheet with the fixed filename.
func (s *TransferService) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", transfer.ExportFilename))

	if err := transfer.ExportExcel(w, s.store.List()); err != nil {
		slog.Error("error exporting equipment collection", "error", err)
		http.Error(w, fmt.Sprintf("export failed: %v", err), http.StatusInternalServerError)
	}
}
