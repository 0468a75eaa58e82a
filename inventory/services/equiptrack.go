package services

import (
	"log"
	"net/http"
	"os"

	"equiptrack/inventory/store"
	"equiptrack/llmgen"
	"equiptrack/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// EquipTrack bundles the services over one equipment collection. The store is
// owned here and injected into each service; there is no ambient global.
type EquipTrack struct {
	equipment  EquipmentService
	transfer   TransferService
	generation *GenerationService

	store *store.EquipmentStore
}

func NewEquipTrack(st *store.EquipmentStore, completer llmgen.Completer) EquipTrack {
	return EquipTrack{
		equipment:  EquipmentService{store: st},
		transfer:   TransferService{store: st},
		generation: &GenerationService{store: st, completer: completer},
		store:      st,
	}
}

func (e *EquipTrack) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger: log.New(os.Stderr, "", log.LstdFlags), NoColor: false,
	}))

	r.Mount("/equipment", e.equipment.Routes())
	r.Mount("/data", e.transfer.Routes())
	r.Mount("/generate", e.generation.Routes())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteSuccess(w)
	})

	return r
}
