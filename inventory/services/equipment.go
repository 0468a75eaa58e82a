package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"equiptrack/inventory/schema"
	"equiptrack/inventory/store"
	"equiptrack/utils"

	"github.com/go-chi/chi/v5"
)

type EquipmentService struct {
	store *store.EquipmentStore
}

func (s *EquipmentService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/create", s.Create)
	r.Get("/list", s.List)

	r.Route("/{equipment_id}", func(r chi.Router) {
		r.Get("/", s.Get)
		r.Post("/update", s.Update)
		r.Delete("/", s.Delete)

		r.Get("/associated/{tag_value}", s.Associated)

		r.Mount("/contracts", childRoutes(s.store, contractList()))
		r.Mount("/documents", childRoutes(s.store, documentList()))
		r.Mount("/software", childRoutes(s.store, softwareList()))
		r.Mount("/service-logs", childRoutes(s.store, serviceLogList()))
		r.Mount("/property-tags", childRoutes(s.store, propertyTagList()))
	})

	return r
}

func (s *EquipmentService) Create(w http.ResponseWriter, r *http.Request) {
	var params schema.Equipment
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if err := validateEquipmentInput(params); err != nil {
		http.Error(w, fmt.Sprintf("error creating equipment: %v", err), GetResponseCode(err))
		return
	}

	created := s.store.Add(params)
	slog.Info("created equipment", "equipment_id", created.Id, "name", created.Name)

	utils.WriteJsonResponse(w, created)
}

type listEquipmentResponse struct {
	Equipment []schema.Equipment `json:"equipment"`
}

func (s *EquipmentService) List(w http.ResponseWriter, r *http.Request) {
	items := s.store.List()
	items = store.Search(r.URL.Query().Get("q"), items)
	items = store.FilterByStatus(r.URL.Query().Get("status"), items)

	utils.WriteJsonResponse(w, listEquipmentResponse{Equipment: items})
}

func (s *EquipmentService) Get(w http.ResponseWriter, r *http.Request) {
	equipmentId, err := utils.URLParam(r, "equipment_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	eq, err := s.store.Get(equipmentId)
	if err != nil {
		http.Error(w, fmt.Sprintf("error getting equipment: %v", err), notFoundCode(err))
		return
	}

	utils.WriteJsonResponse(w, eq)
}

func (s *EquipmentService) Update(w http.ResponseWriter, r *http.Request) {
	equipmentId, err := utils.URLParam(r, "equipment_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var params schema.Equipment
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}
	params.Id = equipmentId

	if err := validateEquipmentInput(params); err != nil {
		http.Error(w, fmt.Sprintf("error updating equipment: %v", err), GetResponseCode(err))
		return
	}

	updated, err := s.store.Update(params)
	if err != nil {
		http.Error(w, fmt.Sprintf("error updating equipment: %v", err), notFoundCode(err))
		return
	}

	utils.WriteJsonResponse(w, updated)
}

func (s *EquipmentService) Delete(w http.ResponseWriter, r *http.Request) {
	equipmentId, err := utils.URLParam(r, "equipment_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(equipmentId); err != nil {
		http.Error(w, fmt.Sprintf("error deleting equipment: %v", err), notFoundCode(err))
		return
	}

	slog.Info("deleted equipment", "equipment_id", equipmentId)
	utils.WriteSuccess(w)
}

// Associated looks up another record sharing this property tag value. The
// record the tag was clicked from is always excluded, so a lone owner of a
// value gets a not-found notice rather than itself.
func (s *EquipmentService) Associated(w http.ResponseWriter, r *http.Request) {
	equipmentId, err := utils.URLParam(r, "equipment_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tagValue, err := utils.URLParam(r, "tag_value")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, ok := s.store.FindByPropertyTagValue(tagValue, equipmentId)
	if !ok {
		http.Error(w, fmt.Sprintf("no other equipment found with property tag value %q", tagValue), http.StatusNotFound)
		return
	}

	utils.WriteJsonResponse(w, match)
}

func notFoundCode(err error) int {
	if errors.Is(err, store.ErrEquipmentNotFound) || errors.Is(err, store.ErrChildNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
