package services

import (
	"fmt"
	"net/http"
	"slices"

	"equiptrack/inventory/schema"
	"equiptrack/inventory/store"
	"equiptrack/utils"

	"github.com/go-chi/chi/v5"
)

// childList describes one of the five owned child collections so a single set
// of handlers can serve them all. Every mutation re-saves the whole parent
// through the store, which recomputes derived state.
type childList[T any] struct {
	kind  store.ChildKind
	items func(*schema.Equipment) *[]T
	id    func(T) string
	setId func(*T, string)
	check func(T) error

	// view optionally transforms the list for GET responses; nil serves the
	// stored list as is.
	view func([]T) interface{}
}

// contractView is a contract annotated with its derived status, relative to
// the day the list was requested.
type contractView struct {
	schema.ServiceContract
	Status string `json:"status"`
}

func contractList() childList[schema.ServiceContract] {
	return childList[schema.ServiceContract]{
		kind:  store.ChildContract,
		items: func(eq *schema.Equipment) *[]schema.ServiceContract { return &eq.Contracts },
		id:    func(c schema.ServiceContract) string { return c.Id },
		setId: func(c *schema.ServiceContract, id string) { c.Id = id },
		// every contract field is optional: absence means unknown, not zero
		check: func(c schema.ServiceContract) error { return nil },
		view: func(contracts []schema.ServiceContract) interface{} {
			today := schema.Today()
			sorted := schema.SortContracts(contracts)
			out := make([]contractView, 0, len(sorted))
			for _, c := range sorted {
				out = append(out, contractView{ServiceContract: c, Status: schema.ContractStatus(c, today)})
			}
			return out
		},
	}
}

func documentList() childList[schema.Document] {
	return childList[schema.Document]{
		kind:  store.ChildDocument,
		items: func(eq *schema.Equipment) *[]schema.Document { return &eq.Documents },
		id:    func(d schema.Document) string { return d.Id },
		setId: func(d *schema.Document, id string) { d.Id = id },
		check: func(d schema.Document) error {
			if d.Name == "" {
				return fmt.Errorf("document name must be specified")
			}
			if !schema.ValidDocumentType(d.Type) {
				return fmt.Errorf("invalid document type %q", d.Type)
			}
			return nil
		},
	}
}

func softwareList() childList[schema.Software] {
	return childList[schema.Software]{
		kind:  store.ChildSoftware,
		items: func(eq *schema.Equipment) *[]schema.Software { return &eq.Software },
		id:    func(s schema.Software) string { return s.Id },
		setId: func(s *schema.Software, id string) { s.Id = id },
		check: func(s schema.Software) error {
			if s.Name == "" {
				return fmt.Errorf("software name must be specified")
			}
			return nil
		},
	}
}

func serviceLogList() childList[schema.ServiceLog] {
	return childList[schema.ServiceLog]{
		kind:  store.ChildServiceLog,
		items: func(eq *schema.Equipment) *[]schema.ServiceLog { return &eq.ServiceLogs },
		id:    func(l schema.ServiceLog) string { return l.Id },
		setId: func(l *schema.ServiceLog, id string) { l.Id = id },
		check: func(l schema.ServiceLog) error {
			if !schema.ValidServiceLogType(l.Type) {
				return fmt.Errorf("invalid service log type %q", l.Type)
			}
			if !schema.ValidServiceLogStatus(l.Status) {
				return fmt.Errorf("invalid service log status %q", l.Status)
			}
			return nil
		},
	}
}

func propertyTagList() childList[schema.PropertyTag] {
	return childList[schema.PropertyTag]{
		kind:  store.ChildPropertyTag,
		items: func(eq *schema.Equipment) *[]schema.PropertyTag { return &eq.PropertyTags },
		id:    func(t schema.PropertyTag) string { return t.Id },
		setId: func(t *schema.PropertyTag, id string) { t.Id = id },
		check: func(t schema.PropertyTag) error {
			if !schema.ValidPropertyTagType(t.Type) {
				return fmt.Errorf("invalid property tag type %q", t.Type)
			}
			if t.Value == "" {
				return fmt.Errorf("property tag value must be specified")
			}
			return nil
		},
	}
}

func childRoutes[T any](st *store.EquipmentStore, list childList[T]) chi.Router {
	r := chi.NewRouter()

	r.Get("/list", listChildren(st, list))
	r.Post("/create", createChild(st, list))
	r.Post("/{child_id}/update", updateChild(st, list))
	r.Delete("/{child_id}", deleteChild(st, list))

	return r
}

func listChildren[T any](st *store.EquipmentStore, list childList[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentId, err := utils.URLParam(r, "equipment_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		parent, err := st.Get(equipmentId)
		if err != nil {
			http.Error(w, fmt.Sprintf("error listing %vs: %v", list.kind, err), notFoundCode(err))
			return
		}

		items := *list.items(&parent)
		if list.view != nil {
			utils.WriteJsonResponse(w, list.view(items))
			return
		}
		utils.WriteJsonResponse(w, items)
	}
}

func createChild[T any](st *store.EquipmentStore, list childList[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentId, err := utils.URLParam(r, "equipment_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var child T
		if !utils.ParseRequestBody(w, r, &child) {
			return
		}
		if err := list.check(child); err != nil {
			http.Error(w, fmt.Sprintf("error adding %v: %v", list.kind, err), http.StatusBadRequest)
			return
		}

		parent, err := st.Get(equipmentId)
		if err != nil {
			http.Error(w, fmt.Sprintf("error adding %v: %v", list.kind, err), notFoundCode(err))
			return
		}

		list.setId(&child, schema.NewId())
		items := list.items(&parent)
		*items = append(*items, child)

		updated, err := st.Update(parent)
		if err != nil {
			http.Error(w, fmt.Sprintf("error adding %v: %v", list.kind, err), notFoundCode(err))
			return
		}

		utils.WriteJsonResponse(w, updated)
	}
}

func updateChild[T any](st *store.EquipmentStore, list childList[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentId, err := utils.URLParam(r, "equipment_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		childId, err := utils.URLParam(r, "child_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var child T
		if !utils.ParseRequestBody(w, r, &child) {
			return
		}
		if err := list.check(child); err != nil {
			http.Error(w, fmt.Sprintf("error updating %v: %v", list.kind, err), http.StatusBadRequest)
			return
		}
		list.setId(&child, childId)

		parent, err := st.Get(equipmentId)
		if err != nil {
			http.Error(w, fmt.Sprintf("error updating %v: %v", list.kind, err), notFoundCode(err))
			return
		}

		items := list.items(&parent)
		idx := slices.IndexFunc(*items, func(item T) bool { return list.id(item) == childId })
		if idx < 0 {
			http.Error(w, fmt.Sprintf("error updating %v: %v", list.kind, store.ErrChildNotFound), http.StatusNotFound)
			return
		}
		(*items)[idx] = child

		updated, err := st.Update(parent)
		if err != nil {
			http.Error(w, fmt.Sprintf("error updating %v: %v", list.kind, err), notFoundCode(err))
			return
		}

		utils.WriteJsonResponse(w, updated)
	}
}

func deleteChild[T any](st *store.EquipmentStore, list childList[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipmentId, err := utils.URLParam(r, "equipment_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		childId, err := utils.URLParam(r, "child_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := st.RemoveChild(list.kind, equipmentId, childId)
		if err != nil {
			http.Error(w, fmt.Sprintf("error deleting %v: %v", list.kind, err), notFoundCode(err))
			return
		}

		utils.WriteJsonResponse(w, updated)
	}
}
