package store

import (
	"errors"
	"testing"
	"time"

	"equiptrack/inventory/schema"
)

func newTestEquipment(name string) schema.Equipment {
	return schema.Equipment{
		Name:         name,
		Model:        "model-" + name,
		SerialNumber: "sn-" + name,
		Status:       schema.StatusActive,
	}
}

func TestAddPrependsAndInitializes(t *testing.T) {
	s := New()

	first := s.Add(newTestEquipment("first"))
	second := s.Add(newTestEquipment("second"))

	if first.Id == "" || second.Id == "" || first.Id == second.Id {
		t.Fatal("expected distinct generated ids")
	}
	if first.Contracts == nil || first.Documents == nil || first.Software == nil ||
		first.ServiceLogs == nil || first.PropertyTags == nil {
		t.Fatal("expected child lists initialized empty")
	}

	items := s.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 records, got %d", len(items))
	}
	if items[0].Name != "second" || items[1].Name != "first" {
		t.Fatal("expected newest record first")
	}
}

func TestUpdateUnknownIdFails(t *testing.T) {
	s := New()
	s.Add(newTestEquipment("a"))

	missing := newTestEquipment("ghost")
	missing.Id = "does-not-exist"

	_, err := s.Update(missing)
	if !errors.Is(err, ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
}

func TestUpdateRecomputesDerivedState(t *testing.T) {
	s := New()
	eq := s.Add(newTestEquipment("scanner"))

	if eq.LastCertificationDate != nil {
		t.Fatal("expected no certification date on a fresh record")
	}

	eq.ServiceLogs = append(eq.ServiceLogs, schema.ServiceLog{
		Id:     schema.NewId(),
		Date:   schema.NewDate(2024, time.March, 1),
		Type:   schema.LogCertification,
		Status: schema.LogCompleted,
	})

	updated, err := s.Update(eq)
	if err != nil {
		t.Fatal(err)
	}
	if updated.LastCertificationDate == nil || updated.LastCertificationDate.String() != "2024-03-01" {
		t.Fatalf("expected derived certification date 2024-03-01, got %v", updated.LastCertificationDate)
	}
}

func TestServiceLogRoundTripRestoresDerivedState(t *testing.T) {
	s := New()
	eq := s.Add(newTestEquipment("scanner"))

	eq.ServiceLogs = []schema.ServiceLog{{
		Id:     "base",
		Date:   schema.NewDate(2023, time.June, 1),
		Type:   schema.LogCertification,
		Status: schema.LogCompleted,
	}}
	eq, err := s.Update(eq)
	if err != nil {
		t.Fatal(err)
	}
	before := eq.LastCertificationDate.String()

	eq.ServiceLogs = append(eq.ServiceLogs, schema.ServiceLog{
		Id:     "newer",
		Date:   schema.NewDate(2024, time.March, 1),
		Type:   schema.LogCertification,
		Status: schema.LogCompleted,
	})
	eq, err = s.Update(eq)
	if err != nil {
		t.Fatal(err)
	}
	if eq.LastCertificationDate.String() != "2024-03-01" {
		t.Fatalf("expected 2024-03-01 after add, got %v", eq.LastCertificationDate)
	}

	eq, err = s.RemoveChild(ChildServiceLog, eq.Id, "newer")
	if err != nil {
		t.Fatal(err)
	}
	if eq.LastCertificationDate.String() != before {
		t.Fatalf("expected derived date restored to %v, got %v", before, eq.LastCertificationDate)
	}
}

func TestRemoveChildKinds(t *testing.T) {
	s := New()
	eq := s.Add(newTestEquipment("mill"))

	eq.Contracts = []schema.ServiceContract{{Id: "c1"}}
	eq.Documents = []schema.Document{{Id: "d1", Name: "manual", Type: schema.DocManual}}
	eq.Software = []schema.Software{{Id: "s1", Name: "controller"}}
	eq.PropertyTags = []schema.PropertyTag{{Id: "t1", Type: schema.TagNCI, Value: "NCI-1"}}

	eq, err := s.Update(eq)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		kind    ChildKind
		childId string
	}{
		{ChildContract, "c1"},
		{ChildDocument, "d1"},
		{ChildSoftware, "s1"},
		{ChildPropertyTag, "t1"},
	} {
		eq, err = s.RemoveChild(tc.kind, eq.Id, tc.childId)
		if err != nil {
			t.Fatalf("removing %v: %v", tc.kind, err)
		}
	}

	if len(eq.Contracts)+len(eq.Documents)+len(eq.Software)+len(eq.PropertyTags) != 0 {
		t.Fatal("expected all children removed")
	}

	_, err = s.RemoveChild(ChildContract, eq.Id, "c1")
	if !errors.Is(err, ErrChildNotFound) {
		t.Fatalf("expected ErrChildNotFound, got %v", err)
	}

	_, err = s.RemoveChild(ChildContract, "unknown-parent", "c1")
	if !errors.Is(err, ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	eq := s.Add(newTestEquipment("gone"))

	if err := s.Delete(eq.Id); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Fatal("expected empty store")
	}
	if err := s.Delete(eq.Id); !errors.Is(err, ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	s := New()
	printer := s.Add(newTestEquipment("Industrial 3D Printer"))
	s.Add(newTestEquipment("CNC Mill"))

	printer.PropertyTags = []schema.PropertyTag{{Id: "t1", Type: schema.TagNCI, Value: "NCI-48211"}}
	printer.Node = "NODE-17"
	if _, err := s.Update(printer); err != nil {
		t.Fatal(err)
	}

	items := s.List()

	if got := Search("", items); len(got) != 2 {
		t.Fatalf("empty query should return everything, got %d", len(got))
	}
	if got := Search("printer", items); len(got) != 1 || got[0].Id != printer.Id {
		t.Fatal("expected case-insensitive name match")
	}
	if got := Search("model-CNC", items); len(got) != 1 {
		t.Fatal("expected model match")
	}
	if got := Search("sn-industrial", items); len(got) != 1 {
		t.Fatal("expected serial number match")
	}
	if got := Search("48211", items); len(got) != 1 || got[0].Id != printer.Id {
		t.Fatal("expected property tag value match")
	}
	if got := Search("node-17", items); len(got) != 1 {
		t.Fatal("expected node identifier match")
	}
	if got := Search("no-such-thing", items); len(got) != 0 {
		t.Fatal("expected no matches")
	}
}

func TestFilterByStatus(t *testing.T) {
	s := New()
	active := s.Add(newTestEquipment("a"))

	repair := newTestEquipment("b")
	repair.Status = schema.StatusInRepair
	s.Add(repair)

	items := s.List()

	if got := FilterByStatus(StatusAll, items); len(got) != 2 {
		t.Fatal("sentinel 'all' should return everything")
	}
	if got := FilterByStatus(schema.StatusActive, items); len(got) != 1 || got[0].Id != active.Id {
		t.Fatal("expected exact status match")
	}
	if got := FilterByStatus(schema.StatusDecommissioned, items); len(got) != 0 {
		t.Fatal("expected no decommissioned records")
	}
}

func TestFindByPropertyTagValue(t *testing.T) {
	s := New()

	a := s.Add(newTestEquipment("a"))
	a.PropertyTags = []schema.PropertyTag{{Id: "t1", Type: schema.TagNCI, Value: "shared"}}
	if _, err := s.Update(a); err != nil {
		t.Fatal(err)
	}

	b := s.Add(newTestEquipment("b"))
	b.PropertyTags = []schema.PropertyTag{{Id: "t2", Type: schema.TagNCI, Value: "shared"}}
	if _, err := s.Update(b); err != nil {
		t.Fatal(err)
	}

	match, ok := s.FindByPropertyTagValue("shared", a.Id)
	if !ok || match.Id != b.Id {
		t.Fatal("expected the other record sharing the tag value")
	}

	// a record never finds itself, even as the only owner of the value
	if err := s.Delete(b.Id); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.FindByPropertyTagValue("shared", a.Id); ok {
		t.Fatal("expected no match when only the excluded record owns the value")
	}

	if _, ok := s.FindByPropertyTagValue("missing", ""); ok {
		t.Fatal("expected no match for unknown value")
	}
}

func TestReplaceAllRecomputesDerivedState(t *testing.T) {
	s := New()
	s.Add(newTestEquipment("old"))

	imported := newTestEquipment("imported")
	imported.Id = "imported-1"
	imported.ServiceLogs = []schema.ServiceLog{{
		Id:     "l1",
		Date:   schema.NewDate(2024, time.April, 10),
		Type:   schema.LogCertification,
		Status: schema.LogCompleted,
	}}
	// a stale value that must be overwritten by recomputation
	stale := schema.NewDate(2000, time.January, 1)
	imported.LastCertificationDate = &stale

	s.ReplaceAll([]schema.Equipment{imported})

	items := s.List()
	if len(items) != 1 || items[0].Id != "imported-1" {
		t.Fatal("expected store contents replaced, not merged")
	}
	if items[0].LastCertificationDate.String() != "2024-04-10" {
		t.Fatalf("expected derived date recomputed, got %v", items[0].LastCertificationDate)
	}
}

func TestReturnedRecordsDoNotAliasStore(t *testing.T) {
	s := New()
	eq := s.Add(newTestEquipment("shared"))

	eq.Name = "mutated"
	eq.ServiceLogs = append(eq.ServiceLogs, schema.ServiceLog{Id: "x", Type: schema.LogRepair})

	fresh, err := s.Get(eq.Id)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Name != "shared" || len(fresh.ServiceLogs) != 0 {
		t.Fatal("mutating a returned record must not change the store")
	}
}
