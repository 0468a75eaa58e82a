// Package client is a Go client for the equiptrack API.
package client

import (
	"fmt"
	"io"

	"equiptrack/inventory/schema"
)

type EquipTrackClient struct {
	baseUrl string
}

func NewEquipTrackClient(baseUrl string) EquipTrackClient {
	return EquipTrackClient{baseUrl: baseUrl}
}

func (c *EquipTrackClient) get(endpoint string) *httpRequest {
	return newHttpRequest("GET", c.baseUrl, endpoint)
}

func (c *EquipTrackClient) post(endpoint string) *httpRequest {
	return newHttpRequest("POST", c.baseUrl, endpoint)
}

func (c *EquipTrackClient) delete(endpoint string) *httpRequest {
	return newHttpRequest("DELETE", c.baseUrl, endpoint)
}

func (c *EquipTrackClient) Health() error {
	return c.get("/api/v1/health").Do(nil)
}

func (c *EquipTrackClient) CreateEquipment(eq schema.Equipment) (schema.Equipment, error) {
	var created schema.Equipment
	err := c.post("/api/v1/equipment/create").Json(eq).Do(&created)
	return created, err
}

func (c *EquipTrackClient) GetEquipment(id string) (schema.Equipment, error) {
	var eq schema.Equipment
	err := c.get(fmt.Sprintf("/api/v1/equipment/%v", id)).Do(&eq)
	return eq, err
}

// ListEquipment returns the collection, optionally narrowed by a search query
// and a status filter. Pass empty strings (or "all" for status) to disable.
func (c *EquipTrackClient) ListEquipment(query, status string) ([]schema.Equipment, error) {
	req := c.get("/api/v1/equipment/list")
	if query != "" {
		req = req.Param("q", query)
	}
	if status != "" {
		req = req.Param("status", status)
	}

	var res struct {
		Equipment []schema.Equipment `json:"equipment"`
	}
	err := req.Do(&res)
	return res.Equipment, err
}

func (c *EquipTrackClient) UpdateEquipment(eq schema.Equipment) (schema.Equipment, error) {
	var updated schema.Equipment
	err := c.post(fmt.Sprintf("/api/v1/equipment/%v/update", eq.Id)).Json(eq).Do(&updated)
	return updated, err
}

func (c *EquipTrackClient) DeleteEquipment(id string) error {
	return c.delete(fmt.Sprintf("/api/v1/equipment/%v", id)).Do(nil)
}

// AssociatedEquipment finds another record sharing the given property tag
// value.
func (c *EquipTrackClient) AssociatedEquipment(id, tagValue string) (schema.Equipment, error) {
	var eq schema.Equipment
	err := c.get(fmt.Sprintf("/api/v1/equipment/%v/associated/%v", id, tagValue)).Do(&eq)
	return eq, err
}

func (c *EquipTrackClient) addChild(equipmentId, collection string, child interface{}) (schema.Equipment, error) {
	var updated schema.Equipment
	err := c.post(fmt.Sprintf("/api/v1/equipment/%v/%v/create", equipmentId, collection)).Json(child).Do(&updated)
	return updated, err
}

func (c *EquipTrackClient) updateChild(equipmentId, collection, childId string, child interface{}) (schema.Equipment, error) {
	var updated schema.Equipment
	err := c.post(fmt.Sprintf("/api/v1/equipment/%v/%v/%v/update", equipmentId, collection, childId)).Json(child).Do(&updated)
	return updated, err
}

func (c *EquipTrackClient) deleteChild(equipmentId, collection, childId string) (schema.Equipment, error) {
	var updated schema.Equipment
	err := c.delete(fmt.Sprintf("/api/v1/equipment/%v/%v/%v", equipmentId, collection, childId)).Do(&updated)
	return updated, err
}

// ContractView is a contract annotated with its derived status, as served by
// the contract list endpoint.
type ContractView struct {
	schema.ServiceContract
	Status string `json:"status"`
}

// ListContracts returns the equipment's contracts in display order (start
// date descending, undated contracts last) with derived statuses.
func (c *EquipTrackClient) ListContracts(equipmentId string) ([]ContractView, error) {
	var contracts []ContractView
	err := c.get(fmt.Sprintf("/api/v1/equipment/%v/contracts/list", equipmentId)).Do(&contracts)
	return contracts, err
}

func (c *EquipTrackClient) AddContract(equipmentId string, contract schema.ServiceContract) (schema.Equipment, error) {
	return c.addChild(equipmentId, "contracts", contract)
}

func (c *EquipTrackClient) UpdateContract(equipmentId string, contract schema.ServiceContract) (schema.Equipment, error) {
	return c.updateChild(equipmentId, "contracts", contract.Id, contract)
}

func (c *EquipTrackClient) DeleteContract(equipmentId, contractId string) (schema.Equipment, error) {
	return c.deleteChild(equipmentId, "contracts", contractId)
}

func (c *EquipTrackClient) AddDocument(equipmentId string, document schema.Document) (schema.Equipment, error) {
	return c.addChild(equipmentId, "documents", document)
}

func (c *EquipTrackClient) UpdateDocument(equipmentId string, document schema.Document) (schema.Equipment, error) {
	return c.updateChild(equipmentId, "documents", document.Id, document)
}

func (c *EquipTrackClient) DeleteDocument(equipmentId, documentId string) (schema.Equipment, error) {
	return c.deleteChild(equipmentId, "documents", documentId)
}

func (c *EquipTrackClient) AddSoftware(equipmentId string, software schema.Software) (schema.Equipment, error) {
	return c.addChild(equipmentId, "software", software)
}

func (c *EquipTrackClient) UpdateSoftware(equipmentId string, software schema.Software) (schema.Equipment, error) {
	return c.updateChild(equipmentId, "software", software.Id, software)
}

func (c *EquipTrackClient) DeleteSoftware(equipmentId, softwareId string) (schema.Equipment, error) {
	return c.deleteChild(equipmentId, "software", softwareId)
}

func (c *EquipTrackClient) AddServiceLog(equipmentId string, log schema.ServiceLog) (schema.Equipment, error) {
	return c.addChild(equipmentId, "service-logs", log)
}

func (c *EquipTrackClient) UpdateServiceLog(equipmentId string, log schema.ServiceLog) (schema.Equipment, error) {
	return c.updateChild(equipmentId, "service-logs", log.Id, log)
}

func (c *EquipTrackClient) DeleteServiceLog(equipmentId, logId string) (schema.Equipment, error) {
	return c.deleteChild(equipmentId, "service-logs", logId)
}

func (c *EquipTrackClient) AddPropertyTag(equipmentId string, tag schema.PropertyTag) (schema.Equipment, error) {
	return c.addChild(equipmentId, "property-tags", tag)
}

func (c *EquipTrackClient) UpdatePropertyTag(equipmentId string, tag schema.PropertyTag) (schema.Equipment, error) {
	return c.updateChild(equipmentId, "property-tags", tag.Id, tag)
}

func (c *EquipTrackClient) DeletePropertyTag(equipmentId, tagId string) (schema.Equipment, error) {
	return c.deleteChild(equipmentId, "property-tags", tagId)
}

type ImportResult struct {
	Imported int               `json:"imported"`
	Selected *schema.Equipment `json:"selected,omitempty"`
}

// ImportFile uploads an import payload; the format is inferred server-side
// from the filename extension.
func (c *EquipTrackClient) ImportFile(filename string, content io.Reader) (ImportResult, error) {
	var res ImportResult
	err := c.post("/api/v1/data/import").File(filename, content).Do(&res)
	return res, err
}

// Export downloads the spreadsheet export into the writer.
func (c *EquipTrackClient) Export(dest io.Writer) error {
	return c.get("/api/v1/data/export").Process(func(body io.Reader) error {
		_, err := io.Copy(dest, body)
		return err
	})
}

type MaintenanceScheduleSuggestion struct {
	SuggestedMaintenanceSchedule string `json:"suggestedMaintenanceSchedule"`
	Reasoning                    string `json:"reasoning"`
}

func (c *EquipTrackClient) SuggestMaintenanceSchedule(equipmentId, environmentalFactors string) (MaintenanceScheduleSuggestion, error) {
	var res MaintenanceScheduleSuggestion
	err := c.post("/api/v1/generate/maintenance-schedule").Json(map[string]string{
		"equipment_id":          equipmentId,
		"environmental_factors": environmentalFactors,
	}).Do(&res)
	return res, err
}

type ServiceReportSummary struct {
	Summary string `json:"summary"`
}

func (c *EquipTrackClient) SummarizeServiceReports(equipmentId string) (ServiceReportSummary, error) {
	var res ServiceReportSummary
	err := c.post("/api/v1/generate/service-report-summary").Json(map[string]string{
		"equipment_id": equipmentId,
	}).Do(&res)
	return res, err
}
