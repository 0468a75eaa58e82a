package schema

import (
	"slices"

	"github.com/google/uuid"
)

const (
	StatusActive         = "Active"
	StatusInRepair       = "In-Repair"
	StatusOutOfService   = "Out-of-Service"
	StatusDecommissioned = "Decommissioned"
)

var EquipmentStatuses = []string{StatusActive, StatusInRepair, StatusOutOfService, StatusDecommissioned}

const (
	TagNCI = "NCI"
	TagNIH = "NIH"
	TagVPP = "VPP"
)

var PropertyTagTypes = []string{TagNCI, TagNIH, TagVPP}

const (
	DocManual   = "Manual"
	DocWarranty = "Warranty"
	DocInvoice  = "Invoice"
	DocOther    = "Other"
)

var DocumentTypes = []string{DocManual, DocWarranty, DocInvoice, DocOther}

const (
	LogPreventative  = "Preventative"
	LogRepair        = "Repair"
	LogInspection    = "Inspection"
	LogRequest       = "Request"
	LogCertification = "Certification"
)

var ServiceLogTypes = []string{LogPreventative, LogRepair, LogInspection, LogRequest, LogCertification}

const (
	LogRequested  = "Requested"
	LogApproved   = "Approved"
	LogInProgress = "In-Progress"
	LogCompleted  = "Completed"
	LogRejected   = "Rejected"
)

var ServiceLogStatuses = []string{LogRequested, LogApproved, LogInProgress, LogCompleted, LogRejected}

const (
	ContractActive     = "Active"
	ContractRenewsSoon = "Renews-Soon"
	ContractExpired    = "Expired"
)

// NewId generates an opaque unique id for an equipment record or one of its
// child records. Ids are assigned once at creation and never change.
func NewId() string {
	return uuid.NewString()
}

type Equipment struct {
	Id string `json:"id" validate:"required"`

	Name         string `json:"name" validate:"required"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
	Manufacturer string `json:"manufacturer"`
	Room         string `json:"room"`
	Department   string `json:"department"`
	Poc          string `json:"poc"`
	Notes        string `json:"notes"`
	ImageUrl     string `json:"imageUrl"`

	PurchaseDate    Date `json:"purchaseDate"`
	WarrantyEndDate Date `json:"warrantyEndDate"`
	InstalledDate   Date `json:"installedDate"`

	Status string `json:"status" validate:"omitempty,oneof=Active In-Repair Out-of-Service Decommissioned"`

	Node  string `json:"node,omitempty"`
	Probe string `json:"probe,omitempty"`
	Ups   string `json:"ups,omitempty"`

	OnNetwork          bool   `json:"onNetwork"`
	ComputerAssociated string `json:"computerAssociated,omitempty"`

	Transferred             bool   `json:"transferred"`
	PurchasingAmbisPoNumber string `json:"purchasingAmbisPoNumber"`
	HasServiceContract      bool   `json:"hasServiceContract"`

	OperationalHours *float64 `json:"operationalHours,omitempty"`
	FailureRate      *float64 `json:"failureRate,omitempty"`

	// Derived from ServiceLogs, never set directly. See LastCertificationDate.
	LastCertificationDate *Date `json:"lastCertificationDate,omitempty"`

	Contracts    []ServiceContract `json:"contracts" validate:"dive"`
	Documents    []Document        `json:"documents" validate:"dive"`
	Software     []Software        `json:"software" validate:"dive"`
	ServiceLogs  []ServiceLog      `json:"serviceLogs" validate:"dive"`
	PropertyTags []PropertyTag     `json:"propertyTags" validate:"dive"`
}

// ServiceContract fields are almost entirely optional: a nil pointer or empty
// string means the value is unknown, not zero.
type ServiceContract struct {
	Id string `json:"id" validate:"required"`

	Provider  string `json:"provider,omitempty"`
	VendorPoc string `json:"vendorPoc,omitempty"`

	StartDate   *Date `json:"startDate,omitempty"`
	EndDate     *Date `json:"endDate,omitempty"`
	RenewalDate *Date `json:"renewalDate,omitempty"`

	Terms string `json:"terms,omitempty"`

	NumberOfPreventativeMaintenance *int  `json:"numberOfPreventativeMaintenance,omitempty"`
	PreventativeMaintenanceDoneDate *Date `json:"preventativeMaintenanceDoneDate,omitempty"`
	PreventativeMaintenanceDueDate  *Date `json:"preventativeMaintenanceDueDate,omitempty"`

	PoStartDate  *Date  `json:"poStartDate,omitempty"`
	PoEndDate    *Date  `json:"poEndDate,omitempty"`
	PoNumber     string `json:"poNumber,omitempty"`
	PoLineNumber string `json:"poLineNumber,omitempty"`

	AnnualCost           *float64 `json:"annualCost,omitempty"`
	CreditUnusedCoverage bool     `json:"creditUnusedCoverage,omitempty"`
}

type Document struct {
	Id         string `json:"id" validate:"required"`
	Name       string `json:"name"`
	Type       string `json:"type" validate:"omitempty,oneof=Manual Warranty Invoice Other"`
	UploadDate Date   `json:"uploadDate"`
	Url        string `json:"url"`
}

type Software struct {
	Id             string `json:"id" validate:"required"`
	Name           string `json:"name"`
	Version        string `json:"version"`
	LicenseKey     string `json:"licenseKey"`
	InstallDate    Date   `json:"installDate"`
	ExpirationDate *Date  `json:"expirationDate,omitempty"`
}

type ServiceLog struct {
	Id         string `json:"id" validate:"required"`
	Date       Date   `json:"date"`
	Type       string `json:"type" validate:"omitempty,oneof=Preventative Repair Inspection Request Certification"`
	Technician string `json:"technician"`
	Notes      string `json:"notes"`
	Status     string `json:"status" validate:"omitempty,oneof=Requested Approved In-Progress Completed Rejected"`
}

// PropertyTag is a typed external-identifier cross reference. Equipment
// records sharing a tag value are considered associated; the value is not
// required to be unique.
type PropertyTag struct {
	Id    string `json:"id" validate:"required"`
	Type  string `json:"type" validate:"omitempty,oneof=NCI NIH VPP"`
	Value string `json:"value"`
}

func ValidStatus(status string) bool {
	return slices.Contains(EquipmentStatuses, status)
}

func ValidServiceLogType(logType string) bool {
	return slices.Contains(ServiceLogTypes, logType)
}

func ValidServiceLogStatus(status string) bool {
	return slices.Contains(ServiceLogStatuses, status)
}

func ValidDocumentType(docType string) bool {
	return slices.Contains(DocumentTypes, docType)
}

func ValidPropertyTagType(tagType string) bool {
	return slices.Contains(PropertyTagTypes, tagType)
}

// Clone returns a deep copy of the record. Child lists and pointer fields are
// copied so that mutating the clone never aliases the original.
func (e Equipment) Clone() Equipment {
	out := e
	out.OperationalHours = clonePtr(e.OperationalHours)
	out.FailureRate = clonePtr(e.FailureRate)
	out.LastCertificationDate = clonePtr(e.LastCertificationDate)
	out.Contracts = make([]ServiceContract, len(e.Contracts))
	for i, c := range e.Contracts {
		out.Contracts[i] = c.clone()
	}
	out.Documents = slices.Clone(e.Documents)
	out.Software = slices.Clone(e.Software)
	for i := range out.Software {
		out.Software[i].ExpirationDate = clonePtr(e.Software[i].ExpirationDate)
	}
	out.ServiceLogs = slices.Clone(e.ServiceLogs)
	out.PropertyTags = slices.Clone(e.PropertyTags)
	return out
}

func (c ServiceContract) clone() ServiceContract {
	out := c
	out.StartDate = clonePtr(c.StartDate)
	out.EndDate = clonePtr(c.EndDate)
	out.RenewalDate = clonePtr(c.RenewalDate)
	out.PreventativeMaintenanceDoneDate = clonePtr(c.PreventativeMaintenanceDoneDate)
	out.PreventativeMaintenanceDueDate = clonePtr(c.PreventativeMaintenanceDueDate)
	out.PoStartDate = clonePtr(c.PoStartDate)
	out.PoEndDate = clonePtr(c.PoEndDate)
	out.NumberOfPreventativeMaintenance = clonePtr(c.NumberOfPreventativeMaintenance)
	out.AnnualCost = clonePtr(c.AnnualCost)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
