package store

import (
	"time"

	"equiptrack/inventory/schema"
)

func datePtr(year int, month time.Month, day int) *schema.Date {
	d := schema.NewDate(year, month, day)
	return &d
}

func floatPtr(v float64) *float64 { return &v }

// DemoEquipment returns a small seed collection for demo sessions.
func DemoEquipment() []schema.Equipment {
	return []schema.Equipment{
		{
			Id:               schema.NewId(),
			Name:             "Industrial 3D Printer",
			Model:            "Stratasys F900",
			SerialNumber:     "SN-F900-1001",
			Manufacturer:     "Stratasys",
			Room:             "B1-104",
			Department:       "Fabrication",
			Poc:              "R. Alvarez",
			Status:           schema.StatusActive,
			PurchaseDate:     schema.NewDate(2022, time.January, 15),
			WarrantyEndDate:  schema.NewDate(2024, time.January, 15),
			InstalledDate:    schema.NewDate(2022, time.January, 20),
			OperationalHours: floatPtr(2500),
			FailureRate:      floatPtr(0.02),
			Contracts: []schema.ServiceContract{
				{
					Id:          schema.NewId(),
					Provider:    "Stratasys Support",
					StartDate:   datePtr(2022, time.January, 15),
					EndDate:     datePtr(2026, time.January, 14),
					RenewalDate: datePtr(2025, time.December, 15),
					Terms:       "Full coverage for parts and labor.",
				},
			},
			Documents: []schema.Document{
				{Id: schema.NewId(), Name: "F900 User Manual.pdf", Type: schema.DocManual, UploadDate: schema.NewDate(2022, time.January, 15), Url: "https://docs.example.com/f900-manual.pdf"},
				{Id: schema.NewId(), Name: "Warranty Certificate.pdf", Type: schema.DocWarranty, UploadDate: schema.NewDate(2022, time.January, 15), Url: "https://docs.example.com/f900-warranty.pdf"},
			},
			Software: []schema.Software{
				{Id: schema.NewId(), Name: "GrabCAD Print", Version: "1.57", LicenseKey: "LICENSE-GC-XYZ", InstallDate: schema.NewDate(2022, time.January, 15)},
			},
			ServiceLogs: []schema.ServiceLog{
				{Id: schema.NewId(), Date: schema.NewDate(2024, time.February, 10), Type: schema.LogRepair, Technician: "Jane Smith", Notes: "Replaced faulty heating element. System is back online.", Status: schema.LogCompleted},
				{Id: schema.NewId(), Date: schema.NewDate(2023, time.July, 20), Type: schema.LogCertification, Technician: "John Doe", Notes: "Annual certification passed after print head replacement.", Status: schema.LogCompleted},
			},
			PropertyTags: []schema.PropertyTag{
				{Id: schema.NewId(), Type: schema.TagNCI, Value: "NCI-48211"},
			},
		},
		{
			Id:              schema.NewId(),
			Name:            "CNC Milling Machine",
			Model:           "Haas VF-2",
			SerialNumber:    "SN-HAAS-2002",
			Manufacturer:    "Haas Automation",
			Room:            "B1-110",
			Department:      "Fabrication",
			Poc:             "M. Rivera",
			Status:          schema.StatusActive,
			PurchaseDate:    schema.NewDate(2021, time.March, 20),
			WarrantyEndDate: schema.NewDate(2023, time.March, 20),
			InstalledDate:   schema.NewDate(2021, time.March, 25),
			OnNetwork:       true,
			ComputerAssociated: "HAAS-CTRL-07",
			OperationalHours:   floatPtr(5800),
			FailureRate:        floatPtr(0.05),
			Contracts:          []schema.ServiceContract{},
			Documents: []schema.Document{
				{Id: schema.NewId(), Name: "Haas VF-2 Manual.pdf", Type: schema.DocManual, UploadDate: schema.NewDate(2021, time.March, 20), Url: "https://docs.example.com/vf2-manual.pdf"},
			},
			Software: []schema.Software{
				{Id: schema.NewId(), Name: "Haas Control Software", Version: "11.82", LicenseKey: "N/A", InstallDate: schema.NewDate(2021, time.March, 20)},
			},
			ServiceLogs: []schema.ServiceLog{
				{Id: schema.NewId(), Date: schema.NewDate(2023, time.September, 1), Type: schema.LogPreventative, Technician: "Mike Rivera", Notes: "Quarterly maintenance check. Lubricated all moving parts and checked fluid levels.", Status: schema.LogCompleted},
			},
			PropertyTags: []schema.PropertyTag{
				{Id: schema.NewId(), Type: schema.TagNIH, Value: "NIH-77120"},
			},
		},
		{
			Id:              schema.NewId(),
			Name:            "Lab Spectrometer",
			Model:           "Thermo Scientific Nicolet iS50",
			SerialNumber:    "SN-TS-3003",
			Manufacturer:    "Thermo Fisher Scientific",
			Room:            "C2-201",
			Department:      "Analytical Chemistry",
			Poc:             "L. Chen",
			Status:          schema.StatusInRepair,
			PurchaseDate:    schema.NewDate(2023, time.June, 1),
			WarrantyEndDate: schema.NewDate(2025, time.June, 1),
			InstalledDate:   schema.NewDate(2023, time.June, 5),
			OperationalHours: floatPtr(800),
			FailureRate:      floatPtr(0.01),
			Contracts: []schema.ServiceContract{
				{
					Id:          schema.NewId(),
					Provider:    "Thermo Fisher Scientific",
					StartDate:   datePtr(2023, time.June, 1),
					EndDate:     datePtr(2026, time.May, 31),
					RenewalDate: datePtr(2026, time.May, 1),
					Terms:       "Gold Support Plan with on-site service.",
				},
			},
			Documents: []schema.Document{
				{Id: schema.NewId(), Name: "Nicolet iS50 Manual.pdf", Type: schema.DocManual, UploadDate: schema.NewDate(2023, time.June, 1), Url: "https://docs.example.com/is50-manual.pdf"},
				{Id: schema.NewId(), Name: "Purchase Invoice.pdf", Type: schema.DocInvoice, UploadDate: schema.NewDate(2023, time.June, 1), Url: "https://docs.example.com/is50-invoice.pdf"},
			},
			Software: []schema.Software{
				{Id: schema.NewId(), Name: "OMNIC Software", Version: "9.12", LicenseKey: "LICENSE-OMNIC-ABC", InstallDate: schema.NewDate(2023, time.June, 1)},
			},
			ServiceLogs: []schema.ServiceLog{
				{Id: schema.NewId(), Date: schema.NewDate(2024, time.May, 15), Type: schema.LogRepair, Technician: "Support Team", Notes: "Laser assembly malfunction. Awaiting replacement part.", Status: schema.LogInProgress},
			},
			PropertyTags: []schema.PropertyTag{
				{Id: schema.NewId(), Type: schema.TagNCI, Value: "NCI-48211"},
				{Id: schema.NewId(), Type: schema.TagVPP, Value: "VPP-0092"},
			},
		},
	}
}
