package schema

import "sort"

// renewsSoonWindowDays is how close a renewal date must be before a contract
// is reported as renewing soon.
const renewsSoonWindowDays = 30

// LastCertificationDate returns the date of the most recent Certification
// service log, or nil when the list contains none. Ties between equal dates
// are broken arbitrarily since dates carry no time component.
func LastCertificationDate(logs []ServiceLog) *Date {
	var latest *Date
	for i := range logs {
		if logs[i].Type != LogCertification {
			continue
		}
		if latest == nil || logs[i].Date.After(*latest) {
			d := logs[i].Date
			latest = &d
		}
	}
	return latest
}

// RefreshDerived recomputes every derived field on the record. Must be called
// by any mutation path that changes the service log list.
func RefreshDerived(eq *Equipment) {
	eq.LastCertificationDate = LastCertificationDate(eq.ServiceLogs)
}

// ContractStatus derives the display status of a service contract relative to
// the given day. A contract missing its end date cannot expire and one
// missing its renewal date cannot renew soon; with neither date it is Active.
func ContractStatus(c ServiceContract, today Date) string {
	if c.EndDate != nil && c.EndDate.Before(today) {
		return ContractExpired
	}
	if c.RenewalDate != nil && c.RenewalDate.DaysUntil(today) <= renewsSoonWindowDays {
		return ContractRenewsSoon
	}
	return ContractActive
}

// SortContracts orders contracts for display: start date descending, stable,
// with contracts missing a start date sorting last.
func SortContracts(contracts []ServiceContract) []ServiceContract {
	out := make([]ServiceContract, len(contracts))
	copy(out, contracts)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StartDate, out[j].StartDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	return out
}
