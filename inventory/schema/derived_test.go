package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastCertificationDate(t *testing.T) {
	logs := []ServiceLog{
		{Id: "a", Type: LogRepair, Date: NewDate(2024, time.January, 1)},
		{Id: "b", Type: LogCertification, Date: NewDate(2023, time.June, 1)},
		{Id: "c", Type: LogCertification, Date: NewDate(2024, time.March, 1)},
	}

	latest := LastCertificationDate(logs)
	require.NotNil(t, latest)
	assert.Equal(t, "2024-03-01", latest.String())
}

func TestLastCertificationDateNoCertifications(t *testing.T) {
	assert.Nil(t, LastCertificationDate(nil))
	assert.Nil(t, LastCertificationDate([]ServiceLog{
		{Id: "a", Type: LogRepair, Date: NewDate(2024, time.January, 1)},
		{Id: "b", Type: LogPreventative, Date: NewDate(2024, time.February, 1)},
	}))
}

func TestRefreshDerived(t *testing.T) {
	eq := Equipment{
		Id:   "x",
		Name: "scope",
		ServiceLogs: []ServiceLog{
			{Id: "a", Type: LogCertification, Date: NewDate(2024, time.May, 2)},
		},
	}

	RefreshDerived(&eq)
	require.NotNil(t, eq.LastCertificationDate)
	assert.Equal(t, "2024-05-02", eq.LastCertificationDate.String())

	eq.ServiceLogs = nil
	RefreshDerived(&eq)
	assert.Nil(t, eq.LastCertificationDate)
}

func datePtr(year int, month time.Month, day int) *Date {
	d := NewDate(year, month, day)
	return &d
}

func TestContractStatus(t *testing.T) {
	today := NewDate(2024, time.June, 1)

	tests := []struct {
		name     string
		contract ServiceContract
		expected string
	}{
		{
			name:     "expired when end date in the past",
			contract: ServiceContract{EndDate: datePtr(2024, time.May, 1), RenewalDate: datePtr(2025, time.January, 1)},
			expected: ContractExpired,
		},
		{
			name:     "renews soon when renewal within 30 days",
			contract: ServiceContract{EndDate: datePtr(2025, time.January, 1), RenewalDate: datePtr(2024, time.June, 20)},
			expected: ContractRenewsSoon,
		},
		{
			name:     "active when renewal far out",
			contract: ServiceContract{EndDate: datePtr(2025, time.June, 1), RenewalDate: datePtr(2025, time.January, 1)},
			expected: ContractActive,
		},
		{
			name:     "renewal already passed but contract not expired",
			contract: ServiceContract{EndDate: datePtr(2025, time.January, 1), RenewalDate: datePtr(2024, time.May, 15)},
			expected: ContractRenewsSoon,
		},
		{
			name:     "no dates at all",
			contract: ServiceContract{},
			expected: ContractActive,
		},
		{
			name:     "missing renewal date cannot renew soon",
			contract: ServiceContract{EndDate: datePtr(2025, time.January, 1)},
			expected: ContractActive,
		},
		{
			name:     "missing end date cannot expire",
			contract: ServiceContract{RenewalDate: datePtr(2024, time.June, 10)},
			expected: ContractRenewsSoon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContractStatus(tt.contract, today))
		})
	}
}

func TestSortContracts(t *testing.T) {
	contracts := []ServiceContract{
		{Id: "no-start-1"},
		{Id: "old", StartDate: datePtr(2021, time.January, 1)},
		{Id: "new", StartDate: datePtr(2024, time.January, 1)},
		{Id: "no-start-2"},
		{Id: "mid", StartDate: datePtr(2022, time.June, 1)},
	}

	sorted := SortContracts(contracts)

	ids := make([]string, len(sorted))
	for i, c := range sorted {
		ids[i] = c.Id
	}
	assert.Equal(t, []string{"new", "mid", "old", "no-start-1", "no-start-2"}, ids)

	// input order untouched
	assert.Equal(t, "no-start-1", contracts[0].Id)
}

func TestDateJson(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-03-01"`)))
	assert.Equal(t, "2024-03-01", d.String())

	encoded, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(encoded))

	var zero Date
	require.NoError(t, zero.UnmarshalJSON([]byte("null")))
	assert.True(t, zero.IsZero())

	encoded, err = zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(encoded))

	assert.Error(t, d.UnmarshalJSON([]byte(`"03/01/2024"`)))
}

func TestCloneDoesNotAlias(t *testing.T) {
	eq := Equipment{
		Id:   "x",
		Name: "printer",
		Contracts: []ServiceContract{
			{Id: "c1", StartDate: datePtr(2022, time.January, 1)},
		},
		ServiceLogs: []ServiceLog{
			{Id: "l1", Type: LogCertification, Date: NewDate(2024, time.January, 1)},
		},
	}

	clone := eq.Clone()
	clone.Contracts[0].Id = "changed"
	*clone.Contracts[0].StartDate = NewDate(2030, time.January, 1)
	clone.ServiceLogs[0].Type = LogRepair

	assert.Equal(t, "c1", eq.Contracts[0].Id)
	assert.Equal(t, "2022-01-01", eq.Contracts[0].StartDate.String())
	assert.Equal(t, LogCertification, eq.ServiceLogs[0].Type)
}
