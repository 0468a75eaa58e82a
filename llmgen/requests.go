package llmgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"equiptrack/inventory/schema"
)

var ErrNoServiceReports = errors.New("no service reports to summarize")

type MaintenanceScheduleRequest struct {
	EquipmentType             string   `json:"equipmentType"`
	OperationalHours          *float64 `json:"operationalHours,omitempty"`
	FailureRate               *float64 `json:"failureRate,omitempty"`
	EnvironmentalFactors      string   `json:"environmentalFactors"`
	HistoricalMaintenanceData string   `json:"historicalMaintenanceData"`
}

type MaintenanceScheduleResult struct {
	SuggestedMaintenanceSchedule string `json:"suggestedMaintenanceSchedule"`
	Reasoning                    string `json:"reasoning"`
}

type ServiceReportSummaryRequest struct {
	ServiceReports string `json:"serviceReports"`
}

type ServiceReportSummaryResult struct {
	Summary string `json:"summary"`
}

const maintenanceSystemPrompt = `You are an expert maintenance schedule optimizer.
Based on the equipment's type, environmental factors and historical maintenance data, suggest an optimized maintenance schedule.
Respond with a JSON object containing exactly two string fields: "suggestedMaintenanceSchedule" and "reasoning".`

const summarySystemPrompt = `You are a maintenance technician summarizing service reports and preventative maintenance records for a piece of equipment.
Respond with a JSON object containing exactly one string field: "summary".`

// SuggestMaintenanceSchedule makes a single attempt against the provider and
// parses the structured schedule suggestion out of the completion.
func SuggestMaintenanceSchedule(ctx context.Context, completer Completer, req MaintenanceScheduleRequest) (*MaintenanceScheduleResult, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Equipment Type: %s\n", req.EquipmentType)
	if req.OperationalHours != nil {
		fmt.Fprintf(&prompt, "Operational Hours: %s\n", strconv.FormatFloat(*req.OperationalHours, 'f', -1, 64))
	}
	if req.FailureRate != nil {
		fmt.Fprintf(&prompt, "Failure Rate: %s\n", strconv.FormatFloat(*req.FailureRate, 'f', -1, 64))
	}
	fmt.Fprintf(&prompt, "Environmental Factors: %s\n", req.EnvironmentalFactors)
	fmt.Fprintf(&prompt, "Historical Maintenance Data: %s\n", req.HistoricalMaintenanceData)
	prompt.WriteString("\nPlease provide a detailed maintenance schedule and the reasoning behind it.")

	completion, err := completer.Complete(ctx, maintenanceSystemPrompt, prompt.String())
	if err != nil {
		return nil, err
	}

	var result MaintenanceScheduleResult
	if err := parseStructuredOutput(completion, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SummarizeServiceReports summarizes the assembled service report text.
// Callers must not invoke it with an empty reports string.
func SummarizeServiceReports(ctx context.Context, completer Completer, req ServiceReportSummaryRequest) (*ServiceReportSummaryResult, error) {
	if strings.TrimSpace(req.ServiceReports) == "" {
		return nil, ErrNoServiceReports
	}

	prompt := fmt.Sprintf("Summarize the following service reports and preventative maintenance records:\n\n%s", req.ServiceReports)

	completion, err := completer.Complete(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var result ServiceReportSummaryResult
	if err := parseStructuredOutput(completion, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ServiceReportText assembles the historical log text fed to both prompts:
// one line per log, in the order the logs are stored.
func ServiceReportText(logs []schema.ServiceLog) string {
	lines := make([]string, 0, len(logs))
	for _, log := range logs {
		lines = append(lines, fmt.Sprintf("Date: %s, Type: %s, Technician: %s, Notes: %s",
			log.Date.String(), log.Type, log.Technician, log.Notes))
	}
	return strings.Join(lines, "\n\n")
}

// parseStructuredOutput decodes the JSON object out of a completion,
// tolerating a markdown code fence around it. A completion that does not
// parse is treated as a provider failure.
func parseStructuredOutput(completion string, dest interface{}) error {
	text := strings.TrimSpace(completion)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	if err := json.Unmarshal([]byte(text), dest); err != nil {
		return fmt.Errorf("error parsing structured output: %w", err)
	}
	return nil
}
