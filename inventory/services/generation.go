package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"equiptrack/inventory/store"
	"equiptrack/llmgen"
	"equiptrack/utils"

	"github.com/go-chi/chi/v5"
)

const generationTimeout = 2 * time.Minute

// GenerationService serves the two AI text-generation helpers. Requests are
// single attempts with no retry, and only one may be in flight at a time:
// concurrent triggers would race on the displayed result, so later ones are
// rejected until the outstanding request resolves.
type GenerationService struct {
	store     *store.EquipmentStore
	completer llmgen.Completer

	inFlight atomic.Bool
}

func (s *GenerationService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/maintenance-schedule", s.MaintenanceSchedule)
	r.Post("/service-report-summary", s.ServiceReportSummary)

	return r
}

func (s *GenerationService) acquire(w http.ResponseWriter) bool {
	if s.completer == nil {
		http.Error(w, "no generation provider configured", http.StatusServiceUnavailable)
		return false
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		http.Error(w, "a generation request is already in progress", http.StatusConflict)
		return false
	}
	return true
}

type maintenanceScheduleParams struct {
	EquipmentId          string `json:"equipment_id"`
	EnvironmentalFactors string `json:"environmental_factors"`
}

func (s *GenerationService) MaintenanceSchedule(w http.ResponseWriter, r *http.Request) {
	if !s.acquire(w) {
		return
	}
	defer s.inFlight.Store(false)

	var params maintenanceScheduleParams
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	eq, err := s.store.Get(params.EquipmentId)
	if err != nil {
		http.Error(w, fmt.Sprintf("error suggesting maintenance schedule: %v", err), notFoundCode(err))
		return
	}

	historical := llmgen.ServiceReportText(eq.ServiceLogs)
	if historical == "" {
		historical = "No historical data available."
	}

	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	result, err := llmgen.SuggestMaintenanceSchedule(ctx, s.completer, llmgen.MaintenanceScheduleRequest{
		EquipmentType:             fmt.Sprintf("%s (%s)", eq.Name, eq.Model),
		OperationalHours:          eq.OperationalHours,
		FailureRate:               eq.FailureRate,
		EnvironmentalFactors:      params.EnvironmentalFactors,
		HistoricalMaintenanceData: historical,
	})
	if err != nil {
		slog.Error("maintenance schedule generation failed", "equipment_id", eq.Id, "error", err)
		http.Error(w, "maintenance schedule generation failed", http.StatusBadGateway)
		return
	}

	utils.WriteJsonResponse(w, result)
}

type serviceReportSummaryParams struct {
	EquipmentId string `json:"equipment_id"`
}

func (s *GenerationService) ServiceReportSummary(w http.ResponseWriter, r *http.Request) {
	if !s.acquire(w) {
		return
	}
	defer s.inFlight.Store(false)

	var params serviceReportSummaryParams
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	eq, err := s.store.Get(params.EquipmentId)
	if err != nil {
		http.Error(w, fmt.Sprintf("error summarizing service reports: %v", err), notFoundCode(err))
		return
	}

	reports := llmgen.ServiceReportText(eq.ServiceLogs)
	if reports == "" {
		http.Error(w, "no service logs to summarize", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	result, err := llmgen.SummarizeServiceReports(ctx, s.completer, llmgen.ServiceReportSummaryRequest{ServiceReports: reports})
	if err != nil {
		slog.Error("service report summarization failed", "equipment_id", eq.Id, "error", err)
		http.Error(w, "service report summarization failed", http.StatusBadGateway)
		return
	}

	utils.WriteJsonResponse(w, result)
}
