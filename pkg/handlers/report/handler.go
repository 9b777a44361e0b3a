package report

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Trujillofa/depotru-database-sub000/pkg/adapters"
	"github.com/Trujillofa/depotru-database-sub000/pkg/insights"
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Service is the slice of the reporting service the handler needs.
type Service interface {
	AnalyzeRecords(ctx context.Context, records []domain.RawRecord) (domain.Report, error)
	Latest(ctx context.Context) (domain.Report, bool)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type analyzeRequest struct {
	Records []domain.RawRecord `json:"records"`
}

// Analyze runs the engine over the records in the request body and returns
// the full report.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.svc.AnalyzeRecords(ctx, req.Records)
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.write(w, logger, report)
}

// Latest returns the most recent report computed by this process.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	report, ok := h.svc.Latest(ctx)
	if !ok {
		http.Error(w, "no report computed yet", http.StatusNotFound)
		return
	}

	h.write(w, logger, report)
}

func (h *Handler) write(w http.ResponseWriter, logger *zerolog.Logger, report domain.Report) {
	response := adapters.MapReportDomainToAPI(report)
	response.Recommendations = insights.Recommendations(report)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
	}
}
