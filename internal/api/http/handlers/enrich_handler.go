package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/department-enricher/internal/api/dto"
	"github.com/spec-kit/department-enricher/internal/auth"
	"github.com/spec-kit/department-enricher/internal/domain"
	"github.com/spec-kit/department-enricher/internal/service"
	apperrors "github.com/spec-kit/department-enricher/pkg/util/errorutil"
)

// EnrichHandler exposes batch enrichment and run history.
type EnrichHandler struct {
	service *service.EnrichmentService
}

// NewEnrichHandler constructs handler.
func NewEnrichHandler(enrichmentService *service.EnrichmentService) *EnrichHandler {
	return &EnrichHandler{service: enrichmentService}
}

// Enrich POST /v1/enrich.
func (h *EnrichHandler) Enrich(c *fiber.Ctx) error {
	var req dto.EnrichRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Documents == nil {
		return apperrors.NewValidationError("documents required", nil)
	}

	input := service.EnrichInput{
		KeyName:   req.KeyName,
		Policy:    req.OnError,
		Documents: req.Documents,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		input.ClientID = principal.ClientID
	}

	res, err := h.service.Enrich(c.UserContext(), input)
	if err != nil {
		return err
	}

	skipped := make([]dto.SkippedDocument, 0, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped = append(skipped, dto.SkippedDocument(s))
	}
	return c.JSON(fiber.Map{"data": dto.EnrichResponse{
		RunID:        res.RunID,
		Documents:    res.Documents,
		Skipped:      skipped,
		UnknownCodes: res.UnknownCodes,
	}})
}

// ListRuns GET /v1/runs.
func (h *EnrichHandler) ListRuns(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	items := make([]dto.RunSummary, 0, len(runs))
	for i := range runs {
		items = append(items, runSummary(&runs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListUnknownCodes GET /v1/unknown-codes.
func (h *EnrichHandler) ListUnknownCodes(c *fiber.Ctx) error {
	codes, err := h.service.UnknownCodes(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	if codes == nil {
		codes = []domain.UnknownCodeCount{}
	}
	return c.JSON(fiber.Map{"data": codes})
}

func runSummary(run *domain.EnrichmentRun) dto.RunSummary {
	return dto.RunSummary{
		ID:            run.ID,
		KeyName:       run.KeyName,
		Policy:        run.Policy,
		Status:        run.Status,
		DocumentCount: run.DocumentCount,
		EnrichedCount: run.EnrichedCount,
		SkippedCount:  run.SkippedCount,
		UnknownCount:  run.UnknownCount,
		Error:         run.Error,
		CreatedAt:     run.CreatedAt,
	}
}
