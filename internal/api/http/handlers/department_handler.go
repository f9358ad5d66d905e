package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/department-enricher/internal/service"
	apperrors "github.com/spec-kit/department-enricher/pkg/util/errorutil"
)

// DepartmentHandler serves the static department mapping.
type DepartmentHandler struct {
	service *service.EnrichmentService
}

// NewDepartmentHandler constructs handler.
func NewDepartmentHandler(enrichmentService *service.EnrichmentService) *DepartmentHandler {
	return &DepartmentHandler{service: enrichmentService}
}

// List GET /v1/departments.
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Departments()})
}

// Get GET /v1/departments/:code.
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	code, err := url.PathUnescape(c.Params("code"))
	if err != nil {
		return apperrors.NewValidationError("invalid code", nil)
	}
	dept, err := h.service.Department(code)
	if errors.Is(err, service.ErrDepartmentNotFound) {
		return apperrors.NewNotFound("department", map[string]any{"code": code})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dept})
}
