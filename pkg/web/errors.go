package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/persistence"
	"github.com/flowcrm/aisummary/pkg/registry"
	"github.com/flowcrm/aisummary/pkg/services"
)

func problem(c fiber.Ctx, status int, problemType, detail string) error {
	body := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(problemType).
		WithDetail(detail)

	return c.Status(status).JSON(body)
}

func badRequest(c fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusBadRequest, "validation_error", detail)
}

func internalError(c fiber.Ctx, err error) error {
	body := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// handleServiceError maps executor, registry and store errors to problem responses.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case aisummary.IsStepNotFound(err):
		return problem(c, fiber.StatusNotFound, "step_not_found", err.Error())

	case aisummary.IsInvalidActionType(err):
		return problem(c, fiber.StatusBadRequest, "invalid_action_type", err.Error())

	case aisummary.IsValidationError(err), services.IsValidationError(err), registry.IsInvalidConfig(err):
		return badRequest(c, err.Error())

	case registry.IsActionNotRegistered(err):
		return problem(c, fiber.StatusNotFound, "action_not_found", err.Error())

	case aisummary.IsNotConfigured(err):
		return problem(c, fiber.StatusServiceUnavailable, "not_configured", err.Error())

	case aisummary.IsUpstreamError(err):
		return problem(c, fiber.StatusBadGateway, "upstream_error", err.Error())

	case persistence.IsExecutionNotFound(err):
		return problem(c, fiber.StatusNotFound, "execution_not_found", "execution not found")

	default:
		return internalError(c, err)
	}
}
