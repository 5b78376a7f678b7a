package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/protocol"
	"github.com/flowcrm/aisummary/pkg/registry"
	"github.com/flowcrm/aisummary/pkg/services"
)

// ConfigurationChecker reports whether the completion client has credentials.
type ConfigurationChecker interface {
	Configured() bool
}

type APIHandlers struct {
	stepExecution *services.StepExecution
	registry      *registry.Registry
	validator     *validator.Validate
	summary       ConfigurationChecker
}

func NewAPIHandlers(
	stepExecution *services.StepExecution,
	registry *registry.Registry,
	validator *validator.Validate,
	summary ConfigurationChecker,
) *APIHandlers {
	return &APIHandlers{
		stepExecution: stepExecution,
		registry:      registry,
		validator:     validator,
		summary:       summary,
	}
}

func actionType(c fiber.Ctx) models.ActionType {
	return models.ActionType(strings.ToUpper(c.Params("type")))
}

func toActionResponse(factory protocol.ActionFactory) ActionResponse {
	return ActionResponse{
		Type:        factory.Type(),
		Name:        factory.Name(),
		Description: factory.Description(),
		Icon:        factory.Icon(),
		Schema:      factory.Schema(),
	}
}

func (h *APIHandlers) ExecuteStep(c fiber.Ctx) error {
	var req ExecuteStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	execution, err := h.stepExecution.Execute(c.Context(), actionType(c), req.ActionInput())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ExecuteStepResponse{
		ExecutionID: execution.ID,
		Result:      execution.Result,
	})
}

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Execution ID is required")
	}

	execution, err := h.stepExecution.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) GetActions(c fiber.Ctx) error {
	factories := h.registry.Factories()

	actions := make([]ActionResponse, 0, len(factories))
	for _, factory := range factories {
		actions = append(actions, toActionResponse(factory))
	}

	return c.JSON(actions)
}

func (h *APIHandlers) GetActionSchema(c fiber.Ctx) error {
	factory, err := h.registry.Factory(actionType(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(factory.Schema())
}

func (h *APIHandlers) ValidateActionConfig(c fiber.Ctx) error {
	var config map[string]any
	if err := c.Bind().JSON(&config); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.registry.ValidateConfig(actionType(c), config); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetAiSummaryModels(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"models":  models.AiSummaryModelOptions,
		"default": models.DefaultAiSummaryModel,
	})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	storeCheck, storeOk := h.stepExecution.HealthCheck(c.Context())

	registryOk := len(h.registry.Factories()) > 0
	registryCheck := "Registry has no actions"
	if registryOk {
		registryCheck = "Registry is healthy"
	}

	summaryCheck := "OPENAI_API_KEY is not set"
	if h.summary != nil && h.summary.Configured() {
		summaryCheck = "Completion client is configured"
	}

	status := "unhealthy"
	message := "AI Summary API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if storeOk && registryOk {
		status = "healthy"
		message = "AI Summary API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":     registryCheck,
			"result_store": storeCheck,
			"ai_summary":   summaryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// Routes mounts every endpoint on app.
func (h *APIHandlers) Routes(app *fiber.App) {
	a := app.Group("/actions")
	a.Get("/", h.GetActions)
	a.Get("/:type/schema", h.GetActionSchema)
	a.Post("/:type/validate", h.ValidateActionConfig)
	a.Post("/:type/execute", h.ExecuteStep)

	app.Get("/executions/:id", h.GetExecution)
	app.Get("/ai-summary/models", h.GetAiSummaryModels)
	app.Get("/health", h.HealthCheck)
}
