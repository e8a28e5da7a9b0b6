// Package web provides HTTP handlers and REST API endpoints for form and
// workflow management.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/formwright/formwright/pkg/elements"
	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/registry"
	"github.com/formwright/formwright/pkg/services"
)

type APIHandlers struct {
	formService     *services.Form
	workflowService *services.Workflow
	validator       *validator.Validate
	registry        *registry.Registry
}

func NewAPIHandlers(
	formService *services.Form,
	workflowService *services.Workflow,
	validator *validator.Validate,
	registry *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		formService:     formService,
		workflowService: workflowService,
		validator:       validator,
		registry:        registry,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.formService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Formwright API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Formwright API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// GetElementTypes lists every element type available in the catalog.
func (h *APIHandlers) GetElementTypes(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": elements.KnownTypes()})
}

// GetNodeTypes lists every registered workflow node factory with its schema.
func (h *APIHandlers) GetNodeTypes(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"nodes": h.registry.Descriptors()})
}

func (h *APIHandlers) GetForms(c fiber.Ctx) error {
	req, err := h.parseListFormsRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.formService.ListForms(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"forms":         result.Forms,
		"total_count":   result.TotalCount,
		"has_next_page": result.HasNextPage,
		"pagination": fiber.Map{
			"limit":  req.Limit,
			"offset": req.Offset,
		},
	})
}

func (h *APIHandlers) parseListFormsRequest(c fiber.Ctx) (*services.ListFormsRequest, error) {
	req := &services.ListFormsRequest{}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}

		req.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, err
		}

		req.Offset = offset
	}

	req.OwnerID = c.Query("owner_id")

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.FormStatus(statusStr)
		req.Status = &status
	}

	req.SortBy = c.Query("sort_by")
	req.SortOrder = c.Query("sort_order")

	return req, nil
}

func (h *APIHandlers) GetForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	form, err := h.formService.GetForm(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(form)
}

func (h *APIHandlers) CreateForm(c fiber.Ctx) error {
	var req CreateFormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.formService.CreateForm(c.Context(), services.CreateFormRequest{
		Name:        req.Name,
		Description: req.Description,
		Owner:       req.Owner,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req UpdateFormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.formService.UpdateForm(c.Context(), id, services.UpdateFormRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	if err := h.formService.DeleteForm(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) PublishForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	published, err := h.formService.PublishForm(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(published)
}

func (h *APIHandlers) AddPage(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req AddPageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	page, err := h.formService.AddPage(c.Context(), id, req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(page)
}

func (h *APIHandlers) DeletePage(c fiber.Ctx) error {
	id := c.Params("id")
	pageID := c.Params("pageId")

	if id == "" || pageID == "" {
		return badRequest(c, "Form ID and page ID are required")
	}

	if err := h.formService.DeletePage(c.Context(), id, pageID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) AddElement(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req AddElementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	el, err := h.formService.AddElement(c.Context(), services.AddElementRequest{
		FormID:      id,
		PageID:      req.PageID,
		ElementType: models.ElementType(req.Type),
		ContainerID: req.ContainerID,
		Column:      req.Column,
		Index:       req.Index,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(el)
}

func (h *APIHandlers) UpdateElement(c fiber.Ctx) error {
	id := c.Params("id")
	elementID := c.Params("elementId")

	if id == "" || elementID == "" {
		return badRequest(c, "Form ID and element ID are required")
	}

	var req UpdateElementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	el, err := h.formService.UpdateElement(c.Context(), id, elementID, elements.Update{
		Label:       req.Label,
		FieldName:   req.FieldName,
		Placeholder: req.Placeholder,
		HelperText:  req.HelperText,
		Required:    req.Required,
		Width:       req.Width,
		Validation:  req.Validation,
		Options:     req.Options,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(el)
}

func (h *APIHandlers) DeleteElement(c fiber.Ctx) error {
	id := c.Params("id")
	elementID := c.Params("elementId")

	if id == "" || elementID == "" {
		return badRequest(c, "Form ID and element ID are required")
	}

	if err := h.formService.DeleteElement(c.Context(), id, elementID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ReorderElements(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req ReorderElementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.formService.ReorderElement(c.Context(), services.ReorderElementRequest{
		FormID:      id,
		PageID:      req.PageID,
		ContainerID: req.ContainerID,
		Column:      req.Column,
		Source:      req.Source,
		Target:      req.Target,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) AddGridColumn(c fiber.Ctx) error {
	id := c.Params("id")
	elementID := c.Params("elementId")

	if id == "" || elementID == "" {
		return badRequest(c, "Form ID and element ID are required")
	}

	grid, err := h.formService.AddGridColumn(c.Context(), id, elementID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(grid)
}

func (h *APIHandlers) RemoveGridColumn(c fiber.Ctx) error {
	id := c.Params("id")
	elementID := c.Params("elementId")

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "Column index must be an integer")
	}

	grid, err := h.formService.RemoveGridColumn(c.Context(), id, elementID, index)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(grid)
}

func (h *APIHandlers) SetRules(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req SetRulesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.formService.SetRules(c.Context(), id, req.Rules); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) EvaluateRules(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req EvaluateRulesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	actions, err := h.formService.EvaluateRules(c.Context(), id, req.Values)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"actions": actions})
}

func (h *APIHandlers) GetFields(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	projection, err := h.formService.ProjectFields(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(projection)
}

func (h *APIHandlers) SetFormWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var graph models.FlowGraph
	if err := c.Bind().JSON(&graph); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.formService.SetWorkflow(c.Context(), id, &graph); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) SubmitForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req SubmitFormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	result, err := h.formService.Submit(c.Context(), id, req.Data)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	graphs, err := h.workflowService.ListWorkflows(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"workflows": graphs})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	graph, err := h.workflowService.GetWorkflow(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(graph)
}

func (h *APIHandlers) SaveWorkflow(c fiber.Ctx) error {
	var req SaveWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	saved, err := h.workflowService.SaveWorkflow(c.Context(), &models.FlowGraph{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
		Nodes:       req.Nodes,
		Edges:       req.Edges,
		Variables:   req.Variables,
		Owner:       req.Owner,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.workflowService.DeleteWorkflow(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ExecuteWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	result, err := h.workflowService.Execute(c.Context(), id, req.FormData)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}
