package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/formwright/formwright/pkg/elements"
	"github.com/formwright/formwright/pkg/eventbus"
	"github.com/formwright/formwright/pkg/events"
	"github.com/formwright/formwright/pkg/flow"
	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/otelhelper"
	"github.com/formwright/formwright/pkg/persistence"
	"github.com/formwright/formwright/pkg/projection"
	"github.com/formwright/formwright/pkg/registry"
	"github.com/formwright/formwright/pkg/rules"
)

// Form is the form service: CRUD, structural element editing, field
// projection, rule evaluation and submission handling.
type Form struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	registry    *registry.Registry
	catalog     *elements.Catalog
	logger      *slog.Logger
}

// NewForm creates a new form service.
func NewForm(p persistence.Persistence, bus eventbus.EventBus, reg *registry.Registry, logger *slog.Logger) *Form {
	return &Form{
		persistence: p,
		eventBus:    bus,
		registry:    reg,
		catalog:     elements.NewCatalog(elements.UUIDGenerator),
		logger:      logger,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Form) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListFormsRequest contains options for listing forms.
type ListFormsRequest struct {
	Limit  int
	Offset int

	OwnerID string
	Status  *models.FormStatus

	SortBy    string
	SortOrder string
}

// ListFormsResponse contains the result of listing forms.
type ListFormsResponse struct {
	Forms       []*models.Form `json:"forms"`
	TotalCount  int64          `json:"total_count"`
	HasNextPage bool           `json:"has_next_page"`
}

// ListForms retrieves forms with filtering, sorting, and pagination.
func (s *Form) ListForms(ctx context.Context, req ListFormsRequest) (*ListFormsResponse, error) {
	if err := s.validateListFormsRequest(&req); err != nil {
		return nil, err
	}

	result, err := s.persistence.FormRepository().List(ctx, persistence.ListFormsOptions{
		Limit:     req.Limit,
		Offset:    req.Offset,
		OwnerID:   req.OwnerID,
		Status:    req.Status,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	return &ListFormsResponse{
		Forms:       result.Forms,
		TotalCount:  result.TotalCount,
		HasNextPage: result.HasNextPage,
	}, nil
}

func (s *Form) validateListFormsRequest(req *ListFormsRequest) error {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	if req.Offset < 0 {
		req.Offset = 0
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	allowedSorts := []string{"created_at", "updated_at", "name"}
	if !slices.Contains(allowedSorts, req.SortBy) {
		return NewValidationError(
			"validateListFormsRequest",
			"INVALID_SORT_FIELD",
			fmt.Sprintf("invalid sort field '%s', allowed: %s", req.SortBy, strings.Join(allowedSorts, ", ")),
			ErrInvalidSortField,
		)
	}

	if req.SortOrder != "asc" && req.SortOrder != "desc" {
		return NewValidationError(
			"validateListFormsRequest",
			"INVALID_SORT_ORDER",
			fmt.Sprintf("invalid sort order '%s', allowed: asc, desc", req.SortOrder),
			ErrInvalidSortOrder,
		)
	}

	return nil
}

// GetForm returns a form by id.
func (s *Form) GetForm(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.persistence.FormRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get form %s: %w", id, err)
	}

	if form == nil {
		return nil, persistence.NewFormError("GetForm", id, persistence.ErrFormNotFound)
	}

	return form, nil
}

// CreateFormRequest carries the data for a new form.
type CreateFormRequest struct {
	Name        string `json:"name"        validate:"required,min=3"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
}

// CreateForm creates a draft form with one empty page.
func (s *Form) CreateForm(ctx context.Context, req CreateFormRequest) (*models.Form, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrFormNameRequired
	}

	pageID := uuid.New().String()

	form := &models.Form{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Status:      models.FormStatusDraft,
		Owner:       req.Owner,
		Pages:       []*models.Page{{ID: pageID, Name: "Page 1"}},
		Elements:    map[string][]*models.Element{pageID: {}},
	}

	if err := s.persistence.FormRepository().Save(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}

	s.publish(ctx, form.ID, events.FormCreated{
		BaseEvent: s.baseEvent(events.FormCreatedEvent),
		FormID:    form.ID,
		Owner:     form.Owner,
	})

	return form, nil
}

// UpdateFormRequest carries partial form metadata updates.
type UpdateFormRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateForm updates form metadata.
func (s *Form) UpdateForm(ctx context.Context, id string, req UpdateFormRequest) (*models.Form, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrFormNameRequired
		}

		form.Name = *req.Name
	}

	if req.Description != nil {
		form.Description = *req.Description
	}

	if err := s.saveAndNotify(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

// DeleteForm removes a form.
func (s *Form) DeleteForm(ctx context.Context, id string) error {
	if _, err := s.GetForm(ctx, id); err != nil {
		return err
	}

	if err := s.persistence.FormRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete form %s: %w", id, err)
	}

	s.publish(ctx, id, events.FormDeleted{
		BaseEvent: s.baseEvent(events.FormDeletedEvent),
		FormID:    id,
	})

	return nil
}

// PublishForm moves a form to published so it accepts submissions. An
// attached workflow graph is validated first.
func (s *Form) PublishForm(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}

	if form.Workflow != nil {
		if err := s.registry.ValidateGraph(form.Workflow); err != nil {
			return nil, NewValidationError("PublishForm", "INVALID_GRAPH", err.Error(), ErrInvalidGraph)
		}
	}

	form.Status = models.FormStatusPublished

	if err := s.persistence.FormRepository().Save(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to save form %s: %w", id, err)
	}

	s.publish(ctx, id, events.FormPublished{
		BaseEvent: s.baseEvent(events.FormPublishedEvent),
		FormID:    id,
	})

	return form, nil
}

// AddPage appends a new page to the form.
func (s *Form) AddPage(ctx context.Context, formID, name string) (*models.Page, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = fmt.Sprintf("Page %d", len(form.Pages)+1)
	}

	page := &models.Page{ID: uuid.New().String(), Name: name}
	form.Pages = append(form.Pages, page)

	if form.Elements == nil {
		form.Elements = make(map[string][]*models.Element)
	}

	form.Elements[page.ID] = []*models.Element{}

	if err := s.saveAndNotify(ctx, form); err != nil {
		return nil, err
	}

	return page, nil
}

// DeletePage removes a page and every element on it.
func (s *Form) DeletePage(ctx context.Context, formID, pageID string) error {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return err
	}

	index := slices.IndexFunc(form.Pages, func(p *models.Page) bool { return p.ID == pageID })
	if index < 0 {
		return ErrPageNotFound
	}

	form.Pages = slices.Delete(form.Pages, index, index+1)
	delete(form.Elements, pageID)

	return s.saveAndNotify(ctx, form)
}

// AddElementRequest places a new catalog element on a page. An empty
// ContainerID appends at the page root; Column selects the grid column when
// the container is a grid layout.
type AddElementRequest struct {
	FormID      string
	PageID      string
	ElementType models.ElementType
	ContainerID string
	Column      *int
	Index       *int
}

// AddElement instantiates a catalog element and inserts it into the page tree.
func (s *Form) AddElement(ctx context.Context, req AddElementRequest) (*models.Element, error) {
	if !elements.KnownType(req.ElementType) {
		return nil, NewValidationError("AddElement", "UNKNOWN_ELEMENT_TYPE",
			fmt.Sprintf("unknown element type %q", req.ElementType), ErrUnknownElementTag)
	}

	form, err := s.GetForm(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	tree, ok := form.Elements[req.PageID]
	if !ok {
		return nil, ErrPageNotFound
	}

	el := s.catalog.New(req.ElementType)

	if req.ContainerID == "" {
		if req.Index != nil && *req.Index >= 0 && *req.Index <= len(tree) {
			tree = slices.Insert(slices.Clone(tree), *req.Index, el)
		} else {
			tree = append(slices.Clone(tree), el)
		}
	} else {
		tree, ok = elements.InsertIntoContainer(tree, req.ContainerID, el, elements.InsertOptions{
			Column: req.Column,
			Index:  req.Index,
		})
		if !ok {
			return nil, ErrElementNotFound
		}
	}

	form.Elements[req.PageID] = tree

	if err := s.saveAndNotify(ctx, form); err != nil {
		return nil, err
	}

	return el, nil
}

// UpdateElement applies a partial update to the element anywhere in the form.
func (s *Form) UpdateElement(ctx context.Context, formID, elementID string, update elements.Update) (*models.Element, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	for pageID, tree := range form.Elements {
		updated, found := elements.UpdateByID(tree, elementID, update)
		if found {
			form.Elements[pageID] = updated

			if err := s.saveAndNotify(ctx, form); err != nil {
				return nil, err
			}

			return elements.FindByID(updated, elementID), nil
		}
	}

	return nil, ErrElementNotFound
}

// DeleteElement removes the element, and its whole subtree, from the form.
func (s *Form) DeleteElement(ctx context.Context, formID, elementID string) error {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return err
	}

	for pageID, tree := range form.Elements {
		updated, found := elements.DeleteByID(tree, elementID)
		if found {
			form.Elements[pageID] = updated

			return s.saveAndNotify(ctx, form)
		}
	}

	return ErrElementNotFound
}

// ReorderElementRequest moves a sibling within one child list. An empty
// ContainerID targets the page root list.
type ReorderElementRequest struct {
	FormID      string
	PageID      string
	ContainerID string
	Column      int
	Source      int
	Target      int
}

// ReorderElement moves an element among its siblings.
func (s *Form) ReorderElement(ctx context.Context, req ReorderElementRequest) error {
	form, err := s.GetForm(ctx, req.FormID)
	if err != nil {
		return err
	}

	tree, ok := form.Elements[req.PageID]
	if !ok {
		return ErrPageNotFound
	}

	if req.ContainerID == "" {
		form.Elements[req.PageID] = elements.Reorder(tree, req.Source, req.Target)
	} else {
		updated, found := elements.ReorderIn(tree, req.ContainerID, req.Column, req.Source, req.Target)
		if !found {
			return ErrElementNotFound
		}

		form.Elements[req.PageID] = updated
	}

	return s.saveAndNotify(ctx, form)
}

// AddGridColumn appends a column to a grid layout, rebalancing sizes.
func (s *Form) AddGridColumn(ctx context.Context, formID, gridID string) (*models.Element, error) {
	return s.transformGrid(ctx, formID, gridID, func(grid *models.Element) *models.Element {
		return elements.AddColumn(grid)
	})
}

// RemoveGridColumn removes the column at index, dropping its children.
func (s *Form) RemoveGridColumn(ctx context.Context, formID, gridID string, index int) (*models.Element, error) {
	return s.transformGrid(ctx, formID, gridID, func(grid *models.Element) *models.Element {
		return elements.RemoveColumn(grid, index)
	})
}

func (s *Form) transformGrid(ctx context.Context, formID, gridID string, transform func(*models.Element) *models.Element) (*models.Element, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	for pageID, tree := range form.Elements {
		grid := elements.FindByID(tree, gridID)
		if grid == nil {
			continue
		}

		transformed := transform(grid)
		if transformed == grid {
			// No-op transform, nothing changed and nothing to persist.
			return grid, nil
		}

		updated, _ := elements.ReplaceByID(tree, gridID, transformed)
		form.Elements[pageID] = updated

		if err := s.saveAndNotify(ctx, form); err != nil {
			return nil, err
		}

		return transformed, nil
	}

	return nil, ErrElementNotFound
}

// SetRules replaces the form's rule list.
func (s *Form) SetRules(ctx context.Context, formID string, ruleList []*models.Rule) error {
	for _, rule := range ruleList {
		if rule.ID == "" {
			rule.ID = uuid.New().String()
		}

		for _, cond := range rule.Conditions {
			if cond.FieldID == "" {
				return NewValidationError("SetRules", "INVALID_RULE",
					fmt.Sprintf("rule %s has a condition without a field", rule.ID), ErrInvalidRequest)
			}
		}

		for _, action := range rule.Actions {
			if action.TargetID == "" {
				return NewValidationError("SetRules", "INVALID_RULE",
					fmt.Sprintf("rule %s has an action without a target", rule.ID), ErrInvalidRequest)
			}
		}
	}

	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return err
	}

	form.Rules = ruleList

	return s.saveAndNotify(ctx, form)
}

// EvaluateRules evaluates the form's rules against submitted values and
// returns the resulting actions in rule order.
func (s *Form) EvaluateRules(ctx context.Context, formID string, values map[string]any) ([]models.RuleAction, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	return rules.EvaluateAll(form.Rules, values), nil
}

// SetWorkflow attaches a validated workflow graph to the form.
func (s *Form) SetWorkflow(ctx context.Context, formID string, graph *models.FlowGraph) error {
	if graph == nil {
		return ErrGraphNil
	}

	if err := s.registry.ValidateGraph(graph); err != nil {
		return NewValidationError("SetWorkflow", "INVALID_GRAPH", err.Error(), ErrInvalidGraph)
	}

	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return err
	}

	if graph.ID == "" {
		graph.ID = uuid.New().String()
	}

	form.Workflow = graph

	return s.saveAndNotify(ctx, form)
}

// ProjectFields returns the flat field view of the form.
func (s *Form) ProjectFields(ctx context.Context, formID string) (*projection.Projection, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	fields := projection.ToFields(form.Pages, form.Elements)

	return &fields, nil
}

// SubmitResult is the outcome of a form submission.
type SubmitResult struct {
	FormID    string                  `json:"form_id"`
	Actions   []models.RuleAction     `json:"actions,omitempty"`
	Execution *models.ExecutionResult `json:"execution,omitempty"`
}

// Submit accepts a submission for a published form: required fields are
// checked against the field projection, rules produce their actions, and the
// attached workflow graph, if any, runs to completion.
func (s *Form) Submit(ctx context.Context, formID string, data map[string]any) (*SubmitResult, error) {
	if data == nil {
		return nil, ErrSubmissionDataRequired
	}

	ctx, span := otelhelper.StartSpan(ctx,
		otel.GetTracerProvider().Tracer("services"),
		"form.submit",
		attribute.String(otelhelper.FormIDKey, formID),
	)
	defer span.End()

	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	if form.Status != models.FormStatusPublished {
		return nil, ErrFormNotPublished
	}

	actions := rules.EvaluateAll(form.Rules, data)

	if err := s.checkRequired(form, data, actions); err != nil {
		return nil, err
	}

	s.publish(ctx, formID, events.FormSubmitted{
		BaseEvent: s.baseEvent(events.FormSubmittedEvent),
		FormID:    formID,
		FormData:  data,
	})

	result := &SubmitResult{FormID: formID, Actions: actions}

	if form.Workflow != nil {
		engine := flow.NewEngine(form.Workflow, data, s.registry, s.logger, nil)

		s.publish(ctx, formID, events.WorkflowExecutionStarted{
			BaseEvent:   s.baseEvent(events.WorkflowExecutionStartedEvent),
			WorkflowID:  form.Workflow.ID,
			ExecutionID: engine.Context().ID,
			FormID:      formID,
		})

		execution := engine.Execute(ctx)
		result.Execution = execution

		s.publish(ctx, formID, events.WorkflowExecutionFinished{
			BaseEvent:     s.baseEvent(events.WorkflowExecutionFinishedEvent),
			WorkflowID:    form.Workflow.ID,
			ExecutionID:   execution.Context.ID,
			Success:       execution.Success,
			ExecutedNodes: execution.ExecutedNodes,
			Errors:        execution.Errors,
		})
	}

	return result, nil
}

// checkRequired rejects submissions missing a required field, unless a rule
// hid or disabled that field for this submission.
func (s *Form) checkRequired(form *models.Form, data map[string]any, actions []models.RuleAction) error {
	exempt := make(map[string]bool)

	for _, action := range actions {
		if action.Type == models.RuleActionHide || action.Type == models.RuleActionDisable {
			exempt[action.TargetID] = true
		}
	}

	fields := projection.ToFields(form.Pages, form.Elements)

	for _, field := range fields.Fields {
		if !field.Required || exempt[field.ID] {
			continue
		}

		value, ok := data[field.Name]
		if !ok || value == nil || value == "" {
			return NewValidationError("Submit", "REQUIRED_FIELD_MISSING",
				fmt.Sprintf("required field %q is missing", field.Name), ErrRequiredFieldMissing)
		}
	}

	return nil
}

func (s *Form) saveAndNotify(ctx context.Context, form *models.Form) error {
	if err := s.persistence.FormRepository().Save(ctx, form); err != nil {
		return fmt.Errorf("failed to save form %s: %w", form.ID, err)
	}

	s.publish(ctx, form.ID, events.FormUpdated{
		BaseEvent: s.baseEvent(events.FormUpdatedEvent),
		FormID:    form.ID,
	})

	return nil
}

func (s *Form) baseEvent(eventType events.EventType) events.BaseEvent {
	id := uuid.New().String()
	if s.eventBus != nil {
		id = s.eventBus.GenerateID()
	}

	return events.BaseEvent{
		ID:        id,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

func (s *Form) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}
