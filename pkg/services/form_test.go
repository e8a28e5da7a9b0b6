package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/formwright/formwright/pkg/elements"
	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/otelhelper"
	"github.com/formwright/formwright/pkg/persistence"
	"github.com/formwright/formwright/pkg/persistence/file"
	"github.com/formwright/formwright/pkg/registry"
)

func newFormService(t *testing.T) *Form {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultNodes(nil)

	return NewForm(file.NewPersistence(t.TempDir()), nil, reg, logger)
}

func createTestForm(t *testing.T, svc *Form) *models.Form {
	t.Helper()

	form, err := svc.CreateForm(context.Background(), CreateFormRequest{Name: "Registration", Owner: "ada"})
	require.NoError(t, err)

	return form
}

func TestFormService_CreateForm(t *testing.T) {
	svc := newFormService(t)

	form := createTestForm(t, svc)

	assert.NotEmpty(t, form.ID)
	assert.Equal(t, models.FormStatusDraft, form.Status)
	require.Len(t, form.Pages, 1)
	assert.Equal(t, "Page 1", form.Pages[0].Name)
	assert.NotNil(t, form.Elements[form.Pages[0].ID])
}

func TestFormService_CreateForm_NameRequired(t *testing.T) {
	svc := newFormService(t)

	_, err := svc.CreateForm(context.Background(), CreateFormRequest{Name: "  "})

	assert.ErrorIs(t, err, ErrFormNameRequired)
	assert.True(t, IsValidationError(err))
}

func TestFormService_GetForm_NotFound(t *testing.T) {
	svc := newFormService(t)

	_, err := svc.GetForm(context.Background(), "missing")

	assert.True(t, persistence.IsFormNotFound(err))
}

func TestFormService_UpdateAndDeleteForm(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)

	name := "Onboarding"
	updated, err := svc.UpdateForm(ctx, form.ID, UpdateFormRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Onboarding", updated.Name)

	require.NoError(t, svc.DeleteForm(ctx, form.ID))

	_, err = svc.GetForm(ctx, form.ID)
	assert.True(t, persistence.IsFormNotFound(err))
}

func TestFormService_AddElement_PageRoot(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	el, err := svc.AddElement(ctx, AddElementRequest{
		FormID:      form.ID,
		PageID:      pageID,
		ElementType: models.ElementTypeEmailInput,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, el.ID)
	assert.Equal(t, models.ElementTypeEmailInput, el.Type)

	loaded, err := svc.GetForm(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Elements[pageID], 1)
	assert.Equal(t, el.ID, loaded.Elements[pageID][0].ID)
}

func TestFormService_AddElement_IntoSection(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	section, err := svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeSection,
	})
	require.NoError(t, err)

	child, err := svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: pageID,
		ElementType: models.ElementTypeTextInput,
		ContainerID: section.ID,
	})
	require.NoError(t, err)

	loaded, err := svc.GetForm(ctx, form.ID)
	require.NoError(t, err)

	found := elements.FindByID(loaded.Elements[pageID], child.ID)
	require.NotNil(t, found)

	parent := elements.FindByID(loaded.Elements[pageID], section.ID)
	require.Len(t, parent.Children, 1)
}

func TestFormService_AddElement_Errors(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)

	_, err := svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: form.Pages[0].ID, ElementType: "hologram",
	})
	assert.ErrorIs(t, err, ErrUnknownElementTag)

	_, err = svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: "nope", ElementType: models.ElementTypeTextInput,
	})
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: form.Pages[0].ID,
		ElementType: models.ElementTypeTextInput,
		ContainerID: "ghost",
	})
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestFormService_UpdateAndDeleteElement(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	el, err := svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeTextInput,
	})
	require.NoError(t, err)

	label := "Company"
	required := true

	updated, err := svc.UpdateElement(ctx, form.ID, el.ID, elements.Update{Label: &label, Required: &required})
	require.NoError(t, err)
	assert.Equal(t, "Company", updated.Label)
	assert.True(t, updated.Required)

	require.NoError(t, svc.DeleteElement(ctx, form.ID, el.ID))

	loaded, err := svc.GetForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Elements[pageID])

	assert.ErrorIs(t, svc.DeleteElement(ctx, form.ID, el.ID), ErrElementNotFound)
}

func TestFormService_GridColumns(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	grid, err := svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeGridLayout,
	})
	require.NoError(t, err)
	require.Len(t, grid.GridItems, 2)

	grown, err := svc.AddGridColumn(ctx, form.ID, grid.ID)
	require.NoError(t, err)
	require.Len(t, grown.GridItems, 3)

	total := 0
	for _, item := range grown.GridItems {
		total += item.Size
	}

	assert.Equal(t, 12, total)

	shrunk, err := svc.RemoveGridColumn(ctx, form.ID, grid.ID, 0)
	require.NoError(t, err)
	assert.Len(t, shrunk.GridItems, 2)
}

func TestFormService_GridColumns_NoOpSkipsSave(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	grid, err := svc.AddElement(ctx, AddElementRequest{
		FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeGridLayout,
	})
	require.NoError(t, err)

	before, err := svc.GetForm(ctx, form.ID)
	require.NoError(t, err)

	// An out-of-range index leaves the grid untouched and must not persist
	// a new revision of the form.
	unchanged, err := svc.RemoveGridColumn(ctx, form.ID, grid.ID, 99)
	require.NoError(t, err)
	assert.Len(t, unchanged.GridItems, len(grid.GridItems))

	after, err := svc.GetForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestFormService_SetRulesAndEvaluate(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)

	ruleList := []*models.Rule{{
		Name:       "hide comments unless subscribed",
		Enabled:    true,
		Combinator: models.CombinatorAnd,
		Conditions: []models.Condition{{FieldID: "subscribed", Operator: models.OperatorEquals, Value: false}},
		Actions:    []models.RuleAction{{Type: models.RuleActionHide, TargetID: "el-comments"}},
	}}

	require.NoError(t, svc.SetRules(ctx, form.ID, ruleList))

	actions, err := svc.EvaluateRules(ctx, form.ID, map[string]any{"subscribed": false})
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, models.RuleActionHide, actions[0].Type)

	actions, err = svc.EvaluateRules(ctx, form.ID, map[string]any{"subscribed": true})
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestFormService_SetRules_Validation(t *testing.T) {
	svc := newFormService(t)

	form := createTestForm(t, svc)

	err := svc.SetRules(context.Background(), form.ID, []*models.Rule{{
		Name:    "broken",
		Actions: []models.RuleAction{{Type: models.RuleActionShow}},
	}})

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFormService_SetWorkflow_Validation(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)

	// No start node.
	err := svc.SetWorkflow(ctx, form.ID, &models.FlowGraph{
		Name:  "broken",
		Nodes: []*models.FlowNode{{ID: "v1", Type: models.NodeTypeVariable, Config: map[string]any{"variable_name": "x"}}},
	})
	assert.ErrorIs(t, err, ErrInvalidGraph)

	assert.ErrorIs(t, svc.SetWorkflow(ctx, form.ID, nil), ErrGraphNil)
}

func TestFormService_ProjectFields(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	_, err := svc.AddElement(ctx, AddElementRequest{FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeHeading})
	require.NoError(t, err)

	email, err := svc.AddElement(ctx, AddElementRequest{FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeEmailInput})
	require.NoError(t, err)

	proj, err := svc.ProjectFields(ctx, form.ID)
	require.NoError(t, err)

	// Headings project no field, inputs exactly one.
	require.Len(t, proj.Fields, 1)
	assert.Equal(t, email.ID, proj.Fields[0].ID)
}

func TestFormService_Submit_RequiresPublished(t *testing.T) {
	svc := newFormService(t)

	form := createTestForm(t, svc)

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{})

	assert.ErrorIs(t, err, ErrFormNotPublished)
	assert.True(t, IsConflictError(err))
}

func TestFormService_Submit_RequiredFieldMissing(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	el, err := svc.AddElement(ctx, AddElementRequest{FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeEmailInput})
	require.NoError(t, err)

	required := true
	_, err = svc.UpdateElement(ctx, form.ID, el.ID, elements.Update{Required: &required})
	require.NoError(t, err)

	_, err = svc.PublishForm(ctx, form.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, form.ID, map[string]any{"unrelated": 1})
	assert.ErrorIs(t, err, ErrRequiredFieldMissing)
}

func TestFormService_Submit_HiddenRequiredFieldIsExempt(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	pageID := form.Pages[0].ID

	el, err := svc.AddElement(ctx, AddElementRequest{FormID: form.ID, PageID: pageID, ElementType: models.ElementTypeTextInput})
	require.NoError(t, err)

	required := true
	_, err = svc.UpdateElement(ctx, form.ID, el.ID, elements.Update{Required: &required})
	require.NoError(t, err)

	require.NoError(t, svc.SetRules(ctx, form.ID, []*models.Rule{{
		Name:       "hide when opted out",
		Enabled:    true,
		Combinator: models.CombinatorAnd,
		Conditions: []models.Condition{{FieldID: "opt_out", Operator: models.OperatorEquals, Value: true}},
		Actions:    []models.RuleAction{{Type: models.RuleActionHide, TargetID: el.ID}},
	}}))

	_, err = svc.PublishForm(ctx, form.ID)
	require.NoError(t, err)

	result, err := svc.Submit(ctx, form.ID, map[string]any{"opt_out": true})
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, models.RuleActionHide, result.Actions[0].Type)
}

func TestFormService_Submit_RunsWorkflow(t *testing.T) {
	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)

	require.NoError(t, svc.SetWorkflow(ctx, form.ID, &models.FlowGraph{
		Name: "on submit",
		Nodes: []*models.FlowNode{
			{ID: "start-1", Type: models.NodeTypeStart},
			{ID: "var-1", Type: models.NodeTypeVariable, Config: map[string]any{
				"variable_name": "plan", "source": "field", "field_id": "plan",
			}},
		},
		Edges: []*models.FlowEdge{{ID: "e1", Source: "start-1", Target: "var-1"}},
	}))

	_, err := svc.PublishForm(ctx, form.ID)
	require.NoError(t, err)

	result, err := svc.Submit(ctx, form.ID, map[string]any{"plan": "pro"})
	require.NoError(t, err)
	require.NotNil(t, result.Execution)
	assert.True(t, result.Execution.Success)
	assert.Equal(t, []string{"start-1", "var-1"}, result.Execution.ExecutedNodes)
	assert.Equal(t, "pro", result.Execution.Context.Variables["plan"])
}

func TestFormService_Submit_TracesWithFormID(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	svc := newFormService(t)
	ctx := context.Background()

	form := createTestForm(t, svc)
	_, err := svc.PublishForm(ctx, form.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, form.ID, map[string]any{})
	require.NoError(t, err)

	var submitSpan *tracetest.SpanStub

	for _, span := range exporter.GetSpans() {
		if span.Name == "form.submit" {
			submitSpan = &span

			break
		}
	}

	require.NotNil(t, submitSpan, "expected a form.submit span")
	assert.Contains(t, submitSpan.Attributes,
		attribute.String(otelhelper.FormIDKey, form.ID))
}
