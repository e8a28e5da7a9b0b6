package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwright/formwright/pkg/models"
)

func TestWorkflowRepository_SaveAndGetByID(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	graph := &models.FlowGraph{
		ID:   "flow-1",
		Name: "On submit",
		Nodes: []*models.FlowNode{
			{ID: "start-1", Type: models.NodeTypeStart},
			{ID: "cond-1", Type: models.NodeTypeCondition, Config: map[string]any{
				"field_id": "age", "operator": "greaterThan", "value": 18,
			}},
		},
		Edges: []*models.FlowEdge{
			{ID: "e1", Source: "start-1", Target: "cond-1"},
		},
	}

	require.NoError(t, repo.Save(ctx, graph))

	loaded, err := repo.GetByID(ctx, "flow-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "On submit", loaded.Name)
	require.Len(t, loaded.Nodes, 2)
	assert.Equal(t, models.NodeTypeCondition, loaded.Nodes[1].Type)
	require.NotNil(t, loaded.StartNode())
	assert.Equal(t, "start-1", loaded.StartNode().ID)
}

func TestWorkflowRepository_GetByID_Missing(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())

	graph, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, graph)
}

func TestWorkflowRepository_GetAll(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.FlowGraph{ID: "flow-1", Name: "A"}))
	require.NoError(t, repo.Save(ctx, &models.FlowGraph{ID: "flow-2", Name: "B"}))

	graphs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, graphs, 2)
}

func TestWorkflowRepository_Delete(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.FlowGraph{ID: "flow-1", Name: "A"}))
	require.NoError(t, repo.Delete(ctx, "flow-1"))

	graph, err := repo.GetByID(ctx, "flow-1")
	require.NoError(t, err)
	assert.Nil(t, graph)

	assert.NoError(t, repo.Delete(ctx, "flow-1"))
}
