package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/formwright/formwright/pkg/models"
)

// WorkflowRepository handles workflow-related database operations.
type WorkflowRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(db *sql.DB, logger *slog.Logger) *WorkflowRepository {
	return &WorkflowRepository{db: db, logger: logger}
}

// GetAll returns all workflow graphs from the database.
func (r *WorkflowRepository) GetAll(ctx context.Context) ([]*models.FlowGraph, error) {
	query := `
		SELECT
			id
		  , name
		  , description
		  , nodes
		  , edges
		  , variables
		  , owner
		  , created_at
		  , updated_at
		FROM workflows
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	graphs := make([]*models.FlowGraph, 0)

	for rows.Next() {
		graph, err := r.scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}

		graphs = append(graphs, graph)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflows: %w", err)
	}

	return graphs, nil
}

// GetByID returns a workflow graph by its ID, nil when absent.
func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.FlowGraph, error) {
	query := `
		SELECT
			id
		  , name
		  , description
		  , nodes
		  , edges
		  , variables
		  , owner
		  , created_at
		  , updated_at
		FROM workflows
		WHERE id = $1 AND deleted_at IS NULL
	`

	graph, err := r.scanWorkflow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan workflow: %w", err)
	}

	return graph, nil
}

// Save upserts a workflow graph, storing nodes and edges as JSONB.
func (r *WorkflowRepository) Save(ctx context.Context, graph *models.FlowGraph) error {
	now := time.Now().UTC()

	if graph.CreatedAt.IsZero() {
		graph.CreatedAt = now
	}

	graph.UpdatedAt = now

	if graph.ID == "" {
		graph.ID = uuid.New().String()
	}

	nodes, err := json.Marshal(graph.Nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}

	edges, err := json.Marshal(graph.Edges)
	if err != nil {
		return fmt.Errorf("failed to marshal edges: %w", err)
	}

	variables, err := json.Marshal(graph.Variables)
	if err != nil {
		return fmt.Errorf("failed to marshal variables: %w", err)
	}

	query := `
		INSERT INTO workflows (id, name, description, nodes, edges, variables, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			nodes = EXCLUDED.nodes,
			edges = EXCLUDED.edges,
			variables = EXCLUDED.variables,
			owner = EXCLUDED.owner,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		graph.ID, graph.Name, graph.Description,
		nodes, edges, variables, graph.Owner,
		graph.CreatedAt, graph.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save workflow %s: %w", graph.ID, err)
	}

	return nil
}

// Delete soft deletes a workflow by setting the deleted_at timestamp.
func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE workflows SET deleted_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	return nil
}

func (r *WorkflowRepository) scanWorkflow(row rowScanner) (*models.FlowGraph, error) {
	var (
		graph       models.FlowGraph
		description sql.NullString
		owner       sql.NullString
		nodes       []byte
		edges       []byte
		variables   []byte
	)

	err := row.Scan(
		&graph.ID, &graph.Name, &description,
		&nodes, &edges, &variables, &owner,
		&graph.CreatedAt, &graph.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	graph.Description = description.String
	graph.Owner = owner.String

	if err := json.Unmarshal(nodes, &graph.Nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}

	if err := json.Unmarshal(edges, &graph.Edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal edges: %w", err)
	}

	if err := json.Unmarshal(variables, &graph.Variables); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variables: %w", err)
	}

	return &graph, nil
}
