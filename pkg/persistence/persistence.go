// Package persistence provides the data storage abstraction for forms and
// workflow definitions.
package persistence

import (
	"context"

	"github.com/formwright/formwright/pkg/models"
)

// ListFormsOptions filters and pages the form listing.
type ListFormsOptions struct {
	OwnerID   string
	Status    *models.FormStatus
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// FormListResult is one page of forms plus pagination metadata.
type FormListResult struct {
	Forms       []*models.Form
	TotalCount  int64
	HasNextPage bool
}

// FormRepository stores form definitions. GetByID returns (nil, nil) when the
// form does not exist; callers translate that into ErrFormNotFound.
type FormRepository interface {
	List(ctx context.Context, opts ListFormsOptions) (*FormListResult, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
	Save(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id string) error
}

// WorkflowRepository stores workflow graph definitions, same nil-on-missing
// convention as FormRepository.
type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.FlowGraph, error)
	GetByID(ctx context.Context, id string) (*models.FlowGraph, error)
	Save(ctx context.Context, graph *models.FlowGraph) error
	Delete(ctx context.Context, id string) error
}

// Persistence aggregates the repositories behind one storage backend.
type Persistence interface {
	FormRepository() FormRepository
	WorkflowRepository() WorkflowRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
