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
	"github.com/formwright/formwright/pkg/persistence"
)

// FormRepository handles form-related database operations.
type FormRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFormRepository creates a new form repository.
func NewFormRepository(db *sql.DB, logger *slog.Logger) *FormRepository {
	return &FormRepository{db: db, logger: logger}
}

var allowedFormSorts = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// List returns paginated and filtered forms.
func (r *FormRepository) List(ctx context.Context, opts persistence.ListFormsOptions) (*persistence.FormListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	if !allowedFormSorts[opts.SortBy] {
		return nil, fmt.Errorf("%w: %s", persistence.ErrInvalidSortField, opts.SortBy)
	}

	order := "ASC"
	if opts.SortOrder == "desc" {
		order = "DESC"
	}

	query := `
		SELECT
			id
		  , name
		  , description
		  , status
		  , pages
		  , elements
		  , rules
		  , workflow
		  , owner
		  , created_at
		  , updated_at
		  , COUNT(*) OVER() AS total_count
		FROM forms
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR owner = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY ` + opts.SortBy + ` ` + order + `
		LIMIT $3 OFFSET $4
	`

	status := ""
	if opts.Status != nil {
		status = string(*opts.Status)
	}

	rows, err := r.db.QueryContext(ctx, query, opts.OwnerID, status, opts.Limit+1, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query forms: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	forms := make([]*models.Form, 0)

	var totalCount int64

	for rows.Next() {
		form, total, err := r.scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}

		totalCount = total

		forms = append(forms, form)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forms: %w", err)
	}

	hasNextPage := len(forms) > opts.Limit
	if hasNextPage {
		forms = forms[:opts.Limit]
	}

	return &persistence.FormListResult{
		Forms:       forms,
		TotalCount:  totalCount,
		HasNextPage: hasNextPage,
	}, nil
}

// GetByID returns a form by its ID, nil when absent.
func (r *FormRepository) GetByID(ctx context.Context, id string) (*models.Form, error) {
	query := `
		SELECT
			id
		  , name
		  , description
		  , status
		  , pages
		  , elements
		  , rules
		  , workflow
		  , owner
		  , created_at
		  , updated_at
		  , 0 AS total_count
		FROM forms
		WHERE id = $1 AND deleted_at IS NULL
	`

	form, _, err := r.scanForm(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan form: %w", err)
	}

	return form, nil
}

// Save upserts a form, storing nested structures as JSONB.
func (r *FormRepository) Save(ctx context.Context, form *models.Form) error {
	now := time.Now().UTC()

	if form.CreatedAt.IsZero() {
		form.CreatedAt = now
	}

	form.UpdatedAt = now

	if form.ID == "" {
		form.ID = uuid.New().String()
	}

	pages, err := json.Marshal(form.Pages)
	if err != nil {
		return fmt.Errorf("failed to marshal pages: %w", err)
	}

	elements, err := json.Marshal(form.Elements)
	if err != nil {
		return fmt.Errorf("failed to marshal elements: %w", err)
	}

	rules, err := json.Marshal(form.Rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	var workflow any

	if form.Workflow != nil {
		encoded, err := json.Marshal(form.Workflow)
		if err != nil {
			return fmt.Errorf("failed to marshal workflow: %w", err)
		}

		workflow = encoded
	}

	query := `
		INSERT INTO forms (id, name, description, status, pages, elements, rules, workflow, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			pages = EXCLUDED.pages,
			elements = EXCLUDED.elements,
			rules = EXCLUDED.rules,
			workflow = EXCLUDED.workflow,
			owner = EXCLUDED.owner,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		form.ID, form.Name, form.Description, string(form.Status),
		pages, elements, rules, workflow, form.Owner,
		form.CreatedAt, form.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save form %s: %w", form.ID, err)
	}

	return nil
}

// Delete soft deletes a form by setting the deleted_at timestamp.
func (r *FormRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE forms SET deleted_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete form %s: %w", id, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *FormRepository) scanForm(row rowScanner) (*models.Form, int64, error) {
	var (
		form        models.Form
		description sql.NullString
		owner       sql.NullString
		pages       []byte
		elements    []byte
		rules       []byte
		workflow    []byte
		totalCount  int64
	)

	err := row.Scan(
		&form.ID, &form.Name, &description, &form.Status,
		&pages, &elements, &rules, &workflow, &owner,
		&form.CreatedAt, &form.UpdatedAt, &totalCount,
	)
	if err != nil {
		return nil, 0, err
	}

	form.Description = description.String
	form.Owner = owner.String

	if err := json.Unmarshal(pages, &form.Pages); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal pages: %w", err)
	}

	if err := json.Unmarshal(elements, &form.Elements); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal elements: %w", err)
	}

	if err := json.Unmarshal(rules, &form.Rules); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	if len(workflow) > 0 {
		form.Workflow = &models.FlowGraph{}
		if err := json.Unmarshal(workflow, form.Workflow); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal workflow: %w", err)
		}
	}

	return &form, totalCount, nil
}
