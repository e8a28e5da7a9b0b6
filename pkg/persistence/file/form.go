package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/persistence"
)

// FormRepository handles form-related file operations.
type FormRepository struct {
	root string // File system root for storing forms
}

// NewFormRepository creates a new form repository.
func NewFormRepository(root string) *FormRepository {
	return &FormRepository{root: root}
}

// List returns paginated and filtered forms with in-memory operations.
func (fr *FormRepository) List(ctx context.Context, opts persistence.ListFormsOptions) (*persistence.FormListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	allowedSorts := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}
	if !allowedSorts[opts.SortBy] {
		return nil, fmt.Errorf("%w: %s", persistence.ErrInvalidSortField, opts.SortBy)
	}

	root := os.DirFS(fr.root + "/forms")

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list form files: %w", err)
	}

	if len(jsonFiles) == 0 {
		return &persistence.FormListResult{
			Forms:       make([]*models.Form, 0),
			TotalCount:  0,
			HasNextPage: false,
		}, nil
	}

	allForms := make([]*models.Form, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		formID := file[:len(file)-5] // Remove .json extension

		form, err := fr.GetByID(ctx, formID)
		if err != nil {
			return nil, fmt.Errorf("failed to load form %s: %w", formID, err)
		}

		if form != nil {
			allForms = append(allForms, form)
		}
	}

	filtered := make([]*models.Form, 0)

	for _, form := range allForms {
		if opts.OwnerID != "" && form.Owner != opts.OwnerID {
			continue
		}

		if opts.Status != nil && form.Status != *opts.Status {
			continue
		}

		filtered = append(filtered, form)
	}

	fr.sortForms(filtered, opts.SortBy, opts.SortOrder)

	totalCount := int64(len(filtered))
	startIdx := opts.Offset
	endIdx := opts.Offset + opts.Limit

	if startIdx >= len(filtered) {
		return &persistence.FormListResult{
			Forms:       make([]*models.Form, 0),
			TotalCount:  totalCount,
			HasNextPage: false,
		}, nil
	}

	if endIdx > len(filtered) {
		endIdx = len(filtered)
	}

	return &persistence.FormListResult{
		Forms:       filtered[startIdx:endIdx],
		TotalCount:  totalCount,
		HasNextPage: endIdx < len(filtered),
	}, nil
}

// sortForms sorts forms in-place based on the specified field and order.
func (fr *FormRepository) sortForms(forms []*models.Form, sortBy, sortOrder string) {
	sort.Slice(forms, func(i, j int) bool {
		var less bool

		switch sortBy {
		case "updated_at":
			less = forms[i].UpdatedAt.Before(forms[j].UpdatedAt)
		case "name":
			less = forms[i].Name < forms[j].Name
		default:
			less = forms[i].CreatedAt.Before(forms[j].CreatedAt)
		}

		if sortOrder == "desc" {
			return !less
		}

		return less
	})
}

// GetByID retrieves a form by its ID from the file system.
func (fr *FormRepository) GetByID(_ context.Context, formID string) (*models.Form, error) {
	filePath := filepath.Clean(path.Join(fr.root, "forms", formID+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch form %s: %w", formID, err)
	}

	var form models.Form

	err = json.Unmarshal(body, &form)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal form %s: %w", formID, err)
	}

	return &form, nil
}

// Save saves a form to the file system.
func (fr *FormRepository) Save(_ context.Context, form *models.Form) error {
	err := os.MkdirAll(fr.root+"/forms", 0750)
	if err != nil {
		return fmt.Errorf("failed to create forms directory: %w", err)
	}

	now := time.Now().UTC()
	if form.CreatedAt.IsZero() {
		form.CreatedAt = now
	}

	form.UpdatedAt = now

	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal form %s: %w", form.ID, err)
	}

	filePath := path.Join(fr.root+"/forms", form.ID+".json")

	return os.WriteFile(filePath, data, 0600)
}

// Delete removes a form by its ID.
func (fr *FormRepository) Delete(_ context.Context, id string) error {
	filePath := path.Join(fr.root+"/forms", id+".json")

	err := os.Remove(filePath)

	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete form %s: %w", id, err)
	}

	return nil
}
