package models

import "time"

// FormStatus represents the lifecycle state of a form.
type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"     // Editable, not accepting submissions
	FormStatusPublished FormStatus = "published" // Accepting submissions
)

// Form is a multi-page form definition: pages, per-page element trees, the
// conditional rules applied at render/submit time and the workflow triggered
// on submission.
type Form struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"        validate:"required,min=3"`
	Description string                `json:"description"`
	Status      FormStatus            `json:"status"      validate:"required"`
	Pages       []*Page               `json:"pages"`
	Elements    map[string][]*Element `json:"elements"` // page id -> root element list
	Rules       []*Rule               `json:"rules,omitempty"`
	Workflow    *FlowGraph            `json:"workflow,omitempty"`
	Owner       string                `json:"owner"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	PublishedAt *time.Time            `json:"published_at,omitempty"`
}

// PageElements returns the root element list for a page, nil when the page is
// unknown or empty.
func (f *Form) PageElements(pageID string) []*Element {
	if f.Elements == nil {
		return nil
	}

	return f.Elements[pageID]
}
