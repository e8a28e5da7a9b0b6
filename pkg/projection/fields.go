// Package projection converts between the editor's element trees and the flat
// field list used by storage and submission schemas.
//
// The forward direction walks every page tree and emits one field per
// input-capable element, however deeply it is nested in sections, cards or
// grid columns; layout and decorator elements are traversed for descendants
// but never emitted. The reverse direction is lossy for layout and decorative
// metadata: it rebuilds flat per-page element lists, substituting safe
// defaults for everything the field record does not carry.
package projection

import "github.com/formwright/formwright/pkg/models"

// FieldType is the normalized storage tag for a projected field.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeEmail       FieldType = "email"
	FieldTypeNumber      FieldType = "number"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeDate        FieldType = "date"
	FieldTypeTime        FieldType = "time"
	FieldTypeFile        FieldType = "file"
	FieldTypePhone       FieldType = "phone"
	FieldTypeURL         FieldType = "url"
	FieldTypeRating      FieldType = "rating"
	FieldTypeSlider      FieldType = "slider"
	FieldTypeMatrix      FieldType = "matrix"
)

var forwardTypes = map[models.ElementType]FieldType{
	models.ElementTypeTextInput:   FieldTypeText,
	models.ElementTypeEmailInput:  FieldTypeEmail,
	models.ElementTypeNumberInput: FieldTypeNumber,
	models.ElementTypeTextarea:    FieldTypeTextarea,
	models.ElementTypeSelect:      FieldTypeSelect,
	models.ElementTypeMultiSelect: FieldTypeMultiSelect,
	models.ElementTypeCheckbox:    FieldTypeCheckbox,
	models.ElementTypeRadio:       FieldTypeRadio,
	models.ElementTypeDatePicker:  FieldTypeDate,
	models.ElementTypeTimePicker:  FieldTypeTime,
	models.ElementTypeFileUpload:  FieldTypeFile,
	models.ElementTypePhoneInput:  FieldTypePhone,
	models.ElementTypeURLInput:    FieldTypeURL,
	models.ElementTypeRating:      FieldTypeRating,
	models.ElementTypeSlider:      FieldTypeSlider,
	models.ElementTypeMatrix:      FieldTypeMatrix,
}

var reverseTypes = func() map[FieldType]models.ElementType {
	m := make(map[FieldType]models.ElementType, len(forwardTypes))
	for elementType, fieldType := range forwardTypes {
		m[fieldType] = elementType
	}

	return m
}()

// FieldValidation is the storage subset of element validation constraints.
type FieldValidation struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// Field is the flattened, storage-oriented record of one input element.
type Field struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Name        string           `json:"name,omitempty"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Options     []string         `json:"options,omitempty"` // option values in order
	Validation  *FieldValidation `json:"validation,omitempty"`
}

// Projection is the storage representation of a form's input surface.
type Projection struct {
	Fields     []Field             `json:"fields"`
	PageFields map[string][]string `json:"page_fields"` // page id -> ordered field ids
}

// ToFields flattens the per-page element trees into the storage projection.
// Field order follows depth-first document order within each page.
func ToFields(pages []*models.Page, pageElements map[string][]*models.Element) Projection {
	projection := Projection{
		Fields:     []Field{},
		PageFields: make(map[string][]string, len(pages)),
	}

	for _, page := range pages {
		ids := []string{}

		collect(pageElements[page.ID], func(el *models.Element) {
			projection.Fields = append(projection.Fields, fieldFromElement(el))
			ids = append(ids, el.ID)
		})

		projection.PageFields[page.ID] = ids
	}

	return projection
}

// FromFields rebuilds flat per-page element lists from the storage
// projection. Layout wrapping and decorator elements are not reconstructed;
// missing metadata falls back to safe defaults, never an error. Fields whose
// id appears in no page index are ignored.
func FromFields(fields []Field, pageFields map[string][]string) map[string][]*models.Element {
	byID := make(map[string]Field, len(fields))
	for _, field := range fields {
		byID[field.ID] = field
	}

	pageElements := make(map[string][]*models.Element, len(pageFields))

	for pageID, ids := range pageFields {
		list := make([]*models.Element, 0, len(ids))

		for _, id := range ids {
			field, ok := byID[id]
			if !ok {
				continue
			}

			list = append(list, elementFromField(field))
		}

		pageElements[pageID] = list
	}

	return pageElements
}

// collect visits every input-capable element depth-first, descending into
// container children and grid columns.
func collect(tree []*models.Element, visit func(*models.Element)) {
	for _, el := range tree {
		if el.Type.IsInput() {
			visit(el)
		}

		for _, children := range el.ChildLists() {
			collect(children, visit)
		}
	}
}

func fieldFromElement(el *models.Element) Field {
	field := Field{
		ID:          el.ID,
		Type:        forwardTypes[el.Type],
		Name:        el.FieldName,
		Label:       el.Label,
		Placeholder: el.Placeholder,
		Required:    el.Required,
	}

	for _, opt := range el.Options {
		field.Options = append(field.Options, opt.Value)
	}

	if v := el.Validation; v != nil {
		field.Validation = &FieldValidation{
			Min:       v.Min,
			Max:       v.Max,
			MinLength: v.MinLength,
			MaxLength: v.MaxLength,
			Pattern:   v.Pattern,
		}
	}

	return field
}

func elementFromField(field Field) *models.Element {
	elementType, ok := reverseTypes[field.Type]
	if !ok {
		elementType = models.ElementTypeTextInput
	}

	el := &models.Element{
		ID:          field.ID,
		Type:        elementType,
		Label:       field.Label,
		FieldName:   field.Name,
		Placeholder: field.Placeholder,
		Required:    field.Required,
		Width:       models.WidthFull,
	}

	for _, value := range field.Options {
		el.Options = append(el.Options, models.Option{Label: value, Value: value})
	}

	if v := field.Validation; v != nil {
		el.Validation = &models.Validation{
			Min:       v.Min,
			Max:       v.Max,
			MinLength: v.MinLength,
			MaxLength: v.MaxLength,
			Pattern:   v.Pattern,
		}
	}

	return el
}
