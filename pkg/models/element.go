// Package models defines the core domain models for the form builder and its workflow engine.
package models

// ElementType is the closed set of tags an Element can carry.
type ElementType string

const (
	ElementTypeTextInput   ElementType = "text-input"
	ElementTypeEmailInput  ElementType = "email-input"
	ElementTypeNumberInput ElementType = "number-input"
	ElementTypeTextarea    ElementType = "textarea"
	ElementTypeSelect      ElementType = "select"
	ElementTypeMultiSelect ElementType = "multi-select"
	ElementTypeCheckbox    ElementType = "checkbox"
	ElementTypeRadio       ElementType = "radio"
	ElementTypeDatePicker  ElementType = "date-picker"
	ElementTypeTimePicker  ElementType = "time-picker"
	ElementTypeFileUpload  ElementType = "file-upload"
	ElementTypePhoneInput  ElementType = "phone-input"
	ElementTypeURLInput    ElementType = "url-input"
	ElementTypeRating      ElementType = "rating"
	ElementTypeSlider      ElementType = "slider"
	ElementTypeMatrix      ElementType = "matrix"
	ElementTypeHeading     ElementType = "heading"
	ElementTypeTextBlock   ElementType = "text-block"
	ElementTypeDivider     ElementType = "divider"
	ElementTypeSpacer      ElementType = "spacer"
	ElementTypeSection     ElementType = "section"
	ElementTypeCard        ElementType = "card"
	ElementTypeGridLayout  ElementType = "grid-layout"
)

// WidthClass controls how wide an element renders relative to its row.
type WidthClass string

const (
	WidthFull  WidthClass = "full"
	WidthHalf  WidthClass = "half"
	WidthThird WidthClass = "third"
)

// Option is a single choice for select/multi-select/radio elements.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Validation holds the structured constraints for input-capable elements.
type Validation struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// GridItem is one column of a grid-layout element. Size is a 1-12 fraction of
// the 12-unit row; Children is the column's own element list.
type GridItem struct {
	Size     int        `json:"size"     validate:"min=1,max=12"`
	Children []*Element `json:"children"`
}

// Element is a node in a form's structural tree.
//
// Ownership invariant: an element lives in exactly one list at a time (a page
// root, a container's Children, or a GridItem's Children) and its ID is unique
// across the whole tree of a page. Children is only populated for section and
// card elements; GridItems only for grid-layout elements.
type Element struct {
	ID          string      `json:"id"                     validate:"required"`
	Type        ElementType `json:"type"                   validate:"required"`
	Label       string      `json:"label,omitempty"`
	FieldName   string      `json:"field_name,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	HelperText  string      `json:"helper_text,omitempty"`
	Required    bool        `json:"required,omitempty"`
	Width       WidthClass  `json:"width,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
	Options     []Option    `json:"options,omitempty"`
	Children    []*Element  `json:"children,omitempty"`
	GridItems   []*GridItem `json:"grid_items,omitempty"`
}

// Page groups an ordered slice of root elements under a stable id.
type Page struct {
	ID          string `json:"id"          validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// IsContainer reports whether the type owns a plain Children list.
func (t ElementType) IsContainer() bool {
	return t == ElementTypeSection || t == ElementTypeCard
}

// IsGrid reports whether the type owns grid columns.
func (t ElementType) IsGrid() bool {
	return t == ElementTypeGridLayout
}

// IsInput reports whether the type captures a value on submission. Layout and
// decorator types traverse for descendants but are never projected as fields.
func (t ElementType) IsInput() bool {
	switch t {
	case ElementTypeTextInput, ElementTypeEmailInput, ElementTypeNumberInput,
		ElementTypeTextarea, ElementTypeSelect, ElementTypeMultiSelect,
		ElementTypeCheckbox, ElementTypeRadio, ElementTypeDatePicker,
		ElementTypeTimePicker, ElementTypeFileUpload, ElementTypePhoneInput,
		ElementTypeURLInput, ElementTypeRating, ElementTypeSlider,
		ElementTypeMatrix:
		return true
	default:
		return false
	}
}

// ChildLists returns every child list the element owns: the plain Children
// list for sections and cards, one list per column for grid layouts. Tree
// walking code iterates these instead of special-casing container kinds.
func (e *Element) ChildLists() [][]*Element {
	if e.Type.IsGrid() {
		lists := make([][]*Element, 0, len(e.GridItems))
		for _, item := range e.GridItems {
			lists = append(lists, item.Children)
		}

		return lists
	}

	if e.Type.IsContainer() {
		return [][]*Element{e.Children}
	}

	return nil
}
