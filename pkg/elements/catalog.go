package elements

import (
	"slices"
	"strings"

	"github.com/formwright/formwright/pkg/models"
	"github.com/google/uuid"
)

// IDGenerator produces unique element ids. Injected so tests can run with a
// deterministic counter; id uniqueness is a hard invariant the tree operations
// rely on.
type IDGenerator func() string

// UUIDGenerator is the default production id generator.
func UUIDGenerator() string {
	return uuid.New().String()
}

// Catalog instantiates elements with their per-type default attributes.
type Catalog struct {
	generateID IDGenerator
}

// NewCatalog creates a catalog backed by the given id generator; nil selects
// the uuid default.
func NewCatalog(generateID IDGenerator) *Catalog {
	if generateID == nil {
		generateID = UUIDGenerator
	}

	return &Catalog{generateID: generateID}
}

type defaults struct {
	label       string
	placeholder string
	width       models.WidthClass
	options     []models.Option
	validation  *models.Validation
}

var catalogDefaults = map[models.ElementType]defaults{
	models.ElementTypeTextInput:   {label: "Text Input", placeholder: "Enter text", width: models.WidthFull},
	models.ElementTypeEmailInput:  {label: "Email", placeholder: "name@example.com", width: models.WidthFull, validation: &models.Validation{Pattern: `^[^@\s]+@[^@\s]+\.[^@\s]+$`, Message: "Enter a valid email address"}},
	models.ElementTypeNumberInput: {label: "Number", placeholder: "0", width: models.WidthHalf},
	models.ElementTypeTextarea:    {label: "Long Answer", placeholder: "Type your answer", width: models.WidthFull},
	models.ElementTypeSelect:      {label: "Dropdown", width: models.WidthHalf, options: defaultChoiceOptions()},
	models.ElementTypeMultiSelect: {label: "Multi Select", width: models.WidthHalf, options: defaultChoiceOptions()},
	models.ElementTypeCheckbox:    {label: "Checkbox", width: models.WidthHalf},
	models.ElementTypeRadio:       {label: "Radio Group", width: models.WidthHalf, options: defaultChoiceOptions()},
	models.ElementTypeDatePicker:  {label: "Date", width: models.WidthHalf},
	models.ElementTypeTimePicker:  {label: "Time", width: models.WidthHalf},
	models.ElementTypeFileUpload:  {label: "File Upload", width: models.WidthFull},
	models.ElementTypePhoneInput:  {label: "Phone", placeholder: "+1 555 000 0000", width: models.WidthHalf},
	models.ElementTypeURLInput:    {label: "Website", placeholder: "https://", width: models.WidthFull},
	models.ElementTypeRating:      {label: "Rating", width: models.WidthThird, validation: &models.Validation{Min: floatPtr(1), Max: floatPtr(5)}},
	models.ElementTypeSlider:      {label: "Slider", width: models.WidthHalf, validation: &models.Validation{Min: floatPtr(0), Max: floatPtr(100)}},
	models.ElementTypeMatrix:      {label: "Matrix", width: models.WidthFull},
	models.ElementTypeHeading:     {label: "Heading", width: models.WidthFull},
	models.ElementTypeTextBlock:   {label: "Text block", width: models.WidthFull},
	models.ElementTypeDivider:     {width: models.WidthFull},
	models.ElementTypeSpacer:      {width: models.WidthFull},
	models.ElementTypeSection:     {label: "Section", width: models.WidthFull},
	models.ElementTypeCard:        {label: "Card", width: models.WidthFull},
	models.ElementTypeGridLayout:  {width: models.WidthFull},
}

// KnownTypes returns every element type the catalog can instantiate.
func KnownTypes() []models.ElementType {
	types := make([]models.ElementType, 0, len(catalogDefaults))
	for elementType := range catalogDefaults {
		types = append(types, elementType)
	}

	slices.Sort(types)

	return types
}

// KnownType reports whether the catalog can instantiate the element type.
func KnownType(elementType models.ElementType) bool {
	_, ok := catalogDefaults[elementType]

	return ok
}

// New instantiates a fresh element of the given type with a unique id and the
// catalog defaults. Grid layouts start with two equally sized columns.
func (c *Catalog) New(elementType models.ElementType) *models.Element {
	def := catalogDefaults[elementType]

	el := &models.Element{
		ID:          c.generateID(),
		Type:        elementType,
		Label:       def.label,
		Placeholder: def.placeholder,
		Width:       def.width,
	}

	if def.validation != nil {
		validation := *def.validation
		el.Validation = &validation
	}

	if def.label != "" {
		el.FieldName = FieldNameFromLabel(def.label)
	}

	if def.options != nil {
		el.Options = append([]models.Option(nil), def.options...)
	}

	if elementType.IsGrid() {
		el.GridItems = []*models.GridItem{
			{Size: gridUnits / 2},
			{Size: gridUnits / 2},
		}
	}

	return el
}

// FieldNameFromLabel derives a storage key from a human label:
// "Full Name" -> "full_name".
func FieldNameFromLabel(label string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}

	return b.String()
}

func defaultChoiceOptions() []models.Option {
	return []models.Option{
		{Label: "Option 1", Value: "option_1"},
		{Label: "Option 2", Value: "option_2"},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
