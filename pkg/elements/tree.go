// Package elements implements pure structural operations over the recursive
// form element tree: lookup, partial update, delete, insert and reorder across
// page roots, container children and grid columns.
//
// Every operation returns a new tree value and never mutates its input; only
// the path from the root to the touched element is rebuilt, untouched siblings
// are shared. Lookups that fail (unknown id, out-of-range column) return the
// input unchanged with found=false; concurrent editor events such as
// delete-while-dragging must never crash the caller.
package elements

import "github.com/formwright/formwright/pkg/models"

// Update is a partial update merged onto an element. Nil fields are preserved.
type Update struct {
	Label       *string
	FieldName   *string
	Placeholder *string
	HelperText  *string
	Required    *bool
	Width       *models.WidthClass
	Validation  *models.Validation
	Options     []models.Option
}

// InsertOptions controls where InsertIntoContainer places the new element.
// Column selects the grid column (required for grid layouts, ignored
// otherwise); Index is the position within the target list, default end.
type InsertOptions struct {
	Column *int
	Index  *int
}

// FindByID searches the tree depth-first, descending into container children
// and every grid column. Returns nil when the id is not present.
func FindByID(tree []*models.Element, id string) *models.Element {
	for _, el := range tree {
		if el.ID == id {
			return el
		}

		for _, list := range el.ChildLists() {
			if match := FindByID(list, id); match != nil {
				return match
			}
		}
	}

	return nil
}

// UpdateByID merges the partial update onto the element with the given id,
// wherever it sits in the tree. The second return reports whether the id was
// found; when it was not, the input tree is returned unchanged.
func UpdateByID(tree []*models.Element, id string, update Update) ([]*models.Element, bool) {
	return rebuild(tree, id, func(el *models.Element) *models.Element {
		next := cloneShallow(el)
		applyUpdate(next, update)

		return next
	})
}

// ReplaceByID swaps the element with the given id for the replacement,
// wherever it sits in the tree.
func ReplaceByID(tree []*models.Element, id string, replacement *models.Element) ([]*models.Element, bool) {
	return rebuild(tree, id, func(*models.Element) *models.Element {
		return replacement
	})
}

// DeleteByID removes the element with the given id from whichever list owns
// it. An unknown id returns the tree unchanged with found=false.
func DeleteByID(tree []*models.Element, id string) ([]*models.Element, bool) {
	for i, el := range tree {
		if el.ID == id {
			next := make([]*models.Element, 0, len(tree)-1)
			next = append(next, tree[:i]...)
			next = append(next, tree[i+1:]...)

			return next, true
		}
	}

	for i, el := range tree {
		if replaced, found := deleteInChildLists(el, id); found {
			next := replaceAt(tree, i, replaced)

			return next, true
		}
	}

	return tree, false
}

// InsertIntoContainer inserts the element into the container with the given
// id. Sections and cards receive it in Children; grid layouts require
// opts.Column and receive it in that column's Children. Unknown container id
// or out-of-range column returns the tree unchanged with found=false.
func InsertIntoContainer(tree []*models.Element, containerID string, el *models.Element, opts InsertOptions) ([]*models.Element, bool) {
	return rebuild(tree, containerID, func(container *models.Element) *models.Element {
		switch {
		case container.Type.IsContainer():
			next := cloneShallow(container)
			next.Children = insertAt(container.Children, el, opts.Index)

			return next
		case container.Type.IsGrid():
			if opts.Column == nil || *opts.Column < 0 || *opts.Column >= len(container.GridItems) {
				return nil
			}

			next := cloneShallow(container)
			next.GridItems = replaceGridItem(container.GridItems, *opts.Column, func(item *models.GridItem) *models.GridItem {
				return &models.GridItem{
					Size:     item.Size,
					Children: insertAt(item.Children, el, opts.Index),
				}
			})

			return next
		default:
			// Target exists but cannot hold children.
			return nil
		}
	})
}

// Reorder moves the element at source to target within a single list. Indexes
// outside the list return the input unchanged. The result is a permutation of
// the input.
func Reorder(list []*models.Element, source, target int) []*models.Element {
	if source < 0 || source >= len(list) || target < 0 || target >= len(list) || source == target {
		return list
	}

	next := make([]*models.Element, 0, len(list))
	next = append(next, list[:source]...)
	next = append(next, list[source+1:]...)

	moved := list[source]
	next = append(next[:target], append([]*models.Element{moved}, next[target:]...)...)

	return next
}

// ReorderIn reorders within the child list of the container with the given
// id; column selects the grid column for grid layouts and is ignored for
// sections and cards.
func ReorderIn(tree []*models.Element, containerID string, column int, source, target int) ([]*models.Element, bool) {
	return rebuild(tree, containerID, func(container *models.Element) *models.Element {
		switch {
		case container.Type.IsContainer():
			next := cloneShallow(container)
			next.Children = Reorder(container.Children, source, target)

			return next
		case container.Type.IsGrid():
			if column < 0 || column >= len(container.GridItems) {
				return nil
			}

			next := cloneShallow(container)
			next.GridItems = replaceGridItem(container.GridItems, column, func(item *models.GridItem) *models.GridItem {
				return &models.GridItem{
					Size:     item.Size,
					Children: Reorder(item.Children, source, target),
				}
			})

			return next
		default:
			return nil
		}
	})
}

// rebuild walks the tree looking for id and, on a match, swaps the element for
// transform(el), recloning only the ancestor path. transform returning nil
// means the match could not be applied and the whole operation is a no-op.
func rebuild(tree []*models.Element, id string, transform func(*models.Element) *models.Element) ([]*models.Element, bool) {
	for i, el := range tree {
		if el.ID == id {
			replaced := transform(el)
			if replaced == nil {
				return tree, false
			}

			return replaceAt(tree, i, replaced), true
		}
	}

	for i, el := range tree {
		if replaced, found := rebuildInChildLists(el, id, transform); found {
			return replaceAt(tree, i, replaced), true
		}
	}

	return tree, false
}

func rebuildInChildLists(el *models.Element, id string, transform func(*models.Element) *models.Element) (*models.Element, bool) {
	if el.Type.IsContainer() {
		if children, found := rebuild(el.Children, id, transform); found {
			next := cloneShallow(el)
			next.Children = children

			return next, true
		}

		return nil, false
	}

	if el.Type.IsGrid() {
		for col, item := range el.GridItems {
			if children, found := rebuild(item.Children, id, transform); found {
				next := cloneShallow(el)
				next.GridItems = replaceGridItem(el.GridItems, col, func(item *models.GridItem) *models.GridItem {
					return &models.GridItem{Size: item.Size, Children: children}
				})

				return next, true
			}
		}
	}

	return nil, false
}

func deleteInChildLists(el *models.Element, id string) (*models.Element, bool) {
	if el.Type.IsContainer() {
		if children, found := DeleteByID(el.Children, id); found {
			next := cloneShallow(el)
			next.Children = children

			return next, true
		}

		return nil, false
	}

	if el.Type.IsGrid() {
		for col, item := range el.GridItems {
			if children, found := DeleteByID(item.Children, id); found {
				next := cloneShallow(el)
				next.GridItems = replaceGridItem(el.GridItems, col, func(item *models.GridItem) *models.GridItem {
					return &models.GridItem{Size: item.Size, Children: children}
				})

				return next, true
			}
		}
	}

	return nil, false
}

func applyUpdate(el *models.Element, update Update) {
	if update.Label != nil {
		el.Label = *update.Label
	}

	if update.FieldName != nil {
		el.FieldName = *update.FieldName
	}

	if update.Placeholder != nil {
		el.Placeholder = *update.Placeholder
	}

	if update.HelperText != nil {
		el.HelperText = *update.HelperText
	}

	if update.Required != nil {
		el.Required = *update.Required
	}

	if update.Width != nil {
		el.Width = *update.Width
	}

	if update.Validation != nil {
		el.Validation = update.Validation
	}

	if update.Options != nil {
		el.Options = update.Options
	}
}

func cloneShallow(el *models.Element) *models.Element {
	next := *el

	return &next
}

func replaceAt(list []*models.Element, index int, el *models.Element) []*models.Element {
	next := make([]*models.Element, len(list))
	copy(next, list)
	next[index] = el

	return next
}

func insertAt(list []*models.Element, el *models.Element, index *int) []*models.Element {
	pos := len(list)
	if index != nil && *index >= 0 && *index <= len(list) {
		pos = *index
	}

	next := make([]*models.Element, 0, len(list)+1)
	next = append(next, list[:pos]...)
	next = append(next, el)
	next = append(next, list[pos:]...)

	return next
}

func replaceGridItem(items []*models.GridItem, index int, transform func(*models.GridItem) *models.GridItem) []*models.GridItem {
	next := make([]*models.GridItem, len(items))
	copy(next, items)
	next[index] = transform(items[index])

	return next
}
