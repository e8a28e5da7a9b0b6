package elements

import "github.com/formwright/formwright/pkg/models"

// Twelve-unit layout row, matching the grid system the canvas renders on.
const gridUnits = 12

// AddColumn appends an empty column to a grid-layout element and
// redistributes every column size to keep the row balanced. Non-grid elements
// and grids already at twelve columns are returned unchanged.
func AddColumn(grid *models.Element) *models.Element {
	if !grid.Type.IsGrid() || len(grid.GridItems) >= gridUnits {
		return grid
	}

	next := cloneShallow(grid)
	items := make([]*models.GridItem, 0, len(grid.GridItems)+1)

	for _, item := range grid.GridItems {
		items = append(items, &models.GridItem{Size: item.Size, Children: item.Children})
	}

	items = append(items, &models.GridItem{Size: 1, Children: nil})
	redistribute(items)
	next.GridItems = items

	return next
}

// RemoveColumn removes the column at index and redistributes the remaining
// sizes. The last remaining column is never removed; invalid indexes are a
// no-op. Elements inside the removed column are dropped with it.
func RemoveColumn(grid *models.Element, index int) *models.Element {
	if !grid.Type.IsGrid() || len(grid.GridItems) <= 1 || index < 0 || index >= len(grid.GridItems) {
		return grid
	}

	next := cloneShallow(grid)
	items := make([]*models.GridItem, 0, len(grid.GridItems)-1)

	for i, item := range grid.GridItems {
		if i == index {
			continue
		}

		items = append(items, &models.GridItem{Size: item.Size, Children: item.Children})
	}

	redistribute(items)
	next.GridItems = items

	return next
}

// redistribute splits the twelve units equally, handing the remainder to the
// leading columns so the sum stays at twelve.
func redistribute(items []*models.GridItem) {
	count := len(items)
	if count == 0 {
		return
	}

	base := gridUnits / count
	remainder := gridUnits % count

	for i, item := range items {
		item.Size = base
		if i < remainder {
			item.Size++
		}
	}
}
