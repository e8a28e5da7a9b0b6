package elements

import (
	"testing"

	"github.com/formwright/formwright/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizeSum(items []*models.GridItem) int {
	sum := 0
	for _, item := range items {
		sum += item.Size
	}

	return sum
}

func TestAddColumn_Redistributes(t *testing.T) {
	grid := NewCatalog(nil).New(models.ElementTypeGridLayout)
	require.Len(t, grid.GridItems, 2)

	next := AddColumn(grid)
	require.Len(t, next.GridItems, 3)

	assert.Equal(t, 12, sizeSum(next.GridItems))
	for _, item := range next.GridItems {
		assert.GreaterOrEqual(t, item.Size, 1)
		assert.LessOrEqual(t, item.Size, 12)
	}

	// Input untouched.
	assert.Len(t, grid.GridItems, 2)
	assert.Equal(t, 6, grid.GridItems[0].Size)
}

func TestAddColumn_SumStaysAtTwelve(t *testing.T) {
	grid := NewCatalog(nil).New(models.ElementTypeGridLayout)

	for cols := 3; cols <= 12; cols++ {
		grid = AddColumn(grid)
		require.Len(t, grid.GridItems, cols)
		assert.Equal(t, 12, sizeSum(grid.GridItems), "sum after growing to %d columns", cols)
	}

	// Thirteenth column is refused.
	assert.Len(t, AddColumn(grid).GridItems, 12)
}

func TestRemoveColumn(t *testing.T) {
	grid := AddColumn(NewCatalog(nil).New(models.ElementTypeGridLayout)) // 3 columns
	grid.GridItems[1].Children = []*models.Element{{ID: "x1", Type: models.ElementTypeTextInput}}

	next := RemoveColumn(grid, 1)
	require.Len(t, next.GridItems, 2)
	assert.Equal(t, 12, sizeSum(next.GridItems))
	assert.Nil(t, FindByID([]*models.Element{next}, "x1"), "elements in the removed column go with it")
}

func TestRemoveColumn_KeepsLastColumn(t *testing.T) {
	grid := &models.Element{
		ID:        "g",
		Type:      models.ElementTypeGridLayout,
		GridItems: []*models.GridItem{{Size: 12}},
	}

	next := RemoveColumn(grid, 0)
	assert.Len(t, next.GridItems, 1)
}

func TestRemoveColumn_InvalidIndexIsNoOp(t *testing.T) {
	grid := NewCatalog(nil).New(models.ElementTypeGridLayout)

	assert.Len(t, RemoveColumn(grid, -1).GridItems, 2)
	assert.Len(t, RemoveColumn(grid, 2).GridItems, 2)
}

func TestAddColumn_NonGridIsNoOp(t *testing.T) {
	el := &models.Element{ID: "t", Type: models.ElementTypeTextInput}
	assert.Same(t, el, AddColumn(el))
}
