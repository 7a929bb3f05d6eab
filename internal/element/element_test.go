package element

import (
	"testing"

	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Catalog() {
		assert.False(t, seen[def.ID], "duplicate catalog id %q", def.ID)
		seen[def.ID] = true
		assert.NoError(t, def.Dims.Validate(), def.ID)
	}
}

func TestByID(t *testing.T) {
	def, ok := ByID("table-round")
	require.True(t, ok)
	assert.Equal(t, ShapeCircle, def.Shape)
	assert.Equal(t, 10, def.Capacity)

	_, ok = ByID("table-imaginary")
	assert.False(t, ok)
}

func TestDimensionsValidate(t *testing.T) {
	assert.NoError(t, Fixed(2, 1).Validate())
	assert.Error(t, Fixed(-1, 1).Validate())
	assert.Error(t, Diameter(-2).Validate())
	assert.Error(t, Configurable(0, 2, 2, 1, 4).Validate())
	assert.Error(t, Configurable(1, 2, 2, 5, 4).Validate())
	assert.Error(t, Dimensions{Kind: DimensionKind(42)}.Validate())
}

func TestNewPlacedDefaults(t *testing.T) {
	def := DanceFloor()
	p := NewPlaced("el-1", def, geometry.Point2D{X: 3, Y: 4})

	assert.Equal(t, "el-1", p.ID)
	assert.Equal(t, def.ID, p.Type)
	assert.Equal(t, CenterAnchor, p.Anchor)
	assert.Equal(t, def.Dims, p.Dims)
	assert.Equal(t, 0.0, p.Rotation)
}
