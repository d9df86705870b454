package component

import "github.com/jakecoffman/cp"

// CollisionLayer declares a collision category and mask. Solids use Category
// for the shapes they put in the space; actors use Mask to choose which
// categories their sensors test.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// it is treated as category 1.
	Category uint32 `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity collides with. If zero,
	// it is treated as all bits set.
	Mask uint32 `yaml:"mask,omitempty"`
}

// ShapeFilter converts the layer into a cp filter.
func (l CollisionLayer) ShapeFilter() cp.ShapeFilter {
	category := uint(l.Category)
	if category == 0 {
		category = 1
	}
	mask := uint(l.Mask)
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
