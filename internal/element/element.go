// Package element defines the placeable element types of a layout: tables,
// dance floors, stages and similar furniture, each with fixed or configurable
// real-world dimensions in meters.
package element

import (
	"fmt"

	"layout-maker/pkg/geometry"
)

// Shape is the footprint outline family of an element.
type Shape string

const (
	ShapeRect   Shape = "rect"
	ShapeCircle Shape = "circle"
)

// DimensionKind discriminates how an element's real size is specified.
type DimensionKind int

const (
	// DimFixed is an explicit width x height in meters.
	DimFixed DimensionKind = iota
	// DimDiameter is a circular element sized by diameter.
	DimDiameter
	// DimConfigurable is sized in whole units of UnitSize meters per side.
	DimConfigurable
)

// Dimensions is the tagged dimension descriptor of one element. For
// DimConfigurable the real width is UnitSize*UnitsWide and the depth
// UnitSize*UnitsDeep; Min/MaxUnits bound what the UI should allow, but
// clamping is the caller's responsibility.
type Dimensions struct {
	Kind DimensionKind `json:"kind"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Diameter float64 `json:"diameter,omitempty"`

	UnitSize  float64 `json:"unit_size,omitempty"`
	UnitsWide int     `json:"units_wide,omitempty"`
	UnitsDeep int     `json:"units_deep,omitempty"`
	MinUnits  int     `json:"min_units,omitempty"`
	MaxUnits  int     `json:"max_units,omitempty"`
}

// Fixed returns an explicit width x height descriptor.
func Fixed(width, height float64) Dimensions {
	return Dimensions{Kind: DimFixed, Width: width, Height: height}
}

// Diameter returns a circular descriptor.
func Diameter(d float64) Dimensions {
	return Dimensions{Kind: DimDiameter, Diameter: d}
}

// Configurable returns a unit-sized descriptor with the given default counts.
func Configurable(unitSize float64, unitsWide, unitsDeep, minUnits, maxUnits int) Dimensions {
	return Dimensions{
		Kind:      DimConfigurable,
		UnitSize:  unitSize,
		UnitsWide: unitsWide,
		UnitsDeep: unitsDeep,
		MinUnits:  minUnits,
		MaxUnits:  maxUnits,
	}
}

// Validate checks that the descriptor is internally consistent.
func (d Dimensions) Validate() error {
	switch d.Kind {
	case DimFixed:
		if d.Width < 0 || d.Height < 0 {
			return fmt.Errorf("fixed dimensions must be non-negative: %gx%g", d.Width, d.Height)
		}
	case DimDiameter:
		if d.Diameter < 0 {
			return fmt.Errorf("diameter must be non-negative: %g", d.Diameter)
		}
	case DimConfigurable:
		if d.UnitSize <= 0 {
			return fmt.Errorf("unit size must be positive: %g", d.UnitSize)
		}
		if d.MinUnits > d.MaxUnits {
			return fmt.Errorf("min units %d exceeds max units %d", d.MinUnits, d.MaxUnits)
		}
	default:
		return fmt.Errorf("unknown dimension kind %d", d.Kind)
	}
	return nil
}

// Definition describes one catalog entry.
type Definition struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Shape    Shape      `json:"shape"`
	Dims     Dimensions `json:"dims"`
	Capacity int        `json:"capacity,omitempty"` // seats, for seating charts
}

// Placed is one element positioned in a layout. Position is in meters within
// the room, Rotation in degrees, and Anchor is the fractional point of the
// footprint that coincides with Position.
type Placed struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Label    string           `json:"label,omitempty"`
	Position geometry.Point2D `json:"position"`
	Rotation float64          `json:"rotation,omitempty"`
	Anchor   geometry.Point2D `json:"anchor"`
	Dims     Dimensions       `json:"dims"`
}

// CenterAnchor is the default anchor: the element's position is its center.
var CenterAnchor = geometry.Point2D{X: 0.5, Y: 0.5}

// NewPlaced places a catalog element at the given position with the catalog's
// default dimensions and a centered anchor.
func NewPlaced(id string, def Definition, position geometry.Point2D) Placed {
	return Placed{
		ID:       id,
		Type:     def.ID,
		Label:    def.Name,
		Position: position,
		Anchor:   CenterAnchor,
		Dims:     def.Dims,
	}
}
