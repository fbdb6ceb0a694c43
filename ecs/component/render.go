package component

import "image/color"

type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeRing
)

// Shape is a flat-colored primitive drawn at the entity's transform.
type Shape struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
	Color  color.Color
}

var ShapeComponent = NewComponent[Shape]()

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
