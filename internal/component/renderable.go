package component

import "github.com/gdamore/tcell/v2"

// Renderable is what the terminal renderer draws for an entity.
type Renderable struct {
	Glyph string
	Color tcell.Color
}

// Name labels an entity for the debug overlay.
type Name string

// Light is a point light sitting at the entity's hypersphere coordinate.
type Light struct {
	Intensity float64 // candela
	Color     tcell.Color
}

// Camera marks the viewing entity.
type Camera struct {
	FieldOfView float64 // vertical, radians
}
