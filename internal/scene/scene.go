// Package scene defines the on-disk description of a hypersphere scene.
//
// Every object lists the components it carries as optional, typed fields;
// the schema is closed, so unknown keys are rejected instead of being
// silently skipped.
package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
)

// Vec3 is a JSON [x, y, z] triple.
type Vec3 [3]float64

// Value converts to a math vector.
func (v Vec3) Value() mgl64.Vec3 { return mgl64.Vec3(v) }

// Scene is a parsed scene file.
type Scene struct {
	Radius     float64  `json:"hypersphere_radius"` // metres
	Fog        Fog      `json:"fog"`
	DebugNames []string `json:"debug_names,omitempty"`
	Objects    []Object `json:"objects"`
}

// Fog tints distant glyphs towards Color.
type Fog struct {
	Color   string  `json:"color"`
	Density float64 `json:"density"`
}

// Object is one entity and its components.
type Object struct {
	Name            string    `json:"name,omitempty"`
	Glyph           *Glyph    `json:"glyph,omitempty"`
	Position        *Vec3     `json:"position,omitempty"` // metres from the north pole
	Velocity        *Vec3     `json:"velocity,omitempty"` // metres per second
	Orientation     *Rotation `json:"orientation,omitempty"`
	AngularVelocity *Spin     `json:"angular_velocity,omitempty"`
	Light           *Light    `json:"light,omitempty"`
	Camera          *Camera   `json:"camera,omitempty"`
}

// Glyph is how the object is drawn.
type Glyph struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Rotation is a fixed rotation: Angle degrees about Axis.
type Rotation struct {
	Angle float64 `json:"angle"`
	Axis  Vec3    `json:"axis"`
}

// Spin is a rotation rate: Value degrees per second about Axis.
type Spin struct {
	Value float64 `json:"value"`
	Axis  Vec3    `json:"axis"`
}

// Light is a point light.
type Light struct {
	Intensity float64 `json:"intensity"` // candela
	Color     string  `json:"color"`
}

// Camera marks the viewer.
type Camera struct {
	FieldOfView float64 `json:"field_of_view"` // vertical, degrees
}

var (
	ErrNoCamera       = errors.New("scene has no camera")
	ErrInvalidRadius  = errors.New("hypersphere radius must be positive")
	ErrInvalidObject  = errors.New("invalid object")
	ErrUnknownColor   = errors.New("unknown color")
	errTrailingTokens = errors.New("trailing data after scene")
)

// FarPlane is the circumference: no view ray is longer.
func (s *Scene) FarPlane() float64 {
	return 2 * math.Pi * s.Radius
}

// Load decodes and validates a scene.
func Load(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode scene: %w", errTrailingTokens)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(data []byte) (*Scene, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile is Load over a file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the invariants the simulation relies on.
func (s *Scene) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, s.Radius)
	}
	if s.Fog.Color != "" {
		if _, err := ParseColor(s.Fog.Color); err != nil {
			return fmt.Errorf("fog: %w", err)
		}
	}
	cameras := 0
	for i, o := range s.Objects {
		if err := o.validate(); err != nil {
			return fmt.Errorf("object %d (%q): %w", i, o.Name, err)
		}
		if o.Camera != nil {
			cameras++
		}
	}
	if cameras == 0 {
		return ErrNoCamera
	}
	return nil
}

func (o Object) validate() error {
	if o.Glyph != nil {
		if o.Glyph.Text == "" || runewidth.StringWidth(o.Glyph.Text) > 2 {
			return fmt.Errorf("%w: glyph %q must be one or two cells wide", ErrInvalidObject, o.Glyph.Text)
		}
		if _, err := ParseColor(o.Glyph.Color); err != nil {
			return err
		}
	}
	if o.Light != nil {
		if o.Light.Intensity < 0 {
			return fmt.Errorf("%w: negative light intensity", ErrInvalidObject)
		}
		if _, err := ParseColor(o.Light.Color); err != nil {
			return err
		}
	}
	if o.Camera != nil {
		if fov := o.Camera.FieldOfView; !(fov > 0 && fov < 180) {
			return fmt.Errorf("%w: field of view %v outside (0, 180)", ErrInvalidObject, fov)
		}
		if o.Position == nil {
			return fmt.Errorf("%w: camera needs a position", ErrInvalidObject)
		}
	}
	if o.Light != nil && o.Position == nil {
		return fmt.Errorf("%w: light needs a position", ErrInvalidObject)
	}
	if o.Glyph != nil && o.Position == nil {
		return fmt.Errorf("%w: glyph needs a position", ErrInvalidObject)
	}
	return nil
}

// ParseColor accepts tcell color names and #rrggbb. An empty string is white.
func ParseColor(s string) (tcell.Color, error) {
	if s == "" {
		return tcell.ColorWhite, nil
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}
