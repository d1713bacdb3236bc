package render

import (
	"math"

	"glome/internal/component"
	"glome/internal/hypersphere"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Lighting constants.
const (
	ambient      = 0.35
	lightScale   = 100.0
	lightTinting = 0.25
)

// Fog fades glyphs towards Color with geodesic distance.
type Fog struct {
	Color   tcell.Color
	Density float64 // per metre
}

type light struct {
	coord mgl64.Vec4
	component.Light
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// shade lights base at coord and fogs it by its distance from the camera.
func shade(base tcell.Color, coord mgl64.Vec4, dist, radius float64, lights []light, fog Fog) tcell.Color {
	c := toColorful(base)
	brightness := ambient
	for _, l := range lights {
		d := hypersphere.Distance(coord, l.coord, radius)
		k := 1 - math.Exp(-l.Intensity/(lightScale*(1+d*d)))
		brightness += k
		c = c.BlendRgb(toColorful(l.Color), lightTinting*k)
	}
	c = colorful.Color{}.BlendRgb(c, math.Min(brightness, 1))
	if fog.Density > 0 {
		c = c.BlendLab(toColorful(fog.Color), 1-math.Exp(-fog.Density*dist))
	}
	return fromColorful(c)
}
