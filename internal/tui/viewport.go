package tui

import (
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
)

// cellAspect is how much taller a terminal cell is than wide
const cellAspect = 2.0

// Viewport maps the XZ plane of the world onto terminal cells, looking
// down the Y axis with +Z up the screen
type Viewport struct {
	Left, Top     int // first cell of the map
	Width, Height int // map size in cells
	center        geometry.Vector3
	scale         float64 // columns per world unit
}

// NewViewport fits bounds into a map of width by height cells at left, top
func NewViewport(bounds geometry.BoundingBox, left, top, width, height int) *Viewport {
	v := &Viewport{Left: left, Top: top, Width: max(width, 1), Height: max(height, 1)}
	v.Fit(bounds)
	return v
}

// Fit centers bounds and scales them to fill the map with a margin
func (v *Viewport) Fit(bounds geometry.BoundingBox) {
	size := bounds.Size()
	dx := math.Max(size.X, 0.5) * 1.2
	dz := math.Max(size.Z, 0.5) * 1.2
	v.center = bounds.Center()
	v.scale = math.Min(float64(v.Width)/dx, float64(v.Height)*cellAspect/dz)
}

// Zoom scales the map by factor around its center
func (v *Viewport) Zoom(factor float64) {
	if factor > 0 {
		v.scale *= factor
	}
}

// Cell returns the cell of p and whether it lies on the map
func (v *Viewport) Cell(p geometry.Vector3) (x, y int, ok bool) {
	fx := float64(v.Width)/2 + (p.X-v.center.X)*v.scale
	fy := float64(v.Height)/2 - (p.Z-v.center.Z)*v.scale/cellAspect
	x = v.Left + int(math.Floor(fx))
	y = v.Top + int(math.Floor(fy))
	ok = x >= v.Left && x < v.Left+v.Width && y >= v.Top && y < v.Top+v.Height
	return x, y, ok
}

// Point returns the world position at the center of cell x, y on the ground plane
func (v *Viewport) Point(x, y int) geometry.Vector3 {
	fx := float64(x-v.Left) + 0.5
	fy := float64(y-v.Top) + 0.5
	return geometry.Vector3{
		X: v.center.X + (fx-float64(v.Width)/2)/v.scale,
		Z: v.center.Z - (fy-float64(v.Height)/2)*cellAspect/v.scale,
	}
}

// Step returns the world distance of one column
func (v *Viewport) Step() float64 {
	return 1 / v.scale
}

// arrow returns the character pointing along forward on the map
func arrow(forward geometry.Vector3) rune {
	angle := math.Atan2(forward.X, forward.Z)
	arrows := []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}
	i := int(math.Round(angle/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}
