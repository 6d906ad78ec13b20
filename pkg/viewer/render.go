package viewer

import (
	"image/color"
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/physics"
	"github.com/philipparndt/goring/pkg/scene"
)

// Colors used by Render
var (
	Background    = color.RGBA{R: 15, G: 18, B: 25, A: 255}
	ColliderColor = color.RGBA{R: 90, G: 100, B: 120, A: 255}
	SelectedColor = color.RGBA{R: 255, G: 200, B: 60, A: 255}
	GazeColor     = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	LabelColor    = color.RGBA{R: 220, G: 225, B: 235, A: 255}
)

// Render draws every active object of s as seen from cam. Meshes are
// filled and shaded, box colliders are drawn as wireframes, grabbable
// objects are labeled and a cross marks the gaze direction in the middle
// of the frame.
func Render(s *scene.Scene, cam *Camera, width, height int) *Frame {
	f := NewFrame(width, height, Background)
	w, h := float64(width), float64(height)
	_, _, forward := cam.basis()

	s.Walk(func(o *scene.Object) bool {
		if !o.ActiveInHierarchy() {
			return false
		}

		if o.Renderer != nil {
			for _, t := range o.Renderer.WorldTriangles(o) {
				x1, y1, z1 := cam.Project(t.V1, w, h)
				x2, y2, z2 := cam.Project(t.V2, w, h)
				x3, y3, z3 := cam.Project(t.V3, w, h)
				if z1 <= 0.01 || z2 <= 0.01 || z3 <= 0.01 {
					continue
				}
				shade := 0.35 + 0.65*math.Abs(t.Normal.Dot(forward))
				f.FillTriangle(x1, y1, z1, x2, y2, z2, x3, y3, z3, shaded(o.Renderer.Color, shade))
			}
		}

		if box, ok := o.Collider.(*physics.BoxCollider); ok {
			col := ColliderColor
			if o.Interactable != nil && o.Interactable.IsSelected() {
				col = SelectedColor
			}
			drawBox(f, cam, box.Bounds(), col)
		}

		if o.Interactable != nil && o.Collider != nil {
			b := o.Collider.Bounds()
			top := geometry.Vector3{X: b.Center().X, Y: b.Max.Y, Z: b.Center().Z}
			if x, y, z := cam.Project(top, w, h); z > 0.01 {
				f.Label(x, y-6, o.Name, LabelColor)
			}
		}
		return true
	})

	cx, cy := w/2, h/2
	f.Line(cx-6, cy, cx+6, cy, GazeColor)
	f.Line(cx, cy-6, cx, cy+6, GazeColor)
	return f
}

func shaded(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*factor))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

// boxEdges are the corner index pairs of the 12 box edges
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func drawBox(f *Frame, cam *Camera, b geometry.BoundingBox, col color.RGBA) {
	bounds := f.Image.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	var corners [8]geometry.Vector3
	for i := range corners {
		corners[i] = geometry.Vector3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}
		if i&1 != 0 {
			corners[i].X = b.Max.X
		}
		if i&2 != 0 {
			corners[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			corners[i].Z = b.Max.Z
		}
	}

	for _, e := range boxEdges {
		x1, y1, z1 := cam.Project(corners[e[0]], w, h)
		x2, y2, z2 := cam.Project(corners[e[1]], w, h)
		if z1 <= 0.01 || z2 <= 0.01 {
			continue
		}
		f.Line(x1, y1, x2, y2, col)
	}
}
