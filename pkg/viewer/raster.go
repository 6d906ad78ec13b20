package viewer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Frame is an RGBA image with a depth buffer
type Frame struct {
	Image   *image.RGBA
	zbuffer []float64
}

// NewFrame creates a cleared frame
func NewFrame(width, height int, background color.RGBA) *Frame {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	f := &Frame{
		Image:   image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuffer: make([]float64, width*height),
	}
	f.Clear(background)
	return f
}

// Clear fills the frame with background and resets depth
func (f *Frame) Clear(background color.RGBA) {
	bounds := f.Image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			f.Image.SetRGBA(x, y, background)
		}
	}
	for i := range f.zbuffer {
		f.zbuffer[i] = math.Inf(1)
	}
}

// Depth returns the depth stored at a pixel, +Inf where nothing was drawn
func (f *Frame) Depth(x, y int) float64 {
	width := f.Image.Bounds().Max.X
	idx := y*width + x
	if x < 0 || y < 0 || x >= width || idx >= len(f.zbuffer) {
		return math.Inf(1)
	}
	return f.zbuffer[idx]
}

// FillTriangle fills a screen space triangle with depth testing
func (f *Frame) FillTriangle(x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	fillTriangleWithDepth(f.Image, f.zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, col)
}

// Line draws a screen space line without depth testing
func (f *Frame) Line(x1, y1, x2, y2 float64, col color.RGBA) {
	drawLine(f.Image, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), col)
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := img.Bounds()
	width := bounds.Max.X

	// Scanline algorithm with depth interpolation
	for y := int(math.Max(0, math.Ceil(y1))); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		var xs, zs [3]float64
		n := 0
		edge := func(ax, ay, az, bx, by, bz float64) {
			if ay == by || fy < ay || fy > by || n == 2 {
				return
			}
			t := (fy - ay) / (by - ay)
			xs[n] = ax + t*(bx-ax)
			zs[n] = az + t*(bz-az)
			n++
		}
		edge(x1, y1, z1, x2, y2, z2)
		edge(x2, y2, z2, x3, y3, z3)
		edge(x1, y1, z1, x3, y3, z3)
		if n < 2 {
			continue
		}

		xStart, xEnd, zStart, zEnd := xs[0], xs[1], zs[0], zs[1]
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		xStartInt := int(math.Max(0, math.Ceil(xStart)))
		xEndInt := int(math.Min(float64(bounds.Max.X-1), xEnd))

		for x := xStartInt; x <= xEndInt; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Label draws text centered on x with its baseline at y, ignoring depth
func (f *Frame) Label(x, y float64, text string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  f.Image,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(x))) - width/2,
		Y: fixed.I(int(math.Round(y))),
	}
	d.DrawString(text)
}
