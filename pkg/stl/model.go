package stl

import (
	"github.com/philipparndt/goring/pkg/geometry"
)

// Model represents a triangle mesh loaded from or written to STL
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// NewRingModel builds a flat ring mesh facing +Z, usable as a ring prefab
func NewRingModel(name string, innerRadius, outerRadius float64, segments int) (*Model, error) {
	triangles, err := geometry.RingMesh(innerRadius, outerRadius, segments)
	if err != nil {
		return nil, err
	}
	return &Model{Name: name, Triangles: triangles}, nil
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
