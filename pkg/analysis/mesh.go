// Package analysis summarizes the meshes used as ring prefabs and mesh
// colliders.
package analysis

import (
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/stl"
)

// MeshSummary contains measurements of an STL model
type MeshSummary struct {
	Name          string
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	// Degenerate counts triangles with zero area, they never stop a ray
	Degenerate int
	// Footprint is the largest distance of a vertex from the Z axis, the axis a ring faces along. A ring
	// prefab scaled by s covers a host of radius r when s*Footprint >= r.
	Footprint float64
}

// Analyze measures model
func Analyze(model *stl.Model) *MeshSummary {
	result := &MeshSummary{
		Name:          model.Name,
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	if result.TriangleCount == 0 {
		return result
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range model.Triangles {
		if triangle.Area() < 1e-12 {
			result.Degenerate++
		}
		for _, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			result.Footprint = math.Max(result.Footprint, math.Hypot(v.X, v.Y))
		}
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = result.TriangleCount * 3
	result.MinEdgeLength = minLength
	result.MaxEdgeLength = maxLength
	result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	return result
}

// Print writes the summary as indented lines
func (m *MeshSummary) Print(w io.Writer, indent string) {
	fmt.Fprintf(w, "%sMesh: %s\n", indent, m.Name)
	fmt.Fprintf(w, "%s  Triangles: %d\n", indent, m.TriangleCount)
	if m.TriangleCount == 0 {
		return
	}
	fmt.Fprintf(w, "%s  Size: %s\n", indent, FormatVector(m.Dimensions))
	fmt.Fprintf(w, "%s  Surface Area: %.4f\n", indent, m.SurfaceArea)
	fmt.Fprintf(w, "%s  Edges: %d (min %.4f, max %.4f, avg %.4f)\n",
		indent, m.EdgeCount, m.MinEdgeLength, m.MaxEdgeLength, m.AvgEdgeLength)
	fmt.Fprintf(w, "%s  Footprint: %.4f\n", indent, m.Footprint)
	if m.Degenerate > 0 {
		fmt.Fprintf(w, "%s  Degenerate triangles: %d\n", indent, m.Degenerate)
	}
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
