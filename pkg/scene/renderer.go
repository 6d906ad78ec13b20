package scene

import (
	"image/color"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/stl"
)

// MeshRenderer draws a mesh in a single color
type MeshRenderer struct {
	Mesh  *stl.Model
	Color color.RGBA
}

// SetColor sets the material color
func (r *MeshRenderer) SetColor(c color.Color) {
	r.Color = color.RGBAModel.Convert(c).(color.RGBA)
}

// WorldTriangles returns the mesh transformed by the owner's world transform
func (r *MeshRenderer) WorldTriangles(owner *Object) []geometry.Triangle {
	if r.Mesh == nil {
		return nil
	}

	position := owner.Position()
	rotation := owner.Rotation()
	scale := owner.LossyScale()
	toWorld := func(v geometry.Vector3) geometry.Vector3 {
		return position.Add(rotation.Rotate(v.Scale(scale)))
	}

	out := make([]geometry.Triangle, len(r.Mesh.Triangles))
	for i, t := range r.Mesh.Triangles {
		out[i] = t.Transform(toWorld)
	}
	return out
}
