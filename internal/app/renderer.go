package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/scene"
	"github.com/philipparndt/goring/pkg/stl"
)

// stlToRaylibMesh converts an STL model to a Raylib mesh with baked
// lighting. Vertex colors are gray levels so the material color tints them.
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Min 35% ambient, max 100% diffuse. Rings are flat so both faces are lit.
		level := uint8(255 * math.Max(0.35, math.Abs(normal.Dot(lightDir))))

		for i, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			texcoords[idx*2+0] = float32(i & 1)
			texcoords[idx*2+1] = float32(i >> 1)
			colors[idx*4+0] = level
			colors[idx*4+1] = level
			colors[idx*4+2] = level
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

// meshFor returns the uploaded mesh of model, uploading it on first use
func (s *SceneData) meshFor(model *stl.Model) rl.Mesh {
	if mesh, ok := s.meshes[model]; ok {
		return mesh
	}
	if s.meshes == nil {
		s.meshes = make(map[*stl.Model]rl.Mesh)
	}
	mesh := stlToRaylibMesh(model)
	s.meshes[model] = mesh
	return mesh
}

// releaseMeshes unloads every uploaded mesh
func (s *SceneData) releaseMeshes() {
	for model, mesh := range s.meshes {
		rl.UnloadMesh(&mesh)
		delete(s.meshes, model)
	}
}

// objectTransform returns the world matrix of o
func objectTransform(o *scene.Object) rl.Matrix {
	scale := o.LossyScale()
	q := o.Rotation()
	p := o.Position()

	matScale := rl.MatrixScale(float32(scale.X), float32(scale.Y), float32(scale.Z))
	matRotation := rl.QuaternionToMatrix(rl.Quaternion{X: float32(q.X), Y: float32(q.Y), Z: float32(q.Z), W: float32(q.W)})
	matTranslation := rl.MatrixTranslate(float32(p.X), float32(p.Y), float32(p.Z))
	return rl.MatrixMultiply(rl.MatrixMultiply(matScale, matRotation), matTranslation)
}

// drawObjects draws every active object with a mesh renderer
func (app *App) drawObjects() {
	diffuse := app.Scene.material.GetMap(rl.MapDiffuse)

	app.Scene.world.Scene.Walk(func(o *scene.Object) bool {
		if !o.ActiveInHierarchy() {
			return false
		}
		r := o.Renderer
		if r == nil || r.Mesh == nil || len(r.Mesh.Triangles) == 0 {
			return true
		}
		// A zero scale ring is hidden
		if s := o.LossyScale(); s.X == 0 && s.Y == 0 && s.Z == 0 {
			return true
		}

		diffuse.Color = rl.NewColor(r.Color.R, r.Color.G, r.Color.B, r.Color.A)
		rl.DrawMesh(app.Scene.meshFor(r.Mesh), app.Scene.material, objectTransform(o))
		return true
	})

	diffuse.Color = rl.White
}
