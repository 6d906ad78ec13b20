package scenario

import (
	"context"
	"fmt"

	"github.com/philipparndt/goring/pkg/openscad"
	"github.com/philipparndt/goring/pkg/stl"
)

// LoadMesh reads the mesh file at path, relative to the scenario. OpenSCAD
// sources are rendered first.
func (f *File) LoadMesh(ctx context.Context, path string) (*stl.Model, error) {
	resolved := f.Resolve(path)
	if openscad.IsSource(resolved) {
		return openscad.NewRenderer(f.Dir).Render(ctx, resolved)
	}
	model, err := stl.Parse(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return model, nil
}

// meshDependencies returns path and, for OpenSCAD sources, the files it uses
func (f *File) meshDependencies(path string) []string {
	resolved := f.Resolve(path)
	if !openscad.IsSource(resolved) {
		return []string{resolved}
	}
	deps, err := openscad.NewRenderer(f.Dir).ResolveDependencies(resolved)
	if err != nil {
		return []string{resolved}
	}
	return deps
}
