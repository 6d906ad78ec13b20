package sim

import (
	"fmt"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/ring"
	"github.com/philipparndt/goring/pkg/scene"
)

// prefabAsset exposes a scene prefab as a ring prefab
type prefabAsset struct {
	prefab *scene.Prefab
}

func (p prefabAsset) Name() string {
	return p.prefab.Name
}

// spawner instantiates ring prefabs as children of one host
type spawner struct {
	prefab *scene.Prefab
	host   *scene.Object
}

func (s *spawner) Instantiate(p ring.Prefab, position geometry.Vector3) (ring.Visual, error) {
	asset, ok := p.(prefabAsset)
	if !ok || asset.prefab != s.prefab {
		return nil, fmt.Errorf("prefab %s does not belong to this scene", p.Name())
	}
	if s.host.Destroyed() {
		return nil, fmt.Errorf("host %s was destroyed", s.host.Name)
	}
	return asset.prefab.Instantiate(position, geometry.Identity, s.host), nil
}
