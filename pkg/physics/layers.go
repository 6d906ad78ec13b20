package physics

import (
	"fmt"
	"strings"
)

// MaxLayers is the number of distinct collision layers
const MaxLayers = 32

// LayerMask selects a set of collision layers, one bit per layer
type LayerMask uint32

const (
	// Nothing matches no layer
	Nothing LayerMask = 0
	// Everything matches every layer
	Everything LayerMask = ^LayerMask(0)
)

// MaskOf returns a mask containing the given layers
func MaskOf(layers ...int) (LayerMask, error) {
	var mask LayerMask
	for _, layer := range layers {
		if layer < 0 || layer >= MaxLayers {
			return Nothing, fmt.Errorf("layer %d out of range [0, %d)", layer, MaxLayers)
		}
		mask |= 1 << uint(layer)
	}
	return mask, nil
}

// Contains reports whether layer is part of the mask
func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer >= MaxLayers {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// String lists the layers in the mask
func (m LayerMask) String() string {
	switch m {
	case Nothing:
		return "nothing"
	case Everything:
		return "everything"
	}

	var layers []string
	for i := 0; i < MaxLayers; i++ {
		if m.Contains(i) {
			layers = append(layers, fmt.Sprint(i))
		}
	}
	return "layers[" + strings.Join(layers, ",") + "]"
}
