package scene

import "strings"

// DefaultPhysicalProperties is the tuple applied when no material or custom
// values are given.
var DefaultPhysicalProperties = PhysicalProperties{
	Density:          0.7,
	Friction:         0.3,
	Elasticity:       0.5,
	FrictionWeight:   1,
	ElasticityWeight: 1,
}

// materialPresets maps material enum names to their stock physics tuples.
// Weights are 1 for all presets.
var materialPresets = map[string]PhysicalProperties{
	"Plastic":       {0.7, 0.3, 0.5, 1, 1},
	"SmoothPlastic": {0.7, 0.2, 0.5, 1, 1},
	"Wood":          {0.35, 0.48, 0.2, 1, 1},
	"WoodPlanks":    {0.35, 0.48, 0.2, 1, 1},
	"Marble":        {2.563, 0.7, 0.17, 1, 1},
	"Slate":         {2.691, 0.4, 0.2, 1, 1},
	"Concrete":      {2.403, 0.7, 0.2, 1, 1},
	"Granite":       {2.691, 0.4, 0.2, 1, 1},
	"Brick":         {1.922, 0.8, 0.15, 1, 1},
	"Pebble":        {2.403, 0.4, 0.17, 1, 1},
	"Cobblestone":   {2.691, 0.5, 0.17, 1, 1},
	"Metal":         {7.85, 0.4, 0.25, 1, 1},
	"DiamondPlate":  {7.85, 0.35, 0.25, 1, 1},
	"CorrodedMetal": {7.85, 0.7, 0.2, 1, 1},
	"Foil":          {2.7, 0.4, 0.25, 1, 1},
	"Grass":         {0.9, 0.4, 0.1, 1, 1},
	"Sand":          {1.602, 0.5, 0.05, 1, 1},
	"Fabric":        {0.7, 0.35, 0.05, 1, 1},
	"Ice":           {0.919, 0.02, 0.15, 1, 1},
	"Glass":         {2.403, 0.25, 0.2, 1, 1},
	"Neon":          {0.7, 0.3, 0.2, 1, 1},
}

// MaterialProperties returns the stock physics tuple for a material enum
// name, case-insensitively. The second result is false for unknown names.
func MaterialProperties(name string) (PhysicalProperties, bool) {
	if p, ok := materialPresets[name]; ok {
		return p, true
	}
	for k, p := range materialPresets {
		if strings.EqualFold(k, name) {
			return p, true
		}
	}
	return PhysicalProperties{}, false
}
