package convert

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/scenebridge/scene"
)

// rules is the ordered rule list. Specific triggers come before the general
// substring triggers they overlap with ("brickcolor" and "colorsequence"
// both contain "color"), so first-match dispatch stays unambiguous.
var rules = []Rule{
	{
		Name:  "value-container",
		Match: matchValueContainer,
		Apply: applyValueContainer,
	},
	{
		Name:  "brickcolor",
		Match: matchContains("brickcolor", "teamcolor"),
		Apply: applyBrickColor,
	},
	{
		Name:  "colorsequence",
		Match: matchContains("colorsequence"),
		Apply: applyColorSequence,
	},
	{
		Name:  "numbersequence",
		Match: matchContains("numbersequence"),
		Apply: applyNumberSequence,
	},
	{
		Name:  "color",
		Match: matchContains("color"),
		Apply: applyColor,
	},
	{
		Name:  "udim2",
		Match: matchContains("udim2"),
		Apply: applyUDim2,
	},
	{
		Name:  "udim",
		Match: matchContains("udim"),
		Apply: applyUDim,
	},
	{
		Name:  "vector3",
		Match: matchContains("position", "size", "vector3"),
		Apply: applyVector3OrLayout,
	},
	{
		Name:  "vector2",
		Match: matchContains("vector2"),
		Apply: applyVector2,
	},
	{
		Name:  "rect",
		Match: matchContains("rect"),
		Apply: applyRect,
	},
	{
		Name:  "numberrange",
		Match: matchContains("numberrange"),
		Apply: applyNumberRange,
	},
	{
		Name:  "cframe",
		Match: matchContains("cframe", "cf", "transform", "pivot"),
		Apply: applyCFrame,
	},
	{
		Name:  "physicalproperties",
		Match: matchContains("physicalproperties"),
		Apply: applyPhysicalProperties,
	},
}

func matchContains(needles ...string) func(string, scene.Node) bool {
	return func(field string, _ scene.Node) bool {
		for _, n := range needles {
			if strings.Contains(field, n) {
				return true
			}
		}
		return false
	}
}

func matchValueContainer(field string, node scene.Node) bool {
	if field != "value" || node == nil {
		return false
	}
	return scene.ContainerKind(node.Kind()) != scene.NotValueContainer
}

func applyValueContainer(raw any, node scene.Node) (any, error) {
	switch scene.ContainerKind(node.Kind()) {
	case scene.Vector3Container:
		return applyVector3(raw)
	case scene.Color3Container:
		return applyColor(raw, node)
	case scene.BrickColorContainer:
		return applyBrickColor(raw, node)
	default:
		return raw, nil
	}
}

func applyColor(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("color: expected record with r, g, b")
	}
	r := newReader(rec)
	c := scene.Color3{R: r.req("r"), G: r.req("g"), B: r.req("b")}
	if err := r.err("color"); err != nil {
		return nil, err
	}
	return c, nil
}

func applyVector3(raw any) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("vector3: expected record with x, y, z")
	}
	r := newReader(rec)
	v := scene.Vector3{X: r.req("x"), Y: r.req("y"), Z: r.req("z")}
	if err := r.err("vector3"); err != nil {
		return nil, err
	}
	return v, nil
}

// applyVector3OrLayout converts Position/Size-like fields. The node context
// selects the native type: a 2D-layout node takes a scale/offset pair, every
// other node takes a 3-axis vector.
func applyVector3OrLayout(raw any, node scene.Node) (any, error) {
	if node != nil && scene.IsLayoutKind(node.Kind()) {
		return applyScaleOffset(raw, "position")
	}
	return applyVector3(raw)
}

// scale/offset key spellings accepted on the wire, per axis.
var (
	xScaleKeys  = []string{"x_scale", "scale_x"}
	xOffsetKeys = []string{"x_offset", "offset_x"}
	yScaleKeys  = []string{"y_scale", "scale_y"}
	yOffsetKeys = []string{"y_offset", "offset_y"}
)

func applyScaleOffset(raw any, rule string) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("%s: expected record with x_scale, x_offset, y_scale, y_offset", rule)
	}
	r := newReader(rec)
	all := append(append(append(append([]string{}, xScaleKeys...), xOffsetKeys...), yScaleKeys...), yOffsetKeys...)
	if !r.hasAny(all...) {
		return nil, fmt.Errorf("%s: missing scale/offset keys (expected x_scale, x_offset, y_scale, y_offset)", rule)
	}
	u := scene.UDim2{
		X: scene.UDim{Scale: r.optAlias(0, xScaleKeys...), Offset: r.optAlias(0, xOffsetKeys...)},
		Y: scene.UDim{Scale: r.optAlias(0, yScaleKeys...), Offset: r.optAlias(0, yOffsetKeys...)},
	}
	if err := r.err(rule); err != nil {
		return nil, err
	}
	return u, nil
}

func applyUDim2(raw any, _ scene.Node) (any, error) {
	return applyScaleOffset(raw, "udim2")
}

func applyUDim(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("udim: expected record with scale, offset")
	}
	r := newReader(rec)
	u := scene.UDim{Scale: r.req("scale"), Offset: r.req("offset")}
	if err := r.err("udim"); err != nil {
		return nil, err
	}
	return u, nil
}

func applyVector2(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("vector2: expected record with x, y")
	}
	r := newReader(rec)
	v := scene.Vector2{X: r.req("x"), Y: r.req("y")}
	if err := r.err("vector2"); err != nil {
		return nil, err
	}
	return v, nil
}

func applyRect(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("rect: expected record with min_x, min_y, max_x, max_y")
	}
	r := newReader(rec)
	rect := scene.Rect{
		Min: scene.Vector2{X: r.req("min_x"), Y: r.req("min_y")},
		Max: scene.Vector2{X: r.req("max_x"), Y: r.req("max_y")},
	}
	if err := r.err("rect"); err != nil {
		return nil, err
	}
	return rect, nil
}

func applyNumberRange(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("numberrange: expected record with min_value, max_value")
	}
	r := newReader(rec)
	nr := scene.NumberRange{Min: r.req("min_value"), Max: r.req("max_value")}
	if err := r.err("numberrange"); err != nil {
		return nil, err
	}
	return nr, nil
}

func applyBrickColor(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("brickcolor: expected record with name, number, or r/g/b")
	}
	if v, ok := rec["name"]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("brickcolor: name must be a string")
		}
		b, ok := scene.BrickColorByName(name)
		if !ok {
			return nil, fmt.Errorf("brickcolor: unknown palette name %q", name)
		}
		return b, nil
	}
	if v, ok := rec["number"]; ok {
		n, ok := toNumber(v)
		if !ok {
			return nil, fmt.Errorf("brickcolor: number must be numeric")
		}
		b, ok := scene.BrickColorByNumber(int(n))
		if !ok {
			return nil, fmt.Errorf("brickcolor: unknown palette number %d", int(n))
		}
		return b, nil
	}
	r := newReader(rec)
	if !r.hasAny("r", "g", "b") {
		return nil, fmt.Errorf("brickcolor: expected name, number, or r/g/b")
	}
	c := scene.Color3{R: r.req("r"), G: r.req("g"), B: r.req("b")}
	if err := r.err("brickcolor"); err != nil {
		return nil, err
	}
	return scene.NearestBrickColor(c), nil
}

func applyNumberSequence(raw any, _ scene.Node) (any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("numbersequence: expected ordered list of {time, value, envelope?}")
	}
	seq := scene.NumberSequence{Keypoints: make([]scene.NumberSequenceKeypoint, 0, len(list))}
	for i, item := range list {
		rec, ok := record(item)
		if !ok {
			return nil, fmt.Errorf("numbersequence: keypoint %d is not a record", i)
		}
		r := newReader(rec)
		kp := scene.NumberSequenceKeypoint{
			Time:     r.req("time"),
			Value:    r.req("value"),
			Envelope: r.opt("envelope", 0),
		}
		if err := r.err(fmt.Sprintf("numbersequence: keypoint %d", i)); err != nil {
			return nil, err
		}
		seq.Keypoints = append(seq.Keypoints, kp)
	}
	return seq, nil
}

func applyColorSequence(raw any, node scene.Node) (any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("colorsequence: expected ordered list of {time, value: {r, g, b}}")
	}
	seq := scene.ColorSequence{Keypoints: make([]scene.ColorSequenceKeypoint, 0, len(list))}
	for i, item := range list {
		rec, ok := record(item)
		if !ok {
			return nil, fmt.Errorf("colorsequence: keypoint %d is not a record", i)
		}
		r := newReader(rec)
		t := r.req("time")
		if err := r.err(fmt.Sprintf("colorsequence: keypoint %d", i)); err != nil {
			return nil, err
		}
		cv, ok := rec["value"]
		if !ok {
			return nil, fmt.Errorf("colorsequence: keypoint %d: missing value", i)
		}
		c, err := applyColor(cv, node)
		if err != nil {
			return nil, fmt.Errorf("colorsequence: keypoint %d: %v", i, err)
		}
		seq.Keypoints = append(seq.Keypoints, scene.ColorSequenceKeypoint{Time: t, Value: c.(scene.Color3)})
	}
	return seq, nil
}

// cframeShapes names the accepted key combinations in errors.
const cframeShapes = "accepted shapes: {x,y,z}, {x,y,z,lookAt_x,lookAt_y,lookAt_z}, or {x,y,z,r00..r22}"

var matrixKeys = []string{"r00", "r01", "r02", "r10", "r11", "r12", "r20", "r21", "r22"}

func applyCFrame(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("cframe: expected record; %s", cframeShapes)
	}
	r := newReader(rec)
	pos := scene.Vector3{X: r.req("x"), Y: r.req("y"), Z: r.req("z")}
	if err := r.err("cframe"); err != nil {
		return nil, fmt.Errorf("%v; %s", err, cframeShapes)
	}

	hasMatrix := r.hasAny(matrixKeys...)
	hasLook := r.hasAny("lookat_x", "look_at_x", "lookat_y", "look_at_y", "lookat_z", "look_at_z")
	switch {
	case hasMatrix && hasLook:
		return nil, fmt.Errorf("cframe: lookAt and rotation matrix are mutually exclusive; %s", cframeShapes)
	case hasMatrix:
		var m [9]float64
		for i, k := range matrixKeys {
			m[i] = r.req(k)
		}
		if err := r.err("cframe"); err != nil {
			return nil, fmt.Errorf("%v; %s", err, cframeShapes)
		}
		return scene.NewCFrameFromMatrix(pos, m), nil
	case hasLook:
		target := scene.Vector3{
			X: r.optAlias(0, "lookat_x", "look_at_x"),
			Y: r.optAlias(0, "lookat_y", "look_at_y"),
			Z: r.optAlias(0, "lookat_z", "look_at_z"),
		}
		if err := r.err("cframe"); err != nil {
			return nil, fmt.Errorf("%v; %s", err, cframeShapes)
		}
		return scene.CFrameLookAt(pos, target), nil
	default:
		return scene.NewCFrame(pos), nil
	}
}

func applyPhysicalProperties(raw any, _ scene.Node) (any, error) {
	rec, ok := record(raw)
	if !ok {
		return nil, fmt.Errorf("physicalproperties: expected record with material_enum_name or density/friction/elasticity")
	}
	if v, ok := rec["material_enum_name"]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("physicalproperties: material_enum_name must be a string")
		}
		p, ok := scene.MaterialProperties(name)
		if !ok {
			return nil, fmt.Errorf("physicalproperties: unknown material %q", name)
		}
		return p, nil
	}
	def := scene.DefaultPhysicalProperties
	r := newReader(rec)
	p := scene.PhysicalProperties{
		Density:          r.opt("density", def.Density),
		Friction:         r.opt("friction", def.Friction),
		Elasticity:       r.opt("elasticity", def.Elasticity),
		FrictionWeight:   r.opt("friction_weight", def.FrictionWeight),
		ElasticityWeight: r.opt("elasticity_weight", def.ElasticityWeight),
	}
	if err := r.err("physicalproperties"); err != nil {
		return nil, err
	}
	return p, nil
}
