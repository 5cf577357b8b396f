// Package effect provides the yaml effect-document format and turns parsed
// documents into engine configurations. Documents use a compact value
// grammar: a plain number is a constant, a two-element sequence is a random
// range, and mappings select the box/sphere vector distributions or the
// from/to animated form of an attribute.
package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/particlefx/pkg/value"
	"github.com/gonewx/particlefx/pkg/vmath"
)

// scalarNode parses a scalar source: `0.7` or `[0.2, 0.9]`.
type scalarNode struct {
	src value.ScalarSource
}

func (n *scalarNode) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("scalar value: %w", err)
		}
		n.src = value.Scalar(v)
		return nil
	case yaml.SequenceNode:
		var r [2]float64
		if err := node.Decode(&r); err != nil {
			return fmt.Errorf("scalar range, want [min, max]: %w", err)
		}
		n.src = value.ScalarRange{Min: r[0], Max: r[1]}
		return nil
	default:
		return fmt.Errorf("scalar value: want a number or [min, max], got %s", node.Tag)
	}
}

// vec3Node parses a plain `[x, y, z]` triple.
type vec3Node struct {
	v vmath.Vec3
}

func (n *vec3Node) UnmarshalYAML(node *yaml.Node) error {
	var a [3]float64
	if err := node.Decode(&a); err != nil {
		return fmt.Errorf("vector, want [x, y, z]: %w", err)
	}
	n.v = vmath.Vec3{X: a[0], Y: a[1], Z: a[2]}
	return nil
}

// boxDoc is the `{box: {min: [...], max: [...]}}` vector distribution.
type boxDoc struct {
	Min vec3Node `yaml:"min"`
	Max vec3Node `yaml:"max"`
}

// sphereDoc is the `{sphere: {radius: [min, max], ...}}` vector distribution.
type sphereDoc struct {
	Radius   [2]float64 `yaml:"radius"`
	ClampMin *vec3Node  `yaml:"clampMin"`
	ClampMax *vec3Node  `yaml:"clampMax"`
	Scale    *vec3Node  `yaml:"scale"`
}

// vectorNode parses a vector source: `[x, y, z]`, `{box: ...}` or
// `{sphere: ...}`.
type vectorNode struct {
	src value.VectorSource
}

func (n *vectorNode) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var v vec3Node
		if err := v.UnmarshalYAML(node); err != nil {
			return err
		}
		n.src = value.Vector(v.v)
		return nil
	case yaml.MappingNode:
		var doc struct {
			Box    *boxDoc    `yaml:"box"`
			Sphere *sphereDoc `yaml:"sphere"`
		}
		if err := node.Decode(&doc); err != nil {
			return fmt.Errorf("vector source: %w", err)
		}
		switch {
		case doc.Box != nil && doc.Sphere != nil:
			return fmt.Errorf("vector source: box and sphere are mutually exclusive")
		case doc.Box != nil:
			n.src = value.VectorBox{Min: doc.Box.Min.v, Max: doc.Box.Max.v}
			return nil
		case doc.Sphere != nil:
			s := value.VectorSphere{
				MinRadius: doc.Sphere.Radius[0],
				MaxRadius: doc.Sphere.Radius[1],
			}
			if doc.Sphere.ClampMin != nil {
				s.ClampMin = &doc.Sphere.ClampMin.v
			}
			if doc.Sphere.ClampMax != nil {
				s.ClampMax = &doc.Sphere.ClampMax.v
			}
			if doc.Sphere.Scale != nil {
				s.Scale = &doc.Sphere.Scale.v
			}
			n.src = s
			return nil
		default:
			return fmt.Errorf("vector source: want box or sphere")
		}
	default:
		return fmt.Errorf("vector source: want [x, y, z], box or sphere, got %s", node.Tag)
	}
}

// rgbNode parses a plain `[r, g, b]` triple.
type rgbNode struct {
	c vmath.RGB
}

func (n *rgbNode) UnmarshalYAML(node *yaml.Node) error {
	var a [3]float64
	if err := node.Decode(&a); err != nil {
		return fmt.Errorf("color, want [r, g, b]: %w", err)
	}
	n.c = vmath.RGB{R: a[0], G: a[1], B: a[2]}
	return nil
}

// colorNode parses a color source: `[r, g, b]` or
// `{min: [...], max: [...]}`.
type colorNode struct {
	src value.ColorSource
}

func (n *colorNode) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var c rgbNode
		if err := c.UnmarshalYAML(node); err != nil {
			return err
		}
		n.src = value.Color(c.c)
		return nil
	case yaml.MappingNode:
		var doc struct {
			Min *rgbNode `yaml:"min"`
			Max *rgbNode `yaml:"max"`
		}
		if err := node.Decode(&doc); err != nil {
			return fmt.Errorf("color source: %w", err)
		}
		if doc.Min == nil || doc.Max == nil {
			return fmt.Errorf("color range: want both min and max")
		}
		n.src = value.ColorRange{Min: doc.Min.c, Max: doc.Max.c}
		return nil
	default:
		return fmt.Errorf("color source: want [r, g, b] or {min, max}, got %s", node.Tag)
	}
}
