package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/particlefx/pkg/engine"
	"github.com/gonewx/particlefx/pkg/vmath"
)

// defaultCapacity is used when a document omits the pool size.
const defaultCapacity = 256

// scalarAttrDoc parses an animatable scalar attribute. A bare scalar value
// selects constant mode; the `{from, to, threshold, easing}` mapping selects
// animated mode.
type scalarAttrDoc struct {
	attr engine.ScalarAttr
}

func (d *scalarAttrDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var doc struct {
			From      *scalarNode `yaml:"from"`
			To        *scalarNode `yaml:"to"`
			Threshold float64     `yaml:"threshold"`
			Easing    string      `yaml:"easing"`
		}
		if err := node.Decode(&doc); err != nil {
			return fmt.Errorf("animated attribute: %w", err)
		}
		if doc.From == nil || doc.To == nil {
			return fmt.Errorf("animated attribute: want both from and to")
		}
		easing, err := vmath.EasingByName(doc.Easing)
		if err != nil {
			return err
		}
		d.attr = engine.ScalarAttr{
			Start:     doc.From.src,
			End:       doc.To.src,
			Threshold: doc.Threshold,
			Easing:    easing,
		}
		return nil
	}
	var s scalarNode
	if err := s.UnmarshalYAML(node); err != nil {
		return err
	}
	d.attr = engine.ScalarAttr{Value: s.src}
	return nil
}

// colorAttrDoc parses an animatable color attribute. `[r, g, b]` and
// `{min, max}` select constant mode, `{from, to, threshold, easing}` the
// animated one.
type colorAttrDoc struct {
	attr engine.ColorAttr
}

func (d *colorAttrDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		// Raw-node fields: yaml.v3 captures the sub-document unparsed, so a
		// sequence-valued from/to does not fail here.
		var probe struct {
			From yaml.Node `yaml:"from"`
			To   yaml.Node `yaml:"to"`
		}
		if err := node.Decode(&probe); err != nil {
			return fmt.Errorf("color attribute: %w", err)
		}
		if !probe.From.IsZero() || !probe.To.IsZero() {
			var doc struct {
				From      *colorNode `yaml:"from"`
				To        *colorNode `yaml:"to"`
				Threshold float64    `yaml:"threshold"`
				Easing    string     `yaml:"easing"`
			}
			if err := node.Decode(&doc); err != nil {
				return fmt.Errorf("animated color: %w", err)
			}
			if doc.From == nil || doc.To == nil {
				return fmt.Errorf("animated color: want both from and to")
			}
			easing, err := vmath.EasingByName(doc.Easing)
			if err != nil {
				return err
			}
			d.attr = engine.ColorAttr{
				Start:     doc.From.src,
				End:       doc.To.src,
				Threshold: doc.Threshold,
				Easing:    easing,
			}
			return nil
		}
	}
	var c colorNode
	if err := c.UnmarshalYAML(node); err != nil {
		return err
	}
	d.attr = engine.ColorAttr{Value: c.src}
	return nil
}

// rotationDoc parses the rotation block.
type rotationDoc struct {
	Start *scalarNode `yaml:"start"`
	Speed *scalarNode `yaml:"speed"`
}

// gravityDoc parses the per-axis gravity block.
type gravityDoc struct {
	X *scalarNode `yaml:"x"`
	Y *scalarNode `yaml:"y"`
	Z *scalarNode `yaml:"z"`
}

// particleDoc mirrors engine.ParticleConfig in document form.
type particleDoc struct {
	TTL           *scalarNode    `yaml:"ttl"`
	TTLSpread     *scalarNode    `yaml:"ttlSpread"`
	Offset        *vectorNode    `yaml:"offset"`
	Velocity      *vectorNode    `yaml:"velocity"`
	VelocityBonus *vectorNode    `yaml:"velocityBonus"`
	Acceleration  *vectorNode    `yaml:"acceleration"`
	Gravity       *gravityDoc    `yaml:"gravity"`
	Alpha         *scalarAttrDoc `yaml:"alpha"`
	Size          *scalarAttrDoc `yaml:"size"`
	Color         *colorAttrDoc  `yaml:"color"`
	Rotation      *rotationDoc   `yaml:"rotation"`
	Lock          bool           `yaml:"lock"`
}

// emitterDoc mirrors engine.EmitterConfig in document form.
type emitterDoc struct {
	Burst    *scalarNode `yaml:"burst"`
	Interval *scalarNode `yaml:"interval"`
	Quantity *scalarNode `yaml:"quantity"`
	Decay    float64     `yaml:"decay"`
}

// Document is one parsed effect definition.
type Document struct {
	Capacity int         `yaml:"capacity"`
	Lifetime float64     `yaml:"lifetime"`
	Speed    float64     `yaml:"speed"`
	Particle particleDoc `yaml:"particle"`
	Emitters []emitterDoc `yaml:"emitters"`
}

// Parse unmarshals one effect document and compiles it into a system
// configuration. The returned config still goes through engine validation
// in engine.New.
func Parse(data []byte) (engine.SystemConfig, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return engine.SystemConfig{}, fmt.Errorf("parsing effect document: %w", err)
	}
	return doc.Compile()
}

// Compile turns the document into an engine.SystemConfig.
func (d *Document) Compile() (engine.SystemConfig, error) {
	cfg := engine.SystemConfig{
		Capacity: d.Capacity,
		Lifetime: d.Lifetime,
		Speed:    d.Speed,
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = defaultCapacity
	}

	p := &d.Particle
	pc := &cfg.Particle
	if p.TTL != nil {
		pc.TTL = p.TTL.src
	}
	if p.TTLSpread != nil {
		pc.TTLSpread = p.TTLSpread.src
	}
	if p.Offset != nil {
		pc.Offset = p.Offset.src
	}
	if p.Velocity != nil {
		pc.Velocity = p.Velocity.src
	}
	if p.VelocityBonus != nil {
		pc.VelocityBonus = p.VelocityBonus.src
	}
	if p.Acceleration != nil {
		pc.Acceleration = p.Acceleration.src
	}
	if p.Gravity != nil {
		if p.Gravity.X != nil {
			pc.GravityX = p.Gravity.X.src
		}
		if p.Gravity.Y != nil {
			pc.GravityY = p.Gravity.Y.src
		}
		if p.Gravity.Z != nil {
			pc.GravityZ = p.Gravity.Z.src
		}
	}
	if p.Alpha != nil {
		pc.Alpha = p.Alpha.attr
	}
	if p.Size != nil {
		pc.Size = p.Size.attr
	}
	if p.Color != nil {
		pc.Color = p.Color.attr
	}
	if p.Rotation != nil {
		if p.Rotation.Start != nil {
			pc.Rotation.Start = p.Rotation.Start.src
		}
		if p.Rotation.Speed != nil {
			pc.Rotation.Speed = p.Rotation.Speed.src
		}
	}
	pc.LockToSystem = p.Lock

	canSpawn := false
	for i := range d.Emitters {
		e := &d.Emitters[i]
		ec := engine.EmitterConfig{DecayThreshold: e.Decay}
		if e.Burst != nil {
			ec.Burst = e.Burst.src
			canSpawn = true
		}
		if e.Interval != nil {
			ec.Interval = e.Interval.src
			canSpawn = true
		}
		if e.Quantity != nil {
			ec.Quantity = e.Quantity.src
		}
		cfg.Emitters = append(cfg.Emitters, ec)
	}
	if !canSpawn {
		return engine.SystemConfig{}, fmt.Errorf("effect document spawns nothing: want at least one emitter with a burst or interval")
	}
	return cfg, nil
}
