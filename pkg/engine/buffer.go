package engine

import "github.com/gonewx/particlefx/pkg/vmath"

// Dirty names the buffer regions written since the last consume. Range covers
// the active-slot count.
type Dirty struct {
	Position bool
	Color    bool
	Alpha    bool
	Size     bool
	Rotation bool
	Range    bool
}

func (d Dirty) Any() bool {
	return d.Position || d.Color || d.Alpha || d.Size || d.Rotation || d.Range
}

// Buffer is the handoff between the simulation and a renderer: flat float32
// arrays with one slot per pool index. The simulation writes, the renderer
// reads; only the leading Active() slots hold live data. Arrays for color,
// alpha, size and rotation exist only when the system's configuration enables
// the matching attribute, so their accessors may return nil.
type Buffer struct {
	position []float32 // 3 per slot
	color    []float32 // 3 per slot
	alpha    []float32 // 1 per slot
	size     []float32 // 1 per slot
	rotation []float32 // 1 per slot

	active int
	dirty  Dirty
}

func newBuffer(capacity int, withColor, withAlpha, withSize, withRotation bool) *Buffer {
	b := &Buffer{position: make([]float32, capacity*3)}
	if withColor {
		b.color = make([]float32, capacity*3)
	}
	if withAlpha {
		b.alpha = make([]float32, capacity)
	}
	if withSize {
		b.size = make([]float32, capacity)
	}
	if withRotation {
		b.rotation = make([]float32, capacity)
	}
	return b
}

// SetPosition stores v at slot.
func (b *Buffer) SetPosition(slot int, v vmath.Vec3) {
	i := slot * 3
	b.position[i] = float32(v.X)
	b.position[i+1] = float32(v.Y)
	b.position[i+2] = float32(v.Z)
	b.dirty.Position = true
}

// SetColor stores c at slot.
func (b *Buffer) SetColor(slot int, c vmath.RGB) {
	i := slot * 3
	b.color[i] = float32(c.R)
	b.color[i+1] = float32(c.G)
	b.color[i+2] = float32(c.B)
	b.dirty.Color = true
}

// SetAlpha stores a at slot.
func (b *Buffer) SetAlpha(slot int, a float64) {
	b.alpha[slot] = float32(a)
	b.dirty.Alpha = true
}

// SetSize stores s at slot.
func (b *Buffer) SetSize(slot int, s float64) {
	b.size[slot] = float32(s)
	b.dirty.Size = true
}

// SetRotation stores r at slot.
func (b *Buffer) SetRotation(slot int, r float64) {
	b.rotation[slot] = float32(r)
	b.dirty.Rotation = true
}

func (b *Buffer) setActive(n int) {
	b.active = n
	b.dirty.Range = true
}

// Active returns how many leading slots hold live data.
func (b *Buffer) Active() int {
	return b.active
}

// Positions returns the flat [x y z]-per-slot array.
func (b *Buffer) Positions() []float32 { return b.position }

// Colors returns the flat [r g b]-per-slot array, nil when unprovisioned.
func (b *Buffer) Colors() []float32 { return b.color }

// Alphas returns the per-slot alpha array, nil when unprovisioned.
func (b *Buffer) Alphas() []float32 { return b.alpha }

// Sizes returns the per-slot size array, nil when unprovisioned.
func (b *Buffer) Sizes() []float32 { return b.size }

// Rotations returns the per-slot rotation array, nil when unprovisioned.
func (b *Buffer) Rotations() []float32 { return b.rotation }

// ConsumeDirty returns the dirty flags and clears them. Renderers call this
// once per frame and upload only what changed.
func (b *Buffer) ConsumeDirty() Dirty {
	d := b.dirty
	b.dirty = Dirty{}
	return d
}
