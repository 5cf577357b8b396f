// Command particles is an interactive viewer for the shipped particle
// effects.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--effect <name>   Start with a specific effect (overrides the saved one)
//	--auto-play       Automatically cycle through effects every 4 seconds
//	--verbose         Enable log output (default off)
//
// Controls:
//
//	Left/Right Arrow  - Switch to previous/next effect
//	Mouse Click       - Move the system to the cursor
//	Space             - Move the system back to the screen center
//	R                 - Restart the current effect
//	S                 - Graceful stop (live particles finish naturally)
//	P                 - Toggle pause
//	D                 - Toggle the debug overlay
//	- / =             - Slow down / speed up the simulation
//	A                 - Toggle auto-play
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/particlefx/internal/effect"
	"github.com/gonewx/particlefx/pkg/engine"
	"github.com/gonewx/particlefx/pkg/vmath"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	// autoPlayInterval is how long each effect plays in auto-play mode.
	autoPlayInterval = 4 * time.Second

	// focalLength drives the perspective size attenuation along Z.
	focalLength = 400.0

	// discRadius is the radius of the generated particle sprite in pixels.
	discRadius = 16
)

var (
	effectFlag   = flag.String("effect", "", "Start with a specific effect")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects")
	verboseFlag  = flag.Bool("verbose", false, "Enable log output (default off)")
)

var errQuit = errors.New("quit requested")

// ViewerGame implements ebiten.Game around one live particle system.
type ViewerGame struct {
	store  *SettingsStore
	names  []string
	index  int
	system *engine.System

	sprite   *ebiten.Image
	worldPos vmath.Vec3

	paused    bool
	autoPlay  bool
	lastCycle time.Time

	statusMessage string
}

// NewViewerGame builds the viewer on the embedded effect library.
func NewViewerGame(store *SettingsStore) (*ViewerGame, error) {
	names := effect.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("no effects in the embedded library")
	}

	start := store.Settings().LastEffect
	if *effectFlag != "" {
		start = *effectFlag
	}
	index := 0
	for i, name := range names {
		if name == start {
			index = i
			break
		}
	}

	g := &ViewerGame{
		store:     store,
		names:     names,
		index:     index,
		sprite:    newDiscSprite(discRadius),
		autoPlay:  *autoPlayFlag || store.Settings().AutoPlay,
		lastCycle: time.Now(),
	}
	if err := g.loadCurrent(); err != nil {
		return nil, err
	}
	log.Printf("Viewer initialized: %d effects, starting with %s", len(names), g.names[g.index])
	return g, nil
}

// newDiscSprite generates the soft disc every particle is drawn with:
// opaque white at the center falling off quadratically to transparent at the
// rim.
func newDiscSprite(radius int) *ebiten.Image {
	d := radius * 2
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx := float64(x-radius) + 0.5
			dy := float64(y-radius) + 0.5
			dist := math.Sqrt(dx*dx+dy*dy) / float64(radius)
			if dist >= 1 {
				continue
			}
			fade := 1 - dist*dist
			v := uint8(255 * fade)
			// Premultiplied alpha.
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// loadCurrent rebuilds the particle system for the selected effect and
// recenters it.
func (g *ViewerGame) loadCurrent() error {
	name := g.names[g.index]
	cfg, err := effect.Load(name)
	if err != nil {
		return err
	}
	s, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("building %s: %w", name, err)
	}
	g.system = s
	g.worldPos = vmath.Vec3{X: screenWidth / 2, Y: screenHeight / 2}
	s.SetWorldPos(g.worldPos)
	g.statusMessage = fmt.Sprintf("[%d/%d] %s", g.index+1, len(g.names), name)

	g.store.Settings().LastEffect = name
	if err := g.store.Save(); err != nil {
		log.Printf("Warning: failed to save settings: %v", err)
	}
	return nil
}

func (g *ViewerGame) switchEffect(delta int) {
	g.index = (g.index + delta + len(g.names)) % len(g.names)
	if err := g.loadCurrent(); err != nil {
		log.Printf("Failed to load effect: %v", err)
	}
	g.lastCycle = time.Now()
}

// Update advances the viewer by one 60 Hz tick.
func (g *ViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.switchEffect(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.switchEffect(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.loadCurrent(); err != nil {
			log.Printf("Failed to restart effect: %v", err)
		}
		g.lastCycle = time.Now()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.system.Stop()
		g.statusMessage = "Stopping: live particles finish naturally"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		st := g.store.Settings()
		st.ShowOverlay = !st.ShowOverlay
		if err := g.store.Save(); err != nil {
			log.Printf("Warning: failed to save settings: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.autoPlay = !g.autoPlay
		g.store.Settings().AutoPlay = g.autoPlay
		if err := g.store.Save(); err != nil {
			log.Printf("Warning: failed to save settings: %v", err)
		}
		g.lastCycle = time.Now()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.system.SetSpeed(g.system.Speed() / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.system.SetSpeed(g.system.Speed() * 2)
	}

	// Moving the system shows the world-position lock: locked effects leave
	// their particles behind.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.worldPos = vmath.Vec3{X: float64(x), Y: float64(y)}
		g.system.SetWorldPos(g.worldPos)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.worldPos = vmath.Vec3{X: screenWidth / 2, Y: screenHeight / 2}
		g.system.SetWorldPos(g.worldPos)
	}

	if g.autoPlay && time.Since(g.lastCycle) > autoPlayInterval {
		g.switchEffect(1)
	}
	if g.system.Finished() {
		if g.autoPlay {
			g.switchEffect(1)
		} else {
			g.statusMessage = fmt.Sprintf("%s finished - R to restart", g.names[g.index])
		}
	}

	if !g.paused {
		g.system.Update(1.0 / 60.0)
	}
	return nil
}

// Draw renders every active buffer slot as a tinted, rotated, Z-attenuated
// disc.
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 24, A: 255})

	buf := g.system.Buffer()
	buf.ConsumeDirty()
	positions := buf.Positions()
	colors := buf.Colors()
	alphas := buf.Alphas()
	sizes := buf.Sizes()
	rotations := buf.Rotations()

	for i := 0; i < buf.Active(); i++ {
		x := float64(positions[i*3]) + g.worldPos.X
		y := float64(positions[i*3+1]) + g.worldPos.Y
		z := float64(positions[i*3+2])

		persp := focalLength / (focalLength + z)
		if persp <= 0 {
			continue
		}
		size := 4.0
		if sizes != nil {
			size = float64(sizes[i])
		}
		scale := size * persp / discRadius
		if scale <= 0 {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-discRadius, -discRadius)
		if rotations != nil {
			op.GeoM.Rotate(float64(rotations[i]))
		}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)

		if colors != nil {
			op.ColorScale.Scale(colors[i*3], colors[i*3+1], colors[i*3+2], 1)
		}
		if alphas != nil {
			op.ColorScale.ScaleAlpha(alphas[i])
		}
		screen.DrawImage(g.sprite, op)
	}

	if g.store.Settings().ShowOverlay {
		g.drawOverlay(screen)
	}
}

func (g *ViewerGame) drawOverlay(screen *ebiten.Image) {
	state := "running"
	switch g.system.State() {
	case engine.StateExpired:
		state = "expired"
	case engine.StateFinished:
		state = "finished"
	}
	if g.paused {
		state = "paused"
	}
	msg := fmt.Sprintf(
		"%s\nalive %d / dead %d (cap %d)\nstate %s  speed %.2gx  fps %.0f\n"+
			"arrows: effect  click: move  R: restart  S: stop  P: pause  D: overlay  A: auto  Q: quit",
		g.statusMessage, g.system.Alive(), g.system.Dead(), g.system.Capacity(),
		state, g.system.Speed(), ebiten.ActualFPS())
	ebitenutil.DebugPrint(screen, msg)
}

// Layout reports the fixed logical screen size.
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	manager, err := gdata.Open(gdata.Config{AppName: "particlefx_viewer"})
	if err != nil {
		// Degraded mode: settings stay in memory for this session.
		log.Printf("Warning: settings storage unavailable: %v", err)
		manager = nil
	}
	store := NewSettingsStore(manager)

	game, err := NewViewerGame(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize viewer: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("particlefx viewer")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}
}
