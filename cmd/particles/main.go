// Package main provides a particle preset viewer for tuning the ambient
// particle fields and the celebration burst of the storybook.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--presets <path>      Particle preset YAML (default: data/particles.yaml)
//	--preset <name>       Start with a specific preset (e.g., --preset=confetti)
//	--density <0..1>      Density multiplier applied to seed count and cap
//	--burst <n>           Glyphs per burst (default: 12)
//	--reduced-motion      Start with reduced motion enabled
//	--verbose             Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Spawn a burst at cursor position
//	Space             - Spawn a burst at screen center
//	Left/Right Arrow  - Switch to previous/next preset
//	M                 - Toggle reduced motion (restarts the field)
//	R                 - Restart the field
//	S                 - Stop the field
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/systems"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	frameDT      = 1.0 / 60.0
)

var errQuit = errors.New("quit requested")

var (
	presetsFlag       = flag.String("presets", "data/particles.yaml", "Particle preset YAML path")
	presetFlag        = flag.String("preset", particle.PresetHearts, "Start with a specific preset")
	densityFlag       = flag.Float64("density", 1.0, "Density multiplier (0..1)")
	burstFlag         = flag.Int("burst", 12, "Glyphs per burst")
	reducedMotionFlag = flag.Bool("reduced-motion", false, "Start with reduced motion enabled")
	verboseFlag       = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// ParticleViewerGame implements ebiten.Game interface for the preset viewer
type ParticleViewerGame struct {
	sched         *game.Scheduler
	entityManager *ecs.EntityManager
	burst         *systems.BurstSystem
	field         *systems.ParticleField
	rng           *rand.Rand

	presets      map[string]particle.Preset
	names        []string
	currentIndex int

	density       float64
	burstCount    int
	reducedMotion bool

	width, height int
	statusMessage string
}

// NewParticleViewerGame creates a new viewer instance
func NewParticleViewerGame(presetsPath, start string) (*ParticleViewerGame, error) {
	presets, err := config.LoadParticlePresets(presetsPath)
	if err != nil {
		log.Printf("Warning: %v (using built-in presets)", err)
		presets = particle.DefaultPresets()
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	index := sort.SearchStrings(names, start)
	if index >= len(names) || names[index] != start {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", start, names)
	}

	sched := game.NewScheduler()
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(rand.Int63()))

	g := &ParticleViewerGame{
		sched:         sched,
		entityManager: em,
		burst:         systems.NewBurstSystem(em, sched, systems.DefaultBurstConfig(), rng),
		rng:           rng,
		presets:       presets,
		names:         names,
		currentIndex:  index,
		density:       *densityFlag,
		burstCount:    *burstFlag,
		reducedMotion: *reducedMotionFlag,
		width:         screenWidth,
		height:        screenHeight,
	}
	g.restartField()
	return g, nil
}

// restartField 停止当前粒子场并用当前预设重新启动
func (g *ParticleViewerGame) restartField() {
	if g.field != nil {
		g.field.Stop()
	}
	name := g.names[g.currentIndex]
	g.field = systems.NewParticleField(g.sched, g.presets[name], g.rng)
	g.field.ScaleDensity(g.density)
	g.field.Start(g.bounds(), g.reducedMotion)

	g.statusMessage = fmt.Sprintf("Selected: %s", name)
	log.Printf("Current preset: %s (%d/%d), reduced motion %v", name, g.currentIndex+1, len(g.names), g.reducedMotion)
}

func (g *ParticleViewerGame) bounds() particle.Bounds {
	return particle.Bounds{W: float64(g.width), H: float64(g.height)}
}

// Update 处理输入并推进虚拟时钟一帧
func (g *ParticleViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.currentIndex = (g.currentIndex + 1) % len(g.names)
		g.restartField()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.currentIndex = (g.currentIndex - 1 + len(g.names)) % len(g.names)
		g.restartField()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.reducedMotion = !g.reducedMotion
		g.restartField()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restartField()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.field.Stop()
		g.statusMessage = "Field stopped"
	}

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		g.spawnBurst(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawnBurst(float64(g.width)/2, float64(g.height)/2)
	}

	g.sched.Advance(frameDT)
	g.burst.Update(frameDT)
	return nil
}

// spawnBurst 在指定位置发射一次爆发；减少动态效果时不发射
func (g *ParticleViewerGame) spawnBurst(x, y float64) {
	if g.reducedMotion {
		g.statusMessage = "Reduced motion: bursts are disabled"
		return
	}
	n := g.burst.Emit(x, y, g.burstCount)
	g.statusMessage = fmt.Sprintf("Burst of %d at (%.0f, %.0f)", n, x, y)
}

// Draw renders the viewer
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	g.field.Draw(screen)
	g.burst.Draw(screen)
	g.drawUI(screen)
}

// drawUI draws the overlay with preset info and controls
func (g *ParticleViewerGame) drawUI(screen *ebiten.Image) {
	name := g.names[g.currentIndex]
	p := g.field.Preset()

	lines := []string{
		fmt.Sprintf("Particle Viewer - Preset %d/%d: %s (%s, %s)", g.currentIndex+1, len(g.names), name, p.Glyph, directionName(p.Direction)),
		fmt.Sprintf("Particles: %d / cap %d (seed %d, spawn chance %.3f, density %.2f)", g.field.Count(), p.MaxCount, p.SeedCount, p.SpawnChance, g.density),
		fmt.Sprintf("Burst glyphs: %d   Pending timers: %d   Frame callbacks: %d", g.burst.Active(), g.sched.Pending(), g.sched.PendingFrames()),
		fmt.Sprintf("Reduced motion: %v   Running: %v", g.reducedMotion, g.field.Running()),
	}
	if g.statusMessage != "" {
		lines = append(lines, g.statusMessage)
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*20)
	}

	controls := []string{
		"Presets: <-/-> = Prev/Next  R = Restart  S = Stop  M = Toggle reduced motion",
		"Actions: Click/Space = Burst  Q = Quit",
	}
	y := g.height - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}
}

func directionName(d particle.Direction) string {
	if d == particle.DirectionDown {
		return "falling"
	}
	return "rising"
}

// Layout 跟随窗口尺寸，尺寸变化时通知粒子场
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(g.bounds())
	}
	return g.width, g.height
}

func main() {
	flag.Parse()

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	log.Println("=== Storybook Particle Viewer ===")
	viewer, err := NewParticleViewerGame(*presetsFlag, *presetFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize viewer:", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Storybook Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
