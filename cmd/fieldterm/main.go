// Package main provides a terminal preview of the storybook particle fields.
//
// The simulation runs in pixels exactly as in the app (particle.Seed and
// particle.Step); only the draw step differs: particles are mapped onto
// terminal cells and blended against the background colour.
//
// Usage:
//
//	go run ./cmd/fieldterm [flags]
//
// Flags:
//
//	--presets <path>      Particle preset YAML (default: data/particles.yaml)
//	--preset <name>       Preset to preview (default: hearts)
//	--fps <n>             Frames per second (default: 30)
//	--seed <n>            Random seed, 0 = random
//
// Controls:
//
//	n / p    - Next / previous preset
//	r        - Reseed the field
//	Space    - Pause
//	q / Esc  - Quit
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/config"
)

var (
	presetsFlag = flag.String("presets", "data/particles.yaml", "Particle preset YAML path")
	presetFlag  = flag.String("preset", particle.PresetHearts, "Preset to preview")
	fpsFlag     = flag.Int("fps", 30, "Frames per second")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = random)")
)

// preview 终端预览状态，只在主循环的 goroutine 中修改
type preview struct {
	screen tcell.Screen
	rng    *rand.Rand

	presets map[string]particle.Preset
	names   []string
	index   int

	particles  []particle.Particle
	cols, rows int
	paused     bool
	frames     int
}

func newPreview(screen tcell.Screen, presets map[string]particle.Preset, start string, seed int64) (*preview, error) {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	index := sort.SearchStrings(names, start)
	if index >= len(names) || names[index] != start {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", start, names)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &preview{
		screen:  screen,
		rng:     rand.New(rand.NewSource(seed)),
		presets: presets,
		names:   names,
		index:   index,
	}
	p.cols, p.rows = screen.Size()
	p.reseed()
	return p, nil
}

func (p *preview) preset() *particle.Preset {
	preset := p.presets[p.names[p.index]]
	return &preset
}

// reseed 丢弃当前粒子并按预设重新生成初始粒子
func (p *preview) reseed() {
	p.particles = particle.Seed(p.preset(), p.fieldBounds(), p.rng)
	p.frames = 0
}

// fieldBounds 模拟区域：最后一行留给状态栏
func (p *preview) fieldBounds() particle.Bounds {
	return boundsFor(p.cols, max(0, p.rows-1))
}

func (p *preview) step(dt float64) {
	if p.paused {
		return
	}
	b := p.fieldBounds()
	if !b.Valid() {
		return
	}
	p.particles = particle.Step(p.particles, p.preset(), b, dt, p.rng)
	p.frames++
}

func (p *preview) draw() {
	fill(p.screen, p.cols, p.rows)
	drawParticles(p.screen, p.particles, p.preset(), p.cols, max(0, p.rows-1))

	status := fmt.Sprintf(" %s (%d/%d)  particles %d/%d  frame %d  [n/p preset, r reseed, space pause, q quit]",
		p.names[p.index], p.index+1, len(p.names), len(p.particles), p.preset().MaxCount, p.frames)
	if p.paused {
		status += "  PAUSED"
	}
	style := tcell.StyleDefault.Reverse(true)
	for x, r := range []rune(status) {
		if x >= p.cols {
			break
		}
		p.screen.SetContent(x, p.rows-1, r, nil, style)
	}
	p.screen.Show()
}

// handleEvent 返回 false 表示退出
func (p *preview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'n':
			p.index = (p.index + 1) % len(p.names)
			p.reseed()
		case 'p':
			p.index = (p.index - 1 + len(p.names)) % len(p.names)
			p.reseed()
		case 'r':
			p.reseed()
		case ' ':
			p.paused = !p.paused
		}

	case *tcell.EventResize:
		p.screen.Sync()
		p.cols, p.rows = p.screen.Size()
	}
	return true
}

func (p *preview) run(fps int) {
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !p.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			p.step(interval.Seconds())
			p.draw()
		}
	}
}

func main() {
	flag.Parse()
	if *fpsFlag <= 0 {
		fmt.Fprintln(os.Stderr, "--fps must be positive")
		os.Exit(2)
	}

	presets, err := config.LoadParticlePresets(*presetsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using built-in presets)\n", err)
		presets = particle.DefaultPresets()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	p, err := newPreview(screen, presets, *presetFlag, *seedFlag)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p.run(*fpsFlag)
	screen.Fini()
}
