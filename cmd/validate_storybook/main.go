// Package main validates a storybook configuration before it is shipped.
//
// It loads the storybook and particle preset YAML the same way the app does,
// checks every scene's content, ambient preset and photos, and prints the
// reveal timeline of each scene.
//
// Usage:
//
//	go run ./cmd/validate_storybook [flags]
//
// Flags:
//
//	--config <path>       Storybook YAML (default: data/storybook.yaml)
//	--particles <path>    Particle preset YAML (default: data/particles.yaml)
//	--root <dir>          Directory image paths are relative to (default: .)
//	--quiet               Only print problems
//
// Exit status is 1 when any problem is found.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/scenes"
	"github.com/gonewx/storybook/pkg/systems"
)

var (
	configFlag    = flag.String("config", "data/storybook.yaml", "Storybook YAML path")
	particlesFlag = flag.String("particles", "data/particles.yaml", "Particle preset YAML path")
	rootFlag      = flag.String("root", ".", "Directory image paths are relative to")
	quietFlag     = flag.Bool("quiet", false, "Only print problems")
)

// problem 一条校验问题
type problem struct {
	scene string
	err   error
}

func (p problem) String() string {
	if p.scene == "" {
		return p.err.Error()
	}
	return fmt.Sprintf("%s: %v", p.scene, p.err)
}

// check 校验每个场景的内容、环境粒子预设和图片
func check(story *config.StorybookConfig, presets map[string]particle.Preset, fsys fs.FS) []problem {
	var problems []problem
	for i := range story.Scenes {
		sd := &story.Scenes[i]
		name := sd.ID.String()

		if err := scenes.ValidateScene(sd); err != nil {
			problems = append(problems, problem{scene: name, err: err})
		}
		if sd.Ambient != "" {
			if _, ok := presets[sd.Ambient]; !ok {
				problems = append(problems, problem{scene: name, err: fmt.Errorf("unknown ambient preset %q", sd.Ambient)})
			}
		}
		for _, path := range sd.Images {
			if _, err := fs.Stat(fsys, filepath.ToSlash(path)); err != nil {
				problems = append(problems, problem{scene: name, err: fmt.Errorf("image %s: %w", path, err)})
			}
		}
		if sd.Kind == config.KindProposal && sd.Accept == sd.Decline && sd.Accept != "" {
			problems = append(problems, problem{scene: name, err: errors.New("accept and decline labels are identical")})
		}
	}
	return problems
}

// timeline 返回场景的揭示时长描述
func timeline(sd *config.SceneDescriptor) string {
	timing := systems.RevealTiming{BaseOffset: sd.BaseOffset, SettleOffset: sd.SettleOffset}
	switch sd.Kind {
	case config.KindReveal:
		n := len(sd.Items)
		return fmt.Sprintf("%d items, last at %v, complete at %v", n,
			timing.ItemAt(max(n-1, 0), sd.ItemDelay), timing.CompletionAt(n, sd.ItemDelay))
	case config.KindLetter:
		n := len([]rune(sd.Body))
		return fmt.Sprintf("%d runes, typed by %v", n, timing.CompletionAt(n, sd.TypingSpeed))
	case config.KindQuiz:
		return fmt.Sprintf("%d options, exit after %v", len(sd.Options), sd.ExitDelay)
	case config.KindGallery:
		return fmt.Sprintf("%d pages", max(len(sd.Items), len(sd.Images)))
	case config.KindProposal:
		return fmt.Sprintf("exit after %v", sd.ExitDelay)
	case config.KindSpin:
		return fmt.Sprintf("%d options, lands after %v", len(sd.Items), scenes.SpinLandingAfter())
	}
	return "-"
}

func printSummary(story *config.StorybookConfig) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tSCENE\tKIND\tAMBIENT\tBURST\tTIMELINE\n")
	for i := range story.Scenes {
		sd := &story.Scenes[i]
		ambient := sd.Ambient
		if ambient == "" {
			ambient = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", i+1, sd.ID, sd.Kind, ambient, sd.Burst, timeline(sd))
	}
	w.Flush()
}

func main() {
	flag.Parse()

	story, err := config.LoadStorybookConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", *configFlag, err)
		os.Exit(1)
	}
	presets, err := config.LoadParticlePresets(*particlesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", *particlesFlag, err)
		os.Exit(1)
	}

	if !*quietFlag {
		fmt.Printf("%s (%d scenes, %d presets)\n\n", story.Title, len(story.Scenes), len(presets))
		printSummary(story)
		fmt.Println()
	}

	start := time.Now()
	problems := check(story, presets, os.DirFS(*rootFlag))
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "FAIL %s\n", p)
	}
	if len(problems) > 0 {
		os.Exit(1)
	}
	if !*quietFlag {
		fmt.Printf("OK (%v)\n", time.Since(start).Round(time.Microsecond))
	}
}
