package scenes

import (
	"errors"
	"testing"

	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/entities"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/types"
	"github.com/gonewx/storybook/pkg/utils"
)

func TestFallbackSceneContinue(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("boom")
	f := NewFallbackScene(types.SceneQuiz, cause, h.deps())

	if err := f.Mount(h.ctx()); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(f.Cause(), cause) {
		t.Errorf("Cause() = %v", f.Cause())
	}

	x, y, w, hh, ok := entities.ButtonRect(f.entityManager, f.button)
	if !ok {
		t.Fatal("fallback should offer a Continue button")
	}
	h.input.next = utils.InputState{JustPressed: true, X: int(x + w/2), Y: int(y + hh/2)}
	f.Update(0)
	if h.advances != 1 {
		t.Errorf("advances = %d, want 1", h.advances)
	}

	f.Unmount()
	f.Trigger()
	if h.advances != 1 {
		t.Error("trigger after unmount should be a no-op")
	}
}

func TestSceneFactory(t *testing.T) {
	h := newHarness(t)
	factory := NewSceneFactory(h.deps())

	scene, err := factory(types.SceneQuiz)
	if err != nil {
		t.Fatalf("factory(quiz): %v", err)
	}
	if s, ok := scene.(*StoryScene); !ok || s.Kind() != config.KindQuiz {
		t.Errorf("factory returned %T", scene)
	}

	if _, err := factory(types.ScenePrayer); err == nil {
		t.Error("scene missing from the story should be an error")
	}
	if _, err := NewSceneFactory(Deps{})(types.SceneLanding); err == nil {
		t.Error("factory without a story should be an error")
	}
}

// TestSequencerWithStoryScenes 端到端：配置 -> 工厂 -> Sequencer
func TestSequencerWithStoryScenes(t *testing.T) {
	h := newHarness(t)

	// 把选择题改坏：挂载失败后应显示降级场景
	for i := range h.story.Scenes {
		if h.story.Scenes[i].ID == types.SceneQuiz {
			h.story.Scenes[i].Options = []config.QuizOption{{Label: "no answer"}}
		}
	}

	seq, err := game.NewSequencer(h.story.Chain(), NewSceneFactory(h.deps()), NewFallbackFactory(h.deps()), h.sched)
	if err != nil {
		t.Fatal(err)
	}
	seq.Resize(testWidth, testHeight)
	if err := seq.Activate(types.SceneLanding); err != nil {
		t.Fatal(err)
	}

	seq.Skip()
	if seq.Current() != types.SceneReasons {
		t.Fatalf("current = %v, want reasons", seq.Current())
	}

	seq.Skip()
	if seq.Current() != types.SceneQuiz {
		t.Fatalf("current = %v, want quiz", seq.Current())
	}
	if _, ok := seq.CurrentScene().(*FallbackScene); !ok {
		t.Fatalf("broken quiz should render the fallback scene, got %T", seq.CurrentScene())
	}

	// 降级场景仍可前进
	seq.Skip()
	if seq.Current() != types.SceneLetter {
		t.Errorf("current = %v, want letter", seq.Current())
	}

	// 旧场景的定时器不会再触发任何东西
	for i := 0; i < 600; i++ {
		h.sched.Advance(frameDT)
		seq.Update(frameDT)
	}
	if seq.Current() != types.SceneLetter {
		t.Errorf("letter should wait for the viewer, current = %v", seq.Current())
	}
}
