package game

import (
	"errors"
	"testing"
	"time"

	"github.com/gonewx/storybook/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene 记录生命周期调用的测试场景
type MockScene struct {
	id types.SceneID

	mounts   int
	unmounts int
	updates  int
	ctx      MountContext

	width, height int

	mountErr   error
	mountPanic bool
	onMount    func(ctx MountContext)
	triggered  int
}

func (m *MockScene) Update(deltaTime float64) { m.updates++ }

func (m *MockScene) Draw(screen *ebiten.Image) {}

func (m *MockScene) Mount(ctx MountContext) error {
	m.mounts++
	m.ctx = ctx
	if m.mountPanic {
		panic("boom")
	}
	if m.onMount != nil {
		m.onMount(ctx)
	}
	return m.mountErr
}

func (m *MockScene) Unmount() { m.unmounts++ }

func (m *MockScene) Resize(w, h int) { m.width, m.height = w, h }

func (m *MockScene) Trigger() {
	m.triggered++
	m.ctx.Advance()
}

// mockStory 三个场景 A→B→C 的测试夹具
type mockStory struct {
	sched  *Scheduler
	seq    *Sequencer
	scenes map[types.SceneID]*MockScene
	built  map[types.SceneID]int
}

var testChain = []types.SceneID{types.SceneLanding, types.SceneReasons, types.SceneFinal}

func newMockStory(t *testing.T) *mockStory {
	t.Helper()
	ms := &mockStory{
		sched:  NewScheduler(),
		scenes: make(map[types.SceneID]*MockScene),
		built:  make(map[types.SceneID]int),
	}
	for _, id := range testChain {
		ms.scenes[id] = &MockScene{id: id}
	}
	factory := func(id types.SceneID) (Scene, error) {
		ms.built[id]++
		return ms.scenes[id], nil
	}
	fallback := func(id types.SceneID, cause error) Scene {
		return &MockScene{id: types.SceneUnknown}
	}
	seq, err := NewSequencer(testChain, factory, fallback, ms.sched)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	ms.seq = seq
	return ms
}

func TestNewSequencerValidation(t *testing.T) {
	factory := func(types.SceneID) (Scene, error) { return &MockScene{}, nil }

	tests := []struct {
		name  string
		chain []types.SceneID
	}{
		{"空场景链", nil},
		{"无效ID", []types.SceneID{types.SceneLanding, types.SceneUnknown}},
		{"重复ID", []types.SceneID{types.SceneLanding, types.SceneLanding}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSequencer(tt.chain, factory, nil, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := NewSequencer(testChain, nil, nil, nil); err == nil {
		t.Error("nil factory should be rejected")
	}
}

func TestSequencerChainRelations(t *testing.T) {
	ms := newMockStory(t)

	if next, ok := ms.seq.Successor(types.SceneLanding); !ok || next != types.SceneReasons {
		t.Errorf("Successor(landing) = %v, %v", next, ok)
	}
	if _, ok := ms.seq.Successor(types.SceneFinal); ok {
		t.Error("terminal scene should have no successor")
	}
	if prev, ok := ms.seq.Predecessor(types.SceneFinal); !ok || prev != types.SceneReasons {
		t.Errorf("Predecessor(final) = %v, %v", prev, ok)
	}
	if _, ok := ms.seq.Predecessor(types.SceneLanding); ok {
		t.Error("first scene should have no predecessor")
	}
	if !ms.seq.IsTerminal(types.SceneFinal) || ms.seq.IsTerminal(types.SceneLanding) {
		t.Error("IsTerminal mismatch")
	}
}

func TestSequencerActivateOnce(t *testing.T) {
	ms := newMockStory(t)

	if err := ms.seq.Activate(types.SceneLanding); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	// 模拟初始化代码被重复调用
	if err := ms.seq.Activate(types.SceneLanding); err != nil {
		t.Fatalf("second Activate: %v", err)
	}
	if err := ms.seq.Activate(types.SceneReasons); err != nil {
		t.Fatalf("third Activate: %v", err)
	}

	landing := ms.scenes[types.SceneLanding]
	if landing.mounts != 1 || ms.built[types.SceneLanding] != 1 {
		t.Errorf("landing mounted %d times, built %d times; want 1/1", landing.mounts, ms.built[types.SceneLanding])
	}
	if ms.seq.Current() != types.SceneLanding {
		t.Errorf("Current() = %v, want landing", ms.seq.Current())
	}
}

func TestSequencerActivateUnknownScene(t *testing.T) {
	ms := newMockStory(t)
	if err := ms.seq.Activate(types.SceneQuiz); err == nil {
		t.Error("activating a scene outside the chain should fail")
	}
	if ms.seq.Activated() {
		t.Error("failed Activate must not consume the guard")
	}
}

func TestSequencerAdvanceTearsDownTimers(t *testing.T) {
	ms := newMockStory(t)

	visible := 0
	ms.scenes[types.SceneLanding].onMount = func(ctx MountContext) {
		for i := 0; i < 5; i++ {
			ctx.Timers.After(time.Duration(i*900)*time.Millisecond, func() { visible++ })
		}
	}

	ms.seq.Activate(types.SceneLanding)
	ms.sched.Advance(0.1) // 第一项立即可见
	if visible != 1 {
		t.Fatalf("visible = %d, want 1", visible)
	}

	landing := ms.scenes[types.SceneLanding]
	landing.ctx.Advance()

	if ms.seq.Current() != types.SceneReasons {
		t.Fatalf("Current() = %v, want reasons", ms.seq.Current())
	}
	if landing.unmounts != 1 {
		t.Errorf("landing unmounted %d times, want 1", landing.unmounts)
	}

	ms.sched.Advance(10)
	if visible != 1 {
		t.Errorf("timers of the unmounted scene still fired: visible = %d", visible)
	}
}

func TestSequencerStaleTrigger(t *testing.T) {
	ms := newMockStory(t)
	ms.seq.Activate(types.SceneLanding)

	staleAdvance := ms.scenes[types.SceneLanding].ctx.Advance
	staleAdvance()
	staleAdvance() // 重复点击

	if ms.seq.Current() != types.SceneReasons {
		t.Fatalf("Current() = %v, want reasons", ms.seq.Current())
	}
	if ms.scenes[types.SceneReasons].unmounts != 0 {
		t.Error("stale trigger advanced the new scene")
	}
}

func TestSequencerAdvanceTerminalIsNoop(t *testing.T) {
	ms := newMockStory(t)

	changes := 0
	ms.seq.OnSceneChange(func(types.SceneID) { changes++ })
	ms.seq.Activate(types.SceneFinal)

	final := ms.scenes[types.SceneFinal]
	for i := 0; i < 3; i++ {
		ms.seq.Advance()
		final.ctx.Advance()
	}

	if ms.seq.Current() != types.SceneFinal {
		t.Errorf("Current() = %v, want final", ms.seq.Current())
	}
	if final.unmounts != 0 || changes != 1 {
		t.Errorf("terminal advance changed state: unmounts=%d changes=%d", final.unmounts, changes)
	}
}

func TestSequencerDeferredAdvanceDuringMount(t *testing.T) {
	ms := newMockStory(t)

	// reasons 在挂载时立即完成（例如空列表）并请求前进
	ms.scenes[types.SceneReasons].onMount = func(ctx MountContext) { ctx.Advance() }

	var seen []types.SceneID
	ms.seq.OnSceneChange(func(id types.SceneID) { seen = append(seen, id) })

	ms.seq.Activate(types.SceneLanding)
	ms.seq.Advance()

	if ms.seq.Current() != types.SceneFinal {
		t.Fatalf("Current() = %v, want final", ms.seq.Current())
	}
	want := []types.SceneID{types.SceneLanding, types.SceneReasons, types.SceneFinal}
	if len(seen) != len(want) {
		t.Fatalf("scene changes = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("scene change %d = %v, want %v", i, seen[i], want[i])
		}
	}
	if ms.scenes[types.SceneReasons].mounts != 1 {
		t.Error("reasons should be mounted exactly once")
	}
}

func TestSequencerSkipUsesSceneTrigger(t *testing.T) {
	ms := newMockStory(t)
	ms.seq.Activate(types.SceneLanding)

	ms.seq.Skip()

	if ms.scenes[types.SceneLanding].triggered != 1 {
		t.Error("Skip should go through the scene's own trigger")
	}
	if ms.scenes[types.SceneLanding].unmounts != 1 {
		t.Error("Skip must run the normal cleanup")
	}
	if ms.seq.Current() != types.SceneReasons {
		t.Errorf("Current() = %v, want reasons", ms.seq.Current())
	}
}

func TestSequencerMountFailureFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *MockScene)
	}{
		{"挂载返回错误", func(m *MockScene) { m.mountErr = errors.New("no assets") }},
		{"挂载 panic", func(m *MockScene) { m.mountPanic = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := newMockStory(t)
			reasons := ms.scenes[types.SceneReasons]
			tt.setup(reasons)
			reasons.onMount = func(ctx MountContext) {
				ctx.Timers.After(time.Second, func() { t.Error("timer of failed mount fired") })
			}

			ms.seq.Activate(types.SceneLanding)
			ms.seq.Advance()

			if ms.seq.Current() != types.SceneReasons {
				t.Fatalf("Current() = %v, want reasons", ms.seq.Current())
			}
			fb, ok := ms.seq.CurrentScene().(*MockScene)
			if !ok || fb == reasons {
				t.Fatal("fallback scene should replace the failed scene")
			}
			if reasons.unmounts != 1 {
				t.Errorf("failed scene should be unmounted, got %d", reasons.unmounts)
			}

			ms.sched.Advance(5)

			// 降级场景仍然可以前进
			fb.ctx.Advance()
			if ms.seq.Current() != types.SceneFinal {
				t.Errorf("fallback could not advance, Current() = %v", ms.seq.Current())
			}
		})
	}
}

func TestSequencerFactoryErrorWithoutFallback(t *testing.T) {
	factory := func(id types.SceneID) (Scene, error) {
		if id == types.SceneLanding {
			return nil, errors.New("broken descriptor")
		}
		return &MockScene{}, nil
	}
	seq, err := NewSequencer(testChain, factory, nil, NewScheduler())
	if err != nil {
		t.Fatal(err)
	}

	seq.Activate(types.SceneLanding)
	if seq.CurrentScene() == nil {
		t.Fatal("a blank scene should be mounted")
	}
	seq.Skip()
	if seq.Current() != types.SceneReasons {
		t.Errorf("Skip from blank fallback: Current() = %v", seq.Current())
	}
}

func TestSequencerResize(t *testing.T) {
	ms := newMockStory(t)
	ms.seq.Resize(1280, 720)
	ms.seq.Activate(types.SceneLanding)

	landing := ms.scenes[types.SceneLanding]
	if landing.width != 1280 || landing.ctx.Height != 720 {
		t.Errorf("scene did not receive the initial size: %dx%d", landing.width, landing.ctx.Height)
	}

	ms.seq.Resize(800, 600)
	if landing.width != 800 || landing.height != 600 {
		t.Errorf("Resize not forwarded: %dx%d", landing.width, landing.height)
	}
}

func TestSequencerUpdate(t *testing.T) {
	ms := newMockStory(t)
	ms.seq.Update(0.016) // 未激活时不应 panic

	ms.seq.Activate(types.SceneLanding)
	ms.seq.Update(0.016)
	if ms.scenes[types.SceneLanding].updates != 1 {
		t.Error("Update was not forwarded")
	}
}
