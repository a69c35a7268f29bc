package game

import (
	"fmt"
	"log"

	"github.com/gonewx/storybook/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按ID创建场景，避免 game 包依赖 scenes 包（循环依赖）
type SceneFactory func(id types.SceneID) (Scene, error)

// FallbackFactory 降级场景工厂
// 当场景创建或挂载失败时调用，返回的场景必须能够继续前进
type FallbackFactory func(id types.SceneID, cause error) Scene

// SceneChangeFunc 场景切换通知
type SceneChangeFunc func(id types.SceneID)

// Sequencer 线性叙事的场景状态机
//
// Sequencer 是"当前场景"的唯一写入者：
//   - Activate 只生效一次（由布尔标志保护，与场景ID无关）
//   - 每次激活分配一个 epoch，场景拿到的 Advance 触发器绑定该 epoch，过期触发为空操作
//   - 转场进行中（卸载旧场景、挂载新场景）再次请求前进会被延后，转场完成后执行一次
//   - 终点场景没有后继，前进为空操作
//   - 场景创建/挂载失败时挂载降级场景，叙事永远不会卡死
type Sequencer struct {
	chain    []types.SceneID
	index    map[types.SceneID]int
	factory  SceneFactory
	fallback FallbackFactory
	sched    *Scheduler

	activated bool
	current   Scene
	currentID types.SceneID
	timers    *TimerGroup // 当前激活的场景定时器

	epoch         uint64
	transitioning bool
	deferred      bool

	listeners     []SceneChangeFunc
	width, height int
}

// NewSequencer 创建场景序列
//
// 参数：
//   - chain: 场景顺序（来自故事配置），不能为空，不能有重复或无效ID
//   - factory: 场景工厂
//   - fallback: 降级场景工厂，可为 nil（使用空白降级场景，仍可通过 Skip 前进）
//   - sched: 虚拟时钟，可为 nil（场景无法注册定时回调）
func NewSequencer(chain []types.SceneID, factory SceneFactory, fallback FallbackFactory, sched *Scheduler) (*Sequencer, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("scene chain is empty")
	}
	if factory == nil {
		return nil, fmt.Errorf("scene factory is nil")
	}

	index := make(map[types.SceneID]int, len(chain))
	for i, id := range chain {
		if !id.Valid() {
			return nil, fmt.Errorf("scene chain[%d]: invalid scene id %v", i, id)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("scene chain[%d]: duplicate scene %v", i, id)
		}
		index[id] = i
	}

	return &Sequencer{
		chain:    append([]types.SceneID(nil), chain...),
		index:    index,
		factory:  factory,
		fallback: fallback,
		sched:    sched,
	}, nil
}

// Chain 返回场景顺序的副本
func (s *Sequencer) Chain() []types.SceneID {
	return append([]types.SceneID(nil), s.chain...)
}

// Successor 返回 id 的后继场景；终点场景或未知场景返回 false
func (s *Sequencer) Successor(id types.SceneID) (types.SceneID, bool) {
	i, ok := s.index[id]
	if !ok || i+1 >= len(s.chain) {
		return types.SceneUnknown, false
	}
	return s.chain[i+1], true
}

// Predecessor 返回 id 的前驱场景；起点场景或未知场景返回 false
func (s *Sequencer) Predecessor(id types.SceneID) (types.SceneID, bool) {
	i, ok := s.index[id]
	if !ok || i == 0 {
		return types.SceneUnknown, false
	}
	return s.chain[i-1], true
}

// IsTerminal 检查 id 是否为终点场景
func (s *Sequencer) IsTerminal(id types.SceneID) bool {
	i, ok := s.index[id]
	return ok && i == len(s.chain)-1
}

// OnSceneChange 注册场景切换通知（在新场景挂载完成后调用）
func (s *Sequencer) OnSceneChange(fn SceneChangeFunc) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Activate 激活初始场景
// 只有第一次调用生效，之后的调用（包括同一场景）都是空操作
func (s *Sequencer) Activate(id types.SceneID) error {
	if s.activated {
		log.Printf("[Sequencer] Activate(%v) ignored: already activated", id)
		return nil
	}
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("activate: scene %v is not part of the chain", id)
	}

	s.activated = true
	s.transition(id)
	return nil
}

// Activated 返回是否已经激活
func (s *Sequencer) Activated() bool {
	return s.activated
}

// Current 返回当前场景ID（未激活时为 SceneUnknown）
func (s *Sequencer) Current() types.SceneID {
	return s.currentID
}

// CurrentScene 返回当前场景实例
func (s *Sequencer) CurrentScene() Scene {
	return s.current
}

// Advance 以当前场景的身份前进到后继场景
func (s *Sequencer) Advance() {
	s.advanceFrom(s.epoch)
}

// Skip 调试跳过：通过当前场景自己的转场路径前进
// 场景实现 Skippable 时调用其 Trigger，否则等同于 Advance
func (s *Sequencer) Skip() {
	if s.current == nil {
		return
	}
	if sk, ok := s.current.(Skippable); ok {
		log.Printf("[Sequencer] Skip: triggering %v", s.currentID)
		sk.Trigger()
		return
	}
	s.Advance()
}

// advanceFrom 处理来自 epoch 激活的前进请求
func (s *Sequencer) advanceFrom(epoch uint64) {
	if !s.activated || epoch != s.epoch {
		return
	}
	if s.transitioning {
		s.deferred = true
		return
	}
	next, ok := s.Successor(s.currentID)
	if !ok {
		return
	}
	s.transition(next)
}

// transition 卸载当前场景并挂载 id
// 挂载期间新场景发出的前进请求会被延后到挂载完成后执行
func (s *Sequencer) transition(id types.SceneID) {
	s.transitioning = true

	from := s.currentID
	s.unmountCurrent()

	s.epoch++
	s.deferred = false
	s.currentID = id
	s.mount(id)

	s.transitioning = false
	log.Printf("[Sequencer] %v -> %v", from, id)

	for _, fn := range s.listeners {
		fn(id)
	}

	if s.deferred {
		s.deferred = false
		s.advanceFrom(s.epoch)
	}
}

func (s *Sequencer) unmountCurrent() {
	if s.current == nil {
		return
	}
	if m, ok := s.current.(Mountable); ok {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Sequencer] Unmount %v panicked: %v", s.currentID, r)
				}
			}()
			m.Unmount()
		}()
	}
	if s.timers != nil {
		if n := s.timers.CancelAll(); n > 0 {
			log.Printf("[Sequencer] cancelled %d pending callbacks of %v", n, s.currentID)
		}
	}
	s.current = nil
	s.timers = nil
}

func (s *Sequencer) mount(id types.SceneID) {
	scene, err := s.tryMount(id, func() (Scene, error) { return s.factory(id) })
	if err == nil {
		s.current = scene
		return
	}

	log.Printf("[Sequencer] scene %v failed, using fallback: %v", id, err)
	scene, err = s.tryMount(id, func() (Scene, error) { return s.fallbackScene(id, err), nil })
	if err != nil {
		// 降级场景也失败：保持一个空场景，Advance/Skip 仍然有效
		log.Printf("[Sequencer] fallback for %v failed: %v", id, err)
		scene = blankScene{}
	}
	s.current = scene
}

// tryMount 创建并挂载场景，将 panic 转换为错误
func (s *Sequencer) tryMount(id types.SceneID, create func() (Scene, error)) (scene Scene, err error) {
	timers := NewTimerGroup(s.sched)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scene %v panicked: %v", id, r)
		}
		if err != nil {
			if m, ok := scene.(Mountable); ok && scene != nil {
				s.safeUnmount(m)
			}
			timers.CancelAll()
			scene = nil
			return
		}
		s.timers = timers
	}()

	scene, err = create()
	if err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, fmt.Errorf("scene %v: factory returned nil", id)
	}

	if r, ok := scene.(Resizable); ok && s.width > 0 && s.height > 0 {
		r.Resize(s.width, s.height)
	}
	if m, ok := scene.(Mountable); ok {
		epoch := s.epoch
		ctx := MountContext{
			Advance:   func() { s.advanceFrom(epoch) },
			Timers:    timers,
			Scheduler: s.sched,
			Width:     s.width,
			Height:    s.height,
		}
		if err := m.Mount(ctx); err != nil {
			return scene, fmt.Errorf("mount %v: %w", id, err)
		}
	}
	return scene, nil
}

func (s *Sequencer) safeUnmount(m Mountable) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Sequencer] Unmount after failed mount panicked: %v", r)
		}
	}()
	m.Unmount()
}

func (s *Sequencer) fallbackScene(id types.SceneID, cause error) Scene {
	if s.fallback != nil {
		if scene := s.fallback(id, cause); scene != nil {
			return scene
		}
	}
	return blankScene{}
}

// Resize 记录新的可见区域尺寸并转发给当前场景
func (s *Sequencer) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	if r, ok := s.current.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Size 返回最近一次记录的可见区域尺寸
func (s *Sequencer) Size() (int, int) {
	return s.width, s.height
}

// Update updates the currently active scene.
func (s *Sequencer) Update(deltaTime float64) {
	if s.current != nil {
		s.current.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (s *Sequencer) Draw(screen *ebiten.Image) {
	if s.current != nil {
		s.current.Draw(screen)
	}
}

// blankScene 最后的降级场景：什么都不画
type blankScene struct{}

func (blankScene) Update(float64) {}

func (blankScene) Draw(*ebiten.Image) {}
