package systems

import (
	"log"
	"time"

	"github.com/gonewx/storybook/pkg/game"
)

// DefaultSettleOffset 最后一项之后到完成事件的默认延时
const DefaultSettleOffset = 600 * time.Millisecond

// RevealTiming 揭示节奏参数
type RevealTiming struct {
	// BaseOffset 第 0 项的延时；第 i 项在 BaseOffset + i*delay 时可见
	BaseOffset time.Duration
	// SettleOffset 完成事件在 N*delay + SettleOffset 时触发
	SettleOffset time.Duration
}

// ItemAt 返回第 i 项（从 0 开始）变为可见的时刻
func (t RevealTiming) ItemAt(i int, delay time.Duration) time.Duration {
	return t.BaseOffset + time.Duration(i)*delay
}

// CompletionAt 返回 n 项揭示的完成时刻；n == 0 时立即完成
func (t RevealTiming) CompletionAt(n int, delay time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n)*delay + t.SettleOffset
}

// RevealScheduler 按固定间隔逐项揭示一个有序列表，并且只触发一次完成事件
//
// 所有定时回调都登记在调度器私有的 TimerGroup 中，Reset 会一次性取消；
// 每个回调在修改状态之前检查自己所属的 generation，过期回调是静默的空操作。
// 可见数量只增不减（取最大值），直到显式 Reset。
type RevealScheduler struct {
	timers *game.TimerGroup
	timing RevealTiming

	total      int
	visible    int
	started    bool
	complete   bool
	generation uint64

	onTick     func(visible int)
	onComplete func()
}

// NewRevealScheduler 创建揭示调度器
func NewRevealScheduler(sched *game.Scheduler, timing RevealTiming) *RevealScheduler {
	if timing.BaseOffset < 0 {
		timing.BaseOffset = 0
	}
	if timing.SettleOffset < 0 {
		timing.SettleOffset = 0
	}
	return &RevealScheduler{
		timers: game.NewTimerGroup(sched),
		timing: timing,
	}
}

// OnTick 设置可见数量变化回调
func (r *RevealScheduler) OnTick(fn func(visible int)) {
	r.onTick = fn
}

// OnComplete 设置完成回调（每次激活最多触发一次）
func (r *RevealScheduler) OnComplete(fn func()) {
	r.onComplete = fn
}

// Start 为 n 个项目安排揭示，返回是否真正开始
// 已经开始且未 Reset 时为空操作（返回 false），不会重复安排
// n == 0 时立即（同步）完成
func (r *RevealScheduler) Start(n int, delay time.Duration) bool {
	if r.started {
		return false
	}
	if n < 0 {
		n = 0
	}
	if delay < 0 {
		delay = 0
	}

	r.started = true
	r.total = n
	gen := r.generation

	if n == 0 {
		r.finish(gen)
		return true
	}

	for i := 0; i < n; i++ {
		ordinal := i
		r.timers.After(r.timing.ItemAt(i, delay), func() {
			r.reveal(gen, ordinal+1)
		})
	}
	r.timers.After(r.timing.CompletionAt(n, delay), func() {
		r.finish(gen)
	})
	return true
}

// RevealAll 立即显示全部项目并完成（减少动态效果时使用）
// 未开始时先以 n 项开始
func (r *RevealScheduler) RevealAll(n int) {
	if !r.started {
		r.started = true
		r.total = max(n, 0)
	}
	r.timers.CancelAll()
	gen := r.generation
	r.reveal(gen, r.total)
	r.finish(gen)
}

func (r *RevealScheduler) reveal(gen uint64, count int) {
	if gen != r.generation {
		return
	}
	if count > r.total {
		count = r.total
	}
	if count <= r.visible {
		return
	}
	r.visible = count
	if r.onTick != nil {
		r.onTick(r.visible)
	}
}

func (r *RevealScheduler) finish(gen uint64) {
	if gen != r.generation || r.complete {
		return
	}
	// 完成时所有项目必然可见
	r.reveal(gen, r.total)
	r.complete = true
	log.Printf("[RevealScheduler] complete: %d items", r.total)
	if r.onComplete != nil {
		r.onComplete()
	}
}

// Reset 取消所有未触发的回调并清零状态，之后可以再次 Start
func (r *RevealScheduler) Reset() {
	r.timers.CancelAll()
	r.generation++
	r.started = false
	r.complete = false
	r.visible = 0
	r.total = 0
}

// Visible 返回当前可见的项目数量
func (r *RevealScheduler) Visible() int {
	return r.visible
}

// Total 返回本次激活的项目总数
func (r *RevealScheduler) Total() int {
	return r.total
}

// Started 返回是否已经开始
func (r *RevealScheduler) Started() bool {
	return r.started
}

// Complete 返回完成事件是否已经触发
func (r *RevealScheduler) Complete() bool {
	return r.complete
}

// PendingCallbacks 返回尚未触发的定时回调数量
func (r *RevealScheduler) PendingCallbacks() int {
	return r.timers.Len()
}
