package game

import "time"

// TimerGroup 组件私有的定时器句柄集合
//
// 每个需要定时回调的组件（揭示调度器、粒子场、爆发特效、场景挂载）持有一个 TimerGroup，
// 在 reset/teardown 时调用 CancelAll 一次性取消全部未触发的回调。
// 已触发的延时回调会自动从集合中移除。
type TimerGroup struct {
	sched *Scheduler
	ids   map[TimerID]struct{}
}

// NewTimerGroup 创建绑定到调度器的句柄集合
// sched 为 nil 时所有注册都是空操作（无时钟的降级模式）
func NewTimerGroup(sched *Scheduler) *TimerGroup {
	return &TimerGroup{
		sched: sched,
		ids:   make(map[TimerID]struct{}),
	}
}

// After 注册延时回调并记录句柄
func (g *TimerGroup) After(d time.Duration, fn func()) TimerID {
	if g.sched == nil || fn == nil {
		return 0
	}
	var id TimerID
	id = g.sched.After(d, func() {
		delete(g.ids, id)
		fn()
	})
	g.ids[id] = struct{}{}
	return id
}

// OnFrame 注册帧回调并记录句柄
func (g *TimerGroup) OnFrame(fn FrameFunc) TimerID {
	if g.sched == nil || fn == nil {
		return 0
	}
	id := g.sched.OnFrame(fn)
	g.ids[id] = struct{}{}
	return id
}

// Cancel 取消集合中的单个句柄
func (g *TimerGroup) Cancel(id TimerID) bool {
	if _, ok := g.ids[id]; !ok {
		return false
	}
	delete(g.ids, id)
	return g.sched.Cancel(id)
}

// CancelAll 取消集合中所有未触发的回调，返回取消的数量
func (g *TimerGroup) CancelAll() int {
	n := 0
	for id := range g.ids {
		if g.sched.Cancel(id) {
			n++
		}
	}
	clear(g.ids)
	return n
}

// Len 返回集合中仍然有效的句柄数量
func (g *TimerGroup) Len() int {
	return len(g.ids)
}
