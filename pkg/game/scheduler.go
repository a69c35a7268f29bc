package game

import (
	"container/heap"
	"time"
)

// TimerID 定时器句柄（0 表示无效句柄）
type TimerID uint64

// FrameFunc 帧同步回调，dt 为本帧经过的秒数
type FrameFunc func(dt float64)

// Scheduler 单线程虚拟时钟
//
// 所有延时回调和帧回调都在 Advance 中、在游戏主循环线程上触发，
// 因此回调之间不会并发执行，调用方无需加锁。
// 测试中直接调用 Advance 即可精确控制时间（无需真实等待）。
//
// 语义：
//   - After 注册的回调在时钟越过 now+d 时触发一次，绝不会在 After 内部同步触发
//   - 多个到期回调按 (到期时间, 注册顺序) 触发
//   - Advance 期间新注册的回调最早在下一次 Advance 触发（即使延时为 0），
//     所以用 After(0, ...) 重复注册自己的回调每次 Advance 只触发一次
//   - OnFrame 注册的回调在每次 Advance 末尾各触发一次，直到被 Cancel
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64

	timers  timerHeap
	pending map[TimerID]*timer // 尚未触发且未取消的延时回调

	frames     map[TimerID]FrameFunc
	frameOrder []TimerID // 帧回调按注册顺序触发
}

type timer struct {
	id    TimerID
	due   time.Duration
	seq   uint64
	fn    func()
	index int
}

// NewScheduler 创建一个从 0 开始计时的调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[TimerID]*timer),
		frames:  make(map[TimerID]FrameFunc),
	}
}

// Now 返回虚拟时钟的当前时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 注册一个延时回调，返回可用于 Cancel 的句柄
// 负延时按 0 处理（仍然要等到下一次 Advance 才触发）
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	t := &timer{id: s.nextID, due: s.now + d, seq: s.seq, fn: fn}
	heap.Push(&s.timers, t)
	s.pending[t.id] = t
	return t.id
}

// OnFrame 注册一个帧同步回调
func (s *Scheduler) OnFrame(fn FrameFunc) TimerID {
	if fn == nil {
		return 0
	}
	s.nextID++
	s.frames[s.nextID] = fn
	s.frameOrder = append(s.frameOrder, s.nextID)
	return s.nextID
}

// Cancel 取消延时回调或帧回调
// 返回 false 表示句柄无效、已触发或已被取消
func (s *Scheduler) Cancel(id TimerID) bool {
	if t, ok := s.pending[id]; ok {
		delete(s.pending, id)
		heap.Remove(&s.timers, t.index)
		return true
	}
	if _, ok := s.frames[id]; ok {
		delete(s.frames, id)
		for i, fid := range s.frameOrder {
			if fid == id {
				s.frameOrder = append(s.frameOrder[:i], s.frameOrder[i+1:]...)
				break
			}
		}
		return true
	}
	return false
}

// Advance 推进虚拟时钟 dt 秒
// 先触发所有到期的延时回调，再触发一轮帧回调
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.now += time.Duration(dt * float64(time.Second))

	// 新注册的回调 due >= now，堆顶遇到它时其余到期回调都已触发
	lastSeq := s.seq
	for s.timers.Len() > 0 && s.timers[0].due <= s.now && s.timers[0].seq <= lastSeq {
		t := heap.Pop(&s.timers).(*timer)
		delete(s.pending, t.id)
		t.fn()
	}

	// 快照：本帧内新注册的帧回调从下一帧开始触发
	order := append([]TimerID(nil), s.frameOrder...)
	for _, id := range order {
		if fn, ok := s.frames[id]; ok {
			fn(dt)
		}
	}
}

// Pending 返回尚未触发的延时回调数量
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// PendingFrames 返回已注册的帧回调数量
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// timerHeap 按 (due, seq) 排序的最小堆
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
