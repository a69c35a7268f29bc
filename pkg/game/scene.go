package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one full-screen step of the storybook.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// MountContext 场景挂载时由 Sequencer 提供的资源
type MountContext struct {
	// Advance 本次激活专属的转场触发器
	// 场景卸载后（或已经触发过一次后）调用为空操作
	Advance func()

	// Timers 本次激活专属的定时器集合，场景卸载后由 Sequencer 全部取消
	Timers *TimerGroup

	// Scheduler 共享的虚拟时钟，用于创建场景内组件（揭示调度器、粒子场）自己的 TimerGroup
	Scheduler *Scheduler

	// Width, Height 当前可见区域尺寸（像素），未知时为 0
	Width, Height int
}

// Mountable 是一个可选接口，拥有挂载/卸载生命周期的场景实现它
//
// Mount 返回错误或 panic 时，Sequencer 会改为挂载降级场景，叙事仍可继续。
// Unmount 必须释放场景持有的全部粒子场、揭示调度器和爆发特效。
type Mountable interface {
	Mount(ctx MountContext) error
	Unmount()
}

// Skippable 是一个可选接口，实现它的场景在调试跳过时以用户操作相同的路径触发转场
type Skippable interface {
	// Trigger 以场景自己的转场路径前进（例如模拟点击主按钮）
	Trigger()
}

// Resizable 是一个可选接口，接收可见区域尺寸变化通知
type Resizable interface {
	Resize(width, height int)
}
