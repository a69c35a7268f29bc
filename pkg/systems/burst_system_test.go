package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/game"
)

func newTestBurst(sched *game.Scheduler) (*BurstSystem, *ecs.EntityManager) {
	em := ecs.NewEntityManager()
	return NewBurstSystem(em, sched, DefaultBurstConfig(), rand.New(rand.NewSource(9))), em
}

func TestBurstEmit(t *testing.T) {
	sched := game.NewScheduler()
	b, em := newTestBurst(sched)

	if n := b.Emit(400, 300, 12); n != 12 {
		t.Fatalf("Emit() = %d, want 12", n)
	}
	if b.Active() != 12 || em.EntityCount() != 12 {
		t.Errorf("Active() = %d, entities = %d, want 12", b.Active(), em.EntityCount())
	}
	if b.Emit(0, 0, 0) != 0 {
		t.Error("Emit with zero count should create nothing")
	}
	if sched.Pending() != 1 {
		t.Errorf("expected one deadline callback per batch, got %d", sched.Pending())
	}
}

func TestBurstSelfCleaning(t *testing.T) {
	sched := game.NewScheduler()
	b, _ := newTestBurst(sched)
	b.Emit(100, 100, 12)

	maxLife := DefaultBurstConfig().Lifetime.Max
	for elapsed := 0.0; elapsed < maxLife+0.1; elapsed += frameDT {
		b.Update(frameDT)
	}
	if b.Active() != 0 {
		t.Errorf("Active() = %d after max lifetime, want 0", b.Active())
	}
}

func TestBurstDeadlineWithoutUpdate(t *testing.T) {
	// 宿主不再调用 Update 时，截止回调仍会清除字形
	sched := game.NewScheduler()
	b, _ := newTestBurst(sched)
	b.Emit(100, 100, 12)

	sched.Advance(DefaultBurstConfig().Lifetime.Max + 0.01)
	if b.Active() != 0 {
		t.Errorf("Active() = %d after deadline, want 0", b.Active())
	}
}

func TestBurstTeardown(t *testing.T) {
	sched := game.NewScheduler()
	b, em := newTestBurst(sched)

	b.Emit(200, 200, 12)
	b.Update(0.2)
	b.Teardown()

	if b.Active() != 0 || em.EntityCount() != 0 {
		t.Errorf("Teardown left %d glyphs", b.Active())
	}
	if sched.Pending() != 0 {
		t.Errorf("Teardown left %d pending callbacks", sched.Pending())
	}

	sched.Advance(DefaultBurstConfig().Lifetime.Max + 1)
	if em.EntityCount() != 0 {
		t.Error("residual glyphs after the burst's maximum lifetime")
	}
}

func TestBurstOverlappingBatches(t *testing.T) {
	sched := game.NewScheduler()
	b, _ := newTestBurst(sched)

	b.Emit(100, 100, 5)
	sched.Advance(1.0)
	b.Emit(300, 300, 7)

	// 第一批的截止时间到达时只清除第一批
	sched.Advance(DefaultBurstConfig().Lifetime.Max - 1.0 + 0.01)
	if b.Active() != 7 {
		t.Errorf("Active() = %d, want 7 (second batch only)", b.Active())
	}

	sched.Advance(2)
	if b.Active() != 0 {
		t.Errorf("Active() = %d, want 0", b.Active())
	}
}

func TestBurstAnimation(t *testing.T) {
	sched := game.NewScheduler()
	em := ecs.NewEntityManager()
	cfg := DefaultBurstConfig()
	b := NewBurstSystem(em, sched, cfg, rand.New(rand.NewSource(1)))
	b.Emit(0, 0, 1)

	id := ecs.GetEntitiesWith1[*components.BurstGlyphComponent](em)[0]
	glyph, _ := ecs.GetComponent[*components.BurstGlyphComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	// 移动结束时到达终点
	for elapsed := 0.0; elapsed < glyph.TravelTime; elapsed += 0.05 {
		b.Update(0.05)
	}
	dist := math.Hypot(glyph.DX, glyph.DY)
	if got := math.Hypot(pos.X, pos.Y); math.Abs(got-dist) > 1e-6 {
		t.Errorf("distance from origin = %v, want %v", got, dist)
	}
	if dist < cfg.Distance.Min || dist > cfg.Distance.Max {
		t.Errorf("travel distance %v outside configured range", dist)
	}
}

func TestBurstAlphaCurve(t *testing.T) {
	b, _ := newTestBurst(game.NewScheduler())

	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 1},
		{0.5, 1},
		{0.875, 0.5},
		{1, 0},
	}
	for _, tt := range tests {
		if got := b.alphaAt(tt.progress); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("alphaAt(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}
