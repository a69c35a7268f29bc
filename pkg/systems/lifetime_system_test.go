package systems

import (
	"testing"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/ecs"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 10.0})

	// 模拟5秒更新
	if expired := system.Update(5.0); expired != 0 {
		t.Errorf("expired = %d, want 0", expired)
	}

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 5.0 {
		t.Errorf("Expected CurrentLifetime=5.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.Progress() != 0.5 {
		t.Errorf("Progress() = %v, want 0.5", lifetime.Progress())
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 10.0})

	// 模拟超过最大生命周期
	if expired := system.Update(12.0); expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired")
	}
	if lifetime.Progress() != 1 {
		t.Errorf("Progress() should clamp to 1, got %v", lifetime.Progress())
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("expired entity should be removed after cleanup")
	}
}
