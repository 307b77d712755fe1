package navigation

import (
	"fmt"
	"testing"

	"varia/internal/domain"
)

// fakeStore is a fixed three-node timeline with a movable cursor.
type fakeStore struct {
	nodes   []*domain.HistoryNode
	current int
	visited []string
}

func newFakeStore(n int) *fakeStore {
	s := &fakeStore{}
	for i := 0; i < n; i++ {
		s.nodes = append(s.nodes, &domain.HistoryNode{ID: fmt.Sprintf("n-%d", i)})
	}
	return s
}

func (s *fakeStore) Timeline() []*domain.HistoryNode { return s.nodes }

func (s *fakeStore) CurrentNode() *domain.HistoryNode { return s.nodes[s.current] }

func (s *fakeStore) NavigateToNode(id string) domain.NavigationResult {
	for i, n := range s.nodes {
		if n.ID == id {
			s.current = i
			s.visited = append(s.visited, id)
			return domain.NavigationResult{Success: true, Node: n}
		}
	}
	return domain.NavigationResult{Reason: "node not found"}
}

func collectEvents(c *Controller) *[]domain.EventType {
	var types []domain.EventType
	c.Subscribe(func(ev domain.Event) { types = append(types, ev.Type) })
	return &types
}

func hasEvent(types []domain.EventType, want domain.EventType) bool {
	for _, typ := range types {
		if typ == want {
			return true
		}
	}
	return false
}

// runToIdle drives Tick until the controller stops animating.
func runToIdle(t *testing.T, c *Controller) int {
	t.Helper()
	ticks := 0
	for c.Animating() {
		c.Tick(16)
		ticks++
		if ticks > 10000 {
			t.Fatal("controller never settled")
		}
	}
	return ticks
}

func TestController_StartsIdle(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())
	if c.State().Phase != PhaseIdle {
		t.Errorf("phase = %s, want idle", c.State().Phase)
	}
	if c.Animating() {
		t.Error("idle controller should not request ticks")
	}
}

func TestController_DragVelocityFromMovement(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())

	c.StartGesture(0, 0, 0)
	if c.State().Phase != PhaseDragging {
		t.Fatalf("phase = %s, want dragging", c.State().Phase)
	}

	// 120 px up over 50 ms: 2400 px/s.
	c.MoveGesture(0, -120, 50)
	v := c.State().Velocity
	if v.Y != -2400 {
		t.Errorf("velocity.Y = %v, want -2400", v.Y)
	}
	if c.State().Direction != DirUp {
		t.Errorf("direction = %v, want up", c.State().Direction)
	}
}

func TestController_DeadZoneSuppressesDirection(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())
	c.StartGesture(0, 0, 0)
	c.MoveGesture(2, -3, 16)
	if c.State().Direction != DirNone {
		t.Errorf("direction = %v inside the dead zone, want none", c.State().Direction)
	}
}

func TestController_FastReleaseEntersMomentum(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())
	events := collectEvents(c)

	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, -120, 50)
	c.EndGesture(0, -120, 51)

	if c.State().Phase != PhaseMomentum {
		t.Fatalf("phase = %s, want momentum", c.State().Phase)
	}
	if !hasEvent(*events, domain.EventGestureStart) || !hasEvent(*events, domain.EventGestureEnd) {
		t.Error("gesture start/end events missing")
	}
	if !hasEvent(*events, domain.EventMomentumStart) {
		t.Error("momentum_start missing")
	}
}

func TestController_MomentumDecaysAndSnapsToPreviousNode(t *testing.T) {
	store := newFakeStore(3)
	store.current = 1
	c := NewController(store, DefaultConfig())
	events := collectEvents(c)

	// Flick up: content travels negative y, displacement is positive,
	// which settles on the previous node.
	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, -120, 50)
	c.EndGesture(0, -120, 51)
	runToIdle(t, c)

	if store.current != 0 {
		t.Errorf("landed on index %d, want 0", store.current)
	}
	if !hasEvent(*events, domain.EventMomentumEnd) {
		t.Error("momentum_end missing")
	}
	if !hasEvent(*events, domain.EventSnapComplete) {
		t.Error("snap_complete missing")
	}
	if c.State().Phase != PhaseIdle {
		t.Errorf("phase = %s after settling, want idle", c.State().Phase)
	}
}

func TestController_SlowReleaseSnapsBackWithoutMoving(t *testing.T) {
	store := newFakeStore(3)
	store.current = 1
	c := NewController(store, DefaultConfig())

	// 20 px drag, under the 40 px snap threshold, released slowly.
	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, -20, 1000)
	c.EndGesture(0, -20, 2000)
	runToIdle(t, c)

	if store.current != 1 {
		t.Errorf("slow small drag moved the cursor to %d", store.current)
	}
	if len(store.visited) != 0 {
		t.Errorf("unexpected navigation calls: %v", store.visited)
	}
}

func TestController_BoundaryAtFirstNode(t *testing.T) {
	store := newFakeStore(3)
	store.current = 0
	c := NewController(store, DefaultConfig())
	events := collectEvents(c)

	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, -120, 50)
	c.EndGesture(0, -120, 51)
	runToIdle(t, c)

	if store.current != 0 {
		t.Errorf("moved past the first node to %d", store.current)
	}
	if !hasEvent(*events, domain.EventBoundaryReached) {
		t.Error("boundary_reached missing")
	}
}

func TestController_ExhaustedAtLastNode(t *testing.T) {
	store := newFakeStore(3)
	store.current = 2
	c := NewController(store, DefaultConfig())
	events := collectEvents(c)

	// Drag down: positive y, negative displacement, toward the next node
	// that does not exist.
	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, 120, 50)
	c.EndGesture(0, 120, 51)
	runToIdle(t, c)

	if store.current != 2 {
		t.Errorf("moved past the last node to %d", store.current)
	}
	if !hasEvent(*events, domain.EventExhausted) {
		t.Error("exhausted missing")
	}
}

func TestController_WheelImpulseAccumulates(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())
	events := collectEvents(c)

	c.Wheel(0, 8, 0)
	if c.State().Phase != PhaseMomentum {
		t.Fatalf("phase = %s, want momentum", c.State().Phase)
	}
	if got := c.State().Velocity.Y; got != 96 {
		t.Errorf("velocity.Y = %v, want 96 (8 * gain 12)", got)
	}

	c.Wheel(0, 8, 10)
	if got := c.State().Velocity.Y; got != 192 {
		t.Errorf("velocity.Y = %v after second notch, want 192", got)
	}

	count := 0
	for _, typ := range *events {
		if typ == domain.EventMomentumStart {
			count++
		}
	}
	if count != 1 {
		t.Errorf("momentum_start fired %d times, want 1", count)
	}
}

func TestController_WheelIgnoredMidDrag(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())
	c.StartGesture(0, 0, 0)
	c.Wheel(0, 8, 10)
	if c.State().Phase != PhaseDragging {
		t.Errorf("wheel mid-drag changed phase to %s", c.State().Phase)
	}
	if c.State().Velocity.Y != 0 {
		t.Error("wheel mid-drag injected velocity")
	}
}

func TestController_NewGestureCancelsMomentum(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())

	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, -120, 50)
	c.EndGesture(0, -120, 51)
	if c.State().Phase != PhaseMomentum {
		t.Fatal("expected momentum")
	}

	c.StartGesture(0, 0, 100)
	if c.State().Phase != PhaseDragging {
		t.Errorf("phase = %s, want dragging", c.State().Phase)
	}
	if c.State().Velocity.speed() != 0 {
		t.Error("stale momentum velocity survived the new gesture")
	}
}

func TestController_VelocityClamped(t *testing.T) {
	c := NewController(newFakeStore(3), DefaultConfig())
	c.StartGesture(0, 0, 0)
	c.MoveGesture(0, -1000, 1) // 1,000,000 px/s before the clamp
	if got := c.State().Velocity.speed(); got > DefaultConfig().MaxVelocity {
		t.Errorf("speed = %v exceeds the clamp %v", got, DefaultConfig().MaxVelocity)
	}
}

func TestController_ZeroConfigFallsBackToDefaults(t *testing.T) {
	c := NewController(newFakeStore(1), Config{})
	if c.cfg.Friction != DefaultConfig().Friction {
		t.Errorf("friction = %v, want default %v", c.cfg.Friction, DefaultConfig().Friction)
	}
	if c.cfg.SnapThreshold != DefaultConfig().SnapThreshold {
		t.Errorf("snap threshold = %v, want default", c.cfg.SnapThreshold)
	}
}

func TestController_TickNoopWhenIdle(t *testing.T) {
	store := newFakeStore(3)
	c := NewController(store, DefaultConfig())
	c.Tick(16)
	if c.State().Phase != PhaseIdle || len(store.visited) != 0 {
		t.Error("tick in idle must do nothing")
	}
}

var _ Store = (*fakeStore)(nil)
