// Package navigation turns raw pointer and wheel input into history-graph
// traversal: a small state machine with momentum physics and snap-to-node
// settling. The host's render loop drives the animation by calling Tick at
// its own cadence (~16 ms); the controller never schedules timers of its
// own, so it works the same under bubbletea, a game loop, or a test.
package navigation

import (
	"math"

	"varia/internal/domain"
)

// Phase is the gesture state machine phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseMomentum
	PhaseSnapping
	PhaseTransitioning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseMomentum:
		return "momentum"
	case PhaseSnapping:
		return "snapping"
	case PhaseTransitioning:
		return "transitioning"
	}
	return "unknown"
}

// Direction is the dominant axis direction of the active gesture.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Point is a 2D position or velocity vector. Velocities are px/s.
type Point struct {
	X float64
	Y float64
}

func (p Point) speed() float64 { return math.Hypot(p.X, p.Y) }

// GestureState is the controller's full kinematic state, exposed read-only
// so renderers can draw in-flight motion.
type GestureState struct {
	Phase         Phase
	Position      Point
	Velocity      Point
	DragStart     Point
	Delta         Point
	Direction     Direction
	LastTimestamp float64 // ms
}

// Config tunes the physics. Friction applies once per Tick against a ~16 ms
// reference cadence.
type Config struct {
	Friction          float64 // velocity multiplier per tick, in (0,1)
	MomentumThreshold float64 // px/s below which momentum settles
	SnapThreshold     float64 // px of displacement needed to change node
	MaxVelocity       float64 // px/s clamp on drag velocity
	DeadZone          float64 // px before a drag acquires a direction
	TransitionMs      float64 // settle animation length
	WheelGain         float64 // px/s of velocity per unit of wheel delta
}

// DefaultConfig returns the tuning the studio feed ships with.
func DefaultConfig() Config {
	return Config{
		Friction:          0.92,
		MomentumThreshold: 50,
		SnapThreshold:     40,
		MaxVelocity:       5000,
		DeadZone:          5,
		TransitionMs:      200,
		WheelGain:         12,
	}
}

// Store is the slice of the history graph the controller needs: the ordered
// window it snaps against, the node it is on, and a way to move.
type Store interface {
	Timeline() []*domain.HistoryNode
	CurrentNode() *domain.HistoryNode
	NavigateToNode(id string) domain.NavigationResult
}

// Controller is the gesture-driven navigation state machine. All methods
// must be called from one logical control flow; it shares the graph's
// single-threaded contract.
type Controller struct {
	store   Store
	cfg     Config
	state   GestureState
	emitter domain.Emitter

	transitionLeft float64 // ms remaining in the settle animation
}

// NewController wires a controller to a store. Zero-value config fields fall
// back to DefaultConfig.
func NewController(store Store, cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.Friction <= 0 || cfg.Friction >= 1 {
		cfg.Friction = def.Friction
	}
	if cfg.MomentumThreshold <= 0 {
		cfg.MomentumThreshold = def.MomentumThreshold
	}
	if cfg.SnapThreshold <= 0 {
		cfg.SnapThreshold = def.SnapThreshold
	}
	if cfg.MaxVelocity <= 0 {
		cfg.MaxVelocity = def.MaxVelocity
	}
	if cfg.DeadZone <= 0 {
		cfg.DeadZone = def.DeadZone
	}
	if cfg.TransitionMs <= 0 {
		cfg.TransitionMs = def.TransitionMs
	}
	if cfg.WheelGain <= 0 {
		cfg.WheelGain = def.WheelGain
	}
	return &Controller{store: store, cfg: cfg}
}

// Subscribe registers a gesture event listener and returns its unsubscribe
// func.
func (c *Controller) Subscribe(fn domain.Listener) func() {
	return c.emitter.Subscribe(fn)
}

// State returns a copy of the current kinematic state.
func (c *Controller) State() GestureState { return c.state }

// Animating reports whether the host must keep calling Tick.
func (c *Controller) Animating() bool {
	return c.state.Phase == PhaseMomentum || c.state.Phase == PhaseTransitioning
}

// StartGesture begins a drag. Any in-flight momentum or transition is
// cancelled: the last gesture always wins, nothing queues.
func (c *Controller) StartGesture(x, y, tMs float64) {
	c.transitionLeft = 0
	c.state = GestureState{
		Phase:         PhaseDragging,
		Position:      Point{x, y},
		DragStart:     Point{x, y},
		LastTimestamp: tMs,
	}
	c.emitter.Emit(domain.Event{Type: domain.EventGestureStart})
}

// MoveGesture updates the drag kinematics: delta from the start point,
// direction once outside the dead zone, and instantaneous velocity clamped
// to MaxVelocity. Ignored outside the Dragging phase.
func (c *Controller) MoveGesture(x, y, tMs float64) {
	if c.state.Phase != PhaseDragging {
		return
	}
	pos := Point{x, y}
	dt := tMs - c.state.LastTimestamp
	if dt > 0 {
		v := Point{
			X: (pos.X - c.state.Position.X) / dt * 1000,
			Y: (pos.Y - c.state.Position.Y) / dt * 1000,
		}
		c.state.Velocity = c.clampVelocity(v)
	}
	c.state.Delta = Point{pos.X - c.state.DragStart.X, pos.Y - c.state.DragStart.Y}
	c.state.Direction = directionFor(c.state.Delta, c.cfg.DeadZone)
	c.state.Position = pos
	c.state.LastTimestamp = tMs
}

// EndGesture releases the drag: fast releases coast under momentum, slow
// ones settle straight onto the nearest node.
func (c *Controller) EndGesture(x, y, tMs float64) {
	if c.state.Phase != PhaseDragging {
		return
	}
	c.MoveGesture(x, y, tMs)
	c.emitter.Emit(domain.Event{Type: domain.EventGestureEnd})

	if c.state.Velocity.speed() > c.cfg.MomentumThreshold {
		c.state.Phase = PhaseMomentum
		c.emitter.Emit(domain.Event{Type: domain.EventMomentumStart})
		return
	}
	c.beginSnap()
}

// Wheel maps a normalized scroll delta onto the same vector+velocity model:
// an impulse that enters Momentum directly and then decays and snaps like a
// flick. Ignored mid-drag; the pointer wins.
func (c *Controller) Wheel(dx, dy, tMs float64) {
	if c.state.Phase == PhaseDragging {
		return
	}
	if c.state.Phase != PhaseMomentum {
		c.transitionLeft = 0
		c.state = GestureState{
			Phase:         PhaseMomentum,
			Position:      c.state.Position,
			DragStart:     c.state.Position,
			LastTimestamp: tMs,
		}
		c.emitter.Emit(domain.Event{Type: domain.EventMomentumStart})
	}
	c.state.Velocity = c.clampVelocity(Point{
		X: c.state.Velocity.X + dx*c.cfg.WheelGain,
		Y: c.state.Velocity.Y + dy*c.cfg.WheelGain,
	})
	c.state.Delta = Point{c.state.Position.X - c.state.DragStart.X, c.state.Position.Y - c.state.DragStart.Y}
	c.state.Direction = directionFor(c.state.Delta, c.cfg.DeadZone)
	c.state.LastTimestamp = tMs
}

// Tick advances momentum decay and the settle animation by dtMs. The host
// calls it once per frame while Animating reports true; it is a no-op in
// Idle and Dragging.
func (c *Controller) Tick(dtMs float64) {
	switch c.state.Phase {
	case PhaseMomentum:
		c.state.Velocity.X *= c.cfg.Friction
		c.state.Velocity.Y *= c.cfg.Friction
		c.state.Position.X += c.state.Velocity.X * dtMs / 1000
		c.state.Position.Y += c.state.Velocity.Y * dtMs / 1000
		c.state.Delta = Point{
			X: c.state.Position.X - c.state.DragStart.X,
			Y: c.state.Position.Y - c.state.DragStart.Y,
		}
		c.state.Direction = directionFor(c.state.Delta, c.cfg.DeadZone)
		if c.state.Velocity.speed() < c.cfg.MomentumThreshold {
			c.emitter.Emit(domain.Event{Type: domain.EventMomentumEnd})
			c.beginSnap()
		}

	case PhaseTransitioning:
		c.transitionLeft -= dtMs
		if c.transitionLeft <= 0 {
			c.transitionLeft = 0
			c.state.Phase = PhaseIdle
			c.state.Velocity = Point{}
			c.emitter.Emit(domain.Event{Type: domain.EventSnapComplete})
		}
	}
}

// beginSnap selects the settle target against the store's timeline and
// starts the transition animation. Displacement is measured against the
// drag start along the dominant axis, sign-flipped: dragging content up
// (negative delta) is a positive displacement toward the previous node.
func (c *Controller) beginSnap() {
	c.state.Phase = PhaseSnapping

	timeline := c.store.Timeline()
	current := c.store.CurrentNode()
	index := -1
	if current != nil {
		for i, n := range timeline {
			if n.ID == current.ID {
				index = i
				break
			}
		}
	}

	target := index
	if index >= 0 {
		displacement := -c.axisDelta()
		switch {
		case displacement > c.cfg.SnapThreshold:
			if index-1 >= 0 {
				target = index - 1
			} else {
				// Elastic bounce is the renderer's job; we only report it.
				c.emitter.Emit(domain.Event{Type: domain.EventBoundaryReached, NodeID: current.ID})
			}
		case displacement < -c.cfg.SnapThreshold:
			if index+1 < len(timeline) {
				target = index + 1
			} else {
				// Past the last known node: the hook an AI collaborator
				// uses to generate the next variation. Never blocks.
				c.emitter.Emit(domain.Event{Type: domain.EventExhausted, NodeID: current.ID})
			}
		}
	}

	if target != index && target >= 0 && target < len(timeline) {
		c.store.NavigateToNode(timeline[target].ID)
	}

	c.state.Phase = PhaseTransitioning
	c.transitionLeft = c.cfg.TransitionMs
}

// axisDelta returns the gesture delta along its dominant axis.
func (c *Controller) axisDelta() float64 {
	switch c.state.Direction {
	case DirLeft, DirRight:
		return c.state.Delta.X
	case DirUp, DirDown:
		return c.state.Delta.Y
	}
	if math.Abs(c.state.Delta.X) > math.Abs(c.state.Delta.Y) {
		return c.state.Delta.X
	}
	return c.state.Delta.Y
}

func (c *Controller) clampVelocity(v Point) Point {
	speed := v.speed()
	if speed <= c.cfg.MaxVelocity || speed == 0 {
		return v
	}
	scale := c.cfg.MaxVelocity / speed
	return Point{v.X * scale, v.Y * scale}
}

func directionFor(delta Point, deadZone float64) Direction {
	ax, ay := math.Abs(delta.X), math.Abs(delta.Y)
	if ax < deadZone && ay < deadZone {
		return DirNone
	}
	if ay >= ax {
		if delta.Y < 0 {
			return DirUp
		}
		return DirDown
	}
	if delta.X < 0 {
		return DirLeft
	}
	return DirRight
}
