package camera

import (
	"strings"
	"sync"

	"github.com/seqsense/pcgol/mat"
)

// DefaultSpeed is the displacement per key press in world units.
const DefaultSpeed = 0.5

// minHorizontal is the shortest horizontal facing component treated as a
// usable heading.
const minHorizontal = 1e-4

// Command is a movement derived from a key symbol.
type Command int

const (
	CommandNone Command = iota
	CommandForward
	CommandBackward
	CommandStrafeLeft
	CommandStrafeRight
)

func (c Command) String() string {
	switch c {
	case CommandForward:
		return "forward"
	case CommandBackward:
		return "backward"
	case CommandStrafeLeft:
		return "strafe_left"
	case CommandStrafeRight:
		return "strafe_right"
	default:
		return "none"
	}
}

// CommandFromKey maps a KeyboardEvent.key value to a Command.
// Matching is case-insensitive.
func CommandFromKey(key string) Command {
	switch strings.ToLower(key) {
	case "w", "arrowup":
		return CommandForward
	case "s", "arrowdown":
		return CommandBackward
	case "a", "arrowleft":
		return CommandStrafeLeft
	case "d", "arrowright":
		return CommandStrafeRight
	default:
		return CommandNone
	}
}

// Displacement returns the horizontal movement for cmd when facing forward.
// The heading is forward with its vertical component removed and
// renormalized, so the step length does not depend on the pitch.
func Displacement(forward mat.Vec3, cmd Command, speed float32) mat.Vec3 {
	if cmd == CommandNone {
		return mat.Vec3{}
	}
	h := mat.Vec3{forward[0], 0, forward[2]}
	n := h.Norm()
	if n < minHorizontal || !isFinite(h) {
		return mat.Vec3{}
	}
	h = h.Mul(1 / n)
	right := h.Cross(worldUp).Normalized()

	switch cmd {
	case CommandForward:
		return h.Mul(speed)
	case CommandBackward:
		return h.Mul(-speed)
	case CommandStrafeLeft:
		return right.Mul(-speed)
	case CommandStrafeRight:
		return right.Mul(speed)
	}
	return mat.Vec3{}
}

// Move returns position displaced according to key.
// Unrecognized keys return position unchanged.
func Move(position, forward mat.Vec3, key string, speed float32) mat.Vec3 {
	return position.Add(Displacement(forward, CommandFromKey(key), speed))
}

// KeySource delivers key symbols to subscribers until unsubscribed.
type KeySource interface {
	Subscribe(fn func(key string)) (unsubscribe func())
}

// Navigator moves a Camera on key presses.
type Navigator struct {
	cam   *Camera
	Speed float32

	mu  sync.Mutex
	sub *subscription
}

type subscription struct {
	once        sync.Once
	unsubscribe func()
}

func (s *subscription) release() {
	s.once.Do(s.unsubscribe)
}

// NewNavigator returns a Navigator driving cam.
func NewNavigator(cam *Camera, speed float32) *Navigator {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Navigator{cam: cam, Speed: speed}
}

// HandleKey applies key to the camera position and reports whether the
// camera moved.
func (n *Navigator) HandleKey(key string) bool {
	cmd := CommandFromKey(key)
	if cmd == CommandNone {
		return false
	}
	f, ok := n.cam.Forward()
	if !ok {
		return false
	}
	d := Displacement(f, cmd, n.Speed)
	if d.NormSq() == 0 {
		return false
	}
	return n.cam.MoveTo(n.cam.Position.Add(d))
}

// Attach subscribes to src, replacing any previous subscription.
// The returned function detaches; calling it more than once is a no-op.
func (n *Navigator) Attach(src KeySource) (detach func()) {
	n.Detach()

	sub := &subscription{
		unsubscribe: src.Subscribe(func(key string) {
			n.HandleKey(key)
		}),
	}
	n.mu.Lock()
	n.sub = sub
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		if n.sub == sub {
			n.sub = nil
		}
		n.mu.Unlock()
		sub.release()
	}
}

// Detach releases the current subscription, if any.
func (n *Navigator) Detach() {
	n.mu.Lock()
	sub := n.sub
	n.sub = nil
	n.mu.Unlock()

	if sub != nil {
		sub.release()
	}
}

// Attached reports whether the navigator holds a subscription.
func (n *Navigator) Attached() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sub != nil
}
