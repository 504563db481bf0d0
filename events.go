package confetti

// BurstEventType identifies a change in an anchor's emitter set.
type BurstEventType uint8

const (
	BurstAttached BurstEventType = iota // an emitter started a burst
	BurstDetached                       // an emitter was removed after its life span
)

// String returns "attached" or "detached".
func (t BurstEventType) String() string {
	if t == BurstDetached {
		return "detached"
	}
	return "attached"
}

// BurstEvent describes one attach or detach on a SceneGraph.
type BurstEvent struct {
	Type      BurstEventType
	EmitterID uint32
	Anchor    string
	Variant   Variant
}

// EventSink is the interface for optional ECS integration.
// When set on a SceneGraph, burst events are forwarded to it.
type EventSink interface {
	EmitBurstEvent(event BurstEvent)
}
