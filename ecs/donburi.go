package ecs

import (
	"github.com/phanxgames/confetti"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BurstEventType is the Donburi event type for confetti burst events.
var BurstEventType = events.NewEventType[confetti.BurstEvent]()

// Burst is the component carried by the entity mirroring one live burst.
type Burst struct {
	EmitterID uint32
	Anchor    string
	Variant   confetti.Variant
}

// BurstComponent is the Donburi component type of Burst.
var BurstComponent = donburi.NewComponentType[Burst]()

// DonburiSink is a confetti.EventSink backed by a Donburi world. Disposing
// the scene detaches its emitters, so their entities are removed as well.
type DonburiSink struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to BurstEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entities: make(map[uint32]donburi.Entity)}
}

// EmitBurstEvent publishes event and creates or removes the burst's entity.
func (s *DonburiSink) EmitBurstEvent(event confetti.BurstEvent) {
	switch event.Type {
	case confetti.BurstAttached:
		e := s.world.Create(BurstComponent)
		BurstComponent.SetValue(s.world.Entry(e), Burst{
			EmitterID: event.EmitterID,
			Anchor:    event.Anchor,
			Variant:   event.Variant,
		})
		s.entities[event.EmitterID] = e
	case confetti.BurstDetached:
		if e, ok := s.entities[event.EmitterID]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.entities, event.EmitterID)
		}
	}
	BurstEventType.Publish(s.world, event)
}

// Live returns the number of bursts currently mirrored as entities.
func (s *DonburiSink) Live() int {
	return len(s.entities)
}

// Entity returns the entity mirroring the burst of emitterID.
func (s *DonburiSink) Entity(emitterID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[emitterID]
	return e, ok
}
