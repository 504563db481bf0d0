package confetti

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Handler receives every placement published on a TriggerBus.
type Handler func(Placement)

// Token identifies a subscription. The zero Token is never issued.
type Token uint64

type subscriber struct {
	token   Token
	handler Handler
	removed bool
}

// TriggerBus lets any part of an application request a burst without a
// reference to the controllers that render it. It is an explicit object
// owned by the application, not process-global state. Single-threaded: no
// locks.
type TriggerBus struct {
	subs []*subscriber
	next Token
	log  zerolog.Logger
}

// NewTriggerBus creates an empty bus.
func NewTriggerBus() *TriggerBus {
	return &TriggerBus{log: log.With().Str("component", "bus").Logger()}
}

// SetLogger replaces the bus's logger.
func (b *TriggerBus) SetLogger(l zerolog.Logger) { b.log = l }

// Subscribe registers h and returns the token that removes it.
// Panics if h is nil.
func (b *TriggerBus) Subscribe(h Handler) Token {
	if h == nil {
		panic("confetti: cannot subscribe nil handler")
	}
	b.next++
	b.subs = append(b.subs, &subscriber{token: b.next, handler: h})
	b.log.Debug().Uint64("token", uint64(b.next)).Int("subscribers", len(b.subs)).Msg("subscribed")
	return b.next
}

// Unsubscribe removes the handler registered under t. It reports whether a
// handler was removed; unknown or already removed tokens are a no-op.
func (b *TriggerBus) Unsubscribe(t Token) bool {
	for i, s := range b.subs {
		if s.token == t {
			s.removed = true
			copy(b.subs[i:], b.subs[i+1:])
			b.subs[len(b.subs)-1] = nil
			b.subs = b.subs[:len(b.subs)-1]
			b.log.Debug().Uint64("token", uint64(t)).Int("subscribers", len(b.subs)).Msg("unsubscribed")
			return true
		}
	}
	return false
}

// Publish calls every current subscriber once with p, synchronously and in
// subscription order. Handlers added during Publish are first called on the
// next Publish; handlers removed during Publish and not yet called are
// skipped.
func (b *TriggerBus) Publish(p Placement) {
	if len(b.subs) == 0 {
		return
	}
	snapshot := make([]*subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.log.Debug().Stringer("placement", p).Int("subscribers", len(snapshot)).Msg("publish")
	for _, s := range snapshot {
		if s.removed {
			continue
		}
		s.handler(p)
	}
}

// Len returns the number of live subscriptions.
func (b *TriggerBus) Len() int { return len(b.subs) }
