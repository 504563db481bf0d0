package confetti

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Feedback is a side effect fired once per dispense, such as an impact
// haptic or a sound.
type Feedback interface {
	Impact()
}

// Option configures a BurstController.
type Option func(*BurstController)

// WithLogger sets the logger for the controller and its scene.
func WithLogger(l zerolog.Logger) Option {
	return func(c *BurstController) { c.log = l }
}

// WithFeedback sets the side effect fired on every dispense.
func WithFeedback(f Feedback) Option {
	return func(c *BurstController) { c.feedback = f }
}

// WithEventSink forwards the scene's burst events to sink.
func WithEventSink(sink EventSink) Option {
	return func(c *BurstController) { c.sink = sink }
}

// WithDebug enables per-frame scene stats logging.
func WithDebug(enabled bool) Option {
	return func(c *BurstController) { c.debug = enabled }
}

// burst is one attached emitter awaiting its scheduled detach.
type burst struct {
	emitter *ParticleEmitter
	anchor  *Node
	timer   Timer
}

// BurstController turns dispense requests into attach-then-timed-detach pairs
// on the SceneGraph it owns. Bursts are independent: any number may overlap
// on the same anchor, each detached by its own timer after the profile's
// life span.
type BurstController struct {
	scene    *SceneGraph
	sched    Scheduler
	pending  []*burst
	bindings []binding

	feedback Feedback
	sink     EventSink
	debug    bool
	log      zerolog.Logger

	destroyed bool
}

type binding struct {
	bus   *TriggerBus
	token Token
}

// NewBurstController loads both profiles through assets, builds a scene for
// them and returns a controller scheduling detaches on sched. It fails with a
// *ConfigurationError when a sprite does not resolve.
func NewBurstController(assets AssetLoader, sched Scheduler, opts ...Option) (*BurstController, error) {
	if sched == nil {
		return nil, errors.New("confetti: nil scheduler")
	}
	profiles, err := LoadProfiles(assets)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load emitter profiles")
	}

	c := &BurstController{
		sched: sched,
		log:   log.With().Str("component", "burst").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.scene = BuildScene(profiles)
	c.scene.SetLogger(c.log)
	c.scene.SetEventSink(c.sink)
	c.scene.SetDebugMode(c.debug)
	c.scene.onDispose(c.sceneDisposed)
	return c, nil
}

// Scene returns the controller's scene graph.
func (c *BurstController) Scene() *SceneGraph { return c.scene }

// Dispense starts one new burst on every anchor placement selects. Each
// emitter is created from its anchor's own profile, attached before Dispense
// returns, and detached LifeSpan seconds later. No-op after Destroy or once
// the scene has been disposed.
func (c *BurstController) Dispense(p Placement) {
	if c.destroyed || c.scene.IsDisposed() {
		c.log.Debug().Stringer("placement", p).Msg("dispense on destroyed controller ignored")
		return
	}
	if c.feedback != nil {
		c.feedback.Impact()
	}
	for _, anchor := range c.scene.AnchorFor(p) {
		e := NewParticleEmitter(anchor.Profile())
		c.scene.AttachEmitter(e, anchor)

		b := &burst{emitter: e, anchor: anchor}
		b.timer = c.sched.After(seconds(e.profile.LifeSpan), func() { c.expire(b) })
		c.pending = append(c.pending, b)
	}
	c.log.Debug().Stringer("placement", p).Int("pending", len(c.pending)).Msg("dispensed")
}

// expire detaches a burst whose life span has elapsed.
func (c *BurstController) expire(b *burst) {
	if c.destroyed || c.scene.IsDisposed() {
		return
	}
	c.removePending(b)
	if !c.scene.DetachEmitter(b.emitter, b.anchor) {
		c.log.Debug().Uint32("emitter", b.emitter.ID()).Msg("emitter already detached")
	}
}

func (c *BurstController) removePending(b *burst) {
	for i, x := range c.pending {
		if x == b {
			copy(c.pending[i:], c.pending[i+1:])
			c.pending[len(c.pending)-1] = nil
			c.pending = c.pending[:len(c.pending)-1]
			return
		}
	}
}

// Pending returns the number of bursts awaiting their detach.
func (c *BurstController) Pending() int { return len(c.pending) }

// Bind subscribes the controller to bus with a fixed role: every publish
// dispenses role, whatever placement was published. The subscription is
// removed by Destroy, or earlier with Unbind.
func (c *BurstController) Bind(bus *TriggerBus, role Placement) Token {
	t := bus.Subscribe(func(Placement) { c.Dispense(role) })
	c.bindings = append(c.bindings, binding{bus: bus, token: t})
	c.log.Debug().Stringer("role", role).Uint64("token", uint64(t)).Msg("bound to trigger bus")
	return t
}

// Unbind removes a subscription created by Bind. It reports whether one was
// removed.
func (c *BurstController) Unbind(bus *TriggerBus, t Token) bool {
	for i, b := range c.bindings {
		if b.bus == bus && b.token == t {
			c.bindings = append(c.bindings[:i], c.bindings[i+1:]...)
			return bus.Unsubscribe(t)
		}
	}
	return false
}

// Destroy cancels every pending detach and removes every bus subscription.
// The scene is left as it is; nothing touches it afterwards. Safe to call
// more than once.
func (c *BurstController) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	cancelled := c.cancelPending()
	for _, b := range c.bindings {
		b.bus.Unsubscribe(b.token)
	}
	unbound := len(c.bindings)
	c.bindings = nil
	c.log.Info().Int("cancelled", cancelled).Int("unbound", unbound).Msg("burst controller destroyed")
}

// sceneDisposed stops every pending detach once the scene is gone; the
// emitters were already detached by the scene itself.
func (c *BurstController) sceneDisposed() {
	if c.destroyed {
		return
	}
	cancelled := c.cancelPending()
	c.log.Debug().Int("cancelled", cancelled).Msg("scene disposed, pending detaches cancelled")
}

// cancelPending stops every pending detach timer and returns how many were
// still queued.
func (c *BurstController) cancelPending() int {
	cancelled := 0
	for _, b := range c.pending {
		if b.timer.Stop() {
			cancelled++
		}
	}
	c.pending = nil
	return cancelled
}

// IsDestroyed reports whether Destroy has been called.
func (c *BurstController) IsDestroyed() bool { return c.destroyed }
