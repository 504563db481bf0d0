package confetti

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Node names and fixed coordinates of the confetti scene.
const (
	CameraNodeName     = "Camera"
	LightNodeName      = "DirectionalLight"
	NearAnchorNodeName = "ConfettiForegroundDispenser"
	FarAnchorNodeName  = "ConfettiBackgroundDispenser"

	cameraFieldOfView    = 60.0
	cameraFocalLength    = 20.785
	lightIntensity       = 1300
	defaultFocusDistance = 17.0
	defaultFocusRange    = 10.0
)

var (
	cameraPosition  = Vec3{0, 0, 15}
	lightPosition   = Vec3{-22, -1.8, 28}
	lightEuler      = Vec3{31, -38, -14}
	nearAnchorPoint = Vec3{0, 12, -2}
	farAnchorPoint  = Vec3{0, 14, -5}
)

// SceneGraph is the 3D scene a burst controller draws into: one fixed camera,
// one directional light and two anchors placed just above the top edge of
// the camera frustum, the far one deeper than the near one. Anchors never
// move; AttachEmitter and DetachEmitter are the only mutations after
// BuildScene.
type SceneGraph struct {
	root   *Node
	camera *Node
	light  *Node
	near   *Node
	far    *Node

	profiles *Profiles
	sink     EventSink
	log      zerolog.Logger
	debug    bool
	disposed bool

	// Called once by Dispose, in registration order.
	disposeHooks []func()

	// Render state
	projected []ProjectedParticle
}

// BuildScene constructs a new scene whose near anchor is bound to
// profiles.Near and far anchor to profiles.Far. Every call returns a
// structurally identical, independent scene.
func BuildScene(profiles Profiles) *SceneGraph {
	ps := &Profiles{Near: profiles.Near, Far: profiles.Far}
	ps.Near.Variant = VariantNear
	ps.Far.Variant = VariantFar

	s := &SceneGraph{
		root:     newContainer("root"),
		profiles: ps,
		log:      log.With().Str("component", "scene").Logger(),
	}
	s.far = newAnchor(FarAnchorNodeName, farAnchorPoint, &ps.Far)
	s.near = newAnchor(NearAnchorNodeName, nearAnchorPoint, &ps.Near)
	s.camera = newCameraNode(CameraNodeName, cameraPosition,
		newCamera(cameraPosition, cameraFieldOfView, cameraFocalLength, true))
	s.light = newLightNode(LightNodeName, lightPosition, lightEuler,
		newDirectionalLight(lightIntensity, lightEuler))

	s.root.addChild(s.far)
	s.root.addChild(s.near)
	s.root.addChild(s.camera)
	s.root.addChild(s.light)
	return s
}

// Root returns the scene's root container node.
func (s *SceneGraph) Root() *Node { return s.root }

// CameraNode returns the node carrying the scene camera.
func (s *SceneGraph) CameraNode() *Node { return s.camera }

// Camera returns the scene camera.
func (s *SceneGraph) Camera() *Camera { return s.camera.camera }

// LightNode returns the node carrying the directional light.
func (s *SceneGraph) LightNode() *Node { return s.light }

// NearAnchor returns the foreground dispense point.
func (s *SceneGraph) NearAnchor() *Node { return s.near }

// FarAnchor returns the background dispense point.
func (s *SceneGraph) FarAnchor() *Node { return s.far }

// Anchors returns both anchors, near first.
func (s *SceneGraph) Anchors() []*Node { return []*Node{s.near, s.far} }

// AnchorFor returns the anchor(s) a placement targets, near first.
func (s *SceneGraph) AnchorFor(p Placement) []*Node {
	switch p {
	case PlacementNear:
		return []*Node{s.near}
	case PlacementFar:
		return []*Node{s.far}
	default:
		return []*Node{s.near, s.far}
	}
}

// SetLogger replaces the scene's logger.
func (s *SceneGraph) SetLogger(l zerolog.Logger) { s.log = l }

// SetEventSink sets the optional receiver of attach and detach events.
func (s *SceneGraph) SetEventSink(sink EventSink) { s.sink = sink }

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (s *SceneGraph) SetDebugMode(enabled bool) { s.debug = enabled }

// AttachEmitter hosts e on anchor and starts its burst immediately.
// Panics if e or anchor is nil, anchor does not belong to this scene, e was
// created from a different profile than the anchor's, or e has already been
// attached once. No-op on a disposed scene.
func (s *SceneGraph) AttachEmitter(e *ParticleEmitter, anchor *Node) {
	if e == nil {
		panic("confetti: cannot attach nil emitter")
	}
	if anchor != s.near && anchor != s.far {
		panic("confetti: anchor does not belong to this scene")
	}
	if e.profile != anchor.profile {
		panic("confetti: emitter profile does not match anchor " + anchor.Name)
	}
	if e.anchor != nil || e.spent {
		panic("confetti: emitter already attached")
	}
	if s.disposed {
		s.log.Debug().Uint32("emitter", e.id).Msg("attach on disposed scene ignored")
		return
	}
	e.attach(anchor)
	anchor.addEmitter(e)
	s.log.Debug().
		Uint32("emitter", e.id).
		Str("anchor", anchor.Name).
		Int("emitters", anchor.NumEmitters()).
		Msg("emitter attached")
	s.emit(BurstEvent{Type: BurstAttached, EmitterID: e.id, Anchor: anchor.Name, Variant: anchor.Variant()})
}

// DetachEmitter removes e from anchor and frees its particles. It reports
// whether e was attached there; detaching twice is a no-op.
func (s *SceneGraph) DetachEmitter(e *ParticleEmitter, anchor *Node) bool {
	if e == nil || anchor == nil || !anchor.removeEmitter(e) {
		s.log.Debug().Msg("detach of emitter that is not attached ignored")
		return false
	}
	e.detach()
	s.log.Debug().
		Uint32("emitter", e.id).
		Str("anchor", anchor.Name).
		Int("emitters", anchor.NumEmitters()).
		Msg("emitter detached")
	s.emit(BurstEvent{Type: BurstDetached, EmitterID: e.id, Anchor: anchor.Name, Variant: anchor.Variant()})
	return true
}

func (s *SceneGraph) emit(ev BurstEvent) {
	if s.sink != nil {
		s.sink.EmitBurstEvent(ev)
	}
}

// Update advances every attached emitter by dt seconds.
func (s *SceneGraph) Update(dt float64) {
	if s.disposed {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	for _, a := range s.Anchors() {
		for _, e := range a.emitters {
			e.update(dt)
		}
	}
	if s.debug {
		st := s.Stats()
		s.log.Debug().
			Dur("update", time.Since(t0)).
			Int("emitters", st.Emitters).
			Int("particles", st.Particles).
			Msg("frame")
	}
}

// SceneStats summarizes the scene's live state.
type SceneStats struct {
	Emitters  int
	Particles int
}

// Stats counts attached emitters and live particles.
func (s *SceneGraph) Stats() SceneStats {
	var st SceneStats
	for _, a := range s.Anchors() {
		st.Emitters += len(a.emitters)
		for _, e := range a.emitters {
			st.Particles += e.alive
		}
	}
	return st
}

// onDispose registers fn to run when the scene is disposed.
func (s *SceneGraph) onDispose(fn func()) {
	s.disposeHooks = append(s.disposeHooks, fn)
}

// Dispose detaches every emitter, emitting a detach event for each, runs the
// dispose hooks and marks the scene unusable. Further attaches are ignored.
func (s *SceneGraph) Dispose() {
	if s.disposed {
		return
	}
	for _, a := range s.Anchors() {
		for len(a.emitters) > 0 {
			s.DetachEmitter(a.emitters[0], a)
		}
	}
	s.disposed = true
	for _, fn := range s.disposeHooks {
		fn()
	}
	s.disposeHooks = nil
	s.root.dispose()
	s.projected = nil
	s.log.Debug().Msg("scene disposed")
}

// IsDisposed reports whether Dispose has been called.
func (s *SceneGraph) IsDisposed() bool { return s.disposed }
