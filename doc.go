// Package confetti renders short confetti bursts over or behind application
// content, on demand, for [Ebitengine] games and apps.
//
// # Quick start
//
// The simplest way to get started is [NewStage] and [Run], which host an
// underlay and an overlay layer around your own drawing:
//
//	stage, err := confetti.NewStage(confetti.DefaultConfig(), confetti.GeneratedAssets{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage.Content = func(screen *ebiten.Image) { /* draw your app */ }
//	stage.Bus().Publish(confetti.PlacementBoth) // from anywhere, any time
//	confetti.Run(stage)
//
// # Building blocks
//
// An [EmitterProfile] is the immutable parameter set of one visual variant:
// crisp "near" confetti or smaller, blurred "far" confetti. A
// [ParticleEmitter] is one burst created from a profile. A [SceneGraph]
// holds a fixed camera, a directional light and two anchors placed just
// above the visible frustum so confetti appears to rain from above; each
// anchor is bound to exactly one profile.
//
// A [BurstController] owns a scene. [BurstController.Dispense] attaches a
// fresh emitter to each selected anchor and schedules its detach after the
// profile's life span on a [Scheduler]. Bursts overlap freely.
// [BurstController.Destroy] cancels every pending detach.
//
// A [TriggerBus] decouples callers from controllers: controllers subscribe
// with [BurstController.Bind] and a fixed role, and any code holding the bus
// can publish.
//
// The engine is single-threaded. All calls must come from the goroutine that
// runs the host loop; [FrameScheduler] runs deferred detaches on that loop.
//
// Logging uses [zerolog]; set the process logger or pass [WithLogger].
//
// [Ebitengine]: https://ebitengine.org
// [zerolog]: https://github.com/rs/zerolog
package confetti
