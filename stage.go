package confetti

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Stage hosts confetti around application content: an underlay scene drawn
// behind the content with a controller bound to the far role, and an overlay
// scene drawn in front with a controller bound to the near role. Both listen
// on one TriggerBus and share one FrameScheduler. Stage implements
// ebiten.Game.
type Stage struct {
	// Content draws the application between the underlay and the overlay.
	Content func(screen *ebiten.Image)
	// ClearColor fills the screen before the underlay when its alpha is
	// non-zero.
	ClearColor Color

	cfg       Config
	sched     *FrameScheduler
	bus       *TriggerBus
	underlay  *BurstController
	overlay   *BurstController
	placement Placement
	hud       *debugHUD
	log       zerolog.Logger
	closed    bool
}

// NewStage builds the layers the configured mode asks for: near creates only
// the overlay, far only the underlay, both creates both.
func NewStage(cfg Config, assets AssetLoader, opts ...Option) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	s := &Stage{
		cfg:       cfg,
		sched:     NewFrameScheduler(),
		bus:       NewTriggerBus(),
		placement: cfg.Placement(),
		log:       log.With().Str("component", "stage").Logger(),
	}
	if cfg.Debug {
		s.hud = newDebugHUD()
	}
	opts = append([]Option{WithDebug(cfg.Debug)}, opts...)

	if s.placement != PlacementNear {
		c, err := NewBurstController(assets, s.sched, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create underlay")
		}
		c.Bind(s.bus, PlacementFar)
		s.underlay = c
	}
	if s.placement != PlacementFar {
		c, err := NewBurstController(assets, s.sched, opts...)
		if err != nil {
			if s.underlay != nil {
				s.underlay.Destroy()
			}
			return nil, errors.Wrap(err, "failed to create overlay")
		}
		c.Bind(s.bus, PlacementNear)
		s.overlay = c
	}
	s.log.Info().Stringer("mode", s.placement).Msg("stage ready")
	return s, nil
}

// Bus returns the trigger bus both layers listen on.
func (s *Stage) Bus() *TriggerBus { return s.bus }

// Scheduler returns the stage's scheduler.
func (s *Stage) Scheduler() *FrameScheduler { return s.sched }

// Underlay returns the background controller, or nil in near mode.
func (s *Stage) Underlay() *BurstController { return s.underlay }

// Overlay returns the foreground controller, or nil in far mode.
func (s *Stage) Overlay() *BurstController { return s.overlay }

// Layers returns the live controllers, underlay first.
func (s *Stage) Layers() []*BurstController {
	var out []*BurstController
	if s.underlay != nil {
		out = append(out, s.underlay)
	}
	if s.overlay != nil {
		out = append(out, s.overlay)
	}
	return out
}

// Trigger publishes one trigger with the configured placement.
func (s *Stage) Trigger() {
	if s.closed {
		return
	}
	s.bus.Publish(s.placement)
}

// Step runs due detaches, then advances every scene by dt seconds.
func (s *Stage) Step(dt float64) {
	if s.closed {
		return
	}
	s.sched.AdvanceSeconds(dt)
	for _, c := range s.Layers() {
		c.Scene().Update(dt)
	}
	if s.hud != nil {
		s.hud.update(dt, s.Layers())
	}
}

// Update polls for a click, tap or space bar press, then steps one tick.
func (s *Stage) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		s.Trigger()
	}
	s.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw renders the underlay, the content, then the overlay. In debug mode a
// stats HUD is drawn last.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	if s.underlay != nil {
		s.underlay.Scene().Draw(screen)
	}
	if s.Content != nil {
		s.Content(screen)
	}
	if s.overlay != nil {
		s.overlay.Scene().Draw(screen)
	}
	if s.hud != nil {
		s.hud.draw(screen)
	}
}

// Layout keeps the screen at the window size.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close destroys both controllers and disposes their scenes.
func (s *Stage) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, c := range s.Layers() {
		c.Destroy()
		c.Scene().Dispose()
	}
	s.log.Info().Msg("stage closed")
}

// Run opens a window and runs the stage until the window is closed.
func Run(s *Stage) error {
	defer s.Close()
	ebiten.SetWindowSize(s.cfg.Window.Width, s.cfg.Window.Height)
	ebiten.SetWindowTitle(s.cfg.Window.Title)
	ebiten.SetTPS(s.cfg.TPS)
	ebiten.SetScreenClearedEveryFrame(true)
	if err := ebiten.RunGame(s); err != nil {
		return errors.Wrap(err, "game loop failed")
	}
	return nil
}
