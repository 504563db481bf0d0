package confetti

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func newTestStage(t *testing.T, mode string) *Stage {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Mode = mode
	s, err := NewStage(cfg, GeneratedAssets{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewStageModes(t *testing.T) {
	tests := []struct {
		mode              string
		underlay, overlay bool
	}{
		{"near", false, true},
		{"far", true, false},
		{"both", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			s := newTestStage(t, tt.mode)
			if (s.Underlay() != nil) != tt.underlay {
				t.Errorf("underlay present = %v, want %v", s.Underlay() != nil, tt.underlay)
			}
			if (s.Overlay() != nil) != tt.overlay {
				t.Errorf("overlay present = %v, want %v", s.Overlay() != nil, tt.overlay)
			}
			want := 0
			if tt.underlay {
				want++
			}
			if tt.overlay {
				want++
			}
			if got := len(s.Layers()); got != want {
				t.Errorf("Layers = %d, want %d", got, want)
			}
			if s.Bus().Len() != want {
				t.Errorf("bus subscribers = %d, want %d", s.Bus().Len(), want)
			}
		})
	}
}

func TestNewStageInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "sideways"
	if _, err := NewStage(cfg, GeneratedAssets{}); err == nil {
		t.Error("expected error for invalid mode")
	}
	if _, err := NewStage(DefaultConfig(), missingAssets()); err == nil {
		t.Error("expected error for missing sprites")
	}
}

func TestNewStageRejectsNonPositiveRates(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero tps", func(c *Config) { c.TPS = 0 }},
		{"negative tps", func(c *Config) { c.TPS = -30 }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero height", func(c *Config) { c.Window.Height = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if _, err := NewStage(cfg, GeneratedAssets{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStageTriggerAndExpire(t *testing.T) {
	s := newTestStage(t, "both")
	s.Trigger()

	if n := s.Overlay().Scene().NearAnchor().NumEmitters(); n != 1 {
		t.Errorf("overlay near emitters = %d, want 1", n)
	}
	if n := s.Overlay().Scene().FarAnchor().NumEmitters(); n != 0 {
		t.Errorf("overlay far emitters = %d, want 0", n)
	}
	if n := s.Underlay().Scene().FarAnchor().NumEmitters(); n != 1 {
		t.Errorf("underlay far emitters = %d, want 1", n)
	}

	s.Step(0.5)
	if st := s.Overlay().Scene().Stats(); st.Particles == 0 {
		t.Error("overlay should have live particles")
	}
	for i := 0; i < 41; i++ {
		s.Step(0.5)
	}
	for _, c := range s.Layers() {
		if st := c.Scene().Stats(); st.Emitters != 0 {
			t.Errorf("emitters = %d after life span, want 0", st.Emitters)
		}
	}
}

func TestStageClose(t *testing.T) {
	s := newTestStage(t, "both")
	s.Trigger()
	s.Close()
	if s.Bus().Len() != 0 {
		t.Errorf("bus subscribers = %d after Close, want 0", s.Bus().Len())
	}
	if s.Scheduler().Pending() != 0 {
		t.Errorf("scheduled detaches = %d after Close, want 0", s.Scheduler().Pending())
	}
	for _, c := range s.Layers() {
		if !c.IsDestroyed() || !c.Scene().IsDisposed() {
			t.Error("Close should destroy controllers and dispose scenes")
		}
	}
	s.Trigger()
	s.Step(1)
	s.Close()
}

func TestStageDrawAndDebugHUD(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	s, err := NewStage(cfg, GeneratedAssets{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	defer s.Close()
	if s.hud == nil {
		t.Fatal("debug config should enable the HUD")
	}

	drawn := 0
	s.Content = func(*ebiten.Image) { drawn++ }
	s.ClearColor = Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	s.Trigger()
	s.Step(1.0 / 60)
	if s.hud.text == "" {
		t.Error("HUD text should be filled on the first step")
	}
	s.Draw(ebiten.NewImage(120, 200))
	if drawn != 1 {
		t.Errorf("content drawn %d times, want 1", drawn)
	}
	if w, h := s.Layout(300, 400); w != 300 || h != 400 {
		t.Errorf("Layout = %dx%d, want 300x400", w, h)
	}
}
