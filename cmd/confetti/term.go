package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/confetti"
	"github.com/phanxgames/confetti/feedback"
	"github.com/phanxgames/confetti/termview"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func termCommand(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Render confetti in the terminal; space or click dispenses, q quits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			assets, err := cfg.AssetLoader()
			if err != nil {
				return err
			}
			var opts []confetti.Option
			if f.Sound {
				sp, err := feedback.NewSpeaker()
				if err != nil {
					return err
				}
				defer sp.Close()
				opts = append(opts, confetti.WithFeedback(sp))
			}

			// The screen owns the terminal; console logging would tear it.
			restore := log.Logger
			log.Logger = zerolog.Nop()
			defer func() { log.Logger = restore }()

			stage, err := confetti.NewStage(cfg, assets, opts...)
			if err != nil {
				return errors.Wrap(err, "failed to build stage")
			}
			defer stage.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return errors.Wrap(err, "failed to create terminal screen")
			}
			if err := screen.Init(); err != nil {
				return errors.Wrap(err, "failed to initialize terminal screen")
			}
			defer screen.Fini()
			screen.EnableMouse()

			return termLoop(screen, stage, cfg.TPS)
		},
	}
}

// pollEvents forwards terminal events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	// PollEvent returns nil once the screen is finalized.
	for ev := screen.PollEvent(); ev != nil; ev = screen.PollEvent() {
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// termLoop drives the stage from a ticker. Terminal events are read on their
// own goroutine and handed to the loop, so the stage is only touched here.
func termLoop(screen tcell.Screen, stage *confetti.Stage, tps int) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	surface := termview.New(screen)
	dt := 1.0 / float64(tps)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	var held bool
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyEnter, ev.Rune() == ' ':
					stage.Trigger()
				}
			case *tcell.EventMouse:
				pressed := ev.Buttons()&tcell.Button1 != 0
				if pressed && !held {
					stage.Trigger()
				}
				held = pressed
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			stage.Step(dt)
			var scenes []*confetti.SceneGraph
			for _, c := range stage.Layers() {
				scenes = append(scenes, c.Scene())
			}
			surface.Render(scenes...)
			screen.Show()
		}
	}
}
