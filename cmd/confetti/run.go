package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/confetti"
	"github.com/phanxgames/confetti/feedback"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func runCommand(f *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open a window; click, tap or press space to dispense",
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

			stage, err := confetti.NewStage(cfg, assets, opts...)
			if err != nil {
				return errors.Wrap(err, "failed to build stage")
			}
			stage.ClearColor = confetti.Color{R: 0.96, G: 0.96, B: 0.98, A: 1}
			var card *ebiten.Image
			stage.Content = func(screen *ebiten.Image) {
				ebitenutil.DebugPrintAt(screen, "click, tap or press space", 12, 12)
				w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
				if card == nil || card.Bounds().Dx() != w/2 || card.Bounds().Dy() != h/6 {
					if card != nil {
						card.Deallocate()
					}
					card = ebiten.NewImage(max(1, w/2), max(1, h/6))
					card.Fill(color.RGBA{R: 40, G: 44, B: 52, A: 255})
				}
				var op ebiten.DrawImageOptions
				op.GeoM.Translate(float64(w/4), float64(h/2-h/12))
				screen.DrawImage(card, &op)
			}

			log.Info().Str("mode", cfg.Mode).Msg("opening window")
			return confetti.Run(stage)
		},
	}
}
