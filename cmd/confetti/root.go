package main

import (
	"os"

	"github.com/phanxgames/confetti"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Flags are the options shared by every subcommand. Set values override the
// configuration file.
type Flags struct {
	Config   string
	Mode     string
	Assets   string
	LogLevel string
	Debug    bool
	Sound    bool
}

func rootCommand() *cobra.Command {
	var f Flags

	cmd := &cobra.Command{
		Use:           "confetti",
		Short:         "Dispense confetti over an empty stage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.Config, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&f.Mode, "mode", "m", "", "layers to show: near, far or both")
	flags.StringVar(&f.Assets, "assets", "", "directory holding ConfettiForeground.png and ConfettiBackground.png")
	flags.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&f.Debug, "debug", false, "log per-frame scene stats")
	flags.BoolVar(&f.Sound, "sound", false, "play a pop on every dispense")

	cmd.AddCommand(runCommand(&f), termCommand(&f))
	return cmd
}

// loadConfig reads the configuration file, if any, applies flag overrides and
// configures the global logger.
func loadConfig(cmd *cobra.Command, f *Flags) (confetti.Config, error) {
	cfg := confetti.DefaultConfig()
	if f.Config != "" {
		var err error
		if cfg, err = confetti.LoadConfig(f.Config); err != nil {
			return confetti.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = f.Mode
	}
	if flags.Changed("assets") {
		cfg.Assets.Dir = f.Assets
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if flags.Changed("debug") {
		cfg.Debug = f.Debug
	}
	if err := cfg.Validate(); err != nil {
		return confetti.Config{}, errors.Wrap(err, "invalid configuration")
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return cfg, nil
}
