// Command confetti shows confetti bursts in a window or a terminal.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("confetti failed")
		os.Exit(1)
	}
}
