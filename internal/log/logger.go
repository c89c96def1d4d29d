package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	config "github.com/thirdweb-dev/freeze/configs"
)

// InitLogger replaces the global logger. Logs go to stderr so stdout stays
// free for command output.
func InitLogger() {
	log.Logger = NewLogger(os.Stderr, config.Cfg.Log, "freeze")
}

// NewLogger builds a component logger. An unknown or empty level means warn.
func NewLogger(out io.Writer, cfg config.LogConfig, component string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	if cfg.Prettify {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).With().Timestamp().Str("component", component).Caller().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}
