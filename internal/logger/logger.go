package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New monta o logger da aplicação. Em desenvolvimento usa saída legível no console.
func New(level string, dev bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if dev {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "agendaja-guias").
		Logger()
}

func Nop() zerolog.Logger {
	return zerolog.Nop()
}
