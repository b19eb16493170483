package logger

import (
	"github.com/rs/zerolog"
)

type zerologLogger struct {
	log zerolog.Logger
}

var _ Logger = &zerologLogger{}

// NewZerolog adapts a zerolog.Logger to Logger.
func NewZerolog(log zerolog.Logger) Logger {
	return &zerologLogger{log: log}
}

func (z *zerologLogger) Debugf(format string, args ...any) {
	z.log.Debug().Msgf(format, args...)
}

func (z *zerologLogger) Infof(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z *zerologLogger) Warnf(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z *zerologLogger) Errorf(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}
