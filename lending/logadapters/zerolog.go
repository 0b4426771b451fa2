package logadapters

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologAdapter adapts a zerolog.Logger to the lending.Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates an adapter around the given zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug logs at debug level.
func (a *ZerologAdapter) Debug(msg string, args ...any) {
	emit(a.logger.Debug(), msg, args)
}

// Info logs at info level.
func (a *ZerologAdapter) Info(msg string, args ...any) {
	emit(a.logger.Info(), msg, args)
}

// Warn logs at warn level.
func (a *ZerologAdapter) Warn(msg string, args ...any) {
	emit(a.logger.Warn(), msg, args)
}

// Error logs at error level.
func (a *ZerologAdapter) Error(msg string, args ...any) {
	emit(a.logger.Error(), msg, args)
}

// emit attaches the key-value pairs to the event. A trailing key without a
// value is logged as-is under the "misc" key.
func emit(event *zerolog.Event, msg string, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			event = event.Interface("misc", args[i])
			break
		}

		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}

		event = event.Interface(key, args[i+1])
	}

	event.Msg(msg)
}
