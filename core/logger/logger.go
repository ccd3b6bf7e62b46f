package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	log = newLogger(os.Stderr)
}

func newLogger(out io.Writer) zerolog.Logger {
	var writer io.Writer = out
	if strings.ToLower(os.Getenv("LOG_FORMAT")) != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	return zerolog.New(writer).Level(level()).With().Timestamp().Logger()
}

func level() zerolog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetOutput replaces the log destination. Used by tests to capture output.
func SetOutput(out io.Writer) {
	log = newLogger(out)
}

func Debug(msg string, keysAndValues ...any) {
	emit(log.Debug(), msg, keysAndValues)
}

func Info(msg string, keysAndValues ...any) {
	emit(log.Info(), msg, keysAndValues)
}

func Warn(msg string, keysAndValues ...any) {
	emit(log.Warn(), msg, keysAndValues)
}

func Error(msg string, keysAndValues ...any) {
	emit(log.Error(), msg, keysAndValues)
}

// emit attaches loosely-typed key/value pairs to the event. A bare error or a
// trailing unpaired value is logged under "error"/"value" rather than dropped.
func emit(e *zerolog.Event, msg string, kvs []any) {
	for i := 0; i < len(kvs); {
		if err, ok := kvs[i].(error); ok {
			e = e.AnErr("error", err)
			i++
			continue
		}
		key, ok := kvs[i].(string)
		if !ok || i+1 >= len(kvs) {
			e = e.Interface("value", kvs[i])
			i++
			continue
		}
		e = e.Interface(key, kvs[i+1])
		i += 2
	}
	e.Msg(strings.TrimSuffix(msg, ":"))
}

// Fatalf logs and exits. Reserved for unrecoverable startup failures.
func Fatalf(format string, args ...any) {
	log.Fatal().Msg(fmt.Sprintf(format, args...))
}
