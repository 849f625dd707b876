package taskpool

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the logging facade every runtime accepts. It is nil-safe: a nil
// *Logger is simply silent, so passing no Logger in an Options value is
// equivalent to disabling all lifecycle logging.
type Logger = logiface.Logger[*stumpy.Event]

// NewDefaultLogger returns a Logger writing newline-delimited JSON to
// os.Stderr, using the package's default field names.
func NewDefaultLogger() *Logger {
	return stumpy.L.New()
}

// logStarted, logPaused, etc. are internal lifecycle log sites shared by all
// three runtimes. They intentionally never log item contents: only
// transitions of the runtime itself.
func logStarted(l *Logger, kind string, workers int) {
	l.Info().Str(`runtime`, kind).Int(`workers`, workers).Log(`started`)
}

func logPaused(l *Logger, kind string) {
	l.Debug().Str(`runtime`, kind).Log(`paused`)
}

func logResumed(l *Logger, kind string) {
	l.Debug().Str(`runtime`, kind).Log(`resumed`)
}

func logCancelled(l *Logger, kind string) {
	l.Notice().Str(`runtime`, kind).Log(`cancelled`)
}

func logCompleted(l *Logger, kind string) {
	l.Debug().Str(`runtime`, kind).Log(`completed`)
}

func logFinished(l *Logger, kind string) {
	l.Info().Str(`runtime`, kind).Log(`finished`)
}

func logWorkerPanic(l *Logger, kind string, recovered any) {
	l.Err().Str(`runtime`, kind).Str(`recovered`, stringifyRecover(recovered)).Log(`process panic recovered`)
}

func stringifyRecover(recovered any) string {
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(recovered)
}
