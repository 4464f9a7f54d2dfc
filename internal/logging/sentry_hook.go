package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

var levelsMap = map[logrus.Level]sentry.Level{
	logrus.TraceLevel: sentry.LevelDebug,
	logrus.DebugLevel: sentry.LevelDebug,
	logrus.InfoLevel:  sentry.LevelInfo,
	logrus.WarnLevel:  sentry.LevelWarning,
	logrus.ErrorLevel: sentry.LevelError,
	logrus.FatalLevel: sentry.LevelFatal,
	logrus.PanicLevel: sentry.LevelFatal,
}

// SentryHook forwards logrus entries of the given levels to sentry.
type SentryHook struct {
	levels []logrus.Level
	hub    *sentry.Hub
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		levels: levels,
		hub:    sentry.CurrentHub(),
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	if h.hub == nil {
		return errors.New("sentry hook: no hub")
	}

	h.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(levelsMap[entry.Level])

		extra := sentry.Context{}
		var entryErr error
		for k, v := range entry.Data {
			if k == logrus.ErrorKey {
				if err, ok := v.(error); ok {
					entryErr = err
					continue
				}
			}
			extra[k] = v
		}
		if len(extra) > 0 {
			scope.SetContext("logrus", extra)
		}

		if entryErr != nil {
			scope.SetTag("message", entry.Message)
			h.hub.CaptureException(entryErr)
			return
		}
		h.hub.CaptureMessage(entry.Message)
	})

	return nil
}
