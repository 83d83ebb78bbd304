package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type StderrHook struct{}

func (h *StderrHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel}
}

func (h *StderrHook) Fire(entry *logrus.Entry) error {
	entry.Logger.Out = os.Stderr
	return nil
}

// stdoutHook moves the output back to stdout for entries below warn, which
// StderrHook would otherwise leave pointing at stderr.
type stdoutHook struct{}

func (h *stdoutHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel}
}

func (h *stdoutHook) Fire(entry *logrus.Entry) error {
	entry.Logger.Out = os.Stdout
	return nil
}

// SetupLogger sets the level and formatter. Warnings and errors always go to
// stderr; info and below go to stdout only when infoToStdout is set, so
// commands that print generated files keep stdout clean.
func SetupLogger(level string, infoToStdout bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.AddHook(&StderrHook{})
	if infoToStdout {
		logrus.AddHook(&stdoutHook{})
	}
	return nil
}
