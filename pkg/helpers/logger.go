package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/rollbar/rollbar-go"
	"github.com/sirupsen/logrus"
)

// LogOption tweaks the logger built by NewLogger.
type LogOption func(*logOptions)

type logOptions struct {
	level        string
	file         string
	maxSizeMB    int
	maxBackups   int
	maxAgeDays   int
	rollbarToken string
	codeVersion  string
}

// WithLevel overrides the env-derived level (debug, info, warn, error).
func WithLevel(level string) LogOption { return func(o *logOptions) { o.level = level } }

// WithFile tees output into a size-rotated file.
func WithFile(path string, maxSizeMB, maxBackups, maxAgeDays int) LogOption {
	return func(o *logOptions) {
		o.file = path
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
	}
}

// WithRollbar forwards error-and-above entries to Rollbar.
func WithRollbar(token, codeVersion string) LogOption {
	return func(o *logOptions) {
		o.rollbarToken = token
		o.codeVersion = codeVersion
	}
}

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string, opts ...LogOption) *logrus.Logger {
	o := logOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logrus.New()
	var out io.Writer = os.Stdout
	if o.file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			MaxAge:     o.maxAgeDays,
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if o.level != "" {
		if lvl, err := logrus.ParseLevel(o.level); err == nil {
			logger.SetLevel(lvl)
		}
	}

	if o.rollbarToken != "" {
		rollbar.SetToken(o.rollbarToken)
		rollbar.SetEnvironment(env)
		rollbar.SetCodeVersion(o.codeVersion)
		logger.AddHook(&RollbarHook{})
	}

	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// RollbarHook ships error, fatal and panic entries to Rollbar with their fields as extras.
type RollbarHook struct{}

func (h *RollbarHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *RollbarHook) Fire(e *logrus.Entry) error {
	extras := make(map[string]interface{}, len(e.Data))
	var cause error
	for k, v := range e.Data {
		if err, ok := v.(error); ok && k == logrus.ErrorKey {
			cause = err
			continue
		}
		extras[k] = v
	}
	level := rollbar.ERR
	if e.Level <= logrus.FatalLevel {
		level = rollbar.CRIT
	}
	if cause != nil {
		rollbar.ErrorWithExtras(level, fmt.Errorf("%s: %w", e.Message, cause), extras)
		return nil
	}
	rollbar.MessageWithExtras(level, e.Message, extras)
	return nil
}

// FlushRollbar waits for queued Rollbar items; safe to call when Rollbar is disabled.
func FlushRollbar() {
	rollbar.Wait()
}
