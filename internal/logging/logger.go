package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/workoutlog/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 10
	logFileMaxAgeDays = 90
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	Environment   string

	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string

	// Output replaces stdout, e.g. stderr for tools that print results
	// (or speak a protocol) on stdout.
	Output io.Writer
}

// Setup configures the global logrus logger: level, format, where the
// entries go and, optionally, error reporting to sentry.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		setupSentry(params)
	}

	console := params.Output
	if console == nil {
		console = os.Stdout
	}

	switch {
	case params.LogFileName == "":
		logrus.SetOutput(console)
		logrus.Debugln("logging to console only")
	case params.LogToStdout:
		logrus.SetOutput(pkg.NewCombinedWriter(console, newFileWriter(params.LogFileName)))
		logrus.Debugf("logging to console and %s", params.LogFileName)
	default:
		logrus.SetOutput(newFileWriter(params.LogFileName))
	}
}

func setupSentry(params LoggerSetupParams) {
	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	}); err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry error reporting enabled")
}

// newFileWriter returns a rotating writer; the .log suffix is added when missing.
func newFileWriter(fileName string) io.Writer {
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	return &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}
}

// GetLevel parses a logrus level name, "warn" and "warning" alike.
// Unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
