package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/gymlog/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 20
	defaultMaxBackups = 10
	defaultMaxAgeDays = 90
)

type LoggerSetupParams struct {
	// ServiceName names the log file when LogsPath is a directory, and the
	// sentry server.
	ServiceName string
	// LogsPath is a file path, or a directory ending with a slash. Empty logs
	// to stdout only.
	LogsPath      string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int

	Environment   string
	SentryEnabled bool
	SentryDSN     string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(NewOutput(params))

	if params.LogsPath == "" {
		logrus.Debugf("%s: writing logs only to STDOUT", params.ServiceName)
		return
	}
	logrus.Debugf("%s: writing logs to %s, stdout: %t", params.ServiceName, LogFilePath(params.LogsPath, params.ServiceName), params.LogToStdout)
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.ServiceName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infof("%s: sentry set up", params.ServiceName)
}

// NewOutput builds the log writer: stdout, a rotated log file, or both.
func NewOutput(params LoggerSetupParams) io.Writer {
	if params.LogsPath == "" {
		return os.Stdout
	}

	fileLogger := newFileLogger(params)
	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, fileLogger)
	}
	return fileLogger
}

func newFileLogger(params LoggerSetupParams) *lumberjack.Logger {
	fileLogger := &lumberjack.Logger{
		Filename:   LogFilePath(params.LogsPath, params.ServiceName),
		MaxSize:    params.MaxSizeMB,
		MaxBackups: params.MaxBackups,
		MaxAge:     params.MaxAgeDays,
		LocalTime:  false, // UTC
		Compress:   true,
	}
	if fileLogger.MaxSize <= 0 {
		fileLogger.MaxSize = defaultMaxSizeMB
	}
	if fileLogger.MaxBackups <= 0 {
		fileLogger.MaxBackups = defaultMaxBackups
	}
	if fileLogger.MaxAge <= 0 {
		fileLogger.MaxAge = defaultMaxAgeDays
	}
	return fileLogger
}

// LogFilePath resolves the log file for a service. A directory path gets
// "<service>.log" appended and a file path always ends in ".log".
func LogFilePath(logsPath, serviceName string) string {
	if strings.HasSuffix(logsPath, "/") {
		if serviceName == "" {
			serviceName = "gymlog"
		}
		return filepath.Join(logsPath, serviceName+".log")
	}
	if !strings.HasSuffix(logsPath, ".log") {
		logsPath += ".log"
	}
	return logsPath
}

// GetLevel parses a level name, falling back to info.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
