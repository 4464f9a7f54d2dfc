package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/habitflow/backend/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultLogFileName is used when LogsPath points to a directory.
	DefaultLogFileName = "habitflow.log"
	defaultMaxSizeMB   = 50
)

type LoggerSetupParams struct {
	// LogsPath is either a log file or a directory (trailing slash) to hold DefaultLogFileName.
	// Empty means STDOUT only.
	LogsPath         string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	MaxSizeMB        int
	MaxBackups       int
	MaxAgeDays       int
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogsPath == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return
	}

	fileWriter := newRotatingFile(params)
	if !params.LogToStdout {
		logrus.SetOutput(fileWriter)
		logrus.Printf("writing logs to [%s]", fileWriter.Filename)
		return
	}

	logrus.SetOutput(pkg.NewCombinedWriter(os.Stdout, fileWriter))
	logrus.Printf("writing logs to [%s] and STDOUT", fileWriter.Filename)
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
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
	logrus.Infoln("sentry hook added")
}

func newRotatingFile(params LoggerSetupParams) *lumberjack.Logger {
	maxSize := params.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	return &lumberjack.Logger{
		Filename:   LogFilePath(params.LogsPath),
		MaxSize:    maxSize,
		MaxBackups: params.MaxBackups,
		MaxAge:     params.MaxAgeDays,
		LocalTime:  false,
		Compress:   true,
	}
}

// LogFilePath resolves the configured logs path into the file lumberjack writes to.
func LogFilePath(logsPath string) string {
	if strings.HasSuffix(logsPath, "/") || strings.HasSuffix(logsPath, string(filepath.Separator)) {
		return filepath.Join(logsPath, DefaultLogFileName)
	}
	if filepath.Ext(logsPath) != ".log" {
		return logsPath + ".log"
	}
	return logsPath
}

// GetLevel maps a config level name to a logrus level, falling back to info.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
