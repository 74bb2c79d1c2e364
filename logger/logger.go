package logger

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// LevelSilent disables everything below panic
const LevelSilent = "silent"

var std = logrus.New()

type Fields = logrus.Fields

type Entry = logrus.Entry

// Settings 日志配置
type Settings struct {
	Filename    string
	Level       string
	RollingDays uint
	Format      string
}

func init() {
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// Init 初始化logger
func Init(settings Settings) error {
	level, err := ParseLevel(settings.Level)
	if err != nil {
		return err
	}
	std.SetLevel(level)

	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	if settings.Format == "json" {
		formatter = &logrus.JSONFormatter{}
	}
	std.SetFormatter(formatter)

	if settings.Filename == "" {
		return nil
	}
	if settings.RollingDays == 0 {
		settings.RollingDays = 7
	}
	writer, err := rotatelogs.New(
		strings.TrimSuffix(settings.Filename, filepath.Ext(settings.Filename))+".%Y%m%d"+filepath.Ext(settings.Filename),
		rotatelogs.WithLinkName(settings.Filename),
		rotatelogs.WithMaxAge(time.Duration(settings.RollingDays)*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	std.AddHook(lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: writer,
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, formatter))
	return nil
}

// ParseLevel accepts logrus level names plus "silent"; empty means info
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "":
		return logrus.InfoLevel, nil
	case LevelSilent:
		return logrus.PanicLevel, nil
	}
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return lv, errors.Wrapf(err, "log level %q", level)
	}
	return lv, nil
}

func SetLevel(level logrus.Level) {
	std.SetLevel(level)
}

func SetOutput(out io.Writer) {
	std.SetOutput(out)
}

func GetLevel() logrus.Level {
	return std.GetLevel()
}

func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}

func WithFields(fields Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return std.WithError(err)
}

func Trace(args ...interface{}) {
	std.Trace(args...)
}

func Tracef(format string, args ...interface{}) {
	std.Tracef(format, args...)
}

func Debug(args ...interface{}) {
	std.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

func Info(args ...interface{}) {
	std.Info(args...)
}

func Infof(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Warn(args ...interface{}) {
	std.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

func Error(args ...interface{}) {
	std.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

func Fatal(args ...interface{}) {
	std.Fatal(args...)
}
