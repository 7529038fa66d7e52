// Package log provides the prefixed, colored leveled logger used by every component.
package log

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006/01/02 15:04:05"

// Logger writes lines of the form "[PREFIX] [LEVEL] 2006/01/02 15:04:05 message".
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger writing to out. The prefix is printed in color.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is empty")
	}
	if out == nil {
		return nil, errors.New("logger output is nil")
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&formatter{prefix: strings.ToUpper(prefix), color: color})

	return &Logger{entry: l}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

type formatter struct {
	prefix string
	color  string
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s[%s]%s %s[%s]%s %s %s\n",
		f.color, f.prefix, config.ColorReset,
		levelColor(e.Level), levelName(e.Level), config.ColorReset,
		e.Time.Format(timeLayout), e.Message)
	return b.Bytes(), nil
}

func levelName(level logrus.Level) string {
	switch level {
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "ERROR"
	default:
		return strings.ToUpper(level.String())
	}
}

func levelColor(level logrus.Level) string {
	switch level {
	case logrus.WarnLevel:
		return config.LogWarningColor
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return config.LogErrorColor
	default:
		return config.LogInfoColor
	}
}
