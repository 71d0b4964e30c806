// Package logging configures the process logger: human-readable output on
// stdout plus a persistent error log file for post-mortems.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to stdout at Info level, or Debug when verbose.
func New(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// AttachErrorFile duplicates Error-and-above entries into the given file so
// failures survive the terminal scrollback. The file is appended across runs.
func AttachErrorFile(log *logrus.Logger, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	log.AddHook(&errorFileHook{file: f})
	return nil
}

type errorFileHook struct {
	file      *os.File
	formatter logrus.Formatter
}

func (h *errorFileHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *errorFileHook) Fire(entry *logrus.Entry) error {
	if h.formatter == nil {
		h.formatter = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
		}
	}
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.file.Write(data)
	return err
}
