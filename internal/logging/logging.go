package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout and, when logPath is set, to an
// append-only log file.
func Init(logPath string) error {
	return initWriters(logPath, true)
}

// InitFileOnly routes the standard logger to the log file alone. It is used
// while a full-screen UI owns the terminal; with an empty path output is discarded.
func InitFileOnly(logPath string) error {
	return initWriters(logPath, false)
}

func initWriters(logPath string, console bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stdout)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogOperation records the outcome of a store or bucket operation.
func LogOperation(op, subject string, err error) {
	log.Println(buildOperationMessage(op, subject, err))
}

// LogPayload records the body sent with a write operation.
func LogPayload(op, subject string, payload any) {
	log.Println(buildOperationMessage(op, subject, nil) + " payload=" + formatPayload(payload))
}

func buildOperationMessage(op, subject string, err error) string {
	opValue := strings.ToUpper(strings.TrimSpace(op))
	if opValue == "" {
		opValue = "UNKNOWN"
	}
	subjectValue := strings.TrimSpace(subject)
	if subjectValue == "" {
		subjectValue = "-"
	}
	parts := []string{"[STORE]", fmt.Sprintf("op=%s", opValue), fmt.Sprintf("id=%s", subjectValue)}
	if err != nil {
		parts = append(parts, "status=error", fmt.Sprintf("error=%q", err.Error()))
	} else {
		parts = append(parts, "status=ok")
	}
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
