package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"career-relay/internal/logging/types"
)

// WriterAdapter writes formatted entries to an io.Writer, normally stdout or stderr
type WriterAdapter struct {
	name      string
	format    string
	colorized bool
	out       io.Writer
	mu        sync.Mutex
}

// WriterConfig represents configuration for the writer adapter
type WriterConfig struct {
	Format    string `yaml:"format"`    // json or text
	Colorized bool   `yaml:"colorized"` // text format only
	Target    string `yaml:"target"`    // stdout or stderr
}

// NewWriterAdapter creates an adapter bound to the configured target stream
func NewWriterAdapter(name string, config WriterConfig) *WriterAdapter {
	var out io.Writer = os.Stdout
	if strings.EqualFold(config.Target, "stderr") {
		out = os.Stderr
	}
	return NewWriterAdapterTo(name, config, out)
}

// NewWriterAdapterTo creates an adapter that writes to out
func NewWriterAdapterTo(name string, config WriterConfig, out io.Writer) *WriterAdapter {
	return &WriterAdapter{
		name:      name,
		format:    strings.ToLower(config.Format),
		colorized: config.Colorized,
		out:       out,
	}
}

func (a *WriterAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var output string
	var err error
	if a.format == "text" {
		output = a.formatText(entry)
	} else {
		output, err = a.formatJSON(entry)
	}
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	_, err = fmt.Fprintln(a.out, output)
	return err
}

func (a *WriterAdapter) Close() error {
	return nil
}

func (a *WriterAdapter) Name() string {
	return a.name
}

func (a *WriterAdapter) formatJSON(entry *types.LogEntry) (string, error) {
	logData := make(map[string]interface{}, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		logData[k] = v
	}
	logData["level"] = entry.Level.String()
	logData["message"] = entry.Message
	logData["time"] = entry.Timestamp.Format(time.RFC3339)

	data, err := json.Marshal(logData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *WriterAdapter) formatText(entry *types.LogEntry) string {
	timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")
	level := strings.ToUpper(entry.Level.String())
	if a.colorized {
		level = colorizeLevel(level)
	}

	output := fmt.Sprintf("%s [%s] %s", timestamp, level, entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		output += " " + strings.Join(pairs, " ")
	}

	return output
}

func colorizeLevel(level string) string {
	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		blue   = "\033[34m"
		gray   = "\033[90m"
		reset  = "\033[0m"
	)

	switch level {
	case "DEBUG":
		return gray + level + reset
	case "INFO":
		return blue + level + reset
	case "WARN":
		return yellow + level + reset
	case "ERROR", "FATAL":
		return red + level + reset
	default:
		return level
	}
}
