package observability

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypePlan      EventType = "plan"
	EventTypeStep      EventType = "step"
	EventTypeResearch  EventType = "research"
	EventTypeQuery     EventType = "query"
	EventTypeCompose   EventType = "compose"
	EventTypeDiscovery EventType = "discovery"
	EventTypeLLM       EventType = "llm"
)

// Event represents a structured log entry.
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger handles structured logging.
type Logger struct {
	llmLogPath string
	maxSize    int64
}

func NewLogger() *Logger {
	return &Logger{
		llmLogPath: filepath.Join("logs", "llm.jsonl"),
		maxSize:    10 * 1024 * 1024, // 10MB
	}
}

// Log emits a structured JSON event to stdout.
func (l *Logger) Log(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		fmt.Printf("{\"error\": \"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Println(string(data))

	if evt.Type == EventTypeLLM {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.llmLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.llmLogPath)
	if err == nil && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.llmLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// Simple rotation: keep one .old file
	oldPath := l.llmLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.llmLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogPlan(question string, steps []string) {
	l.Log(Event{
		Type: EventTypePlan,
		Data: map[string]any{
			"question": question,
			"steps":    steps,
		},
	})
}

func (l *Logger) LogStep(step string, output string, stepErr error) {
	data := map[string]any{
		"step":   step,
		"output": output,
	}
	if stepErr != nil {
		data["error"] = stepErr.Error()
	}
	l.Log(Event{Type: EventTypeStep, Data: data})
}

func (l *Logger) LogQuery(statement string, output string, queryErr error) {
	data := map[string]any{
		"statement": statement,
		"output":    output,
	}
	if queryErr != nil {
		data["error"] = queryErr.Error()
	}
	l.Log(Event{Type: EventTypeQuery, Data: data})
}

func (l *Logger) LogResearch(topic string, findings string) {
	l.Log(Event{
		Type: EventTypeResearch,
		Data: map[string]string{
			"topic":    topic,
			"findings": findings,
		},
	})
}

func (l *Logger) LogCompose(question string, answer string) {
	l.Log(Event{
		Type: EventTypeCompose,
		Data: map[string]string{
			"question": question,
			"answer":   answer,
		},
	})
}

func (l *Logger) LogDiscovery(tables int, columns int, fromCache bool) {
	l.Log(Event{
		Type: EventTypeDiscovery,
		Data: map[string]any{
			"tables":     tables,
			"columns":    columns,
			"from_cache": fromCache,
		},
	})
}

func (l *Logger) LogLLM(prompt any, response string) {
	l.Log(Event{
		Type: EventTypeLLM,
		Data: map[string]any{
			"prompt":   prompt,
			"response": response,
		},
	})
}
