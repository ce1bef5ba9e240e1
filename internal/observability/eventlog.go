package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types written by a shell session.
const (
	TypeSessionStarted  = "session.started"
	TypeSessionEnded    = "session.ended"
	TypeFileLoaded      = "file.loaded"
	TypeFileSaved       = "file.saved"
	TypeLineSkipped     = "file.line_skipped"
	TypeTaskAdded       = "task.added"
	TypeTaskRemoved     = "task.removed"
	TypeTaskEdited      = "task.edited"
	TypeTaskRejected    = "task.rejected"
	TypeCommandRejected = "command.rejected"
	TypeQueryRun        = "query.run"
	TypeLevelChanged    = "level.changed"
)

// Event levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// sessionKey is the Data key holding the session id.
const sessionKey = "session"

// Event represents a single observable event in a session.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Type    string         `json:"type"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventFilter specifies criteria for reading events.
type EventFilter struct {
	Since   *time.Time
	Until   *time.Time
	Type    string
	Level   string
	Session string
}

// EventLog defines the interface for writing and reading events.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog creates a new EventLog backed by a JSONL file at the given path.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{
		path: path,
		file: f,
	}, nil
}

// Write appends a JSON-encoded event followed by a newline to the log file.
func (l *jsonlEventLog) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Read scans the log file and returns the events matching filter.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // skip malformed lines
		}

		if matchesEventFilter(event, filter) {
			events = append(events, event)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}

func matchesEventFilter(event Event, filter EventFilter) bool {
	if filter.Since != nil && event.Time.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && event.Time.After(*filter.Until) {
		return false
	}
	if filter.Type != "" && event.Type != filter.Type {
		return false
	}
	if filter.Level != "" && event.Level != filter.Level {
		return false
	}
	if filter.Session != "" && SessionOf(event) != filter.Session {
		return false
	}
	return true
}

// SessionOf returns the session id stamped on event, if any.
func SessionOf(event Event) string {
	s, _ := event.Data[sessionKey].(string)
	return s
}

// Recorder stamps events with a session id and the current time before
// writing them. A nil Recorder, or one without a log, drops every event.
type Recorder struct {
	log     EventLog
	session string
	now     func() time.Time
}

// NewRecorder returns a Recorder writing to log under a fresh session id.
func NewRecorder(log EventLog) *Recorder {
	return &Recorder{
		log:     log,
		session: uuid.NewString(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Session returns the id stamped on every recorded event.
func (r *Recorder) Session() string {
	if r == nil {
		return ""
	}
	return r.session
}

// Info records an INFO event.
func (r *Recorder) Info(eventType, msg string, data map[string]any) {
	r.record(LevelInfo, eventType, msg, data)
}

// Warn records a WARN event.
func (r *Recorder) Warn(eventType, msg string, data map[string]any) {
	r.record(LevelWarn, eventType, msg, data)
}

// Error records an ERROR event.
func (r *Recorder) Error(eventType, msg string, data map[string]any) {
	r.record(LevelError, eventType, msg, data)
}

func (r *Recorder) record(level, eventType, msg string, data map[string]any) {
	if r == nil || r.log == nil {
		return
	}
	stamped := make(map[string]any, len(data)+1)
	for k, v := range data {
		stamped[k] = v
	}
	stamped[sessionKey] = r.session

	// Write failures are dropped.
	_ = r.log.Write(Event{
		Time:    r.now(),
		Level:   level,
		Type:    eventType,
		Message: msg,
		Data:    stamped,
	})
}
