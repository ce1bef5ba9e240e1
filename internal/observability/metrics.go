package observability

import (
	"fmt"
	"time"
)

// Metrics holds activity counters derived from the event log.
type Metrics struct {
	Sessions         int            `json:"sessions"`
	FilesLoaded      int            `json:"files_loaded"`
	FilesSaved       int            `json:"files_saved"`
	FileFailures     int            `json:"file_failures"`
	LinesSkipped     int            `json:"lines_skipped"`
	TasksAdded       int            `json:"tasks_added"`
	TasksRemoved     int            `json:"tasks_removed"`
	TasksEdited      int            `json:"tasks_edited"`
	TasksRejected    int            `json:"tasks_rejected"`
	CommandsRejected int            `json:"commands_rejected"`
	QueriesByCommand map[string]int `json:"queries_by_command"`
	EventCount       int            `json:"event_count"`
	OldestEvent      *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		QueriesByCommand: make(map[string]int),
		EventCount:       len(events),
	}

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		if event.Level == LevelError && (event.Type == TypeFileLoaded || event.Type == TypeFileSaved) {
			m.FileFailures++
			continue
		}

		switch event.Type {
		case TypeSessionStarted:
			m.Sessions++
		case TypeFileLoaded:
			m.FilesLoaded++
		case TypeFileSaved:
			m.FilesSaved++
		case TypeLineSkipped:
			m.LinesSkipped++
		case TypeTaskAdded:
			m.TasksAdded++
		case TypeTaskRemoved:
			m.TasksRemoved++
		case TypeTaskEdited:
			m.TasksEdited++
		case TypeTaskRejected:
			m.TasksRejected++
		case TypeCommandRejected:
			m.CommandsRejected++
		case TypeQueryRun:
			if cmd, ok := event.Data["command"].(string); ok {
				m.QueriesByCommand[cmd]++
			}
		}
	}

	return m, nil
}
