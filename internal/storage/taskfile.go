package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// fieldSeparator delimits the seven stored fields of a task line.
const fieldSeparator = "|"

// storedFields is the number of fields per line; the id is not stored.
const storedFields = models.FieldCount - 1

// LoadIssue reports a line that was skipped while loading a task file.
type LoadIssue struct {
	Line   int
	Reason string
	Err    error
}

func (i LoadIssue) String() string {
	return fmt.Sprintf("task %d: %s", i.Line, i.Reason)
}

// TaskStore defines the interface for reading and writing task files.
type TaskStore interface {
	// Load reads the task file at path. Lines that cannot be loaded are
	// skipped and reported as issues; the error is reserved for I/O failures.
	Load(path string) (*core.Collection, []LoadIssue, error)
	// Store overwrites the task file at path with c.
	Store(c *core.Collection, path string) error
}

type fileTaskStore struct {
	dataDir string
}

// NewTaskFileStore creates a TaskStore for pipe-delimited task files. Relative
// paths are resolved against dataDir.
func NewTaskFileStore(dataDir string) TaskStore {
	return &fileTaskStore{dataDir: dataDir}
}

func (s *fileTaskStore) resolve(path string) string {
	if filepath.IsAbs(path) || s.dataDir == "" {
		return path
	}
	return filepath.Join(s.dataDir, path)
}

func (s *fileTaskStore) Load(path string) (*core.Collection, []LoadIssue, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return nil, nil, fmt.Errorf("loading tasks from %s: %w", path, err)
	}

	c := core.NewCollection()
	var issues []LoadIssue

	scanner := bufio.NewScanner(bytes.NewReader(data))
	// The whole file is in memory, so no line can outgrow it.
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		parts := strings.Split(text, fieldSeparator)
		if len(parts) < storedFields {
			issues = append(issues, LoadIssue{Line: line, Reason: "insufficient data"})
			continue
		}
		parts[len(parts)-1] = strings.TrimSpace(parts[len(parts)-1])

		fields := append([]string{strconv.Itoa(line)}, parts...)
		if err := c.Add(fields, core.OriginStored); err != nil {
			issues = append(issues, issueFor(line, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	return c, issues, nil
}

func issueFor(line int, err error) LoadIssue {
	if errors.Is(err, core.ErrFieldCount) {
		return LoadIssue{Line: line, Reason: "too much data", Err: err}
	}
	var recErr *core.RecordError
	if errors.As(err, &recErr) {
		reasons := make([]string, len(recErr.Problems))
		for i, p := range recErr.Problems {
			reasons[i] = p.Reason
		}
		return LoadIssue{Line: line, Reason: strings.Join(reasons, "; "), Err: err}
	}
	return LoadIssue{Line: line, Reason: err.Error(), Err: err}
}

func (s *fileTaskStore) Store(c *core.Collection, path string) error {
	var b strings.Builder
	for _, t := range c.Tasks() {
		b.WriteString(FormatLine(t))
		b.WriteByte('\n')
	}
	if err := writeLocked(s.resolve(path), []byte(b.String())); err != nil {
		return fmt.Errorf("storing tasks to %s: %w", path, err)
	}
	return nil
}

// FormatLine renders t as a stored line without the trailing newline.
func FormatLine(t models.Task) string {
	return strings.Join(t.HumanFields()[1:], fieldSeparator)
}
