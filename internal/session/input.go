package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// ErrAbandoned is returned by a prompt when the user typed the quit word. It
// abandons only the pending multi-step request.
var ErrAbandoned = errors.New("request abandoned")

// prompter reads one answer per line and prints prompts from the catalog.
type prompter struct {
	in       *bufio.Scanner
	out      io.Writer
	catalog  *Catalog
	quitWord string
}

// raw prints the prompt for key and returns the next line verbatim. It
// returns io.EOF once input is exhausted.
func (p *prompter) raw(key string) (string, error) {
	fmt.Fprint(p.out, p.catalog.Text(key))
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// line is raw with the quit word mapped to ErrAbandoned.
func (p *prompter) line(key string) (string, error) {
	s, err := p.raw(key)
	if err != nil {
		return "", err
	}
	if s == p.quitWord {
		return "", ErrAbandoned
	}
	return s, nil
}

func (p *prompter) say(key string, args ...any) {
	fmt.Fprintln(p.out, p.catalog.Format(key, args...))
}

// confirm asks a y/n question until it gets one of the two answers.
func (p *prompter) confirm(key string) (bool, error) {
	for {
		s, err := p.raw(key)
		if err != nil {
			return false, err
		}
		switch s {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		p.say("bad_answer", s)
	}
}

// askPath asks for a task file name. banned, when set, names a file that
// must not be chosen.
func (p *prompter) askPath(banned string) (string, error) {
	for {
		s, err := p.line("path_request")
		if err != nil {
			return "", err
		}
		if err := core.ValidatePath(s); err != nil {
			p.say("bad_path", s)
			continue
		}
		if banned != "" && s == banned {
			p.say("banned_path")
			continue
		}
		return s, nil
	}
}

func (p *prompter) askDate() (models.Date, error) {
	for {
		s, err := p.line("date_request")
		if err != nil {
			return "", err
		}
		d, err := core.ParseDate(s, core.OriginUser)
		if err != nil {
			p.say("bad_date", s)
			continue
		}
		return d, nil
	}
}

func (p *prompter) askTime() (models.Clock, error) {
	for {
		s, err := p.line("time_request")
		if err != nil {
			return "", err
		}
		c, err := core.ParseClock(s)
		if err != nil {
			p.say("bad_time", s)
			continue
		}
		return c, nil
	}
}

func (p *prompter) askStatus() (models.StatusCode, error) {
	for {
		s, err := p.line("status_request")
		if err != nil {
			return "", err
		}
		code, err := core.ParseStatus(s, core.OriginUser)
		if err != nil {
			p.say("bad_status", s)
			continue
		}
		return code, nil
	}
}

// askID asks for the id of a task that exists in c.
func (p *prompter) askID(c *core.Collection) (int, error) {
	for {
		s, err := p.line("id_request")
		if err != nil {
			return 0, err
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			p.say("bad_id", s)
			continue
		}
		if _, err := c.FindFirst(models.FieldID, strconv.Itoa(id)); err != nil {
			p.say("no_task", s)
			continue
		}
		return id, nil
	}
}

// askExecutor asks for an executor that has at least one task in c.
func (p *prompter) askExecutor(c *core.Collection) (string, error) {
	for {
		s, err := p.line("executor_request")
		if err != nil {
			return "", err
		}
		if _, err := c.FindFirst(models.FieldExecutor, s); err != nil {
			p.say("no_executor")
			continue
		}
		return s, nil
	}
}

func (p *prompter) askDescription() (string, error) {
	for {
		s, err := p.line("task_request")
		if err != nil {
			return "", err
		}
		if core.IsBlank(s) {
			p.say("empty_value")
			continue
		}
		return s, nil
	}
}

// askNumber asks for an integer in [lo, hi], reporting bad input with badKey.
func (p *prompter) askNumber(key, badKey string, lo, hi int) (int, error) {
	for {
		s, err := p.line(key)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			p.say(badKey, s)
			continue
		}
		return n, nil
	}
}

// askField asks which non-id field of a task to edit.
func (p *prompter) askField() (models.Field, error) {
	n, err := p.askNumber("item_request", "bad_item", int(models.FieldReceivedDate), int(models.FieldStatus))
	return models.Field(n), err
}

func (p *prompter) askFunction() (int, error) {
	return p.askNumber("function_request", "bad_function", 1, 3)
}

func (p *prompter) askDays() (int, error) {
	return p.askNumber("day_request", "bad_days", 0, int(^uint(0)>>1))
}

// askKey asks for one sort key and its direction; n is 1 for the primary
// key and 2 for the secondary.
func (p *prompter) askKey(n int) (models.Field, bool, error) {
	fmt.Fprint(p.out, p.catalog.Text("key_list"))
	key, err := p.askNumber(fmt.Sprintf("key_%d_request", n), "bad_key", int(models.FieldID), int(models.FieldStatus))
	if err != nil {
		return 0, false, err
	}
	dir, err := p.askNumber("reverse_request", "bad_reverse", 1, 2)
	if err != nil {
		return 0, false, err
	}
	return models.Field(key), dir == 2, nil
}
