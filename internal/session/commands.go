package session

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/internal/observability"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// dispatch runs an authorized command. It reports whether the current level
// should be left.
func (s *Session) dispatch(ctx context.Context, f *frame, cmd Command) (bool, error) {
	switch cmd {
	case CmdQuit:
		return s.quit(f)
	case CmdDate:
		s.p.say("today", s.today().Human())
	case CmdHelp:
		s.p.say("help_" + strconv.Itoa(int(f.level)))
	case CmdPath:
		return false, s.openPath(ctx)
	case CmdFile:
		return false, s.editFile(ctx, f)
	case CmdSave:
		return false, s.saveWorking(f)
	case CmdShow:
		f.working = f.source.Copy()
	case CmdRemove:
		return false, s.remove(f)
	case CmdEdit:
		if f.level == LevelTask {
			return false, s.editTask(f)
		}
		return false, s.editField(f)
	case CmdAdd:
		return false, s.add(f)
	case CmdSort:
		return false, s.sort(f)
	case CmdFunction:
		return false, s.function(f)
	default:
		return false, s.query(f, cmd)
	}
	return false, nil
}

func (s *Session) quit(f *frame) (bool, error) {
	if f.level == LevelTop {
		return true, nil
	}
	return s.p.confirm("confirmation")
}

// openPath asks which file to open and runs the file level on it.
func (s *Session) openPath(ctx context.Context) error {
	path := s.defaultFile
	s.p.say("reading_from", path)
	ok, err := s.p.confirm("path_confirmation")
	if err != nil {
		return err
	}
	if ok {
		return s.enterFile(ctx, path)
	}

	// A newly named file is read first and only opened, and remembered as
	// the default, once confirmed.
	if path, err = s.p.askPath(""); err != nil {
		return err
	}
	f := s.open(path)
	if f == nil {
		return nil
	}
	if ok, err = s.p.confirm("path_confirmation"); err != nil || !ok {
		return err
	}
	s.defaultFile = path
	return s.runFile(ctx, f)
}

// editFile runs the task level on the open file, then reloads it so changes
// saved there show up here.
func (s *Session) editFile(ctx context.Context, f *frame) error {
	ok, err := s.p.confirm("confirmation")
	if err != nil || !ok {
		return err
	}

	child := &frame{level: LevelTask, path: f.path, source: f.source, working: f.source.Copy()}
	if err := s.nested(ctx, child); err != nil {
		return err
	}

	if source, ok := s.load(f.path); ok {
		f.source = source
	}
	f.working = f.source.Copy()
	s.show(f.working)
	return nil
}

// saveWorking writes the working copy. At the file level the open file is
// banned as a target; at the task level the open file is offered first.
func (s *Session) saveWorking(f *frame) error {
	var path string
	if f.level == LevelFile {
		p, err := s.p.askPath(f.path)
		if err != nil {
			return err
		}
		path = p
	} else {
		s.p.say("writing_to", f.path)
		ok, err := s.p.confirm("path_confirmation")
		if err != nil {
			return err
		}
		if ok {
			return s.save(f.working, f.path)
		}
		if path, err = s.p.askPath(""); err != nil {
			return err
		}
	}

	ok, err := s.p.confirm("path_confirmation")
	if err != nil || !ok {
		return err
	}
	return s.save(f.working, path)
}

func (s *Session) remove(f *frame) error {
	id, err := s.p.askID(f.working)
	if err != nil {
		return err
	}
	if f.working.Remove(id) {
		s.recorder.Info(observability.TypeTaskRemoved, "task removed", map[string]any{"id": id})
	}
	return nil
}

// fieldPrompts names the prompt used to ask for each editable field.
var fieldPrompts = map[models.Field]string{
	models.FieldReceivedDate: "date_request",
	models.FieldReceivedTime: "time_request",
	models.FieldDueDate:      "date_request",
	models.FieldDueTime:      "time_request",
	models.FieldExecutor:     "executor_request",
	models.FieldDescription:  "task_request",
	models.FieldStatus:       "status_request",
}

// editField overwrites one field of a working task, asking again until the
// whole record validates.
func (s *Session) editField(f *frame) error {
	id, err := s.p.askID(f.working)
	if err != nil {
		return err
	}
	s.p.say("item_list")
	field, err := s.p.askField()
	if err != nil {
		return err
	}

	for {
		value, err := s.p.line(fieldPrompts[field])
		if err != nil {
			return err
		}
		if err := f.working.EditField(id, field, value); err != nil {
			s.reportRejection(err)
			continue
		}
		s.p.say("updated")
		s.recorder.Info(observability.TypeTaskEdited, "task edited", map[string]any{"id": id, "field": field.String()})
		return nil
	}
}

// editTask replaces a whole working task with a pipe-separated line.
func (s *Session) editTask(f *frame) error {
	id, err := s.p.askID(f.working)
	if err != nil {
		return err
	}
	return s.askRecord(func(values []string) error {
		if err := f.working.EditWhole(id, values); err != nil {
			return err
		}
		s.recorder.Info(observability.TypeTaskEdited, "task replaced", map[string]any{"id": id})
		return nil
	})
}

// add appends a new task under the smallest free id.
func (s *Session) add(f *frame) error {
	id := core.FreeID(f.working)
	return s.askRecord(func(values []string) error {
		fields := append([]string{strconv.Itoa(id)}, values...)
		if err := f.working.Add(fields, core.OriginUser); err != nil {
			return err
		}
		s.recorder.Info(observability.TypeTaskAdded, "task added", map[string]any{"id": id})
		return nil
	})
}

// askRecord reads pipe-separated records until apply accepts one.
func (s *Session) askRecord(apply func(values []string) error) error {
	s.p.say("items_example")
	for {
		line, err := s.p.line("items_request")
		if err != nil {
			return err
		}
		if err := apply(strings.Split(line, "|")); err != nil {
			s.reportRejection(err)
			continue
		}
		s.p.say("updated")
		return nil
	}
}

func (s *Session) sort(f *frame) error {
	primary, reversePrimary, err := s.p.askKey(1)
	if err != nil {
		return err
	}
	secondary, reverseSecondary, err := s.p.askKey(2)
	if err != nil {
		return err
	}
	f.working.Sort(core.SortKeys{
		Primary:          primary,
		Secondary:        secondary,
		ReversePrimary:   reversePrimary,
		ReverseSecondary: reverseSecondary,
	}, s.maxSteps)
	return nil
}

// function runs one of the canned reports against the source collection.
func (s *Session) function(f *frame) error {
	n, err := s.p.askFunction()
	if err != nil {
		return err
	}
	s.p.say("function_" + strconv.Itoa(n))

	var result *core.Collection
	switch n {
	case 1:
		ref, err := s.p.askDate()
		if err != nil {
			return err
		}
		days, err := s.p.askDays()
		if err != nil {
			return err
		}
		result, err = core.RecentTasks(f.source, days, ref, s.maxSteps)
		if err != nil {
			s.p.say("cutoff_failed", err)
			return nil
		}
	case 2:
		executor, err := s.p.askExecutor(f.source)
		if err != nil {
			return err
		}
		result = core.FailedByExecutor(f.source, executor, s.maxSteps)
	case 3:
		result = core.ActiveTasks(f.source, s.maxSteps)
	}

	f.working = result
	s.recordQuery(CmdFunction, n)
	return nil
}

// queryFields maps each query command to the field it filters on.
var queryFields = map[Command]models.Field{
	CmdID:       models.FieldID,
	CmdGetDate:  models.FieldReceivedDate,
	CmdGetTime:  models.FieldReceivedTime,
	CmdDoDate:   models.FieldDueDate,
	CmdDoTime:   models.FieldDueTime,
	CmdExecutor: models.FieldExecutor,
	CmdTask:     models.FieldDescription,
	CmdStatus:   models.FieldStatus,
}

// query replaces the working copy with the source tasks matching one
// field. Pending edits in the working copy are discarded.
func (s *Session) query(f *frame, cmd Command) error {
	field, ok := queryFields[cmd]
	if !ok {
		return errors.New("no handler for command " + string(cmd))
	}

	value, err := s.askQueryValue(f, field)
	if err != nil {
		return err
	}
	f.working = f.source.Filter(field, value, true)
	s.recordQuery(cmd, value)
	return nil
}

// askQueryValue asks for a value of field in its canonical form.
func (s *Session) askQueryValue(f *frame, field models.Field) (string, error) {
	switch field {
	case models.FieldID:
		id, err := s.p.askID(f.source)
		return strconv.Itoa(id), err
	case models.FieldReceivedDate, models.FieldDueDate:
		d, err := s.p.askDate()
		return string(d), err
	case models.FieldReceivedTime, models.FieldDueTime:
		t, err := s.p.askTime()
		return string(t), err
	case models.FieldExecutor:
		return s.p.askExecutor(f.source)
	case models.FieldStatus:
		code, err := s.p.askStatus()
		return string(code), err
	default:
		return s.p.askDescription()
	}
}

func (s *Session) recordQuery(cmd Command, arg any) {
	s.recorder.Info(observability.TypeQueryRun, "query run", map[string]any{"command": string(cmd), "arg": arg})
}
