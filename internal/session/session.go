package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/internal/observability"
	"github.com/valter-silva-au/tasktrack/internal/storage"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// Options configures a Session.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Store    storage.TaskStore
	Catalog  *Catalog
	Recorder *observability.Recorder

	// DefaultFile is offered first by the path command.
	DefaultFile string
	// QuitWord abandons the pending prompt when typed as an answer.
	QuitWord string
	// MaxSteps is the number of Hibbard gaps the sort starts from.
	MaxSteps int
	// Now supplies today's date. Defaults to time.Now.
	Now func() time.Time
}

// Session is one interactive run of the command prompt.
type Session struct {
	p           *prompter
	store       storage.TaskStore
	recorder    *observability.Recorder
	defaultFile string
	maxSteps    int
	now         func() time.Time
}

// frame is the state of one level. Nested levels get their own frame, so
// returning from a level discards its working copy.
type frame struct {
	level Level
	// path is the file open at this level; empty at the top level.
	path string
	// source is the last loaded snapshot; queries read from it.
	source *core.Collection
	// working is what the user sees and edits; save writes it.
	working *core.Collection
}

// New creates a Session from opts, filling unset options with defaults.
func New(opts Options) *Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Catalog == nil {
		opts.Catalog, _ = LoadCatalog(nil)
	}
	if opts.QuitWord == "" {
		opts.QuitWord = "quit"
	}
	if opts.DefaultFile == "" {
		opts.DefaultFile = "db.txt"
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = core.DefaultMaxGapSteps
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Session{
		p: &prompter{
			in:       bufio.NewScanner(opts.In),
			out:      opts.Out,
			catalog:  opts.Catalog,
			quitWord: opts.QuitWord,
		},
		store:       opts.Store,
		recorder:    opts.Recorder,
		defaultFile: opts.DefaultFile,
		maxSteps:    opts.MaxSteps,
		now:         opts.Now,
	}
}

// Run drives the prompt until the user quits the top level or input ends.
// When startPath is set the file is opened first, as if chosen with the path
// command. Only input failures and context cancellation are returned.
func (s *Session) Run(ctx context.Context, startPath string) error {
	s.recorder.Info(observability.TypeSessionStarted, "session started", map[string]any{"start_path": startPath})
	defer s.recorder.Info(observability.TypeSessionEnded, "session ended", nil)

	top := &frame{level: LevelTop}
	s.banner()

	if startPath != "" {
		if err := core.ValidatePath(startPath); err != nil {
			s.p.say("bad_path", startPath)
		} else if err := s.enterFile(ctx, startPath); err != nil {
			return endOfInput(err)
		}
	}

	return endOfInput(s.loop(ctx, top))
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// loop reads and dispatches commands at f's level until the level is left.
func (s *Session) loop(ctx context.Context, f *frame) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		token, err := s.p.raw("prompt")
		if err != nil {
			return err
		}
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		cmd, err := ParseCommand(token)
		if err != nil {
			s.p.say("unknown_command", token)
			s.recorder.Warn(observability.TypeCommandRejected, err.Error(), map[string]any{"token": token, "level": int(f.level)})
			continue
		}
		if err := Authorize(f.level, cmd); err != nil {
			s.p.say("wrong_level", cmd)
			s.recorder.Warn(observability.TypeCommandRejected, err.Error(), map[string]any{"command": string(cmd), "level": int(f.level)})
			continue
		}

		leave, err := s.dispatch(ctx, f, cmd)
		switch {
		case err == nil, errors.Is(err, ErrAbandoned):
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			fmt.Fprintln(s.p.out, err)
		}
		if leave {
			return nil
		}
		if showsWorking[cmd] {
			s.show(f.working)
		}
	}
}

// showsWorking lists the commands after which the working copy is printed.
var showsWorking = map[Command]bool{
	CmdRemove: true, CmdEdit: true, CmdAdd: true, CmdShow: true,
	CmdFunction: true, CmdSort: true,
	CmdID: true, CmdGetDate: true, CmdGetTime: true, CmdDoDate: true,
	CmdDoTime: true, CmdExecutor: true, CmdTask: true, CmdStatus: true,
}

// open loads path into a fresh level-2 frame. It reports failures itself and
// returns nil when the file could not be read.
func (s *Session) open(path string) *frame {
	source, ok := s.load(path)
	if !ok {
		return nil
	}
	return &frame{level: LevelFile, path: path, source: source, working: source.Copy()}
}

// load reads path, reporting skipped lines and I/O failures to the user.
func (s *Session) load(path string) (*core.Collection, bool) {
	s.p.say("reading", path)
	c, issues, err := s.store.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.p.say("file_not_found", path)
		} else {
			s.p.say("io_failed", path, err)
		}
		s.recorder.Error(observability.TypeFileLoaded, err.Error(), map[string]any{"path": path})
		return nil, false
	}

	for _, issue := range issues {
		s.p.say("skipped", issue.Line, issue.Reason)
		s.recorder.Warn(observability.TypeLineSkipped, issue.String(), map[string]any{"path": path, "line": issue.Line})
	}
	s.recorder.Info(observability.TypeFileLoaded, "file loaded", map[string]any{
		"path": path, "tasks": c.Len(), "skipped": len(issues),
	})
	return c, true
}

// enterFile opens path and runs the file level on it until the user leaves.
func (s *Session) enterFile(ctx context.Context, path string) error {
	f := s.open(path)
	if f == nil {
		return nil
	}
	return s.runFile(ctx, f)
}

// runFile runs the file level on an opened frame and shows the banner again
// once the user leaves it.
func (s *Session) runFile(ctx context.Context, f *frame) error {
	if err := s.nested(ctx, f); err != nil {
		return err
	}
	s.banner()
	return nil
}

// nested runs a deeper level and records the transitions.
func (s *Session) nested(ctx context.Context, f *frame) error {
	s.recorder.Info(observability.TypeLevelChanged, "entered level", map[string]any{"level": int(f.level), "path": f.path})
	s.show(f.working)
	err := s.loop(ctx, f)
	s.recorder.Info(observability.TypeLevelChanged, "left level", map[string]any{"level": int(f.level), "path": f.path})
	return err
}

func (s *Session) save(c *core.Collection, path string) error {
	if err := s.store.Store(c, path); err != nil {
		s.recorder.Error(observability.TypeFileSaved, err.Error(), map[string]any{"path": path})
		return fmt.Errorf("saving %s: %w", path, err)
	}
	s.p.say("saved", c.Len(), path)
	s.recorder.Info(observability.TypeFileSaved, "file saved", map[string]any{"path": path, "tasks": c.Len()})
	return nil
}

func (s *Session) show(c *core.Collection) {
	fmt.Fprintln(s.p.out, RenderTable(c, s.p.catalog.Text("empty_list")))
}

func (s *Session) banner() {
	fmt.Fprint(s.p.out, s.p.catalog.Text("banner"))
}

func (s *Session) today() models.Date {
	return models.Date(s.now().Format("2006.01.02"))
}

// reportRejection explains why a candidate record was not accepted.
func (s *Session) reportRejection(err error) {
	var recErr *core.RecordError
	switch {
	case errors.As(err, &recErr):
		for _, p := range recErr.Problems {
			s.p.say("rejected", recErr.TaskID, p.Reason)
		}
	case errors.Is(err, core.ErrFieldCount):
		s.p.say("bad_count")
	case errors.Is(err, core.ErrDuplicateID):
		s.p.say("duplicate_id")
	default:
		fmt.Fprintln(s.p.out, err)
	}
	s.recorder.Warn(observability.TypeTaskRejected, err.Error(), nil)
}
