// Package session implements the nested command prompt: a three-level
// authorization state machine that dispatches user commands to the task
// collection and keeps the loaded source snapshot apart from the working
// copy being edited.
package session

import (
	"fmt"
	"slices"
)

// Level is one of the three nested command-authorization contexts.
type Level int

const (
	// LevelTop is active while no file is open.
	LevelTop Level = iota + 1
	// LevelFile browses and edits a whole loaded file.
	LevelFile
	// LevelTask edits single task records of the open file.
	LevelTask
)

func (l Level) String() string {
	switch l {
	case LevelTop:
		return "top"
	case LevelFile:
		return "file"
	case LevelTask:
		return "task"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Command is a recognized command token.
type Command string

const (
	CmdQuit     Command = "quit"
	CmdID       Command = "id"
	CmdHelp     Command = "help"
	CmdDate     Command = "date"
	CmdFile     Command = "file"
	CmdExecutor Command = "executor"
	CmdTask     Command = "task"
	CmdGetDate  Command = "get_date"
	CmdPath     Command = "path"
	CmdGetTime  Command = "get_time"
	CmdDoDate   Command = "do_date"
	CmdDoTime   Command = "do_time"
	CmdStatus   Command = "status"
	CmdFunction Command = "function"
	CmdSort     Command = "sort"
	CmdShow     Command = "show"
	CmdSave     Command = "save"
	CmdRemove   Command = "remove"
	CmdAdd      Command = "add"
	CmdEdit     Command = "edit"
)

var knownCommands = map[Command]bool{
	CmdQuit: true, CmdID: true, CmdHelp: true, CmdDate: true, CmdFile: true,
	CmdExecutor: true, CmdTask: true, CmdGetDate: true, CmdPath: true, CmdGetTime: true,
	CmdDoDate: true, CmdDoTime: true, CmdStatus: true, CmdFunction: true, CmdSort: true,
	CmdShow: true, CmdSave: true, CmdRemove: true, CmdAdd: true, CmdEdit: true,
}

// commandTable maps each level to the commands legal at that level.
var commandTable = map[Level]map[Command]bool{
	LevelTop: set(CmdQuit, CmdDate, CmdPath, CmdHelp),
	LevelFile: set(
		CmdQuit, CmdFile, CmdSave, CmdHelp,
		CmdID, CmdGetDate, CmdGetTime, CmdDoDate, CmdDoTime,
		CmdExecutor, CmdTask, CmdStatus,
		CmdRemove, CmdEdit, CmdFunction, CmdSort, CmdShow,
	),
	LevelTask: set(CmdQuit, CmdSave, CmdHelp, CmdShow, CmdEdit, CmdAdd, CmdRemove),
}

func set(cmds ...Command) map[Command]bool {
	m := make(map[Command]bool, len(cmds))
	for _, c := range cmds {
		m[c] = true
	}
	return m
}

// SyntaxError reports a token that is not a known command.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("unknown command: %q", e.Token) }

// LevelError reports a known command used at a level that does not allow it.
type LevelError struct {
	Command Command
	Level   Level
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("command %q is not allowed at %s level", e.Command, e.Level)
}

// ParseCommand maps a token to a Command.
func ParseCommand(token string) (Command, error) {
	cmd := Command(token)
	if !knownCommands[cmd] {
		return "", &SyntaxError{Token: token}
	}
	return cmd, nil
}

// Authorize reports whether cmd may run at level.
func Authorize(level Level, cmd Command) error {
	if !commandTable[level][cmd] {
		return &LevelError{Command: cmd, Level: level}
	}
	return nil
}

// Allowed returns the commands legal at level in lexical order.
func Allowed(level Level) []Command {
	out := make([]Command, 0, len(commandTable[level]))
	for cmd := range commandTable[level] {
		out = append(out, cmd)
	}
	slices.Sort(out)
	return out
}
