package session

import (
	"errors"
	"slices"
	"testing"
)

func TestParseCommand_KnownTokens(t *testing.T) {
	tokens := []string{
		"quit", "id", "help", "date", "file", "executor", "task", "get_date", "path", "get_time",
		"do_date", "do_time", "status", "function", "sort", "show", "save", "remove", "add", "edit",
	}
	for _, tok := range tokens {
		cmd, err := ParseCommand(tok)
		if err != nil {
			t.Errorf("ParseCommand(%q) returned error: %v", tok, err)
			continue
		}
		if string(cmd) != tok {
			t.Errorf("ParseCommand(%q) = %q", tok, cmd)
		}
	}
}

func TestParseCommand_Unknown(t *testing.T) {
	for _, tok := range []string{"", "QUIT", "list", "add "} {
		_, err := ParseCommand(tok)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("ParseCommand(%q) error = %v, want *SyntaxError", tok, err)
		}
		if synErr.Token != tok {
			t.Errorf("SyntaxError.Token = %q, want %q", synErr.Token, tok)
		}
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		level   Level
		cmd     Command
		allowed bool
	}{
		{LevelTop, CmdPath, true},
		{LevelTop, CmdDate, true},
		{LevelTop, CmdAdd, false},
		{LevelTop, CmdShow, false},
		{LevelFile, CmdFile, true},
		{LevelFile, CmdSort, true},
		{LevelFile, CmdAdd, false},
		{LevelFile, CmdPath, false},
		{LevelTask, CmdAdd, true},
		{LevelTask, CmdEdit, true},
		{LevelTask, CmdStatus, false},
		{LevelTask, CmdFile, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+string(tt.cmd), func(t *testing.T) {
			err := Authorize(tt.level, tt.cmd)
			if tt.allowed && err != nil {
				t.Fatalf("Authorize returned error: %v", err)
			}
			if !tt.allowed {
				var lvlErr *LevelError
				if !errors.As(err, &lvlErr) {
					t.Fatalf("Authorize error = %v, want *LevelError", err)
				}
				if lvlErr.Command != tt.cmd || lvlErr.Level != tt.level {
					t.Errorf("LevelError = %+v", lvlErr)
				}
			}
		})
	}
}

func TestAllowed(t *testing.T) {
	got := Allowed(LevelTop)
	want := []Command{CmdDate, CmdHelp, CmdPath, CmdQuit}
	if !slices.Equal(got, want) {
		t.Errorf("Allowed(LevelTop) = %v, want %v", got, want)
	}
	if n := len(Allowed(LevelFile)); n != 17 {
		t.Errorf("len(Allowed(LevelFile)) = %d, want 17", n)
	}
	if n := len(Allowed(LevelTask)); n != 7 {
		t.Errorf("len(Allowed(LevelTask)) = %d, want 7", n)
	}
}

func TestQuitAndHelpAllowedEverywhere(t *testing.T) {
	for _, lvl := range []Level{LevelTop, LevelFile, LevelTask} {
		for _, cmd := range []Command{CmdQuit, CmdHelp} {
			if err := Authorize(lvl, cmd); err != nil {
				t.Errorf("Authorize(%s, %s) = %v", lvl, cmd, err)
			}
		}
	}
}
