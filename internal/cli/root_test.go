package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	return executeWithInput(nil, args...)
}

// executeWithInput runs a command with stdin set to in.
func executeWithInput(in io.Reader, args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	isolate(t)
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	dbFlag := root.PersistentFlags().Lookup("db")
	if dbFlag == nil {
		t.Fatal("expected --db flag to exist")
	}
}

func TestSubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{
		"client", "log", "visits", "followups", "done", "import",
		"ics", "export", "seed", "remind", "serve", "config", "version",
	} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestInvalidFormat(t *testing.T) {
	isolate(t)
	_, err := executeCommand("version", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Fatalf("err = %v, want invalid --format", err)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := executeCommand("version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != Version {
		t.Errorf("output = %q, want %q", out, Version)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in, "client")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestArgValidation(t *testing.T) {
	isolate(t)

	tests := [][]string{
		{"client", "add"},
		{"client", "show"},
		{"client", "edit", "1", "2"},
		{"log"},
		{"visits"},
		{"done"},
		{"ics"},
		{"export"},
		{"import", "clients"},
		{"followups", "extra"},
	}
	for _, args := range tests {
		if _, err := executeCommand(args...); err == nil {
			t.Errorf("%v: expected argument error", args)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 10, "this is..."},
		{"café crème brûlée", 8, "café ..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestDash(t *testing.T) {
	if dash("") != "-" {
		t.Error("empty should become -")
	}
	if dash("x") != "x" {
		t.Error("non-empty should be unchanged")
	}
}
