// Package launcher runs the external claude CLI with a projected
// environment. It is a thin subprocess wrapper: stdio is inherited and the
// child's exit code is passed through.
package launcher

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/logging"
)

// DefaultCommand is the external chat CLI wrapped by cci.
const DefaultCommand = "claude"

// ErrCommandNotFound reports that the external CLI is not installed or not
// on PATH.
var ErrCommandNotFound = errors.New("command not found")

// Launcher starts the external CLI. Zero value fields fall back to the
// default command and the process stdio.
type Launcher struct {
	Command string
	Environ []string // base environment; nil means os.Environ()
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	log zerolog.Logger
}

// New returns a launcher for the claude CLI wired to the process stdio.
func New() *Launcher {
	return &Launcher{
		Command: DefaultCommand,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		log:     logging.New("launcher"),
	}
}

// LoadDotenv loads a working-directory .env file into the process
// environment, best effort, so envvar-typed API keys can come from project
// dotfiles. A missing file is not an error.
func (l *Launcher) LoadDotenv() {
	if err := godotenv.Load(); err != nil {
		l.log.Debug().Err(err).Msg("no .env loaded")
	}
}

// Run launches the command with args and the base environment adjusted by
// overrides, waits for it, and returns its exit code. An empty override
// value removes the variable from the child environment; a non-empty value
// sets it.
func (l *Launcher) Run(args []string, overrides map[string]string) (int, error) {
	command := l.Command
	if command == "" {
		command = DefaultCommand
	}
	base := l.Environ
	if base == nil {
		base = os.Environ()
	}

	cmd := exec.Command(command, args...)
	cmd.Env = MergeEnviron(base, overrides)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return 1, ErrCommandNotFound
	}
	return 1, err
}

// MergeEnviron applies overrides to a KEY=VALUE environment list. Keys with
// empty override values are removed, keys with non-empty values replace or
// extend the base list; everything else passes through untouched. Added
// keys are appended in sorted order so the result is deterministic.
func MergeEnviron(base []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		name, _, ok := strings.Cut(entry, "=")
		if !ok {
			merged = append(merged, entry)
			continue
		}
		if _, overridden := overrides[name]; overridden {
			continue
		}
		merged = append(merged, entry)
	}

	names := make([]string, 0, len(overrides))
	for name, value := range overrides {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		merged = append(merged, name+"="+overrides[name])
	}
	return merged
}
