// Package schedule manages recurring autocommit jobs in the user's crontab.
package schedule

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
)

// ParseError is returned when a crontab line owned by this tool cannot be
// parsed. A malformed owned line is fatal to listing so the registry stays
// auditable.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid crontab line %q: %s", e.Line, e.Reason)
}

// Entry is a single recurring-job declaration: a 5-field cron cadence, the
// command to invoke, and its positional arguments. By convention Args[0] is
// the "run" subcommand and Args[1] is the canonical repository path that
// serves as the entry's identity key.
type Entry struct {
	Cadence [5]string
	Command string
	Args    []string
}

// ParseEntry parses one crontab line into an Entry. Tokens are split purely
// on whitespace; there is no quoting support.
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return Entry{}, &ParseError{Line: line, Reason: "fewer than 6 fields"}
	}

	var e Entry
	copy(e.Cadence[:], fields[:5])
	e.Command = fields[5]
	e.Args = fields[6:]

	if e.Command == "" {
		return Entry{}, &ParseError{Line: line, Reason: "empty command"}
	}
	if len(e.Args) == 0 {
		return Entry{}, &ParseError{Line: line, Reason: "missing arguments"}
	}
	for _, field := range e.Cadence {
		if field == "" {
			return Entry{}, &ParseError{Line: line, Reason: "empty cadence field"}
		}
	}

	return e, nil
}

// String serializes the entry back to a crontab line. For well-formed input
// it is the exact inverse of ParseEntry, modulo whitespace normalization.
func (e Entry) String() string {
	return strings.Join(e.Cadence[:], " ") + " " + e.Command + " " + strings.Join(e.Args, " ")
}

// RepoPath returns the entry's identity key: the canonical repository path
// embedded in its arguments.
func (e Entry) RepoPath() string {
	if len(e.Args) < 2 {
		return ""
	}
	return e.Args[1]
}

// Validate checks the cadence against the standard 5-field cron grammar.
func (e Entry) Validate() error {
	if _, err := cron.ParseStandard(strings.Join(e.Cadence[:], " ")); err != nil {
		return fmt.Errorf("invalid cadence %q: %w", strings.Join(e.Cadence[:], " "), err)
	}
	return nil
}

// Canonicalize resolves path to an absolute path with symlinks evaluated, so
// the same repository always maps to the same identity key.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}
