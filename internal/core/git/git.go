// Package git provides an abstraction for git operations.
package git

import (
	"context"
	"errors"
)

// ErrNotAWorkTree is returned when a path is not the root of a git working tree.
var ErrNotAWorkTree = errors.New("not a git working tree")

// Git defines git operations needed by autocommit.
type Git interface {
	// IsWorkTree reports whether dir is the root of a git working tree.
	IsWorkTree(ctx context.Context, dir string) (bool, error)
	// Status returns the porcelain status entries for dir, including
	// untracked files.
	Status(ctx context.Context, dir string) ([]StatusEntry, error)
	// DiffHead returns the unified diff of the working tree against HEAD.
	DiffHead(ctx context.Context, dir string) (string, error)
	// DiffUntracked returns the unified diff of a single untracked file
	// against the empty blob.
	DiffUntracked(ctx context.Context, dir, file string) (string, error)
	// StageAll stages every tracked and untracked change in dir.
	StageAll(ctx context.Context, dir string) error
	// Commit creates a commit on the current branch with the given message.
	Commit(ctx context.Context, dir, message string, author Identity) error
	// Branch returns the current branch name.
	Branch(ctx context.Context, dir string) (string, error)
	// Push pushes branch to the named remote. When sshKey is non-empty it is
	// used as the SSH identity file.
	Push(ctx context.Context, dir, remote, branch, sshKey string) error
}

// Identity is a commit author/committer identity. Zero value means "use the
// repository's configured identity".
type Identity struct {
	Name  string
	Email string
}

// IsZero reports whether no identity override is set.
func (i Identity) IsZero() bool {
	return i.Name == "" && i.Email == ""
}

// StatusEntry is one line of porcelain status output.
type StatusEntry struct {
	// Code is the two-character XY status code.
	Code string
	// Path is the file path relative to the repository root.
	Path string
}

// Untracked reports whether the entry is an untracked file.
func (s StatusEntry) Untracked() bool {
	return s.Code == "??"
}
