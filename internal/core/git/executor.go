package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/commitbot/autocommit/pkg/executil"
)

// Executor implements Git using the git command-line tool.
type Executor struct {
	gitPath string
	exec    executil.Executor
}

var _ Git = (*Executor)(nil)

// NewExecutor creates a new git executor with the specified git binary path.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, exec: exec}
}

func (e *Executor) IsWorkTree(ctx context.Context, dir string) (bool, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if strings.Contains(string(out), "not a git repository") {
			return false, nil
		}
		return false, fmt.Errorf("rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

func (e *Executor) Status(ctx context.Context, dir string) ([]StatusEntry, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return parseStatus(string(out)), nil
}

// parseStatus parses porcelain v1 status output.
// Example: " M internal/core/git/git.go" or "?? notes.txt"
func parseStatus(output string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		// Renames are reported as "R  old -> new"; the new path is the one
		// that exists in the working tree.
		if idx := strings.Index(path, " -> "); idx != -1 {
			path = path[idx+4:]
		}
		entries = append(entries, StatusEntry{Code: line[:2], Path: path})
	}
	return entries
}

func (e *Executor) DiffHead(ctx context.Context, dir string) (string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "diff", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(out), nil
}

func (e *Executor) DiffUntracked(ctx context.Context, dir, file string) (string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "diff", "--no-index", "--", "/dev/null", file)
	if err != nil {
		// diff --no-index exits 1 when the files differ, which is the
		// expected outcome for any non-empty untracked file.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return string(out), nil
		}
		return "", fmt.Errorf("git diff --no-index %s: %w", file, err)
	}
	return string(out), nil
}

func (e *Executor) StageAll(ctx context.Context, dir string) error {
	if _, err := e.exec.RunDir(ctx, dir, e.gitPath, "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

func (e *Executor) Commit(ctx context.Context, dir, message string, author Identity) error {
	args := []string{}
	if !author.IsZero() {
		args = append(args,
			"-c", "user.name="+author.Name,
			"-c", "user.email="+author.Email,
		)
	}
	args = append(args, "commit", "-m", message)
	if _, err := e.exec.RunDir(ctx, dir, e.gitPath, args...); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

func (e *Executor) Branch(ctx context.Context, dir string) (string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("git branch: %w", err)
	}

	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "", errors.New("detached HEAD: no branch to push")
	}
	return branch, nil
}

func (e *Executor) Push(ctx context.Context, dir, remote, branch, sshKey string) error {
	if sshKey != "" {
		env := []string{fmt.Sprintf("GIT_SSH_COMMAND=ssh -i %s -o IdentitiesOnly=yes", sshKey)}
		if _, err := e.exec.RunDirEnv(ctx, dir, env, e.gitPath, "push", remote, branch); err != nil {
			return fmt.Errorf("git push: %w", err)
		}
		return nil
	}
	if _, err := e.exec.RunDir(ctx, dir, e.gitPath, "push", remote, branch); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}
