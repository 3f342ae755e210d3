package git

import (
	"context"
	"fmt"
)

// ChangeSet is the result of inspecting a working tree for uncommitted work.
type ChangeSet struct {
	// HasChanges is true when any tracked modification or untracked file
	// differs from the last commit.
	HasChanges bool
	// Diff is the textual diff, truncated to the detector's limit. It may be
	// empty even when HasChanges is true (for example, mode-only changes).
	Diff string
}

// Detector finds uncommitted changes and produces a bounded diff for them.
type Detector struct {
	git   Git
	limit int
}

// NewDetector creates a detector whose diff output is truncated to limit bytes.
func NewDetector(git Git, limit int) *Detector {
	return &Detector{git: git, limit: limit}
}

// Detect inspects dir for uncommitted changes. It fails with ErrNotAWorkTree
// when dir is not a git working tree. A clean tree yields a zero ChangeSet.
//
// The diff covers tracked changes against HEAD plus the content of untracked
// files. Untracked files are diffed one at a time and only until the
// truncation limit is reached, so a tree full of large new files does not
// cost more work than the limit allows.
func (d *Detector) Detect(ctx context.Context, dir string) (ChangeSet, error) {
	ok, err := d.git.IsWorkTree(ctx, dir)
	if err != nil {
		return ChangeSet{}, err
	}
	if !ok {
		return ChangeSet{}, fmt.Errorf("%s: %w", dir, ErrNotAWorkTree)
	}

	entries, err := d.git.Status(ctx, dir)
	if err != nil {
		return ChangeSet{}, err
	}
	if len(entries) == 0 {
		return ChangeSet{}, nil
	}

	diff, err := d.git.DiffHead(ctx, dir)
	if err != nil {
		return ChangeSet{}, err
	}

	for _, entry := range entries {
		if len(diff) >= d.limit {
			break
		}
		if !entry.Untracked() {
			continue
		}
		fileDiff, err := d.git.DiffUntracked(ctx, dir, entry.Path)
		if err != nil {
			return ChangeSet{}, err
		}
		diff += fileDiff
	}

	if len(diff) > d.limit {
		diff = diff[:d.limit]
	}

	return ChangeSet{HasChanges: true, Diff: diff}, nil
}
