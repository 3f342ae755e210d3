package schedule

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/commitbot/autocommit/pkg/executil"
)

// SystemCrontab talks to the user's crontab through the crontab binary.
// Install writes the table to a staging file atomically before handing it to
// crontab, so a crash mid-write never leaves a half-written staging file to
// be installed by a later run.
type SystemCrontab struct {
	exec    executil.Executor
	staging string
}

var _ Crontab = (*SystemCrontab)(nil)

// NewSystemCrontab creates a crontab collaborator that stages table writes
// under dataDir.
func NewSystemCrontab(exec executil.Executor, dataDir string) *SystemCrontab {
	return &SystemCrontab{
		exec:    exec,
		staging: filepath.Join(dataDir, "crontab.txt"),
	}
}

func (c *SystemCrontab) Load(ctx context.Context) (string, error) {
	out, err := c.exec.Run(ctx, "crontab", "-l")
	if err != nil {
		// crontab -l exits non-zero when the user has no crontab yet; that
		// is an empty table, not a failure.
		if strings.Contains(string(out), "no crontab") {
			return "", nil
		}
		return "", fmt.Errorf("crontab -l: %w", err)
	}
	return string(out), nil
}

func (c *SystemCrontab) Install(ctx context.Context, content string) error {
	if err := os.MkdirAll(filepath.Dir(c.staging), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := atomic.WriteFile(c.staging, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write staging file: %w", err)
	}
	if out, err := c.exec.Run(ctx, "crontab", c.staging); err != nil {
		return fmt.Errorf("crontab %s: %s: %w", c.staging, strings.TrimSpace(string(out)), err)
	}
	return nil
}
