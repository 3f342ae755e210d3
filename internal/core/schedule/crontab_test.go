package schedule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExecutor fakes the crontab binary.
type stubExecutor struct {
	loadOutput string
	loadErr    error
	installed  []string
}

func (s *stubExecutor) Run(_ context.Context, cmd string, args ...string) ([]byte, error) {
	if len(args) == 1 && args[0] == "-l" {
		return []byte(s.loadOutput), s.loadErr
	}
	s.installed = append(s.installed, args[0])
	return nil, nil
}

func (s *stubExecutor) RunDir(ctx context.Context, _ string, cmd string, args ...string) ([]byte, error) {
	return s.Run(ctx, cmd, args...)
}

func (s *stubExecutor) RunDirEnv(ctx context.Context, _ string, _ []string, cmd string, args ...string) ([]byte, error) {
	return s.Run(ctx, cmd, args...)
}

func TestSystemCrontabLoad(t *testing.T) {
	exec := &stubExecutor{loadOutput: "0 3 * * * /usr/bin/backup\n"}
	c := NewSystemCrontab(exec, t.TempDir())

	table, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0 3 * * * /usr/bin/backup\n", table)
}

func TestSystemCrontabLoadNoCrontab(t *testing.T) {
	exec := &stubExecutor{
		loadOutput: "no crontab for user\n",
		loadErr:    errors.New("exit status 1"),
	}
	c := NewSystemCrontab(exec, t.TempDir())

	table, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestSystemCrontabLoadFailure(t *testing.T) {
	exec := &stubExecutor{
		loadOutput: "crontab: permission denied\n",
		loadErr:    errors.New("exit status 2"),
	}
	c := NewSystemCrontab(exec, t.TempDir())

	_, err := c.Load(context.Background())
	require.Error(t, err)
}

func TestSystemCrontabInstall(t *testing.T) {
	exec := &stubExecutor{}
	dataDir := filepath.Join(t.TempDir(), "cron")
	c := NewSystemCrontab(exec, dataDir)

	content := "OPENAI_API_KEY=sk-test\n\n*/5 * * * * /bin/autocommit run /repo\n"
	require.NoError(t, c.Install(context.Background(), content))

	staging := filepath.Join(dataDir, "crontab.txt")
	written, err := os.ReadFile(staging)
	require.NoError(t, err)
	assert.Equal(t, content, string(written))

	require.Len(t, exec.installed, 1)
	assert.Equal(t, staging, exec.installed[0])
}
