package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/commitbot/autocommit/internal/core/config"
	"github.com/commitbot/autocommit/internal/core/git"
)

// ErrDuplicate is returned when registering a path that already has an entry.
var ErrDuplicate = errors.New("autocommit already exists for path")

// ErrNotFound is returned when removing a path that has no entry.
var ErrNotFound = errors.New("no autocommit found for path")

// Crontab is the external scheduler's table. The system implementation
// shells out to the crontab binary; tests substitute an in-memory fake.
type Crontab interface {
	// Load returns the current table contents. A missing table is an empty
	// string, not an error.
	Load(ctx context.Context) (string, error)
	// Install replaces the table with content.
	Install(ctx context.Context, content string) error
}

// Registry is a filtered view over the shared crontab: it manages the entries
// owned by this tool (identified by a marker substring) and preserves every
// other line verbatim on rewrite.
type Registry struct {
	crontab    Crontab
	marker     string
	credential string

	// executable resolves the path of this tool's binary for new entries.
	// Overridable for tests.
	executable func() (string, error)
}

// NewRegistry creates a registry over the given crontab. credential is the
// summarization API key exported into the table on every write; it may be
// empty, in which case writes fail with config.ErrMissingCredential.
func NewRegistry(crontab Crontab, marker, credential string) *Registry {
	return &Registry{
		crontab:    crontab,
		marker:     marker,
		credential: credential,
		executable: os.Executable,
	}
}

// List returns all entries owned by this tool, in table order. A malformed
// owned line fails the whole call.
func (r *Registry) List(ctx context.Context) ([]Entry, error) {
	owned, _, err := r.load(ctx)
	return owned, err
}

// Add registers a recurring run of repository path every frequency minutes.
// It fails with git.ErrNotAWorkTree when path is not a working tree root and
// with ErrDuplicate when the path is already registered. The crontab is not
// modified on failure.
func (r *Registry) Add(ctx context.Context, path string, frequency int) (Entry, error) {
	path, err := Canonicalize(path)
	if err != nil {
		return Entry{}, err
	}

	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil || !info.IsDir() {
		return Entry{}, fmt.Errorf("%s: %w", path, git.ErrNotAWorkTree)
	}

	owned, foreign, err := r.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range owned {
		if e.RepoPath() == path {
			return Entry{}, fmt.Errorf("%s: %w", path, ErrDuplicate)
		}
	}

	// Resolved at registration time: relocating the binary invalidates
	// existing entries.
	exe, err := r.executable()
	if err != nil {
		return Entry{}, fmt.Errorf("resolve executable: %w", err)
	}

	entry := Entry{
		Cadence: [5]string{fmt.Sprintf("*/%d", frequency), "*", "*", "*", "*"},
		Command: exe,
		Args: []string{
			"run",
			path,
			">>",
			filepath.Join(path, ".autocommit_log"),
			"2>&1",
		},
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}

	if err := r.write(ctx, append(owned, entry), foreign); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove deletes the entry registered for path. It fails with ErrNotFound
// when no entry matches; the crontab is not modified in that case.
func (r *Registry) Remove(ctx context.Context, path string) error {
	path, err := Canonicalize(path)
	if err != nil {
		return err
	}

	owned, foreign, err := r.load(ctx)
	if err != nil {
		return err
	}

	retained := owned[:0:0]
	for _, e := range owned {
		if e.RepoPath() != path {
			retained = append(retained, e)
		}
	}
	if len(retained) == len(owned) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	return r.write(ctx, retained, foreign)
}

// load splits the crontab into owned entries and foreign lines. Foreign
// lines are kept verbatim so a rewrite never disturbs entries this tool does
// not manage. The credential export line is treated as managed and dropped;
// write re-emits it.
func (r *Registry) load(ctx context.Context) (owned []Entry, foreign []string, err error) {
	table, err := r.crontab.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, line := range strings.Split(table, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, config.CredentialVar+"="):
		case strings.Contains(line, r.marker):
			entry, err := ParseEntry(line)
			if err != nil {
				return nil, nil, err
			}
			owned = append(owned, entry)
		default:
			foreign = append(foreign, line)
		}
	}

	return owned, foreign, nil
}

// write reassembles the full table (credential export, foreign lines, owned
// entries) and installs it.
func (r *Registry) write(ctx context.Context, owned []Entry, foreign []string) error {
	if r.credential == "" {
		return config.ErrMissingCredential
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s\n\n", config.CredentialVar, r.credential)
	for _, line := range foreign {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, e := range owned {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	if err := r.crontab.Install(ctx, b.String()); err != nil {
		return fmt.Errorf("install crontab: %w", err)
	}
	return nil
}
