// Package autocommit orchestrates the detect-summarize-commit-push pipeline.
package autocommit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/commitbot/autocommit/internal/core/config"
	"github.com/commitbot/autocommit/internal/core/git"
	"github.com/commitbot/autocommit/internal/core/summarize"
)

// Service runs the commit pipeline for a single repository.
type Service struct {
	git      git.Git
	detector *git.Detector
	synth    *summarize.Synthesizer
	cfg      *config.Config
	logger   zerolog.Logger
}

// NewService creates a pipeline service.
func NewService(g git.Git, detector *git.Detector, synth *summarize.Synthesizer, cfg *config.Config, logger zerolog.Logger) *Service {
	return &Service{
		git:      g,
		detector: detector,
		synth:    synth,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes one pass of the pipeline against the repository at path:
// detect changes, synthesize a message, stage, commit, push. A tree with
// nothing to commit is a successful no-op. Stages run in order and the first
// failure aborts the rest; a successful commit is not rolled back when the
// push fails, so the local commit persists.
func (s *Service) Run(ctx context.Context, path string) error {
	changes, err := s.detector.Detect(ctx, path)
	if err != nil {
		return err
	}
	if !changes.HasChanges {
		s.logger.Info().Str("repo", path).Msg("no changes detected")
		return nil
	}
	if changes.Diff == "" {
		// Changes with no textual diff (mode-only changes, for example)
		// leave nothing to summarize or commit.
		s.logger.Info().Str("repo", path).Msg("no changes to commit")
		return nil
	}

	message, err := s.synth.Synthesize(ctx, changes.Diff)
	if err != nil {
		return fmt.Errorf("synthesize commit message: %w", err)
	}
	s.logger.Info().Str("repo", path).Str("message", message).Msg("synthesized commit message")

	if err := s.git.StageAll(ctx, path); err != nil {
		return err
	}

	author := git.Identity{Name: s.cfg.Author.Name, Email: s.cfg.Author.Email}
	if err := s.git.Commit(ctx, path, message, author); err != nil {
		return err
	}

	branch, err := s.git.Branch(ctx, path)
	if err != nil {
		return err
	}
	if err := s.git.Push(ctx, path, s.cfg.Remote, branch, s.cfg.SSHKey); err != nil {
		// The commit above is already on the branch; only the push failed.
		return fmt.Errorf("push failed, local commit persists: %w", err)
	}

	s.logger.Info().Str("repo", path).Str("branch", branch).Msg("changes committed and pushed")
	return nil
}
