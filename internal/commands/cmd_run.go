package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/commitbot/autocommit/internal/core/schedule"
)

type RunCmd struct {
	flags *Flags
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Commit and push pending changes in a repository",
		UsageText: "autocommit run <path>",
		Description: `Runs the pipeline once against the repository at <path>: detect uncommitted
changes, synthesize a commit message, stage everything, commit, and push.

A repository with nothing to commit exits successfully having done nothing.
Without OPENAI_API_KEY set, the commit message is a local timestamp.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one path argument, got %d", c.Args().Len())
	}

	path, err := schedule.Canonicalize(c.Args().First())
	if err != nil {
		return err
	}

	log.Info().Str("repo", path).Msg("running autocommit")
	return cmd.flags.Service.Run(ctx, path)
}
