package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type CreateCmd struct {
	flags *Flags

	// flags
	path      string
	frequency int
}

// NewCreateCmd creates a new create command
func NewCreateCmd(flags *Flags) *CreateCmd {
	return &CreateCmd{flags: flags}
}

// Register adds the create command to the application
func (cmd *CreateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "create",
		Usage:     "Register a recurring autocommit for a repository",
		UsageText: "autocommit create --path <path> --frequency <minutes>",
		Description: `Installs a crontab entry that runs autocommit against <path> every
<minutes> minutes, with output appended to <path>/.autocommit_log.

The path must be the root of a git working tree and must not already be
registered. OPENAI_API_KEY must be set; it is exported into the crontab so
scheduled runs can reach the summarization service.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "path to the git repository",
				Required:    true,
				Destination: &cmd.path,
			},
			&cli.IntFlag{
				Name:        "frequency",
				Aliases:     []string{"f"},
				Usage:       "minutes between autocommits",
				Required:    true,
				Destination: &cmd.frequency,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CreateCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.frequency <= 0 {
		return fmt.Errorf("frequency must be positive, got %d", cmd.frequency)
	}

	entry, err := cmd.flags.Registry.Add(ctx, cmd.path, cmd.frequency)
	if err != nil {
		return fmt.Errorf("create autocommit: %w", err)
	}

	log.Info().
		Str("repo", entry.RepoPath()).
		Int("frequency", cmd.frequency).
		Msg("autocommit created")

	return nil
}
