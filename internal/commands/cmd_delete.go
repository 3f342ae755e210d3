package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type DeleteCmd struct {
	flags *Flags
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(flags *Flags) *DeleteCmd {
	return &DeleteCmd{flags: flags}
}

// Register adds the delete command to the application
func (cmd *DeleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "delete",
		Usage:     "Remove a registered autocommit",
		UsageText: "autocommit delete <path>",
		Description: `Removes the crontab entry registered for the repository at <path>.
Fails when no entry is registered for it; other crontab entries are left
untouched.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one path argument, got %d", c.Args().Len())
	}

	path := c.Args().First()
	if err := cmd.flags.Registry.Remove(ctx, path); err != nil {
		return fmt.Errorf("delete autocommit: %w", err)
	}

	log.Info().Str("repo", path).Msg("autocommit deleted")
	return nil
}
