package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags *Flags
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags) *ListCmd {
	return &ListCmd{flags: flags}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Usage:     "List registered autocommits",
		UsageText: "autocommit list",
		Description: `Displays a table of all repositories with a registered autocommit, their
cron cadence, and the log file the scheduled runs append to.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.flags.Registry.List(ctx)
	if err != nil {
		return fmt.Errorf("list autocommits: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "No autocommits found\n")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tCADENCE\tLOG")
	for _, e := range entries {
		logPath := ""
		// Args are "run <path> >> <log> 2>&1"; the log path sits after the
		// redirection operator.
		for i, arg := range e.Args {
			if arg == ">>" && i+1 < len(e.Args) {
				logPath = e.Args[i+1]
				break
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.RepoPath(), strings.Join(e.Cadence[:], " "), logPath)
	}

	return w.Flush()
}
