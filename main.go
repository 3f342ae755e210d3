package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/commitbot/autocommit/internal/autocommit"
	"github.com/commitbot/autocommit/internal/commands"
	"github.com/commitbot/autocommit/internal/core/config"
	"github.com/commitbot/autocommit/internal/core/git"
	"github.com/commitbot/autocommit/internal/core/schedule"
	"github.com/commitbot/autocommit/internal/core/summarize"
	"github.com/commitbot/autocommit/pkg/executil"
	"github.com/commitbot/autocommit/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "autocommit",
		Usage:     "Periodically commit and push repository changes",
		UsageText: "autocommit [global options] command [command options]",
		Description: `Autocommit inspects a git working tree and, when uncommitted changes exist,
writes a commit message for them (via an OpenAI-compatible service, or a
timestamp when OPENAI_API_KEY is unset), then commits and pushes.

Run 'autocommit create' to schedule a repository via cron, 'autocommit run'
to execute one pass by hand.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("AUTOCOMMIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stdout)",
				Sources:     cli.EnvVars("AUTOCOMMIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("AUTOCOMMIT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("AUTOCOMMIT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// The credential is read from the environment here, at the
			// outermost entry point, and threaded through explicitly.
			cfg.Credential = os.Getenv(config.CredentialVar)
			flags.Config = cfg

			var (
				exec      = &executil.RealExecutor{}
				gitExec   = git.NewExecutor(cfg.GitPath, exec)
				detector  = git.NewDetector(gitExec, cfg.Summarize.DiffLimit)
				svcLogger = log.With().Str("component", "autocommit").Logger()
			)

			var client summarize.Client
			if cfg.Credential != "" {
				client = summarize.NewOpenAIClient(cfg.Summarize.BaseURL, cfg.Summarize.Model, cfg.Credential)
			}
			synth := summarize.NewSynthesizer(client, cfg.Summarize.ChunkSize, cfg.Summarize.MaxChunks)

			flags.Service = autocommit.NewService(gitExec, detector, synth, cfg, svcLogger)

			crontab := schedule.NewSystemCrontab(exec, filepath.Join(cfg.DataDir, "cron"))
			flags.Registry = schedule.NewRegistry(crontab, cfg.Cron.Marker, cfg.Credential)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewRunCmd(flags).Register(app)
	app = commands.NewCreateCmd(flags).Register(app)
	app = commands.NewListCmd(flags).Register(app)
	app = commands.NewDeleteCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
