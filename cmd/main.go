package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/curatecli/curate/internal/services"
	"github.com/curatecli/curate/internal/shared"
)

func main() {
	shared.LoadEnv()
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	music := services.NewYouTubeService(config.Credentials.YouTube.ProxyURL, nil)
	if headersPath := config.Credentials.YouTube.HeadersPath; headersPath != "" {
		if err := music.Authenticate(context.Background(), map[string]string{"auth_file": headersPath}); err != nil {
			logger.Warn("proxy auth not configured", "err", err)
		}
	}
	apiService := services.NewAPIService(config.Credentials.YouTube.ProxyURL, nil)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Music:  music,
		API:    apiService,
		Logger: logger,
	})

	app := &cli.Command{
		Name:    "curate",
		Usage:   "Curate a new YouTube Music playlist from an existing one with Gemini",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNothingToDo) {
			logger.Warn("nothing to do", "reason", err)
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write an example config.toml to the working directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to write the configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// Setup writes the embedded example configuration file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.writePlain("Wrote example configuration to %s\n", path)
	r.writePlain("Edit it, then authenticate with `curate auth from-curl`.\n")
	return nil
}
