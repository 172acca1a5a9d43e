package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/idilsaglam/lostfound/internal/api"
	"github.com/idilsaglam/lostfound/internal/cli"
	"github.com/idilsaglam/lostfound/internal/config"
	"github.com/idilsaglam/lostfound/internal/logging"
	"github.com/idilsaglam/lostfound/internal/session"
	"github.com/idilsaglam/lostfound/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	apiURL := flag.String("api", "", "API base URL (overrides LOSTFOUND_API_BASE_URL)")
	theme := flag.String("theme", "", "output theme: classic|neon|mono")
	color := flag.Bool("color", false, "force colored output")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}
	ui.SetColorForcing(*color, *noColor || os.Getenv("NO_COLOR") != "")

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	if *apiURL != "" {
		if err := cfg.SetBaseURL(*apiURL); err != nil {
			ui.Fail(err.Error())
			os.Exit(2)
		}
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	ui.SetTheme(cfg.UI.Theme)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}

	store, err := session.Open(cfg.SessionPath(), logger)
	if err != nil {
		ui.Fail(err.Error())
		ui.Hint(fmt.Sprintf("Remove %s to start without a session.", cfg.SessionPath()))
		_ = logger.Sync()
		os.Exit(1)
	}

	client := api.New(cfg.API.BaseURL, api.WithLogger(logger), api.WithToken(store.Token))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger.Debug("start", zap.String("cmd", args[0]), zap.String("api", client.BaseURL()))
	code := cli.Run(ctx, args, cli.Options{
		Client:  client,
		Session: store,
		Log:     logger,
	})
	stop()
	_ = logger.Sync()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
