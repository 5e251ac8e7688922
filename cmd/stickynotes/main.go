package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-sticky-notes/internal/client"
	"github.com/MKhiriev/go-sticky-notes/internal/config"
	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/tui"
	"github.com/MKhiriev/go-sticky-notes/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFileLogger("stickynotes", cfg.Log.Path, cfg.Log.Level)
	log.Info().Str("build", buildInfo.String()).Msg("starting")

	ui := tui.New(tui.UIOptions{
		BuildInfo:    buildInfo,
		PreviewLines: cfg.UI.PreviewLines,
		PreviewWidth: cfg.UI.PreviewWidth,
	}, log)

	app, err := client.NewApp(cfg, ui, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "init error: %v\n", err)
		os.Exit(1)
	}

	if err = app.Run(context.Background()); err != nil {
		if errors.Is(err, client.ErrUserDeclined) {
			log.Info().Err(err).Msg("user declined to continue")
		} else {
			log.Err(err).Msg("client run error")
		}
		fmt.Fprintf(os.Stderr, "stickynotes: %v\n", err)
		os.Exit(1)
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	for _, line := range info.Lines() {
		fmt.Println(line)
	}
}
