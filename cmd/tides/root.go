package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/app"
	"github.com/llehouerou/tides/internal/bridge"
	"github.com/llehouerou/tides/internal/download"
	"github.com/llehouerou/tides/internal/lastfm"
	"github.com/llehouerou/tides/internal/logger"
	"github.com/llehouerou/tides/internal/mpris"
	"github.com/llehouerou/tides/internal/notify"
	"github.com/llehouerou/tides/internal/player"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tides",
		Short: "Terminal music player for an online song catalog",
		Long: "tides searches an online song catalog and plays tracks from a " +
			"persistent queue, with favourites, playlists and offline downloads.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.AddCommand(
		newSearchCmd(),
		newFavouritesCmd(),
		newPlaylistsCmd(),
		newLastfmAuthCmd(),
	)
	return root
}

func runTUI(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	// Audio backends write to stderr, which would corrupt the screen.
	if restore, err := logger.CaptureStderr(e.log); err != nil {
		e.log.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer restore()
	}

	engine := player.New(player.Options{
		TempDir: os.TempDir(),
		Logger:  e.log,
	})
	br := bridge.New(engine, e.store, e.lib, bridge.Options{
		Interval: e.cfg.StatusInterval(),
		Logger:   e.log,
	})
	done := make(chan error, 1)
	go func() { done <- br.Run(ctx) }()

	dl := download.New(e.lib, e.store, download.Options{
		Dir:    e.cfg.Download.Dir,
		Logger: e.log,
	})

	if e.cfg.HasLastfmConfig() && e.cfg.Lastfm.SessionKey != "" {
		client := lastfm.New(e.cfg.Lastfm.APIKey, e.cfg.Lastfm.APISecret)
		client.SetSessionKey(e.cfg.Lastfm.SessionKey)
		go lastfm.NewScrobbler(client, e.log).Run(ctx, e.store.Subscribe())
	}

	if e.cfg.MPRISEnabled() {
		adapter, err := mpris.New(e.store)
		if err != nil {
			e.log.Warn("mpris unavailable", zap.Error(err))
		} else {
			defer func() {
				if err := adapter.Close(); err != nil {
					e.log.Debug("close mpris", zap.Error(err))
				}
			}()
		}
	}

	if e.cfg.Notify.Enabled {
		n, err := notify.New()
		if err != nil {
			e.log.Warn("notifications unavailable", zap.Error(err))
		} else {
			go notify.NewNowPlaying(n, e.log).Run(ctx, e.store.Subscribe())
		}
	}

	model := app.New(app.Deps{
		Store:      e.store,
		Catalog:    e.catalog,
		Downloader: dl,
		History:    e.lib,
		Errors:     br.Errors(),
		Logger:     e.log,
	})
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := prog.Run()

	cancel()
	if err := <-done; err != nil {
		e.log.Warn("close audio engine", zap.Error(err))
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}
