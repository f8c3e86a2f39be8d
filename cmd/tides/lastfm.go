package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tides/internal/config"
	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/lastfm"
)

func newLastfmAuthCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "lastfm-auth",
		Short: "Link a Last.fm account and print its session key",
		Long: "Opens the Last.fm authorization page and waits for the redirect. " +
			"Put the printed session key in the [lastfm] section of the config " +
			"file or in TIDES_LASTFM_SESSION_KEY.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cfg.HasLastfmConfig() {
				return errors.New("set lastfm api_key and api_secret first")
			}

			client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
			token, err := client.GetToken()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
			}

			srv, err := lastfm.StartAuthServer(addr)
			if err != nil {
				return err
			}
			defer srv.Shutdown()

			url := client.GetAuthURL(token, srv.CallbackURL())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Authorize tides in your browser:")
			fmt.Fprintln(out, " ", url)
			if err := lastfm.OpenBrowser(url); err != nil {
				fmt.Fprintln(out, "Could not open a browser, open the URL manually.")
			}

			cb, err := srv.WaitToken(cmd.Context(), lastfm.AuthTimeout)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
			}
			if cb != "" {
				token = cb
			}

			user, key, err := client.GetSession(token)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
			}
			fmt.Fprintf(out, "Linked Last.fm account %s.\n\n[lastfm]\nsession_key = %q\n", user, key)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "listen", lastfm.AuthCallbackAddr, "callback server address")
	return cmd
}
