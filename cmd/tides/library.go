package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

const cliTimeout = 30 * time.Second

func newSearchCmd() *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog for songs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			query := strings.Join(args, " ")
			ctx, cancel := context.WithTimeout(cmd.Context(), cliTimeout)
			defer cancel()
			res, err := e.catalog.SearchSongs(ctx, query, page, limit)
			if err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpSearchSongs, query, err))
			}
			printTracks(cmd.OutOrStdout(), res.Tracks)
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %s results\n", len(res.Tracks), humanize.Comma(int64(res.Total)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page, starting at 1")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "results per page (default from config)")
	return cmd
}

func newFavouritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"favorites", "fav"},
		Short:   "List favourite tracks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			printTracks(cmd.OutOrStdout(), e.store.Favourites())
			return nil
		},
	}
}

func newPlaylistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			printPlaylists(cmd.OutOrStdout(), e.store.Playlists())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name or id>",
		Short: "List the tracks of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			p, ok := findPlaylist(e.store.Playlists(), args[0])
			if !ok {
				return fmt.Errorf("playlist %q not found", args[0])
			}
			printTracks(cmd.OutOrStdout(), p.Tracks)
			return nil
		},
	})
	return cmd
}

// findPlaylist matches by id first, then by case-insensitive name.
func findPlaylist(playlists []track.Playlist, key string) (track.Playlist, bool) {
	for _, p := range playlists {
		if p.ID == key {
			return p, true
		}
	}
	for _, p := range playlists {
		if strings.EqualFold(p.Name, key) {
			return p, true
		}
	}
	return track.Playlist{}, false
}

func newTable() *table.Table {
	st := styles.T()
	header := lipgloss.NewStyle().Bold(true).Foreground(st.Primary)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(st.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func printTracks(w io.Writer, tracks []track.Track) {
	if len(tracks) == 0 {
		fmt.Fprintln(w, "No tracks.")
		return
	}
	t := newTable().Headers("#", "Title", "Artists", "Album", "Length")
	for i, tr := range tracks {
		t.Row(strconv.Itoa(i+1),
			render.TruncateEllipsis(render.Sanitize(tr.Name), 40),
			render.TruncateEllipsis(render.Sanitize(tr.PrimaryArtists), 30),
			render.TruncateEllipsis(render.Sanitize(tr.Album.Name), 30),
			render.Seconds(tr.DurationSecs))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d tracks, %s\n", len(tracks), render.Total(track.TotalDuration(tracks)))
}

func printPlaylists(w io.Writer, playlists []track.Playlist) {
	if len(playlists) == 0 {
		fmt.Fprintln(w, "No playlists.")
		return
	}
	t := newTable().Headers("Name", "Tracks", "Length", "Created", "ID")
	for _, p := range playlists {
		t.Row(render.Sanitize(p.Name),
			strconv.Itoa(len(p.Tracks)),
			render.Total(track.TotalDuration(p.Tracks)),
			humanize.Time(p.CreatedAt),
			p.ID)
	}
	fmt.Fprintln(w, t.Render())
}
