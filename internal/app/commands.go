// internal/app/commands.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/bridge"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

const (
	statusTimeout   = 4 * time.Second
	requestTimeout  = 30 * time.Second
	downloadTimeout = 10 * time.Minute
)

// WatchStoreEvents waits for the next store event and converts it to a
// message. The caller re-arms it after each message.
func WatchStoreEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.TrackChanged:
			return TrackChangedMsg(e)
		case e := <-sub.QueueChanged:
			return QueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ModeChangedMsg(e)
		case e := <-sub.TransportChanged:
			return TransportChangedMsg(e)
		case e := <-sub.LibraryChanged:
			return LibraryChangedMsg(e)
		case <-sub.Done:
			return StoreClosedMsg{}
		}
	}
}

// WatchErrors waits for the next bridge failure.
func WatchErrors(errs <-chan bridge.ErrorEvent) tea.Cmd {
	if errs == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-errs
		if !ok {
			return nil
		}
		return PlaybackErrorMsg(e)
	}
}

// SearchCmd fetches one page of songs.
func SearchCmd(c Catalog, seq int, query string, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := c.SearchSongs(ctx, query, page, c.PageSize())
		return SearchResultMsg{Seq: seq, Query: query, Page: page, Result: res, Err: err}
	}
}

// LoadSearchHistoryCmd reads the persisted search terms.
func LoadSearchHistoryCmd(h SearchHistory) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		terms, _ := h.LoadSearchHistory(ctx)
		return SearchHistoryLoadedMsg{Terms: terms}
	}
}

// DownloadCmd downloads t in the background.
func DownloadCmd(d Downloader, t track.Track) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()
		res, err := d.Download(ctx, t)
		return DownloadDoneMsg{Track: t, Result: res, Err: err}
	}
}

// StatusTimeoutCmd schedules clearing status line version v.
func StatusTimeoutCmd(v int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return StatusTimeoutMsg{Version: v}
	})
}
