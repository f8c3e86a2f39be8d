// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"github.com/llehouerou/tides/internal/bridge"
	"github.com/llehouerou/tides/internal/catalog"
	"github.com/llehouerou/tides/internal/download"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

// StoreMessage is implemented by messages converted from store events.
// Each one re-arms the store watcher.
type StoreMessage interface {
	storeMessage()
}

// TrackChangedMsg wraps playback.TrackChange.
type TrackChangedMsg playback.TrackChange

// QueueChangedMsg wraps playback.QueueChange.
type QueueChangedMsg playback.QueueChange

// ModeChangedMsg wraps playback.ModeChange.
type ModeChangedMsg playback.ModeChange

// TransportChangedMsg wraps playback.TransportChange.
type TransportChangedMsg playback.TransportChange

// LibraryChangedMsg wraps playback.LibraryChange.
type LibraryChangedMsg playback.LibraryChange

func (TrackChangedMsg) storeMessage()     {}
func (QueueChangedMsg) storeMessage()     {}
func (ModeChangedMsg) storeMessage()      {}
func (TransportChangedMsg) storeMessage() {}
func (LibraryChangedMsg) storeMessage()   {}

// StoreClosedMsg is sent once the store shuts the subscription down.
type StoreClosedMsg struct{}

// PlaybackErrorMsg carries an engine failure from the bridge.
type PlaybackErrorMsg bridge.ErrorEvent

// SearchResultMsg is one page of search results. Seq identifies the
// request; replies to superseded requests are dropped.
type SearchResultMsg struct {
	Seq    int
	Query  string
	Page   int
	Result catalog.SongPage
	Err    error
}

// SearchHistoryLoadedMsg carries the persisted search terms.
type SearchHistoryLoadedMsg struct {
	Terms []string
}

// DownloadDoneMsg reports a finished download.
type DownloadDoneMsg struct {
	Track  track.Track
	Result download.Result
	Err    error
}

// StatusTimeoutMsg clears the status line if nothing replaced it.
type StatusTimeoutMsg struct {
	Version int
}
