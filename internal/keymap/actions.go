// Package keymap defines key bindings and resolves keys to actions.
package keymap

// Action is a user-triggerable action.
type Action string

const (
	// Global
	ActionQuit           Action = "quit"
	ActionHelp           Action = "help"
	ActionViewQueue      Action = "view_queue"
	ActionViewSearch     Action = "view_search"
	ActionViewFavourites Action = "view_favourites"
	ActionViewPlaylists  Action = "view_playlists"
	ActionViewRecent     Action = "view_recent"
	ActionViewDownloads  Action = "view_downloads"
	ActionSearch         Action = "search"

	// Playback
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"

	// Track lists
	ActionSelect          Action = "select"
	ActionAdd             Action = "add"
	ActionAddNext         Action = "add_next"
	ActionToggleFavourite Action = "toggle_favourite"
	ActionDownload        Action = "download"
	ActionAddToPlaylist   Action = "add_to_playlist"
	ActionDelete          Action = "delete"
	ActionFilter          Action = "filter"
	ActionLoadMore        Action = "load_more"
	ActionClearHistory    Action = "clear_history"

	// Queue
	ActionMoveItemUp   Action = "move_item_up"
	ActionMoveItemDown Action = "move_item_down"
	ActionClear        Action = "clear"

	// Playlists
	ActionNewPlaylist Action = "new_playlist"
	ActionRename      Action = "rename"
	ActionBack        Action = "back"
)
