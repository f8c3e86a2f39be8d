package keymap

// Binding maps keys to an action within a context. Contexts are "global",
// "playback", "tracks", "queue", "search" and "playlists".
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings is the default key map.
var Bindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionViewQueue, []string{"f1", "1"}, "Queue", "global"},
	{ActionViewSearch, []string{"f2", "2"}, "Search", "global"},
	{ActionViewFavourites, []string{"f3", "3"}, "Favourites", "global"},
	{ActionViewPlaylists, []string{"f4", "4"}, "Playlists", "global"},
	{ActionViewRecent, []string{"f5", "5"}, "Recently played", "global"},
	{ActionViewDownloads, []string{"f6", "6"}, "Downloads", "global"},
	{ActionSearch, []string{"/"}, "Search the catalog", "global"},

	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "ctrl+n"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "ctrl+p"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"shift+right", "."}, "Seek +10s", "playback"},
	{ActionSeekBack, []string{"shift+left", ","}, "Seek -10s", "playback"},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},

	{ActionSelect, []string{"enter"}, "Play from here", "tracks"},
	{ActionAdd, []string{"a"}, "Add to queue", "tracks"},
	{ActionAddNext, []string{"A"}, "Play next", "tracks"},
	{ActionToggleFavourite, []string{"f"}, "Toggle favourite", "tracks"},
	{ActionDownload, []string{"D"}, "Download", "tracks"},
	{ActionAddToPlaylist, []string{"P"}, "Add to playlist", "tracks"},
	{ActionDelete, []string{"d", "delete"}, "Remove", "tracks"},
	{ActionFilter, []string{"ctrl+f"}, "Filter list", "tracks"},

	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move up", "queue"},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move down", "queue"},
	{ActionClear, []string{"c"}, "Clear queue", "queue"},

	{ActionLoadMore, []string{"m"}, "Load more results", "search"},
	{ActionClearHistory, []string{"X"}, "Clear search history", "search"},

	{ActionNewPlaylist, []string{"N"}, "New playlist", "playlists"},
	{ActionRename, []string{"r"}, "Rename playlist", "playlists"},
	{ActionBack, []string{"esc", "backspace"}, "Back to playlists", "playlists"},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var out []Binding
	for _, b := range Bindings {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}

// Contexts lists the binding contexts in help order.
func Contexts() []string {
	return []string{"global", "playback", "tracks", "queue", "search", "playlists"}
}
