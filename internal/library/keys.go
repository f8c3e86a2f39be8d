package library

// DefaultPrefix namespaces every key written by the library.
const DefaultPrefix = "tides"

// Keys builds the namespaced storage keys for each collection.
type Keys struct {
	prefix string
}

// NewKeys returns keys under prefix, or DefaultPrefix when empty.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keys{prefix: prefix}
}

func (k Keys) Queue() string         { return k.prefix + "/queue" }
func (k Keys) Favourites() string    { return k.prefix + "/favourites" }
func (k Keys) Recent() string        { return k.prefix + "/recent" }
func (k Keys) Downloaded() string    { return k.prefix + "/downloaded" }
func (k Keys) Playlists() string     { return k.prefix + "/playlists" }
func (k Keys) Session() string       { return k.prefix + "/session" }
func (k Keys) SearchHistory() string { return k.prefix + "/searchHistory" }

// Download is the per-track key holding a downloaded file URI.
func (k Keys) Download(trackID string) string { return k.prefix + "/dl/" + trackID }
