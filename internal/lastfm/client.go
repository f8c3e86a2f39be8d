package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

const authURL = "https://www.last.fm/api/auth/"

// ErrNotAuthenticated is returned by submissions made without a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client is a Last.fm API client holding at most one user session.
type Client struct {
	api        *lastfm.Api
	apiKey     string
	sessionKey string
}

// New creates an unauthenticated client for the application credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret), apiKey: apiKey}
}

// SetSessionKey authenticates the client with a stored session key.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
	c.api.SetSession(key)
}

func (c *Client) SessionKey() string { return c.sessionKey }

func (c *Client) IsAuthenticated() bool { return c.sessionKey != "" }

// GetToken starts the web auth flow.
func (c *Client) GetToken() (string, error) {
	token, err := c.api.GetToken()
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// GetAuthURL is the page where the user grants token. A non-empty
// callback is appended unescaped, the way Last.fm expects it.
func (c *Client) GetAuthURL(token, callback string) string {
	u := authURL + "?api_key=" + c.apiKey + "&token=" + token
	if callback != "" {
		u += "&cb=" + callback
	}
	return u
}

// GetSession trades a granted token for a session and authenticates the
// client with it. The user name is "unknown" when the profile lookup fails.
func (c *Client) GetSession(token string) (username, sessionKey string, err error) {
	if err := c.api.LoginWithToken(token); err != nil {
		return "", "", fmt.Errorf("get session: %w", err)
	}
	c.sessionKey = c.api.GetSessionKey()

	username = "unknown"
	if info, err := c.api.User.GetInfo(nil); err == nil {
		username = info.Name
	}
	return username, c.sessionKey, nil
}

// UpdateNowPlaying announces t as the current track.
func (c *Client) UpdateNowPlaying(t ScrobbleTrack) error {
	return c.submit("update now playing", func() error {
		_, err := c.api.Track.UpdateNowPlaying(t.params(false))
		return err
	})
}

// Scrobble records a finished play of t.
func (c *Client) Scrobble(t ScrobbleTrack) error {
	return c.submit("scrobble", func() error {
		_, err := c.api.Track.Scrobble(t.params(true))
		return err
	})
}

func (c *Client) submit(op string, call func() error) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := call(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (t ScrobbleTrack) params(withTimestamp bool) lastfm.P {
	p := lastfm.P{"artist": t.Artist, "track": t.Track}
	if withTimestamp {
		p["timestamp"] = t.Timestamp.Unix()
	}
	if t.Album != "" {
		p["album"] = t.Album
	}
	if t.Duration > 0 {
		p["duration"] = int(t.Duration.Seconds())
	}
	return p
}

var _ API = (*Client)(nil)
