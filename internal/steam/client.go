// Package steam wraps the Steam Web API behind typed fetch failures so the
// scrape pipeline can make retry and abort decisions without inspecting
// transport details.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public Steam Web API endpoint.
const DefaultBaseURL = "https://api.steampowered.com"

// ClientConfig holds Steam client configuration.
type ClientConfig struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // defaults to 10s
}

// Client is a thin wrapper around the Steam Web API.
type Client struct {
	http *resty.Client
	key  string
}

// NewClient creates a Steam client. The API key is attached to every request.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParams(map[string]string{
			"key":    cfg.APIKey,
			"format": "json",
		})

	return &Client{http: client, key: cfg.APIKey}, nil
}

// GetPlayerSummary returns the raw player summary for steamID.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	var out struct {
		Response struct {
			Players []PlayerSummary `json:"players"`
		} `json:"response"`
	}

	err := c.get(ctx, "/ISteamUser/GetPlayerSummaries/v2/", map[string]string{
		"steamids": steamID,
	}, &out)
	if err != nil {
		return nil, err
	}

	if len(out.Response.Players) == 0 {
		return nil, &FetchError{
			Kind:    FailureNotFound,
			Message: fmt.Sprintf("player not found for steam_id=%s", steamID),
		}
	}
	return &out.Response.Players[0], nil
}

// GetOwnedGames returns the raw owned-games list with playtime information.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	var out struct {
		Response struct {
			GameCount int         `json:"game_count"`
			Games     []OwnedGame `json:"games"`
		} `json:"response"`
	}

	err := c.get(ctx, "/IPlayerService/GetOwnedGames/v1/", map[string]string{
		"steamid":                   steamID,
		"include_appinfo":           "1",
		"include_played_free_games": "1",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Response.Games, nil
}

// FetchGameStats performs the per-(account, game) stats fetch: achievements
// with unlock timestamps plus numeric stats, combined into one payload.
//
// A permanent failure on the stats endpoint alone yields an empty stats list
// (plenty of games expose achievements but no numeric stats); transient and
// auth failures always propagate.
func (c *Client) FetchGameStats(ctx context.Context, steamID string, appID int) (*GamePayload, error) {
	payload := &GamePayload{AppID: appID}

	var achOut struct {
		PlayerStats struct {
			SteamID      string           `json:"steamID"`
			GameName     string           `json:"gameName"`
			Achievements []RawAchievement `json:"achievements"`
			Success      bool             `json:"success"`
			Error        string           `json:"error"`
		} `json:"playerstats"`
	}

	err := c.get(ctx, "/ISteamUserStats/GetPlayerAchievements/v1/", map[string]string{
		"steamid": steamID,
		"appid":   strconv.Itoa(appID),
		"l":       "english",
	}, &achOut)
	if err != nil {
		return nil, err
	}

	if !achOut.PlayerStats.Success {
		return nil, classifyPlayerStatsError(achOut.PlayerStats.Error)
	}
	payload.GameName = achOut.PlayerStats.GameName
	payload.Achievements = achOut.PlayerStats.Achievements

	var statsOut struct {
		PlayerStats struct {
			GameName string    `json:"gameName"`
			Stats    []RawStat `json:"stats"`
		} `json:"playerstats"`
	}

	err = c.get(ctx, "/ISteamUserStats/GetUserStatsForGame/v2/", map[string]string{
		"steamid": steamID,
		"appid":   strconv.Itoa(appID),
	}, &statsOut)
	if err != nil {
		if fe, ok := AsFetchError(err); ok && !fe.Retryable() && !fe.Systemic() {
			return payload, nil
		}
		return nil, err
	}
	payload.Stats = statsOut.PlayerStats.Stats

	return payload, nil
}

// get performs one API request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return transientErr(err)
	}

	if res.IsError() {
		return classifyStatus(res.StatusCode(), res.Body())
	}

	if err := json.Unmarshal(res.Body(), out); err != nil {
		return transientErr(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// classifyStatus maps an HTTP error status onto the failure taxonomy.
func classifyStatus(code int, body []byte) *FetchError {
	switch {
	case code == http.StatusUnauthorized:
		return &FetchError{Kind: FailureAuth, StatusCode: code, Message: "api key rejected"}
	case code == http.StatusForbidden:
		// Steam answers 403 both for bad keys and for private profiles; the
		// body disambiguates.
		if reason := playerStatsError(body); reason != "" {
			fe := classifyPlayerStatsError(reason)
			fe.StatusCode = code
			return fe
		}
		return &FetchError{Kind: FailureAuth, StatusCode: code, Message: "api key rejected"}
	case code == http.StatusNotFound || code == http.StatusBadRequest:
		return &FetchError{Kind: FailureNotFound, StatusCode: code, Message: "app has no stats or does not exist"}
	case code == http.StatusTooManyRequests:
		return &FetchError{Kind: FailureTransient, StatusCode: code, Message: "rate limited"}
	case code >= 500:
		return &FetchError{Kind: FailureTransient, StatusCode: code, Message: "server error"}
	default:
		return &FetchError{Kind: FailureTransient, StatusCode: code, Message: "unexpected status"}
	}
}

// playerStatsError extracts playerstats.error from an error response body.
func playerStatsError(body []byte) string {
	var out struct {
		PlayerStats struct {
			Error string `json:"error"`
		} `json:"playerstats"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return ""
	}
	return out.PlayerStats.Error
}

// classifyPlayerStatsError maps a playerstats-level error message onto the
// taxonomy. success=false with a profile-related message means the profile is
// private; anything else means the app exposes no stats.
func classifyPlayerStatsError(reason string) *FetchError {
	lower := strings.ToLower(reason)
	if strings.Contains(lower, "profile") || strings.Contains(lower, "private") {
		return &FetchError{Kind: FailurePrivate, Message: reason}
	}
	if reason == "" {
		reason = "playerstats request unsuccessful"
	}
	return &FetchError{Kind: FailureNotFound, Message: reason}
}
