package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mww/sidepools/model"
)

const SleeperURL = "https://api.sleeper.app"

var ErrLeagueNotFound = errors.New("league not found")

type Client interface {
	GetLeague(ctx context.Context, leagueID string) (*model.League, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(url string) (Client, error) {
	if url == "" {
		url = SleeperURL
	}
	c := &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type sleeperLeague struct {
	ID     string       `json:"league_id"`
	Name   string       `json:"name"`
	Season model.Season `json:"season"`
	Status string       `json:"status"`
}

func (c *client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/league/%s", c.url, leagueID), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Sleeper returns a 200 with a "null" body for leagues that don't exist.
	var parsed *sleeperLeague
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	if parsed == nil {
		return nil, ErrLeagueNotFound
	}

	return &model.League{
		ID:       parsed.ID,
		Platform: model.PlatformSleeper,
		Name:     parsed.Name,
		Season:   parsed.Season,
		Status:   parsed.Status,
	}, nil
}
