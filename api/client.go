package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
)

const DefaultURL = "http://localhost:5000"

var (
	// ErrTransport is returned when the backend could not be reached.
	ErrTransport = errors.New("error sending http request")
	// ErrStatus is returned for any non-200 response.
	ErrStatus = errors.New("unexpected status code")
	// ErrPayload is returned when the response body is not the expected JSON.
	ErrPayload = errors.New("error parsing response")
)

// Client reads the side pools backend REST API.
type Client interface {
	LeagueSeasons(ctx context.Context) ([]model.Season, error)
	PayoutSeasons(ctx context.Context) ([]model.Season, error)
	Users(ctx context.Context) ([]model.UserSummary, error)
	Pools(ctx context.Context) ([]model.Pool, error)
	Leaderboard(ctx context.Context, leagueID, poolID string) ([]model.LeaderboardEntry, error)
	// Payouts returns every user's summed payouts for the season, or for all
	// seasons when season is model.SeasonAllTime.
	Payouts(ctx context.Context, season model.Season) ([]model.UserPayout, error)
	PayoutDetails(ctx context.Context, season model.Season, username string) ([]model.PayoutRecord, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) (Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("error parsing api url: %w", err)
	}
	if timeout <= 0 {
		timeout = 1 * time.Minute
	}
	c := &client{
		url: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
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

func (c *client) LeagueSeasons(ctx context.Context) ([]model.Season, error) {
	var seasons []model.Season
	if err := c.get(ctx, "/api/v1/leagues/seasons", nil, &seasons); err != nil {
		return nil, err
	}
	return seasons, nil
}

func (c *client) PayoutSeasons(ctx context.Context) ([]model.Season, error) {
	var seasons []model.Season
	if err := c.get(ctx, "/api/v1/payouts/seasons", nil, &seasons); err != nil {
		return nil, err
	}
	return seasons, nil
}

func (c *client) Users(ctx context.Context) ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := c.get(ctx, "/api/v1/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *client) Pools(ctx context.Context) ([]model.Pool, error) {
	var pools []model.Pool
	if err := c.get(ctx, "/api/v1/pools", nil, &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

func (c *client) Leaderboard(ctx context.Context, leagueID, poolID string) ([]model.LeaderboardEntry, error) {
	q := url.Values{}
	q.Set("league_id", leagueID)
	q.Set("pool_id", poolID)

	var entries []model.LeaderboardEntry
	if err := c.get(ctx, "/api/v1/pools/leaderboard", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *client) Payouts(ctx context.Context, season model.Season) ([]model.UserPayout, error) {
	var payouts []model.UserPayout
	if err := c.get(ctx, "/api/v1/payouts/"+url.PathEscape(string(season)), nil, &payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (c *client) PayoutDetails(ctx context.Context, season model.Season, username string) ([]model.PayoutRecord, error) {
	var records []model.PayoutRecord
	if err := c.get(ctx, "/api/v1/payoutdetails", view.DetailsQuery(season, username), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *client) get(ctx context.Context, path string, query url.Values, result any) error {
	u := c.url + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w from %s: %w", ErrPayload, path, err)
	}
	return nil
}
