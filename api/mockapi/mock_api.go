package mockapi

import (
	"context"

	"github.com/mww/sidepools/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) LeagueSeasons(ctx context.Context) ([]model.Season, error) {
	args := c.Called(ctx)

	var res []model.Season
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Season)
	}

	return res, args.Error(1)
}

func (c *Client) PayoutSeasons(ctx context.Context) ([]model.Season, error) {
	args := c.Called(ctx)

	var res []model.Season
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Season)
	}

	return res, args.Error(1)
}

func (c *Client) Users(ctx context.Context) ([]model.UserSummary, error) {
	args := c.Called(ctx)

	var res []model.UserSummary
	if args.Get(0) != nil {
		res = args.Get(0).([]model.UserSummary)
	}

	return res, args.Error(1)
}

func (c *Client) Pools(ctx context.Context) ([]model.Pool, error) {
	args := c.Called(ctx)

	var res []model.Pool
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Pool)
	}

	return res, args.Error(1)
}

func (c *Client) Leaderboard(ctx context.Context, leagueID, poolID string) ([]model.LeaderboardEntry, error) {
	args := c.Called(ctx, leagueID, poolID)

	var res []model.LeaderboardEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeaderboardEntry)
	}

	return res, args.Error(1)
}

func (c *Client) Payouts(ctx context.Context, season model.Season) ([]model.UserPayout, error) {
	args := c.Called(ctx, season)

	var res []model.UserPayout
	if args.Get(0) != nil {
		res = args.Get(0).([]model.UserPayout)
	}

	return res, args.Error(1)
}

func (c *Client) PayoutDetails(ctx context.Context, season model.Season, username string) ([]model.PayoutRecord, error) {
	args := c.Called(ctx, season, username)

	var res []model.PayoutRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.PayoutRecord)
	}

	return res, args.Error(1)
}
